// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package transaction_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksarapress/aksara/internal/core/transaction"
	"github.com/aksarapress/aksara/pkg/pagination"
)

// fakeRepository filters the ledger in memory the way the Postgres store
// narrows by collaborator.
type fakeRepository struct {
	entries []*transaction.History
}

func (f *fakeRepository) List(_ context.Context, collaboratorID string, _ pagination.ListRequest) ([]*transaction.History, int, error) {
	var out []*transaction.History
	for _, entry := range f.entries {
		if collaboratorID != "" && (entry.CollaboratorID == nil || *entry.CollaboratorID != collaboratorID) {
			continue
		}
		out = append(out, entry)
	}
	return out, len(out), nil
}

const (
	memberID   = "0198c3b4-0000-7000-8000-000000000021"
	reviewerID = "0198c3b4-0000-7000-8000-000000000022"
)

/*
TestService_List verifies the full ledger comes back with pagination meta
derived from the normalized request.
*/
func TestService_List(t *testing.T) {
	member := memberID
	repo := &fakeRepository{entries: []*transaction.History{
		{ID: "a", ChapterID: "ch-1", CollaboratorID: &member, CheckedByID: reviewerID, Status: "close"},
		{ID: "b", ChapterID: "ch-2", CheckedByID: reviewerID, Status: "rejected"},
	}}
	service := transaction.NewService(repo)

	entries, meta, err := service.List(context.Background(), pagination.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 2, meta.Total)
	assert.Equal(t, 0, meta.Page)
	assert.Equal(t, pagination.DefaultPerPage, meta.PerPage)
}

/*
TestService_Personal verifies the ledger narrows to one writer's entries; a
rejection without a collaborator never leaks into a personal view.
*/
func TestService_Personal(t *testing.T) {
	member := memberID
	repo := &fakeRepository{entries: []*transaction.History{
		{ID: "a", ChapterID: "ch-1", CollaboratorID: &member, CheckedByID: reviewerID, Status: "close"},
		{ID: "b", ChapterID: "ch-2", CheckedByID: reviewerID, Status: "rejected"},
	}}
	service := transaction.NewService(repo)

	entries, meta, err := service.Personal(context.Background(), memberID, pagination.ListRequest{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, 1, meta.Total)
}
