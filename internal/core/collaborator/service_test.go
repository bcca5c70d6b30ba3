// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package collaborator_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksarapress/aksara/internal/core/collaborator"
	"github.com/aksarapress/aksara/internal/platform/apperr"
	"github.com/aksarapress/aksara/pkg/pagination"
	"github.com/aksarapress/aksara/pkg/pointer"
)

type fakeRepository struct {
	records map[string]*collaborator.Collaborator
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{records: make(map[string]*collaborator.Collaborator)}
}

func (f *fakeRepository) List(_ context.Context, filter collaborator.ListFilter, _ pagination.ListRequest) ([]*collaborator.Collaborator, int, error) {
	var out []*collaborator.Collaborator
	for _, c := range f.records {
		if filter.CollaboratorID != "" && c.CollaboratorID != filter.CollaboratorID {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*collaborator.Collaborator, error) {
	c, ok := f.records[id]
	if !ok {
		return nil, apperr.NotFound("Collaborator")
	}
	return c, nil
}

func (f *fakeRepository) GetByChapter(_ context.Context, chapterID string) (*collaborator.Collaborator, error) {
	for _, c := range f.records {
		if c.ChapterID == chapterID {
			return c, nil
		}
	}
	return nil, apperr.NotFound("Collaborator")
}

func (f *fakeRepository) UpdateDocuments(_ context.Context, c *collaborator.Collaborator) error {
	if _, ok := f.records[c.ID]; !ok {
		return apperr.NotFound("Collaborator")
	}
	f.records[c.ID] = c
	return nil
}

func (f *fakeRepository) SetReview(_ context.Context, id string, status collaborator.Status, reviewerID string, notes *string, reviewedAt time.Time) error {
	c, ok := f.records[id]
	if !ok {
		return apperr.NotFound("Collaborator")
	}
	c.Status = status
	c.ReviewerID = &reviewerID
	if notes != nil {
		c.Notes = notes
	}
	c.ReviewedAt = &reviewedAt
	return nil
}

const (
	recordID   = "0198c3b4-0000-7000-8000-000000000020"
	reviewerID = "0198c3b4-0000-7000-8000-000000000021"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepository) *collaborator.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return collaborator.NewService(repo, func() time.Time { return fixedNow }, logger)
}

func seedRecord(repo *fakeRepository, status collaborator.Status) *collaborator.Collaborator {
	c := &collaborator.Collaborator{
		ID:             recordID,
		ChapterID:      "0198c3b4-0000-7000-8000-000000000022",
		CollaboratorID: "0198c3b4-0000-7000-8000-000000000023",
		Status:         status,
	}
	repo.records[c.ID] = c
	return c
}

/*
TestService_SubmitDocuments_Partial verifies a partial submission merges
without touching absent documents and keeps the record incomplete.
*/
func TestService_SubmitDocuments_Partial(t *testing.T) {
	repo := newFakeRepository()
	record := seedRecord(repo, collaborator.StatusNeedComplete)
	record.Script = pointer.To("https://files.example/script.pdf")
	service := newTestService(repo)

	updated, err := service.SubmitDocuments(context.Background(), recordID, collaborator.DocumentsInput{
		Haki: pointer.To("https://files.example/haki.pdf"),
	})
	require.NoError(t, err)

	assert.Equal(t, collaborator.StatusNeedComplete, updated.Status)
	assert.Nil(t, updated.UploadedAt)

	// The earlier script upload survives the merge.
	require.NotNil(t, updated.Script)
	assert.Equal(t, "https://files.example/script.pdf", *updated.Script)
	require.NotNil(t, updated.Haki)
}

/*
TestService_SubmitDocuments_Complete verifies that supplying the final
document moves the record to pending with an upload timestamp.
*/
func TestService_SubmitDocuments_Complete(t *testing.T) {
	repo := newFakeRepository()
	record := seedRecord(repo, collaborator.StatusNeedComplete)
	record.Script = pointer.To("s")
	record.Haki = pointer.To("h")
	record.Identity = pointer.To("i")
	service := newTestService(repo)

	updated, err := service.SubmitDocuments(context.Background(), recordID, collaborator.DocumentsInput{
		Address: pointer.To("a"),
	})
	require.NoError(t, err)

	assert.Equal(t, collaborator.StatusPending, updated.Status)
	require.NotNil(t, updated.UploadedAt)
	assert.Equal(t, fixedNow, *updated.UploadedAt)
}

/*
TestService_SubmitDocuments_EmptyStringIncomplete verifies an empty document
value does not count as present.
*/
func TestService_SubmitDocuments_EmptyStringIncomplete(t *testing.T) {
	repo := newFakeRepository()
	record := seedRecord(repo, collaborator.StatusNeedComplete)
	record.Script = pointer.To("s")
	record.Haki = pointer.To("h")
	record.Identity = pointer.To("i")
	service := newTestService(repo)

	updated, err := service.SubmitDocuments(context.Background(), recordID, collaborator.DocumentsInput{
		Address: pointer.To(""),
	})
	require.NoError(t, err)
	assert.Equal(t, collaborator.StatusNeedComplete, updated.Status)
}

/*
TestService_SubmitDocuments_AfterSendBack verifies a sent-back record
re-enters the review queue once resupplied.
*/
func TestService_SubmitDocuments_AfterSendBack(t *testing.T) {
	repo := newFakeRepository()
	record := seedRecord(repo, collaborator.StatusNeedUpdate)
	record.Script = pointer.To("s")
	record.Haki = pointer.To("h")
	record.Identity = pointer.To("i")
	record.Address = pointer.To("a")
	service := newTestService(repo)

	updated, err := service.SubmitDocuments(context.Background(), recordID, collaborator.DocumentsInput{
		Script: pointer.To("s-revised"),
	})
	require.NoError(t, err)
	assert.Equal(t, collaborator.StatusPending, updated.Status)
}

/*
TestService_ApproveDocuments verifies the reviewer acceptance path.
*/
func TestService_ApproveDocuments(t *testing.T) {
	repo := newFakeRepository()
	record := seedRecord(repo, collaborator.StatusPending)
	service := newTestService(repo)

	err := service.ApproveDocuments(context.Background(), recordID, reviewerID)
	require.NoError(t, err)

	assert.Equal(t, collaborator.StatusUploaded, record.Status)
	require.NotNil(t, record.ReviewerID)
	assert.Equal(t, reviewerID, *record.ReviewerID)
	require.NotNil(t, record.ReviewedAt)
	assert.Equal(t, fixedNow, *record.ReviewedAt)
}

/*
TestService_SendBack verifies the rejection path requires notes.
*/
func TestService_SendBack(t *testing.T) {
	repo := newFakeRepository()
	record := seedRecord(repo, collaborator.StatusPending)
	service := newTestService(repo)

	err := service.SendBack(context.Background(), recordID, reviewerID, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	err = service.SendBack(context.Background(), recordID, reviewerID, "identity scan unreadable")
	require.NoError(t, err)

	assert.Equal(t, collaborator.StatusNeedUpdate, record.Status)
	require.NotNil(t, record.Notes)
	assert.Equal(t, "identity scan unreadable", *record.Notes)
}

/*
TestCollaborator_DocumentsComplete checks the completeness predicate.
*/
func TestCollaborator_DocumentsComplete(t *testing.T) {
	c := &collaborator.Collaborator{
		Script:   pointer.To("s"),
		Haki:     pointer.To("h"),
		Identity: pointer.To("i"),
		Address:  pointer.To("a"),
	}
	assert.True(t, c.DocumentsComplete())

	c.Address = nil
	assert.False(t, c.DocumentsComplete())

	c.Address = pointer.To("")
	assert.False(t, c.DocumentsComplete())
}
