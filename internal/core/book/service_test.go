// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package book_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksarapress/aksara/internal/core/book"
	"github.com/aksarapress/aksara/internal/platform/apperr"
	"github.com/aksarapress/aksara/pkg/pagination"
	"github.com/aksarapress/aksara/pkg/pointer"
)

// fakeRepository keeps books and their completion stats in memory. Promote
// is keyed on the draft status, mirroring the conditional update in the
// Postgres store.
type fakeRepository struct {
	books map[string]*book.Book
	stats map[string]book.CompletionStats
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		books: make(map[string]*book.Book),
		stats: make(map[string]book.CompletionStats),
	}
}

func (f *fakeRepository) List(_ context.Context, categoryID string, _ pagination.ListRequest) ([]*book.Book, int, error) {
	var out []*book.Book
	for _, b := range f.books {
		if categoryID != "" && b.CategoryID != categoryID {
			continue
		}
		out = append(out, b)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return b, nil
}

func (f *fakeRepository) Create(_ context.Context, b *book.Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeRepository) Update(_ context.Context, b *book.Book) error {
	if _, ok := f.books[b.ID]; !ok {
		return apperr.NotFound("Book")
	}
	f.books[b.ID] = b
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.books[id]; !ok {
		return apperr.NotFound("Book")
	}
	delete(f.books, id)
	return nil
}

func (f *fakeRepository) UpdateStatus(_ context.Context, id string, status book.Status, isbnConfirmation *string) error {
	b, ok := f.books[id]
	if !ok {
		return apperr.NotFound("Book")
	}
	b.Status = status
	if isbnConfirmation != nil {
		b.ISBNConfirmation = isbnConfirmation
	}
	return nil
}

func (f *fakeRepository) Stats(_ context.Context, bookID string) (book.CompletionStats, error) {
	return f.stats[bookID], nil
}

func (f *fakeRepository) PromoteToEditing(_ context.Context, bookID string) (bool, error) {
	b, ok := f.books[bookID]
	if !ok || b.Status != book.StatusDraft {
		return false, nil
	}
	b.Status = book.StatusEditing
	return true, nil
}

const (
	bookID     = "0198c3b4-0000-7000-8000-000000000010"
	categoryID = "0198c3b4-0000-7000-8000-000000000011"
)

func newTestService(repo *fakeRepository) *book.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return book.NewService(repo, logger)
}

func seedBook(repo *fakeRepository, status book.Status, stats book.CompletionStats) *book.Book {
	b := &book.Book{
		ID:         bookID,
		CategoryID: categoryID,
		Title:      "Nusantara Notes",
		Status:     status,
	}
	repo.books[b.ID] = b
	repo.stats[b.ID] = stats
	return b
}

/*
TestService_RecomputeStatus exercises the promotion threshold: at least half
of the chapters, rounded up, need a completed collaborator.
*/
func TestService_RecomputeStatus(t *testing.T) {
	tests := []struct {
		name         string
		status       book.Status
		total        int
		completed    int
		wantPromoted bool
	}{
		{"half_of_even_promotes", book.StatusDraft, 4, 2, true},
		{"below_half_stays_draft", book.StatusDraft, 4, 1, false},
		{"odd_total_rounds_up", book.StatusDraft, 5, 2, false},
		{"odd_total_threshold_met", book.StatusDraft, 5, 3, true},
		{"no_chapters_never_promotes", book.StatusDraft, 0, 0, false},
		{"published_never_demoted", book.StatusPublished, 2, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			b := seedBook(repo, tt.status, book.CompletionStats{
				TotalChapters:          tt.total,
				CompletedCollaborators: tt.completed,
			})
			service := newTestService(repo)

			promoted, err := service.RecomputeStatus(context.Background(), bookID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPromoted, promoted)

			if tt.wantPromoted {
				assert.Equal(t, book.StatusEditing, b.Status)
			} else {
				assert.Equal(t, tt.status, b.Status)
			}
		})
	}
}

/*
TestService_List_TriggersRollUp verifies that reading the catalogue applies
pending promotions to the returned page.
*/
func TestService_List_TriggersRollUp(t *testing.T) {
	repo := newFakeRepository()
	seedBook(repo, book.StatusDraft, book.CompletionStats{TotalChapters: 2, CompletedCollaborators: 1})
	service := newTestService(repo)

	books, meta, err := service.List(context.Background(), pagination.ListRequest{})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, book.StatusEditing, books[0].Status)
	assert.Equal(t, 1, meta.Total)
}

/*
TestService_UpdateStatus_ISBNGate verifies the confirmation requirement for
ISBN submission.
*/
func TestService_UpdateStatus_ISBNGate(t *testing.T) {
	repo := newFakeRepository()
	seedBook(repo, book.StatusEditing, book.CompletionStats{})
	service := newTestService(repo)

	err := service.UpdateStatus(context.Background(), bookID, book.StatusISBNSubmission, nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	err = service.UpdateStatus(context.Background(), bookID, book.StatusISBNSubmission, pointer.To("ISBN-2026-00042"))
	require.NoError(t, err)
	assert.Equal(t, book.StatusISBNSubmission, repo.books[bookID].Status)
}

/*
TestService_UpdateStatus_InvalidStatus rejects unknown lifecycle states.
*/
func TestService_UpdateStatus_InvalidStatus(t *testing.T) {
	repo := newFakeRepository()
	seedBook(repo, book.StatusDraft, book.CompletionStats{})
	service := newTestService(repo)

	err := service.UpdateStatus(context.Background(), bookID, book.Status("archived"), nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_Create derives the slug and starts the book in draft.
*/
func TestService_Create(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	b := &book.Book{CategoryID: categoryID, Title: "Jalan Pulang"}
	require.NoError(t, service.Create(context.Background(), b))

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "jalan-pulang", b.Slug)
	assert.Equal(t, book.StatusDraft, b.Status)
}
