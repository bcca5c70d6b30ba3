// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package chapter_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aksarapress/aksara/internal/core/chapter"
	"github.com/aksarapress/aksara/internal/platform/apperr"
	"github.com/aksarapress/aksara/pkg/pagination"
)

// fakeRepository mirrors the conditional-update semantics of the Postgres
// store in memory: lifecycle mutations only apply when the current status
// permits them, and the loser of a race gets a Conflict.
type fakeRepository struct {
	chapters      map[string]*chapter.Chapter
	users         map[string]bool
	collaborators map[string]string // chapterID -> collaborator member
	history       []chapter.FinalizeInput
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		chapters:      make(map[string]*chapter.Chapter),
		users:         make(map[string]bool),
		collaborators: make(map[string]string),
	}
}

func (f *fakeRepository) List(_ context.Context, filter chapter.ListFilter, _ pagination.ListRequest) ([]*chapter.Chapter, int, error) {
	var out []*chapter.Chapter
	for _, c := range f.chapters {
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.CheckoutBy != "" && (c.CheckoutBy == nil || *c.CheckoutBy != filter.CheckoutBy) {
			continue
		}
		if filter.BookID != "" && c.BookID != filter.BookID {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*chapter.Chapter, error) {
	c, ok := f.chapters[id]
	if !ok {
		return nil, apperr.NotFound("Chapter")
	}
	return c, nil
}

func (f *fakeRepository) Create(_ context.Context, c *chapter.Chapter) error {
	for _, existing := range f.chapters {
		if existing.BookID == c.BookID && existing.Part == c.Part {
			return apperr.Conflict("Chapter already exists")
		}
	}
	f.chapters[c.ID] = c
	return nil
}

func (f *fakeRepository) Update(_ context.Context, c *chapter.Chapter) error {
	if _, ok := f.chapters[c.ID]; !ok {
		return apperr.NotFound("Chapter")
	}
	f.chapters[c.ID] = c
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.chapters[id]; !ok {
		return apperr.NotFound("Chapter")
	}
	delete(f.chapters, id)
	return nil
}

func (f *fakeRepository) Checkout(_ context.Context, chapterID, userID string, expiresAt time.Time) error {
	c, ok := f.chapters[chapterID]
	if !ok {
		return apperr.NotFound("Chapter")
	}
	if c.Status != chapter.StatusOnSale && c.Status != chapter.StatusRejected {
		return apperr.Conflict("Chapter is not available for checkout")
	}
	c.Status = chapter.StatusPending
	c.ExpiredAt = &expiresAt
	c.CheckoutBy = &userID
	return nil
}

func (f *fakeRepository) SetPaymentProof(_ context.Context, chapterID, proof string) error {
	c, ok := f.chapters[chapterID]
	if !ok {
		return apperr.NotFound("Chapter")
	}
	if c.Status != chapter.StatusPending && c.Status != chapter.StatusWaiting {
		return apperr.Conflict("Chapter is not reserved for payment")
	}
	c.Status = chapter.StatusWaiting
	c.PaymentProof = &proof
	return nil
}

func (f *fakeRepository) Finalize(_ context.Context, input chapter.FinalizeInput) error {
	c, ok := f.chapters[input.ChapterID]
	if !ok {
		return apperr.NotFound("Chapter")
	}
	if c.Status != chapter.StatusWaiting {
		return apperr.Conflict("Chapter is not awaiting approval")
	}

	c.Status = input.Decision
	c.Notes = &input.Notes
	c.CheckedByID = &input.ReviewerID
	c.ExpiredAt = nil

	if input.Decision == chapter.StatusClose {
		if _, exists := f.collaborators[input.ChapterID]; exists {
			return apperr.Conflict("Collaborator already exists")
		}
		c.CollaboratedBy = c.CheckoutBy
		f.collaborators[input.ChapterID] = *c.CheckoutBy
	} else {
		c.CheckoutBy = nil
	}

	f.history = append(f.history, input)
	return nil
}

func (f *fakeRepository) ExpireLapsed(_ context.Context, now time.Time) ([]string, error) {
	var reverted []string
	for _, c := range f.chapters {
		if c.Status == chapter.StatusPending && c.ExpiredAt != nil && !c.ExpiredAt.After(now) {
			c.Status = chapter.StatusOnSale
			c.ExpiredAt = nil
			c.CheckoutBy = nil
			reverted = append(reverted, c.ID)
		}
	}
	return reverted, nil
}

func (f *fakeRepository) UserExists(_ context.Context, userID string) (bool, error) {
	return f.users[userID], nil
}

// # Test Fixtures

const (
	chapterID  = "0198c3b4-0000-7000-8000-000000000001"
	bookID     = "0198c3b4-0000-7000-8000-000000000002"
	writerID   = "0198c3b4-0000-7000-8000-000000000003"
	reviewerID = "0198c3b4-0000-7000-8000-000000000004"
)

var fixedNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepository) *chapter.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return chapter.NewService(repo, 24*time.Hour, func() time.Time { return fixedNow }, logger)
}

func seedChapter(repo *fakeRepository, status chapter.Status) *chapter.Chapter {
	c := &chapter.Chapter{
		ID:     chapterID,
		BookID: bookID,
		Part:   "1",
		Title:  "Opening",
		Price:  150000,
		Status: status,
	}
	repo.chapters[c.ID] = c
	return c
}

/*
TestService_Checkout_FromOnSale verifies the reservation fields set on a
successful checkout.
*/
func TestService_Checkout_FromOnSale(t *testing.T) {
	repo := newFakeRepository()
	repo.users[writerID] = true
	seedChapter(repo, chapter.StatusOnSale)
	service := newTestService(repo)

	err := service.Checkout(context.Background(), chapterID, writerID)
	require.NoError(t, err)

	c := repo.chapters[chapterID]
	assert.Equal(t, chapter.StatusPending, c.Status)
	require.NotNil(t, c.CheckoutBy)
	assert.Equal(t, writerID, *c.CheckoutBy)
	require.NotNil(t, c.ExpiredAt)
	assert.Equal(t, fixedNow.Add(24*time.Hour), *c.ExpiredAt)
}

/*
TestService_Checkout_AlreadyReserved verifies that a second writer cannot
steal a pending reservation.
*/
func TestService_Checkout_AlreadyReserved(t *testing.T) {
	repo := newFakeRepository()
	repo.users[writerID] = true
	repo.users[reviewerID] = true
	seedChapter(repo, chapter.StatusOnSale)
	service := newTestService(repo)

	require.NoError(t, service.Checkout(context.Background(), chapterID, writerID))

	err := service.Checkout(context.Background(), chapterID, reviewerID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// The original reservation is untouched.
	assert.Equal(t, writerID, *repo.chapters[chapterID].CheckoutBy)
}

/*
TestService_Checkout_RejectedChapter verifies that a rejected chapter is
open for a fresh checkout.
*/
func TestService_Checkout_RejectedChapter(t *testing.T) {
	repo := newFakeRepository()
	repo.users[writerID] = true
	seedChapter(repo, chapter.StatusRejected)
	service := newTestService(repo)

	err := service.Checkout(context.Background(), chapterID, writerID)
	require.NoError(t, err)
	assert.Equal(t, chapter.StatusPending, repo.chapters[chapterID].Status)
}

/*
TestService_Checkout_UnknownUser verifies the user existence gate.
*/
func TestService_Checkout_UnknownUser(t *testing.T) {
	repo := newFakeRepository()
	seedChapter(repo, chapter.StatusOnSale)
	service := newTestService(repo)

	err := service.Checkout(context.Background(), chapterID, writerID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.Equal(t, chapter.StatusOnSale, repo.chapters[chapterID].Status)
}

/*
TestService_SubmitPaymentProof covers the pending and waiting entry states
plus the closed ones.
*/
func TestService_SubmitPaymentProof(t *testing.T) {
	tests := []struct {
		name     string
		status   chapter.Status
		wantCode string
	}{
		{"from_pending", chapter.StatusPending, ""},
		{"resubmission_from_waiting", chapter.StatusWaiting, ""},
		{"from_on_sale", chapter.StatusOnSale, "CONFLICT"},
		{"from_close", chapter.StatusClose, "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			seedChapter(repo, tt.status)
			service := newTestService(repo)

			err := service.SubmitPaymentProof(context.Background(), chapterID, "https://files.example/proof.jpg")
			if tt.wantCode == "" {
				require.NoError(t, err)
				c := repo.chapters[chapterID]
				assert.Equal(t, chapter.StatusWaiting, c.Status)
				require.NotNil(t, c.PaymentProof)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, apperr.As(err).Code)
			}
		})
	}
}

/*
TestService_Checkout_WhileWaiting verifies a chapter under review cannot be
checked out; waiting is not an entry state for a reservation.
*/
func TestService_Checkout_WhileWaiting(t *testing.T) {
	repo := newFakeRepository()
	repo.users[writerID] = true
	seedChapter(repo, chapter.StatusWaiting)
	service := newTestService(repo)

	err := service.Checkout(context.Background(), chapterID, writerID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.Equal(t, chapter.StatusWaiting, repo.chapters[chapterID].Status)
}

/*
TestService_SubmitPaymentProof_KeepsExpiry verifies the reservation deadline
survives the move to waiting. Only a verdict or the sweeper clears it, and
the sweeper keys on pending, so a waiting chapter is never reverted.
*/
func TestService_SubmitPaymentProof_KeepsExpiry(t *testing.T) {
	repo := newFakeRepository()
	c := seedChapter(repo, chapter.StatusPending)
	c.ExpiredAt = ptrTime(fixedNow.Add(24 * time.Hour))
	c.CheckoutBy = ptr(writerID)
	service := newTestService(repo)

	err := service.SubmitPaymentProof(context.Background(), chapterID, "https://files.example/proof.jpg")
	require.NoError(t, err)

	assert.Equal(t, chapter.StatusWaiting, c.Status)
	require.NotNil(t, c.ExpiredAt)
	assert.Equal(t, fixedNow.Add(24*time.Hour), *c.ExpiredAt)
}

/*
TestService_SubmitPaymentProof_EmptyProof verifies the proof is mandatory.
*/
func TestService_SubmitPaymentProof_EmptyProof(t *testing.T) {
	repo := newFakeRepository()
	seedChapter(repo, chapter.StatusPending)
	service := newTestService(repo)

	err := service.SubmitPaymentProof(context.Background(), chapterID, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_Approve_Close verifies the full closing side effects: the
collaborator record, the ledger entry, and the reservation fields.
*/
func TestService_Approve_Close(t *testing.T) {
	repo := newFakeRepository()
	c := seedChapter(repo, chapter.StatusWaiting)
	c.CheckoutBy = ptr(writerID)
	service := newTestService(repo)

	err := service.Approve(context.Background(), chapterID, reviewerID, chapter.StatusClose, "")
	require.NoError(t, err)

	assert.Equal(t, chapter.StatusClose, c.Status)
	assert.Nil(t, c.ExpiredAt)
	require.NotNil(t, c.CollaboratedBy)
	assert.Equal(t, writerID, *c.CollaboratedBy)
	require.NotNil(t, c.CheckedByID)
	assert.Equal(t, reviewerID, *c.CheckedByID)

	// Blank notes default to "-".
	require.NotNil(t, c.Notes)
	assert.Equal(t, "-", *c.Notes)

	// Exactly one collaborator and one ledger entry.
	assert.Len(t, repo.collaborators, 1)
	assert.Equal(t, writerID, repo.collaborators[chapterID])
	require.Len(t, repo.history, 1)
	assert.Equal(t, chapter.StatusClose, repo.history[0].Decision)
}

/*
TestService_Approve_Rejected verifies a rejection releases the reservation.
*/
func TestService_Approve_Rejected(t *testing.T) {
	repo := newFakeRepository()
	c := seedChapter(repo, chapter.StatusWaiting)
	c.CheckoutBy = ptr(writerID)
	service := newTestService(repo)

	err := service.Approve(context.Background(), chapterID, reviewerID, chapter.StatusRejected, "blurry transfer receipt")
	require.NoError(t, err)

	assert.Equal(t, chapter.StatusRejected, c.Status)
	assert.Nil(t, c.CheckoutBy)
	assert.Nil(t, c.ExpiredAt)
	assert.Empty(t, repo.collaborators)
	require.Len(t, repo.history, 1)
	assert.Equal(t, "blurry transfer receipt", repo.history[0].Notes)
}

/*
TestService_Approve_Twice verifies exactly one verdict wins.
*/
func TestService_Approve_Twice(t *testing.T) {
	repo := newFakeRepository()
	c := seedChapter(repo, chapter.StatusWaiting)
	c.CheckoutBy = ptr(writerID)
	service := newTestService(repo)

	require.NoError(t, service.Approve(context.Background(), chapterID, reviewerID, chapter.StatusClose, ""))

	err := service.Approve(context.Background(), chapterID, reviewerID, chapter.StatusClose, "")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	assert.Len(t, repo.collaborators, 1)
	assert.Len(t, repo.history, 1)
}

/*
TestService_Approve_InvalidDecision verifies only close and rejected are
accepted as verdicts.
*/
func TestService_Approve_InvalidDecision(t *testing.T) {
	repo := newFakeRepository()
	seedChapter(repo, chapter.StatusWaiting)
	service := newTestService(repo)

	err := service.Approve(context.Background(), chapterID, reviewerID, chapter.StatusOnSale, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestService_Approve_WrongState verifies a verdict is only accepted on a
waiting chapter; the state machine blocks every other current status.
*/
func TestService_Approve_WrongState(t *testing.T) {
	statuses := []chapter.Status{
		chapter.StatusOnSale,
		chapter.StatusPending,
		chapter.StatusRejected,
		chapter.StatusClose,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeRepository()
			seedChapter(repo, status)
			service := newTestService(repo)

			err := service.Approve(context.Background(), chapterID, reviewerID, chapter.StatusClose, "")
			require.Error(t, err)
			assert.Equal(t, "CONFLICT", apperr.As(err).Code)
			assert.Empty(t, repo.history)
		})
	}
}

/*
TestService_Create_DuplicatePart verifies the per-book part uniqueness.
*/
func TestService_Create_DuplicatePart(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	first := &chapter.Chapter{BookID: bookID, Part: "1", Title: "Opening", Price: 100000}
	require.NoError(t, service.Create(context.Background(), first))
	assert.Equal(t, chapter.StatusOnSale, first.Status)

	duplicate := &chapter.Chapter{BookID: bookID, Part: "1", Title: "Opening again", Price: 100000}
	err := service.Create(context.Background(), duplicate)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_ExpireLapsed covers the reservation expiry boundary: a
reservation expiring exactly now (or earlier) reverts, a later one holds,
and a second pass finds nothing left to do.
*/
func TestService_ExpireLapsed(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	lapsed := &chapter.Chapter{
		ID: "lapsed", BookID: bookID, Part: "1", Status: chapter.StatusPending,
		ExpiredAt: ptrTime(fixedNow.Add(-time.Second)), CheckoutBy: ptr(writerID),
	}
	onBoundary := &chapter.Chapter{
		ID: "boundary", BookID: bookID, Part: "2", Status: chapter.StatusPending,
		ExpiredAt: ptrTime(fixedNow), CheckoutBy: ptr(writerID),
	}
	alive := &chapter.Chapter{
		ID: "alive", BookID: bookID, Part: "3", Status: chapter.StatusPending,
		ExpiredAt: ptrTime(fixedNow.Add(time.Hour)), CheckoutBy: ptr(writerID),
	}
	repo.chapters[lapsed.ID] = lapsed
	repo.chapters[onBoundary.ID] = onBoundary
	repo.chapters[alive.ID] = alive

	reverted, err := service.ExpireLapsed(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"lapsed", "boundary"}, reverted)

	assert.Equal(t, chapter.StatusOnSale, lapsed.Status)
	assert.Nil(t, lapsed.ExpiredAt)
	assert.Nil(t, lapsed.CheckoutBy)
	assert.Equal(t, chapter.StatusPending, alive.Status)

	// Idempotent: the second pass is a no-op.
	reverted, err = service.ExpireLapsed(context.Background(), fixedNow)
	require.NoError(t, err)
	assert.Empty(t, reverted)
}

func ptr(s string) *string { return &s }

func ptrTime(t time.Time) *time.Time { return &t }
