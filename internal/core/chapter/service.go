// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package chapter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/aksarapress/aksara/internal/platform/apperr"
	"github.com/aksarapress/aksara/internal/platform/excel"
	"github.com/aksarapress/aksara/internal/platform/validate"
	"github.com/aksarapress/aksara/pkg/pagination"
	"github.com/aksarapress/aksara/pkg/pointer"
	"github.com/aksarapress/aksara/pkg/uuid"
)

// importHeaders is the column layout of the bulk-import spreadsheet.
var importHeaders = []string{"book_id", "part", "title", "price", "deadline"}

// importDateLayout is the expected format of the deadline column.
const importDateLayout = "2006-01-02"

// Service orchestrates the chapter collaboration lifecycle.
type Service struct {
	repo        Repository
	checkoutTTL time.Duration
	clock       func() time.Time
	logger      *slog.Logger
}

// NewService constructs a chapter [Service]. The clock is injectable so
// reservation expiry can be exercised deterministically.
func NewService(repo Repository, checkoutTTL time.Duration, clock func() time.Time, logger *slog.Logger) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		repo:        repo,
		checkoutTTL: checkoutTTL,
		clock:       clock,
		logger:      logger,
	}
}

// # Reads

// List returns a page of chapters matching the free-text search.
func (service *Service) List(context context.Context, listRequest pagination.ListRequest) ([]*Chapter, pagination.Meta, error) {
	return service.list(context, ListFilter{}, listRequest)
}

// ListByBook returns a page of one book's chapters.
func (service *Service) ListByBook(context context.Context, bookID string, listRequest pagination.ListRequest) ([]*Chapter, pagination.Meta, error) {
	validator := &validate.Validator{}
	validator.Required(FieldBookID, bookID).UUID(FieldBookID, bookID)
	if err := validator.Err(); err != nil {
		return nil, pagination.Meta{}, err
	}

	return service.list(context, ListFilter{BookID: bookID}, listRequest)
}

// PersonalCheckouts returns the chapters a writer currently holds.
func (service *Service) PersonalCheckouts(context context.Context, userID string, listRequest pagination.ListRequest) ([]*Chapter, pagination.Meta, error) {
	return service.list(context, ListFilter{CheckoutBy: userID}, listRequest)
}

// WaitingList returns the chapters awaiting a reviewer's verdict.
func (service *Service) WaitingList(context context.Context, listRequest pagination.ListRequest) ([]*Chapter, pagination.Meta, error) {
	return service.list(context, ListFilter{Status: StatusWaiting}, listRequest)
}

func (service *Service) list(context context.Context, filter ListFilter, listRequest pagination.ListRequest) ([]*Chapter, pagination.Meta, error) {
	listRequest.Normalize()

	chapters, total, err := service.repo.List(context, filter, listRequest)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return chapters, pagination.NewMeta(listRequest.Page, listRequest.PerPage, total), nil
}

// GetByID returns a single chapter.
func (service *Service) GetByID(context context.Context, id string) (*Chapter, error) {
	return service.repo.GetByID(context, id)
}

// # Management

// Create validates and persists a new chapter on sale. The part label must
// be unique within the book; a duplicate surfaces as a Conflict.
func (service *Service) Create(context context.Context, chapter *Chapter) error {
	validator := &validate.Validator{}
	validator.Required(FieldBookID, chapter.BookID).
		UUID(FieldBookID, chapter.BookID).
		Required(FieldPart, chapter.Part).
		MaxLen(FieldPart, chapter.Part, 50).
		Required(FieldTitle, chapter.Title).
		MaxLen(FieldTitle, chapter.Title, 255).
		Custom(FieldPrice, chapter.Price <= 0, "price must be positive")

	if err := validator.Err(); err != nil {
		return err
	}

	chapter.ID = uuid.New()
	chapter.Status = StatusOnSale

	if err := service.repo.Create(context, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("book_id", chapter.BookID),
		slog.String("part", chapter.Part),
	)
	return nil
}

// Update validates and applies changes to a chapter's sale attributes.
// Lifecycle fields are owned by the lifecycle operations and stay untouched.
func (service *Service) Update(context context.Context, id string, chapter *Chapter) error {
	validator := &validate.Validator{}
	validator.Required(FieldID, id).
		UUID(FieldID, id).
		Required(FieldPart, chapter.Part).
		MaxLen(FieldPart, chapter.Part, 50).
		Required(FieldTitle, chapter.Title).
		MaxLen(FieldTitle, chapter.Title, 255).
		Custom(FieldPrice, chapter.Price <= 0, "price must be positive")

	if err := validator.Err(); err != nil {
		return err
	}

	chapter.ID = id

	if err := service.repo.Update(context, chapter); err != nil {
		return err
	}

	service.logger.Info("chapter_updated", slog.String("chapter_id", id))
	return nil
}

// Delete soft-deletes a chapter.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("chapter_deleted", slog.String("chapter_id", id))
	return nil
}

// # Lifecycle

// checkTransition rejects a lifecycle call whose target state the machine
// does not permit from the chapter's current status. The store re-checks
// the same condition with a conditional update, so a racing writer between
// the read here and the write still gets a Conflict, never a bad state.
func (service *Service) checkTransition(context context.Context, chapterID string, to Status, conflictMessage string) error {
	current, err := service.repo.GetByID(context, chapterID)
	if err != nil {
		return err
	}
	if !CanTransition(current.Status, to) {
		return apperr.Conflict(conflictMessage)
	}
	return nil
}

// Checkout reserves a chapter for a writer. The reservation expires after
// the configured TTL unless a payment proof arrives first. Rejected
// chapters are open for a fresh checkout.
func (service *Service) Checkout(context context.Context, chapterID, userID string) error {
	validator := &validate.Validator{}
	validator.Required(FieldID, chapterID).
		UUID(FieldID, chapterID).
		Required(FieldUserID, userID).
		UUID(FieldUserID, userID)

	if err := validator.Err(); err != nil {
		return err
	}

	exists, err := service.repo.UserExists(context, userID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("User")
	}

	if err := service.checkTransition(context, chapterID, StatusPending, "Chapter is not available for checkout"); err != nil {
		return err
	}

	expiresAt := service.clock().Add(service.checkoutTTL)
	if err := service.repo.Checkout(context, chapterID, userID, expiresAt); err != nil {
		return err
	}

	service.logger.Info("chapter_checked_out",
		slog.String("chapter_id", chapterID),
		slog.String("user_id", userID),
		slog.Time("expires_at", expiresAt),
	)
	return nil
}

// SubmitPaymentProof attaches a payment proof to a reserved chapter and
// queues it for review. A waiting chapter accepts a replacement proof.
func (service *Service) SubmitPaymentProof(context context.Context, chapterID, proof string) error {
	validator := &validate.Validator{}
	validator.Required(FieldID, chapterID).
		UUID(FieldID, chapterID).
		Required(FieldPaymentProof, proof)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.checkTransition(context, chapterID, StatusWaiting, "Chapter is not reserved for payment"); err != nil {
		return err
	}

	if err := service.repo.SetPaymentProof(context, chapterID, proof); err != nil {
		return err
	}

	service.logger.Info("chapter_payment_submitted", slog.String("chapter_id", chapterID))
	return nil
}

// Approve records a reviewer's verdict on a waiting chapter. Closing the
// deal seals the collaboration and opens the collaborator document flow;
// rejecting releases the reservation. Either way one transaction history
// entry is appended. Blank notes default to "-".
func (service *Service) Approve(context context.Context, chapterID, reviewerID string, decision Decision, notes string) error {
	validator := &validate.Validator{}
	validator.Required(FieldID, chapterID).
		UUID(FieldID, chapterID).
		OneOf(FieldDecision, string(decision), string(StatusClose), string(StatusRejected))

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.checkTransition(context, chapterID, decision, "Chapter is not awaiting approval"); err != nil {
		return err
	}

	if notes == "" {
		notes = "-"
	}

	input := FinalizeInput{
		ChapterID:  chapterID,
		ReviewerID: reviewerID,
		Decision:   decision,
		Notes:      notes,
	}
	if err := service.repo.Finalize(context, input); err != nil {
		return err
	}

	service.logger.Info("chapter_reviewed",
		slog.String("chapter_id", chapterID),
		slog.String("reviewer_id", reviewerID),
		slog.String("decision", string(decision)),
	)
	return nil
}

// ExpireLapsed reverts lapsed reservations back to on_sale and returns the
// reverted chapter ids. The sweeper calls this on every tick.
func (service *Service) ExpireLapsed(context context.Context, now time.Time) ([]string, error) {
	return service.repo.ExpireLapsed(context, now)
}

// # Bulk Import

// Template builds the xlsx import template for chapters.
func (service *Service) Template() ([]byte, error) {
	return excel.BuildTemplate(importHeaders)
}

// Import reads an xlsx upload and creates one chapter per data row. It
// returns the number created; the first invalid row aborts the import.
func (service *Service) Import(context context.Context, reader io.Reader) (int, error) {
	rows, err := excel.ParseRows(reader)
	if err != nil {
		return 0, err
	}

	imported := 0
	for index, row := range rows {
		chapter, err := chapterFromRow(row)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", index+2, err)
		}

		if err := service.Create(context, chapter); err != nil {
			return imported, fmt.Errorf("row %d: %w", index+2, err)
		}
		imported++
	}

	service.logger.Info("chapters_imported", slog.Int("count", imported))
	return imported, nil
}

func chapterFromRow(row []string) (*Chapter, error) {
	chapter := &Chapter{
		BookID: excel.Cell(row, 0),
		Part:   excel.Cell(row, 1),
		Title:  excel.Cell(row, 2),
	}

	if raw := excel.Cell(row, 3); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, apperr.ValidationError("price must be a whole number")
		}
		chapter.Price = price
	}

	if raw := excel.Cell(row, 4); raw != "" {
		deadline, err := time.Parse(importDateLayout, raw)
		if err != nil {
			return nil, apperr.ValidationError("deadline must be formatted as YYYY-MM-DD")
		}
		chapter.Deadline = pointer.To(deadline)
	}

	return chapter, nil
}
