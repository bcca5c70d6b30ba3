// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package book

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aksarapress/aksara/internal/platform/excel"
	"github.com/aksarapress/aksara/internal/platform/validate"
	"github.com/aksarapress/aksara/pkg/pagination"
	"github.com/aksarapress/aksara/pkg/pointer"
	"github.com/aksarapress/aksara/pkg/slug"
	"github.com/aksarapress/aksara/pkg/uuid"
)

// importHeaders is the column layout of the bulk-import spreadsheet.
var importHeaders = []string{"category_id", "title", "description", "cover_url"}

// Service orchestrates book catalogue operations and the status roll-up.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a book [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Reads

// List returns a page of books. Each listed book gets a status roll-up pass
// first, so collaboration progress made since the last read is reflected.
func (service *Service) List(context context.Context, listRequest pagination.ListRequest) ([]*Book, pagination.Meta, error) {
	return service.list(context, "", listRequest)
}

// ListByCategory returns a page of books within one category, with the same
// roll-up behavior as [Service.List].
func (service *Service) ListByCategory(context context.Context, categoryID string, listRequest pagination.ListRequest) ([]*Book, pagination.Meta, error) {
	validator := &validate.Validator{}
	validator.Required(FieldCategoryID, categoryID).UUID(FieldCategoryID, categoryID)
	if err := validator.Err(); err != nil {
		return nil, pagination.Meta{}, err
	}

	return service.list(context, categoryID, listRequest)
}

func (service *Service) list(context context.Context, categoryID string, listRequest pagination.ListRequest) ([]*Book, pagination.Meta, error) {
	listRequest.Normalize()

	books, total, err := service.repo.List(context, categoryID, listRequest)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	for _, book := range books {
		promoted, err := service.RecomputeStatus(context, book.ID)
		if err != nil {
			service.logger.Error("book_rollup_failed",
				slog.String("book_id", book.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		if promoted {
			book.Status = StatusEditing
		}
	}

	return books, pagination.NewMeta(listRequest.Page, listRequest.PerPage, total), nil
}

// GetByID returns a single book.
func (service *Service) GetByID(context context.Context, id string) (*Book, error) {
	return service.repo.GetByID(context, id)
}

// # Management

// Create validates and persists a new book in draft status.
func (service *Service) Create(context context.Context, book *Book) error {
	validator := &validate.Validator{}
	validator.Required(FieldCategoryID, book.CategoryID).
		UUID(FieldCategoryID, book.CategoryID).
		Required(FieldTitle, book.Title).
		MaxLen(FieldTitle, book.Title, 255)

	if err := validator.Err(); err != nil {
		return err
	}

	book.ID = uuid.New()
	book.Slug = slug.From(book.Title)
	book.Status = StatusDraft

	if err := service.repo.Create(context, book); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("title", book.Title),
	)
	return nil
}

// Update validates and applies changes to an existing book. The status is
// never touched here; use [Service.UpdateStatus] for lifecycle moves.
func (service *Service) Update(context context.Context, id string, book *Book) error {
	validator := &validate.Validator{}
	validator.Required(FieldID, id).
		UUID(FieldID, id).
		Required(FieldCategoryID, book.CategoryID).
		UUID(FieldCategoryID, book.CategoryID).
		Required(FieldTitle, book.Title).
		MaxLen(FieldTitle, book.Title, 255)

	if err := validator.Err(); err != nil {
		return err
	}

	book.ID = id
	book.Slug = slug.From(book.Title)

	if err := service.repo.Update(context, book); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.String("book_id", id))
	return nil
}

// Delete soft-deletes a book.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("book_id", id))
	return nil
}

// UpdateStatus sets the book's lifecycle status directly. Submitting for an
// ISBN requires the registration confirmation reference.
func (service *Service) UpdateStatus(context context.Context, id string, status Status, isbnConfirmation *string) error {
	validator := &validate.Validator{}
	validator.Required(FieldID, id).
		UUID(FieldID, id).
		Custom(FieldStatus, !status.Valid(), "invalid book status").
		Custom(FieldISBNConfirmation,
			status == StatusISBNSubmission && pointer.Val(isbnConfirmation) == "",
			"isbn_confirmation is required for isbn_submission")

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateStatus(context, id, status, isbnConfirmation); err != nil {
		return err
	}

	service.logger.Info("book_status_updated",
		slog.String("book_id", id),
		slog.String("status", string(status)),
	)
	return nil
}

// # Status Roll-Up

// RecomputeStatus promotes a draft book to editing once at least half of its
// chapters (rounded up) have a completed collaborator. It never demotes and
// is safe to call repeatedly. It reports whether the book was promoted.
func (service *Service) RecomputeStatus(context context.Context, bookID string) (bool, error) {
	stats, err := service.repo.Stats(context, bookID)
	if err != nil {
		return false, err
	}

	if stats.TotalChapters == 0 {
		return false, nil
	}

	threshold := (stats.TotalChapters + 1) / 2
	if stats.CompletedCollaborators < threshold {
		return false, nil
	}

	promoted, err := service.repo.PromoteToEditing(context, bookID)
	if err != nil {
		return false, err
	}

	if promoted {
		service.logger.Info("book_promoted_to_editing",
			slog.String("book_id", bookID),
			slog.Int("total_chapters", stats.TotalChapters),
			slog.Int("completed_collaborators", stats.CompletedCollaborators),
		)
	}
	return promoted, nil
}

// # Bulk Import

// Template builds the xlsx import template for books.
func (service *Service) Template() ([]byte, error) {
	return excel.BuildTemplate(importHeaders)
}

// Import reads an xlsx upload and creates one book per data row. It returns
// the number of books created; the first invalid row aborts the import.
func (service *Service) Import(context context.Context, reader io.Reader) (int, error) {
	rows, err := excel.ParseRows(reader)
	if err != nil {
		return 0, err
	}

	imported := 0
	for index, row := range rows {
		book := &Book{
			CategoryID:  excel.Cell(row, 0),
			Title:       excel.Cell(row, 1),
			Description: pointer.NilIfEmpty(excel.Cell(row, 2)),
			CoverURL:    pointer.NilIfEmpty(excel.Cell(row, 3)),
		}

		if err := service.Create(context, book); err != nil {
			return imported, fmt.Errorf("row %d: %w", index+2, err)
		}
		imported++
	}

	service.logger.Info("books_imported", slog.Int("count", imported))
	return imported, nil
}
