// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package book

import (
	"context"

	"github.com/aksarapress/aksara/pkg/pagination"
)

// Repository defines the persistence contract for books.
type Repository interface {
	// List returns a page of books with flattened category names and
	// collaboration counters. An empty categoryID lists the whole catalogue.
	List(context context.Context, categoryID string, listRequest pagination.ListRequest) ([]*Book, int, error)

	// GetByID returns a single book with its flattened read fields.
	GetByID(context context.Context, id string) (*Book, error)

	Create(context context.Context, book *Book) error
	Update(context context.Context, book *Book) error
	Delete(context context.Context, id string) error

	// UpdateStatus sets the book status unconditionally (admin action).
	UpdateStatus(context context.Context, id string, status Status, isbnConfirmation *string) error

	// Stats tallies the book's chapters and its completed collaborators.
	Stats(context context.Context, bookID string) (CompletionStats, error)

	// PromoteToEditing flips a draft book to editing. The update is keyed on
	// the draft status so concurrent roll-ups and admin overrides never
	// demote a book. It reports whether a row actually changed.
	PromoteToEditing(context context.Context, bookID string) (bool, error)
}
