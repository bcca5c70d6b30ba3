// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

// Package book manages the publishing catalogue's books and the editorial
// status roll-up driven by chapter collaboration progress.
package book

import "time"

// Status is the editorial lifecycle state of a book.
type Status string

const (
	// StatusDraft is the initial state; chapters are still being collaborated.
	StatusDraft Status = "draft"
	// StatusEditing is reached automatically once at least half of the
	// book's chapters have a completed collaborator.
	StatusEditing Status = "editing"
	// StatusISBNSubmission marks the book as submitted for ISBN registration.
	StatusISBNSubmission Status = "isbn_submission"
	// StatusPublished marks the book as released digitally.
	StatusPublished Status = "published"
	// StatusPrinted marks the book as sent to print.
	StatusPrinted Status = "printed"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusEditing, StatusISBNSubmission, StatusPublished, StatusPrinted:
		return true
	}
	return false
}

// Book is a catalogue publication grouping chapters under a category.
type Book struct {
	ID               string     `json:"id"`
	CategoryID       string     `json:"category_id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Description      *string    `json:"description"`
	CoverURL         *string    `json:"cover_url"`
	Status           Status     `json:"status"`
	ISBNConfirmation *string    `json:"isbn_confirmation"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"-"`

	// CategoryName is flattened from the category join on reads.
	CategoryName string `json:"category_name,omitempty"`

	// Collaboration progress counters flattened on reads.
	TotalCollaborator          int `json:"total_collaborator"`
	TotalCompletedCollaborator int `json:"total_completed_collaborator"`
}

// CompletionStats is the per-book chapter collaboration tally used by the
// status roll-up.
type CompletionStats struct {
	TotalChapters          int
	CompletedCollaborators int
}

// Global field names for validation
const (
	FieldID               = "id"
	FieldCategoryID       = "category_id"
	FieldTitle            = "title"
	FieldStatus           = "status"
	FieldISBNConfirmation = "isbn_confirmation"
)
