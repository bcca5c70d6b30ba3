// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package chapter

import (
	"context"
	"time"

	"github.com/aksarapress/aksara/pkg/pagination"
)

// ListFilter narrows the chapter list beyond the free-text search.
type ListFilter struct {
	// BookID restricts the list to one book when non-empty.
	BookID string
	// Status restricts the list to one lifecycle state when non-empty.
	Status Status
	// CheckoutBy restricts the list to one writer's reservations.
	CheckoutBy string
}

// FinalizeInput carries a reviewer's verdict into the store.
type FinalizeInput struct {
	ChapterID  string
	ReviewerID string
	Decision   Decision
	Notes      string
}

// Repository defines the persistence contract for chapters.
//
// The lifecycle mutations (Checkout, SetPaymentProof, Finalize, ExpireLapsed)
// are conditional updates keyed on the current status, so racing callers
// resolve to exactly one winner.
type Repository interface {
	List(context context.Context, filter ListFilter, listRequest pagination.ListRequest) ([]*Chapter, int, error)
	GetByID(context context.Context, id string) (*Chapter, error)
	Create(context context.Context, chapter *Chapter) error
	Update(context context.Context, chapter *Chapter) error
	Delete(context context.Context, id string) error

	// Checkout reserves an on-sale or rejected chapter for userID until
	// expiresAt. A chapter in any other state yields a Conflict.
	Checkout(context context.Context, chapterID, userID string, expiresAt time.Time) error

	// SetPaymentProof stores the proof and moves the chapter to waiting.
	// Allowed from pending and from waiting (proof replacement).
	SetPaymentProof(context context.Context, chapterID, proof string) error

	// Finalize applies a close or rejected verdict to a waiting chapter in
	// one transaction: the status move, the collaborator record on close,
	// and the transaction history entry. A second verdict on the same
	// chapter yields a Conflict.
	Finalize(context context.Context, input FinalizeInput) error

	// ExpireLapsed reverts every pending chapter whose reservation lapsed
	// at or before now back to on_sale, returning the reverted ids.
	ExpireLapsed(context context.Context, now time.Time) ([]string, error)

	// UserExists reports whether a member account exists. Checkout uses it
	// to reject reservations for unknown users before touching the chapter.
	UserExists(context context.Context, userID string) (bool, error)
}
