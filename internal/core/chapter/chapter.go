// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

/*
Package chapter implements the paid-chapter collaboration lifecycle.

A chapter moves through an explicit state machine:

	on_sale ──checkout──▶ pending ──payment proof──▶ waiting ──approve──▶ close
	   ▲                     │                          │
	   │                  expiry                     reject
	   └─────────────────────┘                          │
	             ┌──────────────checkout────────────────┘
	             ▼
	          pending

A writer checks out an on-sale (or previously rejected) chapter, which
reserves it for a limited time. Submitting a payment proof moves it to
waiting for review. A reviewer either closes the deal, which creates the
collaborator record, or rejects it, releasing the reservation. Reservations
that lapse without a payment proof are reverted by the sweeper.
*/
package chapter

import "time"

// Status is the lifecycle state of a chapter.
type Status string

const (
	// StatusOnSale means the chapter is open for checkout.
	StatusOnSale Status = "on_sale"
	// StatusPending means a writer holds a time-limited reservation.
	StatusPending Status = "pending"
	// StatusWaiting means a payment proof was submitted and awaits review.
	StatusWaiting Status = "waiting"
	// StatusClose means the collaboration deal was approved and sealed.
	StatusClose Status = "close"
	// StatusRejected means the reviewer declined the payment proof.
	StatusRejected Status = "rejected"
)

// transitions is the allowed state machine. Waiting loops back to itself so
// a writer may replace a payment proof before review.
var transitions = map[Status][]Status{
	StatusOnSale:   {StatusPending},
	StatusPending:  {StatusWaiting, StatusOnSale},
	StatusWaiting:  {StatusWaiting, StatusClose, StatusRejected},
	StatusRejected: {StatusPending},
	StatusClose:    {},
}

// CanTransition reports whether the state machine permits moving from one
// status to another.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Chapter is a purchasable unit of a book offered for collaboration.
type Chapter struct {
	ID           string     `json:"id"`
	BookID       string     `json:"book_id"`
	Part         string     `json:"part"`
	Title        string     `json:"title"`
	Price        int64      `json:"price"`
	Deadline     *time.Time `json:"deadline"`
	CoverURL     *string    `json:"cover_url"`
	Status       Status     `json:"status"`
	PaymentProof *string    `json:"payment_proof"`
	Notes        *string    `json:"notes"`

	// Reservation bookkeeping. ExpiredAt is set on checkout and survives
	// into waiting until the verdict or the sweeper clears it; CheckoutBy
	// survives into waiting and close.
	ExpiredAt  *time.Time `json:"expired_at"`
	CheckoutBy *string    `json:"checkout_by"`

	// Review outcome.
	CheckedByID    *string `json:"checked_by_id"`
	CollaboratedBy *string `json:"collaborated_by"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`

	// Flattened read fields.
	BookTitle          string  `json:"book_title,omitempty"`
	CategoryName       string  `json:"category_name,omitempty"`
	CheckoutByName     *string `json:"checkout_by_name,omitempty"`
	CollaboratedByName *string `json:"collaborated_by_name,omitempty"`
}

// Decision is a reviewer's verdict on a waiting chapter.
type Decision = Status

// Global field names for validation
const (
	FieldID           = "id"
	FieldBookID       = "book_id"
	FieldPart         = "part"
	FieldTitle        = "title"
	FieldPrice        = "price"
	FieldPaymentProof = "payment_proof"
	FieldDecision     = "decision"
	FieldUserID       = "user_id"
)
