// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package chapter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aksarapress/aksara/internal/core/chapter"
)

/*
TestCanTransition exercises the full state machine table.
*/
func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    chapter.Status
		to      chapter.Status
		allowed bool
	}{
		{"checkout", chapter.StatusOnSale, chapter.StatusPending, true},
		{"recheckout_after_rejection", chapter.StatusRejected, chapter.StatusPending, true},
		{"payment_proof", chapter.StatusPending, chapter.StatusWaiting, true},
		{"proof_replacement", chapter.StatusWaiting, chapter.StatusWaiting, true},
		{"expiry_revert", chapter.StatusPending, chapter.StatusOnSale, true},
		{"close", chapter.StatusWaiting, chapter.StatusClose, true},
		{"reject", chapter.StatusWaiting, chapter.StatusRejected, true},

		{"skip_payment", chapter.StatusOnSale, chapter.StatusWaiting, false},
		{"close_without_review", chapter.StatusPending, chapter.StatusClose, false},
		{"reopen_closed", chapter.StatusClose, chapter.StatusOnSale, false},
		{"reject_unreserved", chapter.StatusOnSale, chapter.StatusRejected, false},
		{"rejected_straight_to_waiting", chapter.StatusRejected, chapter.StatusWaiting, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, chapter.CanTransition(tt.from, tt.to))
		})
	}
}

/*
TestStatus_Valid checks the known lifecycle states.
*/
func TestStatus_Valid(t *testing.T) {
	for _, status := range []chapter.Status{
		chapter.StatusOnSale, chapter.StatusPending, chapter.StatusWaiting,
		chapter.StatusClose, chapter.StatusRejected,
	} {
		assert.True(t, status.Valid(), string(status))
	}

	assert.False(t, chapter.Status("draft").Valid())
	assert.False(t, chapter.Status("").Valid())
}
