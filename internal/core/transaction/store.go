// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package transaction

import (
	"context"

	"github.com/aksarapress/aksara/pkg/pagination"
)

// Repository defines the read-only persistence contract for the ledger.
type Repository interface {
	// List returns a page of history entries with flattened names. A
	// non-empty collaboratorID restricts the page to one writer's entries.
	List(context context.Context, collaboratorID string, listRequest pagination.ListRequest) ([]*History, int, error)
}
