// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package collaborator

import (
	"context"
	"time"

	"github.com/aksarapress/aksara/pkg/pagination"
)

// ListFilter narrows the collaborator list beyond the free-text search.
type ListFilter struct {
	// CollaboratorID restricts the list to one writer's records.
	CollaboratorID string
}

// Repository defines the persistence contract for collaborator records.
type Repository interface {
	List(context context.Context, filter ListFilter, listRequest pagination.ListRequest) ([]*Collaborator, int, error)
	GetByID(context context.Context, id string) (*Collaborator, error)
	GetByChapter(context context.Context, chapterID string) (*Collaborator, error)

	// UpdateDocuments persists the merged document set and the recomputed
	// status and upload timestamp.
	UpdateDocuments(context context.Context, collaborator *Collaborator) error

	// SetReview records a reviewer verdict on the document set.
	SetReview(context context.Context, id string, status Status, reviewerID string, notes *string, reviewedAt time.Time) error
}
