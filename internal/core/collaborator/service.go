// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package collaborator

import (
	"context"
	"log/slog"
	"time"

	"github.com/aksarapress/aksara/internal/platform/validate"
	"github.com/aksarapress/aksara/pkg/pagination"
)

// DocumentsInput carries a partial document submission. Nil fields leave
// the stored document untouched.
type DocumentsInput struct {
	Script   *string `json:"script"`
	Haki     *string `json:"haki"`
	Identity *string `json:"identity"`
	Address  *string `json:"address"`
}

// Service orchestrates the collaborator document flow.
type Service struct {
	repo   Repository
	clock  func() time.Time
	logger *slog.Logger
}

// NewService constructs a collaborator [Service].
func NewService(repo Repository, clock func() time.Time, logger *slog.Logger) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		repo:   repo,
		clock:  clock,
		logger: logger,
	}
}

// # Reads

// List returns a page of collaborator records matching the search term.
func (service *Service) List(context context.Context, listRequest pagination.ListRequest) ([]*Collaborator, pagination.Meta, error) {
	return service.list(context, ListFilter{}, listRequest)
}

// Personal returns a writer's own collaborator records.
func (service *Service) Personal(context context.Context, collaboratorID string, listRequest pagination.ListRequest) ([]*Collaborator, pagination.Meta, error) {
	return service.list(context, ListFilter{CollaboratorID: collaboratorID}, listRequest)
}

func (service *Service) list(context context.Context, filter ListFilter, listRequest pagination.ListRequest) ([]*Collaborator, pagination.Meta, error) {
	listRequest.Normalize()

	collaborators, total, err := service.repo.List(context, filter, listRequest)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return collaborators, pagination.NewMeta(listRequest.Page, listRequest.PerPage, total), nil
}

// GetByID returns a single collaborator record.
func (service *Service) GetByID(context context.Context, id string) (*Collaborator, error) {
	return service.repo.GetByID(context, id)
}

// GetByChapter returns the collaborator record bound to a chapter.
func (service *Service) GetByChapter(context context.Context, chapterID string) (*Collaborator, error) {
	validator := &validate.Validator{}
	validator.Required(FieldID, chapterID).UUID(FieldID, chapterID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.GetByChapter(context, chapterID)
}

// # Document Flow

// SubmitDocuments merges the supplied documents into the record. Once all
// four documents are present the record moves to pending with an upload
// timestamp; otherwise it stays (or falls back to) need_complete. A record
// sent back for revision returns to the queue the same way.
func (service *Service) SubmitDocuments(context context.Context, id string, input DocumentsInput) (*Collaborator, error) {
	validator := &validate.Validator{}
	validator.Required(FieldID, id).UUID(FieldID, id)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	collaborator, err := service.repo.GetByID(context, id)
	if err != nil {
		return nil, err
	}

	mergeDocument(&collaborator.Script, input.Script)
	mergeDocument(&collaborator.Haki, input.Haki)
	mergeDocument(&collaborator.Identity, input.Identity)
	mergeDocument(&collaborator.Address, input.Address)

	if collaborator.DocumentsComplete() {
		collaborator.Status = StatusPending
		now := service.clock()
		collaborator.UploadedAt = &now
	} else {
		collaborator.Status = StatusNeedComplete
	}

	if err := service.repo.UpdateDocuments(context, collaborator); err != nil {
		return nil, err
	}

	service.logger.Info("collaborator_documents_submitted",
		slog.String("collaborator_id", id),
		slog.String("status", string(collaborator.Status)),
	)
	return collaborator, nil
}

// ApproveDocuments accepts a collaborator's document set.
func (service *Service) ApproveDocuments(context context.Context, id, reviewerID string) error {
	validator := &validate.Validator{}
	validator.Required(FieldID, id).UUID(FieldID, id)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.SetReview(context, id, StatusUploaded, reviewerID, nil, service.clock()); err != nil {
		return err
	}

	service.logger.Info("collaborator_documents_approved",
		slog.String("collaborator_id", id),
		slog.String("reviewer_id", reviewerID),
	)
	return nil
}

// SendBack returns a document set to the writer for revision. The notes
// tell the writer what to fix.
func (service *Service) SendBack(context context.Context, id, reviewerID, notes string) error {
	validator := &validate.Validator{}
	validator.Required(FieldID, id).
		UUID(FieldID, id).
		Required(FieldNotes, notes)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.SetReview(context, id, StatusNeedUpdate, reviewerID, &notes, service.clock()); err != nil {
		return err
	}

	service.logger.Info("collaborator_documents_sent_back",
		slog.String("collaborator_id", id),
		slog.String("reviewer_id", reviewerID),
	)
	return nil
}

// mergeDocument overwrites the stored document only when a new value was
// actually supplied.
func mergeDocument(stored **string, supplied *string) {
	if supplied != nil {
		*stored = supplied
	}
}
