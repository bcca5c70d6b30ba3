// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package transaction

import (
	"context"

	"github.com/aksarapress/aksara/pkg/pagination"
)

// Service exposes the review ledger to the API layer. The ledger is
// read-only here; the chapter lifecycle appends its entries and logs the
// verdicts that produce them.
type Service struct {
	repo Repository
}

// NewService constructs a transaction [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns a page of the full ledger.
func (service *Service) List(context context.Context, listRequest pagination.ListRequest) ([]*History, pagination.Meta, error) {
	return service.list(context, "", listRequest)
}

// Personal returns a writer's own ledger entries.
func (service *Service) Personal(context context.Context, collaboratorID string, listRequest pagination.ListRequest) ([]*History, pagination.Meta, error) {
	return service.list(context, collaboratorID, listRequest)
}

func (service *Service) list(context context.Context, collaboratorID string, listRequest pagination.ListRequest) ([]*History, pagination.Meta, error) {
	listRequest.Normalize()

	entries, total, err := service.repo.List(context, collaboratorID, listRequest)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return entries, pagination.NewMeta(listRequest.Page, listRequest.PerPage, total), nil
}
