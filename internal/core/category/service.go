// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package category

import (
	"context"
	"log/slog"

	"github.com/aksarapress/aksara/internal/platform/validate"
	"github.com/aksarapress/aksara/pkg/pagination"
	"github.com/aksarapress/aksara/pkg/slug"
	"github.com/aksarapress/aksara/pkg/uuid"
)

// Service orchestrates category catalogue operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a category [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns a page of categories matching the search term.
func (service *Service) List(context context.Context, listRequest pagination.ListRequest) ([]*Category, pagination.Meta, error) {
	listRequest.Normalize()

	categories, total, err := service.repo.List(context, listRequest)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return categories, pagination.NewMeta(listRequest.Page, listRequest.PerPage, total), nil
}

// GetByID returns a single category.
func (service *Service) GetByID(context context.Context, id string) (*Category, error) {
	return service.repo.GetByID(context, id)
}

// Create validates and persists a new category with a derived slug.
func (service *Service) Create(context context.Context, category *Category) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, 120)

	if err := validator.Err(); err != nil {
		return err
	}

	category.ID = uuid.New()
	category.Slug = slug.From(category.Name)

	if err := service.repo.Create(context, category); err != nil {
		return err
	}

	service.logger.Info("category_created",
		slog.String("category_id", category.ID),
		slog.String("name", category.Name),
	)
	return nil
}

// Update validates and applies changes to an existing category.
// The slug is re-derived whenever the name changes.
func (service *Service) Update(context context.Context, id string, category *Category) error {
	validator := &validate.Validator{}
	validator.Required(FieldID, id).
		UUID(FieldID, id).
		Required(FieldName, category.Name).
		MaxLen(FieldName, category.Name, 120)

	if err := validator.Err(); err != nil {
		return err
	}

	category.ID = id
	category.Slug = slug.From(category.Name)

	if err := service.repo.Update(context, category); err != nil {
		return err
	}

	service.logger.Info("category_updated", slog.String("category_id", id))
	return nil
}

// Delete soft-deletes a category.
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("category_deleted", slog.String("category_id", id))
	return nil
}
