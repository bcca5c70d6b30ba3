// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package category

import (
	"context"

	"github.com/aksarapress/aksara/pkg/pagination"
)

// Repository defines the persistence contract for categories.
type Repository interface {
	List(context context.Context, listRequest pagination.ListRequest) ([]*Category, int, error)
	GetByID(context context.Context, id string) (*Category, error)
	Create(context context.Context, category *Category) error
	Update(context context.Context, category *Category) error
	Delete(context context.Context, id string) error
}
