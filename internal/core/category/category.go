// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

// Package category manages the publishing catalogue's subject taxonomy.
package category

import "time"

// Category groups books into a browsable section of the catalogue.
type Category struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	ImageURL    *string    `json:"image_url"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"` // soft-delete tracker
}

// Global field names for validation
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldImageURL    = "image_url"
	FieldDescription = "description"
)
