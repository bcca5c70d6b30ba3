// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// List endpoints on this platform are POST commands with a JSON body carrying
// search, paging, and sorting parameters. This package standardizes how those
// parameters are normalized and how the resulting metadata is delivered in
// the API response envelope.
package pagination

import "strings"

const (
	// DefaultPerPage is the number of items per page if not specified.
	DefaultPerPage = 10
	// MaxPerPage is the upper bound for items per page to prevent system abuse.
	MaxPerPage = 100
)

// ListRequest holds the search, paging, and sorting parameters shared by all
// list endpoints. Pages are zero-indexed, matching the admin frontend.
type ListRequest struct {
	Search  string `json:"cari"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_type"`
}

// Normalize clamps invalid paging values and defaults the sort direction.
//
// # Clamping
//
// Negative pages become 0; non-positive or excessive per_page values are
// clamped to [DefaultPerPage] or [MaxPerPage].
func (r *ListRequest) Normalize() {
	if r.Page < 0 {
		r.Page = 0
	}

	if r.PerPage < 1 || r.PerPage > MaxPerPage {
		r.PerPage = DefaultPerPage
	}

	if !strings.EqualFold(r.SortDir, "desc") {
		r.SortDir = "ASC"
	} else {
		r.SortDir = "DESC"
	}
}

// Offset returns the SQL OFFSET value derived from Page and PerPage.
func (r ListRequest) Offset() int {
	if r.Page <= 0 {
		return 0
	}
	return r.Page * r.PerPage
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and per_page.
func NewMeta(page, perPage, total int) Meta {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}

	return Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
