// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aksarapress/aksara/pkg/pagination"
)

/*
TestListRequest_Normalize checks paging clamps and sort-direction defaulting.
*/
func TestListRequest_Normalize(t *testing.T) {
	tests := []struct {
		name        string
		in          pagination.ListRequest
		wantPage    int
		wantPerPage int
		wantSortDir string
	}{
		{"zero_values", pagination.ListRequest{}, 0, pagination.DefaultPerPage, "ASC"},
		{"negative_page", pagination.ListRequest{Page: -3, PerPage: 20}, 0, 20, "ASC"},
		{"per_page_over_max", pagination.ListRequest{PerPage: 500}, 0, pagination.DefaultPerPage, "ASC"},
		{"desc_case_insensitive", pagination.ListRequest{PerPage: 10, SortDir: "DeSc"}, 0, 10, "DESC"},
		{"unknown_dir_resets", pagination.ListRequest{PerPage: 10, SortDir: "sideways"}, 0, 10, "ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()

			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantPerPage, tt.in.PerPage)
			assert.Equal(t, tt.wantSortDir, tt.in.SortDir)
		})
	}
}

/*
TestListRequest_Offset checks the zero-indexed page to SQL OFFSET mapping.
*/
func TestListRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.ListRequest{Page: 0, PerPage: 10}.Offset())
	assert.Equal(t, 30, pagination.ListRequest{Page: 3, PerPage: 10}.Offset())
	assert.Equal(t, 0, pagination.ListRequest{Page: -1, PerPage: 10}.Offset())
}

/*
TestNewMeta checks total page calculation, including the partial last page.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		perPage   int
		wantPages int
	}{
		{"exact_fit", 30, 10, 3},
		{"partial_last_page", 31, 10, 4},
		{"empty_result", 0, 10, 0},
		{"single_item", 1, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(0, tt.perPage, tt.total)

			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.wantPages, meta.TotalPages)
		})
	}
}
