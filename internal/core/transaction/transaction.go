// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

// Package transaction exposes the append-only chapter review ledger. Every
// reviewer verdict on a chapter is recorded here; entries are never
// modified or deleted.
package transaction

import "time"

// History is one reviewer verdict on a chapter.
type History struct {
	ID             string    `json:"id"`
	ChapterID      string    `json:"chapter_id"`
	CollaboratorID *string   `json:"collaborator_id"`
	CheckedByID    string    `json:"checked_by_id"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`

	// Flattened read fields.
	ChapterPart      string  `json:"chapter_part,omitempty"`
	ChapterTitle     string  `json:"chapter_title,omitempty"`
	BookTitle        string  `json:"book_title,omitempty"`
	CollaboratorName *string `json:"collaborator_name,omitempty"`
	CheckedByName    string  `json:"checked_by_name,omitempty"`
}
