// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

/*
Package collaborator manages the legal document flow that follows a closed
chapter deal.

A collaborator record is created automatically when a reviewer closes a
chapter. The writer then supplies four documents: the script, the haki
(copyright) statement, an identity document, and an address statement.
Once all four are present the record queues for review; a reviewer either
approves the upload or sends it back for revision.
*/
package collaborator

import "time"

// Status is the document-flow state of a collaborator record.
type Status string

const (
	// StatusNeedComplete means one or more documents are still missing.
	StatusNeedComplete Status = "need_complete"
	// StatusPending means all documents are in and await review.
	StatusPending Status = "pending"
	// StatusUploaded means the reviewer accepted the documents.
	StatusUploaded Status = "uploaded"
	// StatusNeedUpdate means the reviewer sent the documents back.
	StatusNeedUpdate Status = "need_update"
)

// Collaborator binds a writer to a closed chapter and tracks their
// submitted documents. At most one collaborator exists per chapter.
type Collaborator struct {
	ID             string  `json:"id"`
	ChapterID      string  `json:"chapter_id"`
	CollaboratorID string  `json:"collaborator_id"`
	Script         *string `json:"script"`
	Haki           *string `json:"haki"`
	Identity       *string `json:"identity"`
	Address        *string `json:"address"`
	Status         Status  `json:"status"`
	Notes          *string `json:"notes"`
	ReviewerID     *string `json:"reviewer_id"`

	UploadedAt *time.Time `json:"uploaded_at"`
	ReviewedAt *time.Time `json:"reviewed_at"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`

	// Flattened read fields.
	ChapterPart      string  `json:"chapter_part,omitempty"`
	ChapterTitle     string  `json:"chapter_title,omitempty"`
	BookTitle        string  `json:"book_title,omitempty"`
	CollaboratorName string  `json:"collaborator_name,omitempty"`
	ReviewerName     *string `json:"reviewer_name,omitempty"`
}

// DocumentsComplete reports whether every required document is present.
func (c *Collaborator) DocumentsComplete() bool {
	for _, doc := range []*string{c.Script, c.Haki, c.Identity, c.Address} {
		if doc == nil || *doc == "" {
			return false
		}
	}
	return true
}

// Global field names for validation
const (
	FieldID         = "id"
	FieldNotes      = "notes"
	FieldReviewerID = "reviewer_id"
)
