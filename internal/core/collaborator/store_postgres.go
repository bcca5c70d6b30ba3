// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package collaborator

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aksarapress/aksara/internal/platform/apperr"
	"github.com/aksarapress/aksara/internal/platform/database/schema"
	"github.com/aksarapress/aksara/internal/platform/dberr"
	"github.com/aksarapress/aksara/pkg/pagination"
	"github.com/aksarapress/aksara/pkg/query"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a pgx-backed collaborator repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// sortColumns whitelists sortable columns for the list endpoints.
var sortColumns = map[string]string{
	"status":      "col." + schema.PubCollaborator.Status,
	"uploaded_at": "col." + schema.PubCollaborator.UploadedAt,
	"created_at":  "col." + schema.PubCollaborator.CreatedAt,
}

// collaboratorSelect is the shared projection for collaborator reads. It
// flattens the chapter, book, member, and reviewer names.
func collaboratorSelect() string {
	col := schema.PubCollaborator
	ch := schema.PubChapter
	b := schema.PubBook
	a := schema.UserAccount

	return fmt.Sprintf(`
		SELECT
			col.%s, col.%s, col.%s, col.%s, col.%s, col.%s, col.%s, col.%s,
			col.%s, col.%s, col.%s, col.%s, col.%s, col.%s,
			ch.%s AS chapter_part,
			ch.%s AS chapter_title,
			b.%s AS book_title,
			m.%s AS collaborator_name,
			r.%s AS reviewer_name,
			COUNT(*) OVER() AS total_count
		FROM %s col
		JOIN %s ch ON ch.%s = col.%s
		JOIN %s b ON b.%s = ch.%s
		JOIN %s m ON m.%s = col.%s
		LEFT JOIN %s r ON r.%s = col.%s
		WHERE col.%s IS NULL
	`,
		col.ID, col.ChapterID, col.CollaboratorID, col.Script, col.Haki,
		col.Identity, col.Address, col.Status,
		col.Notes, col.ReviewerID, col.UploadedAt, col.ReviewedAt,
		col.CreatedAt, col.UpdatedAt,
		ch.Part,
		ch.Title,
		b.Title,
		a.FullName,
		a.FullName,
		col.Table,
		ch.Table, ch.ID, col.ChapterID,
		b.Table, b.ID, ch.BookID,
		a.Table, a.ID, col.CollaboratorID,
		a.Table, a.ID, col.ReviewerID,
		col.DeletedAt,
	)
}

func scanCollaborator(scan func(dest ...any) error, collaborator *Collaborator, totalCount *int) error {
	return scan(
		&collaborator.ID, &collaborator.ChapterID, &collaborator.CollaboratorID,
		&collaborator.Script, &collaborator.Haki, &collaborator.Identity,
		&collaborator.Address, &collaborator.Status,
		&collaborator.Notes, &collaborator.ReviewerID,
		&collaborator.UploadedAt, &collaborator.ReviewedAt,
		&collaborator.CreatedAt, &collaborator.UpdatedAt,
		&collaborator.ChapterPart, &collaborator.ChapterTitle, &collaborator.BookTitle,
		&collaborator.CollaboratorName, &collaborator.ReviewerName,
		totalCount,
	)
}

func (repository *PostgresRepository) List(context context.Context, filter ListFilter, listRequest pagination.ListRequest) ([]*Collaborator, int, error) {
	col := schema.PubCollaborator
	ch := schema.PubChapter
	a := schema.UserAccount

	builder := query.NewBuilder(collaboratorSelect())
	builder.And(
		fmt.Sprintf("(ch.%s ILIKE $? OR ch.%s ILIKE $? OR m.%s ILIKE $?)", ch.Part, ch.Title, a.FullName),
		"%"+listRequest.Search+"%",
	)

	if filter.CollaboratorID != "" {
		builder.And(fmt.Sprintf("col.%s = $?", col.CollaboratorID), filter.CollaboratorID)
	}

	sortColumn, ok := sortColumns[listRequest.SortBy]
	if !ok {
		sortColumn = "col." + col.CreatedAt
	}
	builder.OrderBy(sortColumn, listRequest.SortDir)
	builder.Paginate(listRequest.PerPage, listRequest.Offset())

	rows, err := repository.db.Query(context, builder.SQL(), builder.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Collaborator")
	}
	defer rows.Close()

	var collaborators []*Collaborator
	var total int
	for rows.Next() {
		collaborator := &Collaborator{}
		if err := scanCollaborator(rows.Scan, collaborator, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Collaborator")
		}
		collaborators = append(collaborators, collaborator)
	}

	return collaborators, total, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Collaborator, error) {
	query := collaboratorSelect() + fmt.Sprintf(" AND col.%s = $1", schema.PubCollaborator.ID)
	return repository.getOne(context, query, id)
}

func (repository *PostgresRepository) GetByChapter(context context.Context, chapterID string) (*Collaborator, error) {
	query := collaboratorSelect() + fmt.Sprintf(" AND col.%s = $1", schema.PubCollaborator.ChapterID)
	return repository.getOne(context, query, chapterID)
}

func (repository *PostgresRepository) getOne(context context.Context, query, arg string) (*Collaborator, error) {
	collaborator := &Collaborator{}
	var totalCount int
	row := repository.db.QueryRow(context, query, arg)
	if err := scanCollaborator(row.Scan, collaborator, &totalCount); err != nil {
		return nil, dberr.Wrap(err, "Collaborator")
	}
	return collaborator, nil
}

func (repository *PostgresRepository) UpdateDocuments(context context.Context, collaborator *Collaborator) error {
	col := schema.PubCollaborator

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s`,
		col.Table,
		col.Script, col.Haki, col.Identity, col.Address, col.Status,
		col.UploadedAt, col.UpdatedAt,
		col.ID, col.DeletedAt,
		col.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		collaborator.ID, collaborator.Script, collaborator.Haki,
		collaborator.Identity, collaborator.Address, collaborator.Status,
		collaborator.UploadedAt,
	).Scan(&collaborator.UpdatedAt)

	return dberr.Wrap(err, "Collaborator")
}

func (repository *PostgresRepository) SetReview(context context.Context, id string, status Status, reviewerID string, notes *string, reviewedAt time.Time) error {
	col := schema.PubCollaborator

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = COALESCE($4, %s), %s = $5, %s = NOW()
		WHERE %s = $1 AND %s IS NULL`,
		col.Table,
		col.Status, col.ReviewerID, col.Notes, col.Notes, col.ReviewedAt, col.UpdatedAt,
		col.ID, col.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id, status, reviewerID, notes, reviewedAt)
	if err != nil {
		return dberr.Wrap(err, "Collaborator")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Collaborator")
	}
	return nil
}
