// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package book

import (
	"context"
	"fmt"

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

// NewPostgresRepository creates a pgx-backed book repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// sortColumns whitelists sortable columns for the list endpoints.
var sortColumns = map[string]string{
	"title":      "b." + schema.PubBook.Title,
	"status":     "b." + schema.PubBook.Status,
	"category":   "c." + schema.PubCategory.Name,
	"created_at": "b." + schema.PubBook.CreatedAt,
}

// bookSelect is the shared projection for book reads. It flattens the
// category name and tallies collaboration counters per book, using a window
// function so the total count needs no second query.
func bookSelect() string {
	b := schema.PubBook
	c := schema.PubCategory
	ch := schema.PubChapter
	col := schema.PubCollaborator

	completed := fmt.Sprintf(
		`COALESCE(col.%s, '') <> '' AND COALESCE(col.%s, '') <> '' AND COALESCE(col.%s, '') <> ''`,
		col.Script, col.Haki, col.Identity,
	)

	return fmt.Sprintf(`
		SELECT
			b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s, b.%s,
			c.%s AS category_name,
			COUNT(*) OVER() AS total_count,
			COALESCE((
				SELECT count(*)
				FROM %s col
				JOIN %s ch ON ch.%s = col.%s
				WHERE ch.%s = b.%s AND col.%s IS NULL
			), 0) AS total_collaborator,
			COALESCE((
				SELECT count(*)
				FROM %s col
				JOIN %s ch ON ch.%s = col.%s
				WHERE ch.%s = b.%s AND col.%s IS NULL AND %s
			), 0) AS total_completed_collaborator
		FROM %s b
		JOIN %s c ON c.%s = b.%s
		WHERE b.%s IS NULL
	`,
		b.ID, b.CategoryID, b.Title, b.Slug, b.Description, b.CoverURL,
		b.Status, b.ISBNConfirmation, b.CreatedAt, b.UpdatedAt,
		c.Name,
		col.Table, ch.Table, ch.ID, col.ChapterID, ch.BookID, b.ID, col.DeletedAt,
		col.Table, ch.Table, ch.ID, col.ChapterID, ch.BookID, b.ID, col.DeletedAt, completed,
		b.Table,
		c.Table, c.ID, b.CategoryID,
		b.DeletedAt,
	)
}

func scanBook(scan func(dest ...any) error, book *Book, totalCount *int) error {
	return scan(
		&book.ID, &book.CategoryID, &book.Title, &book.Slug, &book.Description,
		&book.CoverURL, &book.Status, &book.ISBNConfirmation,
		&book.CreatedAt, &book.UpdatedAt,
		&book.CategoryName, totalCount,
		&book.TotalCollaborator, &book.TotalCompletedCollaborator,
	)
}

func (repository *PostgresRepository) List(context context.Context, categoryID string, listRequest pagination.ListRequest) ([]*Book, int, error) {
	b := schema.PubBook

	builder := query.NewBuilder(bookSelect())
	builder.And(fmt.Sprintf("b.%s ILIKE $?", b.Title), "%"+listRequest.Search+"%")

	if categoryID != "" {
		builder.And(fmt.Sprintf("b.%s = $?", b.CategoryID), categoryID)
	}

	sortColumn, ok := sortColumns[listRequest.SortBy]
	if !ok {
		sortColumn = "b." + b.CreatedAt
	}
	builder.OrderBy(sortColumn, listRequest.SortDir)
	builder.Paginate(listRequest.PerPage, listRequest.Offset())

	rows, err := repository.db.Query(context, builder.SQL(), builder.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Book")
	}
	defer rows.Close()

	var books []*Book
	var total int
	for rows.Next() {
		book := &Book{}
		if err := scanBook(rows.Scan, book, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Book")
		}
		books = append(books, book)
	}

	return books, total, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Book, error) {
	query := bookSelect() + fmt.Sprintf(" AND b.%s = $1", schema.PubBook.ID)

	book := &Book{}
	var totalCount int
	row := repository.db.QueryRow(context, query, id)
	if err := scanBook(row.Scan, book, &totalCount); err != nil {
		return nil, dberr.Wrap(err, "Book")
	}

	return book, nil
}

func (repository *PostgresRepository) Create(context context.Context, book *Book) error {
	b := schema.PubBook

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s`,
		b.Table,
		b.ID, b.CategoryID, b.Title, b.Slug, b.Description, b.CoverURL,
		b.Status, b.ISBNConfirmation, b.CreatedAt, b.UpdatedAt,
		b.CreatedAt, b.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		book.ID, book.CategoryID, book.Title, book.Slug, book.Description,
		book.CoverURL, book.Status, book.ISBNConfirmation,
	).Scan(&book.CreatedAt, &book.UpdatedAt)

	return dberr.Wrap(err, "Book")
}

func (repository *PostgresRepository) Update(context context.Context, book *Book) error {
	b := schema.PubBook

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s`,
		b.Table,
		b.CategoryID, b.Title, b.Slug, b.Description, b.CoverURL, b.UpdatedAt,
		b.ID, b.DeletedAt,
		b.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		book.ID, book.CategoryID, book.Title, book.Slug, book.Description, book.CoverURL,
	).Scan(&book.UpdatedAt)

	return dberr.Wrap(err, "Book")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	b := schema.PubBook

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		b.Table, b.DeletedAt, b.ID, b.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Book")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

func (repository *PostgresRepository) UpdateStatus(context context.Context, id string, status Status, isbnConfirmation *string) error {
	b := schema.PubBook

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = COALESCE($3, %s), %s = NOW()
		WHERE %s = $1 AND %s IS NULL`,
		b.Table,
		b.Status, b.ISBNConfirmation, b.ISBNConfirmation, b.UpdatedAt,
		b.ID, b.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id, status, isbnConfirmation)
	if err != nil {
		return dberr.Wrap(err, "Book")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

func (repository *PostgresRepository) Stats(context context.Context, bookID string) (CompletionStats, error) {
	ch := schema.PubChapter
	col := schema.PubCollaborator

	query := fmt.Sprintf(`
		SELECT
			(SELECT count(*) FROM %s ch
			 WHERE ch.%s = $1 AND ch.%s IS NULL),
			(SELECT count(*) FROM %s col
			 JOIN %s ch ON ch.%s = col.%s
			 WHERE ch.%s = $1 AND col.%s IS NULL
			   AND COALESCE(col.%s, '') <> ''
			   AND COALESCE(col.%s, '') <> ''
			   AND COALESCE(col.%s, '') <> '')`,
		ch.Table, ch.BookID, ch.DeletedAt,
		col.Table, ch.Table, ch.ID, col.ChapterID, ch.BookID, col.DeletedAt,
		col.Script, col.Haki, col.Identity,
	)

	var stats CompletionStats
	err := repository.db.QueryRow(context, query, bookID).
		Scan(&stats.TotalChapters, &stats.CompletedCollaborators)
	if err != nil {
		return CompletionStats{}, dberr.Wrap(err, "Book")
	}

	return stats, nil
}

func (repository *PostgresRepository) PromoteToEditing(context context.Context, bookID string) (bool, error) {
	b := schema.PubBook

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1 AND %s = $3 AND %s IS NULL`,
		b.Table,
		b.Status, b.UpdatedAt,
		b.ID, b.Status, b.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, bookID, StatusEditing, StatusDraft)
	if err != nil {
		return false, dberr.Wrap(err, "Book")
	}

	return cmd.RowsAffected() > 0, nil
}
