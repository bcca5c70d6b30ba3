// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package chapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aksarapress/aksara/internal/platform/apperr"
	"github.com/aksarapress/aksara/internal/platform/database/schema"
	"github.com/aksarapress/aksara/internal/platform/dberr"
	"github.com/aksarapress/aksara/pkg/pagination"
	"github.com/aksarapress/aksara/pkg/query"
	"github.com/aksarapress/aksara/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a pgx-backed chapter repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// sortColumns whitelists sortable columns for the list endpoints.
var sortColumns = map[string]string{
	"part":       "ch." + schema.PubChapter.Part,
	"title":      "ch." + schema.PubChapter.Title,
	"price":      "ch." + schema.PubChapter.Price,
	"status":     "ch." + schema.PubChapter.Status,
	"expired_at": "ch." + schema.PubChapter.ExpiredAt,
	"created_at": "ch." + schema.PubChapter.CreatedAt,
}

// chapterSelect is the shared projection for chapter reads. It flattens the
// book title, its category name, and the member names bound to the
// reservation, and carries the total count as a window function.
func chapterSelect() string {
	ch := schema.PubChapter
	b := schema.PubBook
	c := schema.PubCategory
	a := schema.UserAccount

	return fmt.Sprintf(`
		SELECT
			ch.%s, ch.%s, ch.%s, ch.%s, ch.%s, ch.%s, ch.%s, ch.%s, ch.%s, ch.%s,
			ch.%s, ch.%s, ch.%s, ch.%s, ch.%s, ch.%s,
			b.%s AS book_title,
			c.%s AS category_name,
			co.%s AS checkout_by_name,
			cb.%s AS collaborated_by_name,
			COUNT(*) OVER() AS total_count
		FROM %s ch
		JOIN %s b ON b.%s = ch.%s
		JOIN %s c ON c.%s = b.%s
		LEFT JOIN %s co ON co.%s = ch.%s
		LEFT JOIN %s cb ON cb.%s = ch.%s
		WHERE ch.%s IS NULL
	`,
		ch.ID, ch.BookID, ch.Part, ch.Title, ch.Price, ch.Deadline, ch.CoverURL,
		ch.Status, ch.PaymentProof, ch.Notes,
		ch.ExpiredAt, ch.CheckoutBy, ch.CheckedByID, ch.CollaboratedBy,
		ch.CreatedAt, ch.UpdatedAt,
		b.Title,
		c.Name,
		a.FullName,
		a.FullName,
		ch.Table,
		b.Table, b.ID, ch.BookID,
		c.Table, c.ID, b.CategoryID,
		a.Table, a.ID, ch.CheckoutBy,
		a.Table, a.ID, ch.CollaboratedBy,
		ch.DeletedAt,
	)
}

func scanChapter(scan func(dest ...any) error, chapter *Chapter, totalCount *int) error {
	return scan(
		&chapter.ID, &chapter.BookID, &chapter.Part, &chapter.Title, &chapter.Price,
		&chapter.Deadline, &chapter.CoverURL, &chapter.Status, &chapter.PaymentProof,
		&chapter.Notes, &chapter.ExpiredAt, &chapter.CheckoutBy, &chapter.CheckedByID,
		&chapter.CollaboratedBy, &chapter.CreatedAt, &chapter.UpdatedAt,
		&chapter.BookTitle, &chapter.CategoryName,
		&chapter.CheckoutByName, &chapter.CollaboratedByName,
		totalCount,
	)
}

func (repository *PostgresRepository) List(context context.Context, filter ListFilter, listRequest pagination.ListRequest) ([]*Chapter, int, error) {
	ch := schema.PubChapter

	builder := query.NewBuilder(chapterSelect())
	builder.And(fmt.Sprintf("(ch.%s ILIKE $? OR ch.%s ILIKE $?)", ch.Part, ch.Title), "%"+listRequest.Search+"%")

	if filter.BookID != "" {
		builder.And(fmt.Sprintf("ch.%s = $?", ch.BookID), filter.BookID)
	}

	if filter.Status != "" {
		builder.And(fmt.Sprintf("ch.%s = $?", ch.Status), filter.Status)
	}

	if filter.CheckoutBy != "" {
		builder.And(fmt.Sprintf("ch.%s = $?", ch.CheckoutBy), filter.CheckoutBy)
	}

	sortColumn, ok := sortColumns[listRequest.SortBy]
	if !ok {
		sortColumn = "ch." + ch.CreatedAt
	}
	builder.OrderBy(sortColumn, listRequest.SortDir)
	builder.Paginate(listRequest.PerPage, listRequest.Offset())

	rows, err := repository.db.Query(context, builder.SQL(), builder.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Chapter")
	}
	defer rows.Close()

	var chapters []*Chapter
	var total int
	for rows.Next() {
		chapter := &Chapter{}
		if err := scanChapter(rows.Scan, chapter, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "Chapter")
		}
		chapters = append(chapters, chapter)
	}

	return chapters, total, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Chapter, error) {
	query := chapterSelect() + fmt.Sprintf(" AND ch.%s = $1", schema.PubChapter.ID)

	chapter := &Chapter{}
	var totalCount int
	row := repository.db.QueryRow(context, query, id)
	if err := scanChapter(row.Scan, chapter, &totalCount); err != nil {
		return nil, dberr.Wrap(err, "Chapter")
	}

	return chapter, nil
}

func (repository *PostgresRepository) Create(context context.Context, chapter *Chapter) error {
	ch := schema.PubChapter

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s`,
		ch.Table,
		ch.ID, ch.BookID, ch.Part, ch.Title, ch.Price, ch.Deadline, ch.CoverURL,
		ch.Status, ch.CreatedAt, ch.UpdatedAt,
		ch.CreatedAt, ch.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		chapter.ID, chapter.BookID, chapter.Part, chapter.Title, chapter.Price,
		chapter.Deadline, chapter.CoverURL, chapter.Status,
	).Scan(&chapter.CreatedAt, &chapter.UpdatedAt)

	return dberr.Wrap(err, "Chapter")
}

func (repository *PostgresRepository) Update(context context.Context, chapter *Chapter) error {
	ch := schema.PubChapter

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s`,
		ch.Table,
		ch.Part, ch.Title, ch.Price, ch.Deadline, ch.CoverURL, ch.UpdatedAt,
		ch.ID, ch.DeletedAt,
		ch.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		chapter.ID, chapter.Part, chapter.Title, chapter.Price,
		chapter.Deadline, chapter.CoverURL,
	).Scan(&chapter.UpdatedAt)

	return dberr.Wrap(err, "Chapter")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	ch := schema.PubChapter

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		ch.Table, ch.DeletedAt, ch.ID, ch.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Chapter")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}
	return nil
}

// # Lifecycle Mutations

func (repository *PostgresRepository) Checkout(context context.Context, chapterID, userID string, expiresAt time.Time) error {
	ch := schema.PubChapter

	// Compare-and-set keyed on the open states. A stale read of an already
	// reserved chapter updates zero rows instead of double-booking.
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s IN ($5, $6) AND %s IS NULL`,
		ch.Table,
		ch.Status, ch.ExpiredAt, ch.CheckoutBy, ch.UpdatedAt,
		ch.ID, ch.Status, ch.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query,
		chapterID, StatusPending, expiresAt, userID, StatusOnSale, StatusRejected,
	)
	if err != nil {
		return dberr.Wrap(err, "Chapter")
	}

	if cmd.RowsAffected() == 0 {
		return repository.conflictOrNotFound(context, chapterID, "Chapter is not available for checkout")
	}
	return nil
}

func (repository *PostgresRepository) SetPaymentProof(context context.Context, chapterID, proof string) error {
	ch := schema.PubChapter

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1 AND %s IN ($4, $5) AND %s IS NULL`,
		ch.Table,
		ch.Status, ch.PaymentProof, ch.UpdatedAt,
		ch.ID, ch.Status, ch.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query,
		chapterID, StatusWaiting, proof, StatusPending, StatusWaiting,
	)
	if err != nil {
		return dberr.Wrap(err, "Chapter")
	}

	if cmd.RowsAffected() == 0 {
		return repository.conflictOrNotFound(context, chapterID, "Chapter is not reserved for payment")
	}
	return nil
}

/*
Finalize applies a reviewer's verdict atomically.

The waiting row is locked first so the verdict, the collaborator record, and
the history entry commit or roll back together. Racing reviewers serialize
on the row lock: the loser re-reads a non-waiting status and gets a
Conflict. A surviving duplicate attempt on the collaborator insert is still
blocked by the unique chapter index.
*/
func (repository *PostgresRepository) Finalize(context context.Context, input FinalizeInput) error {
	ch := schema.PubChapter

	tx, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "Chapter")
	}
	defer tx.Rollback(context)

	var status Status
	var checkoutBy *string
	lockQuery := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1 AND %s IS NULL FOR UPDATE`,
		ch.Status, ch.CheckoutBy, ch.Table, ch.ID, ch.DeletedAt,
	)
	if err := tx.QueryRow(context, lockQuery, input.ChapterID).Scan(&status, &checkoutBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("Chapter")
		}
		return dberr.Wrap(err, "Chapter")
	}

	if status != StatusWaiting {
		return apperr.Conflict("Chapter is not awaiting approval")
	}

	// Close keeps the reservation holder as the collaborator; rejection
	// releases the hold entirely so the chapter can be checked out again.
	if input.Decision == StatusClose {
		updateQuery := fmt.Sprintf(`
			UPDATE %s
			SET %s = $2, %s = $3, %s = $4, %s = %s, %s = NULL, %s = NOW()
			WHERE %s = $1 AND %s = $5`,
			ch.Table,
			ch.Status, ch.Notes, ch.CheckedByID, ch.CollaboratedBy, ch.CheckoutBy,
			ch.ExpiredAt, ch.UpdatedAt,
			ch.ID, ch.Status,
		)
		cmd, err := tx.Exec(context, updateQuery,
			input.ChapterID, StatusClose, input.Notes, input.ReviewerID, StatusWaiting,
		)
		if err != nil {
			return dberr.Wrap(err, "Chapter")
		}
		if cmd.RowsAffected() == 0 {
			return apperr.Conflict("Chapter is not awaiting approval")
		}

		if checkoutBy == nil {
			return apperr.Conflict("Chapter has no reservation holder")
		}
		if err := insertCollaborator(context, tx, input.ChapterID, *checkoutBy); err != nil {
			return err
		}
	} else {
		updateQuery := fmt.Sprintf(`
			UPDATE %s
			SET %s = $2, %s = $3, %s = $4, %s = NULL, %s = NULL, %s = NOW()
			WHERE %s = $1 AND %s = $5`,
			ch.Table,
			ch.Status, ch.Notes, ch.CheckedByID,
			ch.ExpiredAt, ch.CheckoutBy, ch.UpdatedAt,
			ch.ID, ch.Status,
		)
		cmd, err := tx.Exec(context, updateQuery,
			input.ChapterID, StatusRejected, input.Notes, input.ReviewerID, StatusWaiting,
		)
		if err != nil {
			return dberr.Wrap(err, "Chapter")
		}
		if cmd.RowsAffected() == 0 {
			return apperr.Conflict("Chapter is not awaiting approval")
		}
	}

	if err := insertHistory(context, tx, input, checkoutBy); err != nil {
		return err
	}

	if err := tx.Commit(context); err != nil {
		return dberr.Wrap(err, "Chapter")
	}
	return nil
}

func insertCollaborator(context context.Context, tx pgx.Tx, chapterID, memberID string) error {
	col := schema.PubCollaborator

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`,
		col.Table,
		col.ID, col.ChapterID, col.CollaboratorID, col.Status, col.Notes,
		col.CreatedAt, col.UpdatedAt,
	)

	_, err := tx.Exec(context, query, uuid.New(), chapterID, memberID, "need_complete", "-")
	return dberr.Wrap(err, "Collaborator")
}

func insertHistory(context context.Context, tx pgx.Tx, input FinalizeInput, memberID *string) error {
	th := schema.PubTransactionHistory

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		th.Table,
		th.ID, th.ChapterID, th.CollaboratorID, th.CheckedByID, th.Status, th.Notes,
		th.CreatedAt,
	)

	_, err := tx.Exec(context, query,
		uuid.New(), input.ChapterID, memberID, input.ReviewerID, input.Decision, input.Notes,
	)
	return dberr.Wrap(err, "TransactionHistory")
}

func (repository *PostgresRepository) ExpireLapsed(context context.Context, now time.Time) ([]string, error) {
	ch := schema.PubChapter

	// One conditional statement so a reservation that was just converted to
	// waiting, or a chapter freshly re-checked-out, is never reverted.
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = NULL, %s = NULL, %s = NOW()
		WHERE %s = $2 AND %s <= $3 AND %s IS NULL
		RETURNING %s`,
		ch.Table,
		ch.Status, ch.ExpiredAt, ch.CheckoutBy, ch.UpdatedAt,
		ch.Status, ch.ExpiredAt, ch.DeletedAt,
		ch.ID,
	)

	rows, err := repository.db.Query(context, query, StatusOnSale, StatusPending, now)
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter")
	}
	defer rows.Close()

	var reverted []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "Chapter")
		}
		reverted = append(reverted, id)
	}

	return reverted, rows.Err()
}

func (repository *PostgresRepository) UserExists(context context.Context, userID string) (bool, error) {
	a := schema.UserAccount

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL)`,
		a.Table, a.ID, a.DeletedAt,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, userID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "User")
	}
	return exists, nil
}

// conflictOrNotFound disambiguates a zero-row conditional update: a missing
// chapter is NotFound, a chapter in the wrong state is a Conflict.
func (repository *PostgresRepository) conflictOrNotFound(context context.Context, chapterID, conflictMessage string) error {
	ch := schema.PubChapter

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL)`,
		ch.Table, ch.ID, ch.DeletedAt,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, chapterID).Scan(&exists); err != nil {
		return dberr.Wrap(err, "Chapter")
	}
	if !exists {
		return apperr.NotFound("Chapter")
	}
	return apperr.Conflict(conflictMessage)
}
