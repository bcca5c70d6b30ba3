// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package transaction

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aksarapress/aksara/internal/platform/database/schema"
	"github.com/aksarapress/aksara/internal/platform/dberr"
	"github.com/aksarapress/aksara/pkg/pagination"
	"github.com/aksarapress/aksara/pkg/query"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a pgx-backed transaction repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// sortColumns whitelists sortable columns. The ledger is append-only, so
// recency is the only ordering that matters besides status.
var sortColumns = map[string]string{
	"status":     "th." + schema.PubTransactionHistory.Status,
	"created_at": "th." + schema.PubTransactionHistory.CreatedAt,
}

func (repository *PostgresRepository) List(context context.Context, collaboratorID string, listRequest pagination.ListRequest) ([]*History, int, error) {
	th := schema.PubTransactionHistory
	ch := schema.PubChapter
	b := schema.PubBook
	a := schema.UserAccount

	base := fmt.Sprintf(`
		SELECT
			th.%s, th.%s, th.%s, th.%s, th.%s, th.%s, th.%s,
			ch.%s AS chapter_part,
			ch.%s AS chapter_title,
			b.%s AS book_title,
			m.%s AS collaborator_name,
			r.%s AS checked_by_name,
			COUNT(*) OVER() AS total_count
		FROM %s th
		JOIN %s ch ON ch.%s = th.%s
		JOIN %s b ON b.%s = ch.%s
		LEFT JOIN %s m ON m.%s = th.%s
		JOIN %s r ON r.%s = th.%s
		WHERE (ch.%s ILIKE $1 OR ch.%s ILIKE $1 OR b.%s ILIKE $1)
	`,
		th.ID, th.ChapterID, th.CollaboratorID, th.CheckedByID, th.Status,
		th.Notes, th.CreatedAt,
		ch.Part,
		ch.Title,
		b.Title,
		a.FullName,
		a.FullName,
		th.Table,
		ch.Table, ch.ID, th.ChapterID,
		b.Table, b.ID, ch.BookID,
		a.Table, a.ID, th.CollaboratorID,
		a.Table, a.ID, th.CheckedByID,
		ch.Part, ch.Title, b.Title,
	)

	builder := query.NewBuilder(base, "%"+listRequest.Search+"%")

	if collaboratorID != "" {
		builder.And(fmt.Sprintf("th.%s = $?", th.CollaboratorID), collaboratorID)
	}

	sortColumn, ok := sortColumns[listRequest.SortBy]
	if !ok {
		sortColumn = "th." + th.CreatedAt
	}
	builder.OrderBy(sortColumn, listRequest.SortDir)
	builder.Paginate(listRequest.PerPage, listRequest.Offset())

	rows, err := repository.db.Query(context, builder.SQL(), builder.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "TransactionHistory")
	}
	defer rows.Close()

	var entries []*History
	var total int
	for rows.Next() {
		entry := &History{}
		err := rows.Scan(
			&entry.ID, &entry.ChapterID, &entry.CollaboratorID, &entry.CheckedByID,
			&entry.Status, &entry.Notes, &entry.CreatedAt,
			&entry.ChapterPart, &entry.ChapterTitle, &entry.BookTitle,
			&entry.CollaboratorName, &entry.CheckedByName,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "TransactionHistory")
		}
		entries = append(entries, entry)
	}

	return entries, total, rows.Err()
}
