// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package category

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

// NewPostgresRepository creates a pgx-backed category repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// sortColumns whitelists sortable columns for the list endpoint.
var sortColumns = map[string]string{
	"name":       schema.PubCategory.Name,
	"created_at": schema.PubCategory.CreatedAt,
}

func (repository *PostgresRepository) List(context context.Context, listRequest pagination.ListRequest) ([]*Category, int, error) {
	table := schema.PubCategory

	sortColumn, ok := sortColumns[listRequest.SortBy]
	if !ok {
		sortColumn = table.Name
	}

	searchPattern := "%" + listRequest.Search + "%"

	countQuery := fmt.Sprintf(
		`SELECT count(*) FROM %s WHERE %s IS NULL AND %s ILIKE $1`,
		table.Table, table.DeletedAt, table.Name,
	)

	var total int
	if err := repository.db.QueryRow(context, countQuery, searchPattern).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Category")
	}

	base := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL`,
		table.ID, table.Name, table.Slug, table.ImageURL, table.Description, table.CreatedAt, table.UpdatedAt,
		table.Table,
		table.DeletedAt,
	)

	builder := query.NewBuilder(base)
	builder.And(fmt.Sprintf("%s ILIKE $?", table.Name), searchPattern)
	builder.OrderBy(sortColumn, listRequest.SortDir)
	builder.Paginate(listRequest.PerPage, listRequest.Offset())

	rows, err := repository.db.Query(context, builder.SQL(), builder.Args()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Category")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "Category")
		}
		categories = append(categories, c)
	}

	return categories, total, rows.Err()
}

func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Category, error) {
	table := schema.PubCategory

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		table.ID, table.Name, table.Slug, table.ImageURL, table.Description, table.CreatedAt, table.UpdatedAt,
		table.Table,
		table.ID, table.DeletedAt,
	)

	c := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}

	return c, nil
}

func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	table := schema.PubCategory

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s`,
		table.Table,
		table.ID, table.Name, table.Slug, table.ImageURL, table.Description, table.CreatedAt, table.UpdatedAt,
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		category.ID, category.Name, category.Slug, category.ImageURL, category.Description,
	).Scan(&category.CreatedAt, &category.UpdatedAt)

	return dberr.Wrap(err, "Category")
}

func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	table := schema.PubCategory

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s`,
		table.Table,
		table.Name, table.Slug, table.ImageURL, table.Description, table.UpdatedAt,
		table.ID, table.DeletedAt,
		table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		category.ID, category.Name, category.Slug, category.ImageURL, category.Description,
	).Scan(&category.UpdatedAt)

	return dberr.Wrap(err, "Category")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	table := schema.PubCategory

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		table.Table, table.DeletedAt, table.ID, table.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "Category")
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}
	return nil
}
