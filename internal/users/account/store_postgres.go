// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aksarapress/aksara/internal/platform/apperr"
	"github.com/aksarapress/aksara/internal/platform/sec"
	"github.com/aksarapress/aksara/internal/users/auth"
	"github.com/aksarapress/aksara/pkg/pagination"
)

// # Account Repository

// PostgresAccountRepository implements AccountRepository using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a PostgreSQL implementation of AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// accountSortColumns whitelists sortable columns to prevent SQL injection
// through the sort_by parameter.
var accountSortColumns = map[string]string{
	"username":   "username",
	"email":      "email",
	"full_name":  "fullname",
	"role":       "role",
	"created_at": "createdat",
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	const query = `
		SELECT id, username, email, passwordhash, fullname, phone, role, isverified, isactive, createdat, updatedat
		FROM users.account
		WHERE id = $1 AND deletedat IS NULL`

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Phone,
		&user.Role,
		&user.IsVerified,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_failed: %w", err)
	}

	return user, nil
}

/*
List returns a page of accounts matching the search term.

Description: Case-insensitive match on username, email, and full name.
Sorting is restricted to a whitelisted column set.

Parameters:
  - context: context.Context
  - listRequest: pagination.ListRequest (already normalized)

Returns:
  - []auth.User: Matching accounts
  - int: Total match count before paging
  - error: Retrieval failures
*/
func (repository *PostgresAccountRepository) List(context context.Context, listRequest pagination.ListRequest) ([]auth.User, int, error) {
	sortColumn, ok := accountSortColumns[listRequest.SortBy]
	if !ok {
		sortColumn = "createdat"
	}

	searchPattern := "%" + listRequest.Search + "%"

	const countQuery = `
		SELECT COUNT(*)
		FROM users.account
		WHERE deletedat IS NULL
		  AND (username ILIKE $1 OR email ILIKE $1 OR fullname ILIKE $1)`

	var total int
	if err := repository.pool.QueryRow(context, countQuery, searchPattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, username, email, passwordhash, fullname, phone, role, isverified, isactive, createdat, updatedat
		FROM users.account
		WHERE deletedat IS NULL
		  AND (username ILIKE $1 OR email ILIKE $1 OR fullname ILIKE $1)
		ORDER BY %s %s
		LIMIT $2 OFFSET $3`, sortColumn, listRequest.SortDir)

	rows, err := repository.pool.Query(context, query, searchPattern, listRequest.PerPage, listRequest.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]auth.User, 0, listRequest.PerPage)
	for rows.Next() {
		var user auth.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.FullName,
			&user.Phone,
			&user.Role,
			&user.IsVerified,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_rows_failed: %w", err)
	}

	return users, total, nil
}

/*
Update modifies the mutable profile fields of an existing user.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Execution errors
*/
func (repository *PostgresAccountRepository) Update(context context.Context, user *auth.User) error {
	const query = `
		UPDATE users.account
		SET fullname = $2, phone = $3, updatedat = $4
		WHERE id = $1 AND deletedat IS NULL`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query, user.ID, user.FullName, user.Phone, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_failed: %w", err)
	}

	return nil
}

/*
UpdateRole replaces the role of an account.

Parameters:
  - context: context.Context
  - userID: string
  - role: sec.UserRole

Returns:
  - error: Execution errors
*/
func (repository *PostgresAccountRepository) UpdateRole(context context.Context, userID string, role sec.UserRole) error {
	const query = "UPDATE users.account SET role = $2, updatedat = NOW() WHERE id = $1 AND deletedat IS NULL"
	_, err := repository.pool.Exec(context, query, userID, role)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_role_failed: %w", err)
	}
	return nil
}

/*
SetActive toggles the active flag of an account.

Parameters:
  - context: context.Context
  - userID: string
  - active: bool

Returns:
  - error: Execution errors
*/
func (repository *PostgresAccountRepository) SetActive(context context.Context, userID string, active bool) error {
	const query = "UPDATE users.account SET isactive = $2, updatedat = NOW() WHERE id = $1 AND deletedat IS NULL"
	_, err := repository.pool.Exec(context, query, userID, active)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_set_active_failed: %w", err)
	}
	return nil
}

/*
SoftDelete flags an account as logically deleted.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresAccountRepository) SoftDelete(context context.Context, id string) error {
	const query = "UPDATE users.account SET deletedat = NOW() WHERE id = $1 AND deletedat IS NULL"
	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_soft_delete_failed: %w", err)
	}
	return nil
}

// # Session Repository

// PostgresSessionRepository implements the account SessionRepository using pgx.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

/*
FindActiveByUserID lists all valid, non-expired sessions for a user.

Description: IsCurrent is computed in SQL by comparing each row's token hash
against the caller's, so the hash never leaves the storage layer.

Parameters:
  - context: context.Context
  - userID: string
  - currentTokenHash: string

Returns:
  - []SessionInfo: Active devices, most recent first
  - error: Retrieval errors
*/
func (repository *PostgresSessionRepository) FindActiveByUserID(context context.Context, userID, currentTokenHash string) ([]SessionInfo, error) {
	const query = `
		SELECT id, useragent, ipaddress, createdat, expiresat, (tokenhash = $2) AS iscurrent
		FROM users.session
		WHERE userid = $1 AND isrevoked = FALSE AND expiresat > NOW()
		ORDER BY createdat DESC`

	rows, err := repository.pool.Query(context, query, userID, currentTokenHash)
	if err != nil {
		return nil, fmt.Errorf("postgres_account_session_list_failed: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.UserAgent, &info.IPAddress, &info.CreatedAt, &info.ExpiresAt, &info.IsCurrent); err != nil {
			return nil, fmt.Errorf("postgres_account_session_scan_failed: %w", err)
		}
		sessions = append(sessions, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_account_session_rows_failed: %w", err)
	}

	return sessions, nil
}

/*
Revoke marks a specific session as revoked, constrained to the owner.

Parameters:
  - context: context.Context
  - userID: string
  - sessionID: string

Returns:
  - error: apperr.NotFound when the session does not belong to the user
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, userID, sessionID string) error {
	const query = `
		UPDATE users.session
		SET isrevoked = TRUE, revokedat = NOW()
		WHERE id = $1 AND userid = $2 AND isrevoked = FALSE`

	tag, err := repository.pool.Exec(context, query, sessionID, userID)
	if err != nil {
		return fmt.Errorf("postgres_account_session_revoke_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Session")
	}

	return nil
}

/*
RevokeAll terminates every session for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Revocation failures
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	const query = "UPDATE users.session SET isrevoked = TRUE, revokedat = NOW() WHERE userid = $1 AND isrevoked = FALSE"
	_, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_account_session_revoke_all_failed: %w", err)
	}
	return nil
}
