// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

/*
Package account handles user profile management and administrative controls.

It provides functionalities for users to view and update their private identity
data and manage their active device sessions, plus the administrative surface
for listing accounts, granting roles, and deactivating members.

# Architecture

  - Entities: SessionInfo (DTO).
  - Domain: This package depends on the auth package for the User entity.
  - Security: Provides session transparency and revocation mechanisms.
*/
package account

import (
	"context"
	"time"

	"github.com/aksarapress/aksara/internal/platform/sec"
	"github.com/aksarapress/aksara/internal/users/auth"
	"github.com/aksarapress/aksara/pkg/pagination"
)

// # Domain Entities

// SessionInfo provides a safety-mapped view of an active user session.
// It omits sensitive token hashes for transport.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IsCurrent bool      `json:"is_current"` // True if this session belongs to the current request
}

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		List returns a page of accounts matching the search term.

		Parameters:
		  - context: context.Context
		  - listRequest: pagination.ListRequest (normalized)

		Returns:
		  - []auth.User: Matching accounts
		  - int: Total match count before paging
		  - error: Retrieval failures
	*/
	List(context context.Context, listRequest pagination.ListRequest) ([]auth.User, int, error)

	/*
		Update modifies the mutable profile fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		UpdateRole replaces the role of an account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - role: sec.UserRole

		Returns:
		  - error: Execution failures
	*/
	UpdateRole(context context.Context, userID string, role sec.UserRole) error

	/*
		SetActive toggles the active flag of an account.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - active: bool

		Returns:
		  - error: Execution failures
	*/
	SetActive(context context.Context, userID string, active bool) error

	/*
		SoftDelete flags an account as logically deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution failures
	*/
	SoftDelete(context context.Context, id string) error
}

// SessionRepository defines the visibility and revocation contract for user sessions.
type SessionRepository interface {
	/*
		FindActiveByUserID lists all valid, non-expired sessions for a user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - currentTokenHash: string (hash of the caller's refresh token; "" for none)

		Returns:
		  - []SessionInfo: List of active devices, IsCurrent flagged
		  - error: Retrieval errors
	*/
	FindActiveByUserID(context context.Context, userID, currentTokenHash string) ([]SessionInfo, error)

	/*
		Revoke marks a specific session as revoked. The userID constraint
		prevents revoking another member's session.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - sessionID: string

		Returns:
		  - error: Revocation failures
	*/
	Revoke(context context.Context, userID, sessionID string) error

	/*
		RevokeAll terminates every session for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Revocation failures
	*/
	RevokeAll(context context.Context, userID string) error
}
