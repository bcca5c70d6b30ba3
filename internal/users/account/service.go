// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aksarapress/aksara/internal/platform/apperr"
	"github.com/aksarapress/aksara/internal/platform/sec"
	"github.com/aksarapress/aksara/internal/users/auth"
	"github.com/aksarapress/aksara/pkg/pagination"
)

// # Service Layer

// Service orchestrates business logic for user accounts and sessions.
//
// It ensures that profile updates, role grants, and session security
// cleanup follow established business constraints.
type Service struct {
	accountRepository AccountRepository
	sessionRepository SessionRepository
	logger            *slog.Logger
}

// NewService constructs a new account [Service] with its repository dependencies.
func NewService(
	accountRepo AccountRepository,
	sessionRepo SessionRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		sessionRepository: sessionRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput defines the mutable subset of user profile fields.
type UpdateProfileInput struct {
	FullName *string
	Phone    *string
}

/*
UpdateProfile applies a partial set of changes to a user's account metadata.

Description: Fetches the existing user state, overrides provided fields, and
synchronizes the change to persistent storage.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Update or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	// Persist changes
	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

// # Administration

/*
ListUsers returns a paginated directory of accounts. Admin only.

Parameters:
  - context: context.Context
  - listRequest: pagination.ListRequest

Returns:
  - []auth.User: Page of accounts
  - pagination.Meta: Paging metadata
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context, listRequest pagination.ListRequest) ([]auth.User, pagination.Meta, error) {
	listRequest.Normalize()

	users, total, err := service.accountRepository.List(context, listRequest)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("account_service_list_failed: %w", err)
	}

	return users, pagination.NewMeta(listRequest.Page, listRequest.PerPage, total), nil
}

/*
GrantRole changes the role of a target account. Admin only.

Description: Validates the role name and rejects self-demotion so the last
administrator cannot lock the platform.

Parameters:
  - context: context.Context
  - actorID: string (the administrator performing the change)
  - targetUserID: string
  - role: sec.UserRole

Returns:
  - error: Validation, not found, or storage failures
*/
func (service *Service) GrantRole(context context.Context, actorID, targetUserID string, role sec.UserRole) error {
	switch role {
	case sec.RoleAdmin, sec.RoleReviewer, sec.RoleWriter:
	default:
		return apperr.ValidationError("Unknown role: " + string(role))
	}

	if actorID == targetUserID {
		return apperr.Forbidden("Administrators cannot change their own role")
	}

	if _, err := service.accountRepository.FindByID(context, targetUserID); err != nil {
		return err
	}

	if err := service.accountRepository.UpdateRole(context, targetUserID, role); err != nil {
		return fmt.Errorf("account_service_grant_role_failed: %w", err)
	}

	service.logger.Info("user_role_granted",
		slog.String("actor_id", actorID),
		slog.String("user_id", targetUserID),
		slog.String("role", string(role)),
	)

	return nil
}

/*
SetActive activates or deactivates a target account. Admin only.

Description: Deactivation also revokes every refresh session so the member
is signed out everywhere immediately.

Parameters:
  - context: context.Context
  - actorID: string
  - targetUserID: string
  - active: bool

Returns:
  - error: Not found or storage failures
*/
func (service *Service) SetActive(context context.Context, actorID, targetUserID string, active bool) error {
	if actorID == targetUserID {
		return apperr.Forbidden("Administrators cannot deactivate their own account")
	}

	if _, err := service.accountRepository.FindByID(context, targetUserID); err != nil {
		return err
	}

	if err := service.accountRepository.SetActive(context, targetUserID, active); err != nil {
		return fmt.Errorf("account_service_set_active_failed: %w", err)
	}

	if !active {
		_ = service.sessionRepository.RevokeAll(context, targetUserID)
	}

	service.logger.Info("user_active_changed",
		slog.String("actor_id", actorID),
		slog.String("user_id", targetUserID),
		slog.Bool("active", active),
	)

	return nil
}

// # Session Visibility

/*
ListSessions returns all active sessions for a user, flagging the current one.

Parameters:
  - context: context.Context
  - userID: string
  - currentTokenHash: string (hash of the caller's refresh token; "" for none)

Returns:
  - []SessionInfo: Active devices
  - error: Retrieval failures
*/
func (service *Service) ListSessions(context context.Context, userID string, currentTokenHash string) ([]SessionInfo, error) {
	sessions, err := service.sessionRepository.FindActiveByUserID(context, userID, currentTokenHash)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_sessions_failed: %w", err)
	}

	return sessions, nil
}

/*
RevokeSession terminates a single session owned by the user.

Parameters:
  - context: context.Context
  - userID: string
  - sessionID: string

Returns:
  - error: Revocation failures
*/
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	if err := service.sessionRepository.Revoke(context, userID, sessionID); err != nil {
		return err
	}

	service.logger.Info("user_session_revoked",
		slog.String("user_id", userID),
		slog.String("session_id", sessionID),
	)

	return nil
}
