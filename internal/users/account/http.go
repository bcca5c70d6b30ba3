// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

/*
HTTP delivery layer for profile, session, and administrative account management.

# Security

All endpoints in this package require an active authentication session provided
by the RequireAuth middleware. The administrative subtree additionally requires
the admin role.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aksarapress/aksara/internal/platform/constants"
	"github.com/aksarapress/aksara/internal/platform/middleware"
	requestutil "github.com/aksarapress/aksara/internal/platform/request"
	"github.com/aksarapress/aksara/internal/platform/respond"
	"github.com/aksarapress/aksara/internal/platform/sec"
	"github.com/aksarapress/aksara/internal/platform/validate"
	"github.com/aksarapress/aksara/pkg/pagination"
)

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service
	router.Get("/me", handler.getMe)
	router.Patch("/me", handler.updateMe)
	router.Get("/me/sessions", handler.listSessions)
	router.Delete("/me/sessions/{id}", handler.revokeSession)

	// Administration
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/get-all-users", handler.listUsers)
		r.Post("/grant-role", handler.grantRole)
		r.Post("/set-active", handler.setActive)
	})

	return router
}

// # Request Payloads

type updateMeRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

type grantRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type setActiveRequest struct {
	UserID string `json:"user_id"`
	Active bool   `json:"active"`
}

// # Self-Service Endpoints

/*
GET /api/v1/accounts/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/accounts/me.

Description: Applies a partial update to the mutable profile fields.

Request:
  - Body: updateMeRequest (FullName, Phone; omitted fields are untouched)

Response:
  - 200: User: Updated profile
  - 400: ErrInvalidJSON: Malformed body
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		FullName: input.FullName,
		Phone:    input.Phone,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
GET /api/v1/accounts/me/sessions.

Description: Lists all active device sessions, flagging the one used for
this request.

Response:
  - 200: []SessionInfo: Active devices
*/
func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	currentTokenHash := ""
	if cookie, cookieErr := request.Cookie(constants.RefreshTokenCookieName); cookieErr == nil && cookie.Value != "" {
		currentTokenHash = sec.HashToken(cookie.Value)
	}

	sessions, err := handler.accountService.ListSessions(request.Context(), userID, currentTokenHash)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, sessions)
}

/*
DELETE /api/v1/accounts/me/sessions/{id}.

Description: Revokes a single session owned by the authenticated user.

Response:
  - 204: No Content: Session revoked
  - 404: ErrNotFound: Session does not exist or belongs to another user
*/
func (handler *Handler) revokeSession(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessionID := requestutil.Param(request, "id")
	if sessionID == "" {
		respond.Error(writer, request, validate.RequiredError("id", "is required"))
		return
	}

	if err := handler.accountService.RevokeSession(request.Context(), userID, sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Administrative Endpoints

/*
POST /api/v1/accounts/get-all-users.

Description: Paginated account directory for administrators. Accepts the
standard list envelope (cari, page, per_page, sort_by, sort_type).

Response:
  - 200: []User with pagination meta
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	var listRequest pagination.ListRequest
	if err := requestutil.DecodeJSON(writer, request, &listRequest); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	users, meta, err := handler.accountService.ListUsers(request.Context(), listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, meta)
}

/*
POST /api/v1/accounts/grant-role.

Description: Changes the role of a target account (writer, reviewer, admin).

Request:
  - Body: grantRoleRequest (UserID, Role)

Response:
  - 200: Success message
  - 400: ErrInvalidJSON: Unknown role
  - 403: ErrForbidden: Self-demotion attempt
*/
func (handler *Handler) grantRole(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input grantRoleRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required("user_id", input.UserID).
		UUID("user_id", input.UserID).
		Required("role", input.Role).
		OneOf("role", input.Role, string(sec.RoleWriter), string(sec.RoleReviewer), string(sec.RoleAdmin))

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.GrantRole(request.Context(), claims.UserID, input.UserID, sec.UserRole(input.Role)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Role updated successfully"})
}

/*
POST /api/v1/accounts/set-active.

Description: Activates or deactivates a target account. Deactivation revokes
every active session for the target.

Request:
  - Body: setActiveRequest (UserID, Active)

Response:
  - 200: Success message
  - 403: ErrForbidden: Self-deactivation attempt
  - 404: ErrNotFound: Unknown account
*/
func (handler *Handler) setActive(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input setActiveRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	v := &validate.Validator{}
	v.Required("user_id", input.UserID).UUID("user_id", input.UserID)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.SetActive(request.Context(), claims.UserID, input.UserID, input.Active); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Account status updated"})
}
