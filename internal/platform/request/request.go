// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

// Package requestutil provides helpers to extract and decode data from HTTP requests.
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aksarapress/aksara/internal/platform/apperr"
	"github.com/aksarapress/aksara/internal/platform/ctxutil"
	"github.com/aksarapress/aksara/internal/platform/sec"
)

// maxBodyBytes caps request bodies at 1 MiB. Spreadsheet imports use
// multipart uploads with their own limit and do not go through DecodeJSON.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads and decodes the request body into destination.

Unknown fields are rejected so that client typos surface as 400s
instead of silently ignored payload keys.

Parameters:
  - writer: the response writer, used to enforce the body size limit.
  - request: the incoming HTTP request.
  - destination: pointer to the struct the body decodes into.

Returns:
  - error: a VALIDATION_ERROR AppError when the body is malformed.
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, destination interface{}) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)

	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(destination); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.ValidationError("request body is empty")
		}
		return apperr.ValidationError("invalid JSON request body")
	}

	// Reject trailing garbage after the first JSON value.
	if decoder.More() {
		return apperr.ValidationError("request body must contain a single JSON object")
	}
	return nil
}

// Param returns the named chi URL parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Claims returns the authenticated user's claims from the request context,
// or nil when the request is unauthenticated.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims returns the authenticated user's claims or an
// UNAUTHORIZED error when the request carries no valid identity.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	return claims, nil
}

// RequiredUserID returns the authenticated user's ID or an UNAUTHORIZED error.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
