// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package transaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aksarapress/aksara/internal/platform/middleware"
	requestutil "github.com/aksarapress/aksara/internal/platform/request"
	"github.com/aksarapress/aksara/internal/platform/respond"
	"github.com/aksarapress/aksara/internal/platform/sec"
	"github.com/aksarapress/aksara/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Writers see their own ledger entries
	router.With(middleware.RequireAuth).Post("/personal-transactions", handler.personalTransactions)

	// The full ledger is a reviewer surface
	router.With(middleware.RequireRole(sec.RoleReviewer)).Post("/get-all-transactions", handler.listTransactions)
}

func (handler *Handler) listTransactions(writer http.ResponseWriter, request *http.Request) {
	var listRequest pagination.ListRequest
	if err := requestutil.DecodeJSON(writer, request, &listRequest); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, meta, err := handler.service.List(request.Context(), listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, meta)
}

func (handler *Handler) personalTransactions(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var listRequest pagination.ListRequest
	if err := requestutil.DecodeJSON(writer, request, &listRequest); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, meta, err := handler.service.Personal(request.Context(), userID, listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, meta)
}
