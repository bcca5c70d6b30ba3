// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package category

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
	// Reads for any signed-in member
	router.Group(func(memberRoute chi.Router) {
		memberRoute.Use(middleware.RequireAuth)

		memberRoute.Post("/get-all-categories", handler.listCategories)
		memberRoute.Post("/get-category-by-id", handler.getCategory)
	})

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/create-category", handler.createCategory)
		adminRoute.Post("/update-category", handler.updateCategory)
		adminRoute.Post("/delete-category", handler.deleteCategory)
	})
}

type categoryIDRequest struct {
	ID string `json:"id"`
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	var listRequest pagination.ListRequest
	if err := requestutil.DecodeJSON(writer, request, &listRequest); err != nil {
		respond.Error(writer, request, err)
		return
	}

	categories, meta, err := handler.service.List(request.Context(), listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, meta)
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	var input categoryIDRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.GetByID(request.Context(), input.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Create(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Update(request.Context(), input.ID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	var input categoryIDRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), input.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Category deleted", nil)
}
