// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aksarapress/aksara/internal/platform/apperr"
	"github.com/aksarapress/aksara/internal/platform/middleware"
	requestutil "github.com/aksarapress/aksara/internal/platform/request"
	"github.com/aksarapress/aksara/internal/platform/respond"
	"github.com/aksarapress/aksara/internal/platform/sec"
	"github.com/aksarapress/aksara/pkg/pagination"
)

// maxImportSize bounds xlsx uploads to 8 MiB.
const maxImportSize = 8 << 20

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

		memberRoute.Post("/get-all-books", handler.listBooks)
		memberRoute.Post("/get-book-by-id", handler.getBook)
		memberRoute.Post("/get-book-by-category-id", handler.listBooksByCategory)
	})

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/create-book", handler.createBook)
		adminRoute.Post("/update-book", handler.updateBook)
		adminRoute.Post("/delete-book", handler.deleteBook)
		adminRoute.Post("/update-status-book", handler.updateBookStatus)
		adminRoute.Get("/template", handler.downloadTemplate)
		adminRoute.Post("/import", handler.importBooks)
	})
}

type bookIDRequest struct {
	ID string `json:"id"`
}

type listByCategoryRequest struct {
	CategoryID string `json:"category_id"`
	pagination.ListRequest
}

type updateStatusRequest struct {
	ID               string  `json:"id"`
	Status           Status  `json:"status"`
	ISBNConfirmation *string `json:"isbn_confirmation"`
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	var listRequest pagination.ListRequest
	if err := requestutil.DecodeJSON(writer, request, &listRequest); err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, meta, err := handler.service.List(request.Context(), listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, meta)
}

func (handler *Handler) listBooksByCategory(writer http.ResponseWriter, request *http.Request) {
	var input listByCategoryRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, meta, err := handler.service.ListByCategory(request.Context(), input.CategoryID, input.ListRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, meta)
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	var input bookIDRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetByID(request.Context(), input.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input Book
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

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	var input Book
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

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	var input bookIDRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), input.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Book deleted", nil)
}

func (handler *Handler) updateBookStatus(writer http.ResponseWriter, request *http.Request) {
	var input updateStatusRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateStatus(request.Context(), input.ID, input.Status, input.ISBNConfirmation); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Book status updated", nil)
}

func (handler *Handler) downloadTemplate(writer http.ResponseWriter, request *http.Request) {
	template, err := handler.service.Template()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	writer.Header().Set("Content-Disposition", `attachment; filename="book_import_template.xlsx"`)
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(template)
}

func (handler *Handler) importBooks(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, maxImportSize)

	file, _, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("a spreadsheet upload named 'file' is required"))
		return
	}
	defer file.Close()

	imported, err := handler.service.Import(request.Context(), file)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKMessage(writer, "Books imported", map[string]int{"imported": imported})
}
