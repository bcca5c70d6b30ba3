// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package chapter

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
	// Reads and writer interactions for any signed-in member
	router.Group(func(memberRoute chi.Router) {
		memberRoute.Use(middleware.RequireAuth)

		memberRoute.Post("/get-all-chapters", handler.listChapters)
		memberRoute.Post("/get-chapter-by-id", handler.getChapter)
		memberRoute.Post("/get-chapter-by-book-id", handler.listChaptersByBook)
		memberRoute.Post("/checkout-chapter", handler.checkoutChapter)
		memberRoute.Post("/personal-checkout", handler.personalCheckouts)
		memberRoute.Post("/payment_proof", handler.submitPaymentProof)
	})

	// Reviewer queue
	router.Group(func(reviewerRoute chi.Router) {
		reviewerRoute.Use(middleware.RequireRole(sec.RoleReviewer))

		reviewerRoute.Post("/waiting-chapter", handler.waitingChapters)
		reviewerRoute.Post("/approval-chapter", handler.approveChapter)
	})

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Post("/create-chapter", handler.createChapter)
		adminRoute.Post("/update-chapter", handler.updateChapter)
		adminRoute.Post("/delete-chapter", handler.deleteChapter)
		adminRoute.Get("/template", handler.downloadTemplate)
		adminRoute.Post("/import", handler.importChapters)
	})
}

type chapterIDRequest struct {
	ID string `json:"id"`
}

type listByBookRequest struct {
	BookID string `json:"book_id"`
	pagination.ListRequest
}

type paymentProofRequest struct {
	ID           string `json:"id"`
	PaymentProof string `json:"payment_proof"`
}

type approvalRequest struct {
	ID     string   `json:"id"`
	Status Decision `json:"status"`
	Notes  string   `json:"notes"`
}

func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	var listRequest pagination.ListRequest
	if err := requestutil.DecodeJSON(writer, request, &listRequest); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, meta, err := handler.service.List(request.Context(), listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, meta)
}

func (handler *Handler) listChaptersByBook(writer http.ResponseWriter, request *http.Request) {
	var input listByBookRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, meta, err := handler.service.ListByBook(request.Context(), input.BookID, input.ListRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, meta)
}

func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	var input chapterIDRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.GetByID(request.Context(), input.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	var input Chapter
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

func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	var input Chapter
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

func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	var input chapterIDRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), input.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Chapter deleted", nil)
}

// # Lifecycle Endpoints

func (handler *Handler) checkoutChapter(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input chapterIDRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Checkout(request.Context(), input.ID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Chapter checked out", nil)
}

func (handler *Handler) personalCheckouts(writer http.ResponseWriter, request *http.Request) {
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

	chapters, meta, err := handler.service.PersonalCheckouts(request.Context(), userID, listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, meta)
}

func (handler *Handler) submitPaymentProof(writer http.ResponseWriter, request *http.Request) {
	var input paymentProofRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SubmitPaymentProof(request.Context(), input.ID, input.PaymentProof); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Payment proof submitted", nil)
}

func (handler *Handler) waitingChapters(writer http.ResponseWriter, request *http.Request) {
	var listRequest pagination.ListRequest
	if err := requestutil.DecodeJSON(writer, request, &listRequest); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, meta, err := handler.service.WaitingList(request.Context(), listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, meta)
}

func (handler *Handler) approveChapter(writer http.ResponseWriter, request *http.Request) {
	reviewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input approvalRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Approve(request.Context(), input.ID, reviewerID, input.Status, input.Notes); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Chapter reviewed", nil)
}

// # Bulk Import Endpoints

func (handler *Handler) downloadTemplate(writer http.ResponseWriter, request *http.Request) {
	template, err := handler.service.Template()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	writer.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	writer.Header().Set("Content-Disposition", `attachment; filename="chapter_import_template.xlsx"`)
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(template)
}

func (handler *Handler) importChapters(writer http.ResponseWriter, request *http.Request) {
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

	respond.OKMessage(writer, "Chapters imported", map[string]int{"imported": imported})
}
