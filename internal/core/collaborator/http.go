// Copyright (c) 2026 Aksara Press. All rights reserved.
// Author: dev@aksarapress.id

package collaborator

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
	// Reads and document submission for any signed-in member
	router.Group(func(memberRoute chi.Router) {
		memberRoute.Use(middleware.RequireAuth)

		memberRoute.Post("/get-all-collaborators", handler.listCollaborators)
		memberRoute.Post("/get-collaborator-by-id", handler.getCollaborator)
		memberRoute.Post("/get-collaborator-by-chapter", handler.getCollaboratorByChapter)
		memberRoute.Post("/personal-collaborator", handler.personalCollaborators)
		memberRoute.Post("/update-collaborator", handler.updateCollaborator)
	})

	// Reviewer verdicts
	router.Group(func(reviewerRoute chi.Router) {
		reviewerRoute.Use(middleware.RequireRole(sec.RoleReviewer))

		reviewerRoute.Post("/approve-collaborator", handler.approveCollaborator)
		reviewerRoute.Post("/need-update-collaborator", handler.sendBackCollaborator)
	})
}

type collaboratorIDRequest struct {
	ID string `json:"id"`
}

type byChapterRequest struct {
	ChapterID string `json:"chapter_id"`
}

type updateDocumentsRequest struct {
	ID string `json:"id"`
	DocumentsInput
}

type sendBackRequest struct {
	ID    string `json:"id"`
	Notes string `json:"notes"`
}

func (handler *Handler) listCollaborators(writer http.ResponseWriter, request *http.Request) {
	var listRequest pagination.ListRequest
	if err := requestutil.DecodeJSON(writer, request, &listRequest); err != nil {
		respond.Error(writer, request, err)
		return
	}

	collaborators, meta, err := handler.service.List(request.Context(), listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, collaborators, meta)
}

func (handler *Handler) personalCollaborators(writer http.ResponseWriter, request *http.Request) {
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

	collaborators, meta, err := handler.service.Personal(request.Context(), userID, listRequest)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, collaborators, meta)
}

func (handler *Handler) getCollaborator(writer http.ResponseWriter, request *http.Request) {
	var input collaboratorIDRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	collaborator, err := handler.service.GetByID(request.Context(), input.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, collaborator)
}

func (handler *Handler) getCollaboratorByChapter(writer http.ResponseWriter, request *http.Request) {
	var input byChapterRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	collaborator, err := handler.service.GetByChapter(request.Context(), input.ChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, collaborator)
}

func (handler *Handler) updateCollaborator(writer http.ResponseWriter, request *http.Request) {
	var input updateDocumentsRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	collaborator, err := handler.service.SubmitDocuments(request.Context(), input.ID, input.DocumentsInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, collaborator)
}

func (handler *Handler) approveCollaborator(writer http.ResponseWriter, request *http.Request) {
	reviewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input collaboratorIDRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ApproveDocuments(request.Context(), input.ID, reviewerID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Collaborator documents approved", nil)
}

func (handler *Handler) sendBackCollaborator(writer http.ResponseWriter, request *http.Request) {
	reviewerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input sendBackRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SendBack(request.Context(), input.ID, reviewerID, input.Notes); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OKMessage(writer, "Collaborator documents sent back", nil)
}
