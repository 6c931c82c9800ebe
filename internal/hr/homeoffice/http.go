// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package homeoffice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/peopledesk/peopledesk/internal/platform/middleware"
	requestutil "github.com/peopledesk/peopledesk/internal/platform/request"
	"github.com/peopledesk/peopledesk/internal/platform/respond"
	"github.com/peopledesk/peopledesk/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.RequirePrincipal)

	router.Get("/", handler.listHomeOfficeRequests)
	router.Get("/{id}", handler.getHomeOfficeRequest)

	router.With(middleware.RequireHR).Post("/", handler.createHomeOfficeRequest)
	router.With(middleware.RequireHR).Put("/{id}", handler.updateHomeOfficeRequest)
	router.With(middleware.RequireAdmin).Delete("/{id}", handler.deleteHomeOfficeRequest)
}

func (handler *Handler) listHomeOfficeRequests(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	requests, total, err := handler.service.ListHomeOfficeRequests(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, requests, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getHomeOfficeRequest(writer http.ResponseWriter, request *http.Request) {
	requestID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	homeOfficeRequest, err := handler.service.GetHomeOfficeRequest(request.Context(), requestID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, homeOfficeRequest)
}

func (handler *Handler) createHomeOfficeRequest(writer http.ResponseWriter, request *http.Request) {
	var input HomeOfficeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateHomeOfficeRequest(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateHomeOfficeRequest(writer http.ResponseWriter, request *http.Request) {
	requestID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input HomeOfficeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateHomeOfficeRequest(request.Context(), requestID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteHomeOfficeRequest(writer http.ResponseWriter, request *http.Request) {
	requestID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteHomeOfficeRequest(request.Context(), requestID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
