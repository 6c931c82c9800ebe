// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package dbscheck

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

	router.Get("/", handler.listDBSChecks)
	router.Get("/{id}", handler.getDBSCheck)

	router.With(middleware.RequireHR).Post("/", handler.createDBSCheck)
	router.With(middleware.RequireHR).Put("/{id}", handler.updateDBSCheck)
	router.With(middleware.RequireAdmin).Delete("/{id}", handler.deleteDBSCheck)
}

func (handler *Handler) listDBSChecks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	checks, total, err := handler.service.ListDBSChecks(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, checks, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getDBSCheck(writer http.ResponseWriter, request *http.Request) {
	checkID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	check, err := handler.service.GetDBSCheck(request.Context(), checkID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, check)
}

func (handler *Handler) createDBSCheck(writer http.ResponseWriter, request *http.Request) {
	var input DBSCheck
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateDBSCheck(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateDBSCheck(writer http.ResponseWriter, request *http.Request) {
	checkID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input DBSCheck
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateDBSCheck(request.Context(), checkID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteDBSCheck(writer http.ResponseWriter, request *http.Request) {
	checkID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteDBSCheck(request.Context(), checkID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
