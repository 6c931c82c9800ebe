// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package employee

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

// RegisterRoutes mounts the employee endpoints.
//
// Reads and creation are open to any authenticated principal. Updates require
// the HR flag and deletion requires the admin flag.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Use(middleware.RequirePrincipal)

	router.Get("/", handler.listEmployees)
	router.Get("/{id}", handler.getEmployee)
	router.Post("/", handler.createEmployee)

	router.With(middleware.RequireHR).Put("/{id}", handler.updateEmployee)
	router.With(middleware.RequireAdmin).Delete("/{id}", handler.deleteEmployee)
}

func (handler *Handler) listEmployees(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:      request.URL.Query().Get("q"),
		Department: request.URL.Query().Get("department"),
	}

	employees, total, err := handler.service.ListEmployees(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, employees, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getEmployee(writer http.ResponseWriter, request *http.Request) {
	employeeID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	employee, err := handler.service.GetEmployee(request.Context(), employeeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, employee)
}

func (handler *Handler) createEmployee(writer http.ResponseWriter, request *http.Request) {
	var input Employee
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateEmployee(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateEmployee(writer http.ResponseWriter, request *http.Request) {
	employeeID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Employee
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateEmployee(request.Context(), employeeID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteEmployee(writer http.ResponseWriter, request *http.Request) {
	employeeID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEmployee(request.Context(), employeeID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
