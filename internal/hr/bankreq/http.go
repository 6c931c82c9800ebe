// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package bankreq

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

	router.Get("/", handler.listBankRequests)
	router.Get("/{id}", handler.getBankRequest)

	router.With(middleware.RequireHR).Post("/", handler.createBankRequest)
	router.With(middleware.RequireHR).Put("/{id}", handler.updateBankRequest)
	router.With(middleware.RequireAdmin).Delete("/{id}", handler.deleteBankRequest)
}

func (handler *Handler) listBankRequests(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	requests, total, err := handler.service.ListBankRequests(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, requests, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBankRequest(writer http.ResponseWriter, request *http.Request) {
	requestID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bankRequest, err := handler.service.GetBankRequest(request.Context(), requestID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, bankRequest)
}

func (handler *Handler) createBankRequest(writer http.ResponseWriter, request *http.Request) {
	var input BankRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateBankRequest(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateBankRequest(writer http.ResponseWriter, request *http.Request) {
	requestID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input BankRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBankRequest(request.Context(), requestID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteBankRequest(writer http.ResponseWriter, request *http.Request) {
	requestID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteBankRequest(request.Context(), requestID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
