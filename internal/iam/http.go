// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package iam

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/peopledesk/peopledesk/internal/platform/apperr"
	requestutil "github.com/peopledesk/peopledesk/internal/platform/request"
	"github.com/peopledesk/peopledesk/internal/platform/respond"
	"github.com/peopledesk/peopledesk/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the identity HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (registration, login)
// plus the current-principal introspection endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with identity routes.
//
// The principal gate is injected by the caller so this package stays
// independent of the middleware wiring.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and returns an access token.
//   - GET  /me       : Returns the authenticated principal.
func (handler *Handler) Routes(requirePrincipal func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(requirePrincipal)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int64  `json:"role_id"`

	// Personnel fields, required only when the role carries the employee flag.
	FirstName               string `json:"first_name"`
	LastName                string `json:"last_name"`
	PhoneNumber             string `json:"phone_number"`
	Department              string `json:"department"`
	Position                string `json:"position"`
	DateOfBirth             string `json:"date_of_birth"`
	NationalInsuranceNumber string `json:"national_insurance_number"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/v1/users/register

Description: Validates input, checks for identity conflicts, and persists a
new principal. Roles flagged as employee also receive a personnel record.

Request:
  - Body: registerRequest (Username, Email, Password, RoleID, personnel fields)

Response:
  - 201: User: Created principal
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Username or email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8).
		Positive(FieldRoleID, input.RoleID)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	dateOfBirth, err := parseOptionalDate(input.DateOfBirth)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), RegisterInput{
		Username:                input.Username,
		Email:                   input.Email,
		Password:                input.Password,
		RoleID:                  input.RoleID,
		FirstName:               input.FirstName,
		LastName:                input.LastName,
		PhoneNumber:             input.PhoneNumber,
		Department:              input.Department,
		Position:                input.Position,
		DateOfBirth:             dateOfBirth,
		NationalInsuranceNumber: input.NationalInsuranceNumber,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
Login authenticates a user and issues a stateless access token.

POST /api/v1/users/login

Description: Verifies credentials against the stored hash and returns a
signed bearer token. No server-side session is created.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: Session: Access token and user profile
  - 401: ErrInvalidCredentials: Unknown username or wrong password
  - 429: ErrRateLimited: Attempt budget exhausted
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   session.TokenType,
		FieldUser:        session.User,
	})
}

/*
Me returns the authenticated principal's profile.

GET /api/v1/users/me

Response:
  - 200: User: Current principal
  - 401: ErrUnauthenticated: Missing or invalid token
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	user := PrincipalFrom(request.Context())
	if user == nil {
		respond.Error(writer, request, apperr.Unauthenticated())
		return
	}

	respond.OK(writer, user)
}

// parseOptionalDate parses a YYYY-MM-DD value, mapping the empty string to nil.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "date_of_birth",
			Message: "Must use the YYYY-MM-DD format",
		})
	}

	return &parsed, nil
}
