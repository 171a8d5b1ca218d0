// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkpost/internal/platform/middleware"
	requestutil "github.com/taibuivan/inkpost/internal/platform/request"
	"github.com/taibuivan/inkpost/internal/platform/respond"
	"github.com/taibuivan/inkpost/pkg/pagination"
)

// Handler implements the user HTTP endpoints.
type Handler struct {
	service *Service
	guard   func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler]. guard is the required auth middleware.
func NewHandler(service *Service, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, guard: guard}
}

// Routes returns a [chi.Router] configured with user routes.
//
// # Endpoints
//   - GET    /                : List users.
//   - POST   /                : Register.
//   - POST   /login           : Exchange credentials for an access token.
//   - POST   /logout          : Revoke the presented token.
//   - GET    /me              : The caller's profile.
//   - GET    /user/{userId}   : Public profile.
//   - PATCH  /user/{userId}   : Update own profile.
//   - DELETE /user/{userId}   : Delete own account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.list)
	router.Post("/", handler.register)
	router.Post("/login", handler.login)
	router.Get("/user/{userId}", handler.get)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.guard)
		r.Post("/logout", handler.logout)
		r.Get("/me", handler.me)
		r.Patch("/user/{userId}", handler.update)
		r.Delete("/user/{userId}", handler.delete)
	})

	return router
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, total, err := handler.service.List(request.Context(), params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "All users found", users, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "User created", user)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Login successful", session)
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The guard has already accepted this header.
	token, err := middleware.BearerToken(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Logout(request.Context(), actor, token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Logged out", nil)
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Get(request.Context(), actor.SubjectID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User found", user)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User found", user)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Update(request.Context(), actor, userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User updated", user)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.ID(request, FieldUserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Delete(request.Context(), actor, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "User deleted", user)
}
