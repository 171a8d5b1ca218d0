// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/inkpost/internal/platform/request"
	"github.com/taibuivan/inkpost/internal/platform/respond"
	"github.com/taibuivan/inkpost/internal/reaction"
	"github.com/taibuivan/inkpost/pkg/pagination"
)

// Handler implements the blog HTTP endpoints, including reactions on a blog.
type Handler struct {
	service   *Service
	reactions *reaction.Service
	guard     func(http.Handler) http.Handler
	identify  func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler].
//
// guard is the required auth middleware, identify the optional one.
func NewHandler(service *Service, reactions *reaction.Service, guard, identify func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, reactions: reactions, guard: guard, identify: identify}
}

// Routes returns a [chi.Router] configured with blog routes.
//
// # Endpoints
//   - GET    /                         : List blogs (optional ?blogTitle=).
//   - POST   /                         : Create a blog.
//   - GET    /blog/{blogId}            : Blog detail.
//   - PATCH  /blog/{blogId}            : Update own blog.
//   - DELETE /blog/{blogId}            : Delete own blog.
//   - POST   /blog/{blogId}/like       : Toggle like.
//   - POST   /blog/{blogId}/dislike    : Toggle dislike.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Get("/", handler.list)
	router.With(handler.identify).Get("/blog/{blogId}", handler.get)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(handler.guard)
		r.Post("/", handler.create)
		r.Patch("/blog/{blogId}", handler.update)
		r.Delete("/blog/{blogId}", handler.delete)
		r.Post("/blog/{blogId}/like", handler.react(reaction.KindLike))
		r.Post("/blog/{blogId}/dislike", handler.react(reaction.KindDislike))
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	filter := Filter{Title: request.URL.Query().Get("blogTitle")}

	blogs, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "All blogs found", blogs, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	blogID, err := requestutil.ID(request, FieldBlogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	viewer, known := requestutil.Identity(request)
	detail, err := handler.service.Get(request.Context(), blogID, viewer, known)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Blog found", detail)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	blog, err := handler.service.Create(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Blog created", blog)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	blogID, err := requestutil.ID(request, FieldBlogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	blog, err := handler.service.Update(request.Context(), actor, blogID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Blog updated", blog)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	blogID, err := requestutil.ID(request, FieldBlogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	blog, err := handler.service.Delete(request.Context(), actor, blogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Blog deleted", blog)
}

func (handler *Handler) react(kind reaction.Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		actor, err := requestutil.RequiredIdentity(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		blogID, err := requestutil.ID(request, FieldBlogID)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		state, err := handler.reactions.Toggle(request.Context(), actor, blogID, kind)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, "Reaction updated", state)
	}
}
