// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/inkpost/internal/platform/request"
	"github.com/taibuivan/inkpost/internal/platform/respond"
	"github.com/taibuivan/inkpost/pkg/pagination"
)

// Handler implements the comment HTTP endpoints.
type Handler struct {
	service *Service
	guard   func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler]. guard is the required auth middleware.
func NewHandler(service *Service, guard func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, guard: guard}
}

// Routes returns a [chi.Router] configured with comment routes.
//
// # Endpoints
//   - GET    /{blogId}                : Comments of a blog.
//   - POST   /{blogId}                : Comment on a blog.
//   - PATCH  /comment/{commentId}     : Edit own comment.
//   - DELETE /comment/{commentId}     : Delete own comment.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{blogId}", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(handler.guard)
		r.Post("/{blogId}", handler.create)
		r.Patch("/comment/{commentId}", handler.update)
		r.Delete("/comment/{commentId}", handler.delete)
	})

	return router
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	blogID, err := requestutil.ID(request, FieldBlogID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, total, err := handler.service.ListByBlog(request.Context(), blogID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "All comments have been fetched", comments, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
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

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), actor, blogID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Comment created", comment)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.ID(request, FieldCommentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Update(request.Context(), actor, commentID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Comment updated", comment)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.ID(request, FieldCommentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Delete(request.Context(), actor, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Comment deleted", comment)
}
