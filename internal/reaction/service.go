// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package reaction implements likes and dislikes on blogs.
//
// A reaction is always keyed by the actor's own subject id, so a user can only
// ever add or remove their own reactions.
package reaction

import (
	"context"
	"log/slog"

	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/internal/platform/validate"
)

// BlogChecker confirms a blog exists, returning NOT_FOUND otherwise.
type BlogChecker interface {
	Exists(context context.Context, blogID int64) error
}

// Service implements reaction use cases.
type Service struct {
	repo   Repository
	blogs  BlogChecker
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, blogs BlogChecker, logger *slog.Logger) *Service {
	return &Service{repo: repo, blogs: blogs, logger: logger}
}

// Toggle flips the actor's reaction of kind on a blog.
func (service *Service) Toggle(context context.Context, actor sec.Identity, blogID int64, kind Kind) (*State, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldKind, string(kind), string(KindLike), string(KindDislike))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.blogs.Exists(context, blogID); err != nil {
		return nil, err
	}

	state, err := service.repo.Toggle(context, blogID, actor.SubjectID, kind)
	if err != nil {
		return nil, err
	}

	service.logger.Info("reaction_toggled",
		slog.Int64("blog_id", blogID),
		slog.Int64("user_id", actor.SubjectID),
		slog.String("kind", string(kind)),
		slog.Bool("active", (kind == KindLike && state.Liked) || (kind == KindDislike && state.Disliked)),
	)
	return state, nil
}
