// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment implements comments on blogs.
package comment

import (
	"context"
	"log/slog"

	"github.com/taibuivan/inkpost/internal/platform/policy"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/internal/platform/validate"
)

// BlogChecker confirms a blog exists, returning NOT_FOUND otherwise.
type BlogChecker interface {
	Exists(context context.Context, blogID int64) error
}

// Service implements comment use cases.
type Service struct {
	repo   Repository
	blogs  BlogChecker
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, blogs BlogChecker, logger *slog.Logger) *Service {
	return &Service{repo: repo, blogs: blogs, logger: logger}
}

// ListByBlog returns the comments of an existing blog, oldest first.
func (service *Service) ListByBlog(context context.Context, blogID int64, limit, offset int) ([]*Comment, int, error) {
	if err := service.blogs.Exists(context, blogID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListByBlog(context, blogID, limit, offset)
}

// Create adds a comment by actor on an existing blog.
func (service *Service) Create(context context.Context, actor sec.Identity, blogID int64, input Input) (*Comment, error) {
	if err := service.blogs.Exists(context, blogID); err != nil {
		return nil, err
	}

	if err := validateContent(input.Content); err != nil {
		return nil, err
	}

	comment := &Comment{Content: input.Content, BlogID: blogID, AuthorID: actor.SubjectID}
	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("blog_id", blogID),
	)
	return comment, nil
}

// Update edits one of actor's comments.
func (service *Service) Update(context context.Context, actor sec.Identity, id int64, input Input) (*Comment, error) {
	comment, err := policy.LoadOwned(context, actor, id, service.repo.FindByID, "update the comment")
	if err != nil {
		return nil, err
	}

	if err := validateContent(input.Content); err != nil {
		return nil, err
	}

	comment.Content = input.Content
	if err := service.repo.Update(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.Int64("comment_id", comment.ID))
	return comment, nil
}

// Delete removes one of actor's comments and returns it.
func (service *Service) Delete(context context.Context, actor sec.Identity, id int64) (*Comment, error) {
	comment, err := policy.LoadOwned(context, actor, id, service.repo.FindByID, "delete the comment")
	if err != nil {
		return nil, err
	}

	if err := service.repo.Delete(context, comment.ID); err != nil {
		return nil, err
	}

	service.logger.Warn("comment_deleted", slog.Int64("comment_id", comment.ID))
	return comment, nil
}

func validateContent(content string) error {
	validator := &validate.Validator{}
	validator.Required(FieldContent, content).MaxLen(FieldContent, content, MaxContentLength)
	return validator.Err()
}
