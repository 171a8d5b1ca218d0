// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blog implements authoring, listing and reading blog posts.

Creation requires an authenticated author. Updates and deletions are restricted
to the author through the ownership policy: the blog is loaded first (404 when
absent), then ownership is checked (403 when denied), and only then is the
payload validated and written.
*/
package blog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/inkpost/internal/platform/policy"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/internal/platform/validate"
	"github.com/taibuivan/inkpost/pkg/slug"
)

// Service implements blog use cases.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// # Queries

// List returns a page of blogs with their author and counters.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Summary, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

// Get returns a blog detail. When viewer is known, IsMine reports authorship.
func (service *Service) Get(context context.Context, id int64, viewer sec.Identity, known bool) (*Detail, error) {
	detail, err := service.repo.Detail(context, id)
	if err != nil {
		return nil, err
	}

	detail.IsMine = known && viewer.SubjectID == detail.AuthorID
	return detail, nil
}

// Exists returns NOT_FOUND when the blog does not exist.
func (service *Service) Exists(context context.Context, id int64) error {
	_, err := service.repo.FindByID(context, id)
	return err
}

// # Commands

// Create publishes a new blog authored by actor.
//
// Empty title or content is a VALIDATION_ERROR and nothing is written.
func (service *Service) Create(context context.Context, actor sec.Identity, input CreateInput) (*Blog, error) {
	title := strings.TrimSpace(input.Title)
	image := normalizeImage(input.BlogImage)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTitleLength)
	validator.Required(FieldContent, input.Content)
	if image != nil {
		validator.URL(FieldBlogImage, *image)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	blog := &Blog{
		Title:     title,
		Slug:      slugFor(title),
		Content:   input.Content,
		BlogImage: image,
		AuthorID:  actor.SubjectID,
	}

	if err := service.repo.Create(context, blog); err != nil {
		return nil, err
	}

	service.logger.Info("blog_created", slog.Int64("blog_id", blog.ID), slog.Int64("author_id", blog.AuthorID))
	return blog, nil
}

// Update applies a partial update to one of actor's blogs.
func (service *Service) Update(context context.Context, actor sec.Identity, id int64, input UpdateInput) (*Blog, error) {
	blog, err := policy.LoadOwned(context, actor, id, service.repo.FindByID, "update the blog")
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTitleLength)
		blog.Title = title
		blog.Slug = slugFor(title)
	}
	if input.Content != nil {
		validator.Required(FieldContent, *input.Content)
		blog.Content = *input.Content
	}
	if input.BlogImage != nil {
		blog.BlogImage = normalizeImage(input.BlogImage)
		if blog.BlogImage != nil {
			validator.URL(FieldBlogImage, *blog.BlogImage)
		}
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, blog); err != nil {
		return nil, err
	}

	service.logger.Info("blog_updated", slog.Int64("blog_id", blog.ID))
	return blog, nil
}

// Delete removes one of actor's blogs and returns it.
func (service *Service) Delete(context context.Context, actor sec.Identity, id int64) (*Blog, error) {
	blog, err := policy.LoadOwned(context, actor, id, service.repo.FindByID, "delete the blog")
	if err != nil {
		return nil, err
	}

	if err := service.repo.Delete(context, blog.ID); err != nil {
		return nil, err
	}

	service.logger.Warn("blog_deleted", slog.Int64("blog_id", blog.ID))
	return blog, nil
}

// # Helpers

func slugFor(title string) string {
	if s := slug.From(title); s != "" {
		return s
	}
	return fallbackSlug
}

// normalizeImage treats a blank image URL as no image.
func normalizeImage(image *string) *string {
	if image == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*image)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
