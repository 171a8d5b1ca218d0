// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkpost/internal/comment"
	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/sec"
)

var (
	seven = sec.Identity{SubjectID: 7, Email: "seven@example.com"}
	nine  = sec.Identity{SubjectID: 9, Email: "nine@example.com"}
)

func newService() (*comment.Service, *memoryRepository) {
	repo := newMemoryRepository()
	return comment.NewService(repo, blogSet{1: true}, slog.New(slog.DiscardHandler)), repo
}

/*
TestCreate verifies blog existence and content validation.
*/
func TestCreate(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, seven, 1, comment.Input{Content: "Nice post"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.AuthorID)
	assert.Equal(t, int64(1), created.BlogID)

	tests := []struct {
		name   string
		blogID int64
		input  string
		code   string
	}{
		{"missing_blog", 404, "hi", apperr.CodeNotFound},
		{"empty", 1, "", apperr.CodeValidation},
		{"blank", 1, " \n ", apperr.CodeValidation},
		{"too_long", 1, strings.Repeat("x", comment.MaxContentLength+1), apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writes := repo.writes
			_, err := service.Create(ctx, seven, tt.blogID, comment.Input{Content: tt.input})
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
			assert.Equal(t, writes, repo.writes)
		})
	}
}

/*
TestUpdate_NotOwner verifies a comment owned by user 7 cannot be edited by user 9.
*/
func TestUpdate_NotOwner(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()
	existing := repo.seed(1, 7, "original")

	_, err := service.Update(ctx, nine, existing.ID, comment.Input{Content: "defaced"})
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
	assert.Equal(t, "You are not authorised to update the comment", err.Error())

	stored, err := repo.FindByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Content)
	assert.Zero(t, repo.writes)
}

/*
TestUpdateAndDelete verifies the owner path and the not-found path.
*/
func TestUpdateAndDelete(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()
	existing := repo.seed(1, 7, "original")

	updated, err := service.Update(ctx, seven, existing.ID, comment.Input{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	_, err = service.Update(ctx, seven, 404, comment.Input{Content: "x"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Delete(ctx, nine, existing.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	deleted, err := service.Delete(ctx, seven, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, deleted.ID)

	_, err = service.Delete(ctx, seven, existing.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestListByBlog verifies listing is scoped to an existing blog.
*/
func TestListByBlog(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()
	repo.seed(1, 7, "first")
	repo.seed(1, 9, "second")
	repo.seed(2, 9, "elsewhere")

	comments, total, err := service.ListByBlog(ctx, 1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)

	_, _, err = service.ListByBlog(ctx, 404, 20, 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
