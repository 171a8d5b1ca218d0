// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkpost/internal/blog"
	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/platform/sec"
	"github.com/taibuivan/inkpost/pkg/pointer"
)

var (
	ada = sec.Identity{SubjectID: 7, Email: "ada@example.com"}
	bob = sec.Identity{SubjectID: 9, Email: "bob@example.com"}
)

func newService() (*blog.Service, *memoryRepository) {
	repo := newMemoryRepository(map[int64]string{7: "Ada", 9: "Bob"})
	return blog.NewService(repo, slog.New(slog.DiscardHandler)), repo
}

/*
TestCreate verifies slugs, trimming and that invalid payloads write nothing.
*/
func TestCreate(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, ada, blog.CreateInput{
		Title: "  Héllo, Wörld!  ", Content: "First post", BlogImage: pointer.To("https://cdn.inkpost.app/a.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Héllo, Wörld!", created.Title)
	assert.Equal(t, "hello-world", created.Slug)
	assert.Equal(t, ada.SubjectID, created.AuthorID)

	tests := []struct {
		name   string
		input  blog.CreateInput
		fields []string
	}{
		{"empty_title_and_content", blog.CreateInput{Title: "", Content: ""}, []string{blog.FieldTitle, blog.FieldContent}},
		{"blank_title", blog.CreateInput{Title: "   ", Content: "x"}, []string{blog.FieldTitle}},
		{"long_title", blog.CreateInput{Title: strings.Repeat("a", 201), Content: "x"}, []string{blog.FieldTitle}},
		{"bad_image", blog.CreateInput{Title: "t", Content: "x", BlogImage: pointer.To("ftp://x")}, []string{blog.FieldBlogImage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writes := repo.writes
			_, err := service.Create(ctx, ada, tt.input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeValidation, appErr.Code)

			fields := []string{}
			for _, detail := range appErr.Details {
				fields = append(fields, detail.Field)
			}
			assert.Equal(t, tt.fields, fields)
			assert.Equal(t, writes, repo.writes, "nothing must be written")
		})
	}
}

/*
TestCreate_SymbolOnlyTitle verifies a fallback slug is used.
*/
func TestCreate_SymbolOnlyTitle(t *testing.T) {
	service, _ := newService()

	created, err := service.Create(context.Background(), ada, blog.CreateInput{Title: "!!!", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, "post", created.Slug)
}

/*
TestUpdate verifies ownership ordering and partial updates.
*/
func TestUpdate(t *testing.T) {
	service, repo := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, ada, blog.CreateInput{Title: "Old", Content: "body", BlogImage: pointer.To("https://x.io/i.png")})
	require.NoError(t, err)

	t.Run("owner", func(t *testing.T) {
		updated, err := service.Update(ctx, ada, created.ID, blog.UpdateInput{Title: pointer.To("New Title"), BlogImage: pointer.To("")})
		require.NoError(t, err)
		assert.Equal(t, "New Title", updated.Title)
		assert.Equal(t, "new-title", updated.Slug)
		assert.Equal(t, "body", updated.Content)
		assert.Nil(t, updated.BlogImage)
	})

	t.Run("not_owner", func(t *testing.T) {
		writes := repo.writes
		_, err := service.Update(ctx, bob, created.ID, blog.UpdateInput{Title: pointer.To("Mine now")})
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
		assert.Equal(t, "You are not authorised to update the blog", err.Error())
		assert.Equal(t, writes, repo.writes)
	})

	t.Run("not_owner_with_invalid_payload", func(t *testing.T) {
		_, err := service.Update(ctx, bob, created.ID, blog.UpdateInput{Title: pointer.To("")})
		assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := service.Update(ctx, bob, 404, blog.UpdateInput{})
		assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	})

	t.Run("empty_content", func(t *testing.T) {
		_, err := service.Update(ctx, ada, created.ID, blog.UpdateInput{Content: pointer.To(" ")})
		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

		stored, _ := repo.FindByID(ctx, created.ID)
		assert.Equal(t, "body", stored.Content)
	})
}

/*
TestDelete verifies existence is checked before ownership.
*/
func TestDelete(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, ada, blog.CreateInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = service.Delete(ctx, bob, 404)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.Delete(ctx, bob, created.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeForbidden))

	deleted, err := service.Delete(ctx, ada, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	assert.True(t, apperr.HasCode(service.Exists(ctx, created.ID), apperr.CodeNotFound))
}

/*
TestGet verifies is_mine reflects the viewer.
*/
func TestGet(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	created, err := service.Create(ctx, ada, blog.CreateInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	detail, err := service.Get(ctx, created.ID, ada, true)
	require.NoError(t, err)
	assert.True(t, detail.IsMine)
	assert.Equal(t, "Ada", detail.Author.Name)

	detail, err = service.Get(ctx, created.ID, bob, true)
	require.NoError(t, err)
	assert.False(t, detail.IsMine)

	detail, err = service.Get(ctx, created.ID, sec.Identity{}, false)
	require.NoError(t, err)
	assert.False(t, detail.IsMine)
}

/*
TestList verifies the exact title filter.
*/
func TestList(t *testing.T) {
	service, _ := newService()
	ctx := context.Background()

	for _, title := range []string{"Go", "Go tips", "Rust"} {
		_, err := service.Create(ctx, ada, blog.CreateInput{Title: title, Content: "c"})
		require.NoError(t, err)
	}

	all, total, err := service.List(ctx, blog.Filter{}, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, 3, total)

	filtered, total, err := service.List(ctx, blog.Filter{Title: "Go"}, 20, 0)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Go", filtered[0].Title)
}
