// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/taibuivan/inkpost/internal/blog"
	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/reaction"
)

// memoryRepository is an in-memory [blog.Repository].
// Author names are resolved from a fixed directory.
type memoryRepository struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[int64]blog.Blog
	authors map[int64]string
	reads   int
	writes  int
}

func newMemoryRepository(authors map[int64]string) *memoryRepository {
	return &memoryRepository{rows: make(map[int64]blog.Blog), authors: authors}
}

func (repo *memoryRepository) summary(row blog.Blog) *blog.Summary {
	return &blog.Summary{Blog: row, Author: blog.Author{ID: row.AuthorID, Name: repo.authors[row.AuthorID]}}
}

func (repo *memoryRepository) List(_ context.Context, filter blog.Filter, limit, offset int) ([]*blog.Summary, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.reads++

	matched := []blog.Blog{}
	for _, row := range repo.rows {
		if filter.Title == "" || row.Title == filter.Title {
			matched = append(matched, row)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	result := []*blog.Summary{}
	for i := offset; i < len(matched) && i < offset+limit; i++ {
		result = append(result, repo.summary(matched[i]))
	}
	return result, len(matched), nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id int64) (*blog.Blog, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.reads++

	row, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("Blog")
	}
	return &row, nil
}

func (repo *memoryRepository) Detail(_ context.Context, id int64) (*blog.Detail, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.reads++

	row, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("Blog")
	}
	return &blog.Detail{
		Summary:   *repo.summary(row),
		Likers:    []blog.Author{},
		Dislikers: []blog.Author{},
		Comments:  []blog.CommentView{},
	}, nil
}

func (repo *memoryRepository) Create(_ context.Context, row *blog.Blog) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.writes++

	repo.nextID++
	row.ID = repo.nextID
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	repo.rows[row.ID] = *row
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, row *blog.Blog) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.writes++

	if _, ok := repo.rows[row.ID]; !ok {
		return apperr.NotFound("Blog")
	}
	row.UpdatedAt = time.Now()
	repo.rows[row.ID] = *row
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.writes++

	if _, ok := repo.rows[id]; !ok {
		return apperr.NotFound("Blog")
	}
	delete(repo.rows, id)
	return nil
}

// memoryReactions is a minimal in-memory [reaction.Repository].
type memoryReactions struct {
	mu    sync.Mutex
	rows  map[[2]int64]reaction.Kind
	calls int
}

func (repo *memoryReactions) Toggle(_ context.Context, blogID, userID int64, kind reaction.Kind) (*reaction.State, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls++

	k := [2]int64{blogID, userID}
	if repo.rows[k] == kind {
		delete(repo.rows, k)
	} else {
		repo.rows[k] = kind
	}

	state := &reaction.State{BlogID: blogID}
	for key, got := range repo.rows {
		if key[0] != blogID {
			continue
		}
		if got == reaction.KindLike {
			state.Likes++
			state.Liked = state.Liked || key[1] == userID
		} else {
			state.Dislikes++
			state.Disliked = state.Disliked || key[1] == userID
		}
	}
	return state, nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
