// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/inkpost/internal/comment"
	"github.com/taibuivan/inkpost/internal/platform/apperr"
)

// memoryRepository is an in-memory [comment.Repository].
type memoryRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]comment.Comment
	writes int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[int64]comment.Comment)}
}

// seed inserts a comment directly, bypassing the service.
func (repo *memoryRepository) seed(blogID, authorID int64, content string) comment.Comment {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.nextID++
	row := comment.Comment{ID: repo.nextID, BlogID: blogID, AuthorID: authorID, Content: content, CreatedAt: time.Now()}
	repo.rows[row.ID] = row
	return row
}

func (repo *memoryRepository) ListByBlog(_ context.Context, blogID int64, limit, offset int) ([]*comment.Comment, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	matched := []comment.Comment{}
	for _, row := range repo.rows {
		if row.BlogID == blogID {
			matched = append(matched, row)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	result := []*comment.Comment{}
	for i := offset; i < len(matched) && i < offset+limit; i++ {
		row := matched[i]
		result = append(result, &row)
	}
	return result, len(matched), nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id int64) (*comment.Comment, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	row, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return &row, nil
}

func (repo *memoryRepository) Create(_ context.Context, row *comment.Comment) error {
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

func (repo *memoryRepository) Update(_ context.Context, row *comment.Comment) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.writes++

	if _, ok := repo.rows[row.ID]; !ok {
		return apperr.NotFound("Comment")
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
		return apperr.NotFound("Comment")
	}
	delete(repo.rows, id)
	return nil
}

type blogSet map[int64]bool

func (set blogSet) Exists(_ context.Context, blogID int64) error {
	if !set[blogID] {
		return apperr.NotFound("Blog")
	}
	return nil
}
