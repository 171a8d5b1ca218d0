// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/inkpost/internal/platform/apperr"
	"github.com/taibuivan/inkpost/internal/users"
)

// memoryRepository is an in-memory [users.Repository].
type memoryRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]users.User
	calls  int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: make(map[int64]users.User)}
}

func (repo *memoryRepository) List(_ context.Context, limit, offset int) ([]*users.User, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls++

	ids := make([]int64, 0, len(repo.rows))
	for id := range repo.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := []*users.User{}
	for i := offset; i < len(ids) && i < offset+limit; i++ {
		row := repo.rows[ids[i]]
		result = append(result, &row)
	}
	return result, len(ids), nil
}

func (repo *memoryRepository) FindByID(_ context.Context, id int64) (*users.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls++

	row, ok := repo.rows[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &row, nil
}

func (repo *memoryRepository) FindByEmail(_ context.Context, email string) (*users.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls++

	for _, row := range repo.rows {
		if row.Email == email {
			return &row, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *memoryRepository) Create(_ context.Context, user *users.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls++

	for _, row := range repo.rows {
		if row.Email == user.Email {
			return apperr.Conflict("User already exists")
		}
	}

	repo.nextID++
	user.ID = repo.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	repo.rows[user.ID] = *user
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, user *users.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls++

	if _, ok := repo.rows[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	user.UpdatedAt = time.Now()
	repo.rows[user.ID] = *user
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.calls++

	if _, ok := repo.rows[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(repo.rows, id)
	return nil
}

// memoryRevocations is an in-memory [users.RevocationStore].
type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemoryRevocations() *memoryRevocations {
	return &memoryRevocations{revoked: make(map[string]time.Duration)}
}

func (store *memoryRevocations) Revoke(_ context.Context, tokenHash string, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.revoked[tokenHash] = ttl
	return nil
}

func (store *memoryRevocations) IsRevoked(_ context.Context, tokenHash string) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	_, ok := store.revoked[tokenHash]
	return ok, nil
}
