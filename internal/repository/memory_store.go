// internal/repository/memory_store.go
package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javajoker/permit-backend/internal/models"
)

type MemoryStore struct {
	mu           sync.Mutex
	applications map[uuid.UUID]*models.PermitApplication
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{applications: make(map[uuid.UUID]*models.PermitApplication)}
}

func (s *MemoryStore) Create(ctx context.Context, app *models.PermitApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.applications[app.ID]; exists {
		return fmt.Errorf("application %s already exists", app.ID)
	}
	s.applications[app.ID] = app.Clone()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*models.PermitApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[id]
	if !ok {
		return nil, ErrNotFound
	}
	return app.Clone(), nil
}

func (s *MemoryStore) Update(ctx context.Context, id uuid.UUID, fn func(*models.PermitApplication) error) (*models.PermitApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.applications[id]
	if !ok {
		return nil, ErrNotFound
	}

	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.UpdatedAt = time.Now().UTC()

	s.applications[id] = working
	return working.Clone(), nil
}
