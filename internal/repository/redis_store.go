// internal/repository/redis_store.go
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/javajoker/permit-backend/internal/models"
)

const maxUpdateRetries = 10

// RedisStore keeps each application as a JSON value with a sliding TTL that
// every read and write restarts.
// Updates use optimistic WATCH/MULTI and retry on conflict.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id uuid.UUID) string {
	return s.prefix + id.String()
}

func (s *RedisStore) Create(ctx context.Context, app *models.PermitApplication) error {
	data, err := json.Marshal(app)
	if err != nil {
		return fmt.Errorf("failed to encode application: %w", err)
	}

	created, err := s.client.SetNX(ctx, s.key(app.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	if !created {
		return fmt.Errorf("application %s already exists", app.ID)
	}
	return nil
}

// Get reads the application and restarts its expiry.
func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*models.PermitApplication, error) {
	data, err := s.client.GetEx(ctx, s.key(id), s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return decodeApplication(data)
}

func (s *RedisStore) Update(ctx context.Context, id uuid.UUID, fn func(*models.PermitApplication) error) (*models.PermitApplication, error) {
	key := s.key(id)
	var updated *models.PermitApplication

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load application: %w", err)
		}

		app, err := decodeApplication(data)
		if err != nil {
			return err
		}
		if err := fn(app); err != nil {
			return err
		}
		app.UpdatedAt = time.Now().UTC()

		next, err := json.Marshal(app)
		if err != nil {
			return fmt.Errorf("failed to encode application: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		updated = app
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, fmt.Errorf("failed to update application %s: too many concurrent writers", id)
}

func decodeApplication(data []byte) (*models.PermitApplication, error) {
	var app models.PermitApplication
	if err := json.Unmarshal(data, &app); err != nil {
		return nil, fmt.Errorf("failed to decode application: %w", err)
	}
	return &app, nil
}
