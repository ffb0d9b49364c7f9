// internal/repository/gorm_store.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/permit-backend/internal/database"
	"github.com/javajoker/permit-backend/internal/models"
)

// GormStore keeps applications in the permit_applications table. Updates lock
// the row for the length of the transaction.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, app *models.PermitApplication) error {
	record, err := models.NewApplicationRecord(app)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, id uuid.UUID) (*models.PermitApplication, error) {
	var record models.ApplicationRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	return record.Application()
}

func (s *GormStore) Update(ctx context.Context, id uuid.UUID, fn func(*models.PermitApplication) error) (*models.PermitApplication, error) {
	var updated *models.PermitApplication

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		var record models.ApplicationRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to load application: %w", err)
		}

		app, err := record.Application()
		if err != nil {
			return err
		}
		if err := fn(app); err != nil {
			return err
		}

		app.UpdatedAt = time.Now().UTC()
		next, err := models.NewApplicationRecord(app)
		if err != nil {
			return err
		}

		if err := tx.Model(&record).Updates(map[string]interface{}{
			"application_number": next.ApplicationNumber,
			"payload":            next.Payload,
			"uploaded_documents": next.UploadedDocuments,
			"updated_at":         app.UpdatedAt,
		}).Error; err != nil {
			return fmt.Errorf("failed to save application: %w", err)
		}

		updated = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
