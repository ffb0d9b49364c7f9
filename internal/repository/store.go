// internal/repository/store.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/javajoker/permit-backend/internal/models"
)

var ErrNotFound = errors.New("application not found")

// ApplicationStore serializes mutations per application. Update runs fn on a
// private copy and stores it only when fn returns nil.
type ApplicationStore interface {
	Create(ctx context.Context, app *models.PermitApplication) error
	Get(ctx context.Context, id uuid.UUID) (*models.PermitApplication, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*models.PermitApplication) error) (*models.PermitApplication, error)
}
