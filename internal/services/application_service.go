// internal/services/application_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/permit-backend/internal/config"
	"github.com/javajoker/permit-backend/internal/metrics"
	"github.com/javajoker/permit-backend/internal/models"
	"github.com/javajoker/permit-backend/internal/repository"
	"github.com/javajoker/permit-backend/internal/utils"
)

type ApplicationService struct {
	store  repository.ApplicationStore
	config *config.Config
	now    func() time.Time
}

type CreateApplicationRequest struct {
	Platform models.Platform `json:"platform" validate:"required,platform"`
}

type CreateApplicationResponse struct {
	Application  *models.PermitApplication `json:"application"`
	SessionToken string                    `json:"session_token"`
	ExpiresIn    int                       `json:"expires_in"`
}

type NavigateRequest struct {
	Screen models.Screen `json:"screen" validate:"required,screen"`
}

func NewApplicationService(store repository.ApplicationStore, cfg *config.Config) *ApplicationService {
	return &ApplicationService{
		store:  store,
		config: cfg,
		now:    time.Now,
	}
}

func (s *ApplicationService) Create(ctx context.Context, req *CreateApplicationRequest) (*CreateApplicationResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	app := models.NewPermitApplication(req.Platform, s.now().UTC())
	if err := s.store.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	token, err := utils.GenerateSessionToken(app.ID, string(app.Platform), s.config.Session.TTLHours)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	metrics.ApplicationsCreated.WithLabelValues(string(app.Platform)).Inc()
	logrus.WithFields(logrus.Fields{
		"application_id": app.ID,
		"platform":       app.Platform,
	}).Info("Permit application opened")

	return &CreateApplicationResponse{
		Application:  app,
		SessionToken: token,
		ExpiresIn:    s.config.Session.TTLHours * 3600,
	}, nil
}

func (s *ApplicationService) Get(ctx context.Context, id uuid.UUID) (*models.PermitApplication, error) {
	app, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return app, nil
}

// Navigate switches the mounted screen. The document checklist is reachable
// only from the read-only form.
func (s *ApplicationService) Navigate(ctx context.Context, id uuid.UUID, req *NavigateRequest) (*models.PermitApplication, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	app, err := s.store.Update(ctx, id, func(app *models.PermitApplication) error {
		if req.Screen == models.ScreenDocuments && !app.Submission.IsSubmitted {
			return ErrNotSubmitted
		}
		app.Screen = req.Screen
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}
	return app, nil
}

func storeError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrApplicationNotFound
	}
	return err
}
