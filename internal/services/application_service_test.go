package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/permit-backend/internal/config"
	"github.com/javajoker/permit-backend/internal/models"
	"github.com/javajoker/permit-backend/internal/repository"
	"github.com/javajoker/permit-backend/internal/utils"
)

func newTestApplicationService(store repository.ApplicationStore) *ApplicationService {
	s := NewApplicationService(store, &config.Config{Session: config.SessionConfig{TTLHours: 2}})
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestApplicationService_Create(t *testing.T) {
	utils.SetSessionSecret("test-secret")
	store := repository.NewMemoryStore()
	service := newTestApplicationService(store)

	resp, err := service.Create(context.Background(), &CreateApplicationRequest{Platform: models.PlatformIOS})
	require.NoError(t, err)
	assert.Equal(t, 7200, resp.ExpiresIn)
	assert.Equal(t, models.ScreenForm, resp.Application.Screen)
	assert.Equal(t, "2024-03-05", resp.Application.Form.LotOwnerDate)

	claims, err := utils.ValidateSessionToken(resp.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Application.ID.String(), claims.ApplicationID)

	_, err = store.Get(context.Background(), resp.Application.ID)
	assert.NoError(t, err)
}

func TestApplicationService_CreateRejectsUnknownPlatform(t *testing.T) {
	service := newTestApplicationService(repository.NewMemoryStore())

	_, err := service.Create(context.Background(), &CreateApplicationRequest{Platform: "symbian"})
	require.Error(t, err)
	assert.NotEmpty(t, utils.GetValidationErrors(err))
}

func TestApplicationService_Navigate(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestApplicationService(store)
	ctx := context.Background()

	draft := seedApplication(t, store, models.PlatformAndroid)
	_, err := service.Navigate(ctx, draft.ID, &NavigateRequest{Screen: models.ScreenDocuments})
	assert.True(t, errors.Is(err, ErrNotSubmitted))

	submitted := seedSubmitted(t, store, models.PlatformAndroid)
	app, err := service.Navigate(ctx, submitted.ID, &NavigateRequest{Screen: models.ScreenDocuments})
	require.NoError(t, err)
	assert.Equal(t, models.ScreenDocuments, app.Screen)

	app, err = service.Navigate(ctx, submitted.ID, &NavigateRequest{Screen: models.ScreenForm})
	require.NoError(t, err)
	assert.Equal(t, models.ScreenForm, app.Screen)

	_, err = service.Navigate(ctx, uuid.New(), &NavigateRequest{Screen: models.ScreenForm})
	assert.True(t, errors.Is(err, ErrApplicationNotFound))

	_, err = service.Get(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrApplicationNotFound))
}
