package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/javajoker/permit-backend/internal/models"
	"github.com/javajoker/permit-backend/internal/repository"
)

var fixedNow = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func newTestFormService(store repository.ApplicationStore) *FormService {
	s := NewFormService(store)
	s.now = func() time.Time { return fixedNow }
	s.newNumber = func() (string, error) { return "APP-123456", nil }
	return s
}

func seedApplication(t *testing.T, store repository.ApplicationStore, platform models.Platform) *models.PermitApplication {
	t.Helper()
	app := models.NewPermitApplication(platform, fixedNow)
	require.NoError(t, store.Create(context.Background(), app))
	return app
}

// seedSubmitted returns an application that went through submit and continue.
func seedSubmitted(t *testing.T, store repository.ApplicationStore, platform models.Platform) *models.PermitApplication {
	t.Helper()
	app := models.NewPermitApplication(platform, fixedNow)
	app.Submission = models.Submission{IsSubmitted: true, ApplicationNumber: "APP-777"}
	require.NoError(t, store.Create(context.Background(), app))
	return app
}

// seedOnChecklist returns a submitted application showing the document checklist.
func seedOnChecklist(t *testing.T, store repository.ApplicationStore, platform models.Platform) *models.PermitApplication {
	t.Helper()
	app := models.NewPermitApplication(platform, fixedNow)
	app.Submission = models.Submission{IsSubmitted: true, ApplicationNumber: "APP-777"}
	app.Screen = models.ScreenDocuments
	require.NoError(t, store.Create(context.Background(), app))
	return app
}
