// internal/services/form_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/permit-backend/internal/metrics"
	"github.com/javajoker/permit-backend/internal/models"
	"github.com/javajoker/permit-backend/internal/repository"
	"github.com/javajoker/permit-backend/internal/utils"
)

// FormService drives the application form screen: field edits, the date picker
// overlay and the submit / continue / edit cycle.
type FormService struct {
	store     repository.ApplicationStore
	now       func() time.Time
	newNumber func() (string, error)
}

type SetFieldsRequest struct {
	Updates []models.FieldUpdate `json:"updates" validate:"required,min=1,dive"`
}

type SetOccupancyRequest struct {
	Value models.OccupancyType `json:"value" validate:"required,occupancy"`
}

// SetDateRequest carries a picker selection. A null date means the picker
// returned without one.
type SetDateRequest struct {
	Date *string `json:"date"`
}

func NewFormService(store repository.ApplicationStore) *FormService {
	return &FormService{
		store:     store,
		now:       time.Now,
		newNumber: utils.GenerateApplicationNumber,
	}
}

func (s *FormService) update(ctx context.Context, id uuid.UUID, fn func(*models.PermitApplication) error) (*models.PermitApplication, error) {
	app, err := s.store.Update(ctx, id, fn)
	if err != nil {
		return nil, storeError(err)
	}
	return app, nil
}

func requireEditable(app *models.PermitApplication) error {
	if !app.Editable() {
		return ErrFormReadOnly
	}
	return nil
}

// SetFields applies every update or none of them. Values are stored as given.
func (s *FormService) SetFields(ctx context.Context, id uuid.UUID, req *SetFieldsRequest) (*models.PermitApplication, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return s.update(ctx, id, func(app *models.PermitApplication) error {
		if err := requireEditable(app); err != nil {
			return err
		}
		for _, update := range req.Updates {
			if err := app.Form.Apply(update); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *FormService) SetOccupancyType(ctx context.Context, id uuid.UUID, value models.OccupancyType) (*models.PermitApplication, error) {
	return s.update(ctx, id, func(app *models.PermitApplication) error {
		if err := requireEditable(app); err != nil {
			return err
		}
		return app.Form.ToggleOccupancy(value)
	})
}

func checkDateField(field models.FieldName) error {
	kind, ok := models.LookupField(field)
	if !ok {
		return fmt.Errorf("%w: %q", models.ErrUnknownField, field)
	}
	if kind != models.FieldKindDate {
		return fmt.Errorf("%w: %s", ErrNotDateField, field)
	}
	return nil
}

// OpenDatePicker shows the native picker for field, replacing any other open
// picker.
func (s *FormService) OpenDatePicker(ctx context.Context, id uuid.UUID, field models.FieldName) (*models.PermitApplication, error) {
	if err := checkDateField(field); err != nil {
		return nil, err
	}

	return s.update(ctx, id, func(app *models.PermitApplication) error {
		if err := requireEditable(app); err != nil {
			return err
		}
		if !app.Platform.HasNativeDatePicker() {
			return ErrPickerUnavailable
		}
		if app.ShowSuccessModal() {
			return ErrOverlayBusy
		}
		app.Overlay = models.FormOverlay{Kind: models.OverlayDatePicker, Field: field}
		return nil
	})
}

// SetDateField stores a picked date. The picker for that field closes afterwards
// unless the platform keeps it open until dismissed.
func (s *FormService) SetDateField(ctx context.Context, id uuid.UUID, field models.FieldName, req *SetDateRequest) (*models.PermitApplication, error) {
	if err := checkDateField(field); err != nil {
		return nil, err
	}

	return s.update(ctx, id, func(app *models.PermitApplication) error {
		if err := requireEditable(app); err != nil {
			return err
		}
		if app.ShowSuccessModal() {
			return ErrOverlayBusy
		}
		if err := app.Form.SetDate(field, req.Date, s.now()); err != nil {
			return err
		}

		pickerOpen := app.Overlay.Kind == models.OverlayDatePicker && app.Overlay.Field == field
		if pickerOpen && !app.Platform.KeepsPickerOpen() {
			app.Overlay = models.NoOverlay()
		}
		return nil
	})
}

// DismissOverlay closes whatever is shown over the form. Closing the success
// modal this way keeps the form editable and keeps the application number.
func (s *FormService) DismissOverlay(ctx context.Context, id uuid.UUID) (*models.PermitApplication, error) {
	return s.update(ctx, id, func(app *models.PermitApplication) error {
		app.Overlay = models.NoOverlay()
		return nil
	})
}

// Submit assigns a fresh application number and shows the success modal. The
// form content is not checked.
func (s *FormService) Submit(ctx context.Context, id uuid.UUID) (*models.PermitApplication, error) {
	number, err := s.newNumber()
	if err != nil {
		return nil, err
	}

	app, err := s.update(ctx, id, func(app *models.PermitApplication) error {
		if err := requireEditable(app); err != nil {
			return err
		}
		app.Submission.ApplicationNumber = number
		app.Overlay = models.FormOverlay{Kind: models.OverlaySuccessModal}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ApplicationsSubmitted.WithLabelValues(string(app.Platform)).Inc()
	logrus.WithFields(logrus.Fields{
		"application_id":     app.ID,
		"application_number": number,
	}).Info("Permit application submitted")

	return app, nil
}

// ContinueAfterSubmit closes the success modal and switches the form to read-only.
// It is only accepted while the modal from the latest submit is shown.
func (s *FormService) ContinueAfterSubmit(ctx context.Context, id uuid.UUID) (*models.PermitApplication, error) {
	return s.update(ctx, id, func(app *models.PermitApplication) error {
		if app.Submission.ApplicationNumber == "" {
			return ErrNotSubmitted
		}
		if !app.ShowSuccessModal() {
			return ErrNoSuccessModal
		}
		app.Overlay = models.NoOverlay()
		app.Submission.IsSubmitted = true
		return nil
	})
}

// EditAgain returns to the editable form without clearing any field. The
// document checklist is unmounted.
func (s *FormService) EditAgain(ctx context.Context, id uuid.UUID) (*models.PermitApplication, error) {
	return s.update(ctx, id, func(app *models.PermitApplication) error {
		app.Submission.IsSubmitted = false
		app.Screen = models.ScreenForm
		return nil
	})
}
