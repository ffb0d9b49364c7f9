package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/permit-backend/internal/models"
	"github.com/javajoker/permit-backend/internal/repository"
)

func TestFormService_SetFields(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestFormService(store)
	app := seedApplication(t, store, models.PlatformWeb)
	ctx := context.Background()

	updated, err := service.SetFields(ctx, app.ID, &SetFieldsRequest{Updates: []models.FieldUpdate{
		{Field: "ownerFirstName", Text: strPtr("Juan")},
		{Field: "forConstructionOwnedByEnterprise", Flag: boolPtr(true)},
		{Field: "expectedDateCompletion", Text: strPtr("sometime")},
	}})
	require.NoError(t, err)
	assert.Equal(t, "Juan", updated.Form.OwnerFirstName)
	assert.True(t, updated.Form.ForConstructionOwnedByEnterprise)
	assert.Equal(t, "sometime", updated.Form.ExpectedDateCompletion)
}

func TestFormService_SetFieldsIsAllOrNothing(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestFormService(store)
	app := seedApplication(t, store, models.PlatformWeb)
	ctx := context.Background()

	_, err := service.SetFields(ctx, app.ID, &SetFieldsRequest{Updates: []models.FieldUpdate{
		{Field: "ownerFirstName", Text: strPtr("Juan")},
		{Field: "bogus", Text: strPtr("x")},
	}})
	assert.True(t, errors.Is(err, models.ErrUnknownField))

	loaded, err := store.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Form.OwnerFirstName)
}

func TestFormService_SetFieldsValidation(t *testing.T) {
	service := newTestFormService(repository.NewMemoryStore())

	_, err := service.SetFields(context.Background(), uuid.New(), &SetFieldsRequest{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrApplicationNotFound))
}

func TestFormService_ReadOnlyRejectsEdits(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestFormService(store)
	app := seedSubmitted(t, store, models.PlatformAndroid)
	ctx := context.Background()

	_, err := service.SetFields(ctx, app.ID, &SetFieldsRequest{Updates: []models.FieldUpdate{
		{Field: "ownerFirstName", Text: strPtr("Juan")},
	}})
	assert.True(t, errors.Is(err, ErrFormReadOnly))

	_, err = service.SetOccupancyType(ctx, app.ID, models.OccupancyNew)
	assert.True(t, errors.Is(err, ErrFormReadOnly))

	_, err = service.OpenDatePicker(ctx, app.ID, "lotOwnerDate")
	assert.True(t, errors.Is(err, ErrFormReadOnly))

	_, err = service.SetDateField(ctx, app.ID, "lotOwnerDate", &SetDateRequest{})
	assert.True(t, errors.Is(err, ErrFormReadOnly))

	_, err = service.Submit(ctx, app.ID)
	assert.True(t, errors.Is(err, ErrFormReadOnly))
}

func TestFormService_SetOccupancyType(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestFormService(store)
	app := seedApplication(t, store, models.PlatformWeb)
	ctx := context.Background()

	updated, err := service.SetOccupancyType(ctx, app.ID, models.OccupancyComplex)
	require.NoError(t, err)
	assert.Equal(t, models.OccupancyComplex, updated.Form.TypeOfOccupancy)

	updated, err = service.SetOccupancyType(ctx, app.ID, models.OccupancyComplex)
	require.NoError(t, err)
	assert.Equal(t, models.OccupancyNone, updated.Form.TypeOfOccupancy)

	_, err = service.SetOccupancyType(ctx, app.ID, "mall")
	assert.True(t, errors.Is(err, models.ErrInvalidOccupancy))
}

func TestFormService_DatePickerOnAndroidClosesAfterSelection(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestFormService(store)
	app := seedApplication(t, store, models.PlatformAndroid)
	ctx := context.Background()

	opened, err := service.OpenDatePicker(ctx, app.ID, "expectedDateCompletion")
	require.NoError(t, err)
	assert.Equal(t, models.FormOverlay{Kind: models.OverlayDatePicker, Field: "expectedDateCompletion"}, opened.Overlay)

	updated, err := service.SetDateField(ctx, app.ID, "expectedDateCompletion", &SetDateRequest{Date: strPtr("2025-06-30T00:00:00Z")})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-30", updated.Form.ExpectedDateCompletion)
	assert.Equal(t, models.OverlayNone, updated.Overlay.Kind)
}

func TestFormService_DatePickerOnIOSStaysOpen(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestFormService(store)
	app := seedApplication(t, store, models.PlatformIOS)
	ctx := context.Background()

	_, err := service.OpenDatePicker(ctx, app.ID, "lotOwnerDate")
	require.NoError(t, err)

	updated, err := service.SetDateField(ctx, app.ID, "lotOwnerDate", &SetDateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", updated.Form.LotOwnerDate)
	assert.Equal(t, models.OverlayDatePicker, updated.Overlay.Kind)

	dismissed, err := service.DismissOverlay(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OverlayNone, dismissed.Overlay.Kind)
}

func TestFormService_DatePickerUnavailableOnWeb(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestFormService(store)
	app := seedApplication(t, store, models.PlatformWeb)
	ctx := context.Background()

	_, err := service.OpenDatePicker(ctx, app.ID, "lotOwnerDate")
	assert.True(t, errors.Is(err, ErrPickerUnavailable))

	// typed dates still go through
	updated, err := service.SetDateField(ctx, app.ID, "lotOwnerDate", &SetDateRequest{Date: strPtr("12/25/2024")})
	require.NoError(t, err)
	assert.Equal(t, "2024-12-25", updated.Form.LotOwnerDate)
}

func TestFormService_DateFieldChecks(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestFormService(store)
	app := seedApplication(t, store, models.PlatformAndroid)
	ctx := context.Background()

	_, err := service.OpenDatePicker(ctx, app.ID, "ownerTin")
	assert.True(t, errors.Is(err, ErrNotDateField))

	_, err = service.SetDateField(ctx, app.ID, "nope", &SetDateRequest{})
	assert.True(t, errors.Is(err, models.ErrUnknownField))
}

func TestFormService_SubmitContinueEdit(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestFormService(store)
	app := seedApplication(t, store, models.PlatformAndroid)
	ctx := context.Background()

	_, err := service.ContinueAfterSubmit(ctx, app.ID)
	assert.True(t, errors.Is(err, ErrNotSubmitted))

	submitted, err := service.Submit(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, "APP-123456", submitted.Submission.ApplicationNumber)
	assert.True(t, submitted.ShowSuccessModal())
	assert.True(t, submitted.Editable())

	// the modal blocks the picker
	_, err = service.OpenDatePicker(ctx, app.ID, "lotOwnerDate")
	assert.True(t, errors.Is(err, ErrOverlayBusy))
	_, err = service.SetDateField(ctx, app.ID, "lotOwnerDate", &SetDateRequest{})
	assert.True(t, errors.Is(err, ErrOverlayBusy))

	continued, err := service.ContinueAfterSubmit(ctx, app.ID)
	require.NoError(t, err)
	assert.False(t, continued.Editable())
	assert.False(t, continued.ShowSuccessModal())
	assert.Equal(t, "APP-123456", continued.Submission.ApplicationNumber)

	edited, err := service.EditAgain(ctx, app.ID)
	require.NoError(t, err)
	assert.True(t, edited.Editable())
	assert.Equal(t, models.ScreenForm, edited.Screen)
	assert.Equal(t, "APP-123456", edited.Submission.ApplicationNumber)
}

func TestFormService_ContinueRequiresSuccessModal(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestFormService(store)
	app := seedApplication(t, store, models.PlatformIOS)
	ctx := context.Background()

	_, err := service.Submit(ctx, app.ID)
	require.NoError(t, err)
	_, err = service.ContinueAfterSubmit(ctx, app.ID)
	require.NoError(t, err)
	_, err = service.EditAgain(ctx, app.ID)
	require.NoError(t, err)
	_, err = service.SetFields(ctx, app.ID, &SetFieldsRequest{Updates: []models.FieldUpdate{
		{Field: "ownerTin", Text: strPtr("123-456")},
	}})
	require.NoError(t, err)

	// continuing without a fresh submit keeps the form editable
	_, err = service.ContinueAfterSubmit(ctx, app.ID)
	assert.True(t, errors.Is(err, ErrNoSuccessModal))

	loaded, err := store.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Editable())

	_, err = service.Submit(ctx, app.ID)
	require.NoError(t, err)
	_, err = service.DismissOverlay(ctx, app.ID)
	require.NoError(t, err)

	_, err = service.ContinueAfterSubmit(ctx, app.ID)
	assert.True(t, errors.Is(err, ErrNoSuccessModal))

	loaded, err = store.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Editable())
}

func TestFormService_DismissSuccessModalKeepsFormEditable(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestFormService(store)
	app := seedApplication(t, store, models.PlatformAndroid)
	ctx := context.Background()

	_, err := service.Submit(ctx, app.ID)
	require.NoError(t, err)

	dismissed, err := service.DismissOverlay(ctx, app.ID)
	require.NoError(t, err)
	assert.True(t, dismissed.Editable())
	assert.False(t, dismissed.ShowSuccessModal())
	assert.Equal(t, "APP-123456", dismissed.Submission.ApplicationNumber)
}

func TestFormService_SubmitNumberFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	service := newTestFormService(store)
	service.newNumber = func() (string, error) { return "", errors.New("entropy exhausted") }
	app := seedApplication(t, store, models.PlatformWeb)

	_, err := service.Submit(context.Background(), app.ID)
	assert.EqualError(t, err, "entropy exhausted")

	loaded, err := store.Get(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Submission.ApplicationNumber)
}

func TestFormService_UnknownApplication(t *testing.T) {
	service := newTestFormService(repository.NewMemoryStore())

	_, err := service.Submit(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrApplicationNotFound))
}
