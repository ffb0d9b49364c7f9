package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/permit-backend/internal/config"
	"github.com/javajoker/permit-backend/internal/models"
	"github.com/javajoker/permit-backend/internal/repository"
)

const selectedRadio = `<span class="radio-checked-inner"></span>`

type fakeDispatcher struct {
	jobs []PrintJob
	err  error
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, job PrintJob) (*PrintResult, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.jobs = append(d.jobs, job)
	return &PrintResult{URL: "https://print.example/" + job.Name, Orientation: job.Orientation}, nil
}

func TestRenderPrintableDocument_EmptyForm(t *testing.T) {
	html, err := RenderPrintableDocument(models.FormRecord{})
	require.NoError(t, err)

	assert.Contains(t, html, "@page { size: A4 portrait;")
	assert.Contains(t, html, "UNIFIED APPLICATION FORM FOR BUILDING PERMIT")
	for _, option := range models.OccupancyOptions {
		assert.Contains(t, html, option.Label)
	}
	assert.NotContains(t, html, selectedRadio)
	assert.NotContains(t, html, "&#10003;")
}

func TestRenderPrintableDocument_IsPure(t *testing.T) {
	form := models.NewFormRecord(fixedNow)
	form.OwnerLastName = "Santos"

	first, err := RenderPrintableDocument(form)
	require.NoError(t, err)
	second, err := RenderPrintableDocument(form)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderPrintableDocument_Values(t *testing.T) {
	form := models.NewFormRecord(fixedNow)
	form.OwnerLastName = "Santos"
	form.CostPlumbing = "12,500"
	form.TypeOfOccupancy = models.OccupancyRenewal
	form.ForConstructionOwnedByEnterprise = true

	html, err := RenderPrintableDocument(form)
	require.NoError(t, err)

	assert.Contains(t, html, `<div class="input-box">Santos</div>`)
	assert.Contains(t, html, `<div class="input-box cost-value">12,500</div>`)
	assert.Contains(t, html, selectedRadio+"</div> Renewal")
	assert.Equal(t, 1, strings.Count(html, selectedRadio))
	assert.Contains(t, html, "checkbox-checked")
	assert.Contains(t, html, "&#10003;")
}

func TestRenderPrintableDocument_SignatureDates(t *testing.T) {
	form := models.NewFormRecord(fixedNow)

	html, err := RenderPrintableDocument(form)
	require.NoError(t, err)

	// the applicant signature date is never written by the form
	assert.Contains(t, html, `id="applicant-date"></div>`)
	assert.Contains(t, html, `id="lot-owner-date">2024-03-05</div>`)
}

func TestRenderPrintableDocument_ValuesAreNotEscaped(t *testing.T) {
	form := models.FormRecord{OwnerStreet: "<b>Rizal</b> & Co"}

	html, err := RenderPrintableDocument(form)
	require.NoError(t, err)
	assert.Contains(t, html, "<b>Rizal</b> & Co")
}

func TestPrintService_Print(t *testing.T) {
	store := repository.NewMemoryStore()
	dispatcher := &fakeDispatcher{}
	service := NewPrintService(store, dispatcher)
	app := seedSubmitted(t, store, models.PlatformIOS)

	result, err := service.Print(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, OrientationPortrait, result.Orientation)

	require.Len(t, dispatcher.jobs, 1)
	assert.Equal(t, app.ID.String()+"/APP-777", dispatcher.jobs[0].Name)
	assert.Contains(t, dispatcher.jobs[0].HTML, "UNIFIED APPLICATION FORM FOR BUILDING PERMIT")
}

func TestPrintService_PrintRequiresSubmittedForm(t *testing.T) {
	store := repository.NewMemoryStore()
	dispatcher := &fakeDispatcher{}
	service := NewPrintService(store, dispatcher)
	app := seedApplication(t, store, models.PlatformIOS)

	_, err := service.Print(context.Background(), app.ID)
	assert.True(t, errors.Is(err, ErrNotSubmitted))
	assert.Empty(t, dispatcher.jobs)

	// rendering is always available
	html, err := service.Render(context.Background(), app.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, html)
}

func TestPrintService_DispatchFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	service := NewPrintService(store, &fakeDispatcher{err: errors.New("printer offline")})
	app := seedSubmitted(t, store, models.PlatformAndroid)

	_, err := service.Print(context.Background(), app.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrintFailed))
	assert.Contains(t, err.Error(), "printer offline")

	loaded, err := store.Get(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.Submission, loaded.Submission)
}

func TestStoragePrintDispatcher_Local(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{
		UploadDir:     t.TempDir(),
		PublicBaseURL: "http://localhost:8080",
		MaxUploadMB:   1,
	}}
	storage, err := NewStorageService(cfg)
	require.NoError(t, err)

	result, err := NewStoragePrintDispatcher(storage).Dispatch(context.Background(), PrintJob{
		Name:        "abc/APP-1",
		HTML:        "<html></html>",
		Orientation: OrientationPortrait,
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/prints/abc/APP-1.html", result.URL)
}
