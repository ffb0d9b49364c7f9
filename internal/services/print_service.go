// internal/services/print_service.go
package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"text/template"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/permit-backend/internal/metrics"
	"github.com/javajoker/permit-backend/internal/models"
	"github.com/javajoker/permit-backend/internal/repository"
)

type Orientation string

const OrientationPortrait Orientation = "portrait"

//go:embed templates/permit_form.html.tmpl
var templateFS embed.FS

// text/template leaves field values unescaped, so markup typed into a field is
// reproduced verbatim in the printout.
var permitFormTemplate = template.Must(template.ParseFS(templateFS, "templates/permit_form.html.tmpl"))

type occupancyMark struct {
	Label    string
	Selected bool
}

type printView struct {
	Orientation Orientation
	Occupancy   []occupancyMark
	Form        models.FormRecord
}

// RenderPrintableDocument mirrors the form as a standalone HTML document.
func RenderPrintableDocument(form models.FormRecord) (string, error) {
	view := printView{
		Orientation: OrientationPortrait,
		Form:        form,
	}
	for _, option := range models.OccupancyOptions {
		view.Occupancy = append(view.Occupancy, occupancyMark{
			Label:    option.Label,
			Selected: form.TypeOfOccupancy == option.Value,
		})
	}

	var buf bytes.Buffer
	if err := permitFormTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render printable document: %w", err)
	}
	return buf.String(), nil
}

type PrintJob struct {
	Name        string
	HTML        string
	Orientation Orientation
}

type PrintResult struct {
	URL         string      `json:"url"`
	Orientation Orientation `json:"orientation"`
}

// PrintDispatcher hands a rendered document to the print backend.
type PrintDispatcher interface {
	Dispatch(ctx context.Context, job PrintJob) (*PrintResult, error)
}

// StoragePrintDispatcher publishes the document through object storage so the
// client can print or share it from the returned URL.
type StoragePrintDispatcher struct {
	storage *StorageService
}

func NewStoragePrintDispatcher(storage *StorageService) *StoragePrintDispatcher {
	return &StoragePrintDispatcher{storage: storage}
}

func (d *StoragePrintDispatcher) Dispatch(ctx context.Context, job PrintJob) (*PrintResult, error) {
	options := d.storage.GetDefaultUploadOptions(UploadCategoryPrints)
	options.Metadata = map[string]string{"orientation": string(job.Orientation)}

	result, err := d.storage.PutObject(ctx, job.Name+".html", []byte(job.HTML), "text/html; charset=utf-8", options)
	if err != nil {
		return nil, err
	}

	url, err := d.storage.ResolveURL(result.URL)
	if err != nil {
		return nil, err
	}
	return &PrintResult{URL: url, Orientation: job.Orientation}, nil
}

type PrintService struct {
	store      repository.ApplicationStore
	dispatcher PrintDispatcher
}

func NewPrintService(store repository.ApplicationStore, dispatcher PrintDispatcher) *PrintService {
	return &PrintService{store: store, dispatcher: dispatcher}
}

func (s *PrintService) Render(ctx context.Context, id uuid.UUID) (string, error) {
	app, err := s.store.Get(ctx, id)
	if err != nil {
		return "", storeError(err)
	}
	return RenderPrintableDocument(app.Form)
}

// Print renders the submitted form and dispatches it in portrait. Any failure
// past the lookup is reported as ErrPrintFailed and nothing is retried.
func (s *PrintService) Print(ctx context.Context, id uuid.UUID) (*PrintResult, error) {
	app, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if !app.Submission.IsSubmitted {
		return nil, ErrNotSubmitted
	}

	result, err := s.dispatch(ctx, app)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues(metrics.CollaboratorPrint).Inc()
		logrus.WithError(err).WithField("application_id", app.ID).Error("Error downloading/printing document")
		return nil, fmt.Errorf("%w: %v", ErrPrintFailed, err)
	}

	metrics.PrintsDispatched.Inc()
	return result, nil
}

func (s *PrintService) dispatch(ctx context.Context, app *models.PermitApplication) (*PrintResult, error) {
	html, err := RenderPrintableDocument(app.Form)
	if err != nil {
		return nil, err
	}

	return s.dispatcher.Dispatch(ctx, PrintJob{
		Name:        printName(app),
		HTML:        html,
		Orientation: OrientationPortrait,
	})
}

// printName scopes the document by application ID since application numbers
// may repeat.
func printName(app *models.PermitApplication) string {
	if app.Submission.ApplicationNumber != "" {
		return app.ID.String() + "/" + app.Submission.ApplicationNumber
	}
	return app.ID.String()
}
