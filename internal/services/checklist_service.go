// internal/services/checklist_service.go
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/permit-backend/internal/i18n"
	"github.com/javajoker/permit-backend/internal/metrics"
	"github.com/javajoker/permit-backend/internal/models"
	"github.com/javajoker/permit-backend/internal/repository"
)

type ChecklistService struct {
	store  repository.ApplicationStore
	opener LinkOpener
}

type ToggleDocumentRequest struct {
	Checked *bool `json:"checked"`
}

// ViewerContent describes what the document viewer shows for the selected
// document. No file content is read.
type ViewerContent struct {
	Document          models.DocumentRequirement `json:"document"`
	Kind              models.FileKind            `json:"kind"`
	PreviewURL        string                     `json:"previewUrl,omitempty"`
	MessageKey        string                     `json:"-"`
	Message           string                     `json:"message,omitempty"`
	ActionKey         string                     `json:"-"`
	ActionLabel       string                     `json:"actionLabel,omitempty"`
	CanOpenExternally bool                       `json:"canOpenExternally"`
}

type OpenExternalResult struct {
	Opened bool   `json:"opened"`
	URL    string `json:"url,omitempty"`
}

func NewChecklistService(store repository.ApplicationStore, opener LinkOpener) *ChecklistService {
	return &ChecklistService{store: store, opener: opener}
}

// update applies fn while the checklist screen is mounted.
func (s *ChecklistService) update(ctx context.Context, id uuid.UUID, fn func(*models.PermitApplication) error) (*models.PermitApplication, error) {
	app, err := s.store.Update(ctx, id, func(app *models.PermitApplication) error {
		if err := requireChecklist(app); err != nil {
			return err
		}
		return fn(app)
	})
	if err != nil {
		return nil, storeError(err)
	}
	return app, nil
}

func requireChecklist(app *models.PermitApplication) error {
	if app.Screen != models.ScreenDocuments {
		return ErrChecklistNotMounted
	}
	return nil
}

func (s *ChecklistService) List(ctx context.Context, id uuid.UUID) (*models.Checklist, error) {
	app, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return &app.Checklist, nil
}

func (s *ChecklistService) Toggle(ctx context.Context, id uuid.UUID, docID string, req *ToggleDocumentRequest) (*models.DocumentRequirement, error) {
	var checked *bool
	if req != nil {
		checked = req.Checked
	}

	app, err := s.update(ctx, id, func(app *models.PermitApplication) error {
		_, err := app.Checklist.Toggle(docID, checked)
		return err
	})
	if err != nil {
		return nil, err
	}
	return app.Checklist.Find(docID)
}

// Upload runs the picker for one requirement. Cancellations and picker failures
// leave the record untouched and are not reported to the caller; failures are
// only logged.
func (s *ChecklistService) Upload(ctx context.Context, id uuid.UUID, docID string, picker Picker) (*models.DocumentRequirement, error) {
	app, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if err := requireChecklist(app); err != nil {
		return nil, err
	}
	current, err := app.Checklist.Find(docID)
	if err != nil {
		return nil, err
	}

	result, err := picker.Pick(ctx)
	if err != nil {
		s.pickerFailed(err, id, docID)
		return current, nil
	}
	if result.Cancelled {
		metrics.UploadsCancelled.Inc()
		return current, nil
	}

	app, err = s.update(ctx, id, func(app *models.PermitApplication) error {
		_, err := app.Checklist.AttachFile(docID, result.Name, result.URI)
		return err
	})
	if errors.Is(err, models.ErrIncompleteFile) {
		s.pickerFailed(err, id, docID)
		return current, nil
	}
	if err != nil {
		return nil, err
	}

	metrics.DocumentsUploaded.WithLabelValues(docID).Inc()
	logrus.WithFields(logrus.Fields{
		"application_id": id,
		"document_id":    docID,
		"file_name":      result.Name,
	}).Info("Document attached")

	return app.Checklist.Find(docID)
}

func (s *ChecklistService) pickerFailed(err error, id uuid.UUID, docID string) {
	metrics.CollaboratorFailures.WithLabelValues(metrics.CollaboratorPicker).Inc()
	logrus.WithError(err).WithFields(logrus.Fields{
		"application_id": id,
		"document_id":    docID,
	}).Error("Error picking document")
}

// View opens the viewer on an uploaded document. Documents without a file are
// rejected with models.ErrDocumentNotUploaded and the viewer is not touched.
func (s *ChecklistService) View(ctx context.Context, id uuid.UUID, docID string) (*ViewerContent, error) {
	app, err := s.update(ctx, id, func(app *models.PermitApplication) error {
		_, err := app.Checklist.View(docID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return viewerContent(app)
}

func (s *ChecklistService) Viewer(ctx context.Context, id uuid.UUID) (*ViewerContent, error) {
	app, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return viewerContent(app)
}

func viewerContent(app *models.PermitApplication) (*ViewerContent, error) {
	doc := app.Checklist.Selected()
	if doc == nil {
		return nil, ErrViewerClosed
	}

	content := &ViewerContent{
		Document: *doc,
		Kind:     models.ClassifyFile(doc.URI),
	}
	switch content.Kind {
	case models.FileKindImage:
		content.PreviewURL = doc.URI
	case models.FileKindPDF:
		content.MessageKey = i18n.KeyViewerPDF
		content.ActionKey = i18n.KeyViewerOpenPDF
		content.CanOpenExternally = true
	default:
		content.MessageKey = i18n.KeyViewerUnsupported
	}
	return content, nil
}

// Localize fills the display strings for lang.
func (c *ViewerContent) Localize(lang string) *ViewerContent {
	if c.MessageKey != "" {
		c.Message = i18n.T(lang, c.MessageKey)
	}
	if c.ActionKey != "" {
		c.ActionLabel = i18n.T(lang, c.ActionKey)
	}
	return c
}

// CloseViewer hides the viewer. The last selection is kept.
func (s *ChecklistService) CloseViewer(ctx context.Context, id uuid.UUID) (*models.ViewerSelection, error) {
	app, err := s.update(ctx, id, func(app *models.PermitApplication) error {
		app.Checklist.CloseViewer()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app.Checklist.Viewer, nil
}

// OpenExternal hands the viewed PDF to the link opener. Opener failures are
// logged and reported as not opened.
func (s *ChecklistService) OpenExternal(ctx context.Context, id uuid.UUID) (*OpenExternalResult, error) {
	content, err := s.Viewer(ctx, id)
	if err != nil {
		return nil, err
	}
	if !content.CanOpenExternally {
		return &OpenExternalResult{Opened: false}, nil
	}

	url, err := s.opener.Open(ctx, content.Document.URI)
	if err != nil {
		metrics.CollaboratorFailures.WithLabelValues(metrics.CollaboratorLinkOpener).Inc()
		logrus.WithError(err).WithFields(logrus.Fields{
			"application_id": id,
			"document_id":    content.Document.ID,
		}).Error("Failed to open PDF")
		return &OpenExternalResult{Opened: false}, nil
	}
	return &OpenExternalResult{Opened: true, URL: url}, nil
}
