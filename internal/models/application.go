// internal/models/application.go
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OverlayKind string

const (
	OverlayNone         OverlayKind = "none"
	OverlaySuccessModal OverlayKind = "success_modal"
	OverlayDatePicker   OverlayKind = "date_picker"
)

// FormOverlay is the single modal or picker shown over the form. Field is only
// set for OverlayDatePicker.
type FormOverlay struct {
	Kind  OverlayKind `json:"kind"`
	Field FieldName   `json:"field,omitempty"`
}

func NoOverlay() FormOverlay {
	return FormOverlay{Kind: OverlayNone}
}

type Submission struct {
	IsSubmitted       bool   `json:"isSubmitted"`
	ApplicationNumber string `json:"applicationNumber"`
}

// PermitApplication is one host instance of the two screens.
type PermitApplication struct {
	ID         uuid.UUID   `json:"id"`
	Platform   Platform    `json:"platform"`
	Screen     Screen      `json:"screen"`
	Form       FormRecord  `json:"form"`
	Submission Submission  `json:"submission"`
	Overlay    FormOverlay `json:"overlay"`
	Checklist  Checklist   `json:"checklist"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

func NewPermitApplication(platform Platform, now time.Time) *PermitApplication {
	return &PermitApplication{
		ID:        uuid.New(),
		Platform:  platform,
		Screen:    ScreenForm,
		Form:      NewFormRecord(now),
		Overlay:   NoOverlay(),
		Checklist: NewChecklist(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Editable reports whether the form shows its editing controls.
func (a *PermitApplication) Editable() bool {
	return !a.Submission.IsSubmitted
}

func (a *PermitApplication) ShowSuccessModal() bool {
	return a.Overlay.Kind == OverlaySuccessModal
}

func (a *PermitApplication) Clone() *PermitApplication {
	clone := *a
	clone.Checklist = a.Checklist.Clone()
	return &clone
}

// ApplicationRecord persists a PermitApplication as a JSON document. The
// uploaded requirement IDs are mirrored into a text[] column for querying.
type ApplicationRecord struct {
	BaseModel
	Platform          Platform       `json:"platform" gorm:"type:varchar(20);not null"`
	ApplicationNumber string         `json:"application_number" gorm:"size:20;index"`
	Payload           JSONB          `json:"payload" gorm:"type:jsonb;not null"`
	UploadedDocuments pq.StringArray `json:"uploaded_documents" gorm:"type:text[]"`
}

func (ApplicationRecord) TableName() string {
	return "permit_applications"
}

func NewApplicationRecord(app *PermitApplication) (*ApplicationRecord, error) {
	payload, err := toJSONB(app)
	if err != nil {
		return nil, err
	}

	return &ApplicationRecord{
		BaseModel: BaseModel{
			ID:        app.ID,
			CreatedAt: app.CreatedAt,
			UpdatedAt: app.UpdatedAt,
		},
		Platform:          app.Platform,
		ApplicationNumber: app.Submission.ApplicationNumber,
		Payload:           payload,
		UploadedDocuments: pq.StringArray(app.Checklist.UploadedIDs()),
	}, nil
}

func (r *ApplicationRecord) Application() (*PermitApplication, error) {
	data, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode application payload: %w", err)
	}

	var app PermitApplication
	if err := json.Unmarshal(data, &app); err != nil {
		return nil, fmt.Errorf("failed to decode application payload: %w", err)
	}
	return &app, nil
}

func toJSONB(v interface{}) (JSONB, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode application: %w", err)
	}

	var payload JSONB
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to encode application: %w", err)
	}
	return payload, nil
}
