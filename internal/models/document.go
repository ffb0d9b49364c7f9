// internal/models/document.go
package models

import (
	"fmt"
	"path"
	"strings"
)

type DocumentState string

const (
	DocumentUncheckedNoFile DocumentState = "unchecked_no_file"
	DocumentCheckedNoFile   DocumentState = "checked_no_file"
	DocumentCheckedUploaded DocumentState = "checked_uploaded"
)

type RequirementDefinition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RequirementDefinitions is the fixed, ordered list of supporting documents.
var RequirementDefinitions = []RequirementDefinition{
	{ID: "notarized", Name: "Notarized Unified Building Permit Application File"},
	{ID: "ancillary", Name: "Duly Accomplished Signed Ancillary Form"},
	{ID: "survey", Name: "Survey Plans"},
	{ID: "civil", Name: "Civil/Structural Documents"},
	{ID: "electrical", Name: "Electrical Documents"},
	{ID: "sanitary", Name: "Sanitary Documents"},
	{ID: "plumbing", Name: "Plumbing Documents"},
	{ID: "mechanical", Name: "Mechanical Documents"},
	{ID: "geodetic", Name: "Geodetic Documents"},
	{ID: "fire_protection", Name: "Fire Protection Documents"},
	{ID: "lot_plan", Name: "Lot Plan"},
	{ID: "estimated_value", Name: "Notarized Estimated Value"},
}

type DocumentRequirement struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsChecked  bool   `json:"isChecked"`
	IsUploaded bool   `json:"isUploaded"`
	FileName   string `json:"fileName"`
	URI        string `json:"uri"`
}

func (d DocumentRequirement) State() DocumentState {
	switch {
	case d.IsUploaded:
		return DocumentCheckedUploaded
	case d.IsChecked:
		return DocumentCheckedNoFile
	default:
		return DocumentUncheckedNoFile
	}
}

// ViewerSelection keeps the last selected document after the viewer is closed.
type ViewerSelection struct {
	Visible            bool   `json:"visible"`
	SelectedDocumentID string `json:"selectedDocumentId,omitempty"`
}

type Checklist struct {
	Documents []DocumentRequirement `json:"documents"`
	Viewer    ViewerSelection       `json:"viewer"`
}

func NewChecklist() Checklist {
	documents := make([]DocumentRequirement, len(RequirementDefinitions))
	for i, def := range RequirementDefinitions {
		documents[i] = DocumentRequirement{ID: def.ID, Name: def.Name}
	}
	return Checklist{Documents: documents}
}

func (c *Checklist) Find(id string) (*DocumentRequirement, error) {
	for i := range c.Documents {
		if c.Documents[i].ID == id {
			return &c.Documents[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDocument, id)
}

// Toggle flips the checked flag, or sets it to *checked when given. Uploaded
// documents stay checked.
func (c *Checklist) Toggle(id string, checked *bool) (*DocumentRequirement, error) {
	doc, err := c.Find(id)
	if err != nil {
		return nil, err
	}

	if doc.IsUploaded {
		return doc, nil
	}

	if checked != nil {
		doc.IsChecked = *checked
	} else {
		doc.IsChecked = !doc.IsChecked
	}
	return doc, nil
}

// AttachFile records a picked file and marks the document checked and uploaded
// in one step.
func (c *Checklist) AttachFile(id, fileName, uri string) (*DocumentRequirement, error) {
	doc, err := c.Find(id)
	if err != nil {
		return nil, err
	}
	if fileName == "" || uri == "" {
		return nil, ErrIncompleteFile
	}

	doc.IsChecked = true
	doc.IsUploaded = true
	doc.FileName = fileName
	doc.URI = uri
	return doc, nil
}

// View opens the viewer on an uploaded document. Documents without a file leave
// the selection untouched.
func (c *Checklist) View(id string) (*DocumentRequirement, error) {
	doc, err := c.Find(id)
	if err != nil {
		return nil, err
	}
	if !doc.IsUploaded {
		return nil, fmt.Errorf("%w: %q", ErrDocumentNotUploaded, id)
	}

	c.Viewer = ViewerSelection{Visible: true, SelectedDocumentID: id}
	return doc, nil
}

func (c *Checklist) CloseViewer() {
	c.Viewer.Visible = false
}

// Selected returns the document the viewer shows, or nil while it is hidden.
func (c *Checklist) Selected() *DocumentRequirement {
	if !c.Viewer.Visible {
		return nil
	}
	doc, err := c.Find(c.Viewer.SelectedDocumentID)
	if err != nil {
		return nil
	}
	return doc
}

// UploadedIDs lists the requirements that carry a file, in checklist order.
func (c Checklist) UploadedIDs() []string {
	ids := make([]string, 0, len(c.Documents))
	for _, doc := range c.Documents {
		if doc.IsUploaded {
			ids = append(ids, doc.ID)
		}
	}
	return ids
}

func (c Checklist) Clone() Checklist {
	documents := make([]DocumentRequirement, len(c.Documents))
	copy(documents, c.Documents)
	return Checklist{Documents: documents, Viewer: c.Viewer}
}

type FileKind string

const (
	FileKindImage FileKind = "image"
	FileKindPDF   FileKind = "pdf"
	FileKindOther FileKind = "other"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".tiff": true,
	".tif":  true,
}

// ClassifyFile looks at the suffix of uri only. Query strings and fragments are
// part of the suffix, so a presigned URL classifies as other.
func ClassifyFile(uri string) FileKind {
	ext := strings.ToLower(path.Ext(uri))
	switch {
	case ext == "":
		return FileKindOther
	case imageExtensions[ext]:
		return FileKindImage
	case ext == ".pdf":
		return FileKindPDF
	default:
		return FileKindOther
	}
}
