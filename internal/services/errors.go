// internal/services/errors.go
package services

import "errors"

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrFormReadOnly        = errors.New("form is read-only after submission")
	ErrOverlayBusy         = errors.New("another dialog is open")
	ErrPickerUnavailable   = errors.New("native date picker is not available on this platform")
	ErrNotDateField        = errors.New("field is not a date field")
	ErrNotSubmitted        = errors.New("application has not been submitted")
	ErrViewerClosed        = errors.New("document viewer is not open")
	ErrChecklistNotMounted = errors.New("document checklist is not open")
	ErrNoSuccessModal      = errors.New("success modal is not shown")
	ErrPrintFailed         = errors.New("failed to print the document")
)
