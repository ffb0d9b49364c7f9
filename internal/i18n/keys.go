// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyValidationInvalid = "validation.invalid"
	KeyRateLimited       = "rate_limit.exceeded"

	// Session
	KeySessionRequired  = "session.required"
	KeySessionInvalid   = "session.invalid_token"
	KeySessionForbidden = "session.forbidden"

	// Application form
	KeyApplicationNotFound   = "application.not_found"
	KeyFormReadOnly          = "form.read_only"
	KeyFormUnknownField      = "form.unknown_field"
	KeyFormValueMismatch     = "form.value_mismatch"
	KeyFormInvalidOccupancy  = "form.invalid_occupancy"
	KeyFormOverlayBusy       = "form.overlay_busy"
	KeyFormPickerUnavailable = "form.picker_unavailable"
	KeyFormNotDateField      = "form.not_date_field"
	KeyFormNotSubmitted      = "form.not_submitted"
	KeyFormNoSuccessModal    = "form.no_success_modal"
	KeySubmitSuccessTitle    = "form.submit_success_title"
	KeySubmitNumberLabel     = "form.submit_number_label"
	KeySubmitSuccessText     = "form.submit_success_text"
	KeyPrintFailed           = "print.failed"
	KeyNavigationLocked      = "navigation.locked"

	// Document checklist
	KeyDocumentNotFound       = "document.not_found"
	KeyDocumentNotUploaded    = "document.not_uploaded"
	KeyDocumentFileIncomplete = "document.file_incomplete"
	KeyViewerNotOpen          = "viewer.not_open"
	KeyViewerPDF              = "viewer.pdf"
	KeyViewerOpenPDF          = "viewer.open_pdf"
	KeyViewerUnsupported      = "viewer.unsupported"
)
