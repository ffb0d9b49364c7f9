// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/permit-backend/internal/i18n"
	"github.com/javajoker/permit-backend/internal/models"
	"github.com/javajoker/permit-backend/internal/services"
	"github.com/javajoker/permit-backend/internal/utils"
)

type errorMapping struct {
	target error
	status int
	code   string
	key    string
}

var errorMappings = []errorMapping{
	{models.ErrUnknownField, http.StatusBadRequest, "UNKNOWN_FIELD", i18n.KeyFormUnknownField},
	{models.ErrFieldValueMismatch, http.StatusBadRequest, "FIELD_VALUE_MISMATCH", i18n.KeyFormValueMismatch},
	{models.ErrInvalidOccupancy, http.StatusBadRequest, "INVALID_OCCUPANCY", i18n.KeyFormInvalidOccupancy},
	{services.ErrNotDateField, http.StatusBadRequest, "NOT_DATE_FIELD", i18n.KeyFormNotDateField},
	{services.ErrFormReadOnly, http.StatusConflict, "FORM_READ_ONLY", i18n.KeyFormReadOnly},
	{services.ErrOverlayBusy, http.StatusConflict, "OVERLAY_BUSY", i18n.KeyFormOverlayBusy},
	{services.ErrPickerUnavailable, http.StatusConflict, "PICKER_UNAVAILABLE", i18n.KeyFormPickerUnavailable},
	{services.ErrNotSubmitted, http.StatusConflict, "NOT_SUBMITTED", i18n.KeyFormNotSubmitted},
	{services.ErrNoSuccessModal, http.StatusConflict, "SUCCESS_MODAL_CLOSED", i18n.KeyFormNoSuccessModal},
	{services.ErrChecklistNotMounted, http.StatusConflict, "NAVIGATION_LOCKED", i18n.KeyNavigationLocked},
	{models.ErrDocumentNotUploaded, http.StatusConflict, "DOCUMENT_NOT_UPLOADED", i18n.KeyDocumentNotUploaded},
	{models.ErrIncompleteFile, http.StatusConflict, "FILE_INCOMPLETE", i18n.KeyDocumentFileIncomplete},
	{services.ErrViewerClosed, http.StatusConflict, "VIEWER_CLOSED", i18n.KeyViewerNotOpen},
	{services.ErrPrintFailed, http.StatusBadGateway, "PRINT_FAILED", i18n.KeyPrintFailed},
}

// respondError maps service and model errors onto the JSON error envelope.
func respondError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		utils.NotFoundResponse(c, "application")
		return
	case errors.Is(err, models.ErrUnknownDocument):
		utils.NotFoundResponse(c, "document")
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			utils.ErrorResponse(c, m.status, m.code, i18n.T(lang, m.key), nil)
			return
		}
	}

	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled request error")
	utils.InternalErrorResponse(c, "")
}

// applicationID reads the :id path parameter. SessionRequired has already
// matched it against the session token.
func applicationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyValidationInvalid, "application id"), nil)
		return uuid.Nil, false
	}
	return id, true
}
