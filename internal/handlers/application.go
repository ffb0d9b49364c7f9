// internal/handlers/application.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/permit-backend/internal/i18n"
	"github.com/javajoker/permit-backend/internal/models"
	"github.com/javajoker/permit-backend/internal/services"
	"github.com/javajoker/permit-backend/internal/utils"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// ApplicationView adds the presentation state derived from the aggregate.
type ApplicationView struct {
	*models.PermitApplication
	Editable         bool `json:"editable"`
	ShowSuccessModal bool `json:"showSuccessModal"`
}

func NewApplicationView(app *models.PermitApplication) ApplicationView {
	return ApplicationView{
		PermitApplication: app,
		Editable:          app.Editable(),
		ShowSuccessModal:  app.ShowSuccessModal(),
	}
}

// POST /applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	resp, err := h.applicationService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"application":   NewApplicationView(resp.Application),
		"session_token": resp.SessionToken,
		"expires_in":    resp.ExpiresIn,
	})
}

// GET /applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	app, err := h.applicationService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, NewApplicationView(app))
}

// PUT /applications/:id/screen
func (h *ApplicationHandler) Navigate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := applicationID(c)
	if !ok {
		return
	}

	var req services.NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	app, err := h.applicationService.Navigate(c.Request.Context(), id, &req)
	if errors.Is(err, services.ErrNotSubmitted) {
		utils.ConflictResponse(c, "NAVIGATION_LOCKED", i18n.T(lang, i18n.KeyNavigationLocked))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, NewApplicationView(app))
}

// GET /occupancy-types
func (h *ApplicationHandler) GetOccupancyTypes(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"occupancy_types": models.OccupancyOptions,
	})
}

// GET /document-requirements
func (h *ApplicationHandler) GetDocumentRequirements(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"document_requirements": models.RequirementDefinitions,
	})
}
