// internal/handlers/form.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/permit-backend/internal/i18n"
	"github.com/javajoker/permit-backend/internal/models"
	"github.com/javajoker/permit-backend/internal/services"
	"github.com/javajoker/permit-backend/internal/utils"
)

type FormHandler struct {
	formService  *services.FormService
	printService *services.PrintService
}

func NewFormHandler(formService *services.FormService, printService *services.PrintService) *FormHandler {
	return &FormHandler{
		formService:  formService,
		printService: printService,
	}
}

type SuccessModalView struct {
	Title             string `json:"title"`
	Label             string `json:"label"`
	ApplicationNumber string `json:"applicationNumber"`
	Text              string `json:"text"`
}

func (h *FormHandler) respond(c *gin.Context, app *models.PermitApplication, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, NewApplicationView(app))
}

// PATCH /applications/:id/form
func (h *FormHandler) SetFields(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := applicationID(c)
	if !ok {
		return
	}

	var req services.SetFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	app, err := h.formService.SetFields(c.Request.Context(), id, &req)
	h.respond(c, app, err)
}

// PUT /applications/:id/form/occupancy
func (h *FormHandler) SetOccupancyType(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := applicationID(c)
	if !ok {
		return
	}

	var req services.SetOccupancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		respondError(c, err)
		return
	}

	app, err := h.formService.SetOccupancyType(c.Request.Context(), id, req.Value)
	h.respond(c, app, err)
}

// POST /applications/:id/form/dates/:field/picker
func (h *FormHandler) OpenDatePicker(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	app, err := h.formService.OpenDatePicker(c.Request.Context(), id, models.FieldName(c.Param("field")))
	h.respond(c, app, err)
}

// PUT /applications/:id/form/dates/:field
func (h *FormHandler) SetDateField(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := applicationID(c)
	if !ok {
		return
	}

	var req services.SetDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	app, err := h.formService.SetDateField(c.Request.Context(), id, models.FieldName(c.Param("field")), &req)
	h.respond(c, app, err)
}

// DELETE /applications/:id/form/overlay
func (h *FormHandler) DismissOverlay(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	app, err := h.formService.DismissOverlay(c.Request.Context(), id)
	h.respond(c, app, err)
}

// POST /applications/:id/submit
func (h *FormHandler) Submit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := applicationID(c)
	if !ok {
		return
	}

	app, err := h.formService.Submit(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"application": NewApplicationView(app),
		"success_modal": SuccessModalView{
			Title:             i18n.T(lang, i18n.KeySubmitSuccessTitle),
			Label:             i18n.T(lang, i18n.KeySubmitNumberLabel),
			ApplicationNumber: app.Submission.ApplicationNumber,
			Text:              i18n.T(lang, i18n.KeySubmitSuccessText),
		},
	})
}

// POST /applications/:id/continue
func (h *FormHandler) Continue(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	app, err := h.formService.ContinueAfterSubmit(c.Request.Context(), id)
	h.respond(c, app, err)
}

// POST /applications/:id/edit
func (h *FormHandler) EditAgain(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	app, err := h.formService.EditAgain(c.Request.Context(), id)
	h.respond(c, app, err)
}

// GET /applications/:id/print
func (h *FormHandler) RenderPrintable(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	html, err := h.printService.Render(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// POST /applications/:id/print
func (h *FormHandler) Print(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	result, err := h.printService.Print(c.Request.Context(), id)
	if err != nil {
		// print failures carry one generic notice; the cause is only logged
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
