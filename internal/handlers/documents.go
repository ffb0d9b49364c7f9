// internal/handlers/documents.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/permit-backend/internal/i18n"
	"github.com/javajoker/permit-backend/internal/services"
	"github.com/javajoker/permit-backend/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DocumentHandler struct {
	checklistService *services.ChecklistService
	exportService    *services.ExportService
	storageService   *services.StorageService
}

func NewDocumentHandler(checklistService *services.ChecklistService, exportService *services.ExportService, storageService *services.StorageService) *DocumentHandler {
	return &DocumentHandler{
		checklistService: checklistService,
		exportService:    exportService,
		storageService:   storageService,
	}
}

// GET /applications/:id/documents
func (h *DocumentHandler) GetChecklist(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	checklist, err := h.checklistService.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, checklist)
}

// POST /applications/:id/documents/:docId/toggle
func (h *DocumentHandler) ToggleChecked(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := applicationID(c)
	if !ok {
		return
	}

	// an empty body flips the box
	var req services.ToggleDocumentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
			return
		}
	}

	doc, err := h.checklistService.Toggle(c.Request.Context(), id, c.Param("docId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, doc)
}

// POST /applications/:id/documents/:docId/upload
//
// The multipart "file" part is the picked file. A request without it, or with
// cancelled=true, is a cancelled pick.
func (h *DocumentHandler) UploadFile(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	picker := services.NewUploadPicker(h.storageService, nil)
	if c.PostForm("cancelled") != "true" {
		if header, err := c.FormFile("file"); err == nil {
			picker = services.NewUploadPicker(h.storageService, header)
		}
	}

	doc, err := h.checklistService.Upload(c.Request.Context(), id, c.Param("docId"), picker)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, doc)
}

// POST /applications/:id/documents/:docId/view
func (h *DocumentHandler) ViewDocument(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	content, err := h.checklistService.View(c.Request.Context(), id, c.Param("docId"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, content.Localize(utils.GetLangFromContext(c)))
}

// GET /applications/:id/documents/viewer
func (h *DocumentHandler) GetViewer(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	content, err := h.checklistService.Viewer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, content.Localize(utils.GetLangFromContext(c)))
}

// DELETE /applications/:id/documents/viewer
func (h *DocumentHandler) CloseViewer(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	viewer, err := h.checklistService.CloseViewer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, viewer)
}

// POST /applications/:id/documents/viewer/open
func (h *DocumentHandler) OpenExternal(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	result, err := h.checklistService.OpenExternal(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /applications/:id/documents/export
func (h *DocumentHandler) ExportChecklist(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	data, fileName, err := h.exportService.ExportChecklist(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, xlsxContentType, data)
}
