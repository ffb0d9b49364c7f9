// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/javajoker/permit-backend/internal/config"
	"github.com/javajoker/permit-backend/internal/handlers"
	"github.com/javajoker/permit-backend/internal/middleware"
	"github.com/javajoker/permit-backend/internal/repository"
	"github.com/javajoker/permit-backend/internal/services"
	"github.com/javajoker/permit-backend/internal/utils"
)

// Initialize wires the services and routes. db may be nil when applications are
// not kept in postgres; the audit trail then goes to the log only.
func Initialize(cfg *config.Config, store repository.ApplicationStore, db *gorm.DB, storageService *services.StorageService) *gin.Engine {
	// Initialize services
	applicationService := services.NewApplicationService(store, cfg)
	formService := services.NewFormService(store)
	printService := services.NewPrintService(store, services.NewStoragePrintDispatcher(storageService))
	checklistService := services.NewChecklistService(store, services.NewStorageLinkOpener(storageService))
	exportService := services.NewExportService(store)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	formHandler := handlers.NewFormHandler(formService, printService)
	documentHandler := handlers.NewDocumentHandler(checklistService, exportService, storageService)

	utils.SetSessionSecret(cfg.Session.Secret)
	limiters := middleware.NewRateLimiters(cfg.RateLimit)

	r := gin.New()
	r.MaxMultipartMemory = int64(cfg.Storage.MaxUploadMB) << 20

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.Server.AllowOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(limiters.General.Middleware())
	r.Use(middleware.AuditLogMiddleware(auditService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"store":   cfg.Store.Driver,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if storageService.IsLocal() {
		r.Static("/uploads", cfg.Storage.UploadDir)
	}

	v1 := r.Group("/v1")
	{
		v1.GET("/occupancy-types", applicationHandler.GetOccupancyTypes)
		v1.GET("/document-requirements", applicationHandler.GetDocumentRequirements)
		v1.POST("/applications", applicationHandler.CreateApplication)

		application := v1.Group("/applications/:id")
		application.Use(middleware.SessionRequired())
		{
			application.GET("", applicationHandler.GetApplication)
			application.PUT("/screen", applicationHandler.Navigate)

			// Application form
			application.PATCH("/form", formHandler.SetFields)
			application.PUT("/form/occupancy", formHandler.SetOccupancyType)
			application.POST("/form/dates/:field/picker", formHandler.OpenDatePicker)
			application.PUT("/form/dates/:field", formHandler.SetDateField)
			application.DELETE("/form/overlay", formHandler.DismissOverlay)
			application.POST("/submit", formHandler.Submit)
			application.POST("/continue", formHandler.Continue)
			application.POST("/edit", formHandler.EditAgain)
			application.GET("/print", formHandler.RenderPrintable)
			application.POST("/print", formHandler.Print)

			// Document checklist
			documents := application.Group("/documents")
			{
				documents.GET("", documentHandler.GetChecklist)
				documents.GET("/export", documentHandler.ExportChecklist)
				documents.GET("/viewer", documentHandler.GetViewer)
				documents.DELETE("/viewer", documentHandler.CloseViewer)
				documents.POST("/viewer/open", documentHandler.OpenExternal)
				documents.POST("/:docId/toggle", documentHandler.ToggleChecked)
				documents.POST("/:docId/upload", limiters.Upload.Middleware(), documentHandler.UploadFile)
				documents.POST("/:docId/view", documentHandler.ViewDocument)
			}
		}
	}

	return r
}
