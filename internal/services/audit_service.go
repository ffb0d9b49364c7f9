// internal/services/audit_service.go
package services

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/permit-backend/internal/models"
)

// AuditService persists audit entries when a database is configured. Without
// one the entries only reach the log.
type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) Record(entry *models.AuditLog) {
	fields := logrus.Fields{
		"action":      entry.Action,
		"resource":    entry.ResourceType,
		"status":      entry.StatusCode,
		"duration_ms": entry.DurationMs,
		"ip":          entry.IPAddress,
	}
	if entry.ApplicationID != nil {
		fields["application_id"] = entry.ApplicationID.String()
	}

	if s.db == nil {
		logrus.WithFields(fields).Info("Audit")
		return
	}

	if err := s.db.Create(entry).Error; err != nil {
		logrus.WithError(err).WithFields(fields).Error("Failed to create audit log")
	}
}
