// internal/models/audit.go
package models

import (
	"github.com/google/uuid"
)

type AuditLog struct {
	BaseModel
	ApplicationID *uuid.UUID `json:"application_id" gorm:"type:uuid;index"`
	Action        string     `json:"action" gorm:"size:150;not null;index"`
	ResourceType  string     `json:"resource_type" gorm:"size:50;not null;index"`
	StatusCode    int        `json:"status_code"`
	DurationMs    int64      `json:"duration_ms"`
	NewValues     JSONB      `json:"new_values" gorm:"type:jsonb"`
	IPAddress     string     `json:"ip_address" gorm:"size:45"`
	UserAgent     string     `json:"user_agent" gorm:"type:text"`
}
