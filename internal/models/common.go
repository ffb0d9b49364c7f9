// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type Platform string

const (
	PlatformWeb     Platform = "web"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformWeb, PlatformIOS, PlatformAndroid:
		return true
	}
	return false
}

// HasNativeDatePicker is false on web, where dates are typed into a text box.
func (p Platform) HasNativeDatePicker() bool {
	return p == PlatformIOS || p == PlatformAndroid
}

// KeepsPickerOpen reports whether the native date picker stays up after a selection
// until the user dismisses it.
func (p Platform) KeepsPickerOpen() bool {
	return p == PlatformIOS
}

// Screen is the host-managed choice of which screen is mounted.
type Screen string

const (
	ScreenForm      Screen = "form"
	ScreenDocuments Screen = "documents"
)

func (s Screen) Valid() bool {
	return s == ScreenForm || s == ScreenDocuments
}
