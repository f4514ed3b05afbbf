package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee carries the rate card used by the payroll ledgers: the internal
// hourly rate for non-billable work and the five commission ("PA") rates.
type Employee struct {
	Id       string `json:"id" gorm:"primaryKey"`
	Initials string `json:"initials" gorm:"not null"`
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Position string `json:"position" gorm:"not null"`

	InternalRate float64 `json:"internal_rate" gorm:"type:numeric(12,2)"`
	InvoiceRate  float64 `json:"invoice_rate" gorm:"type:numeric(12,2)"`

	PAServiceRate      float64 `json:"pa_service_rate" gorm:"type:numeric(12,2)"`
	PAInstallationRate float64 `json:"pa_installation_rate" gorm:"type:numeric(12,2)"`
	PAHourlyRate       float64 `json:"pa_hourly_rate" gorm:"type:numeric(12,2)"`
	PADriveRate        float64 `json:"pa_drive_rate" gorm:"type:numeric(12,2)"`
	PAKmRate           float64 `json:"pa_km_rate" gorm:"type:numeric(12,2)"`

	CreatedAt time.Time `json:"created_at"`
}

func (employee *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	employee.Id = uuid.NewString()
	return
}
