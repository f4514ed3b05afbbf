package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OrderTypeService      = "service"
	OrderTypeInstallation = "installation"
	OrderTypeExtra        = "extra"

	StatusPlanned   = "planned"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// WorkOrder is a field-service visit. Only completed orders contribute to
// the commission and revenue ledgers.
type WorkOrder struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	CustomerId  string    `json:"customer_id" gorm:"not null;index"`
	EmployeeId  string    `json:"employee_id" gorm:"not null;index"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	OrderType   string    `json:"order_type" gorm:"size:20;not null"`
	Status      string    `json:"status" gorm:"size:20;default:planned"`
	Description string    `json:"description"`
	WorkHours   float64   `json:"work_hours"`
	DriveHours  float64   `json:"drive_hours"`
	DrivenKm    float64   `json:"driven_km"`
	CreatedAt   time.Time `json:"created_at"`
}

func (order *WorkOrder) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	order.Id = uuid.NewString()
	return
}

// InternalOrder is non-billable internal work; it only feeds the internal
// payroll ledger.
type InternalOrder struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	Department  string    `json:"department" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	EmployeeId  string    `json:"employee_id" gorm:"not null;index"`
	Description string    `json:"description" gorm:"not null"`
	WorkHours   float64   `json:"work_hours"`
	TaskType    string    `json:"task_type" gorm:"size:30;default:office"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

func (order *InternalOrder) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	order.Id = uuid.NewString()
	return
}
