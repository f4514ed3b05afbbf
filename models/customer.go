package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a serviced facility. Anleggsnr is the business key work orders
// and routes join on; it must be unique within a tenant.
type Customer struct {
	Id              string    `json:"id" gorm:"primaryKey"`
	Anleggsnr       string    `json:"anleggsnr" gorm:"not null;uniqueIndex"`
	CustomerNumber  string    `json:"customer_number" gorm:"not null"`
	Name            string    `json:"name" gorm:"not null"`
	TypeNumber      string    `json:"type_number"` // links to Service.service_number
	TypeName        string    `json:"type_name"`
	Municipality    string    `json:"municipality" gorm:"not null"`
	Address         string    `json:"address" gorm:"not null"`
	PostalCode      string    `json:"postal_code" gorm:"not null;index"`
	City            string    `json:"city" gorm:"not null"`
	ServiceInterval string    `json:"service_interval"`
	Week            string    `json:"week"`
	ServiceManager  string    `json:"service_manager"`
	Phone1          string    `json:"phone1"`
	Phone2          string    `json:"phone2"`
	Email           string    `json:"email"`
	StartDate       string    `json:"start_date"`
	ControlUnit     string    `json:"control_unit"`
	Comment         string    `json:"comment"`
	CustomerInfo    string    `json:"customer_info"`
	ServiceNumber   string    `json:"service_number"` // legacy link, consulted after type_number
	CreatedAt       time.Time `json:"created_at"`
}

func (customer *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	customer.Id = uuid.NewString()
	return
}
