package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization is the tenant root. Each organization owns one Postgres schema
// holding all of its business data.
type Organization struct {
	Id          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;unique"`
	OrgNumber   string `json:"org_number"`
	Address     string `json:"address"`
	PostalCode  string `json:"postal_code"`
	City        string `json:"city"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	OwnerId     string `json:"-"`
	Owner       User   `json:"owner" gorm:"foreignKey:OwnerId;references:Id"`
	SchemaName  string `json:"-" gorm:"unique;not null"`
}

func (org *Organization) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	org.Id = uuid.NewString()
	return
}
