package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	Id            string    `json:"id" gorm:"primaryKey"`
	ProductNumber string    `json:"product_number" gorm:"not null;uniqueIndex"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	CustomerPrice float64   `json:"customer_price" gorm:"type:numeric(12,2)"`
	InStock       int       `json:"in_stock"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
}

func (product *Product) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	product.Id = uuid.NewString()
	return
}
