package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is a priced service type. FixedPrice is what the customer is
// invoiced for a completed service-type order; the tiered rates cover the
// extra/overtime categories. RateCardId optionally links the supplier rate
// card used for time- and distance-based revenue.
type Service struct {
	Id            string `json:"id" gorm:"primaryKey"`
	ServiceNumber string `json:"service_number" gorm:"not null;uniqueIndex"`
	Name          string `json:"name" gorm:"not null"`
	Description   string `json:"description"`
	Vendor        string `json:"vendor"`
	RateCardId    string `json:"rate_card_id"`

	FixedPrice    float64 `json:"fixed_price" gorm:"type:numeric(12,2)"`
	ExtraTier1    float64 `json:"extra_tier1" gorm:"type:numeric(12,2)"` // per hour
	ExtraTier2    float64 `json:"extra_tier2" gorm:"type:numeric(12,2)"` // per hour, 50% surcharge
	ExtraTier3    float64 `json:"extra_tier3" gorm:"type:numeric(12,2)"` // per hour, 100% surcharge
	ExtraTier4    float64 `json:"extra_tier4" gorm:"type:numeric(12,2)"` // extra work per hour
	DriveTimeRate float64 `json:"drive_time_rate" gorm:"type:numeric(12,2)"`
	KmRate        float64 `json:"km_rate" gorm:"type:numeric(12,2)"`

	CreatedAt time.Time `json:"created_at"`
}

func (service *Service) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	service.Id = uuid.NewString()
	return
}

// SupplierRate is a named rate card: what an upstream supplier pays or
// charges per work hour, drive hour and driven km.
type SupplierRate struct {
	Id            string    `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	WorkHourRate  float64   `json:"work_hour_rate" gorm:"type:numeric(12,2)"`
	DriveHourRate float64   `json:"drive_hour_rate" gorm:"type:numeric(12,2)"`
	KmRate        float64   `json:"km_rate" gorm:"type:numeric(12,2)"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (rate *SupplierRate) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	rate.Id = uuid.NewString()
	return
}
