package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Route is a persisted, geo-ordered visit sequence. Stops holds facility
// numbers (anleggsnr) in driving order. Routes are never mutated after
// creation.
type Route struct {
	Id        string                      `json:"id" gorm:"primaryKey"`
	Date      time.Time                   `json:"date" gorm:"not null;index"`
	Stops     datatypes.JSONSlice[string] `json:"anleggsnr_list" gorm:"type:jsonb"`
	Optimized bool                        `json:"optimized"`
	CreatedAt time.Time                   `json:"created_at"`
}

func (route *Route) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	route.Id = uuid.NewString()
	return
}
