package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HSE (health/safety/environment) compliance records. The whole module is
// behind the hms_enabled license feature.

type RiskAssessment struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"not null"`
	Severity    string    `json:"severity" gorm:"size:20;default:medium"` // low, medium, high
	Status      string    `json:"status" gorm:"size:20;default:active"`   // active, closed
	Responsible string    `json:"responsible"`
	CreatedAt   time.Time `json:"created_at"`
}

func (a *RiskAssessment) BeforeCreate(tx *gorm.DB) (err error) {
	a.Id = uuid.NewString()
	return
}

type Incident struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	Date        time.Time `json:"date" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Type        string    `json:"type" gorm:"size:20;default:accident"` // accident, near_miss, observation
	Status      string    `json:"status" gorm:"size:20;default:open"`   // open, investigating, closed
	Severity    string    `json:"severity" gorm:"size:20;default:low"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *Incident) BeforeCreate(tx *gorm.DB) (err error) {
	i.Id = uuid.NewString()
	return
}

type Training struct {
	Id           string                      `json:"id" gorm:"primaryKey"`
	Name         string                      `json:"name" gorm:"not null"`
	Description  string                      `json:"description" gorm:"not null"`
	Date         time.Time                   `json:"date" gorm:"not null"`
	ExpiresAt    *time.Time                  `json:"expires_at"`
	Status       string                      `json:"status" gorm:"size:20;default:active"` // active, expired
	Participants datatypes.JSONSlice[string] `json:"participants" gorm:"type:jsonb"`       // employee ids
	CreatedAt    time.Time                   `json:"created_at"`
}

func (t *Training) BeforeCreate(tx *gorm.DB) (err error) {
	t.Id = uuid.NewString()
	return
}

type Equipment struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	ControlDate time.Time `json:"control_date" gorm:"not null"`
	NextControl time.Time `json:"next_control" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:30;default:ok"` // ok, needs_control, retired
	CreatedAt   time.Time `json:"created_at"`
}

func (e *Equipment) BeforeCreate(tx *gorm.DB) (err error) {
	e.Id = uuid.NewString()
	return
}
