package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payout is a manually recorded payment to an employee (salary, bonus,
// pension, holiday pay); kept separate from the computed ledgers.
type Payout struct {
	Id         string    `json:"id" gorm:"primaryKey"`
	EmployeeId string    `json:"employee_id" gorm:"not null;index"`
	Type       string    `json:"type" gorm:"size:30;not null"` // salary, bonus, pension, holiday_pay
	Amount     float64   `json:"amount" gorm:"type:numeric(12,2)"`
	Date       time.Time `json:"date" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (payout *Payout) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	payout.Id = uuid.NewString()
	return
}
