package models

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	Id             string `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"not null"`
	Password       []byte `json:"-" gorm:"not null"`
	Email          string `json:"email" gorm:"unique;not null"`
	Role           string `json:"role" gorm:"default:user"` // user, manager, admin
	OrganizationId string `json:"-" gorm:"index"`
	SchemaName     string `json:"-" gorm:"not null"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	user.Id = uuid.NewString()
	return
}

func (user *User) SetPassword(password string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	user.Password = hashedPassword
}

func (user *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(user.Password, []byte(password))
}
