package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	PropertyID  uint   `json:"propertyID" gorm:"index"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"-"`
	AvatarURL   string `json:"avatarURL"`
	IsActive    *bool  `json:"isActive" gorm:"default:true"`
	Role        string `json:"role" gorm:"type:varchar(20);default:staff;index"` // staff, manager, admin

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}
