package models

import (
	"gorm.io/gorm"
)

type RoomType struct {
	gorm.Model
	PropertyID   uint    `json:"propertyID" gorm:"index;not null"`
	Name         string  `json:"name" gorm:"not null"`
	Description  string  `json:"description" gorm:"type:text"`
	NightlyPrice float64 `json:"nightlyPrice" gorm:"not null"`
	MaxOccupancy int     `json:"maxOccupancy" gorm:"default:2"`
	BedCount     int     `json:"bedCount" gorm:"default:1"`
	Amenities    string  `json:"amenities" gorm:"type:text"` // JSON string

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
	Rooms    []Room   `json:"rooms,omitempty" gorm:"foreignKey:RoomTypeID"`
}
