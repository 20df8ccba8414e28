package models

import (
	"gorm.io/gorm"
)

// Charge categories. All four charge origins share this one shape,
// discriminated by Category.
const (
	ChargeCategoryRoom       = "room"
	ChargeCategoryService    = "service"
	ChargeCategoryRestaurant = "restaurant"
	ChargeCategoryAdhoc      = "adhoc"
)

// Charge is an immutable line item against a booking. Corrections are new
// negative/positive lines, never edits.
type Charge struct {
	gorm.Model
	BookingID   uint    `json:"bookingID" gorm:"index;not null"`
	Category    string  `json:"category" gorm:"type:varchar(20);not null;index"`
	Description string  `json:"description" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"default:1"`
	UnitPrice   float64 `json:"unitPrice" gorm:"not null"`
	Total       float64 `json:"total" gorm:"not null"`
	Tax         float64 `json:"tax" gorm:"default:0"`
	StaffID     uint    `json:"staffID"`

	Booking Booking `json:"-" gorm:"foreignKey:BookingID"`
}
