package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FoodOrderOpen      = "open"
	FoodOrderDelivered = "delivered"
	FoodOrderCompleted = "completed"
	FoodOrderCancelled = "cancelled"
)

// FoodOrder is a restaurant/room-service order billed to a booking. Items are
// kept as a JSON snapshot of what the kitchen confirmed; only completed
// orders reach the folio.
type FoodOrder struct {
	gorm.Model
	BookingID   uint           `json:"bookingID" gorm:"index;not null"`
	Status      string         `json:"status" gorm:"type:varchar(20);default:'open';index"`
	Items       datatypes.JSON `json:"items"` // [{name, qty, unitPrice}]
	Total       float64        `json:"total" gorm:"not null"`
	OrderedAt   time.Time      `json:"orderedAt"`
	DeliveredAt *time.Time     `json:"deliveredAt,omitempty"`

	Booking Booking `json:"-" gorm:"foreignKey:BookingID"`
}
