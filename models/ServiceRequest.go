package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ServiceRequestPending    = "pending"
	ServiceRequestInProgress = "in_progress"
	ServiceRequestCompleted  = "completed"
	ServiceRequestCancelled  = "cancelled"
)

// ServiceRequest is a guest-facing task (extra towels, late checkout, airport
// pickup). Completed requests with a non-zero surcharge feed the folio.
type ServiceRequest struct {
	gorm.Model
	BookingID   uint       `json:"bookingID" gorm:"index;not null"`
	RoomID      *uint      `json:"roomID,omitempty" gorm:"index"`
	Kind        string     `json:"kind" gorm:"type:varchar(40)"`
	Description string     `json:"description" gorm:"type:text"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Surcharge   float64    `json:"surcharge" gorm:"default:0"`
	RequestedAt time.Time  `json:"requestedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	StaffID     uint       `json:"staffID"`

	Booking Booking `json:"-" gorm:"foreignKey:BookingID"`
}
