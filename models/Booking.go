package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking lifecycle. Bookings are never hard-deleted; cancelled and no_show
// are terminal states so historical occupancy queries keep working.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
	BookingStatusNoShow     = "no_show"
)

const (
	PaymentStatusUnpaid        = "unpaid"
	PaymentStatusPartiallyPaid = "partially_paid"
	PaymentStatusPaid          = "paid"
	PaymentStatusRefunded      = "refunded"
)

type Booking struct {
	gorm.Model
	PropertyID    uint   `json:"propertyID" gorm:"index;not null"`
	ReferenceCode string `json:"referenceCode" gorm:"type:varchar(40);uniqueIndex"`
	Status        string `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentStatus string `json:"paymentStatus" gorm:"type:varchar(20);default:'unpaid'"`

	// Requested stay dates; the authoritative interval for conflict checks
	// lives on the RoomBooking once a room is assigned.
	CheckInDate  time.Time `json:"checkInDate" gorm:"not null"`
	CheckOutDate time.Time `json:"checkOutDate" gorm:"not null"`
	Nights       int       `json:"nights"`

	// Guest snapshot captured at booking time; decoupled from later
	// guest-profile edits.
	GuestName  string `json:"guestName" gorm:"not null"`
	GuestEmail string `json:"guestEmail"`
	GuestPhone string `json:"guestPhone"`
	Adults     int    `json:"adults" gorm:"default:1"`
	Children   int    `json:"children" gorm:"default:0"`
	Notes      string `json:"notes" gorm:"type:text"`

	CancelReason string `json:"cancelReason,omitempty" gorm:"type:text"`

	Property     Property      `json:"-" gorm:"foreignKey:PropertyID"`
	RoomBookings []RoomBooking `json:"roomBookings,omitempty" gorm:"foreignKey:BookingID"`
	Charges      []Charge      `json:"charges,omitempty" gorm:"foreignKey:BookingID"`
	Payments     []Payment     `json:"payments,omitempty" gorm:"foreignKey:BookingID"`
}
