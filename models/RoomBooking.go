package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomBooking binds a booking to a physical room for a half-open date
// interval [CheckInDate, CheckOutDate). The checkout day itself is free, so
// same-day back-to-back stays never conflict.
type RoomBooking struct {
	gorm.Model
	BookingID    uint      `json:"bookingID" gorm:"index;not null"`
	RoomID       uint      `json:"roomID" gorm:"index;not null"`
	CheckInDate  time.Time `json:"checkInDate" gorm:"not null;index"`
	CheckOutDate time.Time `json:"checkOutDate" gorm:"not null;index"`
	Nights       int       `json:"nights" gorm:"not null"`

	// Nightly rate frozen at assignment time; later RoomType price edits do
	// not reprice an existing stay.
	RatePerNight float64 `json:"ratePerNight" gorm:"not null"`

	// Lifecycle mirror of the parent booking so the overlap query can filter
	// on a single table join.
	Status string `json:"status" gorm:"type:varchar(20);default:'pending';index"`

	GuestName  string `json:"guestName"`
	GuestEmail string `json:"guestEmail"`
	GuestPhone string `json:"guestPhone"`

	Booking Booking `json:"-" gorm:"foreignKey:BookingID"`
	Room    Room    `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}
