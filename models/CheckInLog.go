package models

import (
	"time"
)

const (
	CheckInLogActionCheckIn  = "check_in"
	CheckInLogActionCheckOut = "check_out"
)

// CheckInLog records each front-desk arrival/departure action. Append-only.
type CheckInLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BookingID uint      `json:"bookingID" gorm:"index;not null"`
	RoomID    uint      `json:"roomID" gorm:"index"`
	StaffID   uint      `json:"staffID" gorm:"index"`
	Action    string    `json:"action" gorm:"type:varchar(20);not null"`
	GuestName string    `json:"guestName"`
	CreatedAt time.Time `json:"createdAt"`
}
