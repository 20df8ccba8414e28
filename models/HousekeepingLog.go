package models

import (
	"time"
)

// HousekeepingLog is the append-only trail of room status changes
// (previous -> new). Rows are never updated or deleted.
type HousekeepingLog struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	RoomID              uint      `json:"roomID" gorm:"index;not null"`
	PreviousStatus      string    `json:"previousStatus" gorm:"type:varchar(20)"`
	NewStatus           string    `json:"newStatus" gorm:"type:varchar(20)"`
	PreviousCleanliness string    `json:"previousCleanliness" gorm:"type:varchar(20)"`
	NewCleanliness      string    `json:"newCleanliness" gorm:"type:varchar(20)"`
	StaffID             uint      `json:"staffID" gorm:"index"`
	Reason              string    `json:"reason" gorm:"type:text"`
	CreatedAt           time.Time `json:"createdAt"`
}
