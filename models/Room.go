package models

import (
	"gorm.io/gorm"
)

// Room physical statuses. Occupancy states (available/reserved/occupied) are
// driven by the booking lifecycle; the remaining values are housekeeping
// states that suspend bookability.
const (
	RoomStatusAvailable   = "available"
	RoomStatusReserved    = "reserved"
	RoomStatusOccupied    = "occupied"
	RoomStatusCleaning    = "cleaning"
	RoomStatusMaintenance = "maintenance"
	RoomStatusOutOfOrder  = "out_of_order"
	RoomStatusBlocked     = "blocked"
)

const (
	CleanlinessClean     = "clean"
	CleanlinessDirty     = "dirty"
	CleanlinessInspected = "inspected"
)

type Room struct {
	gorm.Model
	PropertyID  uint   `json:"propertyID" gorm:"not null;uniqueIndex:idx_property_room_number"`
	RoomTypeID  uint   `json:"roomTypeID" gorm:"index;not null"`
	RoomNumber  string `json:"roomNumber" gorm:"type:varchar(20);not null;uniqueIndex:idx_property_room_number"`
	Floor       string `json:"floor" gorm:"type:varchar(10)"`
	Status      string `json:"status" gorm:"type:varchar(20);default:'available';index"`
	Cleanliness string `json:"cleanliness" gorm:"type:varchar(20);default:'clean'"`
	Notes       string `json:"notes" gorm:"type:text"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
	RoomType RoomType `json:"roomType,omitempty" gorm:"foreignKey:RoomTypeID"`
}
