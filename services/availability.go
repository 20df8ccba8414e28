package services

import (
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"

	"gorm.io/gorm"
)

// Assignment statuses that hold a room. Cancelled and no-show bookings drop
// out of the conflict set entirely.
var conflictStatuses = []string{
	models.BookingStatusPending,
	models.BookingStatusConfirmed,
	models.BookingStatusCheckedIn,
}

// Room statuses that suspend bookability regardless of dates.
var unbookableRoomStatuses = []string{
	models.RoomStatusMaintenance,
	models.RoomStatusOutOfOrder,
	models.RoomStatusBlocked,
}

// ValidateStayRange rejects inverted or zero-length intervals. Both dates are
// treated as date-only values; the interval is half-open, so the checkout day
// itself is free for the next arrival.
func ValidateStayRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return invalidRequest("check-in and check-out dates are required")
	}
	if !start.Before(end) {
		return invalidRequest("check-out date must be after check-in date")
	}
	return nil
}

// StayNights returns the number of nights in [start, end).
func StayNights(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}

// conflictingAssignments selects room_booking IDs that overlap [start, end)
// on the given room. Two half-open intervals overlap iff
// a.start < b.end AND b.start < a.end.
func conflictingAssignments(db *gorm.DB, roomID uint, start, end time.Time, excludeBookingID uint) *gorm.DB {
	q := db.Model(&models.RoomBooking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", conflictStatuses).
		Where("check_in_date < ? AND check_out_date > ?", end, start)
	if excludeBookingID != 0 {
		q = q.Where("booking_id <> ?", excludeBookingID)
	}
	return q
}

// IsRoomAvailable reports whether the room has no conflicting assignment for
// the candidate interval. excludeBookingID (optional, 0 to skip) lets a
// booking's own assignment be ignored when re-assigning rooms.
func IsRoomAvailable(db *gorm.DB, roomID uint, start, end time.Time, excludeBookingID uint) (bool, error) {
	if err := ValidateStayRange(start, end); err != nil {
		return false, err
	}

	var count int64
	if err := conflictingAssignments(db, roomID, start, end, excludeBookingID).Count(&count).Error; err != nil {
		return false, internalError("failed to check room availability: " + err.Error())
	}
	return count == 0, nil
}

// FindAvailableRooms returns every room of the property with no conflicting
// assignment for the interval. roomTypeID and minCapacity are optional
// pre-filters (0 to skip); they narrow the candidate set but never relax the
// overlap rule. An empty result is not an error.
func FindAvailableRooms(db *gorm.DB, propertyID, roomTypeID uint, minCapacity int, start, end time.Time) ([]models.Room, error) {
	if err := ValidateStayRange(start, end); err != nil {
		return nil, err
	}

	busy := db.Model(&models.RoomBooking{}).
		Select("room_id").
		Where("status IN ?", conflictStatuses).
		Where("check_in_date < ? AND check_out_date > ?", end, start)

	q := db.Model(&models.Room{}).
		Where("rooms.property_id = ?", propertyID).
		Where("rooms.status NOT IN ?", unbookableRoomStatuses).
		Where("rooms.id NOT IN (?)", busy)

	if roomTypeID != 0 {
		q = q.Where("rooms.room_type_id = ?", roomTypeID)
	}
	if minCapacity > 0 {
		q = q.Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
			Where("room_types.max_occupancy >= ?", minCapacity)
	}

	var rooms []models.Room
	if err := q.Preload("RoomType").Order("rooms.room_number ASC").Find(&rooms).Error; err != nil {
		return nil, internalError("failed to query available rooms: " + err.Error())
	}
	return rooms, nil
}
