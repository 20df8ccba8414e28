package services

import (
	"errors"

	"github.com/nathanael250/travooz-hms-sub003/models"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AssignRoomResult carries the refreshed pair after a room assignment.
type AssignRoomResult struct {
	Booking     models.Booking     `json:"booking"`
	Room        models.Room        `json:"room"`
	RoomBooking models.RoomBooking `json:"roomBooking"`
}

// CheckOutResult reports the terminal state plus the outstanding balance.
// A balance due is reported, not enforced: front desk may check a guest out
// with payment still owing. BalanceUnknown is set when the folio could not
// be read in full, so a zero balance is never shown as settled by accident.
type CheckOutResult struct {
	Booking        models.Booking `json:"booking"`
	Room           models.Room    `json:"room"`
	Balance        float64        `json:"balance"`
	BalanceDue     bool           `json:"balanceDue"`
	BalanceUnknown bool           `json:"balanceUnknown"`
}

// lockBooking loads the booking row FOR UPDATE so concurrent lifecycle
// transitions on the same booking serialize; the loser of the race sees the
// post-transition status and fails its precondition check cleanly.
func lockBooking(tx *gorm.DB, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("booking not found")
	}
	if err != nil {
		return nil, internalError("failed to load booking: " + err.Error())
	}
	return &booking, nil
}

func lockRoom(tx *gorm.DB, roomID uint) (*models.Room, error) {
	var room models.Room
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("room not found")
	}
	if err != nil {
		return nil, internalError("failed to load room: " + err.Error())
	}
	return &room, nil
}

// activeRoomBooking returns the booking's current non-cancelled assignment.
func activeRoomBooking(tx *gorm.DB, bookingID uint) (*models.RoomBooking, error) {
	var rb models.RoomBooking
	err := tx.Where("booking_id = ?", bookingID).
		Where("status IN ?", conflictStatuses).
		Order("id DESC").
		First(&rb).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, internalError("failed to load room assignment: " + err.Error())
	}
	return &rb, nil
}

// AssignRoom binds a confirmed booking to a room for the booking's stay
// dates. The room row is locked before the overlap re-check so two
// concurrent assignments for the same room cannot both pass it.
func AssignRoom(db *gorm.DB, bookingID, roomID, staffID uint) (*AssignRoomResult, error) {
	var result AssignRoomResult

	err := db.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingStatusConfirmed {
			return conflict("booking must be confirmed before a room is assigned (current status: " + booking.Status + ")")
		}
		if err := ValidateStayRange(booking.CheckInDate, booking.CheckOutDate); err != nil {
			return err
		}

		room, err := lockRoom(tx, roomID)
		if err != nil {
			return err
		}
		if room.PropertyID != booking.PropertyID {
			return &Error{Kind: KindPermissionDenied, Message: "room belongs to a different property"}
		}
		if slices.Contains(unbookableRoomStatuses, room.Status) {
			return conflict("room " + room.RoomNumber + " is " + room.Status)
		}

		available, err := IsRoomAvailable(tx, roomID, booking.CheckInDate, booking.CheckOutDate, bookingID)
		if err != nil {
			return err
		}
		if !available {
			return conflict("room " + room.RoomNumber + " is unavailable for the requested dates")
		}

		var roomType models.RoomType
		if err := tx.First(&roomType, room.RoomTypeID).Error; err != nil {
			return internalError("failed to load room type: " + err.Error())
		}

		nights := StayNights(booking.CheckInDate, booking.CheckOutDate)

		existing, err := activeRoomBooking(tx, bookingID)
		if err != nil {
			return err
		}

		if existing != nil {
			// Re-assignment: release the previously held room.
			if existing.RoomID != roomID {
				if err := tx.Model(&models.Room{}).
					Where("id = ? AND status = ?", existing.RoomID, models.RoomStatusReserved).
					Update("status", models.RoomStatusAvailable).Error; err != nil {
					return internalError("failed to release previous room: " + err.Error())
				}
			}
			existing.RoomID = roomID
			existing.CheckInDate = booking.CheckInDate
			existing.CheckOutDate = booking.CheckOutDate
			existing.Nights = nights
			existing.RatePerNight = roomType.NightlyPrice
			existing.Status = models.BookingStatusConfirmed
			if err := tx.Save(existing).Error; err != nil {
				return internalError("failed to update room assignment: " + err.Error())
			}
			result.RoomBooking = *existing
		} else {
			rb := models.RoomBooking{
				BookingID:    booking.ID,
				RoomID:       roomID,
				CheckInDate:  booking.CheckInDate,
				CheckOutDate: booking.CheckOutDate,
				Nights:       nights,
				RatePerNight: roomType.NightlyPrice,
				Status:       models.BookingStatusConfirmed,
				GuestName:    booking.GuestName,
				GuestEmail:   booking.GuestEmail,
				GuestPhone:   booking.GuestPhone,
			}
			if err := tx.Create(&rb).Error; err != nil {
				return internalError("failed to create room assignment: " + err.Error())
			}
			result.RoomBooking = rb
		}

		room.Status = models.RoomStatusReserved
		if err := tx.Save(room).Error; err != nil {
			return internalError("failed to reserve room: " + err.Error())
		}

		result.Booking = *booking
		result.Room = *room
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckIn moves a confirmed, room-assigned booking into checked_in and the
// room into occupied, atomically, and appends one check-in log entry.
// Re-invoking on an already checked-in booking fails with a conflict instead
// of minting a duplicate log row.
func CheckIn(db *gorm.DB, bookingID, staffID uint) (*AssignRoomResult, error) {
	var result AssignRoomResult

	err := db.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status == models.BookingStatusCheckedIn {
			return conflict("booking is already checked in")
		}
		if booking.Status != models.BookingStatusConfirmed {
			return conflict("only confirmed bookings can be checked in (current status: " + booking.Status + ")")
		}

		rb, err := activeRoomBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if rb == nil {
			return invalidRequest("booking has no room assigned")
		}

		room, err := lockRoom(tx, rb.RoomID)
		if err != nil {
			return err
		}

		booking.Status = models.BookingStatusCheckedIn
		room.Status = models.RoomStatusOccupied
		rb.Status = models.BookingStatusCheckedIn

		if err := tx.Save(booking).Error; err != nil {
			return internalError("failed to update booking: " + err.Error())
		}
		if err := tx.Save(room).Error; err != nil {
			return internalError("failed to update room: " + err.Error())
		}
		if err := tx.Save(rb).Error; err != nil {
			return internalError("failed to update room assignment: " + err.Error())
		}

		entry := models.CheckInLog{
			BookingID: booking.ID,
			RoomID:    room.ID,
			StaffID:   staffID,
			Action:    models.CheckInLogActionCheckIn,
			GuestName: booking.GuestName,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return internalError("failed to write check-in log: " + err.Error())
		}

		result.Booking = *booking
		result.Room = *room
		result.RoomBooking = *rb
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckOut moves a checked-in booking to checked_out and sends the room to
// cleaning. The outstanding folio balance is reported after commit; an
// unpaid balance never blocks departure.
func CheckOut(db *gorm.DB, bookingID, staffID uint) (*CheckOutResult, error) {
	var result CheckOutResult

	err := db.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingStatusCheckedIn {
			return conflict("only checked-in bookings can be checked out (current status: " + booking.Status + ")")
		}

		rb, err := activeRoomBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if rb == nil {
			return invalidRequest("booking has no room assigned")
		}

		room, err := lockRoom(tx, rb.RoomID)
		if err != nil {
			return err
		}

		booking.Status = models.BookingStatusCheckedOut
		room.Status = models.RoomStatusCleaning
		room.Cleanliness = models.CleanlinessDirty
		rb.Status = models.BookingStatusCheckedOut

		if err := tx.Save(booking).Error; err != nil {
			return internalError("failed to update booking: " + err.Error())
		}
		if err := tx.Save(room).Error; err != nil {
			return internalError("failed to update room: " + err.Error())
		}
		if err := tx.Save(rb).Error; err != nil {
			return internalError("failed to update room assignment: " + err.Error())
		}

		entry := models.CheckInLog{
			BookingID: booking.ID,
			RoomID:    room.ID,
			StaffID:   staffID,
			Action:    models.CheckInLogActionCheckOut,
			GuestName: booking.GuestName,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return internalError("failed to write check-out log: " + err.Error())
		}

		result.Booking = *booking
		result.Room = *room
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best-effort balance read outside the transaction; a degraded folio
	// still lets the guest leave, flagged so the desk chases it up.
	if folio, ferr := BuildFolio(db, bookingID); ferr != nil {
		result.BalanceUnknown = true
	} else {
		result.Balance = folio.Balance
		result.BalanceDue = folio.Balance > 0
		result.BalanceUnknown = folio.Degraded
	}

	return &result, nil
}

// Housekeeping statuses staff may set directly. Occupancy states are driven
// by the booking lifecycle and are rejected here.
var housekeepingStatuses = map[string]bool{
	models.RoomStatusAvailable:   true,
	models.RoomStatusCleaning:    true,
	models.RoomStatusMaintenance: true,
	models.RoomStatusOutOfOrder:  true,
	models.RoomStatusBlocked:     true,
}

var cleanlinessValues = map[string]bool{
	models.CleanlinessClean:     true,
	models.CleanlinessDirty:     true,
	models.CleanlinessInspected: true,
	"":                          true, // unchanged
}

// UpdateHousekeeping changes a room's housekeeping status and/or cleanliness
// independently of the booking lifecycle, appending one status-log row
// (previous -> new). Empty newStatus or newCleanliness leaves that fact
// unchanged.
func UpdateHousekeeping(db *gorm.DB, roomID uint, newStatus, newCleanliness string, staffID uint, reason string) (*models.Room, error) {
	if newStatus == "" && newCleanliness == "" {
		return nil, invalidRequest("nothing to update")
	}
	if newStatus != "" && !housekeepingStatuses[newStatus] {
		return nil, invalidRequest("invalid housekeeping status: " + newStatus)
	}
	if !cleanlinessValues[newCleanliness] {
		return nil, invalidRequest("invalid cleanliness value: " + newCleanliness)
	}

	var updated models.Room

	err := db.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoom(tx, roomID)
		if err != nil {
			return err
		}
		if newStatus != "" && room.Status == models.RoomStatusOccupied {
			return conflict("room is occupied; check the guest out first")
		}

		entry := models.HousekeepingLog{
			RoomID:              room.ID,
			PreviousStatus:      room.Status,
			PreviousCleanliness: room.Cleanliness,
			NewStatus:           room.Status,
			NewCleanliness:      room.Cleanliness,
			StaffID:             staffID,
			Reason:              reason,
		}
		if newStatus != "" {
			room.Status = newStatus
			entry.NewStatus = newStatus
		}
		if newCleanliness != "" {
			room.Cleanliness = newCleanliness
			entry.NewCleanliness = newCleanliness
		}

		if err := tx.Create(&entry).Error; err != nil {
			return internalError("failed to write housekeeping log: " + err.Error())
		}
		if err := tx.Save(room).Error; err != nil {
			return internalError("failed to update room: " + err.Error())
		}

		updated = *room
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DisplayStatus derives the combined "occupancy-cleanliness" label shown on
// the housekeeping board (e.g. "occupied-dirty"). Pure computation over the
// two stored facts; never persisted.
func DisplayStatus(room *models.Room) string {
	if room.Cleanliness == "" {
		return room.Status
	}
	return room.Status + "-" + room.Cleanliness
}

// MarkNoShow cancels the hold on a room for a confirmed booking whose guest
// never arrived.
func MarkNoShow(db *gorm.DB, bookingID, staffID uint) (*models.Booking, error) {
	var updated models.Booking

	err := db.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingStatusConfirmed {
			return conflict("only confirmed bookings can be marked no-show (current status: " + booking.Status + ")")
		}

		rb, err := activeRoomBooking(tx, bookingID)
		if err != nil {
			return err
		}

		booking.Status = models.BookingStatusNoShow
		if err := tx.Save(booking).Error; err != nil {
			return internalError("failed to update booking: " + err.Error())
		}

		if rb != nil {
			rb.Status = models.BookingStatusNoShow
			if err := tx.Save(rb).Error; err != nil {
				return internalError("failed to update room assignment: " + err.Error())
			}
			if err := tx.Model(&models.Room{}).
				Where("id = ? AND status = ?", rb.RoomID, models.RoomStatusReserved).
				Update("status", models.RoomStatusAvailable).Error; err != nil {
				return internalError("failed to release room: " + err.Error())
			}
		}

		updated = *booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CancelBooking is the pending/confirmed side exit. The booking row survives
// as a terminal state; nothing is deleted.
func CancelBooking(db *gorm.DB, bookingID, staffID uint, reason string) (*models.Booking, error) {
	var updated models.Booking

	err := db.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
			return conflict("only pending or confirmed bookings can be cancelled (current status: " + booking.Status + ")")
		}

		rb, err := activeRoomBooking(tx, bookingID)
		if err != nil {
			return err
		}

		booking.Status = models.BookingStatusCancelled
		booking.CancelReason = reason
		if err := tx.Save(booking).Error; err != nil {
			return internalError("failed to update booking: " + err.Error())
		}

		if rb != nil {
			rb.Status = models.BookingStatusCancelled
			if err := tx.Save(rb).Error; err != nil {
				return internalError("failed to update room assignment: " + err.Error())
			}
			if err := tx.Model(&models.Room{}).
				Where("id = ? AND status = ?", rb.RoomID, models.RoomStatusReserved).
				Update("status", models.RoomStatusAvailable).Error; err != nil {
				return internalError("failed to release room: " + err.Error())
			}
		}

		updated = *booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
