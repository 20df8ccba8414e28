package services

import (
	"strings"
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// CreateBookingInput is the reservation intent taken at the desk or from the
// booking form. RoomID is optional; a room can also be assigned later via
// AssignRoom.
type CreateBookingInput struct {
	PropertyID   uint
	RoomID       uint
	CheckInDate  time.Time
	CheckOutDate time.Time
	GuestName    string
	GuestEmail   string
	GuestPhone   string
	Adults       int
	Children     int
	Notes        string
	Confirm      bool
}

// CreateBooking creates the booking and, when a room is requested, holds it
// in the same transaction. The room row is locked before the overlap check
// so two concurrent creations for the same room and overlapping dates cannot
// both succeed.
func CreateBooking(db *gorm.DB, input CreateBookingInput, staffID uint) (*models.Booking, error) {
	if err := ValidateStayRange(input.CheckInDate, input.CheckOutDate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.GuestName) == "" {
		return nil, invalidRequest("guest name is required")
	}

	status := models.BookingStatusPending
	if input.Confirm {
		status = models.BookingStatusConfirmed
	}

	var created models.Booking

	err := db.Transaction(func(tx *gorm.DB) error {
		booking := models.Booking{
			PropertyID:    input.PropertyID,
			ReferenceCode: "BK-" + strings.ToUpper(uuid.NewString()[:8]),
			Status:        status,
			PaymentStatus: models.PaymentStatusUnpaid,
			CheckInDate:   input.CheckInDate,
			CheckOutDate:  input.CheckOutDate,
			Nights:        StayNights(input.CheckInDate, input.CheckOutDate),
			GuestName:     strings.TrimSpace(input.GuestName),
			GuestEmail:    input.GuestEmail,
			GuestPhone:    input.GuestPhone,
			Adults:        input.Adults,
			Children:      input.Children,
			Notes:         input.Notes,
		}
		if booking.Adults <= 0 {
			booking.Adults = 1
		}
		if err := tx.Create(&booking).Error; err != nil {
			return internalError("failed to create booking: " + err.Error())
		}

		if input.RoomID != 0 {
			room, err := lockRoom(tx, input.RoomID)
			if err != nil {
				return err
			}
			if room.PropertyID != input.PropertyID {
				return &Error{Kind: KindPermissionDenied, Message: "room belongs to a different property"}
			}
			if slices.Contains(unbookableRoomStatuses, room.Status) {
				return conflict("room " + room.RoomNumber + " is " + room.Status)
			}

			available, err := IsRoomAvailable(tx, input.RoomID, input.CheckInDate, input.CheckOutDate, booking.ID)
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

			rb := models.RoomBooking{
				BookingID:    booking.ID,
				RoomID:       room.ID,
				CheckInDate:  input.CheckInDate,
				CheckOutDate: input.CheckOutDate,
				Nights:       booking.Nights,
				RatePerNight: roomType.NightlyPrice,
				Status:       status,
				GuestName:    booking.GuestName,
				GuestEmail:   booking.GuestEmail,
				GuestPhone:   booking.GuestPhone,
			}
			if err := tx.Create(&rb).Error; err != nil {
				return internalError("failed to create room assignment: " + err.Error())
			}

			if status == models.BookingStatusConfirmed {
				room.Status = models.RoomStatusReserved
				if err := tx.Save(room).Error; err != nil {
					return internalError("failed to reserve room: " + err.Error())
				}
			}
		}

		created = booking
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ConfirmBooking advances pending -> confirmed and reserves any room already
// attached to the booking.
func ConfirmBooking(db *gorm.DB, bookingID, staffID uint) (*models.Booking, error) {
	var updated models.Booking

	err := db.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if booking.Status != models.BookingStatusPending {
			return conflict("only pending bookings can be confirmed (current status: " + booking.Status + ")")
		}

		booking.Status = models.BookingStatusConfirmed
		if err := tx.Save(booking).Error; err != nil {
			return internalError("failed to update booking: " + err.Error())
		}

		rb, err := activeRoomBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if rb != nil {
			rb.Status = models.BookingStatusConfirmed
			if err := tx.Save(rb).Error; err != nil {
				return internalError("failed to update room assignment: " + err.Error())
			}
			if err := tx.Model(&models.Room{}).
				Where("id = ? AND status = ?", rb.RoomID, models.RoomStatusAvailable).
				Update("status", models.RoomStatusReserved).Error; err != nil {
				return internalError("failed to reserve room: " + err.Error())
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
