package routes

import (
	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/services"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

type AssignRoomInput struct {
	RoomID uint `json:"roomID" validate:"required"`
}

// scopedBooking resolves the booking within the caller's property. A booking
// from another property reads as not found, same as everywhere else.
func scopedBooking(ctx iris.Context, bookingID uint) bool {
	var booking models.Booking
	if err := storage.DB.Where("id = ? AND property_id = ?", bookingID, utils.PropertyScope(ctx)).
		First(&booking).Error; err != nil {
		utils.CreateNotFound(ctx)
		return false
	}
	return true
}

// POST /api/frontdesk/bookings/:id/assign-room
func AssignRoom(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid booking id")
		return
	}
	if !scopedBooking(ctx, bookingID) {
		return
	}

	var input AssignRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	result, err := services.AssignRoom(storage.DB, bookingID, input.RoomID, utils.StaffID(ctx))
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.Audit(ctx, "frontdesk.assign_room", "booking", bookingID, nil, result.RoomBooking)
	ctx.JSON(iris.Map{
		"data":    result,
		"message": "room " + result.Room.RoomNumber + " assigned",
	})
}

// POST /api/frontdesk/bookings/:id/check-in
func CheckIn(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid booking id")
		return
	}
	if !scopedBooking(ctx, bookingID) {
		return
	}

	result, err := services.CheckIn(storage.DB, bookingID, utils.StaffID(ctx))
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.Audit(ctx, "frontdesk.check_in", "booking", bookingID, nil, result.Booking)
	ctx.JSON(iris.Map{
		"data":    result,
		"message": result.Booking.GuestName + " checked in to room " + result.Room.RoomNumber,
	})
}

// POST /api/frontdesk/bookings/:id/check-out
func CheckOut(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid booking id")
		return
	}
	if !scopedBooking(ctx, bookingID) {
		return
	}

	result, err := services.CheckOut(storage.DB, bookingID, utils.StaffID(ctx))
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.Audit(ctx, "frontdesk.check_out", "booking", bookingID, nil, result.Booking)

	message := "checked out"
	switch {
	case result.BalanceUnknown:
		message = "checked out, balance could not be confirmed"
	case result.BalanceDue:
		message = "checked out with balance due"
	}
	ctx.JSON(iris.Map{"data": result, "message": message})
}

// POST /api/frontdesk/bookings/:id/no-show
func MarkNoShow(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid booking id")
		return
	}
	if !scopedBooking(ctx, bookingID) {
		return
	}

	booking, err := services.MarkNoShow(storage.DB, bookingID, utils.StaffID(ctx))
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.Audit(ctx, "frontdesk.no_show", "booking", bookingID, nil, booking)
	ctx.JSON(iris.Map{"data": booking})
}
