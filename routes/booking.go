package routes

import (
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/services"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

type CreateBookingInput struct {
	RoomID       uint   `json:"roomID"`
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
	GuestName    string `json:"guestName" validate:"required,max=256"`
	GuestEmail   string `json:"guestEmail" validate:"omitempty,email"`
	GuestPhone   string `json:"guestPhone"`
	Adults       int    `json:"adults" validate:"min=0"`
	Children     int    `json:"children" validate:"min=0"`
	Notes        string `json:"notes"`
	Confirm      bool   `json:"confirm"`
}

func CreateBooking(ctx iris.Context) {
	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkIn, err := time.Parse("2006-01-02", input.CheckInDate)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid checkInDate format, expected YYYY-MM-DD")
		return
	}
	checkOut, err := time.Parse("2006-01-02", input.CheckOutDate)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid checkOutDate format, expected YYYY-MM-DD")
		return
	}

	booking, err := services.CreateBooking(storage.DB, services.CreateBookingInput{
		PropertyID:   utils.PropertyScope(ctx),
		RoomID:       input.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		GuestName:    input.GuestName,
		GuestEmail:   input.GuestEmail,
		GuestPhone:   utils.NormalizePhoneNumber(input.GuestPhone),
		Adults:       input.Adults,
		Children:     input.Children,
		Notes:        input.Notes,
		Confirm:      input.Confirm,
	}, utils.StaffID(ctx))
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.Audit(ctx, "booking.create", "booking", booking.ID, nil, booking)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": booking})
}

func ListBookings(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	q := storage.DB.Model(&models.Booking{}).Where("property_id = ?", utils.PropertyScope(ctx))

	if status := ctx.URLParamDefault("status", ""); status != "" {
		q = q.Where("status = ?", status)
	}
	if guest := ctx.URLParamDefault("guest", ""); guest != "" {
		q = q.Where("guest_name ILIKE ?", "%"+guest+"%")
	}
	if dateFrom := ctx.URLParamDefault("date_from", ""); dateFrom != "" {
		if t, err := time.Parse("2006-01-02", dateFrom); err == nil {
			q = q.Where("check_in_date >= ?", t)
		}
	}
	if dateTo := ctx.URLParamDefault("date_to", ""); dateTo != "" {
		if t, err := time.Parse("2006-01-02", dateTo); err == nil {
			q = q.Where("check_out_date <= ?", t)
		}
	}

	var total int64
	q.Count(&total)

	var bookings []models.Booking
	if err := q.Preload("RoomBookings").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, bookings, page, perPage, total)
}

func GetBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var booking models.Booking
	if err := storage.DB.Preload("RoomBookings").Preload("RoomBookings.Room").
		Preload("Charges").Preload("Payments").
		Where("id = ? AND property_id = ?", id, utils.PropertyScope(ctx)).
		First(&booking).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": booking})
}

func ConfirmBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid id")
		return
	}
	if !scopedBooking(ctx, id) {
		return
	}

	booking, err := services.ConfirmBooking(storage.DB, id, utils.StaffID(ctx))
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.Audit(ctx, "booking.confirm", "booking", booking.ID, nil, booking)
	ctx.JSON(iris.Map{"data": booking})
}

func CancelBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := ctx.ReadJSON(&body); err != nil || body.Reason == "" {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "reason required")
		return
	}
	if !scopedBooking(ctx, id) {
		return
	}

	booking, err := services.CancelBooking(storage.DB, id, utils.StaffID(ctx), body.Reason)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.Audit(ctx, "booking.cancel", "booking", booking.ID, nil, booking)
	ctx.JSON(iris.Map{"data": booking})
}
