package routes

import (
	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

type ChargeInput struct {
	Description string  `json:"description" validate:"required,max=256"`
	Quantity    int     `json:"quantity" validate:"min=1"`
	UnitPrice   float64 `json:"unitPrice" validate:"required"`
}

// POST /api/bookings/:id/charges — ad-hoc/minibar charge. Negative unit
// prices are corrections; stored lines are never edited.
func CreateCharge(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid booking id")
		return
	}

	var booking models.Booking
	if err := storage.DB.Where("id = ? AND property_id = ?", bookingID, utils.PropertyScope(ctx)).First(&booking).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if booking.Status == models.BookingStatusCancelled || booking.Status == models.BookingStatusNoShow {
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "cannot charge a "+booking.Status+" booking")
		return
	}

	var input ChargeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	charge := models.Charge{
		BookingID:   bookingID,
		Category:    models.ChargeCategoryAdhoc,
		Description: input.Description,
		Quantity:    input.Quantity,
		UnitPrice:   input.UnitPrice,
		Total:       float64(input.Quantity) * input.UnitPrice,
		StaffID:     utils.StaffID(ctx),
	}
	if err := storage.DB.Create(&charge).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "charge.create", "charge", charge.ID, nil, charge)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": charge})
}

// GET /api/bookings/:id/charges
func ListCharges(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid booking id")
		return
	}

	var booking models.Booking
	if err := storage.DB.Where("id = ? AND property_id = ?", bookingID, utils.PropertyScope(ctx)).First(&booking).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var charges []models.Charge
	if err := storage.DB.Where("booking_id = ?", bookingID).Order("created_at ASC").Find(&charges).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": charges})
}
