package routes

import (
	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/services"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

type PaymentInput struct {
	Amount           float64 `json:"amount" validate:"required"`
	Method           string  `json:"method" validate:"required,oneof=cash card bank-transfer mobile-money"`
	Reference        string  `json:"reference"`
	AllowOverpayment bool    `json:"allowOverpayment"`
}

// POST /api/bookings/:id/payments
func RecordPayment(ctx iris.Context) {
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

	var input PaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	payment, err := services.RecordPayment(storage.DB, bookingID, services.RecordPaymentInput{
		Amount:           input.Amount,
		Method:           input.Method,
		Reference:        input.Reference,
		AllowOverpayment: input.AllowOverpayment,
	}, utils.StaffID(ctx))
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.Audit(ctx, "payment.record", "payment", payment.ID, nil, payment)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": payment})
}

// GET /api/bookings/:id/payments
func ListPayments(ctx iris.Context) {
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

	var payments []models.Payment
	if err := storage.DB.Where("booking_id = ?", bookingID).Order("paid_at ASC").Find(&payments).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": payments})
}
