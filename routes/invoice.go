package routes

import (
	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/services"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

type GenerateInvoiceInput struct {
	TaxRatePct       float64 `json:"taxRatePct" validate:"min=0,max=100"`
	ServiceChargePct float64 `json:"serviceChargePct" validate:"min=0,max=100"`
	DiscountAmount   float64 `json:"discountAmount" validate:"min=0"`
	Notes            string  `json:"notes"`
}

// POST /api/bookings/:id/invoice — at most once per booking. A 409 means an
// invoice already exists; fetch it instead of retrying.
func GenerateInvoice(ctx iris.Context) {
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

	var input GenerateInvoiceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	invoice, err := services.GenerateInvoice(storage.DB, bookingID, services.GenerateInvoiceInput{
		TaxRatePct:       input.TaxRatePct,
		ServiceChargePct: input.ServiceChargePct,
		DiscountAmount:   input.DiscountAmount,
		Notes:            input.Notes,
	}, utils.StaffID(ctx))
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.Audit(ctx, "invoice.generate", "invoice", invoice.ID, nil, invoice)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": invoice})
}

// GET /api/invoices/:id
func GetInvoice(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid invoice id")
		return
	}

	invoice, err := services.GetInvoice(storage.DB, id)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}
	if invoice.PropertyID != utils.PropertyScope(ctx) {
		utils.JSONError(ctx, iris.StatusForbidden, "permission_denied", "invoice belongs to a different property")
		return
	}

	ctx.JSON(iris.Map{"data": invoice})
}

// GET /api/bookings/:id/invoice
func GetBookingInvoice(ctx iris.Context) {
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

	invoice, err := services.GetInvoiceByBooking(storage.DB, bookingID)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"data": invoice})
}

// GET /api/invoices
func ListInvoices(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	q := storage.DB.Model(&models.Invoice{}).Where("property_id = ?", utils.PropertyScope(ctx))

	var total int64
	q.Count(&total)

	var invoices []models.Invoice
	if err := q.Preload("Items").
		Offset((page - 1) * perPage).Limit(perPage).
		Order("issued_at DESC").
		Find(&invoices).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONPage(ctx, invoices, page, perPage, total)
}
