package routes

import (
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

type ServiceRequestInput struct {
	BookingID   uint    `json:"bookingID" validate:"required"`
	RoomID      *uint   `json:"roomID"`
	Kind        string  `json:"kind" validate:"required,max=40"`
	Description string  `json:"description"`
	Surcharge   float64 `json:"surcharge" validate:"min=0"`
}

func CreateServiceRequest(ctx iris.Context) {
	var input ServiceRequestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.Where("id = ? AND property_id = ?", input.BookingID, utils.PropertyScope(ctx)).First(&booking).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "not_found", "booking not found")
		return
	}

	request := models.ServiceRequest{
		BookingID:   input.BookingID,
		RoomID:      input.RoomID,
		Kind:        input.Kind,
		Description: input.Description,
		Status:      models.ServiceRequestPending,
		Surcharge:   input.Surcharge,
		RequestedAt: time.Now(),
		StaffID:     utils.StaffID(ctx),
	}
	if err := storage.DB.Create(&request).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": request})
}

func ListServiceRequests(ctx iris.Context) {
	q := storage.DB.Model(&models.ServiceRequest{}).
		Joins("JOIN bookings ON bookings.id = service_requests.booking_id").
		Where("bookings.property_id = ?", utils.PropertyScope(ctx))

	if status := ctx.URLParamDefault("status", ""); status != "" {
		q = q.Where("service_requests.status = ?", status)
	}
	if bookingID := ctx.URLParamIntDefault("booking_id", 0); bookingID > 0 {
		q = q.Where("service_requests.booking_id = ?", bookingID)
	}

	var requests []models.ServiceRequest
	if err := q.Order("service_requests.created_at DESC").Find(&requests).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": requests})
}

type ServiceRequestStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

// PATCH /api/service-requests/:id/status — completing a request with a
// surcharge makes it a folio charge source.
func UpdateServiceRequestStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var request models.ServiceRequest
	if err := storage.DB.Joins("JOIN bookings ON bookings.id = service_requests.booking_id").
		Where("service_requests.id = ? AND bookings.property_id = ?", id, utils.PropertyScope(ctx)).
		First(&request).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input ServiceRequestStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if request.Status == models.ServiceRequestCompleted || request.Status == models.ServiceRequestCancelled {
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "service request is already "+request.Status)
		return
	}

	before := request
	request.Status = input.Status
	if input.Status == models.ServiceRequestCompleted {
		now := time.Now()
		request.CompletedAt = &now
	}

	if err := storage.DB.Save(&request).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "service_request.status", "service_request", request.ID, before, request)
	ctx.JSON(iris.Map{"data": request})
}
