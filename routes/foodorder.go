package routes

import (
	"encoding/json"
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

type FoodOrderItemInput struct {
	Name      string  `json:"name" validate:"required"`
	Qty       int     `json:"qty" validate:"required,min=1"`
	UnitPrice float64 `json:"unitPrice" validate:"required,min=0"`
}

type FoodOrderInput struct {
	BookingID uint                 `json:"bookingID" validate:"required"`
	Items     []FoodOrderItemInput `json:"items" validate:"required,min=1,dive"`
}

func CreateFoodOrder(ctx iris.Context) {
	var input FoodOrderInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.Where("id = ? AND property_id = ?", input.BookingID, utils.PropertyScope(ctx)).First(&booking).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "not_found", "booking not found")
		return
	}

	var total float64
	for _, item := range input.Items {
		total += float64(item.Qty) * item.UnitPrice
	}

	itemsJSON, err := json.Marshal(input.Items)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	order := models.FoodOrder{
		BookingID: input.BookingID,
		Status:    models.FoodOrderOpen,
		Items:     itemsJSON,
		Total:     total,
		OrderedAt: time.Now(),
	}
	if err := storage.DB.Create(&order).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": order})
}

func ListFoodOrders(ctx iris.Context) {
	q := storage.DB.Model(&models.FoodOrder{}).
		Joins("JOIN bookings ON bookings.id = food_orders.booking_id").
		Where("bookings.property_id = ?", utils.PropertyScope(ctx))

	if status := ctx.URLParamDefault("status", ""); status != "" {
		q = q.Where("food_orders.status = ?", status)
	}
	if bookingID := ctx.URLParamIntDefault("booking_id", 0); bookingID > 0 {
		q = q.Where("food_orders.booking_id = ?", bookingID)
	}

	var orders []models.FoodOrder
	if err := q.Order("food_orders.created_at DESC").Find(&orders).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": orders})
}

type FoodOrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=open delivered completed cancelled"`
}

// PATCH /api/food-orders/:id/status — completed orders become folio charges.
func UpdateFoodOrderStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var order models.FoodOrder
	if err := storage.DB.Joins("JOIN bookings ON bookings.id = food_orders.booking_id").
		Where("food_orders.id = ? AND bookings.property_id = ?", id, utils.PropertyScope(ctx)).
		First(&order).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input FoodOrderStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if order.Status == models.FoodOrderCompleted || order.Status == models.FoodOrderCancelled {
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "food order is already "+order.Status)
		return
	}

	before := order
	order.Status = input.Status
	if input.Status == models.FoodOrderDelivered || input.Status == models.FoodOrderCompleted {
		now := time.Now()
		order.DeliveredAt = &now
	}

	if err := storage.DB.Save(&order).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "food_order.status", "food_order", order.ID, before, order)
	ctx.JSON(iris.Map{"data": order})
}
