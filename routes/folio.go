package routes

import (
	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/services"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/bookings/:id/folio — the live ledger, recomputed on every read.
func GetFolio(ctx iris.Context) {
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

	folio, err := services.BuildFolio(storage.DB, bookingID)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{"data": folio})
}
