package routes

import (
	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/services"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

type HousekeepingStatusInput struct {
	Status      string `json:"status"`
	Cleanliness string `json:"cleanliness"`
	Reason      string `json:"reason"`
}

// POST /api/housekeeping/rooms/:id/status
func UpdateHousekeepingStatus(ctx iris.Context) {
	roomID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid room id")
		return
	}

	var room models.Room
	if err := storage.DB.Where("id = ? AND property_id = ?", roomID, utils.PropertyScope(ctx)).First(&room).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input HousekeepingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := room
	updated, err := services.UpdateHousekeeping(storage.DB, roomID, input.Status, input.Cleanliness, utils.StaffID(ctx), input.Reason)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	utils.Audit(ctx, "housekeeping.status", "room", roomID, before, updated)
	ctx.JSON(iris.Map{
		"data":          updated,
		"displayStatus": services.DisplayStatus(updated),
	})
}

// GET /api/housekeeping/rooms — the housekeeping board: every room with its
// derived occupancy-cleanliness label.
func ListHousekeepingBoard(ctx iris.Context) {
	var rooms []models.Room
	if err := storage.DB.Where("property_id = ?", utils.PropertyScope(ctx)).
		Order("room_number ASC").Find(&rooms).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	board := make([]iris.Map, 0, len(rooms))
	for i := range rooms {
		board = append(board, iris.Map{
			"room":          rooms[i],
			"displayStatus": services.DisplayStatus(&rooms[i]),
		})
	}
	ctx.JSON(iris.Map{"data": board})
}

// GET /api/housekeeping/rooms/:id/log
func GetHousekeepingLog(ctx iris.Context) {
	roomID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid room id")
		return
	}

	var room models.Room
	if err := storage.DB.Where("id = ? AND property_id = ?", roomID, utils.PropertyScope(ctx)).First(&room).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var entries []models.HousekeepingLog
	if err := storage.DB.Where("room_id = ?", roomID).
		Order("created_at DESC").Limit(100).
		Find(&entries).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": entries})
}
