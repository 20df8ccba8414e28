package routes

import (
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/services"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

type RoomInput struct {
	RoomTypeID uint   `json:"roomTypeID" validate:"required"`
	RoomNumber string `json:"roomNumber" validate:"required,max=20"`
	Floor      string `json:"floor"`
	Notes      string `json:"notes"`
}

func CreateRoom(ctx iris.Context) {
	var input RoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	propertyID := utils.PropertyScope(ctx)

	var roomType models.RoomType
	if err := storage.DB.Where("id = ? AND property_id = ?", input.RoomTypeID, propertyID).First(&roomType).Error; err != nil {
		utils.JSONError(ctx, iris.StatusNotFound, "not_found", "room type not found")
		return
	}

	room := models.Room{
		PropertyID:  propertyID,
		RoomTypeID:  input.RoomTypeID,
		RoomNumber:  input.RoomNumber,
		Floor:       input.Floor,
		Status:      models.RoomStatusAvailable,
		Cleanliness: models.CleanlinessClean,
		Notes:       input.Notes,
	}
	if err := storage.DB.Create(&room).Error; err != nil {
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "room number already exists for this property")
		return
	}

	utils.Audit(ctx, "room.create", "room", room.ID, nil, room)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": room})
}

func ListRooms(ctx iris.Context) {
	q := storage.DB.Where("property_id = ?", utils.PropertyScope(ctx))

	if status := ctx.URLParamDefault("status", ""); status != "" {
		q = q.Where("status = ?", status)
	}
	if roomTypeID := ctx.URLParamIntDefault("room_type_id", 0); roomTypeID > 0 {
		q = q.Where("room_type_id = ?", roomTypeID)
	}

	var rooms []models.Room
	if err := q.Preload("RoomType").Order("room_number ASC").Find(&rooms).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": rooms})
}

func GetRoom(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var room models.Room
	if err := storage.DB.Preload("RoomType").
		Where("id = ? AND property_id = ?", id, utils.PropertyScope(ctx)).First(&room).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": room, "displayStatus": services.DisplayStatus(&room)})
}

func UpdateRoom(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var room models.Room
	if err := storage.DB.Where("id = ? AND property_id = ?", id, utils.PropertyScope(ctx)).First(&room).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input RoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := room
	room.RoomTypeID = input.RoomTypeID
	room.RoomNumber = input.RoomNumber
	room.Floor = input.Floor
	room.Notes = input.Notes

	if err := storage.DB.Save(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "room.update", "room", room.ID, before, room)
	ctx.JSON(iris.Map{"data": room})
}

// DeleteRoom refuses to remove a room that is currently holding or hosting a
// guest.
func DeleteRoom(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var room models.Room
	if err := storage.DB.Where("id = ? AND property_id = ?", id, utils.PropertyScope(ctx)).First(&room).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if room.Status == models.RoomStatusOccupied || room.Status == models.RoomStatusReserved {
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "room is "+room.Status+" and cannot be deleted")
		return
	}

	if err := storage.DB.Delete(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "room.delete", "room", room.ID, room, nil)
	ctx.JSON(iris.Map{"success": true})
}

// GetRoomAvailability answers "which rooms are free for this date range",
// with optional room-type and capacity filters.
func GetRoomAvailability(ctx iris.Context) {
	startDateStr := ctx.URLParam("start_date")
	endDateStr := ctx.URLParam("end_date")

	if startDateStr == "" || endDateStr == "" {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "start_date and end_date are required")
		return
	}

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid start_date format, expected YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid end_date format, expected YYYY-MM-DD")
		return
	}

	roomTypeID := uint(ctx.URLParamIntDefault("room_type_id", 0))
	minCapacity := ctx.URLParamIntDefault("min_capacity", 0)

	rooms, err := services.FindAvailableRooms(storage.DB, utils.PropertyScope(ctx), roomTypeID, minCapacity, startDate, endDate)
	if err != nil {
		utils.ServiceError(ctx, err)
		return
	}

	ctx.JSON(iris.Map{
		"data":      rooms,
		"startDate": startDateStr,
		"endDate":   endDateStr,
		"count":     len(rooms),
	})
}
