package routes

import (
	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

type RoomTypeInput struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Description  string  `json:"description"`
	NightlyPrice float64 `json:"nightlyPrice" validate:"required,min=0"`
	MaxOccupancy int     `json:"maxOccupancy" validate:"min=1"`
	BedCount     int     `json:"bedCount" validate:"min=1"`
	Amenities    string  `json:"amenities"`
}

func CreateRoomType(ctx iris.Context) {
	var input RoomTypeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	roomType := models.RoomType{
		PropertyID:   utils.PropertyScope(ctx),
		Name:         input.Name,
		Description:  input.Description,
		NightlyPrice: input.NightlyPrice,
		MaxOccupancy: input.MaxOccupancy,
		BedCount:     input.BedCount,
		Amenities:    input.Amenities,
	}
	if err := storage.DB.Create(&roomType).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "room_type.create", "room_type", roomType.ID, nil, roomType)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": roomType})
}

func ListRoomTypes(ctx iris.Context) {
	var roomTypes []models.RoomType
	if err := storage.DB.Where("property_id = ?", utils.PropertyScope(ctx)).
		Order("name ASC").Find(&roomTypes).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": roomTypes})
}

func UpdateRoomType(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var roomType models.RoomType
	if err := storage.DB.Where("id = ? AND property_id = ?", id, utils.PropertyScope(ctx)).First(&roomType).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input RoomTypeInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := roomType
	roomType.Name = input.Name
	roomType.Description = input.Description
	roomType.NightlyPrice = input.NightlyPrice
	roomType.MaxOccupancy = input.MaxOccupancy
	roomType.BedCount = input.BedCount
	roomType.Amenities = input.Amenities

	if err := storage.DB.Save(&roomType).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "room_type.update", "room_type", roomType.ID, before, roomType)
	ctx.JSON(iris.Map{"data": roomType})
}

func DeleteRoomType(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_request", "invalid id")
		return
	}

	var roomType models.RoomType
	if err := storage.DB.Where("id = ? AND property_id = ?", id, utils.PropertyScope(ctx)).First(&roomType).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var roomCount int64
	storage.DB.Model(&models.Room{}).Where("room_type_id = ?", id).Count(&roomCount)
	if roomCount > 0 {
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "room type still has rooms attached")
		return
	}

	if err := storage.DB.Delete(&roomType).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "room_type.delete", "room_type", roomType.ID, roomType, nil)
	ctx.JSON(iris.Map{"success": true})
}
