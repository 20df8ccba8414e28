package routes

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

var statsContext = context.Background()

type dashboardStats struct {
	Rooms           map[string]int64 `json:"rooms"`
	ArrivalsToday   int64            `json:"arrivalsToday"`
	DeparturesToday int64            `json:"departuresToday"`
	InHouse         int64            `json:"inHouse"`
	RevenueMonth    float64          `json:"revenueMonth"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

// GET /api/admin/stats — occupancy and revenue counters for the dashboard,
// cached in Redis for 60 seconds. Availability and folio data are never
// cached; these aggregates are display-only.
func AdminGetStats(ctx iris.Context) {
	propertyID := utils.PropertyScope(ctx)
	cacheKey := "stats:" + time.Now().Format("20060102") + ":" + strconv.FormatUint(uint64(propertyID), 10)

	if storage.Redis != nil {
		if cached, err := storage.Redis.Get(statsContext, cacheKey).Result(); err == nil {
			var stats dashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				ctx.JSON(iris.Map{"data": stats, "cached": true})
				return
			}
		}
	}

	stats := dashboardStats{Rooms: map[string]int64{}, GeneratedAt: time.Now()}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := storage.DB.Model(&models.Room{}).
		Select("status, COUNT(*) as count").
		Where("property_id = ?", propertyID).
		Group("status").
		Scan(&counts).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	for _, c := range counts {
		stats.Rooms[c.Status] = c.Count
	}

	today := time.Now().Truncate(24 * time.Hour)
	tomorrow := today.AddDate(0, 0, 1)

	storage.DB.Model(&models.Booking{}).
		Where("property_id = ? AND status = ? AND check_in_date >= ? AND check_in_date < ?",
			propertyID, models.BookingStatusConfirmed, today, tomorrow).
		Count(&stats.ArrivalsToday)

	storage.DB.Model(&models.Booking{}).
		Where("property_id = ? AND status = ? AND check_out_date >= ? AND check_out_date < ?",
			propertyID, models.BookingStatusCheckedIn, today, tomorrow).
		Count(&stats.DeparturesToday)

	storage.DB.Model(&models.Booking{}).
		Where("property_id = ? AND status = ?", propertyID, models.BookingStatusCheckedIn).
		Count(&stats.InHouse)

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	storage.DB.Model(&models.Invoice{}).
		Where("property_id = ? AND issued_at >= ?", propertyID, monthStart).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.RevenueMonth)

	if storage.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			storage.Redis.Set(statsContext, cacheKey, payload, 60*time.Second)
		}
	}

	ctx.JSON(iris.Map{"data": stats, "cached": false})
}
