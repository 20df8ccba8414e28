package services

import (
	"testing"
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"

	"github.com/google/uuid"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns an isolated in-memory database with the full schema.
// MaxOpenConns(1) keeps every query on the same sqlite connection.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Property{},
		&models.PropertySettings{},
		&models.User{},
		&models.RoomType{},
		&models.Room{},
		&models.Booking{},
		&models.RoomBooking{},
		&models.Charge{},
		&models.Payment{},
		&models.ServiceRequest{},
		&models.FoodOrder{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.InvoiceSequence{},
		&models.HousekeepingLog{},
		&models.CheckInLog{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedRoom creates a property with one room type and one room.
func seedRoom(t *testing.T, db *gorm.DB, roomNumber string, nightlyPrice float64) (models.Property, models.RoomType, models.Room) {
	t.Helper()

	property := models.Property{Name: "Test Hotel " + roomNumber, Currency: "USD"}
	if err := db.Create(&property).Error; err != nil {
		t.Fatalf("failed to create property: %v", err)
	}
	roomType := models.RoomType{PropertyID: property.ID, Name: "Standard", NightlyPrice: nightlyPrice, MaxOccupancy: 2}
	if err := db.Create(&roomType).Error; err != nil {
		t.Fatalf("failed to create room type: %v", err)
	}
	room := models.Room{
		PropertyID:  property.ID,
		RoomTypeID:  roomType.ID,
		RoomNumber:  roomNumber,
		Status:      models.RoomStatusAvailable,
		Cleanliness: models.CleanlinessClean,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	return property, roomType, room
}

// seedBooking creates a booking in the given status, without a room.
func seedBooking(t *testing.T, db *gorm.DB, propertyID uint, status string, checkIn, checkOut time.Time) models.Booking {
	t.Helper()

	booking := models.Booking{
		PropertyID:    propertyID,
		ReferenceCode: "BK-TEST-" + uuid.NewString(),
		Status:        status,
		PaymentStatus: models.PaymentStatusUnpaid,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Nights:        StayNights(checkIn, checkOut),
		GuestName:     "Jane Tester",
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	return booking
}

// seedAssignment binds a booking to a room, freezing the rate.
func seedAssignment(t *testing.T, db *gorm.DB, booking models.Booking, room models.Room, rate float64) models.RoomBooking {
	t.Helper()

	rb := models.RoomBooking{
		BookingID:    booking.ID,
		RoomID:       room.ID,
		CheckInDate:  booking.CheckInDate,
		CheckOutDate: booking.CheckOutDate,
		Nights:       booking.Nights,
		RatePerNight: rate,
		Status:       booking.Status,
		GuestName:    booking.GuestName,
	}
	if err := db.Create(&rb).Error; err != nil {
		t.Fatalf("failed to create room assignment: %v", err)
	}
	return rb
}
