package services

import (
	"testing"
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"
)

func TestAssignRoom(t *testing.T) {
	db := openTestDB(t)
	property, roomType, room := seedRoom(t, db, "201", 150)

	booking := seedBooking(t, db, property.ID, models.BookingStatusConfirmed,
		date(2026, time.July, 1), date(2026, time.July, 4))

	result, err := AssignRoom(db, booking.ID, room.ID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Room.Status != models.RoomStatusReserved {
		t.Fatalf("expected room reserved, got %s", result.Room.Status)
	}
	if result.RoomBooking.RatePerNight != roomType.NightlyPrice {
		t.Fatalf("expected frozen rate %v, got %v", roomType.NightlyPrice, result.RoomBooking.RatePerNight)
	}
	if result.RoomBooking.Nights != 3 {
		t.Fatalf("expected 3 nights, got %d", result.RoomBooking.Nights)
	}

	// Later price edits must not reprice the existing assignment.
	if err := db.Model(&models.RoomType{}).Where("id = ?", roomType.ID).
		Update("nightly_price", 999).Error; err != nil {
		t.Fatalf("failed to update price: %v", err)
	}
	var rb models.RoomBooking
	if err := db.Where("booking_id = ?", booking.ID).First(&rb).Error; err != nil {
		t.Fatalf("failed to reload assignment: %v", err)
	}
	if rb.RatePerNight != 150 {
		t.Fatalf("expected rate to stay frozen at 150, got %v", rb.RatePerNight)
	}
}

func TestAssignRoom_RequiresConfirmedBooking(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "201", 150)

	booking := seedBooking(t, db, property.ID, models.BookingStatusPending,
		date(2026, time.July, 1), date(2026, time.July, 4))

	if _, err := AssignRoom(db, booking.ID, room.ID, 1); KindOf(err) != KindConflict {
		t.Fatalf("expected conflict for pending booking, got %v", err)
	}
}

func TestAssignRoom_RejectsOverlappingStay(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "201", 150)

	first := seedBooking(t, db, property.ID, models.BookingStatusConfirmed,
		date(2026, time.July, 1), date(2026, time.July, 5))
	seedAssignment(t, db, first, room, 150)

	second := seedBooking(t, db, property.ID, models.BookingStatusConfirmed,
		date(2026, time.July, 3), date(2026, time.July, 7))
	if _, err := AssignRoom(db, second.ID, room.ID, 1); KindOf(err) != KindConflict {
		t.Fatalf("expected conflict for overlapping dates, got %v", err)
	}

	// Back-to-back on the checkout day is allowed.
	third := seedBooking(t, db, property.ID, models.BookingStatusConfirmed,
		date(2026, time.July, 5), date(2026, time.July, 7))
	if _, err := AssignRoom(db, third.ID, room.ID, 1); err != nil {
		t.Fatalf("expected back-to-back assignment to succeed, got %v", err)
	}
}

func TestAssignRoom_RejectsUnbookableRoom(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "201", 150)

	if err := db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("status", models.RoomStatusOutOfOrder).Error; err != nil {
		t.Fatalf("failed to update room: %v", err)
	}

	booking := seedBooking(t, db, property.ID, models.BookingStatusConfirmed,
		date(2026, time.July, 1), date(2026, time.July, 4))
	if _, err := AssignRoom(db, booking.ID, room.ID, 1); KindOf(err) != KindConflict {
		t.Fatalf("expected conflict for out_of_order room, got %v", err)
	}
}

func TestCheckIn(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "301", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusConfirmed,
		date(2026, time.August, 1), date(2026, time.August, 3))
	seedAssignment(t, db, booking, room, 100)

	result, err := CheckIn(db, booking.ID, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Booking.Status != models.BookingStatusCheckedIn {
		t.Fatalf("expected checked_in, got %s", result.Booking.Status)
	}
	if result.Room.Status != models.RoomStatusOccupied {
		t.Fatalf("expected occupied room, got %s", result.Room.Status)
	}

	var logs []models.CheckInLog
	if err := db.Where("booking_id = ?", booking.ID).Find(&logs).Error; err != nil {
		t.Fatalf("failed to load log: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != models.CheckInLogActionCheckIn {
		t.Fatalf("expected one check_in log entry, got %d", len(logs))
	}
	if logs[0].StaffID != 7 {
		t.Fatalf("expected staff 7 on log entry, got %d", logs[0].StaffID)
	}

	// Second check-in must fail and must not mint another log row.
	if _, err := CheckIn(db, booking.ID, 7); KindOf(err) != KindConflict {
		t.Fatalf("expected conflict on double check-in, got %v", err)
	}
	var count int64
	db.Model(&models.CheckInLog{}).Where("booking_id = ?", booking.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected log to stay at 1 entry, got %d", count)
	}
}

func TestCheckIn_RequiresRoomAssignment(t *testing.T) {
	db := openTestDB(t)
	property, _, _ := seedRoom(t, db, "301", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusConfirmed,
		date(2026, time.August, 1), date(2026, time.August, 3))

	if _, err := CheckIn(db, booking.ID, 1); KindOf(err) != KindInvalidRequest {
		t.Fatalf("expected invalid_request without assignment, got %v", err)
	}
}

func TestCheckOut(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "302", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusCheckedIn,
		date(2026, time.August, 1), date(2026, time.August, 3))
	seedAssignment(t, db, booking, room, 100)
	if err := db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("status", models.RoomStatusOccupied).Error; err != nil {
		t.Fatalf("failed to occupy room: %v", err)
	}

	// 2 nights x 100 room charge, 100 paid -> 100 still owing at departure.
	if err := db.Create(&models.Payment{
		BookingID: booking.ID, Amount: 100, Method: "cash",
		Status: models.PaymentCompleted, PaidAt: time.Now(),
	}).Error; err != nil {
		t.Fatalf("failed to create payment: %v", err)
	}

	result, err := CheckOut(db, booking.ID, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Booking.Status != models.BookingStatusCheckedOut {
		t.Fatalf("expected checked_out, got %s", result.Booking.Status)
	}
	if result.Room.Status != models.RoomStatusCleaning || result.Room.Cleanliness != models.CleanlinessDirty {
		t.Fatalf("expected cleaning/dirty room, got %s/%s", result.Room.Status, result.Room.Cleanliness)
	}
	if !result.BalanceDue || result.Balance != 100 {
		t.Fatalf("expected balance due of 100, got %v (due=%v)", result.Balance, result.BalanceDue)
	}
	if result.BalanceUnknown {
		t.Fatalf("expected a confirmed balance on a healthy folio")
	}

	var logs []models.CheckInLog
	db.Where("booking_id = ? AND action = ?", booking.ID, models.CheckInLogActionCheckOut).Find(&logs)
	if len(logs) != 1 {
		t.Fatalf("expected one check_out log entry, got %d", len(logs))
	}

	// Departure is terminal; a second check-out is a conflict.
	if _, err := CheckOut(db, booking.ID, 7); KindOf(err) != KindConflict {
		t.Fatalf("expected conflict on double check-out, got %v", err)
	}
}

func TestCheckOut_BalanceUnknownWhenFolioDegraded(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "303", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusCheckedIn,
		date(2026, time.August, 1), date(2026, time.August, 3))
	seedAssignment(t, db, booking, room, 100)
	if err := db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("status", models.RoomStatusOccupied).Error; err != nil {
		t.Fatalf("failed to occupy room: %v", err)
	}

	// Take the restaurant source offline. Departure must still succeed, but
	// the balance is flagged unconfirmed rather than reported as settled.
	if err := db.Migrator().DropTable(&models.FoodOrder{}); err != nil {
		t.Fatalf("failed to drop food orders table: %v", err)
	}

	result, err := CheckOut(db, booking.ID, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Booking.Status != models.BookingStatusCheckedOut {
		t.Fatalf("expected checked_out, got %s", result.Booking.Status)
	}
	if !result.BalanceUnknown {
		t.Fatalf("expected balance flagged unknown on a degraded folio")
	}
}

func TestUpdateHousekeeping(t *testing.T) {
	db := openTestDB(t)
	_, _, room := seedRoom(t, db, "401", 100)

	updated, err := UpdateHousekeeping(db, room.ID, models.RoomStatusMaintenance, "", 3, "leaking shower")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.RoomStatusMaintenance {
		t.Fatalf("expected maintenance, got %s", updated.Status)
	}

	updated, err = UpdateHousekeeping(db, room.ID, models.RoomStatusAvailable, models.CleanlinessInspected, 3, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.RoomStatusAvailable || updated.Cleanliness != models.CleanlinessInspected {
		t.Fatalf("expected available/inspected, got %s/%s", updated.Status, updated.Cleanliness)
	}

	var logs []models.HousekeepingLog
	if err := db.Where("room_id = ?", room.ID).Order("id ASC").Find(&logs).Error; err != nil {
		t.Fatalf("failed to load log: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(logs))
	}
	if logs[0].PreviousStatus != models.RoomStatusAvailable || logs[0].NewStatus != models.RoomStatusMaintenance {
		t.Fatalf("expected available->maintenance transition, got %s->%s", logs[0].PreviousStatus, logs[0].NewStatus)
	}
	if logs[0].Reason != "leaking shower" {
		t.Fatalf("expected reason on log entry, got %q", logs[0].Reason)
	}
	if logs[1].PreviousStatus != models.RoomStatusMaintenance || logs[1].NewStatus != models.RoomStatusAvailable {
		t.Fatalf("expected maintenance->available transition, got %s->%s", logs[1].PreviousStatus, logs[1].NewStatus)
	}
}

func TestUpdateHousekeeping_Rejections(t *testing.T) {
	db := openTestDB(t)
	_, _, room := seedRoom(t, db, "402", 100)

	if _, err := UpdateHousekeeping(db, room.ID, "occupied", "", 1, ""); KindOf(err) != KindInvalidRequest {
		t.Fatalf("expected invalid_request for occupancy status, got %v", err)
	}
	if _, err := UpdateHousekeeping(db, room.ID, "", "", 1, ""); KindOf(err) != KindInvalidRequest {
		t.Fatalf("expected invalid_request for empty update, got %v", err)
	}

	if err := db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("status", models.RoomStatusOccupied).Error; err != nil {
		t.Fatalf("failed to occupy room: %v", err)
	}
	if _, err := UpdateHousekeeping(db, room.ID, models.RoomStatusCleaning, "", 1, ""); KindOf(err) != KindConflict {
		t.Fatalf("expected conflict for occupied room, got %v", err)
	}
}

func TestDisplayStatus(t *testing.T) {
	room := &models.Room{Status: models.RoomStatusOccupied, Cleanliness: models.CleanlinessDirty}
	if s := DisplayStatus(room); s != "occupied-dirty" {
		t.Fatalf("expected occupied-dirty, got %s", s)
	}
	room.Cleanliness = ""
	if s := DisplayStatus(room); s != "occupied" {
		t.Fatalf("expected bare status without cleanliness, got %s", s)
	}
}

func TestMarkNoShow(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "501", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusConfirmed,
		date(2026, time.September, 1), date(2026, time.September, 3))
	seedAssignment(t, db, booking, room, 100)
	if err := db.Model(&models.Room{}).Where("id = ?", room.ID).
		Update("status", models.RoomStatusReserved).Error; err != nil {
		t.Fatalf("failed to reserve room: %v", err)
	}

	updated, err := MarkNoShow(db, booking.ID, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.BookingStatusNoShow {
		t.Fatalf("expected no_show, got %s", updated.Status)
	}

	var freed models.Room
	db.First(&freed, room.ID)
	if freed.Status != models.RoomStatusAvailable {
		t.Fatalf("expected room released to available, got %s", freed.Status)
	}

	// The dates are free again for another booking.
	available, err := IsRoomAvailable(db, room.ID, booking.CheckInDate, booking.CheckOutDate, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !available {
		t.Fatal("no-show stay should release the dates")
	}
}

func TestCancelBooking(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "502", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusConfirmed,
		date(2026, time.September, 10), date(2026, time.September, 12))
	seedAssignment(t, db, booking, room, 100)

	updated, err := CancelBooking(db, booking.ID, 1, "guest request")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.BookingStatusCancelled || updated.CancelReason != "guest request" {
		t.Fatalf("expected cancelled with reason, got %s / %q", updated.Status, updated.CancelReason)
	}

	// Terminal states cannot be cancelled again.
	if _, err := CancelBooking(db, booking.ID, 1, "again"); KindOf(err) != KindConflict {
		t.Fatalf("expected conflict cancelling a cancelled booking, got %v", err)
	}

	checkedIn := seedBooking(t, db, property.ID, models.BookingStatusCheckedIn,
		date(2026, time.October, 1), date(2026, time.October, 3))
	if _, err := CancelBooking(db, checkedIn.ID, 1, "too late"); KindOf(err) != KindConflict {
		t.Fatalf("expected conflict cancelling a checked-in booking, got %v", err)
	}
}
