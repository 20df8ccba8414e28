package services

import (
	"testing"
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"
)

func TestRecordPayment_BeforeInvoice(t *testing.T) {
	db := openTestDB(t)
	property, _, _ := seedRoom(t, db, "901", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusConfirmed,
		date(2026, time.December, 1), date(2026, time.December, 3))

	payment, err := RecordPayment(db, booking.ID, RecordPaymentInput{
		Amount: 500, Method: "cash", Reference: "DEP-1",
	}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Status != models.PaymentCompleted {
		t.Fatalf("expected completed payment, got %s", payment.Status)
	}
	if payment.InvoiceID != nil {
		t.Fatal("expected no invoice link before invoicing")
	}

	var reloaded models.Booking
	db.First(&reloaded, booking.ID)
	if reloaded.PaymentStatus != models.PaymentStatusPartiallyPaid {
		t.Fatalf("expected partially_paid before invoicing, got %s", reloaded.PaymentStatus)
	}
}

func TestRecordPayment_RollsStatusAgainstInvoice(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "902", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusCheckedOut,
		date(2026, time.December, 1), date(2026, time.December, 3))
	seedAssignment(t, db, booking, room, 100)

	invoice, err := GenerateInvoice(db, booking.ID, GenerateInvoiceInput{}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.Total != 200 {
		t.Fatalf("expected total 200, got %v", invoice.Total)
	}

	if _, err := RecordPayment(db, booking.ID, RecordPaymentInput{Amount: 80, Method: "card"}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var reloaded models.Booking
	db.First(&reloaded, booking.ID)
	if reloaded.PaymentStatus != models.PaymentStatusPartiallyPaid {
		t.Fatalf("expected partially_paid, got %s", reloaded.PaymentStatus)
	}

	payment, err := RecordPayment(db, booking.ID, RecordPaymentInput{Amount: 120, Method: "card"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.InvoiceID == nil || *payment.InvoiceID != invoice.ID {
		t.Fatal("expected payment linked to the invoice")
	}

	db.First(&reloaded, booking.ID)
	if reloaded.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("expected paid after settling, got %s", reloaded.PaymentStatus)
	}

	settled, err := GetInvoice(db, invoice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settled.BalanceDue != 0 {
		t.Fatalf("expected zero balance due, got %v", settled.BalanceDue)
	}
}

func TestRecordPayment_OverpaymentGuard(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "903", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusCheckedOut,
		date(2026, time.December, 1), date(2026, time.December, 3))
	seedAssignment(t, db, booking, room, 100)

	if _, err := GenerateInvoice(db, booking.ID, GenerateInvoiceInput{}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 250 against a 200 invoice needs the explicit flag.
	if _, err := RecordPayment(db, booking.ID, RecordPaymentInput{Amount: 250, Method: "card"}, 1); KindOf(err) != KindConflict {
		t.Fatalf("expected conflict on overpayment, got %v", err)
	}

	payment, err := RecordPayment(db, booking.ID, RecordPaymentInput{
		Amount: 250, Method: "card", AllowOverpayment: true,
	}, 1)
	if err != nil {
		t.Fatalf("expected flagged overpayment to pass, got %v", err)
	}
	if payment.Amount != 250 {
		t.Fatalf("expected amount 250, got %v", payment.Amount)
	}
}

func TestRecordPayment_RefundEntry(t *testing.T) {
	db := openTestDB(t)
	property, _, _ := seedRoom(t, db, "904", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusConfirmed,
		date(2026, time.December, 1), date(2026, time.December, 3))

	if _, err := RecordPayment(db, booking.ID, RecordPaymentInput{Amount: 100, Method: "cash"}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Refunds are negative entries and never capped.
	if _, err := RecordPayment(db, booking.ID, RecordPaymentInput{Amount: -40, Method: "cash", Reference: "refund"}, 1); err != nil {
		t.Fatalf("unexpected error on refund: %v", err)
	}

	folio, err := BuildFolio(db, booking.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if folio.TotalPayments != 60 {
		t.Fatalf("expected net payments 60, got %v", folio.TotalPayments)
	}
}

func TestRecordPayment_RejectsZeroAmount(t *testing.T) {
	db := openTestDB(t)
	property, _, _ := seedRoom(t, db, "905", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusConfirmed,
		date(2026, time.December, 1), date(2026, time.December, 3))

	if _, err := RecordPayment(db, booking.ID, RecordPaymentInput{Amount: 0, Method: "cash"}, 1); KindOf(err) != KindInvalidRequest {
		t.Fatalf("expected invalid_request for zero amount, got %v", err)
	}
}
