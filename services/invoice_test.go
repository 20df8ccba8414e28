package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"
)

func TestGenerateInvoice(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "701", 150)

	booking := seedBooking(t, db, property.ID, models.BookingStatusCheckedOut,
		date(2026, time.November, 1), date(2026, time.November, 3))
	seedAssignment(t, db, booking, room, 150)

	invoice, err := GenerateInvoice(db, booking.ID, GenerateInvoiceInput{
		TaxRatePct:       10,
		ServiceChargePct: 5,
		DiscountAmount:   15,
	}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2 nights x 150 = 300; +10% tax, +5% service, -15 discount.
	if invoice.Subtotal != 300 {
		t.Fatalf("expected subtotal 300, got %v", invoice.Subtotal)
	}
	if invoice.Tax != 30 || invoice.ServiceCharge != 15 {
		t.Fatalf("expected tax 30 / service 15, got %v / %v", invoice.Tax, invoice.ServiceCharge)
	}
	if invoice.Total != 330 {
		t.Fatalf("expected total 330, got %v", invoice.Total)
	}
	if invoice.BalanceDue != invoice.Total {
		t.Fatalf("expected balance due %v, got %v", invoice.Total, invoice.BalanceDue)
	}

	wanted := fmt.Sprintf("INV-%s-0001", time.Now().Format("200601"))
	if invoice.InvoiceNumber != wanted {
		t.Fatalf("expected number %s, got %s", wanted, invoice.InvoiceNumber)
	}
	if len(invoice.Items) != 1 {
		t.Fatalf("expected 1 frozen item, got %d", len(invoice.Items))
	}
	if string(invoice.BrandingJSON) != "{}" {
		t.Fatalf("expected empty branding without settings, got %s", invoice.BrandingJSON)
	}
	if invoice.IssuedByID != 4 {
		t.Fatalf("expected issuer 4, got %d", invoice.IssuedByID)
	}
}

func TestGenerateInvoice_AtMostOncePerBooking(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "702", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusCheckedOut,
		date(2026, time.November, 1), date(2026, time.November, 3))
	seedAssignment(t, db, booking, room, 100)

	if _, err := GenerateInvoice(db, booking.ID, GenerateInvoiceInput{}, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := GenerateInvoice(db, booking.ID, GenerateInvoiceInput{}, 1); KindOf(err) != KindConflict {
		t.Fatalf("expected conflict on second invoice, got %v", err)
	}

	var count int64
	db.Model(&models.Invoice{}).Where("booking_id = ?", booking.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 invoice, got %d", count)
	}
}

func TestGenerateInvoice_SequentialNumbers(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "703", 100)

	period := time.Now().Format("200601")
	for i := 1; i <= 3; i++ {
		booking := seedBooking(t, db, property.ID, models.BookingStatusCheckedOut,
			date(2026, time.November, 1), date(2026, time.November, 3))
		seedAssignment(t, db, booking, room, 100)

		invoice, err := GenerateInvoice(db, booking.ID, GenerateInvoiceInput{}, 1)
		if err != nil {
			t.Fatalf("unexpected error on invoice %d: %v", i, err)
		}
		wanted := fmt.Sprintf("INV-%s-%04d", period, i)
		if invoice.InvoiceNumber != wanted {
			t.Fatalf("expected %s, got %s", wanted, invoice.InvoiceNumber)
		}
	}
}

func TestGenerateInvoice_UsesSettingsPrefixAndBranding(t *testing.T) {
	db := openTestDB(t)
	property, _, room := seedRoom(t, db, "704", 100)

	if err := db.Create(&models.PropertySettings{
		PropertyID:    property.ID,
		LegalName:     "Grand Lodge Ltd",
		InvoicePrefix: "GLH",
	}).Error; err != nil {
		t.Fatalf("failed to create settings: %v", err)
	}

	booking := seedBooking(t, db, property.ID, models.BookingStatusCheckedOut,
		date(2026, time.November, 1), date(2026, time.November, 3))
	seedAssignment(t, db, booking, room, 100)

	invoice, err := GenerateInvoice(db, booking.ID, GenerateInvoiceInput{}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wanted := fmt.Sprintf("GLH-%s-0001", time.Now().Format("200601"))
	if invoice.InvoiceNumber != wanted {
		t.Fatalf("expected %s, got %s", wanted, invoice.InvoiceNumber)
	}

	// Branding snapshot survives later settings edits.
	if err := db.Model(&models.PropertySettings{}).Where("property_id = ?", property.ID).
		Update("legal_name", "Renamed Ltd").Error; err != nil {
		t.Fatalf("failed to update settings: %v", err)
	}
	reloaded, err := GetInvoice(db, invoice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `"legalName":"Grand Lodge Ltd"`; !strings.Contains(string(reloaded.BrandingJSON), want) {
		t.Fatalf("expected branding snapshot to keep %s, got %s", want, reloaded.BrandingJSON)
	}
}

func TestGenerateInvoice_RejectsNegativeRates(t *testing.T) {
	db := openTestDB(t)
	property, _, _ := seedRoom(t, db, "705", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusCheckedOut,
		date(2026, time.November, 1), date(2026, time.November, 3))

	if _, err := GenerateInvoice(db, booking.ID, GenerateInvoiceInput{TaxRatePct: -1}, 1); KindOf(err) != KindInvalidRequest {
		t.Fatalf("expected invalid_request for negative tax, got %v", err)
	}
	if _, err := GenerateInvoice(db, booking.ID, GenerateInvoiceInput{DiscountAmount: -5}, 1); KindOf(err) != KindInvalidRequest {
		t.Fatalf("expected invalid_request for negative discount, got %v", err)
	}
}

func TestGetInvoiceByBooking_NotFound(t *testing.T) {
	db := openTestDB(t)
	property, _, _ := seedRoom(t, db, "706", 100)

	booking := seedBooking(t, db, property.ID, models.BookingStatusCheckedOut,
		date(2026, time.November, 1), date(2026, time.November, 3))

	if _, err := GetInvoiceByBooking(db, booking.ID); KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}
