package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GenerateInvoiceInput captures the rates applied at invoice time. Rates live
// here and not in the folio: the running folio balance is always pre-tax.
type GenerateInvoiceInput struct {
	TaxRatePct       float64
	ServiceChargePct float64
	DiscountAmount   float64
	Notes            string
}

// GenerateInvoice freezes the booking's folio into a uniquely numbered
// invoice, at most once per booking. The duplicate check, the sequence
// allocation and the insert all happen inside one transaction, so concurrent
// calls cannot mint the same number or a second invoice.
func GenerateInvoice(db *gorm.DB, bookingID uint, input GenerateInvoiceInput, staffID uint) (*models.Invoice, error) {
	if input.TaxRatePct < 0 || input.ServiceChargePct < 0 {
		return nil, invalidRequest("tax and service charge rates must not be negative")
	}
	if input.DiscountAmount < 0 {
		return nil, invalidRequest("discount must not be negative")
	}

	var created models.Invoice

	err := db.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}

		// At-most-once: the check runs inside the same transaction as the
		// insert, with the unique index on booking_id as backstop.
		var existing models.Invoice
		err = tx.Where("booking_id = ?", bookingID).First(&existing).Error
		if err == nil {
			return conflict("booking already has invoice " + existing.InvoiceNumber)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return internalError("failed to check for existing invoice: " + err.Error())
		}

		folio, err := BuildFolio(tx, bookingID)
		if err != nil {
			return err
		}
		if folio.Degraded {
			// An invoice must snapshot the authoritative subtotal; a partial
			// folio cannot be frozen.
			return &Error{Kind: KindUnavailable, Message: "folio sources unavailable, cannot generate invoice now"}
		}

		subtotal := roundMoney(folio.Subtotal)
		tax := roundMoney(subtotal * input.TaxRatePct / 100)
		serviceCharge := roundMoney(subtotal * input.ServiceChargePct / 100)
		total := roundMoney(subtotal + tax + serviceCharge - input.DiscountAmount)

		number, err := nextInvoiceNumber(tx, booking.PropertyID, time.Now())
		if err != nil {
			return err
		}

		invoice := models.Invoice{
			PropertyID:    booking.PropertyID,
			BookingID:     booking.ID,
			InvoiceNumber: number,
			Subtotal:      subtotal,
			Tax:           tax,
			ServiceCharge: serviceCharge,
			Discount:      input.DiscountAmount,
			Total:         total,
			BalanceDue:    total,
			Notes:         input.Notes,
			BrandingJSON:  brandingSnapshot(tx, booking.PropertyID),
			IssuedByID:    staffID,
			IssuedAt:      time.Now(),
		}
		for _, line := range folio.Charges {
			invoice.Items = append(invoice.Items, models.InvoiceItem{
				Category:    line.Category,
				Description: line.Description,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				Total:       line.Total,
			})
		}

		if err := tx.Create(&invoice).Error; err != nil {
			return internalError("failed to create invoice: " + err.Error())
		}

		created = invoice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// nextInvoiceNumber allocates the next number for the property's current
// numbering period (calendar month). The sequence row is created if missing
// and locked FOR UPDATE before the increment, so allocation is atomic; no
// "SELECT max(number)+1".
func nextInvoiceNumber(tx *gorm.DB, propertyID uint, now time.Time) (string, error) {
	period := now.Format("200601")

	seed := models.InvoiceSequence{PropertyID: propertyID, Period: period, LastNumber: 0}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return "", internalError("failed to seed invoice sequence: " + err.Error())
	}

	var seq models.InvoiceSequence
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("property_id = ? AND period = ?", propertyID, period).
		First(&seq).Error; err != nil {
		return "", internalError("failed to lock invoice sequence: " + err.Error())
	}

	seq.LastNumber++
	if err := tx.Save(&seq).Error; err != nil {
		return "", internalError("failed to advance invoice sequence: " + err.Error())
	}

	prefix := "INV"
	var settings models.PropertySettings
	if err := tx.Where("property_id = ?", propertyID).First(&settings).Error; err == nil && settings.InvoicePrefix != "" {
		prefix = settings.InvoicePrefix
	}

	return fmt.Sprintf("%s-%s-%04d", prefix, period, seq.LastNumber), nil
}

// brandingSnapshot copies the property's branding into the invoice so the
// rendered document survives later settings edits. A missing settings row
// yields empty branding, not a failure.
func brandingSnapshot(tx *gorm.DB, propertyID uint) []byte {
	var settings models.PropertySettings
	if err := tx.Where("property_id = ?", propertyID).First(&settings).Error; err != nil {
		return []byte(`{}`)
	}
	snapshot, err := json.Marshal(map[string]string{
		"legalName":  settings.LegalName,
		"logoURL":    settings.LogoURL,
		"taxID":      settings.TaxID,
		"footerNote": settings.FooterNote,
	})
	if err != nil {
		return []byte(`{}`)
	}
	return snapshot
}

// GetInvoice loads an invoice with its frozen items and linked payments.
func GetInvoice(db *gorm.DB, invoiceID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := db.Preload("Items").Preload("Payments").First(&invoice, invoiceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("invoice not found")
	}
	if err != nil {
		return nil, internalError("failed to load invoice: " + err.Error())
	}
	return &invoice, nil
}

// GetInvoiceByBooking resolves the at-most-one invoice of a booking.
func GetInvoiceByBooking(db *gorm.DB, bookingID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := db.Preload("Items").Preload("Payments").Where("booking_id = ?", bookingID).First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("no invoice for this booking")
	}
	if err != nil {
		return nil, internalError("failed to load invoice: " + err.Error())
	}
	return &invoice, nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
