package services

import (
	"errors"
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"

	"gorm.io/gorm"
)

// RecordPaymentInput describes one payment to post against a booking.
// AllowOverpayment must be set explicitly when the amount would push the
// booking's paid total past the invoice total (deposits, refund setups).
type RecordPaymentInput struct {
	Amount           float64
	Method           string
	Reference        string
	AllowOverpayment bool
}

// RecordPayment posts an immutable payment row and rolls the booking's
// payment status forward. Negative amounts are refund entries and are always
// allowed.
func RecordPayment(db *gorm.DB, bookingID uint, input RecordPaymentInput, staffID uint) (*models.Payment, error) {
	if input.Amount == 0 {
		return nil, invalidRequest("payment amount must not be zero")
	}

	var created models.Payment

	err := db.Transaction(func(tx *gorm.DB) error {
		booking, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}

		var paid float64
		if err := tx.Model(&models.Payment{}).
			Where("booking_id = ? AND status = ?", bookingID, models.PaymentCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&paid).Error; err != nil {
			return internalError("failed to sum payments: " + err.Error())
		}

		var invoiceID *uint
		var invoice models.Invoice
		err = tx.Where("booking_id = ?", bookingID).First(&invoice).Error
		switch {
		case err == nil:
			invoiceID = &invoice.ID
			if input.Amount > 0 && !input.AllowOverpayment && paid+input.Amount > invoice.Total {
				return conflict("payment would exceed the invoice total; flag it as overpayment to proceed")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Pre-invoice deposits are fine; the cap only applies once an
			// invoice exists.
		default:
			return internalError("failed to load invoice: " + err.Error())
		}

		payment := models.Payment{
			BookingID: bookingID,
			InvoiceID: invoiceID,
			Amount:    input.Amount,
			Method:    input.Method,
			Reference: input.Reference,
			Status:    models.PaymentCompleted,
			PaidAt:    time.Now(),
			StaffID:   staffID,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return internalError("failed to record payment: " + err.Error())
		}

		paid += input.Amount

		if invoiceID != nil {
			invoice.BalanceDue = roundMoney(invoice.Total - paid)
			if err := tx.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
				Update("balance_due", invoice.BalanceDue).Error; err != nil {
				return internalError("failed to update invoice balance: " + err.Error())
			}
			booking.PaymentStatus = paymentStatusFor(paid, invoice.Total)
		} else if paid > 0 {
			booking.PaymentStatus = models.PaymentStatusPartiallyPaid
		}

		if err := tx.Save(booking).Error; err != nil {
			return internalError("failed to update booking: " + err.Error())
		}

		created = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func paymentStatusFor(paid, total float64) string {
	switch {
	case paid <= 0:
		return models.PaymentStatusUnpaid
	case paid < total:
		return models.PaymentStatusPartiallyPaid
	default:
		return models.PaymentStatusPaid
	}
}
