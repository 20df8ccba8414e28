package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentCompleted = "completed"
	PaymentVoided    = "voided"
)

// Payment records money received against a booking (and optionally a specific
// invoice). Rows are immutable once recorded; refunds are new negative
// entries.
type Payment struct {
	gorm.Model
	BookingID uint      `json:"bookingID" gorm:"index;not null"`
	InvoiceID *uint     `json:"invoiceID,omitempty" gorm:"index"`
	Amount    float64   `json:"amount" gorm:"not null"`
	Method    string    `json:"method" gorm:"type:varchar(30)"` // cash, card, bank-transfer, mobile-money
	Reference string    `json:"reference" gorm:"type:varchar(64)"`
	Status    string    `json:"status" gorm:"type:varchar(20);default:'completed'"`
	PaidAt    time.Time `json:"paidAt"`
	StaffID   uint      `json:"staffID"`

	Booking Booking `json:"-" gorm:"foreignKey:BookingID"`
}
