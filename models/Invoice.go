package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invoice is the frozen bill for one booking. At most one invoice may ever
// exist per booking (uniqueIndex on BookingID); totals are a snapshot taken
// at generation time and never recomputed.
type Invoice struct {
	gorm.Model
	PropertyID    uint    `json:"propertyID" gorm:"index;not null"`
	BookingID     uint    `json:"bookingID" gorm:"uniqueIndex;not null"`
	InvoiceNumber string  `json:"invoiceNumber" gorm:"type:varchar(32);uniqueIndex;not null"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	ServiceCharge float64 `json:"serviceCharge"`
	Discount      float64 `json:"discount"`
	Total         float64 `json:"total"`
	BalanceDue    float64 `json:"balanceDue"`
	Notes         string  `json:"notes" gorm:"type:text"`

	// Branding snapshot copied from PropertySettings at issue time so the
	// rendered document survives later settings edits.
	BrandingJSON datatypes.JSON `json:"branding"`

	IssuedByID uint      `json:"issuedByID"`
	IssuedAt   time.Time `json:"issuedAt"`

	Items    []InvoiceItem `json:"items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Payments []Payment     `json:"payments,omitempty" gorm:"foreignKey:InvoiceID"`
	Booking  Booking       `json:"-" gorm:"foreignKey:BookingID"`
}

// InvoiceItem is an immutable copy of one folio line at generation time.
type InvoiceItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	InvoiceID   uint    `json:"-" gorm:"index;not null"`
	Category    string  `json:"category" gorm:"type:varchar(20)"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// InvoiceSequence holds the last allocated number per property and numbering
// period (calendar month, "YYYYMM"). The row is locked FOR UPDATE inside the
// invoice transaction so concurrent generators cannot mint the same number.
type InvoiceSequence struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	PropertyID uint      `json:"propertyID" gorm:"uniqueIndex:idx_invoice_seq_period;not null"`
	Period     string    `json:"period" gorm:"type:varchar(6);uniqueIndex:idx_invoice_seq_period;not null"`
	LastNumber int       `json:"lastNumber" gorm:"not null;default:0"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
