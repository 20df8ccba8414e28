package models

import (
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	Name         string  `json:"name" gorm:"not null"`
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 string  `json:"addressLine2"`
	City         string  `json:"city"`
	Country      string  `json:"country"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	Currency     string  `json:"currency" gorm:"type:varchar(8);default:'USD'"`
	TaxRatePct   float64 `json:"taxRatePct" gorm:"default:0"`
	ServicePct   float64 `json:"servicePct" gorm:"default:0"`
	IsActive     *bool   `json:"isActive" gorm:"default:true"`

	RoomTypes []RoomType `json:"roomTypes,omitempty" gorm:"foreignKey:PropertyID"`
}

// PropertySettings carries the invoice/report branding for a property.
// Absence of a row means "no branding" and is not an error.
type PropertySettings struct {
	gorm.Model
	PropertyID    uint   `json:"propertyID" gorm:"uniqueIndex;not null"`
	LegalName     string `json:"legalName"`
	LogoURL       string `json:"logoURL"`
	TaxID         string `json:"taxID"`
	FooterNote    string `json:"footerNote" gorm:"type:text"`
	InvoicePrefix string `json:"invoicePrefix" gorm:"type:varchar(16);default:'INV'"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}
