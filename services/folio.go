package services

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/nathanael250/travooz-hms-sub003/models"

	"gorm.io/gorm"
)

// FolioLine is one charge in the computed guest ledger, regardless of which
// subsystem produced it.
type FolioLine struct {
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	Total       float64   `json:"total"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Folio is the live ledger for one stay. It is recomputed on every read and
// never cached; tax and service charge are applied only at invoice time.
type Folio struct {
	BookingID          uint             `json:"bookingID"`
	GuestName          string           `json:"guestName"`
	Charges            []FolioLine      `json:"charges"`
	Payments           []models.Payment `json:"payments"`
	Subtotal           float64          `json:"subtotal"`
	TotalPayments      float64          `json:"totalPayments"`
	Balance            float64          `json:"balance"`
	Degraded           bool             `json:"degraded"`
	UnavailableSources []string         `json:"unavailableSources,omitempty"`
}

// BuildFolio merges the four charge origins (room, ad-hoc, service requests,
// food orders) for a booking into one time-ordered list with running totals.
// Failure of one non-critical source degrades the folio instead of failing
// it: front desk needs a best-effort view even when ancillary subsystems are
// down.
func BuildFolio(db *gorm.DB, bookingID uint) (*Folio, error) {
	var booking models.Booking
	if err := db.First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("booking not found")
		}
		return nil, internalError("failed to load booking: " + err.Error())
	}

	folio := &Folio{
		BookingID: booking.ID,
		GuestName: booking.GuestName,
		Charges:   []FolioLine{},
		Payments:  []models.Payment{},
	}

	degrade := func(source string, err error) {
		log.Printf("folio: source %s unavailable for booking %d: %v", source, bookingID, err)
		folio.Degraded = true
		folio.UnavailableSources = append(folio.UnavailableSources, source)
	}

	// 1. Room charges: nights x frozen nightly rate from each active
	// assignment. Never re-priced from the current RoomType.
	var assignments []models.RoomBooking
	if err := db.Where("booking_id = ?", bookingID).
		Where("status NOT IN ?", []string{models.BookingStatusCancelled, models.BookingStatusNoShow}).
		Preload("Room").
		Find(&assignments).Error; err != nil {
		degrade("room", err)
	} else {
		for _, rb := range assignments {
			desc := fmt.Sprintf("Room charge (%d nights)", rb.Nights)
			if rb.Room.RoomNumber != "" {
				desc = fmt.Sprintf("Room %s (%d nights)", rb.Room.RoomNumber, rb.Nights)
			}
			folio.Charges = append(folio.Charges, FolioLine{
				Category:    models.ChargeCategoryRoom,
				Description: desc,
				Quantity:    rb.Nights,
				UnitPrice:   rb.RatePerNight,
				Total:       float64(rb.Nights) * rb.RatePerNight,
				OccurredAt:  rb.CreatedAt,
			})
		}
	}

	// 2. Stored charge lines recorded directly against the booking (ad-hoc,
	// minibar, corrections).
	var charges []models.Charge
	if err := db.Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&charges).Error; err != nil {
		degrade("charges", err)
	} else {
		for _, c := range charges {
			folio.Charges = append(folio.Charges, FolioLine{
				Category:    c.Category,
				Description: c.Description,
				Quantity:    c.Quantity,
				UnitPrice:   c.UnitPrice,
				Total:       c.Total,
				OccurredAt:  c.CreatedAt,
			})
		}
	}

	// 3. Completed service requests with a surcharge. A request already
	// mirrored into the stored charge list (same description and amount) is
	// counted once; the later duplicate is dropped.
	var requests []models.ServiceRequest
	if err := db.Where("booking_id = ?", bookingID).
		Where("status = ?", models.ServiceRequestCompleted).
		Where("surcharge > 0").
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		degrade("service_requests", err)
	} else {
		for _, sr := range requests {
			desc := sr.Kind
			if sr.Description != "" {
				desc = sr.Description
			}
			if folioHasLine(folio.Charges, desc, sr.Surcharge) {
				continue
			}
			folio.Charges = append(folio.Charges, FolioLine{
				Category:    models.ChargeCategoryService,
				Description: desc,
				Quantity:    1,
				UnitPrice:   sr.Surcharge,
				Total:       sr.Surcharge,
				OccurredAt:  sr.CreatedAt,
			})
		}
	}

	// 4. Completed food & beverage orders.
	var orders []models.FoodOrder
	if err := db.Where("booking_id = ?", bookingID).
		Where("status = ?", models.FoodOrderCompleted).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		degrade("food_orders", err)
	} else {
		for _, fo := range orders {
			desc := fmt.Sprintf("Restaurant order #%d", fo.ID)
			if folioHasLine(folio.Charges, desc, fo.Total) {
				continue
			}
			folio.Charges = append(folio.Charges, FolioLine{
				Category:    models.ChargeCategoryRestaurant,
				Description: desc,
				Quantity:    1,
				UnitPrice:   fo.Total,
				Total:       fo.Total,
				OccurredAt:  fo.CreatedAt,
			})
		}
	}

	sort.SliceStable(folio.Charges, func(i, j int) bool {
		return folio.Charges[i].OccurredAt.Before(folio.Charges[j].OccurredAt)
	})

	for _, line := range folio.Charges {
		folio.Subtotal += line.Total
	}

	var payments []models.Payment
	if err := db.Where("booking_id = ?", bookingID).
		Where("status = ?", models.PaymentCompleted).
		Order("paid_at ASC").
		Find(&payments).Error; err != nil {
		degrade("payments", err)
	} else {
		folio.Payments = payments
		for _, p := range payments {
			folio.TotalPayments += p.Amount
		}
	}

	folio.Balance = folio.Subtotal - folio.TotalPayments
	return folio, nil
}

func folioHasLine(lines []FolioLine, description string, amount float64) bool {
	for _, l := range lines {
		if l.Description == description && l.Total == amount {
			return true
		}
	}
	return false
}
