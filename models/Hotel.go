package models

import "gorm.io/gorm"

// Hotel is the inventory unit. AvailableRooms is only ever mutated through
// conditional updates inside reservation/cancellation transactions so the
// counter cannot go negative under concurrent bookings.
type Hotel struct {
	gorm.Model
	Name               string   `json:"name"`
	Location           string   `json:"location"`
	Description        string   `json:"description" gorm:"type:text"`
	PricePerNight      float64  `json:"price_per_night"`
	AvailableRooms     int      `json:"available_rooms" gorm:"default:0"`
	ImageURL           string   `json:"imageUrl"`
	DiscountPercentage float64  `json:"discount_percentage" gorm:"default:0"`
	DiscountedPrice    *float64 `json:"discounted_price"`

	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:HotelID;references:ID"`
}

// ApplyDiscount recomputes the persisted DiscountedPrice from the current
// price and percentage. A zero percentage nulls the derived column.
func (h *Hotel) ApplyDiscount() {
	if h.DiscountPercentage > 0 {
		discounted := h.PricePerNight * (1 - h.DiscountPercentage/100)
		h.DiscountedPrice = &discounted
		return
	}
	h.DiscountedPrice = nil
}

// NightlyRate is the rate a new reservation is priced at.
func (h *Hotel) NightlyRate() float64 {
	if h.DiscountedPrice != nil {
		return *h.DiscountedPrice
	}
	return h.PricePerNight
}
