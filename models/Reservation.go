package models

import (
	"time"

	"gorm.io/gorm"
)

// ReservationStatus is the reservation lifecycle state.
//
// The legacy schema overloaded "pending" both as a never-used initial state
// and as "cancellation under review"; the review state now has its own
// value. "pending" stays declared for wire compatibility with old rows.
type ReservationStatus string

const (
	ReservationPending               ReservationStatus = "pending"
	ReservationConfirmed             ReservationStatus = "confirmed"
	ReservationCheckedIn             ReservationStatus = "checked_in"
	ReservationCancellationRequested ReservationStatus = "cancellation_requested"
	ReservationCancelled             ReservationStatus = "cancelled"
)

// Reservation books NumberOfRooms rooms at a Hotel for a date range.
// Rows are never deleted in the normal flow; terminal states are
// checked_in and cancelled.
type Reservation struct {
	gorm.Model
	UserID             uint              `json:"userId" gorm:"index;not null"`
	HotelID            uint              `json:"hotelId" gorm:"index;not null"`
	CheckInDate        time.Time         `json:"check_in_date" gorm:"type:date"`
	CheckOutDate       time.Time         `json:"check_out_date" gorm:"type:date"`
	TotalPrice         float64           `json:"total_price"`
	OriginalPrice      float64           `json:"original_price"`
	DiscountedPrice    *float64          `json:"discounted_price"`
	DiscountPercentage float64           `json:"discount_percentage"`
	NumberOfRooms      int               `json:"number_of_rooms" gorm:"default:1"`
	NumberOfGuests     int               `json:"number_of_guests" gorm:"default:1"`
	GuestName          string            `json:"guest_name"`
	GuestEmail         string            `json:"guest_email"`
	GuestPhone         string            `json:"guest_phone"`
	SpecialRequest     string            `json:"special_request" gorm:"type:text"`
	Status             ReservationStatus `json:"status" gorm:"type:varchar(32);default:confirmed;index"`

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`

	CancellationRequests []CancellationRequest `json:"cancellationRequests,omitempty" gorm:"foreignKey:ReservationID"`
}

// CanCheckIn reports whether the reservation may transition to checked_in
// on the given day. Check-in is allowed on the check-in date or later.
func (r *Reservation) CanCheckIn(today time.Time) bool {
	if r.Status != ReservationConfirmed {
		return false
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	checkIn := time.Date(r.CheckInDate.Year(), r.CheckInDate.Month(), r.CheckInDate.Day(), 0, 0, 0, 0, today.Location())
	return !checkIn.After(day)
}
