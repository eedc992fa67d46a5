package routes

import (
	"errors"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/zafyhx/stayverse-project/models"
	"github.com/zafyhx/stayverse-project/utils"
)

// ReservationHandler serves the booking lifecycle: create, list own,
// check-in. Cancellation lives in CancellationHandler.
type ReservationHandler struct {
	DB *gorm.DB
}

var errInsufficientRooms = errors.New("not enough rooms available")

// nightsBetween counts calendar nights. Dividing the raw duration by 24h
// would undercount a range spanning a DST transition.
func nightsBetween(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	nights := int(out.Sub(in) / (24 * time.Hour))
	if nights < 1 {
		nights = 1
	}
	return nights
}

type CreateReservationInput struct {
	HotelID        uint      `json:"hotelId" validate:"required"`
	CheckInDate    time.Time `json:"check_in_date" validate:"required"`
	CheckOutDate   time.Time `json:"check_out_date" validate:"required"`
	NumberOfRooms  int       `json:"number_of_rooms" validate:"required,gte=1,lte=10"`
	NumberOfGuests int       `json:"number_of_guests" validate:"required,gte=1,lte=32"`
	GuestName      string    `json:"guest_name" validate:"max=256"`
	GuestEmail     string    `json:"guest_email" validate:"omitempty,email"`
	GuestPhone     string    `json:"guest_phone" validate:"max=32"`
	SpecialRequest string    `json:"special_request"`
}

// CreateReservation - POST /api/reservations
//
// The room decrement and the insert run in one transaction, and the
// availability check is a conditional UPDATE guarded by
// available_rooms >= N. RowsAffected decides between success and a 400,
// so two concurrent bookings cannot both take the last room.
func (h *ReservationHandler) CreateReservation(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if !input.CheckInDate.Before(input.CheckOutDate) {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "check_in_date harus sebelum check_out_date", ctx)
		return
	}

	var hotel models.Hotel
	if err := h.DB.First(&hotel, input.HotelID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Hotel tidak ditemukan", ctx)
		return
	}

	nights := nightsBetween(input.CheckInDate, input.CheckOutDate)

	reservation := models.Reservation{
		UserID:             user.ID,
		HotelID:            hotel.ID,
		CheckInDate:        input.CheckInDate,
		CheckOutDate:       input.CheckOutDate,
		OriginalPrice:      hotel.PricePerNight * float64(nights) * float64(input.NumberOfRooms),
		TotalPrice:         hotel.NightlyRate() * float64(nights) * float64(input.NumberOfRooms),
		DiscountPercentage: hotel.DiscountPercentage,
		NumberOfRooms:      input.NumberOfRooms,
		NumberOfGuests:     input.NumberOfGuests,
		GuestName:          input.GuestName,
		GuestEmail:         input.GuestEmail,
		GuestPhone:         input.GuestPhone,
		SpecialRequest:     input.SpecialRequest,
		Status:             models.ReservationConfirmed,
	}
	if hotel.DiscountPercentage > 0 {
		discounted := reservation.TotalPrice
		reservation.DiscountedPrice = &discounted
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Hotel{}).
			Where("id = ? AND available_rooms >= ?", hotel.ID, input.NumberOfRooms).
			UpdateColumn("available_rooms", gorm.Expr("available_rooms - ?", input.NumberOfRooms))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errInsufficientRooms
		}
		return tx.Create(&reservation).Error
	})

	if txErr != nil {
		if errors.Is(txErr, errInsufficientRooms) {
			utils.CreateError(iris.StatusBadRequest, "insufficient_rooms", "Kamar hotel tidak cukup tersedia", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	h.DB.Preload("Hotel").First(&reservation, reservation.ID)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&reservation)
}

// GetMyReservations - GET /api/reservations/mine
func (h *ReservationHandler) GetMyReservations(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	reservations := []models.Reservation{}
	res := h.DB.Preload("Hotel").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&reservations)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reservations)
}

type CheckInInput struct {
	ReservationID uint `json:"reservationId" validate:"required"`
}

// CheckInReservation - POST /api/reservations/check-in
//
// Only the owner can check in, only from confirmed, and only on or after
// the check-in date. No inventory change.
func (h *ReservationHandler) CheckInReservation(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	var input CheckInInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var reservation models.Reservation
	err := h.DB.Preload("Hotel").
		Where("id = ? AND user_id = ? AND status = ?", input.ReservationID, user.ID, models.ReservationConfirmed).
		First(&reservation).Error
	if err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Reservasi tidak ditemukan atau tidak dapat di-check-in", ctx)
		return
	}

	if !reservation.CanCheckIn(time.Now()) {
		utils.CreateError(iris.StatusBadRequest, "too_early",
			"Check-in hanya dapat dilakukan pada tanggal check-in atau setelahnya", ctx)
		return
	}

	reservation.Status = models.ReservationCheckedIn
	if err := h.DB.Save(&reservation).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	hotelName := ""
	if reservation.Hotel != nil {
		hotelName = reservation.Hotel.Name
	}

	ctx.JSON(iris.Map{
		"message": "Check-in berhasil!",
		"reservation": iris.Map{
			"id":             reservation.ID,
			"hotelName":      hotelName,
			"check_in_date":  reservation.CheckInDate,
			"check_out_date": reservation.CheckOutDate,
			"status":         reservation.Status,
		},
	})
}
