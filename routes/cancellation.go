package routes

import (
	"errors"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/zafyhx/stayverse-project/models"
	"github.com/zafyhx/stayverse-project/utils"
)

// CancellationHandler serves the cancellation-request lifecycle: a user
// files a request against a confirmed reservation, an admin resolves it.
type CancellationHandler struct {
	DB *gorm.DB
}

var errNotCancellable = errors.New("reservation not cancellable")

type RequestCancellationInput struct {
	ReservationID uint   `json:"reservationId" validate:"required"`
	Reason        string `json:"reason" validate:"required,max=1024"`
}

// RequestCancellation - POST /api/cancellations
//
// Gated on the reservation being the caller's and confirmed; the gate also
// guarantees at most one active request per reservation. Creating the
// request and parking the reservation on cancellation_requested happen in
// one transaction.
func (h *CancellationHandler) RequestCancellation(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	var input RequestCancellationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	request := models.CancellationRequest{
		ReservationID: input.ReservationID,
		Reason:        input.Reason,
		Status:        models.CancellationPending,
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		err := tx.Where("id = ? AND user_id = ?", input.ReservationID, user.ID).
			First(&reservation).Error
		if err != nil || reservation.Status != models.ReservationConfirmed {
			return errNotCancellable
		}

		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		return tx.Model(&reservation).
			Update("status", models.ReservationCancellationRequested).Error
	})

	if txErr != nil {
		if errors.Is(txErr, errNotCancellable) {
			utils.CreateError(iris.StatusNotFound, "not_found",
				"Reservasi tidak dapat diajukan pembatalan (Status bukan Confirmed).", ctx)
			return
		}
		utils.CreateError(iris.StatusInternalServerError, "server_error", "Gagal mengajukan pembatalan.", ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&request)
}

// GetCancellationRequests - GET /api/cancellations (admin). Pending
// requests with their reservation and hotel context, newest first.
func (h *CancellationHandler) GetCancellationRequests(ctx iris.Context) {
	requests := []models.CancellationRequest{}
	res := h.DB.Preload("Reservation").Preload("Reservation.Hotel").
		Where("status = ?", models.CancellationPending).
		Order("created_at DESC").
		Find(&requests)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(requests)
}

// GetMyCancellationRequests - GET /api/cancellations/my
func (h *CancellationHandler) GetMyCancellationRequests(ctx iris.Context) {
	user := utils.CurrentUser(ctx)

	requests := []models.CancellationRequest{}
	res := h.DB.Preload("Reservation").Preload("Reservation.Hotel").
		Joins("JOIN reservations r ON r.id = cancellation_requests.reservation_id").
		Where("r.user_id = ?", user.ID).
		Order("cancellation_requests.created_at DESC").
		Find(&requests)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "server_error", "Gagal mengambil pengajuan pembatalan Anda.", ctx)
		return
	}
	ctx.JSON(requests)
}

type UpdateRequestStatusInput struct {
	Status models.CancellationStatus `json:"status" validate:"required,oneof=approved rejected"`
}

// UpdateRequestStatus - PUT /api/cancellations/{id} (admin)
//
// Approval sets the reservation to cancelled and returns its rooms to the
// hotel pool; rejection puts the reservation back on confirmed. All three
// writes share one transaction so a failure leaves nothing half-resolved.
func (h *CancellationHandler) UpdateRequestStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid request ID", ctx)
		return
	}

	var input UpdateRequestStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var request models.CancellationRequest
	if err := h.DB.Preload("Reservation").First(&request, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Pengajuan tidak ditemukan.", ctx)
		return
	}

	// Resolution is single-shot. Approving twice would restore the rooms
	// twice, and rejecting after approving would revive a cancelled
	// reservation.
	if request.Status != models.CancellationPending {
		utils.CreateError(iris.StatusBadRequest, "already_resolved", "Pengajuan sudah diproses.", ctx)
		return
	}

	before := request

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&request).Update("status", input.Status).Error; err != nil {
			return err
		}

		switch input.Status {
		case models.CancellationApproved:
			err := tx.Model(&models.Reservation{}).
				Where("id = ?", request.ReservationID).
				Update("status", models.ReservationCancelled).Error
			if err != nil {
				return err
			}
			// Return the rooms to the hotel's available pool.
			return tx.Model(&models.Hotel{}).
				Where("id = ?", request.Reservation.HotelID).
				UpdateColumn("available_rooms", gorm.Expr("available_rooms + ?", request.Reservation.NumberOfRooms)).
				Error
		case models.CancellationRejected:
			return tx.Model(&models.Reservation{}).
				Where("id = ?", request.ReservationID).
				Update("status", models.ReservationConfirmed).Error
		}
		return nil
	})

	if txErr != nil {
		utils.CreateError(iris.StatusInternalServerError, "server_error", "Gagal mengubah status pembatalan.", ctx)
		return
	}

	utils.Audit(h.DB, ctx, "cancellation.resolve", "cancellation_request", request.ID, before, request)

	h.DB.Preload("Reservation").First(&request, request.ID)
	ctx.JSON(&request)
}

// DeleteCancellationRequest - DELETE /api/cancellations/{id} (admin).
// Hard delete, no reservation side effect.
func (h *CancellationHandler) DeleteCancellationRequest(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid request ID", ctx)
		return
	}

	res := h.DB.Unscoped().Delete(&models.CancellationRequest{}, id)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "server_error", "Gagal menghapus pengajuan.", ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "not_found", "Pengajuan tidak ditemukan.", ctx)
		return
	}

	utils.Audit(h.DB, ctx, "cancellation.delete", "cancellation_request", id, nil, nil)

	ctx.JSON(iris.Map{"message": "Pengajuan berhasil dihapus."})
}
