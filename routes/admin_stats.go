package routes

import (
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/zafyhx/stayverse-project/models"
	"github.com/zafyhx/stayverse-project/utils"
)

// AdminHandler serves the read-only dashboard aggregates and the activity
// feed. Pure reporting; nothing here mutates booking state.
type AdminHandler struct {
	DB *gorm.DB
}

type statusCount struct {
	Status models.ReservationStatus `json:"status"`
	Count  int64                    `json:"count"`
}

type monthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type dayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type topHotel struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Bookings int64  `json:"bookings"`
}

// DashboardStats - GET /api/admin/stats
func (h *AdminHandler) DashboardStats(ctx iris.Context) {
	var totalUsers, totalHotels, totalReservations, totalCancellations int64
	h.DB.Model(&models.User{}).Count(&totalUsers)
	h.DB.Model(&models.Hotel{}).Count(&totalHotels)
	h.DB.Model(&models.Reservation{}).Count(&totalReservations)
	h.DB.Model(&models.CancellationRequest{}).
		Where("status = ?", models.CancellationApproved).
		Count(&totalCancellations)

	breakdown, err := h.reservationStatusBreakdown()
	if err != nil {
		utils.CreateError(iris.StatusInternalServerError, "server_error", "Gagal mengambil data statistik.", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"totalUsers":                 totalUsers,
		"totalHotels":                totalHotels,
		"totalReservations":          totalReservations,
		"totalCancellations":         totalCancellations,
		"reservationStatusBreakdown": breakdown,
	})
}

// PublicStats - GET /api/admin/public-stats
func (h *AdminHandler) PublicStats(ctx iris.Context) {
	var totalUsers, totalHotels, totalReservations int64
	h.DB.Model(&models.User{}).Count(&totalUsers)
	h.DB.Model(&models.Hotel{}).Count(&totalHotels)
	h.DB.Model(&models.Reservation{}).Count(&totalReservations)

	breakdown, err := h.reservationStatusBreakdown()
	if err != nil {
		utils.CreateError(iris.StatusInternalServerError, "server_error", "Gagal mengambil data statistik publik.", ctx)
		return
	}

	monthlyReservations := h.monthlySeries(&models.Reservation{}, 12)
	monthlyCancellations := h.monthlySeries(&models.CancellationRequest{}, 12)

	var tops []topHotel
	h.DB.Model(&models.Reservation{}).
		Select("hotels.name AS name, hotels.location AS location, COUNT(*) AS bookings").
		Joins("JOIN hotels ON hotels.id = reservations.hotel_id").
		Group("hotels.id, hotels.name, hotels.location").
		Order("bookings DESC").
		Limit(5).
		Scan(&tops)

	ctx.JSON(iris.Map{
		"overview": iris.Map{
			"totalUsers":        totalUsers,
			"totalHotels":       totalHotels,
			"totalReservations": totalReservations,
		},
		"reservationBreakdown": breakdown,
		"monthlyReservations":  monthlyReservations,
		"monthlyCancellations": monthlyCancellations,
		"topHotels":            tops,
	})
}

// ChartData - GET /api/admin/chart-data
func (h *AdminHandler) ChartData(ctx iris.Context) {
	since30 := time.Now().AddDate(0, 0, -30)

	var daily []dayCount
	h.DB.Model(&models.Reservation{}).
		Select("DATE(created_at) AS date, COUNT(*) AS count").
		Where("created_at >= ?", since30).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&daily)

	ctx.JSON(iris.Map{
		"monthlyReservations":  h.monthlySeries(&models.Reservation{}, 12),
		"monthlyCancellations": h.monthlySeries(&models.CancellationRequest{}, 12),
		"dailyReservations":    daily,
	})
}

// BookingLogs - GET /api/admin/booking-logs. Last 20 reservations with
// hotel and user context.
func (h *AdminHandler) BookingLogs(ctx iris.Context) {
	reservations := []models.Reservation{}
	res := h.DB.Preload("Hotel").Preload("User").
		Order("created_at DESC").
		Limit(20).
		Find(&reservations)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "server_error", "Gagal mengambil log booking.", ctx)
		return
	}
	ctx.JSON(reservations)
}

// CancellationLogs - GET /api/admin/cancellation-logs. Every request, any
// status, newest first.
func (h *AdminHandler) CancellationLogs(ctx iris.Context) {
	requests := []models.CancellationRequest{}
	res := h.DB.Preload("Reservation").Preload("Reservation.Hotel").Preload("Reservation.User").
		Order("created_at DESC").
		Find(&requests)
	if res.Error != nil {
		utils.CreateError(iris.StatusInternalServerError, "server_error", "Gagal mengambil log pembatalan.", ctx)
		return
	}
	ctx.JSON(requests)
}

// Activity - GET /api/admin/activity. Latest audit entries.
func (h *AdminHandler) Activity(ctx iris.Context) {
	logs := []models.AuditLog{}
	h.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(logs)
}

func (h *AdminHandler) reservationStatusBreakdown() (map[models.ReservationStatus]int64, error) {
	var rows []statusCount
	err := h.DB.Model(&models.Reservation{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	breakdown := map[models.ReservationStatus]int64{}
	for _, row := range rows {
		breakdown[row.Status] = row.Count
	}
	return breakdown, nil
}

// monthlySeries buckets rows of the given model by YYYY-MM over the last
// n months. The bucketing stays in the database; sqlite spells it
// differently than Postgres.
func (h *AdminHandler) monthlySeries(model interface{}, months int) []monthCount {
	since := time.Now().AddDate(0, -months, 0)

	bucket := "TO_CHAR(created_at, 'YYYY-MM')"
	if h.DB.Dialector.Name() == "sqlite" {
		bucket = "strftime('%Y-%m', created_at)"
	}

	var series []monthCount
	h.DB.Model(model).
		Select(bucket+" AS month, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("month").
		Order("month ASC").
		Scan(&series)
	return series
}
