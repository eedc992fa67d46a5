package routes

import (
	"strconv"
	"strings"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/zafyhx/stayverse-project/models"
	"github.com/zafyhx/stayverse-project/storage"
	"github.com/zafyhx/stayverse-project/utils"
)

// HotelHandler serves the public hotel catalog and the admin inventory CRUD.
type HotelHandler struct {
	DB      *gorm.DB
	Uploads *storage.UploadStore
}

// GetAllHotels - GET /api/hotels?location=&maxPrice=
// location filters by case-insensitive substring, maxPrice caps the nightly
// price.
func (h *HotelHandler) GetAllHotels(ctx iris.Context) {
	query := h.DB.Model(&models.Hotel{})

	if location := strings.TrimSpace(ctx.URLParamDefault("location", "")); location != "" {
		query = query.Where("lower(location) LIKE lower(?)", "%"+location+"%")
	}
	if maxPriceRaw := ctx.URLParamDefault("maxPrice", ""); maxPriceRaw != "" {
		maxPrice, err := strconv.ParseFloat(maxPriceRaw, 64)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "validation_error", "maxPrice harus berupa angka", ctx)
			return
		}
		query = query.Where("price_per_night <= ?", maxPrice)
	}

	var hotels []models.Hotel
	if err := query.Find(&hotels).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(hotels)
}

// GetHotelByID - GET /api/hotels/{id}
func (h *HotelHandler) GetHotelByID(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid hotel ID", ctx)
		return
	}

	var hotel models.Hotel
	if err := h.DB.First(&hotel, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Hotel tidak ditemukan", ctx)
		return
	}
	ctx.JSON(&hotel)
}

// CreateHotel - POST /api/hotels (admin). Multipart form with an optional
// image file.
func (h *HotelHandler) CreateHotel(ctx iris.Context) {
	name := strings.TrimSpace(ctx.FormValue("name"))
	location := strings.TrimSpace(ctx.FormValue("location"))
	priceRaw := ctx.FormValue("price_per_night")
	roomsRaw := ctx.FormValue("available_rooms")

	if name == "" || location == "" || priceRaw == "" || roomsRaw == "" {
		utils.CreateError(iris.StatusBadRequest, "validation_error",
			"Input tidak lengkap. Nama, lokasi, harga, dan jumlah kamar wajib diisi.", ctx)
		return
	}

	price, priceErr := strconv.ParseFloat(priceRaw, 64)
	rooms, roomsErr := strconv.Atoi(roomsRaw)
	if priceErr != nil || roomsErr != nil || price < 0 || rooms < 0 {
		utils.CreateError(iris.StatusBadRequest, "validation_error", "Harga dan jumlah kamar harus berupa angka positif", ctx)
		return
	}

	hotel := models.Hotel{
		Name:           name,
		Location:       location,
		Description:    ctx.FormValue("description"),
		PricePerNight:  price,
		AvailableRooms: rooms,
	}
	if pctRaw := ctx.FormValue("discount_percentage"); pctRaw != "" {
		pct, err := strconv.ParseFloat(pctRaw, 64)
		if err != nil || pct < 0 || pct > 100 {
			utils.CreateError(iris.StatusBadRequest, "validation_error", "Persentase diskon tidak valid", ctx)
			return
		}
		hotel.DiscountPercentage = pct
	}
	hotel.ApplyDiscount()

	if imageURL, ok := h.saveImage(ctx); ok {
		hotel.ImageURL = imageURL
	} else if ctx.IsStopped() {
		return
	}

	if err := h.DB.Create(&hotel).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(h.DB, ctx, "hotel.create", "hotel", hotel.ID, nil, hotel)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&hotel)
}

// UpdateHotel - PUT /api/hotels/{id} (admin). Partial update: only supplied
// form fields override, and the derived discounted price is recomputed.
func (h *HotelHandler) UpdateHotel(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid hotel ID", ctx)
		return
	}

	var hotel models.Hotel
	if err := h.DB.First(&hotel, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "not_found", "Hotel tidak ditemukan", ctx)
		return
	}

	before := hotel

	if name := ctx.FormValue("name"); name != "" {
		hotel.Name = name
	}
	if location := ctx.FormValue("location"); location != "" {
		hotel.Location = location
	}
	if description := ctx.FormValue("description"); description != "" {
		hotel.Description = description
	}
	if priceRaw := ctx.FormValue("price_per_night"); priceRaw != "" {
		price, err := strconv.ParseFloat(priceRaw, 64)
		if err != nil || price < 0 {
			utils.CreateError(iris.StatusBadRequest, "validation_error", "Harga tidak valid", ctx)
			return
		}
		hotel.PricePerNight = price
	}
	if roomsRaw := ctx.FormValue("available_rooms"); roomsRaw != "" {
		rooms, err := strconv.Atoi(roomsRaw)
		if err != nil || rooms < 0 {
			utils.CreateError(iris.StatusBadRequest, "validation_error", "Jumlah kamar tidak valid", ctx)
			return
		}
		hotel.AvailableRooms = rooms
	}
	if pctRaw := ctx.FormValue("discount_percentage"); pctRaw != "" {
		pct, err := strconv.ParseFloat(pctRaw, 64)
		if err != nil || pct < 0 || pct > 100 {
			utils.CreateError(iris.StatusBadRequest, "validation_error", "Persentase diskon tidak valid", ctx)
			return
		}
		hotel.DiscountPercentage = pct
	}
	hotel.ApplyDiscount()

	if imageURL, ok := h.saveImage(ctx); ok {
		hotel.ImageURL = imageURL
	} else if ctx.IsStopped() {
		return
	}

	if err := h.DB.Save(&hotel).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(h.DB, ctx, "hotel.update", "hotel", hotel.ID, before, hotel)

	ctx.JSON(&hotel)
}

// DeleteHotel - DELETE /api/hotels/{id} (admin). Hard delete; existing
// reservations keep their rows.
func (h *HotelHandler) DeleteHotel(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "invalid_id", "Invalid hotel ID", ctx)
		return
	}

	res := h.DB.Unscoped().Delete(&models.Hotel{}, id)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "not_found", "Hotel tidak ditemukan", ctx)
		return
	}

	utils.Audit(h.DB, ctx, "hotel.delete", "hotel", id, nil, nil)

	ctx.JSON(iris.Map{"message": "Hotel berhasil dihapus"})
}

// saveImage stores an optional uploaded "image" form file. It returns
// ("", false) when no file was sent; a rejected file stops the request.
func (h *HotelHandler) saveImage(ctx iris.Context) (string, bool) {
	_, fh, err := ctx.FormFile("image")
	if err != nil {
		return "", false
	}
	imageURL, saveErr := h.Uploads.SaveImage("hotels", fh)
	if saveErr != nil {
		utils.CreateError(iris.StatusBadRequest, "upload_error", saveErr.Error(), ctx)
		return "", false
	}
	return imageURL, true
}
