package routes

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/zafyhx/stayverse-project/models"
)

func TestCreateHotelComputesDiscountedPrice(t *testing.T) {
	db := newTestDB(t)
	app := buildTestApp(t, db)

	adminToken := createAdmin(t, app, db)

	resp := doForm(t, app, http.MethodPost, "/api/hotels", adminToken, url.Values{
		"name":                {"Ayana Resort"},
		"location":            {"Jimbaran, Bali"},
		"description":         {"Resor tepi tebing dengan pemandangan laut"},
		"price_per_night":     {"2000000"},
		"available_rooms":     {"12"},
		"discount_percentage": {"10"},
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", resp.Code, resp.Body.String())
	}

	var created models.Hotel
	decodeBody(t, resp, &created)
	if created.DiscountedPrice == nil || *created.DiscountedPrice != 1800000 {
		t.Fatalf("discounted price = %v, want 1800000", created.DiscountedPrice)
	}
	if created.NightlyRate() != 1800000 {
		t.Fatalf("nightly rate = %v, want 1800000", created.NightlyRate())
	}
}

func TestCreateHotelMissingFields(t *testing.T) {
	db := newTestDB(t)
	app := buildTestApp(t, db)

	adminToken := createAdmin(t, app, db)

	resp := doForm(t, app, http.MethodPost, "/api/hotels", adminToken, url.Values{
		"name": {"Tanpa Lokasi"},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
	var errBody struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &errBody)
	if errBody.Message != "Input tidak lengkap. Nama, lokasi, harga, dan jumlah kamar wajib diisi." {
		t.Fatalf("unexpected message %q", errBody.Message)
	}
}

func TestCreateHotelRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	app := buildTestApp(t, db)

	userToken := registerAndLogin(t, app, "Dewi", "dewi@example.com", "rahasia1")

	form := url.Values{
		"name":            {"Grand Hyatt Bali"},
		"location":        {"Nusa Dua, Bali"},
		"price_per_night": {"1500000"},
		"available_rooms": {"5"},
	}

	resp := doForm(t, app, http.MethodPost, "/api/hotels", userToken, form)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doForm(t, app, http.MethodPost, "/api/hotels", "", form)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
}

func TestListHotelsWithFilters(t *testing.T) {
	db := newTestDB(t)
	app := buildTestApp(t, db)

	createHotel(t, db, "Grand Hyatt Bali", 1500000, 5)
	cheap := models.Hotel{Name: "Pop Hotel", Location: "Kuta, Bali", PricePerNight: 350000, AvailableRooms: 20}
	if err := db.Create(&cheap).Error; err != nil {
		t.Fatalf("creating hotel: %v", err)
	}
	jakarta := models.Hotel{Name: "Hotel Indonesia Kempinski", Location: "Jakarta Pusat", PricePerNight: 2500000, AvailableRooms: 8}
	if err := db.Create(&jakarta).Error; err != nil {
		t.Fatalf("creating hotel: %v", err)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/hotels", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list returned %d: %s", resp.Code, resp.Body.String())
	}
	var all []models.Hotel
	decodeBody(t, resp, &all)
	if len(all) != 3 {
		t.Fatalf("expected 3 hotels, got %d", len(all))
	}

	resp = doJSON(t, app, http.MethodGet, "/api/hotels?location=bali", "", nil)
	var inBali []models.Hotel
	decodeBody(t, resp, &inBali)
	if len(inBali) != 2 {
		t.Fatalf("location filter returned %d hotels, want 2", len(inBali))
	}

	resp = doJSON(t, app, http.MethodGet, "/api/hotels?location=bali&maxPrice=500000", "", nil)
	var affordable []models.Hotel
	decodeBody(t, resp, &affordable)
	if len(affordable) != 1 || affordable[0].Name != "Pop Hotel" {
		t.Fatalf("combined filter returned %s", resp.Body.String())
	}

	resp = doJSON(t, app, http.MethodGet, "/api/hotels?maxPrice=mahal", "", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric maxPrice, got %d", resp.Code)
	}
}

func TestGetHotelByID(t *testing.T) {
	db := newTestDB(t)
	app := buildTestApp(t, db)

	hotel := createHotel(t, db, "Grand Hyatt Bali", 1500000, 5)

	resp := doJSON(t, app, http.MethodGet, "/api/hotels/"+itoa(hotel.ID), "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get returned %d: %s", resp.Code, resp.Body.String())
	}
	var fetched models.Hotel
	decodeBody(t, resp, &fetched)
	if fetched.Name != "Grand Hyatt Bali" {
		t.Fatalf("unexpected hotel: %+v", fetched)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/hotels/9999", "", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestUpdateHotelPartialAndDiscountRecompute(t *testing.T) {
	db := newTestDB(t)
	app := buildTestApp(t, db)

	adminToken := createAdmin(t, app, db)
	hotel := createHotel(t, db, "Grand Hyatt Bali", 1500000, 5)

	resp := doForm(t, app, http.MethodPut, "/api/hotels/"+itoa(hotel.ID), adminToken, url.Values{
		"discount_percentage": {"20"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", resp.Code, resp.Body.String())
	}

	var updated models.Hotel
	decodeBody(t, resp, &updated)
	if updated.Name != "Grand Hyatt Bali" || updated.AvailableRooms != 5 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.DiscountedPrice == nil || *updated.DiscountedPrice != 1200000 {
		t.Fatalf("discounted price = %v, want 1200000", updated.DiscountedPrice)
	}

	// Dropping the discount clears the derived price.
	resp = doForm(t, app, http.MethodPut, "/api/hotels/"+itoa(hotel.ID), adminToken, url.Values{
		"discount_percentage": {"0"},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", resp.Code, resp.Body.String())
	}
	decodeBody(t, resp, &updated)
	if updated.DiscountedPrice != nil {
		t.Fatalf("discounted price = %v, want nil", *updated.DiscountedPrice)
	}
}

func TestDeleteHotel(t *testing.T) {
	db := newTestDB(t)
	app := buildTestApp(t, db)

	adminToken := createAdmin(t, app, db)
	hotel := createHotel(t, db, "Grand Hyatt Bali", 1500000, 5)

	resp := doJSON(t, app, http.MethodDelete, "/api/hotels/"+itoa(hotel.ID), adminToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("delete returned %d: %s", resp.Code, resp.Body.String())
	}

	var count int64
	db.Model(&models.Hotel{}).Where("id = ?", hotel.ID).Count(&count)
	if count != 0 {
		t.Fatal("hotel still present after delete")
	}

	resp = doJSON(t, app, http.MethodDelete, "/api/hotels/"+itoa(hotel.ID), adminToken, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", resp.Code)
	}
}
