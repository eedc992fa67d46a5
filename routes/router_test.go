package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/zafyhx/stayverse-project/models"
	"github.com/zafyhx/stayverse-project/storage"
	"github.com/zafyhx/stayverse-project/utils"
)

// newTestDB opens a fresh in-memory database per test and migrates the
// schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

// buildTestApp wires the same routes as main against the given database.
func buildTestApp(t *testing.T, db *gorm.DB) *iris.Application {
	t.Helper()

	os.Setenv("ACCESS_TOKEN_SECRET", "testsecret")
	os.Setenv("REFRESH_TOKEN_SECRET", "testrefreshsecret")

	uploads, err := storage.NewUploadStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating upload store: %v", err)
	}

	// Login tolerates this client pointing at nothing; only the refresh
	// tests need a live Redis and they skip themselves without one.
	tokens := utils.NewTokenService(db, redis.NewClient(&redis.Options{Addr: "localhost:6379"}))

	userHandler := &UserHandler{DB: db, Tokens: tokens}
	hotelHandler := &HotelHandler{DB: db, Uploads: uploads}
	reservationHandler := &ReservationHandler{DB: db}
	cancellationHandler := &CancellationHandler{DB: db}
	blogHandler := &BlogHandler{DB: db, Uploads: uploads}
	adminHandler := &AdminHandler{DB: db}

	app := iris.New()
	app.Validator = validator.New()

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	authenticated := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})
	loadUser := utils.UserLoaderMiddleware(db)

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshVerify := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})
	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	users := app.Party("/api/users")
	{
		users.Post("/register", userHandler.Register)
		users.Post("/login", userHandler.Login)
		users.Post("/refresh", refreshVerify, tokens.Refresh)
		users.Get("/profile", authenticated, loadUser, userHandler.GetProfile)
		users.Put("/profile", authenticated, loadUser, userHandler.UpdateProfile)
		users.Get("/", authenticated, loadUser, utils.AdminOnlyMiddleware, userHandler.AdminListUsers)
		users.Put("/{id:uint}", authenticated, loadUser, utils.AdminOnlyMiddleware, userHandler.AdminUpdateUser)
		users.Delete("/{id:uint}", authenticated, loadUser, utils.AdminOnlyMiddleware, userHandler.AdminDeleteUser)
	}

	hotels := app.Party("/api/hotels")
	{
		hotels.Get("/", hotelHandler.GetAllHotels)
		hotels.Get("/{id:uint}", hotelHandler.GetHotelByID)
		hotels.Post("/", authenticated, loadUser, utils.AdminOnlyMiddleware, hotelHandler.CreateHotel)
		hotels.Put("/{id:uint}", authenticated, loadUser, utils.AdminOnlyMiddleware, hotelHandler.UpdateHotel)
		hotels.Delete("/{id:uint}", authenticated, loadUser, utils.AdminOnlyMiddleware, hotelHandler.DeleteHotel)
	}

	reservations := app.Party("/api/reservations")
	{
		reservations.Post("/", authenticated, loadUser, reservationHandler.CreateReservation)
		reservations.Get("/mine", authenticated, loadUser, reservationHandler.GetMyReservations)
		reservations.Post("/check-in", authenticated, loadUser, reservationHandler.CheckInReservation)
	}

	cancellations := app.Party("/api/cancellations")
	{
		cancellations.Post("/", authenticated, loadUser, cancellationHandler.RequestCancellation)
		cancellations.Get("/my", authenticated, loadUser, cancellationHandler.GetMyCancellationRequests)
		cancellations.Get("/", authenticated, loadUser, utils.AdminOnlyMiddleware, cancellationHandler.GetCancellationRequests)
		cancellations.Put("/{id:uint}", authenticated, loadUser, utils.AdminOnlyMiddleware, cancellationHandler.UpdateRequestStatus)
		cancellations.Delete("/{id:uint}", authenticated, loadUser, utils.AdminOnlyMiddleware, cancellationHandler.DeleteCancellationRequest)
	}

	blog := app.Party("/api/blog")
	{
		blog.Get("/", blogHandler.GetAllBlogs)
		blog.Get("/{id:uint}", blogHandler.GetBlogByID)
		blog.Post("/", authenticated, loadUser, utils.AdminOnlyMiddleware, blogHandler.CreateBlog)
		blog.Put("/{id:uint}", authenticated, loadUser, utils.AdminOnlyMiddleware, blogHandler.UpdateBlog)
		blog.Delete("/{id:uint}", authenticated, loadUser, utils.AdminOnlyMiddleware, blogHandler.DeleteBlog)
	}

	admin := app.Party("/api/admin", authenticated, loadUser, utils.AdminOnlyMiddleware)
	{
		admin.Get("/stats", adminHandler.DashboardStats)
		admin.Get("/public-stats", adminHandler.PublicStats)
		admin.Get("/chart-data", adminHandler.ChartData)
		admin.Get("/booking-logs", adminHandler.BookingLogs)
		admin.Get("/cancellation-logs", adminHandler.CancellationLogs)
		admin.Get("/activity", adminHandler.Activity)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("building test app: %v", err)
	}
	return app
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, app *iris.Application, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

// doForm performs a urlencoded form request, the shape the admin hotel/blog
// screens submit.
func doForm(t *testing.T, app *iris.Application, method, path, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", resp.Body.String(), err)
	}
}

// registerAndLogin creates an account through the API and returns its
// bearer token.
func registerAndLogin(t *testing.T, app *iris.Application, name, email, password string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/users/register", "", iris.Map{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, app, http.MethodPost, "/api/users/login", "", iris.Map{
		"email":    email,
		"password": password,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("login returned %d: %s", resp.Code, resp.Body.String())
	}

	var loginBody struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &loginBody)
	if loginBody.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return loginBody.Token
}

// createAdmin inserts an admin row directly and logs it in.
func createAdmin(t *testing.T, app *iris.Application, db *gorm.DB) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hashing admin password: %v", err)
	}
	admin := models.User{Name: "Admin", Email: "admin@stayverse.id", Password: string(hash), Role: models.RoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("creating admin user: %v", err)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/users/login", "", iris.Map{
		"email":    admin.Email,
		"password": "admin123",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("admin login returned %d: %s", resp.Code, resp.Body.String())
	}

	var loginBody struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &loginBody)
	return loginBody.Token
}

func createHotel(t *testing.T, db *gorm.DB, name string, price float64, rooms int) models.Hotel {
	t.Helper()
	hotel := models.Hotel{Name: name, Location: "Nusa Dua, Bali", PricePerNight: price, AvailableRooms: rooms}
	hotel.ApplyDiscount()
	if err := db.Create(&hotel).Error; err != nil {
		t.Fatalf("creating hotel: %v", err)
	}
	return hotel
}

func daysFromNow(days int) time.Time {
	return time.Now().AddDate(0, 0, days)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
