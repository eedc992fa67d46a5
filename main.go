package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/zafyhx/stayverse-project/routes"
	"github.com/zafyhx/stayverse-project/storage"
	"github.com/zafyhx/stayverse-project/utils"
)

func main() {
	// Only load .env in development.
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	db, err := storage.InitializeDB(os.Getenv("DB_CONNECTION_STRING"))
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	rdb := storage.InitializeRedis(os.Getenv("REDIS_URL"))

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	uploads, err := storage.NewUploadStore(uploadDir)
	if err != nil {
		log.Fatalf("failed to initialize upload store: %v", err)
	}

	tokens := utils.NewTokenService(db, rdb)

	userHandler := &routes.UserHandler{DB: db, Tokens: tokens}
	hotelHandler := &routes.HotelHandler{DB: db, Uploads: uploads}
	reservationHandler := &routes.ReservationHandler{DB: db}
	cancellationHandler := &routes.CancellationHandler{DB: db}
	blogHandler := &routes.BlogHandler{DB: db, Uploads: uploads}
	adminHandler := &routes.AdminHandler{DB: db}

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	authenticated := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})
	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	loadUser := utils.UserLoaderMiddleware(db)

	// Uploaded hotel/blog images are served from the public uploads path.
	app.HandleDir("/uploads", iris.Dir(uploadDir))

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	users := app.Party("/api/users")
	{
		users.Post("/register", userHandler.Register)
		users.Post("/login", userHandler.Login)
		users.Post("/refresh", refreshTokenVerifierMiddleware, tokens.Refresh)
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

		admin.Get("/hotels", hotelHandler.GetAllHotels)
		admin.Get("/hotels/{id:uint}", hotelHandler.GetHotelByID)
		admin.Post("/hotels", hotelHandler.CreateHotel)
		admin.Put("/hotels/{id:uint}", hotelHandler.UpdateHotel)
		admin.Delete("/hotels/{id:uint}", hotelHandler.DeleteHotel)

		admin.Get("/blogs", blogHandler.GetAllBlogs)
		admin.Get("/blogs/{id:uint}", blogHandler.GetBlogByID)
		admin.Post("/blogs", blogHandler.CreateBlog)
		admin.Put("/blogs/{id:uint}", blogHandler.UpdateBlog)
		admin.Delete("/blogs/{id:uint}", blogHandler.DeleteBlog)

		admin.Get("/users", userHandler.AdminListUsers)
		admin.Put("/users/{id:uint}", userHandler.AdminUpdateUser)
		admin.Delete("/users/{id:uint}", userHandler.AdminDeleteUser)

		admin.Get("/cancellations", cancellationHandler.GetCancellationRequests)
		admin.Put("/cancellations/{id:uint}", cancellationHandler.UpdateRequestStatus)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5001"
	}
	addr := "0.0.0.0:" + port

	log.Printf("Server starting on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
