package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/zafyhx/stayverse-project/models"
	"github.com/zafyhx/stayverse-project/storage"
)

// Seeds a development database with an admin account, a handful of hotels
// and a couple of blog posts. Safe to re-run: existing rows are kept.
func main() {
	godotenv.Load()

	db, err := storage.InitializeDB(os.Getenv("DB_CONNECTION_STRING"))
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	if err := seedAdmin(db); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedHotels(db); err != nil {
		log.Fatalf("seed hotels: %v", err)
	}
	if err := seedBlogs(db); err != nil {
		log.Fatalf("seed blogs: %v", err)
	}

	log.Println("Seeding completed successfully")
}

func seedAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin",
		Email:    "admin@stayverse.id",
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	return db.Create(&admin).Error
}

func seedHotels(db *gorm.DB) error {
	var count int64
	db.Model(&models.Hotel{}).Count(&count)
	if count > 0 {
		return nil
	}

	hotels := []models.Hotel{
		{
			Name:           "The Laguna, a Luxury Collection Hotel & Spa",
			Location:       "Nusa Dua, Bali",
			Description:    "A luxurious beachfront resort featuring Balinese architecture, world-class spa, and stunning ocean views.",
			PricePerNight:  2500000,
			AvailableRooms: 150,
			ImageURL:       "/uploads/hotels/hotel-laguna-1.jpg",
		},
		{
			Name:           "Ayodya Resort Bali",
			Location:       "Ubud, Bali",
			Description:    "Nestled in the heart of Ubud's rice terraces, this resort offers traditional Balinese villas with modern amenities.",
			PricePerNight:  1800000,
			AvailableRooms: 85,
			ImageURL:       "/uploads/hotels/hotel-ayodya-resort-1.jpg",
		},
		{
			Name:           "Grand Hyatt Jakarta",
			Location:       "Jakarta Pusat, DKI Jakarta",
			Description:    "Jakarta's premier luxury hotel featuring stunning architecture, world-class dining, and proximity to business districts.",
			PricePerNight:  1200000,
			AvailableRooms: 200,
			ImageURL:       "/uploads/hotels/hotel-grand-hyatt-1.jpg",
		},
		{
			Name:           "Shangri-La Hotel Surabaya",
			Location:       "Surabaya, Jawa Timur",
			Description:    "A five-star hotel overlooking the city skyline, offering exceptional service and multiple dining options.",
			PricePerNight:  950000,
			AvailableRooms: 120,
			ImageURL:       "/uploads/hotels/hotel-shangri-la-1.jpg",
		},
		{
			Name:               "Hotel Tentrem Yogyakarta",
			Location:           "Yogyakarta, DIY",
			Description:        "Javanese hospitality in the heart of Yogyakarta, minutes from Malioboro street.",
			PricePerNight:      850000,
			AvailableRooms:     110,
			DiscountPercentage: 10,
			ImageURL:           "/uploads/hotels/hotel-tentrem-1.jpg",
		},
	}
	for i := range hotels {
		hotels[i].ApplyDiscount()
	}
	return db.Create(&hotels).Error
}

func seedBlogs(db *gorm.DB) error {
	var count int64
	db.Model(&models.Blog{}).Count(&count)
	if count > 0 {
		return nil
	}

	blogs := []models.Blog{
		{
			Title:    "10 Hidden Beaches in Bali You Must Visit",
			Content:  "Beyond the crowded shores of Kuta and Seminyak lie quiet coves that most travelers never find...",
			Category: "Travel Tips",
		},
		{
			Title:    "How to Plan a Budget Trip to Yogyakarta",
			Content:  "Yogyakarta rewards travelers who plan ahead. From affordable guesthouses near Malioboro to street food tours...",
			Category: "Budget Travel",
		},
	}
	return db.Create(&blogs).Error
}
