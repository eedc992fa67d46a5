package models

import "gorm.io/gorm"

// Blog is editorial content, unrelated to the booking domain. Plain CRUD.
type Blog struct {
	gorm.Model
	Title    string `json:"title" gorm:"not null"`
	Content  string `json:"content" gorm:"type:text;not null"`
	Author   string `json:"author" gorm:"default:'Admin'"`
	ImageURL string `json:"imageUrl"`
	Category string `json:"category" gorm:"default:'Travel Tips'"`
}
