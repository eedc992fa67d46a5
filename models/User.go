package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Role is the coarse capability tag attached to a User. Route middleware
// compares it explicitly instead of duck-typing the identity record.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"password"`
	Role     Role   `json:"role" gorm:"type:varchar(20);default:user;index"`

	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// MarshalJSON never exposes the password hash.
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Password string `json:"password,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(u),
	}
	aux.Password = ""
	return json.Marshal(aux)
}
