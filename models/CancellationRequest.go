package models

import "gorm.io/gorm"

type CancellationStatus string

const (
	CancellationPending  CancellationStatus = "pending"
	CancellationApproved CancellationStatus = "approved"
	CancellationRejected CancellationStatus = "rejected"
)

// CancellationRequest is a user-initiated request to cancel a confirmed
// Reservation, resolved by an admin. A reservation can only carry one
// non-rejected request at a time; the confirmed-only gate on creation
// enforces it.
type CancellationRequest struct {
	gorm.Model
	ReservationID uint               `json:"reservationId" gorm:"index;not null"`
	Reason        string             `json:"reason" gorm:"not null"`
	Status        CancellationStatus `json:"status" gorm:"type:varchar(20);default:pending;index"`

	Reservation *Reservation `json:"reservation,omitempty" gorm:"foreignKey:ReservationID"`
}
