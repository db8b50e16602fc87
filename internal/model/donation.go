package model

import (
	"errors"

	"github.com/google/uuid"
)

// DonationStatus is the donation lifecycle state. Transitions only move
// forward: pending -> accepted -> distributed.
type DonationStatus string

const (
	DonationStatusPending     DonationStatus = "pending"
	DonationStatusAccepted    DonationStatus = "accepted"
	DonationStatusDistributed DonationStatus = "distributed"
)

// ErrStatusRegression is returned when a transition would move a donation
// backwards through its lifecycle.
var ErrStatusRegression = errors.New("donation status cannot move backwards")

// Valid reports whether s is one of the enumerated statuses.
func (s DonationStatus) Valid() bool {
	switch s {
	case DonationStatusPending, DonationStatusAccepted, DonationStatusDistributed:
		return true
	}
	return false
}

func (s DonationStatus) rank() int {
	switch s {
	case DonationStatusPending:
		return 0
	case DonationStatusAccepted:
		return 1
	case DonationStatusDistributed:
		return 2
	}
	return -1
}

// CanAdvanceTo reports whether moving from s to next respects the forward
// ordering. Re-asserting the current status is allowed and idempotent.
func (s DonationStatus) CanAdvanceTo(next DonationStatus) bool {
	return next.Valid() && next.rank() >= s.rank()
}

// Donation represents a surplus-food donation submitted by a donor.
// Donations are never deleted; only their status changes.
type Donation struct {
	Base
	DonorID     uuid.UUID      `json:"donor_id" db:"donor_id"`
	Category    string         `json:"category" db:"category"`
	Quantity    int            `json:"quantity" db:"quantity"`
	ExpiryDate  string         `json:"expiry_date" db:"expiry_date"`
	DonorLat    *float64       `json:"donor_lat" db:"donor_lat"`
	DonorLng    *float64       `json:"donor_lng" db:"donor_lng"`
	ReceiverLat *float64       `json:"receiver_lat" db:"receiver_lat"`
	ReceiverLng *float64       `json:"receiver_lng" db:"receiver_lng"`
	Status      DonationStatus `json:"status" db:"status"`
}

// CreateDonationRequest represents donation submission parameters
type CreateDonationRequest struct {
	Category    string   `json:"category" binding:"required"`
	Quantity    int      `json:"quantity" binding:"required,gt=0"`
	ExpiryDate  string   `json:"expiry_date" binding:"required"`
	DonorLat    *float64 `json:"donor_lat" binding:"omitempty,latitude"`
	DonorLng    *float64 `json:"donor_lng" binding:"omitempty,longitude"`
	ReceiverLat *float64 `json:"receiver_lat" binding:"omitempty,latitude"`
	ReceiverLng *float64 `json:"receiver_lng" binding:"omitempty,longitude"`
}

// UpdateDonationStatusRequest represents a status transition request
type UpdateDonationStatusRequest struct {
	Status DonationStatus `json:"status" binding:"required,donationstatus"`
}
