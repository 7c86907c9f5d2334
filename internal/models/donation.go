package models

import "time"

// Donation records a monetary contribution. Amount is in minor currency
// units (cents). Shelter and user references are optional.
type Donation struct {
	ID        int64     `db:"id" json:"id"`
	Amount    int64     `db:"amount" json:"amount"`
	ShelterID *int64    `db:"shelter_id" json:"shelter_id,omitempty"`
	UserID    *int64    `db:"user_id" json:"user_id,omitempty"`
	Message   *string   `db:"message" json:"message,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DonationFilter captures filtering criteria for listing donations.
type DonationFilter struct {
	ShelterID *int64
	Page      int
	PageSize  int
}
