package models

import "time"

// AdoptionStatus is the lifecycle state of an adoption request.
// pending is the only non-terminal state.
type AdoptionStatus string

const (
	AdoptionPending  AdoptionStatus = "pending"
	AdoptionApproved AdoptionStatus = "approved"
	AdoptionRejected AdoptionStatus = "rejected"
)

// Terminal reports whether the status is a final state.
func (s AdoptionStatus) Terminal() bool {
	return s == AdoptionApproved || s == AdoptionRejected
}

// AdoptionRequest represents a user's request to adopt a pet.
type AdoptionRequest struct {
	ID        int64          `db:"id" json:"id"`
	PetID     int64          `db:"pet_id" json:"pet_id"`
	UserID    int64          `db:"user_id" json:"user_id"`
	Status    AdoptionStatus `db:"status" json:"status"`
	Message   *string        `db:"message" json:"message,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}

// AdoptionRequestWithPet joins a request with its pet for adopter views.
type AdoptionRequestWithPet struct {
	AdoptionRequest
	Pet Pet `db:"pet" json:"pet"`
}

// AdoptionRequestWithUser joins a request with its requester for staff
// views. The password hash is never selected.
type AdoptionRequestWithUser struct {
	AdoptionRequest
	User User `db:"requester" json:"user"`
}
