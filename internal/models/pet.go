package models

import (
	"time"

	"github.com/lib/pq"
)

// PetStatus is the adoptability state of a pet. It is mutated only by the
// adoption workflow or an administrative edit, never by a blind field merge.
type PetStatus string

const (
	PetAvailable PetStatus = "available"
	PetPending   PetStatus = "pending"
	PetAdopted   PetStatus = "adopted"
)

// Valid reports whether the status is one of the known pet statuses.
func (s PetStatus) Valid() bool {
	switch s {
	case PetAvailable, PetPending, PetAdopted:
		return true
	}
	return false
}

// Pet represents an adoptable animal in the catalog.
type Pet struct {
	ID               int64          `db:"id" json:"id"`
	Name             string         `db:"name" json:"name"`
	Type             string         `db:"type" json:"type"`
	Breed            *string        `db:"breed" json:"breed,omitempty"`
	Age              *int           `db:"age" json:"age,omitempty"`
	Gender           *string        `db:"gender" json:"gender,omitempty"`
	Size             *string        `db:"size" json:"size,omitempty"`
	Color            *string        `db:"color" json:"color,omitempty"`
	Weight           *string        `db:"weight" json:"weight,omitempty"`
	Description      *string        `db:"description" json:"description,omitempty"`
	Status           PetStatus      `db:"status" json:"status"`
	GoodWithChildren *bool          `db:"good_with_children" json:"good_with_children,omitempty"`
	GoodWithDogs     *bool          `db:"good_with_dogs" json:"good_with_dogs,omitempty"`
	GoodWithCats     *bool          `db:"good_with_cats" json:"good_with_cats,omitempty"`
	ShelterID        *int64         `db:"shelter_id" json:"shelter_id,omitempty"`
	Images           pq.StringArray `db:"images" json:"images"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
}

// PetFilter captures equality filters for listing pets. All provided
// fields must match (conjunctive).
type PetFilter struct {
	Type   string
	Status string
	Gender string
	Size   string
}

// Empty reports whether no filter fields are set.
func (f PetFilter) Empty() bool {
	return f.Type == "" && f.Status == "" && f.Gender == "" && f.Size == ""
}
