package models

import (
	"time"

	"github.com/lib/pq"
)

// ReportType distinguishes lost-pet reports from found-pet sightings.
type ReportType string

const (
	ReportLost  ReportType = "lost"
	ReportFound ReportType = "found"
)

// ReportStatus is the manual lifecycle of a report.
type ReportStatus string

const (
	ReportOpen   ReportStatus = "open"
	ReportClosed ReportStatus = "closed"
)

// LostFoundPet is a user-submitted sighting record, distinct from the
// adoptable-pet catalog. ReporterID is nil for anonymous reports.
type LostFoundPet struct {
	ID           int64          `db:"id" json:"id"`
	Type         ReportType     `db:"type" json:"type"`
	PetType      string         `db:"pet_type" json:"pet_type"`
	Breed        *string        `db:"breed" json:"breed,omitempty"`
	Name         *string        `db:"name" json:"name,omitempty"`
	Gender       *string        `db:"gender" json:"gender,omitempty"`
	Description  string         `db:"description" json:"description"`
	Location     string         `db:"location" json:"location"`
	Date         time.Time      `db:"date" json:"date"`
	Status       ReportStatus   `db:"status" json:"status"`
	ReporterID   *int64         `db:"reporter_id" json:"reporter_id,omitempty"`
	ContactName  string         `db:"contact_name" json:"contact_name"`
	ContactEmail string         `db:"contact_email" json:"contact_email"`
	ContactPhone string         `db:"contact_phone" json:"contact_phone"`
	Images       pq.StringArray `db:"images" json:"images"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}
