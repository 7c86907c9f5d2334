package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/petrescuehub/rescuehub-api/internal/models"
)

// LostFoundRepository provides database access for lost/found reports.
type LostFoundRepository struct {
	db *sqlx.DB
}

// NewLostFoundRepository creates a new instance of LostFoundRepository.
func NewLostFoundRepository(db *sqlx.DB) *LostFoundRepository {
	return &LostFoundRepository{db: db}
}

const lostFoundColumns = `id, type, pet_type, breed, name, gender, description, location, date, status, reporter_id, contact_name, contact_email, contact_phone, images, created_at`

// FindByID returns a report by identifier.
func (r *LostFoundRepository) FindByID(ctx context.Context, id int64) (*models.LostFoundPet, error) {
	query := fmt.Sprintf(`SELECT %s FROM lost_found_pets WHERE id = $1 LIMIT 1`, lostFoundColumns)
	var report models.LostFoundPet
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find lost/found report by id: %w", err)
	}
	return &report, nil
}

// List returns reports, optionally filtered by type, newest first.
func (r *LostFoundRepository) List(ctx context.Context, reportType string) ([]models.LostFoundPet, error) {
	query := fmt.Sprintf(`SELECT %s FROM lost_found_pets`, lostFoundColumns)
	var args []interface{}
	if reportType != "" {
		query += ` WHERE type = $1`
		args = append(args, reportType)
	}
	query += ` ORDER BY created_at DESC`

	var reports []models.LostFoundPet
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, fmt.Errorf("list lost/found reports: %w", err)
	}
	return reports, nil
}

// Create inserts a new report and assigns its sequential identity.
func (r *LostFoundRepository) Create(ctx context.Context, report *models.LostFoundPet) error {
	report.CreatedAt = time.Now().UTC()
	if report.Status == "" {
		report.Status = models.ReportOpen
	}
	if report.Images == nil {
		report.Images = pq.StringArray{}
	}

	const query = `INSERT INTO lost_found_pets (type, pet_type, breed, name, gender, description, location, date, status, reporter_id, contact_name, contact_email, contact_phone, images, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	if err := r.db.GetContext(ctx, &report.ID, query,
		report.Type, report.PetType, report.Breed, report.Name, report.Gender,
		report.Description, report.Location, report.Date, report.Status,
		report.ReporterID, report.ContactName, report.ContactEmail,
		report.ContactPhone, report.Images, report.CreatedAt); err != nil {
		return fmt.Errorf("create lost/found report: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of a report.
func (r *LostFoundRepository) Update(ctx context.Context, report *models.LostFoundPet) error {
	if report.Images == nil {
		report.Images = pq.StringArray{}
	}
	const query = `UPDATE lost_found_pets SET type = :type, pet_type = :pet_type, breed = :breed, name = :name, gender = :gender, description = :description, location = :location, date = :date, status = :status, contact_name = :contact_name, contact_email = :contact_email, contact_phone = :contact_phone, images = :images WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("update lost/found report: %w", err)
	}
	return nil
}
