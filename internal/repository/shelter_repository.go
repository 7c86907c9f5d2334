package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/petrescuehub/rescuehub-api/internal/models"
)

// ShelterRepository provides database access for the shelter directory.
type ShelterRepository struct {
	db *sqlx.DB
}

// NewShelterRepository creates a new instance of ShelterRepository.
func NewShelterRepository(db *sqlx.DB) *ShelterRepository {
	return &ShelterRepository{db: db}
}

const shelterColumns = `id, name, address, city, state, zip, phone, email, website, description`

// FindByID returns a shelter by identifier.
func (r *ShelterRepository) FindByID(ctx context.Context, id int64) (*models.Shelter, error) {
	query := fmt.Sprintf(`SELECT %s FROM shelters WHERE id = $1 LIMIT 1`, shelterColumns)
	var shelter models.Shelter
	if err := r.db.GetContext(ctx, &shelter, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find shelter by id: %w", err)
	}
	return &shelter, nil
}

// List returns every shelter in insertion order.
func (r *ShelterRepository) List(ctx context.Context) ([]models.Shelter, error) {
	query := fmt.Sprintf(`SELECT %s FROM shelters ORDER BY id ASC`, shelterColumns)
	var shelters []models.Shelter
	if err := r.db.SelectContext(ctx, &shelters, query); err != nil {
		return nil, fmt.Errorf("list shelters: %w", err)
	}
	return shelters, nil
}

// Create inserts a new shelter and assigns its sequential identity.
func (r *ShelterRepository) Create(ctx context.Context, shelter *models.Shelter) error {
	const query = `INSERT INTO shelters (name, address, city, state, zip, phone, email, website, description)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := r.db.GetContext(ctx, &shelter.ID, query,
		shelter.Name, shelter.Address, shelter.City, shelter.State, shelter.Zip,
		shelter.Phone, shelter.Email, shelter.Website, shelter.Description); err != nil {
		return fmt.Errorf("create shelter: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of a shelter.
func (r *ShelterRepository) Update(ctx context.Context, shelter *models.Shelter) error {
	const query = `UPDATE shelters SET name = :name, address = :address, city = :city, state = :state, zip = :zip, phone = :phone, email = :email, website = :website, description = :description WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, shelter); err != nil {
		return fmt.Errorf("update shelter: %w", err)
	}
	return nil
}
