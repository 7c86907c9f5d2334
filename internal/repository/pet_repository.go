package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/petrescuehub/rescuehub-api/internal/models"
)

// PetRepository provides database access for the adoptable-pet catalog.
type PetRepository struct {
	db *sqlx.DB
}

// NewPetRepository creates a new instance of PetRepository.
func NewPetRepository(db *sqlx.DB) *PetRepository {
	return &PetRepository{db: db}
}

const petColumns = `id, name, type, breed, age, gender, size, color, weight, description, status, good_with_children, good_with_dogs, good_with_cats, shelter_id, images, created_at`

// FindByID returns a pet by identifier.
func (r *PetRepository) FindByID(ctx context.Context, id int64) (*models.Pet, error) {
	query := fmt.Sprintf(`SELECT %s FROM pets WHERE id = $1 LIMIT 1`, petColumns)
	var pet models.Pet
	if err := r.db.GetContext(ctx, &pet, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find pet by id: %w", err)
	}
	return &pet, nil
}

// LockByID loads a pet inside a transaction holding its row lock so that
// concurrent adoption transitions for the same pet serialize.
func (r *PetRepository) LockByID(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Pet, error) {
	query := fmt.Sprintf(`SELECT %s FROM pets WHERE id = $1 FOR UPDATE`, petColumns)
	var pet models.Pet
	if err := tx.GetContext(ctx, &pet, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("lock pet: %w", err)
	}
	return &pet, nil
}

// List returns pets matching all provided equality filters, newest first.
func (r *PetRepository) List(ctx context.Context, filter models.PetFilter) ([]models.Pet, error) {
	baseQuery := fmt.Sprintf(`SELECT %s FROM pets WHERE 1=1`, petColumns)
	var conditions []string
	var args []interface{}

	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)+1))
		args = append(args, filter.Type)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.Gender != "" {
		conditions = append(conditions, fmt.Sprintf("gender = $%d", len(args)+1))
		args = append(args, filter.Gender)
	}
	if filter.Size != "" {
		conditions = append(conditions, fmt.Sprintf("size = $%d", len(args)+1))
		args = append(args, filter.Size)
	}

	query := baseQuery
	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var pets []models.Pet
	if err := r.db.SelectContext(ctx, &pets, query, args...); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return pets, nil
}

// Create inserts a new pet and assigns its sequential identity.
func (r *PetRepository) Create(ctx context.Context, pet *models.Pet) error {
	pet.CreatedAt = time.Now().UTC()
	if pet.Status == "" {
		pet.Status = models.PetAvailable
	}
	if pet.Images == nil {
		pet.Images = pq.StringArray{}
	}

	const query = `INSERT INTO pets (name, type, breed, age, gender, size, color, weight, description, status, good_with_children, good_with_dogs, good_with_cats, shelter_id, images, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	if err := r.db.GetContext(ctx, &pet.ID, query,
		pet.Name, pet.Type, pet.Breed, pet.Age, pet.Gender, pet.Size, pet.Color,
		pet.Weight, pet.Description, pet.Status, pet.GoodWithChildren,
		pet.GoodWithDogs, pet.GoodWithCats, pet.ShelterID, pet.Images, pet.CreatedAt); err != nil {
		return fmt.Errorf("create pet: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of a pet, status included. Callers
// are responsible for only routing status changes through here on
// administrative edits.
func (r *PetRepository) Update(ctx context.Context, pet *models.Pet) error {
	if pet.Images == nil {
		pet.Images = pq.StringArray{}
	}
	const query = `UPDATE pets SET name = :name, type = :type, breed = :breed, age = :age, gender = :gender, size = :size, color = :color, weight = :weight, description = :description, status = :status, good_with_children = :good_with_children, good_with_dogs = :good_with_dogs, good_with_cats = :good_with_cats, shelter_id = :shelter_id, images = :images WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, pet); err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	return nil
}

// UpdateStatus sets the pet status, optionally inside a transaction.
func (r *PetRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status models.PetStatus) error {
	const query = `UPDATE pets SET status = $2 WHERE id = $1`
	if _, err := exec.ExecContext(ctx, query, id, status); err != nil {
		return fmt.Errorf("update pet status: %w", err)
	}
	return nil
}

// Delete removes a pet from the catalog.
func (r *PetRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM pets WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete pet: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete pet rows affected: %w", err)
	}
	return affected > 0, nil
}
