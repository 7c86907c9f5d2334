package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/petrescuehub/rescuehub-api/internal/models"
)

// AdoptionRepository provides database access for adoption requests. The
// mutating methods take an ExtContext or Tx so the adoption service can
// compose a status transition and its cascade into one transaction.
type AdoptionRepository struct {
	db *sqlx.DB
}

// NewAdoptionRepository creates a new instance of AdoptionRepository.
func NewAdoptionRepository(db *sqlx.DB) *AdoptionRepository {
	return &AdoptionRepository{db: db}
}

const adoptionColumns = `id, pet_id, user_id, status, message, created_at`

// LockByID loads a request inside a transaction holding its row lock.
func (r *AdoptionRepository) LockByID(ctx context.Context, tx *sqlx.Tx, id int64) (*models.AdoptionRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM adoption_requests WHERE id = $1 FOR UPDATE`, adoptionColumns)
	var req models.AdoptionRequest
	if err := tx.GetContext(ctx, &req, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("lock adoption request: %w", err)
	}
	return &req, nil
}

// Create inserts a pending request and assigns its sequential identity.
func (r *AdoptionRepository) Create(ctx context.Context, tx *sqlx.Tx, req *models.AdoptionRequest) error {
	const query = `INSERT INTO adoption_requests (pet_id, user_id, status, message, created_at)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := tx.GetContext(ctx, &req.ID, query, req.PetID, req.UserID, req.Status, req.Message, req.CreatedAt); err != nil {
		return fmt.Errorf("create adoption request: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of a single request.
func (r *AdoptionRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id int64, status models.AdoptionStatus) error {
	const query = `UPDATE adoption_requests SET status = $2 WHERE id = $1`
	if _, err := exec.ExecContext(ctx, query, id, status); err != nil {
		return fmt.Errorf("update adoption request status: %w", err)
	}
	return nil
}

// RejectPendingForPet rejects every pending sibling request for the pet in
// one statement, visiting each exactly once regardless of order.
func (r *AdoptionRepository) RejectPendingForPet(ctx context.Context, exec sqlx.ExtContext, petID, excludeID int64) (int64, error) {
	const query = `UPDATE adoption_requests SET status = 'rejected' WHERE pet_id = $1 AND id <> $2 AND status = 'pending'`
	res, err := exec.ExecContext(ctx, query, petID, excludeID)
	if err != nil {
		return 0, fmt.Errorf("reject pending requests: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reject pending rows affected: %w", err)
	}
	return affected, nil
}

// CountOpenForPet reports how many requests for the pet are still pending
// and whether any is approved.
func (r *AdoptionRepository) CountOpenForPet(ctx context.Context, tx *sqlx.Tx, petID int64) (pending int, approved int, err error) {
	const query = `SELECT
	COUNT(*) FILTER (WHERE status = 'pending') AS pending,
	COUNT(*) FILTER (WHERE status = 'approved') AS approved
FROM adoption_requests WHERE pet_id = $1`
	var counts struct {
		Pending  int `db:"pending"`
		Approved int `db:"approved"`
	}
	if err := tx.GetContext(ctx, &counts, query, petID); err != nil {
		return 0, 0, fmt.Errorf("count open requests: %w", err)
	}
	return counts.Pending, counts.Approved, nil
}

// ListByUserWithPet returns the user's requests, each joined with its pet.
func (r *AdoptionRepository) ListByUserWithPet(ctx context.Context, userID int64) ([]models.AdoptionRequestWithPet, error) {
	const query = `SELECT
	ar.id, ar.pet_id, ar.user_id, ar.status, ar.message, ar.created_at,
	p.id AS "pet.id",
	p.name AS "pet.name",
	p.type AS "pet.type",
	p.breed AS "pet.breed",
	p.age AS "pet.age",
	p.gender AS "pet.gender",
	p.size AS "pet.size",
	p.color AS "pet.color",
	p.weight AS "pet.weight",
	p.description AS "pet.description",
	p.status AS "pet.status",
	p.good_with_children AS "pet.good_with_children",
	p.good_with_dogs AS "pet.good_with_dogs",
	p.good_with_cats AS "pet.good_with_cats",
	p.shelter_id AS "pet.shelter_id",
	p.images AS "pet.images",
	p.created_at AS "pet.created_at"
FROM adoption_requests ar
JOIN pets p ON p.id = ar.pet_id
WHERE ar.user_id = $1
ORDER BY ar.created_at DESC`

	var items []models.AdoptionRequestWithPet
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("list adoption requests by user: %w", err)
	}
	return items, nil
}

// ListByPetWithUser returns requests for a pet, each joined with its
// requester. The password hash column is deliberately not selected.
func (r *AdoptionRepository) ListByPetWithUser(ctx context.Context, petID int64) ([]models.AdoptionRequestWithUser, error) {
	const query = `SELECT
	ar.id, ar.pet_id, ar.user_id, ar.status, ar.message, ar.created_at,
	u.id AS "requester.id",
	u.username AS "requester.username",
	u.email AS "requester.email",
	u.name AS "requester.name",
	u.role AS "requester.role",
	u.phone AS "requester.phone",
	u.bio AS "requester.bio",
	u.profile_picture AS "requester.profile_picture",
	u.created_at AS "requester.created_at",
	u.updated_at AS "requester.updated_at"
FROM adoption_requests ar
JOIN users u ON u.id = ar.user_id
WHERE ar.pet_id = $1
ORDER BY ar.created_at DESC`

	var items []models.AdoptionRequestWithUser
	if err := r.db.SelectContext(ctx, &items, query, petID); err != nil {
		return nil, fmt.Errorf("list adoption requests by pet: %w", err)
	}
	return items, nil
}
