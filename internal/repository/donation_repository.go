package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/petrescuehub/rescuehub-api/internal/models"
)

// DonationRepository provides database access for donations.
type DonationRepository struct {
	db *sqlx.DB
}

// NewDonationRepository creates a new instance of DonationRepository.
func NewDonationRepository(db *sqlx.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// Create inserts a new donation and assigns its sequential identity.
func (r *DonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	donation.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO donations (amount, shelter_id, user_id, message, created_at)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.GetContext(ctx, &donation.ID, query,
		donation.Amount, donation.ShelterID, donation.UserID, donation.Message, donation.CreatedAt); err != nil {
		return fmt.Errorf("create donation: %w", err)
	}
	return nil
}

// List returns donations with total count, newest first.
func (r *DonationRepository) List(ctx context.Context, filter models.DonationFilter) ([]models.Donation, int, error) {
	baseQuery := `FROM donations WHERE 1=1`
	var args []interface{}

	if filter.ShelterID != nil {
		args = append(args, *filter.ShelterID)
		baseQuery += fmt.Sprintf(" AND shelter_id = $%d", len(args))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT id, amount, shelter_id, user_id, message, created_at %s ORDER BY created_at DESC LIMIT %d OFFSET %d", baseQuery, pageSize, offset)

	var donations []models.Donation
	if err := r.db.SelectContext(ctx, &donations, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list donations: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count donations: %w", err)
	}

	return donations, total, nil
}

// ListAll returns every donation for export, oldest first.
func (r *DonationRepository) ListAll(ctx context.Context) ([]models.Donation, error) {
	const query = `SELECT id, amount, shelter_id, user_id, message, created_at FROM donations ORDER BY created_at ASC`
	var donations []models.Donation
	if err := r.db.SelectContext(ctx, &donations, query); err != nil {
		return nil, fmt.Errorf("list all donations: %w", err)
	}
	return donations, nil
}
