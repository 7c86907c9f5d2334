package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/petrescuehub/rescuehub-api/internal/models"
	appErrors "github.com/petrescuehub/rescuehub-api/pkg/errors"
	"github.com/petrescuehub/rescuehub-api/pkg/export"
)

type donationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	List(ctx context.Context, filter models.DonationFilter) ([]models.Donation, int, error)
	ListAll(ctx context.Context) ([]models.Donation, error)
}

type donationShelterReader interface {
	FindByID(ctx context.Context, id int64) (*models.Shelter, error)
}

// DonationRequest is the payload for recording a donation. Amount is in
// minor currency units and must be positive.
type DonationRequest struct {
	Amount    int64   `json:"amount" validate:"required,gt=0"`
	ShelterID *int64  `json:"shelter_id" validate:"omitempty,gt=0"`
	Message   *string `json:"message"`
}

// ExportFormat names a supported donation export encoding.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportResult carries rendered export bytes plus response metadata.
type ExportResult struct {
	ContentType string
	Filename    string
	Body        []byte
}

// DonationService records donations and renders admin exports.
type DonationService struct {
	repo      donationRepository
	shelters  donationShelterReader
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDonationService constructs the donation service.
func NewDonationService(repo donationRepository, shelters donationShelterReader, validate *validator.Validate, logger *zap.Logger) *DonationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DonationService{
		repo:      repo,
		shelters:  shelters,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
	}
}

// Create records a donation. userID is nil for anonymous donations. A
// shelter reference, when present, must point at an existing shelter.
func (s *DonationService) Create(ctx context.Context, userID *int64, req DonationRequest) (*models.Donation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid donation payload")
	}
	if req.ShelterID != nil {
		if _, err := s.shelters.FindByID(ctx, *req.ShelterID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrValidation, "shelter does not exist")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check shelter")
		}
	}

	donation := &models.Donation{
		Amount:    req.Amount,
		ShelterID: req.ShelterID,
		UserID:    userID,
		Message:   req.Message,
	}
	if err := s.repo.Create(ctx, donation); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record donation")
	}

	s.logger.Info("donation recorded",
		zap.Int64("donation_id", donation.ID),
		zap.Int64("amount", donation.Amount),
		zap.Bool("anonymous", userID == nil),
	)
	return donation, nil
}

// List returns a page of donations. Callers gate this to admins.
func (s *DonationService) List(ctx context.Context, filter models.DonationFilter) ([]models.Donation, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	donations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list donations")
	}
	return donations, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Export renders every donation in the requested format.
func (s *DonationService) Export(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	if format != ExportCSV && format != ExportPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	donations, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load donations")
	}
	dataset := donationDataset(donations)

	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case ExportPDF:
		body, err := s.pdf.Render(dataset, "Donations")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("donations-%s.pdf", stamp),
			Body:        body,
		}, nil
	default:
		body, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("donations-%s.csv", stamp),
			Body:        body,
		}, nil
	}
}

func donationDataset(donations []models.Donation) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"ID", "Amount", "Shelter ID", "User ID", "Message", "Created At"},
		Rows:    make([]map[string]string, 0, len(donations)),
	}
	for _, d := range donations {
		row := map[string]string{
			"ID":         strconv.FormatInt(d.ID, 10),
			"Amount":     fmt.Sprintf("%.2f", float64(d.Amount)/100),
			"Created At": d.CreatedAt.Format(time.RFC3339),
		}
		if d.ShelterID != nil {
			row["Shelter ID"] = strconv.FormatInt(*d.ShelterID, 10)
		}
		if d.UserID != nil {
			row["User ID"] = strconv.FormatInt(*d.UserID, 10)
		}
		if d.Message != nil {
			row["Message"] = *d.Message
		}
		dataset.Rows = append(dataset.Rows, row)
	}
	return dataset
}
