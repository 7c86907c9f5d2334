package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/petrescuehub/rescuehub-api/internal/models"
	appErrors "github.com/petrescuehub/rescuehub-api/pkg/errors"
)

type lostFoundRepository interface {
	FindByID(ctx context.Context, id int64) (*models.LostFoundPet, error)
	List(ctx context.Context, reportType string) ([]models.LostFoundPet, error)
	Create(ctx context.Context, report *models.LostFoundPet) error
	Update(ctx context.Context, report *models.LostFoundPet) error
}

// Accepted layouts for the textual date field on reports.
var reportDateLayouts = []string{time.RFC3339, "2006-01-02"}

// LostFoundRequest holds the payload for creating or updating a report.
// Date arrives as text and is parsed before validation; unparseable text
// fails validation rather than being coerced.
type LostFoundRequest struct {
	Type         models.ReportType `json:"type" validate:"required,oneof=lost found"`
	PetType      string            `json:"pet_type" validate:"required"`
	Breed        *string           `json:"breed"`
	Name         *string           `json:"name"`
	Gender       *string           `json:"gender"`
	Description  string            `json:"description" validate:"required"`
	Location     string            `json:"location" validate:"required"`
	Date         string            `json:"date" validate:"required"`
	Status       models.ReportStatus `json:"status" validate:"omitempty,oneof=open closed"`
	ContactName  string            `json:"contact_name" validate:"required"`
	ContactEmail string            `json:"contact_email" validate:"required,email"`
	ContactPhone string            `json:"contact_phone" validate:"required"`
	Images       []string          `json:"images"`
}

// LostFoundService handles lost/found report use-cases.
type LostFoundService struct {
	repo      lostFoundRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLostFoundService constructs the lost/found service.
func NewLostFoundService(repo lostFoundRepository, validate *validator.Validate, logger *zap.Logger) *LostFoundService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LostFoundService{repo: repo, validator: validate, logger: logger}
}

// List returns reports, optionally filtered by type. Unknown type values
// are ignored rather than rejected, matching the public listing contract.
func (s *LostFoundService) List(ctx context.Context, reportType string) ([]models.LostFoundPet, error) {
	if reportType != string(models.ReportLost) && reportType != string(models.ReportFound) {
		reportType = ""
	}
	reports, err := s.repo.List(ctx, reportType)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list reports")
	}
	return reports, nil
}

// Get returns a single report.
func (s *LostFoundService) Get(ctx context.Context, id int64) (*models.LostFoundPet, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lost/found report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}
	return report, nil
}

// Create files a new report. reporterID is nil for anonymous reports.
func (s *LostFoundService) Create(ctx context.Context, reporterID *int64, req LostFoundRequest) (*models.LostFoundPet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid report payload")
	}
	date, err := parseReportDate(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format")
	}

	report := &models.LostFoundPet{
		Type:         req.Type,
		PetType:      req.PetType,
		Breed:        req.Breed,
		Name:         req.Name,
		Gender:       req.Gender,
		Description:  req.Description,
		Location:     req.Location,
		Date:         date,
		Status:       models.ReportOpen,
		ReporterID:   reporterID,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Images:       pq.StringArray(req.Images),
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create report")
	}

	s.logger.Info("lost/found report created",
		zap.Int64("report_id", report.ID),
		zap.String("type", string(report.Type)),
		zap.Bool("anonymous", reporterID == nil),
	)
	return report, nil
}

// Update edits a report. Only the reporter or an admin may edit; reports
// filed anonymously can only be edited by an admin.
func (s *LostFoundService) Update(ctx context.Context, id int64, actor *models.JWTClaims, req LostFoundRequest) (*models.LostFoundPet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid report payload")
	}
	date, err := parseReportDate(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format")
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lost/found report not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load report")
	}

	if !canEditReport(report, actor) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "not allowed to update this report")
	}

	report.Type = req.Type
	report.PetType = req.PetType
	report.Breed = req.Breed
	report.Name = req.Name
	report.Gender = req.Gender
	report.Description = req.Description
	report.Location = req.Location
	report.Date = date
	report.ContactName = req.ContactName
	report.ContactEmail = req.ContactEmail
	report.ContactPhone = req.ContactPhone
	report.Images = pq.StringArray(req.Images)
	if req.Status != "" {
		report.Status = req.Status
	}

	if err := s.repo.Update(ctx, report); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update report")
	}
	return report, nil
}

func canEditReport(report *models.LostFoundPet, actor *models.JWTClaims) bool {
	if actor == nil {
		return false
	}
	if actor.Role == models.RoleAdmin {
		return true
	}
	return report.ReporterID != nil && *report.ReporterID == actor.UserID
}

func parseReportDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range reportDateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
