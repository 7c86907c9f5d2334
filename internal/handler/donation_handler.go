package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/petrescuehub/rescuehub-api/internal/models"
	"github.com/petrescuehub/rescuehub-api/internal/service"
	appErrors "github.com/petrescuehub/rescuehub-api/pkg/errors"
	"github.com/petrescuehub/rescuehub-api/pkg/response"
)

type donationService interface {
	Create(ctx context.Context, userID *int64, req service.DonationRequest) (*models.Donation, error)
	List(ctx context.Context, filter models.DonationFilter) ([]models.Donation, *models.Pagination, error)
	Export(ctx context.Context, format service.ExportFormat) (*service.ExportResult, error)
}

// DonationHandler wires HTTP endpoints to the donation service.
type DonationHandler struct {
	service donationService
}

// NewDonationHandler creates a new handler.
func NewDonationHandler(svc donationService) *DonationHandler {
	return &DonationHandler{service: svc}
}

// Create godoc
// @Summary Record a donation
// @Description Record a donation, anonymously or as a signed-in user
// @Tags Donations
// @Accept json
// @Produce json
// @Param payload body service.DonationRequest true "Donation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /donations [post]
func (h *DonationHandler) Create(c *gin.Context) {
	var req service.DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid donation payload"))
		return
	}

	donation, err := h.service.Create(c.Request.Context(), optionalUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, donation)
}

// List godoc
// @Summary List donations
// @Description List donations, admin only
// @Tags Donations
// @Produce json
// @Param shelter_id query int false "Shelter filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /donations [get]
func (h *DonationHandler) List(c *gin.Context) {
	filter := models.DonationFilter{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if raw := c.Query("shelter_id"); raw != "" {
		shelterID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid shelter ID"))
			return
		}
		filter.ShelterID = &shelterID
	}

	donations, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, donations, pagination)
}

// Export godoc
// @Summary Export donations
// @Description Download every donation as CSV or PDF, admin only
// @Tags Donations
// @Produce octet-stream
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /donations/export [get]
func (h *DonationHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	result, err := h.service.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Body)
}
