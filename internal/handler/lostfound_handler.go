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

type lostFoundService interface {
	List(ctx context.Context, reportType string) ([]models.LostFoundPet, error)
	Get(ctx context.Context, id int64) (*models.LostFoundPet, error)
	Create(ctx context.Context, reporterID *int64, req service.LostFoundRequest) (*models.LostFoundPet, error)
	Update(ctx context.Context, id int64, actor *models.JWTClaims, req service.LostFoundRequest) (*models.LostFoundPet, error)
}

// LostFoundHandler wires HTTP endpoints to the lost/found report service.
type LostFoundHandler struct {
	service lostFoundService
}

// NewLostFoundHandler creates a new handler.
func NewLostFoundHandler(svc lostFoundService) *LostFoundHandler {
	return &LostFoundHandler{service: svc}
}

// List godoc
// @Summary List lost and found reports
// @Description Return reports, optionally filtered by type
// @Tags LostFound
// @Produce json
// @Param type query string false "Report type (lost or found)"
// @Success 200 {object} response.Envelope
// @Router /lost-found-pets [get]
func (h *LostFoundHandler) List(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context(), c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, reports, nil)
}

// Get godoc
// @Summary Get report by ID
// @Description Return a single lost/found report
// @Tags LostFound
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lost-found-pets/{id} [get]
func (h *LostFoundHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid report ID"))
		return
	}

	report, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, report, nil)
}

// Create godoc
// @Summary File a report
// @Description File a lost or found report, anonymously or as a signed-in user
// @Tags LostFound
// @Accept json
// @Produce json
// @Param payload body service.LostFoundRequest true "Report payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /lost-found-pets [post]
func (h *LostFoundHandler) Create(c *gin.Context) {
	var req service.LostFoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report payload"))
		return
	}

	report, err := h.service.Create(c.Request.Context(), optionalUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, report)
}

// Update godoc
// @Summary Update a report
// @Description Update a report, reporter or admin only
// @Tags LostFound
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param payload body service.LostFoundRequest true "Report payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lost-found-pets/{id} [put]
func (h *LostFoundHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid report ID"))
		return
	}

	var req service.LostFoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report payload"))
		return
	}

	report, err := h.service.Update(c.Request.Context(), id, claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, report, nil)
}
