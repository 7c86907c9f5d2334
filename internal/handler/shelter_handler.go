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

type shelterService interface {
	List(ctx context.Context) ([]models.Shelter, error)
	Get(ctx context.Context, id int64) (*models.Shelter, error)
	Create(ctx context.Context, req service.ShelterRequest) (*models.Shelter, error)
	Update(ctx context.Context, id int64, req service.ShelterRequest) (*models.Shelter, error)
}

// ShelterHandler wires HTTP endpoints to the shelter service.
type ShelterHandler struct {
	service shelterService
}

// NewShelterHandler creates a new handler.
func NewShelterHandler(svc shelterService) *ShelterHandler {
	return &ShelterHandler{service: svc}
}

// List godoc
// @Summary List shelters
// @Description Return the shelter directory
// @Tags Shelters
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /shelters [get]
func (h *ShelterHandler) List(c *gin.Context) {
	shelters, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, shelters, nil)
}

// Get godoc
// @Summary Get shelter by ID
// @Description Return a single shelter
// @Tags Shelters
// @Produce json
// @Param id path int true "Shelter ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /shelters/{id} [get]
func (h *ShelterHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid shelter ID"))
		return
	}

	shelter, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, shelter, nil)
}

// Create godoc
// @Summary Create shelter
// @Description Register a shelter, admin only
// @Tags Shelters
// @Accept json
// @Produce json
// @Param payload body service.ShelterRequest true "Shelter payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /shelters [post]
func (h *ShelterHandler) Create(c *gin.Context) {
	var req service.ShelterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid shelter payload"))
		return
	}

	shelter, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, shelter)
}

// Update godoc
// @Summary Update shelter
// @Description Update a shelter, admin only
// @Tags Shelters
// @Accept json
// @Produce json
// @Param id path int true "Shelter ID"
// @Param payload body service.ShelterRequest true "Shelter payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /shelters/{id} [put]
func (h *ShelterHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid shelter ID"))
		return
	}

	var req service.ShelterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid shelter payload"))
		return
	}

	shelter, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, shelter, nil)
}
