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

type petService interface {
	List(ctx context.Context, filter models.PetFilter) ([]models.Pet, error)
	Get(ctx context.Context, id int64) (*models.Pet, error)
	Create(ctx context.Context, req service.PetRequest) (*models.Pet, error)
	Update(ctx context.Context, id int64, req service.PetRequest) (*models.Pet, error)
	Delete(ctx context.Context, id int64) error
}

// PetHandler wires HTTP endpoints to the pet service.
type PetHandler struct {
	service petService
}

// NewPetHandler creates a new handler.
func NewPetHandler(svc petService) *PetHandler {
	return &PetHandler{service: svc}
}

// List godoc
// @Summary List pets
// @Description List pets in the adoption catalog with optional filters
// @Tags Pets
// @Produce json
// @Param type query string false "Pet type"
// @Param status query string false "Adoption status"
// @Param gender query string false "Gender"
// @Param size query string false "Size"
// @Success 200 {object} response.Envelope
// @Router /pets [get]
func (h *PetHandler) List(c *gin.Context) {
	filter := models.PetFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Gender: c.Query("gender"),
		Size:   c.Query("size"),
	}

	pets, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, pets, nil)
}

// Get godoc
// @Summary Get pet by ID
// @Description Return a single pet listing
// @Tags Pets
// @Produce json
// @Param id path int true "Pet ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pets/{id} [get]
func (h *PetHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid pet ID"))
		return
	}

	pet, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, pet, nil)
}

// Create godoc
// @Summary Create pet listing
// @Description Create a new pet, shelter staff or admin only
// @Tags Pets
// @Accept json
// @Produce json
// @Param payload body service.PetRequest true "Pet payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /pets [post]
func (h *PetHandler) Create(c *gin.Context) {
	var req service.PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid pet payload"))
		return
	}

	pet, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, pet)
}

// Update godoc
// @Summary Update pet listing
// @Description Update a pet, shelter staff or admin only
// @Tags Pets
// @Accept json
// @Produce json
// @Param id path int true "Pet ID"
// @Param payload body service.PetRequest true "Pet payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pets/{id} [put]
func (h *PetHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid pet ID"))
		return
	}

	var req service.PetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid pet payload"))
		return
	}

	pet, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, pet, nil)
}

// Delete godoc
// @Summary Delete pet listing
// @Description Remove a pet, shelter staff or admin only
// @Tags Pets
// @Produce json
// @Param id path int true "Pet ID"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /pets/{id} [delete]
func (h *PetHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid pet ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
