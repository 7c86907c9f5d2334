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

type adoptionService interface {
	Submit(ctx context.Context, userID int64, req service.SubmitAdoptionRequest) (*models.AdoptionRequest, error)
	Decide(ctx context.Context, id int64, req service.DecideAdoptionRequest) (*models.AdoptionRequest, error)
	ListForUser(ctx context.Context, userID int64) ([]models.AdoptionRequestWithPet, error)
	ListForPet(ctx context.Context, petID int64) ([]models.AdoptionRequestWithUser, error)
}

// AdoptionHandler wires HTTP endpoints to the adoption workflow service.
type AdoptionHandler struct {
	service adoptionService
}

// NewAdoptionHandler creates a new handler.
func NewAdoptionHandler(svc adoptionService) *AdoptionHandler {
	return &AdoptionHandler{service: svc}
}

// Submit godoc
// @Summary Submit adoption request
// @Description File an adoption request for an available pet
// @Tags Adoptions
// @Accept json
// @Produce json
// @Param payload body service.SubmitAdoptionRequest true "Request payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /adoption-requests [post]
func (h *AdoptionHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SubmitAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid adoption payload"))
		return
	}

	request, err := h.service.Submit(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, request)
}

// Decide godoc
// @Summary Decide adoption request
// @Description Approve or reject a pending request, staff or admin only
// @Tags Adoptions
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param payload body service.DecideAdoptionRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /adoption-requests/{id} [put]
func (h *AdoptionHandler) Decide(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid adoption request ID"))
		return
	}

	var req service.DecideAdoptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decision payload"))
		return
	}

	request, err := h.service.Decide(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, request, nil)
}

// ListMine godoc
// @Summary List my adoption requests
// @Description Return the caller's requests with pet details
// @Tags Adoptions
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /adoption-requests/user [get]
func (h *AdoptionHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	requests, err := h.service.ListForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, requests, nil)
}

// ListForPet godoc
// @Summary List requests for a pet
// @Description Return requests for a pet with requester details, staff or admin only
// @Tags Adoptions
// @Produce json
// @Param petId path int true "Pet ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /adoption-requests/pet/{petId} [get]
func (h *AdoptionHandler) ListForPet(c *gin.Context) {
	petID, err := strconv.ParseInt(c.Param("petId"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid pet ID"))
		return
	}

	requests, err := h.service.ListForPet(c.Request.Context(), petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, requests, nil)
}
