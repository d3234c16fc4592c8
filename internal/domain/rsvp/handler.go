package rsvp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aniversario/internal/pkg/response"
	"aniversario/internal/session"
)

// Handler exposes the confirmation form over HTTP. Every endpoint answers
// with the form view so the page can re-render from it.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetForm handles GET /confirmacao
func (h *Handler) GetForm(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.View(session.ID(c)))
}

// SetPrimary handles PUT /confirmacao/nome
func (h *Handler) SetPrimary(c *gin.Context) {
	var req SetNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	response.Success(c, http.StatusOK, h.service.SetPrimary(session.ID(c), req.Value))
}

// AddCompanion handles POST /confirmacao/acompanhantes
func (h *Handler) AddCompanion(c *gin.Context) {
	view, err := h.service.AddCompanion(session.ID(c))
	if err != nil {
		h.fail(c, view, err)
		return
	}
	response.Success(c, http.StatusCreated, view)
}

// SetCompanion handles PUT /confirmacao/acompanhantes/:index
func (h *Handler) SetCompanion(c *gin.Context) {
	index, ok := companionIndex(c)
	if !ok {
		return
	}
	var req SetNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	view, err := h.service.SetCompanion(session.ID(c), index, req.Value)
	if err != nil {
		h.fail(c, view, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// RemoveCompanion handles DELETE /confirmacao/acompanhantes/:index
func (h *Handler) RemoveCompanion(c *gin.Context) {
	index, ok := companionIndex(c)
	if !ok {
		return
	}
	view, err := h.service.RemoveCompanion(session.ID(c), index)
	if err != nil {
		h.fail(c, view, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Submit handles POST /confirmacao/enviar
func (h *Handler) Submit(c *gin.Context) {
	view, err := h.service.Submit(c.Request.Context(), session.ID(c))
	if err != nil {
		h.fail(c, view, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// OpenHint handles POST /confirmacao/dica
func (h *Handler) OpenHint(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.OpenHint(session.ID(c)))
}

// CloseHint handles DELETE /confirmacao/dica
func (h *Handler) CloseHint(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.CloseHint(session.ID(c)))
}

// DismissMessage handles DELETE /confirmacao/mensagem
func (h *Handler) DismissMessage(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.DismissMessage(session.ID(c)))
}

func (h *Handler) fail(c *gin.Context, view View, err error) {
	switch {
	case errors.Is(err, ErrValidationFailed):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), view)
	case errors.Is(err, ErrTooManyCompanions):
		response.ErrorWithDetails(c, http.StatusConflict, "COMPANION_LIMIT", MsgMaxCompanions, view)
	case errors.Is(err, ErrCompanionNotFound):
		response.ErrorWithDetails(c, http.StatusNotFound, "COMPANION_NOT_FOUND", err.Error(), view)
	case errors.Is(err, ErrSubmissionInFlight):
		response.ErrorWithDetails(c, http.StatusConflict, "SUBMISSION_IN_FLIGHT", err.Error(), view)
	case errors.Is(err, ErrAlreadyConfirmed):
		response.ErrorWithDetails(c, http.StatusConflict, "ALREADY_CONFIRMED", err.Error(), view)
	default:
		_ = c.Error(err)
		response.ErrorWithDetails(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error", view)
	}
}

func companionIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 1 {
		response.Error(c, http.StatusBadRequest, "INVALID_INDEX", "Companion index must be a positive integer")
		return 0, false
	}
	return index, true
}
