package devapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"aniversario/internal/client"
	"aniversario/internal/pkg/validator"
)

// Handler serves the stub of the remote API. Its bodies follow the remote
// contract ({success, message, ...}) rather than this repo's envelope.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Confirm handles POST /api/confirmar-presenca
func (h *Handler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, client.ConfirmResponse{Message: MsgInvalidJSON})
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": MsgInvalidJSON, "errors": errs})
		return
	}

	status, resp, err := h.service.Confirm(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
	}
	c.JSON(status, resp)
}

// ListConfirmations handles GET /api/confirmacoes
func (h *Handler) ListConfirmations(c *gin.Context) {
	rows, err := h.service.ListConfirmations(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": MsgInternal})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rows})
}

// Upload handles POST /api/fotos/upload
func (h *Handler) Upload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, client.UploadResponse{Message: MsgInvalidJSON})
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": MsgInvalidPhoto, "errors": errs})
		return
	}

	photo, err := h.service.Upload(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidImageData), errors.Is(err, ErrEmptyPhoto):
			c.JSON(http.StatusBadRequest, client.UploadResponse{Message: MsgInvalidPhoto})
		case errors.Is(err, ErrNotJPEG):
			c.JSON(http.StatusUnsupportedMediaType, client.UploadResponse{Message: MsgInvalidPhoto})
		case errors.Is(err, ErrPhotoTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, client.UploadResponse{Message: MsgPhotoTooLarge})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, client.UploadResponse{Message: MsgInternal})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": MsgPhotoStored, "id": photo.ID})
}
