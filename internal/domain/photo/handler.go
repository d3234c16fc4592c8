package photo

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"aniversario/internal/pkg/response"
	"aniversario/internal/session"
)

// DefaultMaxUploadBytes bounds the size of a selected source image.
const DefaultMaxUploadBytes = 25 * 1024 * 1024

// Handler exposes the upload controller over HTTP.
type Handler struct {
	service  *Service
	hub      *Hub
	maxBytes int64
}

func NewHandler(service *Service, hub *Hub, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &Handler{service: service, hub: hub, maxBytes: maxBytes}
}

// GetState handles GET /fotos
func (h *Handler) GetState(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.View(session.ID(c)))
}

// ShowOptions handles POST /fotos/opcoes
func (h *Handler) ShowOptions(c *gin.Context) {
	h.respond(c, h.service.ShowOptions)
}

// Cancel handles POST /fotos/cancelar
func (h *Handler) Cancel(c *gin.Context) {
	h.respond(c, h.service.Cancel)
}

// Back handles POST /fotos/voltar
func (h *Handler) Back(c *gin.Context) {
	h.respond(c, h.service.Back)
}

// SendAnother handles POST /fotos/outra
func (h *Handler) SendAnother(c *gin.Context) {
	h.respond(c, h.service.SendAnother)
}

// Retry handles POST /fotos/tentar-novamente
func (h *Handler) Retry(c *gin.Context) {
	h.respond(c, h.service.Retry)
}

// SelectFile handles POST /fotos/arquivo (multipart, field "file")
func (h *Handler) SelectFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "no file provided")
		return
	}

	file, err := h.readFile(fileHeader)
	if err != nil {
		h.fail(c, h.service.View(session.ID(c)), err)
		return
	}

	vm, err := h.service.SelectFile(session.ID(c), file)
	if err != nil {
		h.fail(c, vm, err)
		return
	}
	response.Success(c, http.StatusAccepted, vm)
}

// Send handles POST /fotos/enviar
func (h *Handler) Send(c *gin.Context) {
	vm, err := h.service.Send(c.Request.Context(), session.ID(c))
	if err != nil {
		h.fail(c, vm, err)
		return
	}
	response.Success(c, http.StatusOK, vm)
}

// Events handles GET /ws/fotos
func (h *Handler) Events(c *gin.Context) {
	sessionID := session.ID(c)
	conn, err := h.hub.Upgrade(c.Writer, c.Request)
	if err != nil {
		log.Printf("photo_ws_upgrade_failed session=%s error=%v", sessionID, err)
		return
	}
	h.hub.ServeWS(conn, sessionID)
}

func (h *Handler) respond(c *gin.Context, fn func(string) (ViewModel, error)) {
	vm, err := fn(session.ID(c))
	if err != nil {
		h.fail(c, vm, err)
		return
	}
	response.Success(c, http.StatusOK, vm)
}

// readFile loads the upload. The declared content type wins; when the
// browser sent none, the bytes are sniffed instead.
func (h *Handler) readFile(fileHeader *multipart.FileHeader) (SourceFile, error) {
	if fileHeader.Size > h.maxBytes {
		return SourceFile{}, ErrFileTooLarge
	}

	f, err := fileHeader.Open()
	if err != nil {
		return SourceFile{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return SourceFile{}, err
	}
	if int64(len(data)) > h.maxBytes {
		return SourceFile{}, ErrFileTooLarge
	}

	contentType := strings.TrimSpace(strings.Split(fileHeader.Header.Get("Content-Type"), ";")[0])
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(data).String()
	}

	return SourceFile{
		Name:        fileHeader.Filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func (h *Handler) fail(c *gin.Context, vm ViewModel, err error) {
	switch {
	case errors.Is(err, ErrNotImage):
		response.ErrorWithDetails(c, http.StatusUnsupportedMediaType, "NOT_AN_IMAGE", MsgInvalidImage, vm)
	case errors.Is(err, ErrEmptyFile):
		response.ErrorWithDetails(c, http.StatusBadRequest, "EMPTY_FILE", err.Error(), vm)
	case errors.Is(err, ErrFileTooLarge):
		response.ErrorWithDetails(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error(), vm)
	case errors.Is(err, ErrNotReady):
		response.ErrorWithDetails(c, http.StatusConflict, "NOT_READY", MsgWaitCompression, vm)
	case errors.Is(err, ErrSendInFlight):
		response.ErrorWithDetails(c, http.StatusConflict, "SEND_IN_FLIGHT", err.Error(), vm)
	case errors.Is(err, ErrWrongView):
		response.ErrorWithDetails(c, http.StatusConflict, "WRONG_VIEW", err.Error(), vm)
	default:
		_ = c.Error(err)
		response.ErrorWithDetails(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal error", vm)
	}
}
