package devapi

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the stub endpoints at the same paths as the remote API.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.POST("/confirmar-presenca", h.Confirm)
		api.GET("/confirmacoes", h.ListConfirmations)
		api.POST("/fotos/upload", h.Upload)
	}
}
