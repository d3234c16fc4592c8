package photo

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the upload controller routes under api and its
// websocket under ws. Both groups must run behind session.Middleware.
func RegisterRoutes(api *gin.RouterGroup, ws *gin.RouterGroup, h *Handler) {
	photos := api.Group("/fotos")
	{
		photos.GET("", h.GetState)
		photos.POST("/opcoes", h.ShowOptions)
		photos.POST("/arquivo", h.SelectFile)
		photos.POST("/enviar", h.Send)
		photos.POST("/cancelar", h.Cancel)
		photos.POST("/voltar", h.Back)
		photos.POST("/outra", h.SendAnother)
		photos.POST("/tentar-novamente", h.Retry)
	}
	ws.GET("/fotos", h.Events)
}
