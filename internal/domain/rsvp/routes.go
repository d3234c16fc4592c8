package rsvp

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the confirmation form routes. The group must run
// behind session.Middleware.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	form := r.Group("/confirmacao")
	{
		form.GET("", h.GetForm)
		form.PUT("/nome", h.SetPrimary)
		form.POST("/acompanhantes", h.AddCompanion)
		form.PUT("/acompanhantes/:index", h.SetCompanion)
		form.DELETE("/acompanhantes/:index", h.RemoveCompanion)
		form.POST("/enviar", h.Submit)
		form.POST("/dica", h.OpenHint)
		form.DELETE("/dica", h.CloseHint)
		form.DELETE("/mensagem", h.DismissMessage)
	}
}
