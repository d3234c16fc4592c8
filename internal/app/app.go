// Package app assembles the HTTP servers so cmd/ binaries and end-to-end
// tests build exactly the same routers.
package app

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"aniversario/internal/client"
	"aniversario/internal/config"
	"aniversario/internal/devapi"
	"aniversario/internal/domain/photo"
	"aniversario/internal/domain/rsvp"
	"aniversario/internal/middleware"
	"aniversario/internal/session"
)

// Web is the invitation page backend.
type Web struct {
	Engine *gin.Engine
	RSVP   *rsvp.Service
	Photos *photo.Service
	Hub    *photo.Hub
}

// Close stops background work.
func (w *Web) Close() {
	w.Photos.Close()
}

// NewWeb wires the confirmation and photo controllers behind sessions.
func NewWeb(cfg *config.WebConfig, api *client.Client) *Web {
	tokens := session.NewTokens(cfg.SessionSecret, cfg.SessionTTL)
	forms := session.NewStore(cfg.SessionTTL, rsvp.NewForm)
	uploads := session.NewStore(cfg.SessionTTL, photo.NewState)

	origins := middleware.NewOrigins(cfg.AllowedOrigins)
	rsvpService := rsvp.NewService(forms, api)
	hub := photo.NewHub(origins.Allowed)
	photoService := photo.NewService(uploads, api, hub)

	r := gin.New()
	if gin.Mode() != gin.TestMode {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(origins))
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	sessions := session.Middleware(tokens, session.CookieOptions{
		Secure:   cfg.CookieSecure,
		SameSite: cfg.SameSite(),
		Path:     "/",
	})

	v1 := r.Group("/api/v1")
	v1.Use(limiter.Middleware(), sessions)
	ws := r.Group("/ws")
	ws.Use(sessions)

	rsvp.RegisterRoutes(v1, rsvp.NewHandler(rsvpService))
	photo.RegisterRoutes(v1, ws, photo.NewHandler(photoService, hub, cfg.MaxUploadBytes))

	return &Web{Engine: r, RSVP: rsvpService, Photos: photoService, Hub: hub}
}

// NewDevAPI migrates db and returns the router of the stub remote API.
func NewDevAPI(cfg *config.DevAPIConfig, db *gorm.DB) (*gin.Engine, error) {
	if err := db.AutoMigrate(devapi.Models()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	service := devapi.NewService(devapi.NewRepository(db), cfg.UploadsDir, cfg.MaxPhotoBytes, cfg.GiftSuggestions)

	r := gin.New()
	if gin.Mode() != gin.TestMode {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(middleware.NewOrigins(nil)))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	devapi.RegisterRoutes(r, devapi.NewHandler(service))
	return r, nil
}
