package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/culprog/backend/internal/assist"
	"github.com/culprog/backend/internal/auth"
	"github.com/culprog/backend/internal/config"
	"github.com/culprog/backend/internal/db"
	"github.com/culprog/backend/internal/http/handlers"
	"github.com/culprog/backend/internal/http/middleware"
	"github.com/culprog/backend/internal/models"

	_ "github.com/culprog/backend/docs"
)

func Router(cfg config.Config, store *db.Store, checker assist.Checker, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	sessions := auth.Sessions{Secret: []byte(cfg.JWTSecret), TTL: cfg.SessionTTL}
	h := &handlers.Handler{
		Store:         store,
		Checker:       checker,
		Sessions:      sessions,
		Validator:     validator.New(),
		Logger:        logger,
		SecureCookies: cfg.Env != "dev",
	}

	r.GET("/healthz", h.Healthz)
	r.POST("/api/login", h.Login)

	api := r.Group("/api")
	api.Use(middleware.Session(sessions))
	{
		api.POST("/logout", h.Logout)
		api.GET("/me", h.Me)

		api.GET("/fetch-tickets", h.FetchTickets)
		api.POST("/add-ticket", h.AddTicket)
		api.PUT("/update-ticket", h.UpdateTicket)
		api.GET("/fetch-ticket-replies/:ticketId", h.FetchTicketReplies)
		api.POST("/add-ticket-reply", h.AddTicketReply)
		api.POST("/ticket-view/:ticketId", h.MarkTicketViewed)

		api.GET("/ticket-time-suggestions/:ticketId", h.FetchTimeSuggestions)
		api.POST("/ticket-time-suggestion", h.AddTimeSuggestion)
		api.PUT("/ticket-time-suggestion/:id/respond", h.RespondTimeSuggestion)
		api.GET("/ticket-time-slots", h.TimeSlots)

		api.GET("/admin-availability", h.ListAvailability)
		api.POST("/admin-availability/book", h.BookAvailability)
		api.GET("/admin-availability/bookings", h.ListBookings)
		api.PUT("/admin-availability/bookings/:id/respond", h.RespondBooking)
		api.POST("/admin-availability/bookings/:id/seen", h.MarkBookingSeen)

		api.GET("/participants", h.ListParticipants)
		api.GET("/news", h.ListNews)
		api.GET("/exercises", h.ListExercises)
		api.POST("/assert-exercise", h.AssertExercise)
	}

	admin := api.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.DELETE("/delete-ticket/:id", h.DeleteTicket)
		admin.POST("/admin-availability", h.AddAvailability)
		admin.DELETE("/admin-availability/:id", h.DeleteAvailability)
		admin.POST("/attendance", h.RecordAttendance)
		admin.POST("/news", h.AddNews)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
