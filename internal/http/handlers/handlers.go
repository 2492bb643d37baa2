package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/culprog/backend/internal/assist"
	"github.com/culprog/backend/internal/auth"
	"github.com/culprog/backend/internal/db"
	"github.com/culprog/backend/internal/http/middleware"
)

type Handler struct {
	Store         *db.Store
	Checker       assist.Checker
	Sessions      auth.Sessions
	Validator     *validator.Validate
	Logger        zerolog.Logger
	SecureCookies bool
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// @Summary Sign in
// @Tags session
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /api/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	u, err := h.Store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Wrong email or password", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load user", err.Error())
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Wrong email or password", nil)
		return
	}

	token, err := h.Sessions.Issue(u, time.Now())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "SESSION_ERROR", "Failed to create session", err.Error())
		return
	}
	c.SetCookie(auth.SessionCookie, token, int(h.Sessions.TTL.Seconds()), "/", "", h.SecureCookies, true)
	c.JSON(http.StatusOK, gin.H{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", h.SecureCookies, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Me(c *gin.Context) {
	claims, ok := middleware.SessionClaims(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Sign in required", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": claims.Subject, "name": claims.Name, "role": claims.Role})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
