package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/culprog/backend/internal/assist"
	"github.com/culprog/backend/internal/http/middleware"
	"github.com/culprog/backend/internal/models"
	"github.com/culprog/backend/internal/service"
)

type participantView struct {
	models.Participant
	AbsenceAlert bool `json:"absence_alert"`
}

// @Summary Roster with absence alerts
// @Tags roster
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/participants [get]
func (h *Handler) ListParticipants(c *gin.Context) {
	participants, err := h.Store.ListParticipants(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list participants", err.Error())
		return
	}
	today := time.Now()
	items := make([]participantView, 0, len(participants))
	for _, p := range participants {
		items = append(items, participantView{
			Participant:  p,
			AbsenceAlert: service.HasAbsenceAlert(p, today),
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type AttendanceRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,uuid"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Present       bool   `json:"present"`
}

func (h *Handler) RecordAttendance(c *gin.Context) {
	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	day, _ := time.Parse("2006-01-02", req.Date)
	if err := h.Store.UpsertAttendance(c.Request.Context(), req.ParticipantID, day, req.Present); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to record attendance", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ListNews(c *gin.Context) {
	items, err := h.Store.ListNews(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list news", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type AddNewsRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

func (h *Handler) AddNews(c *gin.Context) {
	var req AddNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}
	claims, _ := middleware.SessionClaims(c)
	n := models.NewsPost{
		ID:        uuid.NewString(),
		AuthorID:  claims.Subject,
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Store.InsertNews(c.Request.Context(), n); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create news post", err.Error())
		return
	}
	c.JSON(http.StatusCreated, n)
}

type exerciseView struct {
	models.Exercise
	Lightbulbs []bool `json:"lightbulbs"`
}

func (h *Handler) ListExercises(c *gin.Context) {
	exercises, err := h.Store.ListExercises(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list exercises", err.Error())
		return
	}
	items := make([]exerciseView, 0, len(exercises))
	for _, e := range exercises {
		items = append(items, exerciseView{
			Exercise:   e,
			Lightbulbs: service.DifficultyLightbulbs(e.Difficulty, service.LightbulbCount),
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type AssertExerciseRequest struct {
	ExerciseID string `json:"exercise_id" validate:"required,uuid"`
	Solution   string `json:"solution" validate:"required"`
	Language   string `json:"language"`
}

// @Summary Submit a solution for AI review
// @Tags exercises
// @Accept json
// @Produce json
// @Success 200 {object} assist.Verdict
// @Failure 504 {object} map[string]any
// @Router /api/assert-exercise [post]
func (h *Handler) AssertExercise(c *gin.Context) {
	var req AssertExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	e, err := h.Store.GetExercise(c.Request.Context(), req.ExerciseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Exercise not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load exercise", err.Error())
		return
	}

	verdict, err := h.Checker.Review(c.Request.Context(), assist.ReviewRequest{
		ExerciseID: e.ID,
		Statement:  e.Description,
		Solution:   req.Solution,
		Language:   req.Language,
	})
	if err != nil {
		if errors.Is(err, assist.ErrTimeout) {
			writeError(c, http.StatusGatewayTimeout, "ASSIST_TIMEOUT", "Review took too long and was aborted", nil)
			return
		}
		h.Logger.Error().Err(err).Str("exercise_id", e.ID).Msg("assist review failed")
		writeError(c, http.StatusBadGateway, "ASSIST_ERROR", "Review failed", nil)
		return
	}
	c.JSON(http.StatusOK, verdict)
}
