package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/culprog/backend/internal/db"
	"github.com/culprog/backend/internal/http/middleware"
	"github.com/culprog/backend/internal/models"
	"github.com/culprog/backend/internal/service"
)

func (h *Handler) FetchTimeSuggestions(c *gin.Context) {
	items, err := h.Store.ListSuggestions(c.Request.Context(), c.Param("ticketId"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list suggestions", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type AddSuggestionRequest struct {
	TicketID  string    `json:"ticket_id" validate:"required,uuid"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

// @Summary Propose a meeting time for a ticket
// @Tags scheduling
// @Accept json
// @Produce json
// @Success 201 {object} models.TimeSuggestion
// @Failure 409 {object} map[string]any
// @Router /api/ticket-time-suggestion [post]
func (h *Handler) AddTimeSuggestion(c *gin.Context) {
	var req AddSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	t, err := h.Store.GetTicket(c.Request.Context(), req.TicketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load ticket", err.Error())
		return
	}
	if t.Status == models.TicketClosed {
		writeError(c, http.StatusConflict, "INVALID_STATE", "Ticket is closed", nil)
		return
	}

	claims, _ := middleware.SessionClaims(c)
	sg := models.TimeSuggestion{
		ID:          uuid.NewString(),
		TicketID:    t.ID,
		SuggestedBy: claims.Subject,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      models.SuggestionPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Store.InsertSuggestion(c.Request.Context(), sg); err != nil {
		switch {
		case errors.Is(err, db.ErrPendingSuggestion):
			writeError(c, http.StatusConflict, "INVALID_STATE", "A pending suggestion already exists", nil)
		case errors.Is(err, db.ErrTicketClosed):
			writeError(c, http.StatusConflict, "INVALID_STATE", "Ticket is closed", nil)
		default:
			writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create suggestion", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, sg)
}

type RespondSuggestionRequest struct {
	Accept bool   `json:"accept"`
	Reason string `json:"reason"`
}

// @Summary Accept or decline a time suggestion
// @Tags scheduling
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 409 {object} map[string]any
// @Router /api/ticket-time-suggestion/{id}/respond [put]
func (h *Handler) RespondTimeSuggestion(c *gin.Context) {
	var req RespondSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}

	sg, err := h.Store.GetSuggestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Suggestion not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load suggestion", err.Error())
		return
	}

	t, err := h.Store.GetTicket(c.Request.Context(), sg.TicketID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load ticket", err.Error())
		return
	}

	claims, _ := middleware.SessionClaims(c)
	if sg.SuggestedBy == claims.Subject {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Cannot respond to your own suggestion", nil)
		return
	}
	if !canRespondSuggestion(claims.Subject, claims.Role, t, sg) {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Only the ticket's participants may respond", nil)
		return
	}

	if req.Accept {
		t, sg, err = service.AcceptSuggestion(t, sg)
	} else {
		t, sg, err = service.DeclineSuggestion(t, sg, req.Reason)
	}
	if err != nil {
		if errors.Is(err, service.ErrReasonRequired) {
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Decline reason is required", nil)
			return
		}
		writeError(c, http.StatusConflict, "INVALID_STATE", err.Error(), nil)
		return
	}

	if err := h.Store.SaveSuggestionResolution(c.Request.Context(), t, sg); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusConflict, "INVALID_STATE", "Suggestion already resolved", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to save response", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": t, "suggestion": sg})
}

// canRespondSuggestion limits suggestion resolution to the ticket's
// counterpart: the sender, the recipient or an admin, never the proposer.
func canRespondSuggestion(userID string, role models.Role, t models.Ticket, sg models.TimeSuggestion) bool {
	if sg.SuggestedBy == userID {
		return false
	}
	if role == models.RoleAdmin {
		return true
	}
	if t.SenderID == userID {
		return true
	}
	return t.RecipientID != nil && *t.RecipientID == userID
}

// @Summary Free meeting starts for an admin on a day
// @Tags scheduling
// @Produce json
// @Param admin_id query string true "Admin ID"
// @Param ticket_id query string true "Ticket ID"
// @Param date query string true "Calendar day (YYYY-MM-DD)"
// @Param duration query int false "Meeting length in minutes (30 or 60)"
// @Success 200 {object} map[string]any
// @Router /api/ticket-time-slots [get]
func (h *Handler) TimeSlots(c *gin.Context) {
	adminID := c.Query("admin_id")
	ticketID := c.Query("ticket_id")
	if adminID == "" || ticketID == "" {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "admin_id and ticket_id are required", nil)
		return
	}
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "date must be YYYY-MM-DD", nil)
		return
	}
	duration, _ := strconv.Atoi(c.DefaultQuery("duration", "30"))
	if duration != 30 && duration != 60 {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "duration must be 30 or 60", nil)
		return
	}

	bookings, err := h.Store.AcceptedBookingsOn(c.Request.Context(), adminID, day)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load bookings", err.Error())
		return
	}
	suggestions, err := h.Store.ListSuggestions(c.Request.Context(), ticketID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load suggestions", err.Error())
		return
	}

	grid := service.BuildSlotGrid(day, adminID, bookings, suggestions)
	hours := grid.StartHours(duration)
	minutes := make(map[string][]int, len(hours))
	for _, hr := range hours {
		minutes[strconv.Itoa(hr)] = grid.StartMinutes(hr, duration)
	}
	c.JSON(http.StatusOK, gin.H{"hours": hours, "minutes": minutes})
}
