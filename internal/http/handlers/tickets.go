package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/culprog/backend/internal/http/middleware"
	"github.com/culprog/backend/internal/models"
	"github.com/culprog/backend/internal/service"
)

// @Summary List tickets visible to the caller
// @Tags tickets
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/fetch-tickets [get]
func (h *Handler) FetchTickets(c *gin.Context) {
	claims, _ := middleware.SessionClaims(c)
	items, err := h.Store.ListTicketsForUser(c.Request.Context(), claims.Subject, claims.Role)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list tickets", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type AddTicketRequest struct {
	Subject     string  `json:"subject" validate:"required"`
	Message     string  `json:"message" validate:"required"`
	Type        string  `json:"type" validate:"required,oneof=session question idea bug other"`
	RecipientID *string `json:"recipient_id" validate:"omitempty,uuid"`
}

// @Summary Create a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Success 201 {object} models.Ticket
// @Router /api/add-ticket [post]
func (h *Handler) AddTicket(c *gin.Context) {
	var req AddTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	claims, _ := middleware.SessionClaims(c)
	t := models.Ticket{
		ID:          uuid.NewString(),
		Subject:     req.Subject,
		Message:     req.Message,
		Type:        models.TicketType(req.Type),
		Status:      models.TicketOpen,
		SenderID:    claims.Subject,
		RecipientID: req.RecipientID,
		CreatedAt:   time.Now().UTC(),
	}
	t.UpdatedAt = t.CreatedAt
	if err := h.Store.InsertTicket(c.Request.Context(), t); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create ticket", err.Error())
		return
	}
	c.JSON(http.StatusCreated, t)
}

type UpdateTicketRequest struct {
	ID     string `json:"id" validate:"required,uuid"`
	Status string `json:"status" validate:"required,oneof=open in_progress closed"`
}

// @Summary Change a ticket's status
// @Tags tickets
// @Accept json
// @Produce json
// @Success 200 {object} models.Ticket
// @Failure 409 {object} map[string]any
// @Router /api/update-ticket [put]
func (h *Handler) UpdateTicket(c *gin.Context) {
	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	t, err := h.Store.GetTicket(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load ticket", err.Error())
		return
	}

	claims, _ := middleware.SessionClaims(c)
	if !canManageTicket(claims.Subject, claims.Role, t) {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Only the recipient may change ticket status", nil)
		return
	}

	prev := t.Status
	t, err = service.Transition(t, models.TicketStatus(req.Status))
	if err != nil {
		writeError(c, http.StatusConflict, "INVALID_STATE", err.Error(), nil)
		return
	}
	// Repeating the current status must not bump updated_at, which would
	// re-mark the thread unread for everyone.
	if t.Status != prev {
		if err := h.Store.UpdateTicketStatus(c.Request.Context(), t.ID, t.Status); err != nil {
			writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update ticket", err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, t)
}

// @Summary Delete a ticket
// @Tags tickets
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/delete-ticket/{id} [delete]
func (h *Handler) DeleteTicket(c *gin.Context) {
	id := c.Param("id")
	if err := h.Store.DeleteTicket(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Ticket not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete ticket", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) FetchTicketReplies(c *gin.Context) {
	ticketID := c.Param("ticketId")
	items, err := h.Store.ListReplies(c.Request.Context(), ticketID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list replies", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type AddReplyRequest struct {
	TicketID string `json:"ticket_id" validate:"required,uuid"`
	Message  string `json:"message" validate:"required"`
}

// @Summary Append a message to a ticket thread
// @Tags tickets
// @Accept json
// @Produce json
// @Success 201 {object} models.TicketReply
// @Failure 409 {object} map[string]any
// @Router /api/add-ticket-reply [post]
func (h *Handler) AddTicketReply(c *gin.Context) {
	var req AddReplyRequest
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
	if !service.CanReply(t) {
		writeError(c, http.StatusConflict, "INVALID_STATE", "Ticket is closed", nil)
		return
	}

	claims, _ := middleware.SessionClaims(c)
	r := models.TicketReply{
		ID:        uuid.NewString(),
		TicketID:  t.ID,
		SenderID:  claims.Subject,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Store.InsertReply(c.Request.Context(), r); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to add reply", err.Error())
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *Handler) MarkTicketViewed(c *gin.Context) {
	claims, _ := middleware.SessionClaims(c)
	if err := h.Store.MarkTicketViewed(c.Request.Context(), c.Param("ticketId"), claims.Subject); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to mark ticket viewed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func canManageTicket(userID string, role models.Role, t models.Ticket) bool {
	if role == models.RoleAdmin {
		return true
	}
	return t.RecipientID != nil && *t.RecipientID == userID
}
