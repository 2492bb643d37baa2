package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/culprog/backend/internal/db"
	"github.com/culprog/backend/internal/http/middleware"
	"github.com/culprog/backend/internal/models"
)

func (h *Handler) ListAvailability(c *gin.Context) {
	items, err := h.Store.ListAvailabilities(c.Request.Context(), c.Query("admin_id"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type AddAvailabilityRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

// @Summary Publish a bookable window
// @Tags availability
// @Accept json
// @Produce json
// @Success 201 {object} models.Availability
// @Router /api/admin-availability [post]
func (h *Handler) AddAvailability(c *gin.Context) {
	var req AddAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	claims, _ := middleware.SessionClaims(c)
	a := models.Availability{
		ID:        uuid.NewString(),
		AdminID:   claims.Subject,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := h.Store.InsertAvailability(c.Request.Context(), a); err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create availability", err.Error())
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) DeleteAvailability(c *gin.Context) {
	if err := h.Store.DeleteAvailability(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Availability not found or already booked", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to delete availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type BookAvailabilityRequest struct {
	AvailabilityID string    `json:"availability_id" validate:"required,uuid"`
	StudentID      *string   `json:"student_id" validate:"omitempty,uuid"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Note           string    `json:"note"`
	MeetingType    string    `json:"meeting_type"`
}

// @Summary Reserve an availability window
// @Tags availability
// @Accept json
// @Produce json
// @Success 201 {object} models.Booking
// @Failure 409 {object} map[string]any
// @Router /api/admin-availability/book [post]
func (h *Handler) BookAvailability(c *gin.Context) {
	var req BookAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err.Error())
		return
	}

	claims, _ := middleware.SessionClaims(c)
	b := models.Booking{
		ID:             uuid.NewString(),
		AvailabilityID: req.AvailabilityID,
		CoachID:        claims.Subject,
		StudentID:      req.StudentID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Note:           req.Note,
		MeetingType:    req.MeetingType,
		Status:         models.BookingPending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := h.Store.CreateBooking(c.Request.Context(), b); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Availability not found", nil)
		case errors.Is(err, db.ErrAvailabilityTaken):
			writeError(c, http.StatusConflict, "INVALID_STATE", "Availability is already booked", nil)
		case errors.Is(err, db.ErrOutsideWindow):
			writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Booking must fit inside the availability window", nil)
		default:
			writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to create booking", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, b)
}

// @Summary List booking requests addressed to the caller
// @Tags availability
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/admin-availability/bookings [get]
func (h *Handler) ListBookings(c *gin.Context) {
	claims, _ := middleware.SessionClaims(c)
	items, err := h.Store.ListBookingsForAdmin(c.Request.Context(), claims.Subject)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type RespondBookingRequest struct {
	Accept bool `json:"accept"`
}

func (h *Handler) RespondBooking(c *gin.Context) {
	var req RespondBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}

	b, err := h.Store.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Booking not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load booking", err.Error())
		return
	}
	claims, _ := middleware.SessionClaims(c)
	if !canManageBooking(claims.Subject, b) {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Only the booked admin may respond", nil)
		return
	}

	status := models.BookingDeclined
	if req.Accept {
		status = models.BookingAccepted
	}
	if err := h.Store.UpdateBookingStatus(c.Request.Context(), b.ID, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusConflict, "INVALID_STATE", "Booking already resolved", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to respond to booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *Handler) MarkBookingSeen(c *gin.Context) {
	b, err := h.Store.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Booking not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to load booking", err.Error())
		return
	}
	claims, _ := middleware.SessionClaims(c)
	if !canManageBooking(claims.Subject, b) {
		writeError(c, http.StatusForbidden, "FORBIDDEN", "Only the booked admin may mark a booking seen", nil)
		return
	}

	if err := h.Store.MarkBookingSeen(c.Request.Context(), b.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Booking not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to mark booking seen", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// canManageBooking limits booking resolution to the admin the request is
// addressed to.
func canManageBooking(userID string, b models.Booking) bool {
	return b.AdminID == userID
}
