package service

import (
	"time"

	"github.com/culprog/backend/internal/models"
)

const (
	SlotMinutes = 30

	dayStartHour  = 10
	lastStartHour = 14
	slotCount     = (lastStartHour-dayStartHour)*2 + 2 // 10:00 .. 14:30
)

// SlotGrid holds the occupancy of one admin's half-hour slots for a single day.
type SlotGrid struct {
	occupied [slotCount]bool
}

func slotIndex(hour, minute int) int {
	if minute != 0 && minute != SlotMinutes {
		return -1
	}
	idx := (hour-dayStartHour)*2 + minute/SlotMinutes
	if idx < 0 || idx >= slotCount {
		return -1
	}
	return idx
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// BuildSlotGrid derives slot occupancy from the admin's accepted bookings and
// the ticket's non-declined suggestions on the given day. A booking blocks
// every half-hour from its start (inclusive) to its end (exclusive). A
// suggestion blocks only its start slot, regardless of its length.
//
// Windows must sit on the half-hour grid: a time off the grid maps to no
// slot and blocks nothing. The schema rejects unaligned availability and
// booking windows, so only suggestions can carry off-grid times here.
func BuildSlotGrid(day time.Time, adminID string, bookings []models.Booking, suggestions []models.TimeSuggestion) SlotGrid {
	var g SlotGrid
	for _, b := range bookings {
		if b.AdminID != adminID || b.Status != models.BookingAccepted {
			continue
		}
		if !sameDay(b.StartTime, day) {
			continue
		}
		for t := b.StartTime; t.Before(b.EndTime); t = t.Add(SlotMinutes * time.Minute) {
			if idx := slotIndex(t.Hour(), t.Minute()); idx >= 0 {
				g.occupied[idx] = true
			}
		}
	}
	for _, s := range suggestions {
		if s.Status == models.SuggestionDeclined {
			continue
		}
		if !sameDay(s.StartTime, day) {
			continue
		}
		if idx := slotIndex(s.StartTime.Hour(), s.StartTime.Minute()); idx >= 0 {
			g.occupied[idx] = true
		}
	}
	return g
}

// SlotFree reports whether a meeting of durationMinutes can start at
// hour:minute. Every constituent half-slot must be unoccupied and the last
// one must not start after 14:30.
func (g SlotGrid) SlotFree(hour, minute, durationMinutes int) bool {
	if durationMinutes <= 0 || durationMinutes%SlotMinutes != 0 {
		return false
	}
	start := slotIndex(hour, minute)
	if start < 0 {
		return false
	}
	needed := durationMinutes / SlotMinutes
	for i := 0; i < needed; i++ {
		idx := start + i
		if idx >= slotCount || g.occupied[idx] {
			return false
		}
	}
	return true
}

// StartHours lists the hours with at least one free start for the duration.
func (g SlotGrid) StartHours(durationMinutes int) []int {
	hours := make([]int, 0, lastStartHour-dayStartHour+1)
	for h := dayStartHour; h <= lastStartHour; h++ {
		if len(g.StartMinutes(h, durationMinutes)) > 0 {
			hours = append(hours, h)
		}
	}
	return hours
}

// StartMinutes lists the free start minutes (0 or 30) within the hour.
func (g SlotGrid) StartMinutes(hour, durationMinutes int) []int {
	minutes := make([]int, 0, 2)
	for _, m := range []int{0, SlotMinutes} {
		if g.SlotFree(hour, m, durationMinutes) {
			minutes = append(minutes, m)
		}
	}
	return minutes
}
