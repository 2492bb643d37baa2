package models

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleCoach   Role = "coach"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type TicketType string

const (
	TicketTypeSession  TicketType = "session"
	TicketTypeQuestion TicketType = "question"
	TicketTypeIdea     TicketType = "idea"
	TicketTypeBug      TicketType = "bug"
	TicketTypeOther    TicketType = "other"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketClosed     TicketStatus = "closed"
)

type Ticket struct {
	ID                string       `json:"id"`
	Subject           string       `json:"subject"`
	Message           string       `json:"message"`
	Type              TicketType   `json:"type"`
	Status            TicketStatus `json:"status"`
	SenderID          string       `json:"sender_id"`
	RecipientID       *string      `json:"recipient_id,omitempty"`
	AcceptedStartTime *time.Time   `json:"accepted_start_time,omitempty"`
	AcceptedEndTime   *time.Time   `json:"accepted_end_time,omitempty"`
	Unread            bool         `json:"unread"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

type TicketReply struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	SenderID  string    `json:"sender_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionDeclined SuggestionStatus = "declined"
)

type TimeSuggestion struct {
	ID            string           `json:"id"`
	TicketID      string           `json:"ticket_id"`
	SuggestedBy   string           `json:"suggested_by"`
	StartTime     time.Time        `json:"start_time"`
	EndTime       time.Time        `json:"end_time"`
	Status        SuggestionStatus `json:"status"`
	DeclineReason *string          `json:"decline_reason,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

type Availability struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	IsBooked  bool      `json:"is_booked"`
}

type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingAccepted BookingStatus = "accepted"
	BookingDeclined BookingStatus = "declined"
)

type Booking struct {
	ID             string        `json:"id"`
	AdminID        string        `json:"admin_id"`
	AvailabilityID string        `json:"availability_id"`
	CoachID        string        `json:"coach_id"`
	StudentID      *string       `json:"student_id,omitempty"`
	StartTime      time.Time     `json:"start_time"`
	EndTime        time.Time     `json:"end_time"`
	Note           string        `json:"note"`
	MeetingType    string        `json:"meeting_type"`
	Status         BookingStatus `json:"status"`
	Seen           bool          `json:"seen"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Attendance is keyed by ISO date (YYYY-MM-DD).
type Participant struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Active     bool            `json:"active"`
	Attendance map[string]bool `json:"attendance,omitempty"`
}

type NewsPost struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type Exercise struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  int       `json:"difficulty"`
	CreatedAt   time.Time `json:"created_at"`
}
