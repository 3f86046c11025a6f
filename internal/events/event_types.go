package events

import (
	"time"

	"github.com/spec-kit/coworkspace-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMemberRegistered     EventType = "member_registered"
	EventBookingCreated       EventType = "booking_created"
	EventBookingStatusChanged EventType = "booking_status_changed"
	EventBookingDeleted       EventType = "booking_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MemberRegisteredPayload payload.
type MemberRegisteredPayload struct {
	MemberID string `json:"member_id"`
	Email    string `json:"email"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	BookingID string               `json:"booking_id"`
	MemberID  string               `json:"member_id"`
	Date      time.Time            `json:"date"`
	Slot      domain.BookingSlot   `json:"slot"`
	Status    domain.BookingStatus `json:"status"`
}

// BookingStatusChangedPayload payload.
type BookingStatusChangedPayload struct {
	BookingID string               `json:"booking_id"`
	OldStatus domain.BookingStatus `json:"old_status"`
	NewStatus domain.BookingStatus `json:"new_status"`
}

// BookingDeletedPayload payload.
type BookingDeletedPayload struct {
	BookingID string `json:"booking_id"`
	MemberID  string `json:"member_id"`
}
