package dto

import (
	"time"

	"github.com/spec-kit/coworkspace-service/internal/domain"
)

// BookingRequest payload for creating a booking. Status is not accepted; it
// is determined by the caller's role on the server.
type BookingRequest struct {
	MemberID string             `json:"member_id"`
	Date     time.Time          `json:"date"`
	Slot     domain.BookingSlot `json:"slot"`
}

// BookingUpdateRequest payload for the admin-only full update.
type BookingUpdateRequest struct {
	MemberID string               `json:"member_id"`
	Date     time.Time            `json:"date"`
	Slot     domain.BookingSlot   `json:"slot"`
	Status   domain.BookingStatus `json:"status"`
}

// BookingResponse wire form. MemberID is empty when the record has been
// anonymized for the caller.
type BookingResponse struct {
	ID       string               `json:"id"`
	MemberID string               `json:"member_id,omitempty"`
	Date     time.Time            `json:"date"`
	Slot     domain.BookingSlot   `json:"slot"`
	Status   domain.BookingStatus `json:"status"`
}
