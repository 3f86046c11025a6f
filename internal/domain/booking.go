package domain

import "time"

// BookingSlot enumerates the bookable day parts.
type BookingSlot string

const (
	BookingSlotMorning   BookingSlot = "MORNING"
	BookingSlotAfternoon BookingSlot = "AFTERNOON"
	BookingSlotFullDay   BookingSlot = "FULL_DAY"
)

// BookingStatus enumerates the approval workflow states.
type BookingStatus string

const (
	BookingStatusOrdered  BookingStatus = "ORDERED"
	BookingStatusApproved BookingStatus = "APPROVED"
	BookingStatusDeclined BookingStatus = "DECLINED"
)

// Booking is a time-slot reservation tied to a member. Status is
// server-determined on create and only mutable by admins afterwards.
type Booking struct {
	ID        string
	MemberID  string
	Date      time.Time
	Slot      BookingSlot
	Status    BookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Anonymized returns a copy with the member identity blanked, for listings
// shown to members other than the owner.
func (b Booking) Anonymized() Booking {
	b.MemberID = ""
	return b
}

// ValidSlot reports whether s is a known day part.
func ValidSlot(s BookingSlot) bool {
	switch s {
	case BookingSlotMorning, BookingSlotAfternoon, BookingSlotFullDay:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known workflow state.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusOrdered, BookingStatusApproved, BookingStatusDeclined:
		return true
	}
	return false
}
