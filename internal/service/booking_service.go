package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/coworkspace-service/internal/auth"
	"github.com/spec-kit/coworkspace-service/internal/domain"
	"github.com/spec-kit/coworkspace-service/internal/events"
	"github.com/spec-kit/coworkspace-service/internal/repository"
	apperrors "github.com/spec-kit/coworkspace-service/pkg/util"
)

// BookingCreateInput carries the client-controlled booking fields. Status is
// deliberately absent: it is server-determined from the caller's role.
type BookingCreateInput struct {
	MemberID string
	Date     time.Time
	Slot     domain.BookingSlot
}

// BookingUpdateInput is the full-record admin update.
type BookingUpdateInput struct {
	MemberID string
	Date     time.Time
	Slot     domain.BookingSlot
	Status   domain.BookingStatus
}

// BookingService applies role policy on top of booking storage.
type BookingService struct {
	bookings   repository.BookingRepository
	dispatcher events.Dispatcher
}

// NewBookingService builds the service.
func NewBookingService(bookings repository.BookingRepository, dispatcher events.Dispatcher) *BookingService {
	return &BookingService{bookings: bookings, dispatcher: dispatcher}
}

// List returns bookings visible to the caller. With onlyMine only the
// caller's bookings are returned. Otherwise admins see everything; other
// members see everything too, but with foreign member identities blanked.
func (s *BookingService) List(ctx context.Context, principal *auth.Principal, onlyMine bool) ([]domain.Booking, error) {
	if onlyMine {
		return s.bookings.ListByMember(ctx, principal.UserID)
	}

	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if principal.IsAdmin() {
		return bookings, nil
	}
	for i := range bookings {
		if bookings[i].MemberID != principal.UserID {
			bookings[i] = bookings[i].Anonymized()
		}
	}
	return bookings, nil
}

// Create stores a new booking. Any client-supplied status is ignored: admins
// get APPROVED, everyone else ORDERED pending approval.
func (s *BookingService) Create(ctx context.Context, principal *auth.Principal, in BookingCreateInput) (*domain.Booking, error) {
	if !domain.ValidSlot(in.Slot) {
		return nil, apperrors.NewValidationError("invalid slot", map[string]any{"slot": string(in.Slot)})
	}

	memberID := in.MemberID
	if memberID == "" {
		memberID = principal.UserID
	}

	status := domain.BookingStatusOrdered
	if principal.IsAdmin() {
		status = domain.BookingStatusApproved
	}

	booking := &domain.Booking{
		MemberID: memberID,
		Date:     in.Date,
		Slot:     in.Slot,
		Status:   status,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventBookingCreated, principal.UserID, events.BookingCreatedPayload{
		BookingID: booking.ID,
		MemberID:  booking.MemberID,
		Date:      booking.Date,
		Slot:      booking.Slot,
		Status:    booking.Status,
	})
	return booking, nil
}

// Delete removes a booking. Members delete their own bookings, admins any.
func (s *BookingService) Delete(ctx context.Context, principal *auth.Principal, bookingID string) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("booking", map[string]any{"booking_id": bookingID})
		}
		return err
	}

	if booking.MemberID != principal.UserID && !principal.IsAdmin() {
		return apperrors.NewForbidden("cannot delete another member's booking")
	}

	if err := s.bookings.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("booking", map[string]any{"booking_id": bookingID})
		}
		return err
	}

	s.publish(ctx, events.EventBookingDeleted, principal.UserID, events.BookingDeletedPayload{
		BookingID: booking.ID,
		MemberID:  booking.MemberID,
	})
	return nil
}

// Update replaces a booking record, including its status. Admin only; the
// route guard enforces this too, the re-check keeps the policy local.
func (s *BookingService) Update(ctx context.Context, principal *auth.Principal, bookingID string, in BookingUpdateInput) (*domain.Booking, error) {
	if !principal.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if !domain.ValidSlot(in.Slot) {
		return nil, apperrors.NewValidationError("invalid slot", map[string]any{"slot": string(in.Slot)})
	}
	if !domain.ValidStatus(in.Status) {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": string(in.Status)})
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("booking", map[string]any{"booking_id": bookingID})
		}
		return nil, err
	}

	oldStatus := booking.Status
	if in.MemberID != "" {
		booking.MemberID = in.MemberID
	}
	booking.Date = in.Date
	booking.Slot = in.Slot
	booking.Status = in.Status

	if err := s.bookings.Update(ctx, booking); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("booking", map[string]any{"booking_id": bookingID})
		}
		return nil, err
	}

	if oldStatus != booking.Status {
		s.publish(ctx, events.EventBookingStatusChanged, principal.UserID, events.BookingStatusChangedPayload{
			BookingID: booking.ID,
			OldStatus: oldStatus,
			NewStatus: booking.Status,
		})
	}
	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, eventType events.EventType, actorID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
