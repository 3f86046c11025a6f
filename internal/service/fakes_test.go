package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/coworkspace-service/internal/domain"
)

// fakeMemberRepo is an in-memory MemberRepository for tests.
type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[string]domain.Member
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]domain.Member)}
}

func (f *fakeMemberRepo) Create(_ context.Context, member *domain.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	member.ID = uuid.NewString()
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	f.members[member.ID] = *member
	return nil
}

func (f *fakeMemberRepo) Update(_ context.Context, member *domain.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.members[member.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.members[member.ID] = *member
	return nil
}

func (f *fakeMemberRepo) GetByID(_ context.Context, id string) (*domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	member, ok := f.members[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &member, nil
}

func (f *fakeMemberRepo) GetByEmail(_ context.Context, email string) (*domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, member := range f.members {
		if member.Email == email {
			m := member
			return &m, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeMemberRepo) delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members, id)
}

func (f *fakeMemberRepo) setAdmin(id string, admin bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	member := f.members[id]
	member.IsAdmin = admin
	f.members[id] = member
}

// fakeBookingRepo is an in-memory BookingRepository preserving insertion order.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking.ID = uuid.NewString()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.bookings = append(f.bookings, *booking)
	return nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == booking.ID {
			f.bookings[i] = *booking
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeBookingRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings = append(f.bookings[:i], f.bookings[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeBookingRepo) ListAll(_ context.Context) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Booking{}, f.bookings...), nil
}

func (f *fakeBookingRepo) ListByMember(_ context.Context, memberID string) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Booking
	for _, booking := range f.bookings {
		if booking.MemberID == memberID {
			result = append(result, booking)
		}
	}
	return result, nil
}
