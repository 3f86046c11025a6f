package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/coworkspace-service/internal/auth"
	"github.com/spec-kit/coworkspace-service/internal/domain"
)

func memberPrincipal(userID string) *auth.Principal {
	return &auth.Principal{UserID: userID, Email: userID + "@x.com", Scopes: []string{}}
}

func adminPrincipal(userID string) *auth.Principal {
	return &auth.Principal{UserID: userID, Email: userID + "@x.com", Scopes: []string{domain.ScopeAdmin}}
}

func testDate() time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
}

func TestCreate_StatusDeterminedByRole(t *testing.T) {
	t.Parallel()

	svc := NewBookingService(newFakeBookingRepo(), nil)

	booking, err := svc.Create(context.Background(), memberPrincipal("m1"), BookingCreateInput{
		MemberID: "m1", Date: testDate(), Slot: domain.BookingSlotMorning,
	})
	require.NoError(t, err)
	require.Equal(t, domain.BookingStatusOrdered, booking.Status)

	booking, err = svc.Create(context.Background(), adminPrincipal("a1"), BookingCreateInput{
		MemberID: "a1", Date: testDate(), Slot: domain.BookingSlotMorning,
	})
	require.NoError(t, err)
	require.Equal(t, domain.BookingStatusApproved, booking.Status)
}

func TestCreate_DefaultsMemberToCaller(t *testing.T) {
	t.Parallel()

	svc := NewBookingService(newFakeBookingRepo(), nil)

	booking, err := svc.Create(context.Background(), memberPrincipal("m1"), BookingCreateInput{
		Date: testDate(), Slot: domain.BookingSlotAfternoon,
	})
	require.NoError(t, err)
	require.Equal(t, "m1", booking.MemberID)
}

func TestCreate_InvalidSlot(t *testing.T) {
	t.Parallel()

	svc := NewBookingService(newFakeBookingRepo(), nil)

	_, err := svc.Create(context.Background(), memberPrincipal("m1"), BookingCreateInput{
		Date: testDate(), Slot: "EVENING",
	})
	require.Equal(t, "VALIDATION_FAILED", asDomainError(t, err).Code)
}

func TestDelete_PermissionMatrix(t *testing.T) {
	t.Parallel()

	repo := newFakeBookingRepo()
	svc := NewBookingService(repo, nil)
	ctx := context.Background()

	mine, err := svc.Create(ctx, memberPrincipal("m1"), BookingCreateInput{Date: testDate(), Slot: domain.BookingSlotMorning})
	require.NoError(t, err)
	theirs, err := svc.Create(ctx, memberPrincipal("m2"), BookingCreateInput{Date: testDate(), Slot: domain.BookingSlotAfternoon})
	require.NoError(t, err)

	// non-admin cannot delete another member's booking
	err = svc.Delete(ctx, memberPrincipal("m1"), theirs.ID)
	require.Equal(t, "FORBIDDEN", asDomainError(t, err).Code)

	// owner deletes own booking
	require.NoError(t, svc.Delete(ctx, memberPrincipal("m1"), mine.ID))

	// admin deletes anyone's booking
	require.NoError(t, svc.Delete(ctx, adminPrincipal("a1"), theirs.ID))

	// absent booking
	err = svc.Delete(ctx, adminPrincipal("a1"), theirs.ID)
	require.Equal(t, "NOT_FOUND", asDomainError(t, err).Code)
}

func TestList_OnlyMine(t *testing.T) {
	t.Parallel()

	repo := newFakeBookingRepo()
	svc := NewBookingService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, memberPrincipal("m1"), BookingCreateInput{Date: testDate(), Slot: domain.BookingSlotMorning})
	require.NoError(t, err)
	_, err = svc.Create(ctx, memberPrincipal("m2"), BookingCreateInput{Date: testDate(), Slot: domain.BookingSlotAfternoon})
	require.NoError(t, err)

	bookings, err := svc.List(ctx, memberPrincipal("m1"), true)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	require.Equal(t, "m1", bookings[0].MemberID)
}

func TestList_AnonymizesForNonAdmins(t *testing.T) {
	t.Parallel()

	repo := newFakeBookingRepo()
	svc := NewBookingService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, memberPrincipal("m1"), BookingCreateInput{Date: testDate(), Slot: domain.BookingSlotMorning})
	require.NoError(t, err)
	_, err = svc.Create(ctx, memberPrincipal("m2"), BookingCreateInput{Date: testDate(), Slot: domain.BookingSlotAfternoon})
	require.NoError(t, err)

	// non-admins see every booking but only their own member identity
	bookings, err := svc.List(ctx, memberPrincipal("m1"), false)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	for _, booking := range bookings {
		if booking.Slot == domain.BookingSlotMorning {
			require.Equal(t, "m1", booking.MemberID)
		} else {
			require.Empty(t, booking.MemberID, "foreign booking must be anonymized")
		}
	}

	// admins see unredacted records
	bookings, err = svc.List(ctx, adminPrincipal("a1"), false)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	for _, booking := range bookings {
		require.NotEmpty(t, booking.MemberID)
	}
}

func TestUpdate_AdminOnly(t *testing.T) {
	t.Parallel()

	repo := newFakeBookingRepo()
	svc := NewBookingService(repo, nil)
	ctx := context.Background()

	booking, err := svc.Create(ctx, memberPrincipal("m1"), BookingCreateInput{Date: testDate(), Slot: domain.BookingSlotMorning})
	require.NoError(t, err)

	_, err = svc.Update(ctx, memberPrincipal("m1"), booking.ID, BookingUpdateInput{
		MemberID: "m1", Date: testDate(), Slot: domain.BookingSlotMorning, Status: domain.BookingStatusApproved,
	})
	require.Equal(t, "FORBIDDEN", asDomainError(t, err).Code)

	updated, err := svc.Update(ctx, adminPrincipal("a1"), booking.ID, BookingUpdateInput{
		MemberID: "m1", Date: testDate(), Slot: domain.BookingSlotAfternoon, Status: domain.BookingStatusDeclined,
	})
	require.NoError(t, err)
	require.Equal(t, domain.BookingStatusDeclined, updated.Status)
	require.Equal(t, domain.BookingSlotAfternoon, updated.Slot)

	stored, err := repo.GetByID(ctx, booking.ID)
	require.NoError(t, err)
	require.Equal(t, domain.BookingStatusDeclined, stored.Status)
}

func TestUpdate_NotFoundAndValidation(t *testing.T) {
	t.Parallel()

	svc := NewBookingService(newFakeBookingRepo(), nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, adminPrincipal("a1"), "missing-id", BookingUpdateInput{
		Date: testDate(), Slot: domain.BookingSlotMorning, Status: domain.BookingStatusApproved,
	})
	require.Equal(t, "NOT_FOUND", asDomainError(t, err).Code)

	_, err = svc.Update(ctx, adminPrincipal("a1"), "missing-id", BookingUpdateInput{
		Date: testDate(), Slot: domain.BookingSlotMorning, Status: "CANCELLED",
	})
	require.Equal(t, "VALIDATION_FAILED", asDomainError(t, err).Code)
}
