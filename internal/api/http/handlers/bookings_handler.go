package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coworkspace-service/internal/api/dto"
	"github.com/spec-kit/coworkspace-service/internal/auth"
	"github.com/spec-kit/coworkspace-service/internal/domain"
	"github.com/spec-kit/coworkspace-service/internal/service"
	apperrors "github.com/spec-kit/coworkspace-service/pkg/util"
)

// BookingsHandler manages booking endpoints.
type BookingsHandler struct {
	service *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{service: bookingService}
}

// List GET /api/bookings.
func (h *BookingsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	onlyMine := c.QueryBool("onlymy", false)
	bookings, err := h.service.List(c.Context(), principal, onlyMine)
	if err != nil {
		return err
	}

	items := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, bookingResponse(&bookings[i]))
	}
	return c.JSON(items)
}

// Create POST /api/bookings.
func (h *BookingsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Date.IsZero() || req.Slot == "" {
		return apperrors.NewValidationError("date and slot required", nil)
	}

	booking, err := h.service.Create(c.Context(), principal, service.BookingCreateInput{
		MemberID: req.MemberID,
		Date:     req.Date,
		Slot:     req.Slot,
	})
	if err != nil {
		return err
	}
	return c.JSON(bookingResponse(booking))
}

// Delete DELETE /api/bookings/:bookingId.
func (h *BookingsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.Delete(c.Context(), principal, c.Params("bookingId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Update PUT /api/bookings/:bookingId. Route-guarded to admins.
func (h *BookingsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.BookingUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Date.IsZero() || req.Slot == "" || req.Status == "" {
		return apperrors.NewValidationError("date, slot and status required", nil)
	}

	booking, err := h.service.Update(c.Context(), principal, c.Params("bookingId"), service.BookingUpdateInput{
		MemberID: req.MemberID,
		Date:     req.Date,
		Slot:     req.Slot,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(bookingResponse(booking))
}

func bookingResponse(booking *domain.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:       booking.ID,
		MemberID: booking.MemberID,
		Date:     booking.Date,
		Slot:     booking.Slot,
		Status:   booking.Status,
	}
}
