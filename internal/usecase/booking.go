package usecase

import (
	"context"
	"errors"
	"log/slog"

	"detailing-api/internal/domain/booking"
	"detailing-api/internal/infra"
	"detailing-api/internal/pkg/clock"
	"detailing-api/internal/pkg/errs"
)

var (
	ErrNotConfigured = errors.New("server configuration error")
	ErrInsertFailed  = errors.New("data store insert failed")
)

type BookingUseCase interface {
	// Configured reports whether the backing store has credentials. Handlers
	// check it up front so an unconfigured deployment answers with the
	// configuration error rather than field-level validation noise.
	Configured() bool
	CreateBooking(ctx context.Context, sub *booking.Submission) (*booking.Record, error)
}

type bookingUseCaseImpl struct {
	store BookingStore
	email EmailSender
	clock clock.Clock
}

func NewBookingUseCase(store BookingStore, email EmailSender, clk clock.Clock) BookingUseCase {
	return &bookingUseCaseImpl{store: store, email: email, clock: clk}
}

func (u *bookingUseCaseImpl) Configured() bool {
	return u.store.Configured()
}

// CreateBooking persists the booking and sends the confirmation email as
// best effort. The durable record matters more than the notification: an
// email failure after a successful insert is logged, never surfaced.
func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, sub *booking.Submission) (*booking.Record, error) {
	if !u.store.Configured() {
		return nil, ErrNotConfigured
	}

	sub.Status = booking.StatusPending
	sub.CreatedAt = u.clock.Now().UTC()

	rec, err := u.store.InsertBooking(ctx, sub)
	if err != nil {
		if infra.IsKind(err, infra.KindNotConfigured) {
			return nil, ErrNotConfigured
		}
		return nil, errs.Mark(err, ErrInsertFailed)
	}

	slog.Info("booking created",
		"id", rec.ID,
		"customer", rec.CustomerName,
		"date", rec.AppointmentDate,
	)

	if u.email.Configured() {
		if _, emailErr := u.email.SendBookingConfirmation(ctx, &rec.Submission); emailErr != nil {
			slog.Error("confirmation email failed after booking insert",
				"booking_id", rec.ID,
				"error", emailErr,
			)
		}
	}

	return rec, nil
}
