package usecase

import (
	"context"

	"detailing-api/internal/domain/booking"
	"detailing-api/internal/domain/contact"
)

// BookingStore and ContactStore are the data-store ports; the hosted
// PostgREST client and the pgx store both satisfy them. Configured reports
// whether upstream credentials are present so handlers can fail with a
// generic configuration error before attempting work.
type BookingStore interface {
	Configured() bool
	InsertBooking(ctx context.Context, sub *booking.Submission) (*booking.Record, error)
}

type ContactStore interface {
	Configured() bool
	InsertContact(ctx context.Context, sub *contact.Submission) (*contact.Record, error)
}

type EmailSender interface {
	Configured() bool
	SendBookingConfirmation(ctx context.Context, sub *booking.Submission) (string, error)
}
