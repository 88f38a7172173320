package usecase

import (
	"context"
	"errors"
	"log/slog"

	"detailing-api/internal/domain/booking"
	"detailing-api/internal/pkg/errs"
)

var ErrEmailSendFailed = errors.New("email send failed")

type EmailUseCase interface {
	// Configured reports whether the provider has credentials. Handlers use
	// it to short-circuit into demo mode before validating the body.
	Configured() bool
	// SendConfirmation dispatches the booking confirmation email. demo is
	// true when the provider is unconfigured: the booking stands, no email
	// goes out, and the client is told so.
	SendConfirmation(ctx context.Context, sub *booking.Submission) (emailID string, demo bool, err error)
}

type emailUseCaseImpl struct {
	sender EmailSender
}

func NewEmailUseCase(sender EmailSender) EmailUseCase {
	return &emailUseCaseImpl{sender: sender}
}

func (u *emailUseCaseImpl) Configured() bool {
	return u.sender.Configured()
}

func (u *emailUseCaseImpl) SendConfirmation(ctx context.Context, sub *booking.Submission) (string, bool, error) {
	if !u.sender.Configured() {
		slog.Warn("email provider not configured, skipping confirmation send")
		return "", true, nil
	}

	id, err := u.sender.SendBookingConfirmation(ctx, sub)
	if err != nil {
		return "", false, errs.Mark(err, ErrEmailSendFailed)
	}

	slog.Info("confirmation email sent", "to", sub.CustomerEmail, "email_id", id)
	return id, false, nil
}
