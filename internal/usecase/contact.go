package usecase

import (
	"context"
	"log/slog"

	"detailing-api/internal/domain/contact"
	"detailing-api/internal/infra"
	"detailing-api/internal/pkg/clock"
	"detailing-api/internal/pkg/errs"
)

type ContactUseCase interface {
	// Configured reports whether the backing store has credentials.
	Configured() bool
	// SubmitContact persists the submission. The demo return is true when
	// the backing table has not been provisioned yet; the message is logged
	// instead of stored and the client still sees success.
	SubmitContact(ctx context.Context, sub *contact.Submission) (rec *contact.Record, demo bool, err error)
}

type contactUseCaseImpl struct {
	store ContactStore
	clock clock.Clock
}

func NewContactUseCase(store ContactStore, clk clock.Clock) ContactUseCase {
	return &contactUseCaseImpl{store: store, clock: clk}
}

func (u *contactUseCaseImpl) Configured() bool {
	return u.store.Configured()
}

func (u *contactUseCaseImpl) SubmitContact(ctx context.Context, sub *contact.Submission) (*contact.Record, bool, error) {
	if !u.store.Configured() {
		return nil, false, ErrNotConfigured
	}

	sub.Status = contact.StatusNew
	sub.CreatedAt = u.clock.Now().UTC()

	rec, err := u.store.InsertContact(ctx, sub)
	if err != nil {
		if infra.IsKind(err, infra.KindNotConfigured) {
			return nil, false, ErrNotConfigured
		}
		if infra.IsKind(err, infra.KindMissingTable) {
			slog.Warn("contact submissions table missing, logging submission instead",
				"name", sub.Name,
				"email", sub.Email,
			)
			return nil, true, nil
		}
		return nil, false, errs.Mark(err, ErrInsertFailed)
	}

	slog.Info("contact form submitted",
		"id", rec.ID,
		"name", rec.Name,
		"email", rec.Email,
		"ip", rec.SourceIP,
	)
	return rec, false, nil
}
