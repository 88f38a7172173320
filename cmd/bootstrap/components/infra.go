package components

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"detailing-api/internal/infra/postgres"
	"detailing-api/internal/infra/resend"
	"detailing-api/internal/infra/supabase"
	"detailing-api/internal/pkg/config"
	"detailing-api/internal/usecase"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		newDataStores,
		fx.Annotate(
			newEmailSender,
			fx.As(new(usecase.EmailSender)),
		),
	),
)

// newDataStores picks the backing store: a direct Postgres pool when
// DATABASE_URL is set, the hosted PostgREST service otherwise. An
// unconfigured store still satisfies the ports and reports Configured()
// false, which handlers turn into a generic configuration error.
func newDataStores(lc fx.Lifecycle, cfg config.Config) (usecase.BookingStore, usecase.ContactStore, error) {
	if cfg.Database.URL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				pool.Close()
				return nil
			},
		})
		store := postgres.NewStore(pool)
		return store, store, nil
	}

	client := supabase.New(cfg.Supabase)
	return client, client, nil
}

func newEmailSender(cfg config.Config) *resend.Client {
	return resend.New(cfg.Email)
}
