// Package postgres implements the data store ports against a directly
// managed Postgres, for deployments that self-host instead of using the
// hosted PostgREST service.
package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"detailing-api/internal/domain/booking"
	"detailing-api/internal/domain/contact"
	"detailing-api/internal/infra"
)

const pgUndefinedTable = "42P01"

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Configured() bool {
	return s.pool != nil
}

func (s *Store) InsertBooking(ctx context.Context, sub *booking.Submission) (*booking.Record, error) {
	if !s.Configured() {
		return nil, infra.WrapStoreErr("database pool missing", nil, infra.KindNotConfigured)
	}

	addons, err := json.Marshal(sub.Addons)
	if err != nil {
		return nil, infra.WrapStoreErr("failed to encode addons", err)
	}

	const q = `
		INSERT INTO bookings (
			customer_name, customer_email, customer_phone,
			package_name, service_category, vehicle_size,
			appointment_date, appointment_time, total_price,
			vehicle_info, addons, status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id`

	rec := booking.Record{Submission: *sub}
	err = s.pool.QueryRow(ctx, q,
		sub.CustomerName, sub.CustomerEmail, sub.CustomerPhone,
		sub.PackageName, sub.ServiceCategory, sub.VehicleSize,
		sub.AppointmentDate, sub.AppointmentTime, sub.TotalPrice,
		sub.VehicleInfo, addons, sub.Status, sub.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		return nil, wrapPgErr("failed to insert booking", err)
	}
	return &rec, nil
}

func (s *Store) InsertContact(ctx context.Context, sub *contact.Submission) (*contact.Record, error) {
	if !s.Configured() {
		return nil, infra.WrapStoreErr("database pool missing", nil, infra.KindNotConfigured)
	}

	const q = `
		INSERT INTO contact_submissions (
			name, email, phone, message, status, created_at, ip_address
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id`

	rec := contact.Record{Submission: *sub}
	err := s.pool.QueryRow(ctx, q,
		sub.Name, sub.Email, sub.Phone, sub.Message,
		sub.Status, sub.CreatedAt, sub.SourceIP,
	).Scan(&rec.ID)
	if err != nil {
		return nil, wrapPgErr("failed to insert contact submission", err)
	}
	return &rec, nil
}

func wrapPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
		return infra.WrapStoreErr(msg, err, infra.KindMissingTable)
	}
	return infra.WrapStoreErr(msg, err)
}
