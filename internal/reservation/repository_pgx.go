package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var reservationColumns = []string{
	"id", "user_id", "court_id", "date", "start_hour", "end_hour", "duration",
	"total_price", "status", "notes", "admin_notes", "created_at", "updated_at",
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository stores reservations in public.reservations. The table's
// exclusion constraint rejects overlapping approved rows.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanReservation(row pgx.Row, extra ...any) (*Reservation, error) {
	var (
		r          Reservation
		start, end int
	)
	dest := []any{
		&r.ID, &r.UserID, &r.CourtID, &r.Date, &start, &end, &r.Duration,
		&r.TotalPrice, &r.Status, &r.Notes, &r.AdminNotes, &r.CreatedAt, &r.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	r.StartTime, r.EndTime = Hour(start), Hour(end)
	return &r, nil
}

func collect(rows pgx.Rows) ([]*Reservation, error) {
	defer rows.Close()

	var out []*Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation failed: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations failed: %w", err)
	}
	return out, nil
}

func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation
}

func (p *pgxRepository) Create(ctx context.Context, r *Reservation) error {
	query, args, err := psql.Insert("public.reservations").
		Columns("user_id", "court_id", "date", "start_hour", "end_hour", "duration", "total_price", "status", "notes").
		Values(r.UserID, r.CourtID, r.Date, int(r.StartTime), int(r.EndTime), r.Duration, r.TotalPrice, r.Status, r.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := p.pool.QueryRow(ctx, query, args...).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if isExclusionViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("create reservation failed: %w", err)
	}
	return nil
}

func (p *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	query, args, err := psql.Select(reservationColumns...).
		From("public.reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	r, err := scanReservation(p.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return r, nil
}

// listQuery builds the paginated, newest-first listing query.
func listQuery(filter Filter) squirrel.SelectBuilder {
	q := psql.Select(append(reservationColumns, "count(*) OVER() AS total_count")...).
		From("public.reservations")

	if filter.UserID != "" {
		q = q.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.CourtID != "" {
		q = q.Where(squirrel.Eq{"court_id": filter.CourtID})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Date != nil {
		q = q.Where(squirrel.Eq{"date": *filter.Date})
	}

	page, pageSize := request.Normalize(filter.Page, filter.PageSize)
	return q.OrderBy("created_at DESC", "id DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(request.Offset(page, pageSize)))
}

func (p *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var (
		out   []*Reservation
		total int
	)
	for rows.Next() {
		r, err := scanReservation(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reservations failed: %w", err)
	}
	return out, total, nil
}

func (p *pgxRepository) ListByCourtAndDate(ctx context.Context, courtID string, date time.Time) ([]*Reservation, error) {
	query, args, err := psql.Select(reservationColumns...).
		From("public.reservations").
		Where(squirrel.Eq{"court_id": courtID, "date": date}).
		OrderBy("start_hour ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build day schedule query failed: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list day schedule failed: %w", err)
	}
	return collect(rows)
}

func (p *pgxRepository) ListApprovedThrough(ctx context.Context, date time.Time) ([]*Reservation, error) {
	query, args, err := psql.Select(reservationColumns...).
		From("public.reservations").
		Where(squirrel.Eq{"status": StatusApproved}).
		Where(squirrel.LtOrEq{"date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build approved reservations query failed: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list approved reservations failed: %w", err)
	}
	return collect(rows)
}

func (p *pgxRepository) UpdateStatus(ctx context.Context, id string, to Status, adminNotes *string) (*Reservation, error) {
	var updated *Reservation
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		query, args, err := psql.Select(reservationColumns...).
			From("public.reservations").
			Where(squirrel.Eq{"id": id}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("build lock reservation query failed: %w", err)
		}

		current, err := scanReservation(tx.QueryRow(ctx, query, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("lock reservation failed: %w", err)
		}
		if !CanTransition(current.Status, to) {
			return apperror.Newf(ErrInvalidTransition, "cannot move reservation from %s to %s", current.Status, to)
		}

		ub := psql.Update("public.reservations").
			Set("status", to).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": id}).
			Suffix("RETURNING " + strings.Join(reservationColumns, ", "))
		if adminNotes != nil {
			ub = ub.Set("admin_notes", *adminNotes)
		}
		query, args, err = ub.ToSql()
		if err != nil {
			return fmt.Errorf("build update reservation status query failed: %w", err)
		}

		updated, err = scanReservation(tx.QueryRow(ctx, query, args...))
		if err != nil {
			if isExclusionViolation(err) {
				return apperror.Newf(ErrConflict, "overlaps an approved reservation")
			}
			return fmt.Errorf("update reservation status failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (p *pgxRepository) Summarize(ctx context.Context) (map[Status]Summary, error) {
	query, args, err := psql.Select("status", "count(*)", "coalesce(sum(total_price), 0)").
		From("public.reservations").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build summarize reservations query failed: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summarize reservations failed: %w", err)
	}
	defer rows.Close()

	out := make(map[Status]Summary, len(Statuses))
	for rows.Next() {
		var (
			st Status
			s  Summary
		)
		if err := rows.Scan(&st, &s.Count, &s.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan reservation summary failed: %w", err)
		}
		out[st] = s
	}
	return out, rows.Err()
}
