package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/court-reservation-backend/internal/pkg/request"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var reportColumns = []string{
	"id", "court_id", "user_id", "type", "severity", "title", "description",
	"images", "status", "admin_response", "created_at", "updated_at", "resolved_at",
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanReport(row pgx.Row, extra ...any) (*Report, error) {
	var r Report
	dest := []any{
		&r.ID, &r.CourtID, &r.UserID, &r.Type, &r.Severity, &r.Title, &r.Description,
		&r.Images, &r.Status, &r.AdminResponse, &r.CreatedAt, &r.UpdatedAt, &r.ResolvedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *pgxRepository) Create(ctx context.Context, r *Report) error {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	query, args, err := psql.Insert("public.court_reports").
		Columns("court_id", "user_id", "type", "severity", "title", "description", "images", "status").
		Values(r.CourtID, r.UserID, r.Type, r.Severity, r.Title, r.Description, images, r.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create report query failed: %w", err)
	}

	if err := p.pool.QueryRow(ctx, query, args...).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return fmt.Errorf("create report failed: %w", err)
	}
	return nil
}

func (p *pgxRepository) GetByID(ctx context.Context, id string) (*Report, error) {
	query, args, err := psql.Select(reportColumns...).
		From("public.court_reports").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get report query failed: %w", err)
	}

	r, err := scanReport(p.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get report failed: %w", err)
	}
	return r, nil
}

// listQuery builds the paginated report listing, newest first.
func listQuery(filter Filter) squirrel.SelectBuilder {
	q := psql.Select(append(reportColumns, "count(*) OVER() AS total_count")...).
		From("public.court_reports")

	if filter.CourtID != "" {
		q = q.Where(squirrel.Eq{"court_id": filter.CourtID})
	}
	if filter.UserID != "" {
		q = q.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Severity != "" {
		q = q.Where(squirrel.Eq{"severity": filter.Severity})
	}

	page, pageSize := request.Normalize(filter.Page, filter.PageSize)
	return q.OrderBy("created_at DESC").
		Limit(uint64(pageSize)).
		Offset(uint64(request.Offset(page, pageSize)))
}

func (p *pgxRepository) List(ctx context.Context, filter Filter) ([]*Report, int, error) {
	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reports query failed: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reports failed: %w", err)
	}
	defer rows.Close()

	var (
		reports []*Report
		total   int
	)
	for rows.Next() {
		r, err := scanReport(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan report failed: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reports failed: %w", err)
	}
	return reports, total, nil
}

func (p *pgxRepository) Update(ctx context.Context, r *Report) error {
	query, args, err := psql.Update("public.court_reports").
		Set("status", r.Status).
		Set("admin_response", r.AdminResponse).
		Set("images", r.Images).
		Set("resolved_at", r.ResolvedAt).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": r.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update report query failed: %w", err)
	}

	if err := p.pool.QueryRow(ctx, query, args...).Scan(&r.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update report failed: %w", err)
	}
	return nil
}

func (p *pgxRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	query, args, err := psql.Select("status", "count(*)").
		From("public.court_reports").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count reports query failed: %w", err)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count reports failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int, len(Statuses))
	for rows.Next() {
		var (
			st Status
			n  int
		)
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scan report count failed: %w", err)
		}
		counts[st] = n
	}
	return counts, rows.Err()
}
