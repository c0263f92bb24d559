package court

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

var courtColumns = []string{
	"id", "name", "description", "category", "capacity", "price_per_hour",
	"status", "amenities", "rules", "images", "created_at", "updated_at",
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func scanCourt(row pgx.Row, extra ...any) (*Court, error) {
	var c Court
	dest := []any{
		&c.ID, &c.Name, &c.Description, &c.Category, &c.Capacity, &c.PricePerHour,
		&c.Status, &c.Amenities, &c.Rules, &c.Images, &c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *pgxRepository) Create(ctx context.Context, c *Court) error {
	query, args, err := psql.Insert("public.courts").
		Columns("name", "description", "category", "capacity", "price_per_hour", "status", "amenities", "rules", "images").
		Values(c.Name, c.Description, c.Category, c.Capacity, c.PricePerHour, c.Status, c.Amenities, c.Rules, c.Images).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create court query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("create court failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	query, args, err := psql.Select(courtColumns...).
		From("public.courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get court query failed: %w", err)
	}

	c, err := scanCourt(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court failed: %w", err)
	}
	return c, nil
}

// listQuery builds the paginated catalog query.
func listQuery(filter Filter) squirrel.SelectBuilder {
	q := psql.Select(append(courtColumns, "count(*) OVER() AS total_count")...).
		From("public.courts")

	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}

	page, pageSize := request.Normalize(filter.Page, filter.PageSize)
	return q.OrderBy("created_at ASC", "id ASC").
		Limit(uint64(pageSize)).
		Offset(uint64(request.Offset(page, pageSize)))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	query, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var (
		courts []*Court
		total  int
	)
	for rows.Next() {
		c, err := scanCourt(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan court failed: %w", err)
		}
		courts = append(courts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate courts failed: %w", err)
	}
	return courts, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Court) error {
	query, args, err := psql.Update("public.courts").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("capacity", c.Capacity).
		Set("price_per_hour", c.PricePerHour).
		Set("status", c.Status).
		Set("amenities", c.Amenities).
		Set("rules", c.Rules).
		Set("images", c.Images).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update court query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update court failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	query, args, err := psql.Select("status", "count(*)").
		From("public.courts").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count courts failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[Status]int, len(Statuses))
	for rows.Next() {
		var (
			st Status
			n  int
		)
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scan court count failed: %w", err)
		}
		counts[st] = n
	}
	return counts, rows.Err()
}
