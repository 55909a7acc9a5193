package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/auth-service/internal/domain"
)

// DemoRepository persists the placeholder demo resource.
type DemoRepository interface {
	Create(ctx context.Context, demo *domain.Demo) error
	List(ctx context.Context) ([]domain.Demo, error)
}

type demoRepository struct {
	pool *pgxpool.Pool
}

// NewDemoRepository returns a Postgres-backed implementation.
func NewDemoRepository(pool *pgxpool.Pool) DemoRepository {
	return &demoRepository{pool: pool}
}

func (r *demoRepository) Create(ctx context.Context, demo *domain.Demo) error {
	const query = `
        INSERT INTO demos DEFAULT VALUES
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query).Scan(&demo.ID, &demo.CreatedAt)
}

func (r *demoRepository) List(ctx context.Context) ([]domain.Demo, error) {
	const query = `
        SELECT id, created_at FROM demos ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var demos []domain.Demo
	for rows.Next() {
		var demo domain.Demo
		if err := rows.Scan(&demo.ID, &demo.CreatedAt); err != nil {
			return nil, err
		}
		demos = append(demos, demo)
	}
	return demos, rows.Err()
}
