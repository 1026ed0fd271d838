package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/olwandejj/Quizzify/internal/domain"
)

// CatalogLoader loads category JSONB from Postgres.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCategory(ctx context.Context, name string) (domain.Category, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM categories WHERE name=$1`, name).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("load category: %w", err)
	}
	var category domain.Category
	if err := json.Unmarshal(raw, &category); err != nil {
		return domain.Category{}, fmt.Errorf("unmarshal category: %w", err)
	}
	if category.Name == "" {
		category.Name = name
	}
	return category, nil
}

func (l *CatalogLoader) CategoryNames(ctx context.Context) ([]string, error) {
	rows, err := l.pool.Query(ctx, `SELECT name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}
