package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/olwandejj/Quizzify/internal/domain"
)

// CatalogLoader reads categories from a local SQLite file, for single-binary
// deployments that want editable content without running Postgres. Options
// are stored as a JSON array per question row.
type CatalogLoader struct {
	db *sql.DB
}

// Open opens (or creates) the catalog database at path and ensures the
// schema exists. Use ":memory:" for throwaway databases in tests.
func Open(path string) (*CatalogLoader, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}
	loader := &CatalogLoader{db: db}
	if err := loader.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return loader, nil
}

func (l *CatalogLoader) Close() error {
	return l.db.Close()
}

func (l *CatalogLoader) createTables() error {
	_, err := l.db.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			name TEXT PRIMARY KEY
		);
		CREATE TABLE IF NOT EXISTS questions (
			category TEXT NOT NULL,
			question_num INTEGER NOT NULL,
			text TEXT NOT NULL,
			options TEXT NOT NULL,
			correct_option INTEGER NOT NULL,
			PRIMARY KEY (category, question_num),
			FOREIGN KEY (category) REFERENCES categories(name)
		);
	`)
	if err != nil {
		return fmt.Errorf("create catalog tables: %w", err)
	}
	return nil
}

// SeedCategory inserts or replaces a category and its questions. Mostly for
// tests and content tooling.
func (l *CatalogLoader) SeedCategory(ctx context.Context, category domain.Category) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed category: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO categories (name) VALUES (?)`, category.Name); err != nil {
		return fmt.Errorf("seed category: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE category = ?`, category.Name); err != nil {
		return fmt.Errorf("seed category: %w", err)
	}
	for i, question := range category.Questions {
		options, err := json.Marshal(question.Options)
		if err != nil {
			return fmt.Errorf("marshal options: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO questions (category, question_num, text, options, correct_option) VALUES (?, ?, ?, ?, ?)`,
			category.Name, i+1, question.Text, string(options), question.CorrectOption)
		if err != nil {
			return fmt.Errorf("seed question: %w", err)
		}
	}
	return tx.Commit()
}

func (l *CatalogLoader) LoadCategory(ctx context.Context, name string) (domain.Category, error) {
	var stored string
	err := l.db.QueryRowContext(ctx, `SELECT name FROM categories WHERE name = ?`, name).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("load category: %w", err)
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT text, options, correct_option FROM questions WHERE category = ? ORDER BY question_num`, name)
	if err != nil {
		return domain.Category{}, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	category := domain.Category{Name: stored}
	for rows.Next() {
		var (
			text    string
			options string
			correct int
		)
		if err := rows.Scan(&text, &options, &correct); err != nil {
			return domain.Category{}, fmt.Errorf("scan question: %w", err)
		}
		var parsed []string
		if err := json.Unmarshal([]byte(options), &parsed); err != nil {
			return domain.Category{}, fmt.Errorf("unmarshal options: %w", err)
		}
		category.Questions = append(category.Questions, domain.Question{
			Text:          text,
			Options:       parsed,
			CorrectOption: correct,
		})
	}
	if err := rows.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("load questions: %w", err)
	}
	return category, nil
}

func (l *CatalogLoader) CategoryNames(ctx context.Context) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY name`)
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
