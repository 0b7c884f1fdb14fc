// AngelaMos | 2026
// settings.go

package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/angelamos/artisan-market/internal/core"
)

type Setting struct {
	Key       string    `db:"key"       json:"key"`
	Value     string    `db:"value"     json:"value"`
	Public    bool      `db:"public"    json:"public"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Repository interface {
	GetPublic(ctx context.Context) ([]Setting, error)
	GetAll(ctx context.Context) ([]Setting, error)
	Get(ctx context.Context, key string) (*Setting, error)
	Upsert(ctx context.Context, setting *Setting) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetPublic(ctx context.Context) ([]Setting, error) {
	query := `
		SELECT key, value, public, updated_at
		FROM settings
		WHERE public = TRUE
		ORDER BY key ASC`

	var settings []Setting
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("get public settings: %w", err)
	}

	return settings, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Setting, error) {
	query := `
		SELECT key, value, public, updated_at
		FROM settings
		ORDER BY key ASC`

	var settings []Setting
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return settings, nil
}

func (r *repository) Get(ctx context.Context, key string) (*Setting, error) {
	query := `
		SELECT key, value, public, updated_at
		FROM settings
		WHERE key = $1`

	var setting Setting
	err := r.db.GetContext(ctx, &setting, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get setting: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get setting: %w", err)
	}

	return &setting, nil
}

func (r *repository) Upsert(ctx context.Context, setting *Setting) error {
	query := `
		INSERT INTO settings (key, value, public)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, public = EXCLUDED.public,
		    updated_at = NOW()
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &setting.UpdatedAt, query,
		setting.Key, setting.Value, setting.Public)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}

	return nil
}
