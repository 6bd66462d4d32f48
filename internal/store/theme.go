package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/blogpessoal/blogapi/types"
)

// ThemeRepository handles persistence for themes.
type ThemeRepository struct {
	db *sql.DB
}

func NewThemeRepository(db *sql.DB) *ThemeRepository {
	return &ThemeRepository{db: db}
}

func (r *ThemeRepository) List(ctx context.Context) ([]types.Theme, error) {
	const query = `SELECT id, description FROM themes ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	themes := make([]types.Theme, 0)
	for rows.Next() {
		var theme types.Theme
		if err := rows.Scan(&theme.ID, &theme.Description); err != nil {
			return nil, err
		}
		themes = append(themes, theme)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return themes, nil
}

func (r *ThemeRepository) GetByID(ctx context.Context, id int) (types.Theme, error) {
	const query = `SELECT id, description FROM themes WHERE id = $1`
	var theme types.Theme
	err := r.db.QueryRowContext(ctx, query, id).Scan(&theme.ID, &theme.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Theme{}, ErrNotFound
		}
		return types.Theme{}, err
	}
	return theme, nil
}

func (r *ThemeRepository) Create(ctx context.Context, theme types.Theme) (types.Theme, error) {
	const query = `INSERT INTO themes (description) VALUES ($1) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, theme.Description).Scan(&theme.ID); err != nil {
		return types.Theme{}, err
	}
	return theme, nil
}

func (r *ThemeRepository) Update(ctx context.Context, theme types.Theme) (types.Theme, error) {
	const query = `UPDATE themes SET description = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, theme.Description, theme.ID)
	if err != nil {
		return types.Theme{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Theme{}, err
	}
	if affected == 0 {
		return types.Theme{}, ErrNotFound
	}
	return theme, nil
}

// Delete removes a theme. Themes still referenced by posts are rejected
// with ErrThemeInUse.
func (r *ThemeRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM themes WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isPQError(err, pqForeignKeyViolation) {
			return ErrThemeInUse
		}
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
