package postgres

import (
	"context"
	"database/sql"
	"errors"

	"heroapi/internal/model"
	"heroapi/internal/repository"
)

// HeroPostgres is a PostgreSQL implementation of repository.HeroRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type HeroPostgres struct {
	db *sql.DB
}

// NewHeroPostgres creates a new HeroPostgres repository.
func NewHeroPostgres(db *sql.DB) *HeroPostgres {
	return &HeroPostgres{db: db}
}

var _ repository.HeroRepository = (*HeroPostgres)(nil)

const heroColumns = `id, name, COALESCE(portrait_path, ''), COALESCE(portrait_type, '')`

func scanHero(row *sql.Row) (*model.Hero, error) {
	var h model.Hero
	if err := row.Scan(&h.ID, &h.Name, &h.PortraitPath, &h.PortraitType); err != nil {
		return nil, err
	}
	return &h, nil
}

func collectHeroes(rows *sql.Rows) ([]model.Hero, error) {
	defer rows.Close()

	heroes := make([]model.Hero, 0)
	for rows.Next() {
		var h model.Hero
		if err := rows.Scan(&h.ID, &h.Name, &h.PortraitPath, &h.PortraitType); err != nil {
			return nil, err
		}
		heroes = append(heroes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return heroes, nil
}

// FindByID fetches a single hero by its id.
func (r *HeroPostgres) FindByID(ctx context.Context, id int) (*model.Hero, error) {
	const q = `
		SELECT ` + heroColumns + `
		FROM heroes
		WHERE id = $1
	`
	return scanHero(r.db.QueryRowContext(ctx, q, id))
}

// FindAll returns every hero ordered by id.
func (r *HeroPostgres) FindAll(ctx context.Context) ([]model.Hero, error) {
	const q = `
		SELECT ` + heroColumns + `
		FROM heroes
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectHeroes(rows)
}

// FindByName returns heroes whose name contains text, case-insensitively.
func (r *HeroPostgres) FindByName(ctx context.Context, text string) ([]model.Hero, error) {
	const q = `
		SELECT ` + heroColumns + `
		FROM heroes
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, q, text)
	if err != nil {
		return nil, err
	}
	return collectHeroes(rows)
}

// Create inserts a new hero row and returns the stored record.
func (r *HeroPostgres) Create(ctx context.Context, hero *model.Hero) (*model.Hero, error) {
	const q = `
		INSERT INTO heroes (id, name)
		VALUES ($1, $2)
		RETURNING ` + heroColumns + `
	`
	return scanHero(r.db.QueryRowContext(ctx, q, hero.ID, hero.Name))
}

// Update replaces the stored name for hero.ID and returns the stored row.
// Returns sql.ErrNoRows when no record matched.
func (r *HeroPostgres) Update(ctx context.Context, hero *model.Hero) (*model.Hero, error) {
	const q = `
		UPDATE heroes
		SET name = $2
		WHERE id = $1
		RETURNING ` + heroColumns + `
	`
	out, err := scanHero(r.db.QueryRowContext(ctx, q, hero.ID, hero.Name))
	if err != nil {
		// RETURNING yields no row when the UPDATE matched nothing.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return out, nil
}

// Delete removes a hero by id and reports whether a row was removed.
func (r *HeroPostgres) Delete(ctx context.Context, id int) (bool, error) {
	const q = `DELETE FROM heroes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetPortrait records the portrait object key and content type for a hero.
func (r *HeroPostgres) SetPortrait(ctx context.Context, id int, path, contentType string) error {
	const q = `
		UPDATE heroes
		SET portrait_path = $2, portrait_type = $3
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, id, path, contentType)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
