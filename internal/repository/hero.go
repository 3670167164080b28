package repository

import (
	"context"

	"heroapi/internal/model"
)

// HeroRepository defines data access for heroes using SQL queries only.
// No business logic here — strictly persistence operations.
//
// Every method may fail with a driver-level I/O error; callers treat any
// such error as a persistence failure and translate it at the HTTP boundary.
type HeroRepository interface {
	// FindByID returns a hero by its id, or sql.ErrNoRows if absent.
	FindByID(ctx context.Context, id int) (*model.Hero, error)

	// FindAll returns the full hero collection. The slice is empty, never
	// nil, when no heroes exist.
	FindAll(ctx context.Context) ([]model.Hero, error)

	// FindByName returns heroes whose name contains the given text,
	// case-insensitively. The slice is empty, never nil, on no match.
	FindByName(ctx context.Context, text string) ([]model.Hero, error)

	// Create inserts a new hero record with its client-supplied id.
	// Returns the stored hero (may include values set by the DB).
	Create(ctx context.Context, hero *model.Hero) (*model.Hero, error)

	// Update replaces the stored fields for hero.ID and returns the stored
	// row, or sql.ErrNoRows when no record matched.
	Update(ctx context.Context, hero *model.Hero) (*model.Hero, error)

	// Delete removes a hero by id and reports whether a row was removed.
	Delete(ctx context.Context, id int) (bool, error)

	// SetPortrait records the object-storage key and content type of the
	// hero's portrait, or sql.ErrNoRows when the hero is absent.
	SetPortrait(ctx context.Context, id int, path, contentType string) error
}
