package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"heroapi/internal/model"
	"heroapi/internal/repository"
	"heroapi/internal/storage"
)

var (
	ErrNotFound     = errors.New("hero not found")
	ErrConflict     = errors.New("hero conflicts with an existing hero")
	ErrNameRequired = errors.New("name is required")
	ErrReaderNil    = errors.New("reader is nil")
	ErrNoPortrait   = errors.New("hero has no portrait")
)

// HeroService defines the use cases for handling heroes.
type HeroService interface {
	// Get returns a single hero by its id. Returns ErrNotFound when absent.
	Get(ctx context.Context, id int) (*model.Hero, error)

	// List returns the full hero collection (empty slice when none exist).
	List(ctx context.Context) ([]model.Hero, error)

	// Search returns heroes whose name contains the given text.
	Search(ctx context.Context, name string) ([]model.Hero, error)

	// Create stores a new hero after scanning the existing collection for
	// conflicts. Returns ErrConflict when the new hero's id equals an
	// existing id, or when the new hero's name contains an existing name.
	Create(ctx context.Context, hero *model.Hero) (*model.Hero, error)

	// Update replaces the stored hero identified by hero.ID. On success the
	// submitted hero is returned, not the stored row.
	Update(ctx context.Context, hero *model.Hero) (*model.Hero, error)

	// Delete removes a hero by id. Returns ErrNotFound when no record matched.
	Delete(ctx context.Context, id int) error

	// UploadPortrait streams a portrait image to object storage and records
	// its key on the hero, rolling the object back if the DB write fails.
	UploadPortrait(ctx context.Context, id int, r io.Reader, contentType string, size int64) (*model.Hero, error)

	// PortraitURL returns a presigned download URL for the hero's portrait.
	PortraitURL(ctx context.Context, id int, expiry time.Duration) (string, error)
}

// heroService is a concrete implementation of HeroService.
type heroService struct {
	store storage.Storage
	repo  repository.HeroRepository
}

// NewHeroService constructs a new HeroService.
func NewHeroService(store storage.Storage, repo repository.HeroRepository) HeroService {
	return &heroService{store: store, repo: repo}
}

// Get returns a hero by id.
func (s *heroService) Get(ctx context.Context, id int) (*model.Hero, error) {
	hero, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return hero, nil
}

// List returns all heroes. An empty collection is a normal outcome, not an error.
func (s *heroService) List(ctx context.Context) ([]model.Hero, error) {
	heroes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if heroes == nil {
		heroes = []model.Hero{}
	}
	return heroes, nil
}

// Search returns heroes whose name contains the given text.
func (s *heroService) Search(ctx context.Context, name string) ([]model.Hero, error) {
	heroes, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if heroes == nil {
		heroes = []model.Hero{}
	}
	return heroes, nil
}

// Create scans the full collection for conflicts before inserting.
//
// A conflict is an id collision, or the new hero's name containing an
// existing hero's name as a substring. The containment direction (new
// contains existing) is deliberate and load-bearing: creating "Maximus"
// next to an existing "Max" conflicts, while creating "Max" next to an
// existing "Maximus" does not.
//
// The scan and the insert are not serialized; two concurrent creates can
// both pass the scan, in which case the primary key settles id collisions
// at insert time.
func (s *heroService) Create(ctx context.Context, hero *model.Hero) (*model.Hero, error) {
	if hero.Name == "" {
		return nil, ErrNameRequired
	}

	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range existing {
		if strings.Contains(hero.Name, e.Name) || hero.ID == e.ID {
			return nil, ErrConflict
		}
	}

	stored, err := s.repo.Create(ctx, hero)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Update replaces the stored hero. The submitted hero is echoed back on
// success rather than the repository's returned row.
func (s *heroService) Update(ctx context.Context, hero *model.Hero) (*model.Hero, error) {
	if hero.Name == "" {
		return nil, ErrNameRequired
	}
	if _, err := s.repo.Update(ctx, hero); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return hero, nil
}

// Delete removes a hero by id.
func (s *heroService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// UploadPortrait uploads the portrait to object storage, then records its
// key on the hero. If the DB write fails the object is deleted again.
func (s *heroService) UploadPortrait(ctx context.Context, id int, r io.Reader, contentType string, size int64) (*model.Hero, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	hero, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	key := path.Join("portraits", uuid.New().String()+extensionFor(contentType))

	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"hero-name": hero.Name,
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	if err := s.repo.SetPortrait(ctx, id, key, contentType); err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	hero.PortraitPath = key
	hero.PortraitType = contentType
	return hero, nil
}

// PortraitURL returns a time-limited download URL for the hero's portrait.
func (s *heroService) PortraitURL(ctx context.Context, id int, expiry time.Duration) (string, error) {
	hero, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if hero.PortraitPath == "" {
		return "", ErrNoPortrait
	}
	u, err := s.store.PresignGet(ctx, hero.PortraitPath, expiry)
	if err != nil {
		return "", fmt.Errorf("presign portrait: %w", err)
	}
	return u, nil
}

func extensionFor(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}
