package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"heroapi/internal/model"
	repoMocks "heroapi/internal/repository/mocks"
	"heroapi/internal/storage"
	storeMocks "heroapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHeroService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("FindByID", ctx, 1).Return(&model.Hero{ID: 1, Name: "Max"}, nil)

		hero, err := svc.Get(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, "Max", hero.Name)
		mRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("FindByID", ctx, 99).Return(nil, sql.ErrNoRows)

		hero, err := svc.Get(ctx, 99)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, hero)
	})

	t.Run("store failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("FindByID", ctx, 1).Return(nil, errors.New("io failure"))

		_, err := svc.Get(ctx, 1)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestHeroService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("non-empty", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("FindAll", ctx).Return([]model.Hero{{ID: 1, Name: "Max"}}, nil)

		heroes, err := svc.List(ctx)

		assert.NoError(t, err)
		assert.Len(t, heroes, 1)
	})

	t.Run("empty collection is not an error", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("FindAll", ctx).Return(nil, nil)

		heroes, err := svc.List(ctx)

		assert.NoError(t, err)
		assert.NotNil(t, heroes)
		assert.Empty(t, heroes)
	})

	t.Run("store failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("FindAll", ctx).Return(nil, errors.New("io failure"))

		_, err := svc.List(ctx)

		assert.Error(t, err)
	})
}

func TestHeroService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("matches", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("FindByName", ctx, "ma").Return([]model.Hero{{ID: 1, Name: "Max"}}, nil)

		heroes, err := svc.Search(ctx, "ma")

		assert.NoError(t, err)
		assert.Len(t, heroes, 1)
	})

	t.Run("no matches", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("FindByName", ctx, "zzz").Return([]model.Hero{}, nil)

		heroes, err := svc.Search(ctx, "zzz")

		assert.NoError(t, err)
		assert.Empty(t, heroes)
	})
}

func TestHeroService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		hero     *model.Hero
		existing []model.Hero
		wantErr  error
	}{
		{
			name:     "disjoint id and name",
			hero:     &model.Hero{ID: 2, Name: "Thorne"},
			existing: []model.Hero{{ID: 1, Name: "Max"}},
			wantErr:  nil,
		},
		{
			name:     "id collision",
			hero:     &model.Hero{ID: 1, Name: "Thorne"},
			existing: []model.Hero{{ID: 1, Name: "Max"}},
			wantErr:  ErrConflict,
		},
		{
			name:     "new name contains existing name",
			hero:     &model.Hero{ID: 2, Name: "Maximus"},
			existing: []model.Hero{{ID: 1, Name: "Max"}},
			wantErr:  ErrConflict,
		},
		{
			// The containment check runs one way only: the new name must
			// contain the existing one. "Max" inside "Maximus" does not.
			name:     "existing name contains new name",
			hero:     &model.Hero{ID: 2, Name: "Max"},
			existing: []model.Hero{{ID: 1, Name: "Maximus"}},
			wantErr:  nil,
		},
		{
			name:     "empty collection never conflicts",
			hero:     &model.Hero{ID: 1, Name: "Max"},
			existing: []model.Hero{},
			wantErr:  nil,
		},
		{
			name:    "missing name",
			hero:    &model.Hero{ID: 1},
			wantErr: ErrNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockHeroRepository)
			svc := NewHeroService(nil, mRepo)

			if tt.existing != nil {
				mRepo.On("FindAll", ctx).Return(tt.existing, nil)
			}
			if tt.wantErr == nil && tt.existing != nil {
				mRepo.On("Create", ctx, tt.hero).Return(tt.hero, nil)
			}

			stored, err := svc.Create(ctx, tt.hero)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, stored)
				// On conflict the store must not be touched.
				mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.hero.ID, stored.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}

	t.Run("scan failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("FindAll", ctx).Return(nil, errors.New("io failure"))

		_, err := svc.Create(ctx, &model.Hero{ID: 1, Name: "Max"})

		assert.Error(t, err)
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestHeroService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("echoes the submitted hero", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		submitted := &model.Hero{ID: 1, Name: "Maximus"}
		// The repository may return a different row; the service must still
		// hand back the submitted value.
		mRepo.On("Update", ctx, submitted).Return(&model.Hero{ID: 1, Name: "stored-copy"}, nil)

		out, err := svc.Update(ctx, submitted)

		assert.NoError(t, err)
		assert.Same(t, submitted, out)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		hero := &model.Hero{ID: 99, Name: "Ghost"}
		mRepo.On("Update", ctx, hero).Return(nil, sql.ErrNoRows)

		out, err := svc.Update(ctx, hero)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, out)
	})

	t.Run("store failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		hero := &model.Hero{ID: 1, Name: "Max"}
		mRepo.On("Update", ctx, hero).Return(nil, errors.New("io failure"))

		_, err := svc.Update(ctx, hero)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestHeroService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("Delete", ctx, 1).Return(true, nil)

		assert.NoError(t, svc.Delete(ctx, 1))
	})

	t.Run("missing", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("Delete", ctx, 99).Return(false, nil)

		assert.ErrorIs(t, svc.Delete(ctx, 99), ErrNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("Delete", ctx, 1).Return(false, errors.New("io failure"))

		err := svc.Delete(ctx, 1)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestHeroService_UploadPortrait(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(mStore, mRepo)

		r := strings.NewReader("png-bytes")
		mRepo.On("FindByID", ctx, 1).Return(&model.Hero{ID: 1, Name: "Max"}, nil)
		mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "portraits/") && strings.HasSuffix(key, ".png")
		}), r, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "image/png" && opt.Size == 9
		})).Return(storage.ObjectInfo{Size: 9}, nil)
		mRepo.On("SetPortrait", ctx, 1, mock.Anything, "image/png").Return(nil)

		hero, err := svc.UploadPortrait(ctx, 1, r, "image/png", 9)

		assert.NoError(t, err)
		assert.NotEmpty(t, hero.PortraitPath)
		assert.Equal(t, "image/png", hero.PortraitType)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		svc := NewHeroService(nil, new(repoMocks.MockHeroRepository))

		_, err := svc.UploadPortrait(ctx, 1, nil, "image/png", 0)

		assert.ErrorIs(t, err, ErrReaderNil)
	})

	t.Run("hero missing", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("FindByID", ctx, 99).Return(nil, sql.ErrNoRows)

		_, err := svc.UploadPortrait(ctx, 99, strings.NewReader("x"), "image/png", 1)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(mStore, mRepo)

		mRepo.On("FindByID", ctx, 1).Return(&model.Hero{ID: 1, Name: "Max"}, nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("storage fail"))

		_, err := svc.UploadPortrait(ctx, 1, strings.NewReader("x"), "image/png", 1)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "upload to storage")
	})

	t.Run("db failure rolls the object back", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(mStore, mRepo)

		mRepo.On("FindByID", ctx, 1).Return(&model.Hero{ID: 1, Name: "Max"}, nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		mRepo.On("SetPortrait", ctx, 1, mock.Anything, "image/png").
			Return(errors.New("db fail"))
		mStore.On("Delete", ctx, mock.Anything).Return(nil)

		_, err := svc.UploadPortrait(ctx, 1, strings.NewReader("x"), "image/png", 1)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "db save failed")
		mStore.AssertCalled(t, "Delete", ctx, mock.Anything)
	})
}

func TestHeroService_PortraitURL(t *testing.T) {
	ctx := context.Background()

	t.Run("presigns the stored key", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(mStore, mRepo)

		mRepo.On("FindByID", ctx, 1).
			Return(&model.Hero{ID: 1, Name: "Max", PortraitPath: "portraits/abc.png"}, nil)
		mStore.On("PresignGet", ctx, "portraits/abc.png", 15*time.Minute).
			Return("https://minio.local/portraits/abc.png?sig=x", nil)

		u, err := svc.PortraitURL(ctx, 1, 15*time.Minute)

		assert.NoError(t, err)
		assert.Contains(t, u, "portraits/abc.png")
	})

	t.Run("no portrait", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("FindByID", ctx, 1).Return(&model.Hero{ID: 1, Name: "Max"}, nil)

		_, err := svc.PortraitURL(ctx, 1, time.Minute)

		assert.ErrorIs(t, err, ErrNoPortrait)
	})

	t.Run("hero missing", func(t *testing.T) {
		mRepo := new(repoMocks.MockHeroRepository)
		svc := NewHeroService(nil, mRepo)

		mRepo.On("FindByID", ctx, 99).Return(nil, sql.ErrNoRows)

		_, err := svc.PortraitURL(ctx, 99, time.Minute)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}
