package mocks

import (
	"context"
	"io"
	"time"

	"heroapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockHeroService struct {
	mock.Mock
}

func (m *MockHeroService) Get(ctx context.Context, id int) (*model.Hero, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hero), args.Error(1)
}

func (m *MockHeroService) List(ctx context.Context) ([]model.Hero, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hero), args.Error(1)
}

func (m *MockHeroService) Search(ctx context.Context, name string) ([]model.Hero, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hero), args.Error(1)
}

func (m *MockHeroService) Create(ctx context.Context, hero *model.Hero) (*model.Hero, error) {
	args := m.Called(ctx, hero)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hero), args.Error(1)
}

func (m *MockHeroService) Update(ctx context.Context, hero *model.Hero) (*model.Hero, error) {
	args := m.Called(ctx, hero)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hero), args.Error(1)
}

func (m *MockHeroService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHeroService) UploadPortrait(ctx context.Context, id int, r io.Reader, contentType string, size int64) (*model.Hero, error) {
	args := m.Called(ctx, id, r, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hero), args.Error(1)
}

func (m *MockHeroService) PortraitURL(ctx context.Context, id int, expiry time.Duration) (string, error) {
	args := m.Called(ctx, id, expiry)
	return args.String(0), args.Error(1)
}
