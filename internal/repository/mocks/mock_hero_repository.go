package mocks

import (
	"context"

	"heroapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockHeroRepository struct {
	mock.Mock
}

func (m *MockHeroRepository) FindByID(ctx context.Context, id int) (*model.Hero, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hero), args.Error(1)
}

func (m *MockHeroRepository) FindAll(ctx context.Context) ([]model.Hero, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hero), args.Error(1)
}

func (m *MockHeroRepository) FindByName(ctx context.Context, text string) ([]model.Hero, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hero), args.Error(1)
}

func (m *MockHeroRepository) Create(ctx context.Context, hero *model.Hero) (*model.Hero, error) {
	args := m.Called(ctx, hero)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hero), args.Error(1)
}

func (m *MockHeroRepository) Update(ctx context.Context, hero *model.Hero) (*model.Hero, error) {
	args := m.Called(ctx, hero)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hero), args.Error(1)
}

func (m *MockHeroRepository) Delete(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockHeroRepository) SetPortrait(ctx context.Context, id int, path, contentType string) error {
	args := m.Called(ctx, id, path, contentType)
	return args.Error(0)
}
