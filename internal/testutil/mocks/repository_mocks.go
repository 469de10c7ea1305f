package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordpuzzle/internal/models"
)

// MockPuzzleRepository is a mock implementation of repository.PuzzleRepository
type MockPuzzleRepository struct {
	mock.Mock
}

func (m *MockPuzzleRepository) Get(ctx context.Context, key string) (*models.Puzzle, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Puzzle), args.Error(1)
}

func (m *MockPuzzleRepository) Save(ctx context.Context, puzzle models.Puzzle) error {
	args := m.Called(ctx, puzzle)
	return args.Error(0)
}

// MockGameRepository is a mock implementation of repository.GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) game(args mock.Arguments) (*models.Game, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) Get(ctx context.Context, id string) (*models.Game, error) {
	return m.game(m.Called(ctx, id))
}

func (m *MockGameRepository) Create(ctx context.Context, puzzle models.Puzzle, isBonus bool) (*models.Game, error) {
	return m.game(m.Called(ctx, puzzle, isBonus))
}

func (m *MockGameRepository) Update(ctx context.Context, game models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) ActiveDaily(ctx context.Context, date string) (*models.Game, error) {
	return m.game(m.Called(ctx, date))
}

func (m *MockGameRepository) CompletedDaily(ctx context.Context, date string) (*models.Game, error) {
	return m.game(m.Called(ctx, date))
}

func (m *MockGameRepository) ActiveBonus(ctx context.Context) (*models.Game, error) {
	return m.game(m.Called(ctx))
}

func (m *MockGameRepository) Latest(ctx context.Context) (*models.Game, error) {
	return m.game(m.Called(ctx))
}

func (m *MockGameRepository) SetCurrent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGameRepository) Current(ctx context.Context) (*models.Game, error) {
	return m.game(m.Called(ctx))
}

func (m *MockGameRepository) DeactivateDailyExcept(ctx context.Context, date, keepID string) (int, error) {
	args := m.Called(ctx, date, keepID)
	return args.Int(0), args.Error(1)
}

func (m *MockGameRepository) DeleteInactiveBefore(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}
