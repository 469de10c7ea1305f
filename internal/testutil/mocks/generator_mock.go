package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/wordpuzzle/internal/models"
)

// MockGenerator is a mock implementation of puzzlegen.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context) (models.Puzzle, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Puzzle), args.Error(1)
}
