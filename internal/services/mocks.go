package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jamiehdev/commit-wizard/internal/models"
)

type (
	MockGitService struct {
		mock.Mock
	}

	MockCommitGenerator struct {
		mock.Mock
	}
)

func (m *MockGitService) GetDiffInfo(ctx context.Context) (*models.DiffInfo, error) {
	args := m.Called(ctx)
	diff, _ := args.Get(0).(*models.DiffInfo)
	return diff, args.Error(1)
}

func (m *MockGitService) HasStagedChanges(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockGitService) GetStagedFiles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	files, _ := args.Get(0).([]string)
	return files, args.Error(1)
}

func (m *MockGitService) CreateCommit(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockCommitGenerator) Generate(ctx context.Context, diff *models.DiffInfo, intelligence *models.CommitIntelligence, opts models.GenerationOptions) (*models.GenerationResult, error) {
	args := m.Called(ctx, diff, intelligence, opts)
	result, _ := args.Get(0).(*models.GenerationResult)
	return result, args.Error(1)
}
