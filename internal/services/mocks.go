package services

import (
	"context"

	"github.com/datasembly/ghch/internal/models"
	"github.com/stretchr/testify/mock"
)

type (
	MockStoryTracker struct {
		mock.Mock
	}

	MockIssueSearcher struct {
		mock.Mock
	}

	MockStoryImporter struct {
		mock.Mock
	}
)

func (m *MockStoryTracker) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockStoryTracker) CreateStory(ctx context.Context, story models.StoryRequest) (*models.Story, error) {
	args := m.Called(ctx, story)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Story), args.Error(1)
}

func (m *MockIssueSearcher) SearchIssues(ctx context.Context, query models.IssueQuery) (*models.SearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SearchResult), args.Error(1)
}

func (m *MockStoryImporter) Import(ctx context.Context, issues []models.Issue, projectID string) models.ImportReport {
	args := m.Called(ctx, issues, projectID)
	return args.Get(0).(models.ImportReport)
}
