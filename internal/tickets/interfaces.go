package tickets

import (
	"context"

	"github.com/datasembly/ghch/internal/models"
)

// StoryTracker is the destination of an import.
type StoryTracker interface {
	GetProject(ctx context.Context, projectID string) (*models.Project, error)
	CreateStory(ctx context.Context, story models.StoryRequest) (*models.Story, error)
}
