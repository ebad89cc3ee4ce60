package services

import (
	"strings"

	"github.com/datasembly/ghch/internal/models"
)

// StoryTypeFor maps issue labels to a story type. Any label containing
// "bug" wins, then "chore"; everything else is a feature.
func StoryTypeFor(labels []string) models.StoryType {
	if anyLabelContains(labels, "bug") {
		return models.StoryTypeBug
	}
	if anyLabelContains(labels, "chore") {
		return models.StoryTypeChore
	}
	return models.StoryTypeFeature
}

func anyLabelContains(labels []string, substr string) bool {
	for _, label := range labels {
		if strings.Contains(label, substr) {
			return true
		}
	}
	return false
}

// NewStoryRequest maps an issue onto the story that represents it in project.
func NewStoryRequest(issue models.Issue, projectID int64) models.StoryRequest {
	var links []string
	if issue.URL != "" {
		links = []string{issue.URL}
	}

	return models.StoryRequest{
		Name:          issue.Title,
		Description:   issue.Body,
		StoryType:     StoryTypeFor(issue.Labels),
		ProjectID:     projectID,
		ExternalID:    issue.URL,
		ExternalLinks: links,
		CreatedAt:     issue.CreatedAt,
		UpdatedAt:     issue.UpdatedAt,
	}
}
