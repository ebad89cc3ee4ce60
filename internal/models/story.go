package models

import "time"

type StoryType string

const (
	StoryTypeBug     StoryType = "bug"
	StoryTypeChore   StoryType = "chore"
	StoryTypeFeature StoryType = "feature"
)

type Project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StoryRequest is the payload of a Clubhouse story creation.
type StoryRequest struct {
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	StoryType     StoryType `json:"story_type"`
	ProjectID     int64     `json:"project_id"`
	ExternalID    string    `json:"external_id,omitempty"`
	ExternalLinks []string  `json:"external_links,omitempty"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
	UpdatedAt     time.Time `json:"updated_at,omitzero"`
}

type Story struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StoryType StoryType `json:"story_type"`
	AppURL    string    `json:"app_url"`
}
