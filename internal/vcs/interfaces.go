package vcs

import (
	"context"

	"github.com/datasembly/ghch/internal/models"
)

// IssueSearcher finds the issues an import run migrates.
type IssueSearcher interface {
	// SearchIssues runs a single search and returns its first page.
	SearchIssues(ctx context.Context, query models.IssueQuery) (*models.SearchResult, error)
}
