package models

import "time"

// Issue is a snapshot of a GitHub issue (or pull request) returned by search.
type Issue struct {
	Number    int
	Title     string
	Body      string
	URL       string
	Labels    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IssueQuery selects the issues to import.
type IssueQuery struct {
	Label string
	State string
	Repo  string
}

// SearchResult holds the first page of a search. TotalCount is what GitHub
// reports for the whole query and may exceed len(Issues). Query is the search
// expression that was sent.
type SearchResult struct {
	Query      string
	TotalCount int
	Issues     []Issue
}
