package github

import (
	"context"
	"fmt"
	"net/http"
	"time"

	domainErrors "github.com/datasembly/ghch/internal/errors"
	"github.com/datasembly/ghch/internal/logger"
	"github.com/datasembly/ghch/internal/models"
	"github.com/datasembly/ghch/internal/vcs"
	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

// SearchPageSize is the number of issues requested from the search endpoint.
// Only the first page is ever read.
const SearchPageSize = 10

var _ vcs.IssueSearcher = (*GitHubClient)(nil)

type SearchService interface {
	Issues(ctx context.Context, query string, opts *github.SearchOptions) (*github.IssuesSearchResult, *github.Response, error)
}

type GitHubClient struct {
	searchService SearchService
	org           string
}

func NewGitHubClient(org, token string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return NewGitHubClientWithServices(client.Search, org)
}

func NewGitHubClientWithServices(searchService SearchService, org string) *GitHubClient {
	return &GitHubClient{
		searchService: searchService,
		org:           org,
	}
}

// BuildSearchQuery builds the issue search expression for one repository of org.
func BuildSearchQuery(org string, query models.IssueQuery) string {
	return fmt.Sprintf(`label:"%s" state:%s org:%s repo:%s/%s`, query.Label, query.State, org, org, query.Repo)
}

func (ghc *GitHubClient) SearchIssues(ctx context.Context, query models.IssueQuery) (*models.SearchResult, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	q := BuildSearchQuery(ghc.org, query)
	log.Debug("constructed search query", "query", q)

	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: SearchPageSize},
	}

	result, resp, err := ghc.searchService.Issues(ctx, q, opts)
	if err != nil {
		log.Debug("github search failed",
			"query", q,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return nil, searchError(err, resp, q)
	}

	issues := make([]models.Issue, 0, len(result.Issues))
	for _, issue := range result.Issues {
		issues = append(issues, toIssue(issue))
	}

	log.Info("github search completed",
		"total", result.GetTotal(),
		"count", len(issues),
		"duration_ms", time.Since(start).Milliseconds())

	return &models.SearchResult{
		Query:      q,
		TotalCount: result.GetTotal(),
		Issues:     issues,
	}, nil
}

func searchError(err error, resp *github.Response, query string) error {
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.WithError(err)
		case http.StatusTooManyRequests:
			return domainErrors.ErrGitHubRateLimit.
				WithError(err).
				WithContext("retry_after", resp.Header.Get("Retry-After"))
		case http.StatusForbidden:
			return domainErrors.ErrGitHubInsufficientPerms.WithError(err)
		case http.StatusUnprocessableEntity:
			return domainErrors.ErrInvalidSearchQuery.
				WithError(err).
				WithContext("query", query)
		}
	}
	return domainErrors.ErrSearchIssues.
		WithError(err).
		WithContext("query", query)
}

func toIssue(issue *github.Issue) models.Issue {
	labels := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	return models.Issue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		URL:       issue.GetHTMLURL(),
		Labels:    labels,
		CreatedAt: issue.GetCreatedAt().Time,
		UpdatedAt: issue.GetUpdatedAt().Time,
	}
}
