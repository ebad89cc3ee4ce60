package clubhouse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	domainErrors "github.com/datasembly/ghch/internal/errors"
	"github.com/datasembly/ghch/internal/httpclient"
	"github.com/datasembly/ghch/internal/logger"
	"github.com/datasembly/ghch/internal/models"
	"github.com/datasembly/ghch/internal/tickets"
)

const tokenHeader = "Clubhouse-Token"

// maxErrorBody caps how much of an error response ends up in error context.
const maxErrorBody = 512

var _ tickets.StoryTracker = (*ClubhouseService)(nil)

// ClubhouseService talks to the Clubhouse REST API (v3).
type ClubhouseService struct {
	baseURL string
	token   string
	client  httpclient.HTTPClient
}

func NewClubhouseService(baseURL, token string, client httpclient.HTTPClient) *ClubhouseService {
	return &ClubhouseService{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  client,
	}
}

// GetProject resolves a project by id. An unknown id yields ErrProjectNotFound.
func (s *ClubhouseService) GetProject(ctx context.Context, projectID string) (*models.Project, error) {
	endpoint := fmt.Sprintf("%s/projects/%s", s.baseURL, url.PathEscape(projectID))

	resp, err := s.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(ctx, resp)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusBadRequest, http.StatusUnprocessableEntity:
		// Clubhouse answers 400/422 for ids that are not numbers
		return nil, domainErrors.ErrProjectNotFound.
			WithContext("project_id", projectID).
			WithContext("status", resp.StatusCode)
	default:
		return nil, statusError(resp).WithContext("project_id", projectID)
	}

	var project models.Project
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return nil, domainErrors.ErrTrackerRequest.
			WithError(fmt.Errorf("error decoding project: %w", err)).
			WithContext("project_id", projectID)
	}

	return &project, nil
}

// CreateStory creates one story and returns it as Clubhouse stored it.
func (s *ClubhouseService) CreateStory(ctx context.Context, story models.StoryRequest) (*models.Story, error) {
	payload, err := json.Marshal(story)
	if err != nil {
		return nil, domainErrors.ErrCreateStory.WithError(fmt.Errorf("error encoding story: %w", err))
	}

	resp, err := s.do(ctx, http.MethodPost, s.baseURL+"/stories", payload)
	if err != nil {
		return nil, domainErrors.ErrCreateStory.WithError(err)
	}
	defer closeBody(ctx, resp)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, domainErrors.ErrCreateStory.
			WithError(statusError(resp)).
			WithContext("external_id", story.ExternalID)
	}

	var created models.Story
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, domainErrors.ErrCreateStory.WithError(fmt.Errorf("error decoding story: %w", err))
	}

	return &created, nil
}

func (s *ClubhouseService) do(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, domainErrors.ErrTrackerRequest.WithError(fmt.Errorf("error creating request: %w", err))
	}

	req.Header.Set(tokenHeader, s.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug(ctx, "clubhouse request", "method", method, "url", endpoint)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domainErrors.ErrTrackerRequest.WithError(fmt.Errorf("error making request: %w", err))
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		closeBody(ctx, resp)
		return nil, domainErrors.ErrClubhouseTokenInvalid.WithContext("status", resp.StatusCode)
	}

	return resp, nil
}

func statusError(resp *http.Response) *domainErrors.AppError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return domainErrors.ErrTrackerUnexpectedStatus.
		WithContext("status", resp.StatusCode).
		WithContext("body", strings.TrimSpace(string(body)))
}

func closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		logger.Warn(ctx, "error closing response body", "error", err)
	}
}
