package services

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/datasembly/ghch/internal/i18n"
	"github.com/datasembly/ghch/internal/logger"
	"github.com/datasembly/ghch/internal/models"
	"github.com/datasembly/ghch/internal/tickets"
	"github.com/datasembly/ghch/internal/ui"
	"golang.org/x/sync/errgroup"
)

type ImportService struct {
	tracker tickets.StoryTracker
	trans   *i18n.Translations
	out     io.Writer
	outMu   sync.Mutex
}

type ImportOption func(*ImportService)

// WithImportOutput sets where diagnostics are printed. Defaults to stdout.
func WithImportOutput(w io.Writer) ImportOption {
	return func(s *ImportService) {
		s.out = w
	}
}

func NewImportService(tracker tickets.StoryTracker, trans *i18n.Translations, opts ...ImportOption) *ImportService {
	s := &ImportService{
		tracker: tracker,
		trans:   trans,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Import creates one story per issue in the given project. The project is
// resolved first; if that fails nothing is created. Story creations run
// concurrently and a failed one never stops the others, so Import has no
// error result: failures are printed and recorded in the report.
func (s *ImportService) Import(ctx context.Context, issues []models.Issue, projectID string) models.ImportReport {
	log := logger.FromContext(ctx)
	start := time.Now()

	project, err := s.tracker.GetProject(ctx, projectID)
	if err != nil {
		log.Debug("failed to resolve clubhouse project",
			"project_id", projectID,
			"error", err)
		s.printError(s.trans.GetMessage("project_not_found", map[string]interface{}{
			"ProjectID": projectID,
		}))
		return models.ImportReport{ProjectFound: false}
	}

	log.Info("clubhouse project resolved",
		"project_id", project.ID,
		"name", project.Name,
		"count", len(issues))

	outcomes := make([]models.ImportOutcome, len(issues))

	// Plain Group, not WithContext: one failed story must not cancel the rest.
	var g errgroup.Group
	for i, issue := range issues {
		g.Go(func() error {
			outcomes[i] = s.importIssue(ctx, issue, project.ID)
			return nil
		})
	}
	_ = g.Wait()

	report := models.ImportReport{ProjectFound: true, Outcomes: outcomes}
	log.Info("import finished",
		"imported", report.Imported(),
		"failed", len(report.Failed()),
		"duration_ms", time.Since(start).Milliseconds())

	return report
}

func (s *ImportService) importIssue(ctx context.Context, issue models.Issue, projectID int64) models.ImportOutcome {
	log := logger.FromContext(ctx).With("issue", issue.Number)

	story, err := s.tracker.CreateStory(ctx, NewStoryRequest(issue, projectID))
	if err != nil {
		log.Debug("failed to create story", "error", err)
		s.printError(s.trans.GetMessage("story_import_failed", map[string]interface{}{
			"Number": issue.Number,
		}))
		return models.ImportOutcome{Issue: issue, Status: models.ImportFailed, Err: err}
	}

	log.Info("story created", "story_id", story.ID, "url", story.AppURL)
	return models.ImportOutcome{Issue: issue, Status: models.ImportSucceeded, Story: story}
}

func (s *ImportService) printError(msg string) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	ui.PrintError(s.out, msg)
}
