package services

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/datasembly/ghch/internal/config"
	"github.com/datasembly/ghch/internal/i18n"
	"github.com/datasembly/ghch/internal/logger"
	"github.com/datasembly/ghch/internal/models"
	"github.com/datasembly/ghch/internal/ui"
	"github.com/datasembly/ghch/internal/vcs"
)

// storyImporter is a minimal interface for testing purposes
type storyImporter interface {
	Import(ctx context.Context, issues []models.Issue, projectID string) models.ImportReport
}

// MigrationService runs one import: search GitHub, then create the stories.
type MigrationService struct {
	searcher vcs.IssueSearcher
	importer storyImporter
	trans    *i18n.Translations
	out      io.Writer
}

type MigrationOption func(*MigrationService)

func WithMigrationOutput(w io.Writer) MigrationOption {
	return func(s *MigrationService) {
		s.out = w
	}
}

func NewMigrationService(searcher vcs.IssueSearcher, importer storyImporter, trans *i18n.Translations, opts ...MigrationOption) *MigrationService {
	s := &MigrationService{
		searcher: searcher,
		importer: importer,
		trans:    trans,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run expects validated options. A search failure aborts the run before any
// story is created; story-level failures only show up in the report.
func (s *MigrationService) Run(ctx context.Context, opts config.ImportOptions) (*models.ImportReport, error) {
	ctx = logger.With(ctx, "repo", opts.Org()+"/"+opts.GitHubRepo, "project_id", opts.ClubhouseProject)

	query := models.IssueQuery{
		Label: opts.Label,
		State: opts.NormalizedState(),
		Repo:  opts.GitHubRepo,
	}

	spinner := ui.NewSmartSpinner(s.out, s.trans.GetMessage("searching_github", nil))
	spinner.Start()

	result, err := s.searcher.SearchIssues(ctx, query)
	if err != nil {
		spinner.Error(s.trans.GetMessage("fetch_failed", map[string]interface{}{
			"Reason": ui.ErrorReason(err),
		}))
		return nil, fmt.Errorf("error fetching github issues: %w", err)
	}

	spinner.Stop()
	ui.PrintInfo(s.out, s.trans.GetMessage("search_query_built", map[string]interface{}{
		"Query": result.Query,
	}))
	ui.PrintInfo(s.out, s.trans.GetPluralMessage("issues_retrieved", result.TotalCount, map[string]interface{}{
		"Count": ui.Bold.Sprint(result.TotalCount),
	}))
	ui.PrintInfo(s.out, s.trans.GetMessage("importing_issues", nil))

	report := s.importer.Import(ctx, result.Issues, opts.ClubhouseProject)

	if report.ProjectFound {
		summary := s.trans.GetPluralMessage("import_summary", len(result.Issues), map[string]interface{}{
			"Imported": report.Imported(),
			"Total":    len(result.Issues),
		})
		if len(report.Failed()) > 0 {
			ui.PrintWarning(s.out, summary)
		} else {
			ui.PrintSuccess(s.out, summary)
		}
	}

	return &report, nil
}
