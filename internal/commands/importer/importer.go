package importer

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/datasembly/ghch/internal/config"
	"github.com/datasembly/ghch/internal/i18n"
	"github.com/datasembly/ghch/internal/logger"
	"github.com/datasembly/ghch/internal/models"
	"github.com/datasembly/ghch/internal/ui"
	"github.com/urfave/cli/v3"
)

// MigrationService is a minimal interface for testing purposes
type MigrationService interface {
	Run(ctx context.Context, opts config.ImportOptions) (*models.ImportReport, error)
}

// MigrationServiceProvider builds the service once the options are known to be valid.
type MigrationServiceProvider func(opts config.ImportOptions) (MigrationService, error)

// ImportCommandFactory builds the ghch root command.
type ImportCommandFactory struct {
	migrationProvider MigrationServiceProvider
	out               io.Writer
}

func NewImportCommandFactory(migrationProvider MigrationServiceProvider) *ImportCommandFactory {
	return &ImportCommandFactory{
		migrationProvider: migrationProvider,
		out:               os.Stdout,
	}
}

// SetOutput redirects diagnostics, mostly for tests.
func (f *ImportCommandFactory) SetOutput(w io.Writer) {
	f.out = w
}

func (f *ImportCommandFactory) CreateCommand(t *i18n.Translations, version string) *cli.Command {
	return &cli.Command{
		Name:                  "ghch",
		Usage:                 t.GetMessage("app_usage", nil),
		Version:               version,
		Flags:                 f.createFlags(t),
		EnableShellCompletion: true,
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))
			return ctx, nil
		},
		Action: f.createAction(t),
	}
}

func (f *ImportCommandFactory) createFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    config.FlagGitHubToken,
			Usage:   t.GetMessage("flag_github_token", nil),
			Sources: cli.EnvVars("GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:    config.FlagClubhouseToken,
			Usage:   t.GetMessage("flag_clubhouse_token", nil),
			Sources: cli.EnvVars("CLUBHOUSE_TOKEN"),
		},
		&cli.StringFlag{
			Name:  config.FlagGitHubRepo,
			Usage: t.GetMessage("flag_github_repo", nil),
		},
		&cli.StringFlag{
			Name:  config.FlagGitHubOrg,
			Usage: t.GetMessage("flag_github_org", nil),
			Value: config.DefaultGitHubOrg,
		},
		&cli.StringFlag{
			Name:  config.FlagClubhouseProject,
			Usage: t.GetMessage("flag_clubhouse_project", nil),
		},
		&cli.StringFlag{
			Name:    config.FlagClubhouseURL,
			Usage:   t.GetMessage("flag_clubhouse_url", nil),
			Value:   config.DefaultClubhouseURL,
			Sources: cli.EnvVars("CLUBHOUSE_API_URL"),
		},
		&cli.StringFlag{
			Name:  config.FlagState,
			Usage: t.GetMessage("flag_state", nil),
			Value: config.DefaultState,
		},
		&cli.StringFlag{
			Name:  config.FlagLabel,
			Usage: t.GetMessage("flag_label", nil),
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: t.GetMessage("flag_verbose", nil),
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: t.GetMessage("flag_debug", nil),
		},
	}
}

func optionsFromCommand(cmd *cli.Command) config.ImportOptions {
	return config.ImportOptions{
		GitHubToken:      cmd.String(config.FlagGitHubToken),
		ClubhouseToken:   cmd.String(config.FlagClubhouseToken),
		GitHubOrg:        cmd.String(config.FlagGitHubOrg),
		GitHubRepo:       cmd.String(config.FlagGitHubRepo),
		ClubhouseProject: cmd.String(config.FlagClubhouseProject),
		ClubhouseURL:     cmd.String(config.FlagClubhouseURL),
		State:            cmd.String(config.FlagState),
		Label:            cmd.String(config.FlagLabel),
	}
}

func (f *ImportCommandFactory) createAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		log := logger.FromContext(ctx)
		start := time.Now()

		opts := optionsFromCommand(cmd)

		if violations := opts.Validate(); len(violations) > 0 {
			for _, v := range violations {
				ui.PrintError(f.out, violationMessage(t, v))
			}
			log.Debug("invalid options", "count", len(violations))
			return cli.Exit("", 1)
		}

		service, err := f.migrationProvider(opts)
		if err != nil {
			ui.HandleAppError(f.out, err)
			return cli.Exit("", 1)
		}

		report, err := service.Run(ctx, opts)
		if err != nil {
			// the service already printed why the search failed
			log.Debug("import aborted",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds())
			ui.PrintSuggestion(f.out, err)
			return cli.Exit("", 1)
		}

		log.Info("import command finished",
			"imported", report.Imported(),
			"failed", len(report.Failed()),
			"duration_ms", time.Since(start).Milliseconds())
		return nil
	}
}

func violationMessage(t *i18n.Translations, v config.Violation) string {
	if v.Kind == config.ViolationInvalid {
		return t.GetMessage("option_invalid_state", nil)
	}
	return t.GetMessage("option_required", map[string]interface{}{"Flag": v.Flag})
}
