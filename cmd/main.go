package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/datasembly/ghch/internal/commands/importer"
	"github.com/datasembly/ghch/internal/config"
	"github.com/datasembly/ghch/internal/httpclient"
	"github.com/datasembly/ghch/internal/i18n"
	"github.com/datasembly/ghch/internal/services"
	"github.com/datasembly/ghch/internal/tickets/clubhouse"
	"github.com/datasembly/ghch/internal/ui"
	"github.com/datasembly/ghch/internal/vcs/github"
	"github.com/datasembly/ghch/internal/version"
	"github.com/joho/godotenv"
)

func main() {
	// tokens may live in a .env file next to where ghch runs
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	translations, err := loadTranslations()
	if err != nil {
		log.Fatalf("Error loading translations: %v", err)
	}

	factory := importer.NewImportCommandFactory(func(opts config.ImportOptions) (importer.MigrationService, error) {
		return newMigrationService(opts, translations), nil
	})

	if err := factory.CreateCommand(translations, version.FullVersion()).Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadTranslations falls back to English, with a warning, when GHCH_LANG
// names a language no catalog provides.
func loadTranslations() (*i18n.Translations, error) {
	translations, err := i18n.NewTranslations("en", os.Getenv("GHCH_LOCALES_DIR"))
	if err != nil {
		return nil, err
	}

	if lang := os.Getenv("GHCH_LANG"); lang != "" && lang != "en" {
		if err := translations.SetLanguage(lang); err != nil {
			ui.PrintWarning(os.Stderr, fmt.Sprintf("%v, using English", err))
		}
	}
	return translations, nil
}

func newMigrationService(opts config.ImportOptions, translations *i18n.Translations) *services.MigrationService {
	searcher := github.NewGitHubClient(opts.Org(), opts.GitHubToken)
	tracker := clubhouse.NewClubhouseService(opts.BaseURL(), opts.ClubhouseToken, httpclient.New())
	return services.NewMigrationService(searcher, services.NewImportService(tracker, translations), translations)
}
