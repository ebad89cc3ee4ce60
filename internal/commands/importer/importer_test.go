package importer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/datasembly/ghch/internal/config"
	domainErrors "github.com/datasembly/ghch/internal/errors"
	"github.com/datasembly/ghch/internal/i18n"
	"github.com/datasembly/ghch/internal/models"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

type MockMigrationService struct {
	mock.Mock
}

func (m *MockMigrationService) Run(ctx context.Context, opts config.ImportOptions) (*models.ImportReport, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ImportReport), args.Error(1)
}

type testCommand struct {
	cmd       *cli.Command
	out       *bytes.Buffer
	service   *MockMigrationService
	providers int
}

func setupImportTest(t *testing.T) *testCommand {
	t.Helper()
	for _, key := range []string{"GITHUB_TOKEN", "CLUBHOUSE_TOKEN", "CLUBHOUSE_API_URL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	tc := &testCommand{out: &bytes.Buffer{}, service: &MockMigrationService{}}
	factory := NewImportCommandFactory(func(opts config.ImportOptions) (MigrationService, error) {
		tc.providers++
		return tc.service, nil
	})
	factory.SetOutput(tc.out)

	tc.cmd = factory.CreateCommand(translations, "test")
	tc.cmd.ExitErrHandler = func(context.Context, *cli.Command, error) {}
	return tc
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var exitErr cli.ExitCoder
	require.True(t, errors.As(err, &exitErr), "expected an exit error, got %v", err)
	return exitErr.ExitCode()
}

var validArgs = []string{
	"ghch",
	"--github-token=gh-token",
	"--clubhouse-token=ch-token",
	"--github-repo=frontend",
	"--clubhouse-project=4",
	"--label=migrate",
}

func TestImportCommand_Validation(t *testing.T) {
	t.Run("should report every missing flag and exit 1", func(t *testing.T) {
		tc := setupImportTest(t)

		err := tc.cmd.Run(context.Background(), []string{"ghch"})

		assert.Equal(t, 1, exitCode(t, err))
		assert.Equal(t, strings.Join([]string{
			"✘ Usage: --github-token arg is required",
			"✘ Usage: --clubhouse-token arg is required",
			"✘ Usage: --clubhouse-project arg is required",
			"✘ Usage: --github-repo arg is required",
			"✘ Usage: --label arg is required",
			"",
		}, "\n"), tc.out.String())
		assert.Zero(t, tc.providers, "no client may be built for invalid options")
		tc.service.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})

	t.Run("should reject an unknown state", func(t *testing.T) {
		tc := setupImportTest(t)

		err := tc.cmd.Run(context.Background(), append(append([]string{}, validArgs...), "--state=merged"))

		assert.Equal(t, 1, exitCode(t, err))
		assert.Equal(t, "✘ Usage: --state must be one of open | closed | all\n", tc.out.String())
		tc.service.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})

	t.Run("should read tokens from the environment", func(t *testing.T) {
		tc := setupImportTest(t)
		t.Setenv("GITHUB_TOKEN", "env-gh")
		t.Setenv("CLUBHOUSE_TOKEN", "env-ch")

		tc.service.On("Run", mock.Anything, mock.MatchedBy(func(opts config.ImportOptions) bool {
			return opts.GitHubToken == "env-gh" && opts.ClubhouseToken == "env-ch"
		})).Return(&models.ImportReport{ProjectFound: true}, nil)

		err := tc.cmd.Run(context.Background(), []string{"ghch", "--github-repo=frontend", "--clubhouse-project=4", "--label=migrate"})

		assert.NoError(t, err)
		tc.service.AssertExpectations(t)
	})
}

func TestImportCommand_Run(t *testing.T) {
	t.Run("should pass the parsed options with defaults", func(t *testing.T) {
		tc := setupImportTest(t)

		tc.service.On("Run", mock.Anything, config.ImportOptions{
			GitHubToken:      "gh-token",
			ClubhouseToken:   "ch-token",
			GitHubOrg:        config.DefaultGitHubOrg,
			GitHubRepo:       "frontend",
			ClubhouseProject: "4",
			ClubhouseURL:     config.DefaultClubhouseURL,
			State:            "open",
			Label:            "migrate",
		}).Return(&models.ImportReport{ProjectFound: true}, nil).Once()

		err := tc.cmd.Run(context.Background(), validArgs)

		assert.NoError(t, err)
		assert.Equal(t, 1, tc.providers)
		tc.service.AssertExpectations(t)
	})

	t.Run("should exit 0 even when stories failed", func(t *testing.T) {
		tc := setupImportTest(t)

		tc.service.On("Run", mock.Anything, mock.Anything).Return(&models.ImportReport{
			ProjectFound: true,
			Outcomes: []models.ImportOutcome{
				{Issue: models.Issue{Number: 1}, Status: models.ImportSucceeded},
				{Issue: models.Issue{Number: 2}, Status: models.ImportFailed, Err: errors.New("boom")},
			},
		}, nil)

		err := tc.cmd.Run(context.Background(), append(append([]string{}, validArgs...), "--state=All"))

		assert.NoError(t, err)
	})

	t.Run("should exit 0 when the project is unknown", func(t *testing.T) {
		tc := setupImportTest(t)

		tc.service.On("Run", mock.Anything, mock.Anything).Return(&models.ImportReport{ProjectFound: false}, nil)

		err := tc.cmd.Run(context.Background(), validArgs)

		assert.NoError(t, err)
	})

	t.Run("should exit 1 when the search fails", func(t *testing.T) {
		tc := setupImportTest(t)

		tc.service.On("Run", mock.Anything, mock.Anything).
			Return(nil, domainErrors.ErrGitHubTokenInvalid.WithError(errors.New("401 Bad credentials")))

		err := tc.cmd.Run(context.Background(), validArgs)

		assert.Equal(t, 1, exitCode(t, err))
		assert.Equal(t,
			"   Try: Generate a new token with 'repo' scope at: https://github.com/settings/tokens\n",
			tc.out.String())
	})
}

func TestImportCommand_ProviderError(t *testing.T) {
	translations, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)

	var out bytes.Buffer
	factory := NewImportCommandFactory(func(config.ImportOptions) (MigrationService, error) {
		return nil, errors.New("no http client")
	})
	factory.SetOutput(&out)

	cmd := factory.CreateCommand(translations, "test")
	cmd.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err = cmd.Run(context.Background(), validArgs)

	assert.Equal(t, 1, exitCode(t, err))
	assert.Equal(t, "✘ no http client\n", out.String())
}
