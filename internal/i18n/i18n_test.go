package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslations(t *testing.T) {
	t.Run("Should load the embedded catalogs", func(t *testing.T) {
		trans, err := NewTranslations("en", "")

		require.NoError(t, err)
		assert.Equal(t, "Importing issues to Clubhouse", trans.GetMessage("importing_issues", nil))
	})

	t.Run("Should fail with empty language", func(t *testing.T) {
		trans, err := NewTranslations("", "")

		assert.Error(t, err)
		assert.Nil(t, trans)
	})

	t.Run("Should load extra catalogs from a directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "active.pt.toml"), []byte(`
[importing_issues]
other = "Importando issues para o Clubhouse"
`), 0o644))

		trans, err := NewTranslations("pt", dir)

		require.NoError(t, err)
		assert.Equal(t, "Importando issues para o Clubhouse", trans.GetMessage("importing_issues", nil))
	})

	t.Run("Should fail on a malformed catalog", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "active.pt.toml"), []byte(`[broken`), 0o644))

		_, err := NewTranslations("en", dir)

		assert.Error(t, err)
	})
}

func TestGetMessage(t *testing.T) {
	trans, err := NewTranslations("en", "")
	require.NoError(t, err)

	tests := []struct {
		name string
		id   string
		data map[string]interface{}
		want string
	}{
		{
			name: "required option",
			id:   "option_required",
			data: map[string]interface{}{"Flag": "github-token"},
			want: "Usage: --github-token arg is required",
		},
		{
			name: "story failure names the issue",
			id:   "story_import_failed",
			data: map[string]interface{}{"Number": 2},
			want: "Failed to import issue #2",
		},
		{
			name: "search query",
			id:   "search_query_built",
			data: map[string]interface{}{"Query": `label:"migrate"`},
			want: `Constructed search query: label:"migrate"`,
		},
		{
			name: "unknown id",
			id:   "does_not_exist",
			want: "Translation missing: does_not_exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trans.GetMessage(tt.id, tt.data))
		})
	}
}

func TestGetPluralMessage(t *testing.T) {
	trans, err := NewTranslations("en", "")
	require.NoError(t, err)

	tests := []struct {
		name  string
		id    string
		count int
		data  map[string]interface{}
		want  string
	}{
		{
			name:  "no issues",
			id:    "issues_retrieved",
			count: 0,
			data:  map[string]interface{}{"Count": 0},
			want:  "Retrieved 0 issues from Github",
		},
		{
			name:  "one issue",
			id:    "issues_retrieved",
			count: 1,
			data:  map[string]interface{}{"Count": 1},
			want:  "Retrieved 1 issue from Github",
		},
		{
			name:  "many issues",
			id:    "issues_retrieved",
			count: 12,
			data:  map[string]interface{}{"Count": 12},
			want:  "Retrieved 12 issues from Github",
		},
		{
			name:  "summary for a single issue",
			id:    "import_summary",
			count: 1,
			data:  map[string]interface{}{"Imported": 1, "Total": 1},
			want:  "Imported 1 of 1 issue into Clubhouse",
		},
		{
			name:  "summary for several issues",
			id:    "import_summary",
			count: 3,
			data:  map[string]interface{}{"Imported": 2, "Total": 3},
			want:  "Imported 2 of 3 issues into Clubhouse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trans.GetPluralMessage(tt.id, tt.count, tt.data))
		})
	}
}

func TestGetMessage_LanguageWhereZeroIsSingular(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "active.fr.toml"), []byte(`
[importing_issues]
other = "Import des issues vers Clubhouse"

[issues_retrieved]
one = "{{.Count}} issue récupérée depuis Github"
other = "{{.Count}} issues récupérées depuis Github"
`), 0o644))

	trans, err := NewTranslations("fr", dir)
	require.NoError(t, err)

	assert.Equal(t, "Import des issues vers Clubhouse", trans.GetMessage("importing_issues", nil))
	assert.Equal(t, "0 issue récupérée depuis Github",
		trans.GetPluralMessage("issues_retrieved", 0, map[string]interface{}{"Count": 0}))
	assert.Equal(t, "5 issues récupérées depuis Github",
		trans.GetPluralMessage("issues_retrieved", 5, map[string]interface{}{"Count": 5}))
}

func TestSetLanguage(t *testing.T) {
	trans, err := NewTranslations("en", "")
	require.NoError(t, err)

	t.Run("Should change to a valid language", func(t *testing.T) {
		require.NoError(t, trans.SetLanguage("es"))
		assert.Equal(t, "Importando issues a Clubhouse", trans.GetMessage("importing_issues", nil))
	})

	t.Run("Should reject an unknown language", func(t *testing.T) {
		assert.Error(t, trans.SetLanguage("xx"))
	})
}
