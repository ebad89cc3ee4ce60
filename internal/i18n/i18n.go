package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/active.*.toml
var localeFS embed.FS

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

// NewTranslations loads the embedded catalogs plus any active.*.toml files
// found in localesDir, which may be empty.
func NewTranslations(defaultLang string, localesDir string) (*Translations, error) {
	if defaultLang == "" {
		return nil, fmt.Errorf("language must not be empty")
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if err := loadMessageFiles(bundle, localeFS, "locales/active.*.toml"); err != nil {
		return nil, err
	}

	if localesDir != "" {
		if err := loadMessageFiles(bundle, os.DirFS(localesDir), "active.*.toml"); err != nil {
			return nil, err
		}
	}

	return &Translations{
		bundle:   bundle,
		localize: i18n.NewLocalizer(bundle, defaultLang),
	}, nil
}

func loadMessageFiles(bundle *i18n.Bundle, fsys fs.FS, pattern string) error {
	files, err := fs.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, file); err != nil {
			return fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}
	return nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

// GetMessage renders a message that has no plural forms.
func (t *Translations) GetMessage(messageID string, templateData map[string]interface{}) string {
	return t.localizeMessage(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: messageID},
		TemplateData:   templateData,
	})
}

// GetPluralMessage renders messageID in the plural form that count selects
// for the current language.
func (t *Translations) GetPluralMessage(messageID string, count int, templateData map[string]interface{}) string {
	return t.localizeMessage(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: messageID},
		PluralCount:    count,
		TemplateData:   templateData,
	})
}

func (t *Translations) localizeMessage(cfg *i18n.LocalizeConfig) string {
	localized, err := t.localize.Localize(cfg)
	if err != nil {
		return "Translation missing: " + cfg.DefaultMessage.ID
	}
	return localized
}
