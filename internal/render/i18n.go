package render

import (
	"embed"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/tartampluch/go-panchanga/internal/config"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves preview labels for one language.
type Translator struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	languages []string
	lang      string
}

// NewTranslator loads the embedded locale files and selects lang, falling
// back to English when the language is unknown.
func NewTranslator(lang string) *Translator {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		code := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if code == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		t.languages = append(t.languages, code)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code,
			config.LogKeyFile, name,
		)
	}

	if !slices.Contains(t.languages, lang) {
		lang = config.DefaultLanguage
	}
	t.lang = lang
	t.localizer = i18n.NewLocalizer(bundle, lang)
	return t
}

// Language is the selected language code.
func (t *Translator) Language() string { return t.lang }

// Languages lists the locale codes found in the embedded files.
func (t *Translator) Languages() []string { return t.languages }

// Msg translates key, filling template fields from data. Missing keys are
// returned verbatim.
func (t *Translator) Msg(key string, data map[string]any) string {
	if t == nil || t.localizer == nil {
		return key
	}
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
