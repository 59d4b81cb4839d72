package translator

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed translation/*.toml
var catalog embed.FS

var Translator *i18n.Bundle

type Config struct {
	// TranslationFolder replaces the embedded catalog when set.
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var (
	supported = []string{LanguageEn, LanguageFr}
	matcher   = newMatcher(supported)
)

var errNotInitialized = errors.New("translator not initialized")

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if len(cfg.SupportedLanguages) > 0 {
		supported = withDefault(cfg.SupportedLanguages)
		matcher = newMatcher(supported)
	}

	if cfg.TranslationFolder == "" {
		loadCatalog()
		return
	}

	files, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if _, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

func loadCatalog() {
	files, err := fs.ReadDir(catalog, "translation")
	if err != nil {
		zap.L().Error("failed to list embedded translations", zap.Error(err))
		return
	}
	for _, f := range files {
		name := "translation/" + f.Name()
		data, err := catalog.ReadFile(name)
		if err != nil {
			zap.L().Warn("failed to read embedded translation", zap.String("file", name), zap.Error(err))
			continue
		}
		if _, err := Translator.ParseMessageFileBytes(data, f.Name()); err != nil {
			zap.L().Warn("failed to parse embedded translation", zap.String("file", name), zap.Error(err))
		}
	}
}

// Localize resolves a message id for lang, falling back to English.
func Localize(lang, messageID string) (string, error) {
	if Translator == nil {
		return "", errNotInitialized
	}
	localizer := i18n.NewLocalizer(Translator, lang, LanguageEn)
	return localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID})
}

// MatchLanguage picks the supported language that best fits an
// Accept-Language header. English wins when nothing matches.
func MatchLanguage(header string) string {
	if header == "" {
		return LanguageEn
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LanguageEn
	}
	return supported[index]
}

func newMatcher(langs []string) language.Matcher {
	tags := make([]language.Tag, 0, len(langs))
	for _, lang := range langs {
		tags = append(tags, language.Make(lang))
	}
	return language.NewMatcher(tags)
}

// withDefault puts English first so the matcher falls back to it.
func withDefault(langs []string) []string {
	out := []string{LanguageEn}
	for _, lang := range langs {
		if lang != LanguageEn {
			out = append(out, lang)
		}
	}
	return out
}
