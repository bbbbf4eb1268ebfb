package format

import (
	"strings"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/ko"
	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is configured or none matches
const DefaultLocale = "en"

type localeDef struct {
	tag  language.Tag
	key  string // locales package name, e.g. en_GB
	msgs string // template language
	new  func() locales.Translator
}

// first entry is the matcher fallback
var localeDefs = []localeDef{
	{language.English, "en", "en", en.New},
	{language.BritishEnglish, "en_GB", "en", en_GB.New},
	{language.German, "de", "de", de.New},
	{language.French, "fr", "fr", fr.New},
	{language.Spanish, "es", "es", es.New},
	{language.Japanese, "ja", "en", ja.New},
	{language.Korean, "ko", "en", ko.New},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(localeDefs))
	for i, d := range localeDefs {
		tags[i] = d.tag
	}
	return language.NewMatcher(tags)
}()

// resolveLocale picks the closest supported locale for a BCP 47 or underscore tag
func resolveLocale(s string) localeDef {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
	if s == "" {
		return localeDefs[0]
	}
	tag, err := language.Parse(s)
	if err != nil {
		return localeDefs[0]
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return localeDefs[0]
	}
	return localeDefs[idx]
}

// ResolveLocale returns the supported locale key closest to s, e.g. en-gb to en_GB
func ResolveLocale(s string) string { return resolveLocale(s).key }

// SupportedLocales lists the locale keys dates can be rendered in
func SupportedLocales() []string {
	out := make([]string, len(localeDefs))
	for i, d := range localeDefs {
		out[i] = d.key
	}
	return out
}

// messageLocale returns the translator the templates of lang are registered on
func messageLocale(lang string) locales.Translator {
	switch lang {
	case "de":
		return de.New()
	case "fr":
		return fr.New()
	case "es":
		return es.New()
	}
	return en.New()
}
