package i18n

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var supported = []language.Tag{language.French, language.English}

// Translator renders user-facing strings in French or English. Keys are the
// English source strings; missing keys render as-is.
type Translator struct {
	builder  *catalog.Builder
	matcher  language.Matcher
	tags     []language.Tag
	fallback language.Tag
}

// New builds the catalog. defaultLocale is used when Accept-Language is
// absent or unsupported; anything unknown falls back to French.
func New(defaultLocale string) *Translator {
	fallback := language.French
	if tag, err := language.Parse(strings.TrimSpace(defaultLocale)); err == nil {
		base, _ := tag.Base()
		for _, candidate := range supported {
			if cb, _ := candidate.Base(); cb == base {
				fallback = candidate
				break
			}
		}
	}

	tags := []language.Tag{fallback}
	for _, candidate := range supported {
		if candidate != fallback {
			tags = append(tags, candidate)
		}
	}

	builder := catalog.NewBuilder(catalog.Fallback(fallback))
	for key, fr := range frenchMessages {
		_ = builder.SetString(language.French, key, fr)
		_ = builder.SetString(language.English, key, key)
	}

	return &Translator{
		builder:  builder,
		matcher:  language.NewMatcher(tags),
		tags:     tags,
		fallback: fallback,
	}
}

// Default returns the fallback locale.
func (t *Translator) Default() language.Tag {
	if t == nil {
		return language.French
	}
	return t.fallback
}

// Resolve picks the best supported locale for an Accept-Language header.
func (t *Translator) Resolve(acceptLanguage string) language.Tag {
	if t == nil {
		return language.French
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return t.fallback
	}
	_, idx, conf := t.matcher.Match(prefs...)
	if conf == language.No || idx < 0 || idx >= len(t.tags) {
		return t.fallback
	}
	return t.tags[idx]
}

// Sprintf formats key in the given locale. Numeric arguments are rendered
// with locale-specific grouping, so callers pass preformatted strings.
func (t *Translator) Sprintf(tag language.Tag, key string, args ...any) string {
	if t == nil {
		return message.NewPrinter(language.English).Sprintf(key, args...)
	}
	return message.NewPrinter(tag, message.Catalog(t.builder)).Sprintf(key, args...)
}

type ctxKey struct{}

type localized struct {
	tr  *Translator
	tag language.Tag
}

// WithLocale stores the translator and resolved request locale on ctx.
func (t *Translator) WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, localized{tr: t, tag: tag})
}

// LocaleFromContext returns the request locale when one was resolved.
func LocaleFromContext(ctx context.Context) (language.Tag, bool) {
	if ctx == nil {
		return language.Und, false
	}
	l, ok := ctx.Value(ctxKey{}).(localized)
	return l.tag, ok
}

// T translates key for the locale stored on ctx. Without one, the key is
// formatted untranslated.
func T(ctx context.Context, key string, args ...any) string {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(localized); ok && l.tr != nil {
			return l.tr.Sprintf(l.tag, key, args...)
		}
	}
	if len(args) == 0 {
		return key
	}
	return fmt.Sprintf(key, args...)
}
