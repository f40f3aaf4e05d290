// Package i18n provides display-string lookup with per-locale tables.
// Missing keys degrade to the key itself rather than failing, and
// unsupported locales fall back to the default locale. Core computation
// packages never depend on this package; translation is applied at the
// presentation edge only.
package i18n

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is the base locale that is always present.
const DefaultLocale = "en"

// Bundle holds the translation tables for every supported locale.
type Bundle struct {
	mu      sync.RWMutex
	tables  map[string]map[string]string
	matcher language.Matcher
	keys    []string // table key per matcher tag, in tag order
}

// NewBundle creates a bundle seeded with the built-in English table.
func NewBundle() *Bundle {
	b := &Bundle{tables: map[string]map[string]string{
		DefaultLocale: builtinEnglish(),
	}}
	b.rebuildMatcher()
	return b
}

// LoadDir merges every <locale>.yaml file under dir into the bundle.
// The file name (without extension) is the locale code; its content is
// a flat key-to-string mapping. Files that fail to parse are skipped
// with a warning, like any other malformed configuration input.
func (b *Bundle) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading locale dir: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		locale := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		if _, err := language.Parse(locale); err != nil {
			slog.Warn("skipping locale file with invalid code", "file", name, "error", err)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		table := map[string]string{}
		if err := yaml.Unmarshal(data, &table); err != nil {
			slog.Warn("skipping invalid locale YAML", "file", name, "error", err)
			continue
		}

		b.merge(locale, table)
	}

	b.rebuildMatcher()
	slog.Info("locales loaded", "count", len(b.Locales()))
	return nil
}

func (b *Bundle) merge(locale string, table map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	dst := b.tables[locale]
	if dst == nil {
		dst = make(map[string]string, len(table))
		b.tables[locale] = dst
	}
	for k, v := range table {
		dst[k] = v
	}
}

func (b *Bundle) rebuildMatcher() {
	b.mu.Lock()
	defer b.mu.Unlock()

	// The default locale must come first: the matcher falls back to the
	// first tag when nothing else fits. Table keys are carried alongside
	// the tags so a match maps back to the exact key the table was
	// loaded under (a regioned file like pt-BR.yaml stays reachable).
	tags := []language.Tag{language.Make(DefaultLocale)}
	keys := []string{DefaultLocale}
	for locale := range b.tables {
		if locale != DefaultLocale {
			tags = append(tags, language.Make(locale))
			keys = append(keys, locale)
		}
	}
	b.keys = keys
	b.matcher = language.NewMatcher(tags)
}

// Locales lists the supported locale codes.
func (b *Bundle) Locales() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.tables))
	for locale := range b.tables {
		out = append(out, locale)
	}
	return out
}

// Resolve maps a requested locale code (or an Accept-Language header
// value) onto a supported locale. Unsupported codes fall back to the
// default locale with a warning.
func (b *Bundle) Resolve(requested string) string {
	if requested == "" {
		return DefaultLocale
	}

	b.mu.RLock()
	matcher, keys := b.matcher, b.keys
	b.mu.RUnlock()

	desired, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(desired) == 0 {
		slog.Warn("unparseable locale, falling back to default", "requested", requested)
		return DefaultLocale
	}

	_, index, confidence := matcher.Match(desired...)
	if confidence == language.No {
		slog.Warn("unsupported locale, falling back to default", "requested", requested)
		return DefaultLocale
	}
	return keys[index]
}

// Translator answers lookups against one locale's table.
type Translator struct {
	table map[string]string
}

// Translator returns a translator for the given locale code. The code
// is resolved first, so an unsupported locale yields the default
// translator rather than an error.
func (b *Bundle) Translator(locale string) *Translator {
	resolved := b.Resolve(locale)
	b.mu.RLock()
	defer b.mu.RUnlock()
	table := b.tables[resolved]
	if table == nil {
		table = b.tables[DefaultLocale]
	}
	return &Translator{table: table}
}

// Table returns a copy of the resolved locale's full table, for clients
// that render strings themselves.
func (b *Bundle) Table(locale string) map[string]string {
	resolved := b.Resolve(locale)
	b.mu.RLock()
	defer b.mu.RUnlock()
	src := b.tables[resolved]
	if src == nil {
		src = b.tables[DefaultLocale]
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// T looks up key and interpolates {{param}} placeholders. A missing key
// returns the key itself; this fallback is part of the contract.
func (tr *Translator) T(key string, params map[string]any) string {
	text, ok := tr.table[key]
	if !ok {
		text = key
	}
	for name, value := range params {
		text = strings.ReplaceAll(text, "{{"+name+"}}", fmt.Sprint(value))
	}
	return text
}
