// Package catalog serves the user-facing strings of the quiz from an embedded
// go-i18n message bundle.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog looks up messages by ID.
type Catalog struct {
	loc *i18n.Localizer
}

// New loads every embedded message file.
func New() (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read locale file %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("parse locale file %s: %w", e.Name(), err)
		}
		slog.Debug("loaded locale file", "file", e.Name())
	}

	return &Catalog{loc: i18n.NewLocalizer(bundle, language.English.String())}, nil
}

// T returns a message by ID.
func (c *Catalog) T(msgID string) string {
	return c.localize(&i18n.LocalizeConfig{MessageID: msgID})
}

// Td returns a message by ID with template data.
func (c *Catalog) Td(msgID string, data map[string]any) string {
	return c.localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		TemplateData: data,
	})
}

// Tp returns a pluralized message by ID. The count is available to the
// template as .Count.
func (c *Catalog) Tp(msgID string, count int) string {
	return c.localize(&i18n.LocalizeConfig{
		MessageID:    msgID,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (c *Catalog) localize(cfg *i18n.LocalizeConfig) string {
	s, err := c.loc.Localize(cfg)
	if err != nil {
		slog.Warn("missing message", "id", cfg.MessageID, "error", err)
		return cfg.MessageID
	}
	return s
}
