package store

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pokeca-rec/pokeca-cli/internal/model"
)

// CodeGroup is the list of equivalent reprint codes recorded for one
// physical card, in first-seen order.
type CodeGroup []string

// Store defines the persistence interface for the canonical card table.
//
// GetCardByHash + InsertCard/UpdateCardVariants form a check-then-act
// sequence; concurrent writers must serialize those calls externally
// (see resolver.Resolve).
type Store interface {
	// Cards
	GetCardByHash(ctx context.Context, hash string) (*model.CanonicalCard, error)
	InsertCard(ctx context.Context, card *model.CanonicalCard) error
	UpdateCardVariants(ctx context.Context, hash string, codes, imgURLs, rarityCodes []string) error

	// Lookups
	CodeGroupsByName(ctx context.Context, cardName string) ([]CodeGroup, error)
	SearchCardNames(ctx context.Context, prefix string, limit int) ([]string, error)
	ListCards(ctx context.Context) ([]model.CanonicalCard, error)
	CountCards(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

// marshalJSON serializes without HTML escaping so stored Japanese text and
// URLs stay byte-comparable with substring lookups.
func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", eris.Wrap(err, "store: marshal")
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func unmarshalList(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, eris.Wrap(err, "store: unmarshal list")
	}
	return list, nil
}
