package archetype

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pokeca-rec/pokeca-cli/internal/deck"
	"github.com/pokeca-rec/pokeca-cli/internal/model"
)

// Document is one persisted archetype: a name and the feature set shared by
// all of its example decks. Feature is kept sorted so the stored file diffs
// cleanly between rewrites.
type Document struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Feature []string `json:"feature"`
}

// CategoryStore is a document store of known archetypes backed by a single
// JSON file. Every mutation is persisted before it returns. Mutations must
// be serialized by the caller; reads are safe once loaded.
type CategoryStore struct {
	path string
	docs []Document
}

// Load opens the category store at path. A missing or corrupt backing file
// is recoverable — the store starts empty and is rebuilt via Bootstrap — so
// Load never fails.
func Load(path string) *CategoryStore {
	cs := &CategoryStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		zap.L().Info("archetype: starting with empty category store",
			zap.String("path", path),
			zap.Error(err),
		)
		return cs
	}
	if err := json.Unmarshal(data, &cs.docs); err != nil {
		zap.L().Warn("archetype: category store corrupt, reinitializing",
			zap.String("path", path),
			zap.Error(err),
		)
		cs.docs = nil
	}
	return cs
}

// Documents returns the stored archetypes in insertion order.
func (cs *CategoryStore) Documents() []Document {
	return cs.docs
}

// Get returns the document with the given name.
func (cs *CategoryStore) Get(name string) (Document, bool) {
	for _, doc := range cs.docs {
		if doc.Name == name {
			return doc, true
		}
	}
	return Document{}, false
}

// Upsert replaces the feature set of an existing archetype or inserts a new
// one, then persists the store.
func (cs *CategoryStore) Upsert(name string, feature []string) error {
	sorted := append([]string(nil), feature...)
	sort.Strings(sorted)

	updated := false
	for i := range cs.docs {
		if cs.docs[i].Name == name {
			cs.docs[i].Feature = sorted
			updated = true
			break
		}
	}
	if !updated {
		cs.docs = append(cs.docs, Document{
			ID:      uuid.NewString(),
			Name:    name,
			Feature: sorted,
		})
	}

	if err := cs.persist(); err != nil {
		return err
	}
	zap.L().Info("archetype: upserted category",
		zap.String("name", name),
		zap.Int("feature_size", len(sorted)),
		zap.Bool("replaced", updated),
	)
	return nil
}

// Bootstrap builds or refreshes the store from labeled example decks: each
// archetype's feature set is the intersection signature of its decks.
// Recipes are applied in name order for deterministic insertion order.
func (cs *CategoryStore) Bootstrap(recipes map[string][]model.Deck) error {
	names := make([]string, 0, len(recipes))
	for name := range recipes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		feature, err := deck.IntersectionSignature(recipes[name])
		if err != nil {
			return eris.Wrapf(err, "archetype: bootstrap %s", name)
		}
		if err := cs.Upsert(name, feature); err != nil {
			return err
		}
	}
	return nil
}

// persist writes the full document set atomically via a temp file rename.
func (cs *CategoryStore) persist() error {
	if err := os.MkdirAll(filepath.Dir(cs.path), 0o755); err != nil {
		return eris.Wrap(err, "archetype: create store dir")
	}

	data, err := json.MarshalIndent(cs.docs, "", "  ")
	if err != nil {
		return eris.Wrap(err, "archetype: marshal store")
	}

	tmp := cs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrap(err, "archetype: write store")
	}
	if err := os.Rename(tmp, cs.path); err != nil {
		return eris.Wrap(err, "archetype: replace store")
	}
	return nil
}
