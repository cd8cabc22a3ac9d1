package deck

import (
	"strings"

	"golang.org/x/text/width"

	"github.com/pokeca-rec/pokeca-cli/internal/model"
)

// NormalizeName folds full-width punctuation to half-width and drops a
// parenthesized suffix, e.g. "ハイパーボール（SV2a）" → "ハイパーボール".
// Deck pages print the same supporting card with or without such suffixes
// depending on layout.
func NormalizeName(name string) string {
	folded := width.Fold.String(name)
	if i := strings.Index(folded, "("); i >= 0 {
		folded = folded[:i]
	}
	return strings.TrimSpace(folded)
}

// Normalize returns a copy of the deck with the supporting sections' card
// names normalized, merging counts when names collide. Pokémon names are
// left untouched: their embedded set code is part of feature identity.
func Normalize(d model.Deck) model.Deck {
	return model.Deck{
		Pokemons:   copyCounts(d.Pokemons),
		Tools:      normalizeCounts(d.Tools),
		Supporters: normalizeCounts(d.Supporters),
		Stadiums:   normalizeCounts(d.Stadiums),
		Energies:   normalizeCounts(d.Energies),
	}
}

func copyCounts(counts map[string]int) map[string]int {
	if counts == nil {
		return nil
	}
	out := make(map[string]int, len(counts))
	for name, n := range counts {
		out[name] = n
	}
	return out
}

func normalizeCounts(counts map[string]int) map[string]int {
	if counts == nil {
		return nil
	}
	out := make(map[string]int, len(counts))
	for name, n := range counts {
		out[NormalizeName(name)] += n
	}
	return out
}
