// Package deck derives comparable feature signatures from scraped deck lists.
package deck

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/pokeca-rec/pokeca-cli/internal/model"
)

// ErrMissingSection marks a deck record lacking the pokemons section. Such a
// record is invalid input and is never classified.
var ErrMissingSection = eris.New("deck: missing pokemons section")

// Signature returns the deck's feature set: the sorted distinct Pokémon card
// names. Counts are discarded. Names embed the set code, so two printings of
// the same species count as different features.
func Signature(d model.Deck) ([]string, error) {
	if d.Pokemons == nil {
		return nil, ErrMissingSection
	}
	names := make([]string, 0, len(d.Pokemons))
	for name := range d.Pokemons {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// IntersectionSignature returns the cards common to every deck's signature:
// the archetype-defining core of a set of example decks. An empty input
// yields an empty set.
func IntersectionSignature(decks []model.Deck) ([]string, error) {
	if len(decks) == 0 {
		return []string{}, nil
	}

	common, err := Signature(decks[0])
	if err != nil {
		return nil, err
	}
	inCommon := make(map[string]bool, len(common))
	for _, name := range common {
		inCommon[name] = true
	}

	for _, d := range decks[1:] {
		sig, err := Signature(d)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool, len(sig))
		for _, name := range sig {
			seen[name] = true
		}
		for name := range inCommon {
			if !seen[name] {
				delete(inCommon, name)
			}
		}
	}

	result := make([]string, 0, len(inCommon))
	for name := range inCommon {
		result = append(result, name)
	}
	sort.Strings(result)
	return result, nil
}
