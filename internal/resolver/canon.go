package resolver

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pokeca-rec/pokeca-cli/internal/store"
)

// CanonOutcome describes how a card code was canonicalized.
type CanonOutcome string

const (
	// OutcomeFound means exactly one recorded code group matched; the
	// group's first code is the canonical one.
	OutcomeFound CanonOutcome = "found"
	// OutcomeAmbiguous means zero or multiple groups matched; the observed
	// code is kept unchanged.
	OutcomeAmbiguous CanonOutcome = "ambiguous"
	// OutcomePassthrough means no card table was provided.
	OutcomePassthrough CanonOutcome = "passthrough"
)

// CanonResult is the outcome of a canonicalization lookup. Code always holds
// a usable value: the canonical code on a match, the observed code otherwise.
type CanonResult struct {
	Code    string
	Outcome CanonOutcome
}

// Canonicalize maps an observed card code to the canonical code for that
// card: the first recorded code of the single group containing the observed
// code. A card with multiple reprints has one group listing every reissued
// code; "first recorded wins" is a fixed policy, not a closest match.
//
// A nil store passes the observed code through. Ambiguity (no group, or more
// than one) is recoverable: the observed code is returned unchanged.
func Canonicalize(ctx context.Context, st store.Store, cardName, observedCode string) (CanonResult, error) {
	if st == nil {
		return CanonResult{Code: observedCode, Outcome: OutcomePassthrough}, nil
	}

	groups, err := st.CodeGroupsByName(ctx, cardName)
	if err != nil {
		return CanonResult{}, err
	}

	var matched []store.CodeGroup
	for _, g := range groups {
		serialized, err := serializeCodes(g)
		if err != nil {
			return CanonResult{}, err
		}
		if strings.Contains(serialized, observedCode) {
			matched = append(matched, g)
		}
	}

	if len(matched) != 1 || len(matched[0]) == 0 {
		zap.L().Info("resolver: ambiguous card code mapping",
			zap.String("card_name", cardName),
			zap.String("card_code", observedCode),
			zap.Int("matched_groups", len(matched)),
		)
		return CanonResult{Code: observedCode, Outcome: OutcomeAmbiguous}, nil
	}

	return CanonResult{Code: matched[0][0], Outcome: OutcomeFound}, nil
}
