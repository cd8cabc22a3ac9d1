// Package resolver collapses repeated scraped observations of the same
// physical card into one canonical record keyed by a content hash.
//
// Resolve is a read-modify-write sequence; callers invoking it from
// concurrent workers must hold a single mutex (or equivalent transaction)
// around each call. The function itself takes no locks.
package resolver

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pokeca-rec/pokeca-cli/internal/model"
	"github.com/pokeca-rec/pokeca-cli/internal/store"
)

// ErrMalformedRecord marks a card detail record whose attributes cannot be
// serialized; no write is performed for such records.
var ErrMalformedRecord = eris.New("resolver: malformed card record")

// HashUniqueInfo computes the deduplication digest for a card observation:
// SHA-256 over the deterministic JSON serialization of every attribute
// except the three variant fields (card_code, img_url, rarity_code).
func HashUniqueInfo(d model.CardDetail) (string, error) {
	if err := validate(d); err != nil {
		return "", err
	}

	uniqueVals := []any{
		string(d.CardType),
		d.CardName,
		d.EvoType,
		d.HP,
		d.HPType,
		d.Ability,
		d.Attacks,
		d.SpecialRule,
		d.Weakness,
		d.Resistance,
		d.Retreat,
		d.Description,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(uniqueVals); err != nil {
		return "", eris.Wrap(ErrMalformedRecord, err.Error())
	}

	sum := sha256.Sum256(bytes.TrimRight(buf.Bytes(), "\n"))
	return hex.EncodeToString(sum[:]), nil
}

// validate rejects records carrying non-UTF-8 text; those cannot be
// serialized deterministically.
func validate(d model.CardDetail) error {
	fields := []string{
		string(d.CardType), d.CardName, d.EvoType, d.HPType, d.Ability,
		d.SpecialRule, d.Weakness, d.Resistance, d.Retreat, d.Description,
		d.CardCode, d.ImgURL, d.RarityCode,
	}
	fields = append(fields, d.Attacks...)
	for _, f := range fields {
		if !utf8.ValidString(f) {
			return eris.Wrap(ErrMalformedRecord, "invalid UTF-8 attribute")
		}
	}
	return nil
}

// Resolve inserts the observation as a new canonical card or merges it into
// the existing card with the same hash. Exactly one insert or one update is
// issued per call; re-observing an already-recorded card code is a no-op,
// which makes Resolve idempotent under repeated identical input.
func Resolve(ctx context.Context, st store.Store, d model.CardDetail) (*model.CanonicalCard, error) {
	hash, err := HashUniqueInfo(d)
	if err != nil {
		return nil, err
	}

	existing, err := st.GetCardByHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		card := &model.CanonicalCard{
			CardType:       d.CardType,
			CardName:       d.CardName,
			EvoType:        d.EvoType,
			HP:             d.HP,
			HPType:         d.HPType,
			Ability:        d.Ability,
			Attacks:        d.Attacks,
			SpecialRule:    d.SpecialRule,
			Weakness:       d.Weakness,
			Resistance:     d.Resistance,
			Retreat:        d.Retreat,
			Description:    d.Description,
			HashUniqueInfo: hash,
			CardCodes:      []string{d.CardCode},
			ImgURLs:        []string{d.ImgURL},
			RarityCodes:    []string{d.RarityCode},
		}
		if err := st.InsertCard(ctx, card); err != nil {
			return nil, err
		}
		return card, nil
	}

	// The duplicate test mirrors the stored column: a substring match
	// against the serialized code list, not per-element equality.
	duplicate, err := codeRecorded(existing.CardCodes, d.CardCode)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return existing, nil
	}

	existing.CardCodes = append(existing.CardCodes, d.CardCode)
	existing.ImgURLs = append(existing.ImgURLs, d.ImgURL)
	existing.RarityCodes = append(existing.RarityCodes, d.RarityCode)
	if err := st.UpdateCardVariants(ctx, hash, existing.CardCodes, existing.ImgURLs, existing.RarityCodes); err != nil {
		return nil, err
	}

	zap.L().Debug("resolver: merged reprint",
		zap.String("card_name", d.CardName),
		zap.String("card_code", d.CardCode),
		zap.Int("known_codes", len(existing.CardCodes)),
	)
	return existing, nil
}

func codeRecorded(codes []string, code string) (bool, error) {
	serialized, err := serializeCodes(codes)
	if err != nil {
		return false, err
	}
	return strings.Contains(serialized, code), nil
}

func serializeCodes(codes []string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(codes); err != nil {
		return "", eris.Wrap(err, "resolver: serialize code list")
	}
	return buf.String(), nil
}
