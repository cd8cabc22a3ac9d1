package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDetails_SingleObject(t *testing.T) {
	path := writeTestFile(t, "card.json", `{
		"card_type": "pokemon",
		"card_name": "ピカチュウ",
		"hp": 60,
		"card_code": "SV4a-001/100"
	}`)

	details, err := readDetails(path)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "ピカチュウ", details[0].CardName)
	require.NotNil(t, details[0].HP)
	assert.Equal(t, 60, *details[0].HP)
}

func TestReadDetails_Array(t *testing.T) {
	path := writeTestFile(t, "cards.json", `[
		{"card_type": "pokemon", "card_name": "ピカチュウ", "card_code": "SV4a-001/100"},
		{"card_type": "item", "card_name": "ネストボール", "card_code": "SV1S-084/078"}
	]`)

	details, err := readDetails(path)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "ピカチュウ", details[0].CardName)
	assert.Equal(t, "ネストボール", details[1].CardName)
}

func TestReadDetails_Malformed(t *testing.T) {
	path := writeTestFile(t, "bad.json", `{"card_name": `)

	_, err := readDetails(path)
	assert.Error(t, err)
}

func TestReadDetails_MissingFile(t *testing.T) {
	_, err := readDetails(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestIngestFiles(t *testing.T) {
	st := newServerTestStore(t)
	ctx := context.Background()

	a := writeTestFile(t, "a.json", `[
		{"card_type": "pokemon", "card_name": "ピカチュウ", "card_code": "SV4a-001/100"},
		{"card_type": "pokemon", "card_name": "ピカチュウ", "card_code": "SVHK-021/053"}
	]`)
	b := writeTestFile(t, "b.json", `{"card_type": "item", "card_name": "ネストボール", "card_code": "SV1S-084/078"}`)

	require.NoError(t, ingestFiles(ctx, st, []string{a, b}, 2))

	// the two pikachu records are the same physical card and merge
	count, err := st.CountCards(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIngestFiles_BadFileSkipped(t *testing.T) {
	st := newServerTestStore(t)
	ctx := context.Background()

	good := writeTestFile(t, "good.json", `{"card_type": "pokemon", "card_name": "ピカチュウ", "card_code": "SV4a-001/100"}`)
	bad := writeTestFile(t, "bad.json", `not json`)

	require.NoError(t, ingestFiles(ctx, st, []string{bad, good}, 1))

	count, err := st.CountCards(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
