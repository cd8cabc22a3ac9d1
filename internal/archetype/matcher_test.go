package archetype

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJaccard_Symmetric(t *testing.T) {
	a := []string{"x", "y", "z"}
	b := []string{"y", "z", "w"}
	assert.Equal(t, Jaccard(a, b), Jaccard(b, a))
}

func TestJaccard_Identity(t *testing.T) {
	a := []string{"x", "y"}
	assert.Equal(t, 1.0, Jaccard(a, a))
}

func TestJaccard_BothEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Jaccard(nil, nil))
}

func TestJaccard_Disjoint(t *testing.T) {
	assert.Equal(t, 0.0, Jaccard([]string{"a"}, []string{"b"}))
}

func TestJaccard_Overlap(t *testing.T) {
	a := []string{"ギラティナ", "コンフェイ", "ミュウ"}
	b := []string{"ギラティナ", "コンフェイ"}
	// |A∩B|=2, |A∪B|=3
	assert.InDelta(t, 2.0/3.0, Jaccard(a, b), 1e-9)
}

func TestJaccard_DuplicatesIgnored(t *testing.T) {
	assert.Equal(t, 1.0, Jaccard([]string{"a", "a"}, []string{"a"}))
}

func newTestCategoryStore(t *testing.T) *CategoryStore {
	t.Helper()
	return Load(filepath.Join(t.TempDir(), "deck_category.json"))
}

func TestClassify_EmptyStore(t *testing.T) {
	cs := newTestCategoryStore(t)

	_, ok := Classify([]string{"ギラティナ"}, cs)
	assert.False(t, ok)
}

func TestClassify_NoOverlap(t *testing.T) {
	cs := newTestCategoryStore(t)
	require.NoError(t, cs.Upsert("Lost Box", []string{"ギラティナ", "コンフェイ"}))

	_, ok := Classify([]string{"ピカチュウ"}, cs)
	assert.False(t, ok)
}

func TestClassify_BestMatch(t *testing.T) {
	cs := newTestCategoryStore(t)
	require.NoError(t, cs.Upsert("Lost Box", []string{"ギラティナ", "コンフェイ", "ウッウ"}))
	require.NoError(t, cs.Upsert("Charizard", []string{"リザードンex", "ヒトカゲ"}))

	match, ok := Classify([]string{"ギラティナ", "コンフェイ", "ウッウ", "ミュウ"}, cs)
	require.True(t, ok)
	assert.Equal(t, "Lost Box", match.Name)
	assert.InDelta(t, 0.75, match.Similarity, 1e-9)
}

func TestClassify_TieBreak_FirstInsertedWins(t *testing.T) {
	cs := newTestCategoryStore(t)
	require.NoError(t, cs.Upsert("First", []string{"a", "b"}))
	require.NoError(t, cs.Upsert("Second", []string{"a", "c"}))

	// query overlaps each category equally
	match, ok := Classify([]string{"a"}, cs)
	require.True(t, ok)
	assert.Equal(t, "First", match.Name)
}
