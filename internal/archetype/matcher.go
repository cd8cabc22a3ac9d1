// Package archetype matches deck signatures against a persisted store of
// named archetype categories using Jaccard set similarity.
package archetype

// Jaccard returns |A∩B| / |A∪B| for two feature sets, 0 when the union is
// empty. Inputs are treated as sets; duplicates are ignored.
func Jaccard(a, b []string) float64 {
	setA := make(map[string]bool, len(a))
	for _, v := range a {
		setA[v] = true
	}
	setB := make(map[string]bool, len(b))
	for _, v := range b {
		setB[v] = true
	}

	intersection := 0
	for v := range setA {
		if setB[v] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Match is a classification result.
type Match struct {
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}

// Classify returns the best-matching category for a deck signature. The
// comparison is strict greater-than, so among categories with equal
// similarity the one inserted into the store first wins. An empty store, or
// no category with similarity above zero, yields no match — never a guess.
func Classify(signature []string, cs *CategoryStore) (Match, bool) {
	var best Match
	for _, doc := range cs.Documents() {
		sim := Jaccard(signature, doc.Feature)
		if sim > best.Similarity {
			best = Match{Name: doc.Name, Similarity: sim}
		}
	}
	if best.Similarity == 0 {
		return Match{}, false
	}
	return best, true
}
