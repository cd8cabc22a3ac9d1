package model

// Deck is a scraped deck list: section name to card-name → count. Only the
// Pokemons section is required by the classifier; a nil Pokemons map means
// the section was absent from the source page. Pokemon keys embed the set
// code (e.g. "サーフゴーex\nSV3a-050/062") and are treated as opaque.
type Deck struct {
	Pokemons   map[string]int `json:"pokemons,omitempty" yaml:"pokemons,omitempty"`
	Tools      map[string]int `json:"tools,omitempty" yaml:"tools,omitempty"`
	Supporters map[string]int `json:"supporters,omitempty" yaml:"supporters,omitempty"`
	Stadiums   map[string]int `json:"stadiums,omitempty" yaml:"stadiums,omitempty"`
	Energies   map[string]int `json:"energies,omitempty" yaml:"energies,omitempty"`
}
