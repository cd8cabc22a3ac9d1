package model

// CardType classifies a card product.
type CardType string

const (
	CardTypePokemon       CardType = "pokemon"
	CardTypeTool          CardType = "tool"
	CardTypeItem          CardType = "item"
	CardTypeStadium       CardType = "stadium"
	CardTypeSupporter     CardType = "supporter"
	CardTypeBasicEnergy   CardType = "basic_energy"
	CardTypeSpecialEnergy CardType = "special_energy"
)

// CardDetail is one scraped observation of a card product, as produced by
// the external scraping layer. CardCode, ImgURL and RarityCode are variant
// fields: they legitimately differ between reprints of the same physical
// card and do not participate in identity.
type CardDetail struct {
	CardType    CardType `json:"card_type"`
	CardName    string   `json:"card_name"`
	EvoType     string   `json:"evo_type,omitempty"`
	HP          *int     `json:"hp,omitempty"`
	HPType      string   `json:"hp_type,omitempty"`
	Ability     string   `json:"ability,omitempty"`
	Attacks     []string `json:"attacks,omitempty"`
	SpecialRule string   `json:"special_rule,omitempty"`
	Weakness    string   `json:"weakness,omitempty"`
	Resistance  string   `json:"resistance,omitempty"`
	Retreat     string   `json:"retreat,omitempty"`
	Description string   `json:"description,omitempty"`
	CardCode    string   `json:"card_code"`
	ImgURL      string   `json:"img_url"`
	RarityCode  string   `json:"rarity_code"`
}

// CanonicalCard is the persisted, deduplicated form of a card product.
// HashUniqueInfo is the digest over all non-variant attributes; the three
// variant fields accumulate observed values in first-seen order.
type CanonicalCard struct {
	ID             int64    `json:"id"`
	CardType       CardType `json:"card_type"`
	CardName       string   `json:"card_name"`
	EvoType        string   `json:"evo_type,omitempty"`
	HP             *int     `json:"hp,omitempty"`
	HPType         string   `json:"hp_type,omitempty"`
	Ability        string   `json:"ability,omitempty"`
	Attacks        []string `json:"attacks,omitempty"`
	SpecialRule    string   `json:"special_rule,omitempty"`
	Weakness       string   `json:"weakness,omitempty"`
	Resistance     string   `json:"resistance,omitempty"`
	Retreat        string   `json:"retreat,omitempty"`
	Description    string   `json:"description,omitempty"`
	HashUniqueInfo string   `json:"hash_unique_info"`
	CardCodes      []string `json:"card_codes"`
	ImgURLs        []string `json:"img_urls"`
	RarityCodes    []string `json:"rarity_codes"`
}
