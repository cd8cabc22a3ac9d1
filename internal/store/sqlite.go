package store

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/pokeca-rec/pokeca-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS ptcg_card (
	id               INTEGER PRIMARY KEY,
	card_type        TEXT,
	card_name        TEXT,
	evo_type         TEXT,
	hp               INT,
	hp_type          TEXT,
	ability          TEXT,
	attacks          TEXT,
	special_rule     TEXT,
	weakness         TEXT,
	resistance       TEXT,
	retreat          TEXT,
	description      TEXT,
	hash_unique_info TEXT UNIQUE,
	card_code        TEXT,
	img_url          TEXT,
	rarity_code      TEXT
);

CREATE INDEX IF NOT EXISTS idx_ptcg_card_name ON ptcg_card(card_name);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const cardColumns = `id, card_type, card_name, evo_type, hp, hp_type, ability, attacks,
	special_rule, weakness, resistance, retreat, description, hash_unique_info,
	card_code, img_url, rarity_code`

func (s *SQLiteStore) GetCardByHash(ctx context.Context, hash string) (*model.CanonicalCard, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM ptcg_card WHERE hash_unique_info = ?`, hash,
	)
	card, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get card by hash")
	}
	return card, nil
}

func (s *SQLiteStore) InsertCard(ctx context.Context, card *model.CanonicalCard) error {
	attacks, codes, imgs, rarities, err := serializeCardLists(card)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO ptcg_card (card_type, card_name, evo_type, hp, hp_type, ability, attacks,
			special_rule, weakness, resistance, retreat, description, hash_unique_info,
			card_code, img_url, rarity_code)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(card.CardType), card.CardName, card.EvoType, nullableInt(card.HP), card.HPType,
		card.Ability, attacks, card.SpecialRule, card.Weakness, card.Resistance, card.Retreat,
		card.Description, card.HashUniqueInfo, codes, imgs, rarities,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert card %s", card.HashUniqueInfo)
	}
	card.ID, err = res.LastInsertId()
	return eris.Wrap(err, "sqlite: last insert id")
}

func (s *SQLiteStore) UpdateCardVariants(ctx context.Context, hash string, codes, imgURLs, rarityCodes []string) error {
	codesJSON, err := marshalJSON(codes)
	if err != nil {
		return err
	}
	imgsJSON, err := marshalJSON(imgURLs)
	if err != nil {
		return err
	}
	raritiesJSON, err := marshalJSON(rarityCodes)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE ptcg_card SET card_code = ?, img_url = ?, rarity_code = ? WHERE hash_unique_info = ?`,
		codesJSON, imgsJSON, raritiesJSON, hash,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update card variants %s", hash)
	}
	return checkRowsAffected(res, hash)
}

func (s *SQLiteStore) CodeGroupsByName(ctx context.Context, cardName string) ([]CodeGroup, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT card_code FROM ptcg_card WHERE card_name = ? ORDER BY id`, cardName,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: code groups for %s", cardName)
	}
	defer rows.Close()

	var groups []CodeGroup
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan code group")
		}
		group, err := unmarshalList(raw)
		if err != nil {
			return nil, err
		}
		groups = append(groups, CodeGroup(group))
	}
	return groups, eris.Wrap(rows.Err(), "sqlite: code groups iterate")
}

func (s *SQLiteStore) SearchCardNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT card_name FROM ptcg_card WHERE card_name LIKE ? ORDER BY card_name LIMIT ?`,
		prefix+"%", limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: search card names")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan card name")
		}
		names = append(names, name)
	}
	return names, eris.Wrap(rows.Err(), "sqlite: search iterate")
}

func (s *SQLiteStore) ListCards(ctx context.Context) ([]model.CanonicalCard, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+cardColumns+` FROM ptcg_card ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list cards")
	}
	defer rows.Close()

	var cards []model.CanonicalCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan card")
		}
		cards = append(cards, *card)
	}
	return cards, eris.Wrap(rows.Err(), "sqlite: list iterate")
}

func (s *SQLiteStore) CountCards(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ptcg_card`).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count cards")
}

// helpers

func checkRowsAffected(res sql.Result, hash string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("card not found: %s", hash)
	}
	return nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func serializeCardLists(card *model.CanonicalCard) (attacks, codes, imgs, rarities string, err error) {
	if attacks, err = marshalJSON(card.Attacks); err != nil {
		return
	}
	if codes, err = marshalJSON(card.CardCodes); err != nil {
		return
	}
	if imgs, err = marshalJSON(card.ImgURLs); err != nil {
		return
	}
	rarities, err = marshalJSON(card.RarityCodes)
	return
}

type scannable interface {
	Scan(dest ...any) error
}

func scanCard(row scannable) (*model.CanonicalCard, error) {
	var c model.CanonicalCard
	var hp sql.NullInt64
	var attacks, codes, imgs, rarities string

	err := row.Scan(&c.ID, &c.CardType, &c.CardName, &c.EvoType, &hp, &c.HPType, &c.Ability,
		&attacks, &c.SpecialRule, &c.Weakness, &c.Resistance, &c.Retreat, &c.Description,
		&c.HashUniqueInfo, &codes, &imgs, &rarities)
	if err != nil {
		return nil, err
	}

	if hp.Valid {
		v := int(hp.Int64)
		c.HP = &v
	}
	if c.Attacks, err = unmarshalList(attacks); err != nil {
		return nil, err
	}
	if c.CardCodes, err = unmarshalList(codes); err != nil {
		return nil, err
	}
	if c.ImgURLs, err = unmarshalList(imgs); err != nil {
		return nil, err
	}
	if c.RarityCodes, err = unmarshalList(rarities); err != nil {
		return nil, err
	}
	return &c, nil
}
