package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/pokeca-rec/pokeca-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool used by the store. pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS ptcg_card (
	id               BIGSERIAL PRIMARY KEY,
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

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) GetCardByHash(ctx context.Context, hash string) (*model.CanonicalCard, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+cardColumns+` FROM ptcg_card WHERE hash_unique_info = $1`, hash,
	)
	card, err := scanCard(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get card by hash")
	}
	return card, nil
}

func (s *PostgresStore) InsertCard(ctx context.Context, card *model.CanonicalCard) error {
	attacks, codes, imgs, rarities, err := serializeCardLists(card)
	if err != nil {
		return err
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO ptcg_card (card_type, card_name, evo_type, hp, hp_type, ability, attacks,
			special_rule, weakness, resistance, retreat, description, hash_unique_info,
			card_code, img_url, rarity_code)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id`,
		string(card.CardType), card.CardName, card.EvoType, nullableInt(card.HP), card.HPType,
		card.Ability, attacks, card.SpecialRule, card.Weakness, card.Resistance, card.Retreat,
		card.Description, card.HashUniqueInfo, codes, imgs, rarities,
	).Scan(&card.ID)
	return eris.Wrapf(err, "postgres: insert card %s", card.HashUniqueInfo)
}

func (s *PostgresStore) UpdateCardVariants(ctx context.Context, hash string, codes, imgURLs, rarityCodes []string) error {
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

	tag, err := s.pool.Exec(ctx,
		`UPDATE ptcg_card SET card_code = $1, img_url = $2, rarity_code = $3 WHERE hash_unique_info = $4`,
		codesJSON, imgsJSON, raritiesJSON, hash,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update card variants %s", hash)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("card not found: %s", hash)
	}
	return nil
}

func (s *PostgresStore) CodeGroupsByName(ctx context.Context, cardName string) ([]CodeGroup, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT card_code FROM ptcg_card WHERE card_name = $1 ORDER BY id`, cardName,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: code groups for %s", cardName)
	}
	defer rows.Close()

	var groups []CodeGroup
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrap(err, "postgres: scan code group")
		}
		group, err := unmarshalList(raw)
		if err != nil {
			return nil, err
		}
		groups = append(groups, CodeGroup(group))
	}
	return groups, eris.Wrap(rows.Err(), "postgres: code groups iterate")
}

func (s *PostgresStore) SearchCardNames(ctx context.Context, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT card_name FROM ptcg_card WHERE card_name LIKE $1 ORDER BY card_name LIMIT $2`,
		prefix+"%", limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: search card names")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "postgres: scan card name")
		}
		names = append(names, name)
	}
	return names, eris.Wrap(rows.Err(), "postgres: search iterate")
}

func (s *PostgresStore) ListCards(ctx context.Context) ([]model.CanonicalCard, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+cardColumns+` FROM ptcg_card ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list cards")
	}
	defer rows.Close()

	var cards []model.CanonicalCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan card")
		}
		cards = append(cards, *card)
	}
	return cards, eris.Wrap(rows.Err(), "postgres: list iterate")
}

func (s *PostgresStore) CountCards(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ptcg_card`).Scan(&n)
	return n, eris.Wrap(err, "postgres: count cards")
}
