package store

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresWithPool(mock), mock
}

func TestPostgresStore_GetCardByHash_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .* FROM ptcg_card WHERE hash_unique_info = \$1`).
		WithArgs("missing-hash").
		WillReturnError(pgx.ErrNoRows)

	card, err := s.GetCardByHash(context.Background(), "missing-hash")
	require.NoError(t, err)
	assert.Nil(t, card)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateCardVariants(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE ptcg_card SET card_code = \$1, img_url = \$2, rarity_code = \$3`).
		WithArgs(`["a","b"]`, `["i1","i2"]`, `["C","S"]`, "hash-x").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.UpdateCardVariants(context.Background(), "hash-x",
		[]string{"a", "b"}, []string{"i1", "i2"}, []string{"C", "S"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateCardVariants_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE ptcg_card SET`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "gone").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.UpdateCardVariants(context.Background(), "gone", []string{"a"}, []string{"b"}, []string{"c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SearchCardNames(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	rows := pgxmock.NewRows([]string{"card_name"}).
		AddRow("ピカチュウ").
		AddRow("ピカチュウex")
	mock.ExpectQuery(`SELECT DISTINCT card_name FROM ptcg_card WHERE card_name LIKE \$1`).
		WithArgs("ピカ%", 10).
		WillReturnRows(rows)

	names, err := s.SearchCardNames(context.Background(), "ピカ", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"ピカチュウ", "ピカチュウex"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CodeGroupsByName(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	rows := pgxmock.NewRows([]string{"card_code"}).
		AddRow(`["SV5K-004/071","SV5K-072/071"]`).
		AddRow(`["SV9-010/080"]`)
	mock.ExpectQuery(`SELECT card_code FROM ptcg_card WHERE card_name = \$1`).
		WithArgs("ハヤシガメ").
		WillReturnRows(rows)

	groups, err := s.CodeGroupsByName(context.Background(), "ハヤシガメ")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, CodeGroup{"SV5K-004/071", "SV5K-072/071"}, groups[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}
