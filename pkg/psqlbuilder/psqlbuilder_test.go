package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor_Placeholders(t *testing.T) {
	pg, err := For(DialectPostgres)
	require.NoError(t, err)
	query, _, err := pg.Select("id").From("reservations").Where(squirrel.Eq{"court_id": 1}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM reservations WHERE court_id = $1", query)

	lite, err := For(DialectSQLite)
	require.NoError(t, err)
	query, _, err = lite.Select("id").From("reservations").Where(squirrel.Eq{"court_id": 1}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM reservations WHERE court_id = ?", query)
}

func TestFor_UnknownDialect(t *testing.T) {
	_, err := For("mysql")
	assert.Error(t, err)
}
