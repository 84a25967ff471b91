package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InMemorySQLite(t *testing.T) {
	db, err := New(context.Background())
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
	require.NoError(t, Migrate(context.Background(), db, `CREATE TABLE t (id INTEGER)`, `INSERT INTO t VALUES (1)`))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(context.Background(), WithDriver(""))
	assert.Error(t, err)

	_, err = New(context.Background(), WithDataSource(""))
	assert.Error(t, err)

	_, err = New(context.Background(), WithDriver("no-such-driver"), WithRetry(1, 0))
	assert.Error(t, err)
}

func TestMigrate_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE a").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE b").WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	err = Migrate(context.Background(), db, "CREATE TABLE a (id INTEGER)", "CREATE TABLE b (")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration statement 2")
	assert.NoError(t, mock.ExpectationsWereMet())
}
