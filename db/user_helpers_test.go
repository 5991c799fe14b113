package db

import (
	"regexp"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	mock := withMockConn(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, email, password_hash)")).
		WithArgs("Alice", "alice@example.com", "somehash").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	tx, err := Conn.Begin()
	require.NoError(t, err)

	_, err = CreateUser("Alice", "alice@example.com", "somehash", tx)
	assert.Equal(t, ErrEmailTaken, err)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserOtherErrorsAreWrapped(t *testing.T) {
	mock := withMockConn(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (name, email, password_hash)")).
		WithArgs("Alice", "alice@example.com", "somehash").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	tx, err := Conn.Begin()
	require.NoError(t, err)

	_, err = CreateUser("Alice", "alice@example.com", "somehash", tx)
	require.Error(t, err)
	assert.NotEqual(t, ErrEmailTaken, err)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
