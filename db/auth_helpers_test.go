package db

import (
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash := HashPassword("correct horse battery staple")

	assert.Len(t, hash, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", hash)

	assert.Equal(t, hash, HashPassword("correct horse battery staple"))
	assert.NotEqual(t, hash, HashPassword("Correct horse battery staple"))
}

func TestValidateAuthTokenRejectsMalformedToken(t *testing.T) {
	// malformed tokens are rejected before any db lookup
	_, err := ValidateAuthToken("not-a-uuid")
	assert.EqualError(t, err, "invalid token")

	_, err = ValidateAuthToken("")
	assert.EqualError(t, err, "invalid token")
}

func TestMarkEmailVerificationUsedRecordsUser(t *testing.T) {
	mock := withMockConn(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE email_verifications SET used_at = NOW(), user_id = $2 WHERE id = $1")).
		WithArgs("verif1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := Conn.Begin()
	require.NoError(t, err)

	require.NoError(t, MarkEmailVerificationUsed("verif1", "alice", tx))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}
