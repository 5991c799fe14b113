package handlers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/DamienMonchaty/VIbe/db"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const testBearerToken = "0da04d41-3c65-4f79-8b4a-8a6f4b2f2d6a"

func withMockDb(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)

	prev := db.Conn
	db.Conn = sqlx.NewDb(mockDb, "sqlmock")
	t.Cleanup(func() {
		db.Conn = prev
		mockDb.Close()
	})

	return mock
}

// expectAuthenticatedUser queues the token lookup and user load that
// authenticate() performs for every request.
func expectAuthenticatedUser(mock sqlmock.Sqlmock, userId string) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM auth_tokens WHERE token_hash = $1 AND created_at > $2 AND deleted_at IS NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "created_at", "deleted_at"}).
			AddRow("tok1", userId, "somehash", time.Now(), nil))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM users WHERE id = $1")).
		WithArgs(userId).
		WillReturnRows(userRows(userId, "Alice", "alice@example.com"))
}

func userRows(userId, name, email string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "bio", "avatar_url", "created_at", "updated_at"}).
		AddRow(userId, name, email, "somehash", "", "", time.Now(), time.Now())
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+testBearerToken)
	return req
}
