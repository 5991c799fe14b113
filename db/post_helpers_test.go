package db

import (
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeThenUnlikeRestoresCount(t *testing.T) {
	mock := withMockConn(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT (post_id, user_id) DO NOTHING")).
		WithArgs("post1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM post_likes WHERE post_id = $1")).
		WithArgs("post1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2")).
		WithArgs("post1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM post_likes WHERE post_id = $1")).
		WithArgs("post1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	require.NoError(t, LikePost("post1", "alice"))

	n, err := NumPostLikes("post1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, UnlikePost("post1", "alice"))

	n, err = NumPostLikes("post1")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePostIsIdempotent(t *testing.T) {
	mock := withMockConn(t)

	// a duplicate like lands on ON CONFLICT DO NOTHING and affects no rows
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT (post_id, user_id) DO NOTHING")).
		WithArgs("post1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM post_likes WHERE post_id = $1")).
		WithArgs("post1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	require.NoError(t, LikePost("post1", "alice"))

	n, err := NumPostLikes("post1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnlikePostByNonLikerIsNoOp(t *testing.T) {
	mock := withMockConn(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2")).
		WithArgs("post1", "mallory").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, UnlikePost("post1", "mallory"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
