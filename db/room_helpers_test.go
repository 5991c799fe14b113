package db

import (
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func withMockConn(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)

	prev := Conn
	Conn = sqlx.NewDb(mockDb, "sqlmock")
	t.Cleanup(func() {
		Conn = prev
		mockDb.Close()
	})

	return mock
}

func TestJoinRoomRejectsFullRoom(t *testing.T) {
	mock := withMockConn(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, max_participants FROM video_rooms WHERE id = $1 FOR UPDATE")).
		WithArgs("room1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "max_participants"}).AddRow("active", 2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM room_participants WHERE room_id = $1 AND user_id = $2)")).
		WithArgs("room1", "carol").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM room_participants WHERE room_id = $1")).
		WithArgs("room1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := JoinRoom("room1", "carol")
	assert.Equal(t, ErrRoomFull, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRoomRejectsEndedRoom(t *testing.T) {
	mock := withMockConn(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, max_participants FROM video_rooms WHERE id = $1 FOR UPDATE")).
		WithArgs("room1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "max_participants"}).AddRow("ended", 8))
	mock.ExpectRollback()

	err := JoinRoom("room1", "carol")
	assert.Equal(t, ErrRoomEnded, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRoomIsNoOpForExistingParticipant(t *testing.T) {
	mock := withMockConn(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, max_participants FROM video_rooms WHERE id = $1 FOR UPDATE")).
		WithArgs("room1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "max_participants"}).AddRow("active", 8))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM room_participants WHERE room_id = $1 AND user_id = $2)")).
		WithArgs("room1", "alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectCommit()

	err := JoinRoom("room1", "alice")
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRoomActivatesWaitingRoom(t *testing.T) {
	mock := withMockConn(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, max_participants FROM video_rooms WHERE id = $1 FOR UPDATE")).
		WithArgs("room1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "max_participants"}).AddRow("waiting", 8))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM room_participants WHERE room_id = $1 AND user_id = $2)")).
		WithArgs("room1", "bob").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM room_participants WHERE room_id = $1")).
		WithArgs("room1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO room_participants (room_id, user_id) VALUES ($1, $2)")).
		WithArgs("room1", "bob").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE video_rooms SET status = 'active', updated_at = NOW() WHERE id = $1")).
		WithArgs("room1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := JoinRoom("room1", "bob")
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRoomTransfersHost(t *testing.T) {
	mock := withMockConn(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, host_id FROM video_rooms WHERE id = $1 FOR UPDATE")).
		WithArgs("room1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "host_id"}).AddRow("active", "alice"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM room_participants WHERE room_id = $1 AND user_id = $2")).
		WithArgs("room1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM room_participants WHERE room_id = $1 ORDER BY joined_at ASC LIMIT 1")).
		WithArgs("room1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("bob"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE video_rooms SET host_id = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs("bob", "room1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := LeaveRoom("room1", "alice")
	require.NoError(t, err)

	assert.True(t, res.Left)
	assert.False(t, res.Ended)
	assert.Equal(t, "bob", res.NewHostId)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRoomEndsEmptyRoom(t *testing.T) {
	mock := withMockConn(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, host_id FROM video_rooms WHERE id = $1 FOR UPDATE")).
		WithArgs("room1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "host_id"}).AddRow("active", "alice"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM room_participants WHERE room_id = $1 AND user_id = $2")).
		WithArgs("room1", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM room_participants WHERE room_id = $1 ORDER BY joined_at ASC LIMIT 1")).
		WithArgs("room1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE video_rooms SET status = 'ended', updated_at = NOW() WHERE id = $1")).
		WithArgs("room1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := LeaveRoom("room1", "alice")
	require.NoError(t, err)

	assert.True(t, res.Left)
	assert.True(t, res.Ended)
	assert.Empty(t, res.NewHostId)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveRoomNonParticipant(t *testing.T) {
	mock := withMockConn(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, host_id FROM video_rooms WHERE id = $1 FOR UPDATE")).
		WithArgs("room1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "host_id"}).AddRow("active", "alice"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM room_participants WHERE room_id = $1 AND user_id = $2")).
		WithArgs("room1", "mallory").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	res, err := LeaveRoom("room1", "mallory")
	require.NoError(t, err)

	assert.False(t, res.Left)
	assert.False(t, res.Ended)

	assert.NoError(t, mock.ExpectationsWereMet())
}
