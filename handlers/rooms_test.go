package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DamienMonchaty/VIbe/shared"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinRoomHandlerUnexpectedDbError(t *testing.T) {
	mock := withMockDb(t)

	expectAuthenticatedUser(mock, "alice")

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, max_participants FROM video_rooms WHERE id = $1 FOR UPDATE")).
		WithArgs("room1").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	req := mux.SetURLVars(authedRequest("POST", "/video/rooms/room1/join"), map[string]string{"roomId": "room1"})
	rr := httptest.NewRecorder()

	JoinRoomHandler(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var apiErr shared.ApiError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &apiErr))
	assert.Equal(t, shared.ApiErrorTypeOther, apiErr.Type)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
