package ui

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRequest(method, target string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	return req, rr
}

func TestMain(m *testing.M) {
	// templates live at the repo root; the test binary runs in this package dir
	os.Setenv("TEMPLATES_DIR", "../../ui/templates")
	os.Exit(m.Run())
}

func TestFeedHandler(t *testing.T) {
	req, rr := newTestRequest(http.MethodGet, "/ui/feed")
	FeedHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<title>Feed - Vibe</title>")
	assert.Contains(t, body, "<h1>Latest Posts</h1>")
}

func TestMarketHandler(t *testing.T) {
	req, rr := newTestRequest(http.MethodGet, "/ui/market")
	MarketHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<title>Marketplace - Vibe</title>")
	assert.Contains(t, body, "Any status")
}

func TestRoomsHandler(t *testing.T) {
	req, rr := newTestRequest(http.MethodGet, "/ui/rooms")
	RoomsHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<title>Video Rooms - Vibe</title>")
	assert.Contains(t, body, "<h1>Video Rooms</h1>")
}

func TestSignInHandler(t *testing.T) {
	req, rr := newTestRequest(http.MethodGet, "/ui/sign-in")
	SignInHandler(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "<title>Sign In - Vibe</title>")
	assert.Contains(t, body, "sign-in-form")
}
