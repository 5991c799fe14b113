package signal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	sent   []Envelope
	closed bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, v.(Envelope))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) envelopes() []Envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Envelope, len(c.sent))
	copy(out, c.sent)
	return out
}

func TestHubAddAnnouncesPeerJoined(t *testing.T) {
	hub := NewHub()

	alice := &fakeConn{}
	bob := &fakeConn{}

	hub.Add("room1", "alice", alice)
	hub.Add("room1", "bob", bob)

	envs := alice.envelopes()
	require.Len(t, envs, 1)
	assert.Equal(t, EnvelopeTypePeerJoined, envs[0].Type)
	assert.Equal(t, "bob", envs[0].From)

	// the joiner doesn't hear its own announcement
	assert.Empty(t, bob.envelopes())
	assert.Equal(t, 2, hub.NumPeers("room1"))
}

func TestHubRelayDirected(t *testing.T) {
	hub := NewHub()

	alice := &fakeConn{}
	bob := &fakeConn{}
	carol := &fakeConn{}

	hub.Add("room1", "alice", alice)
	hub.Add("room1", "bob", bob)
	hub.Add("room1", "carol", carol)

	err := hub.Relay("room1", "alice", Envelope{Type: EnvelopeTypeOffer, To: "bob"})
	require.NoError(t, err)

	envs := bob.envelopes()
	require.NotEmpty(t, envs)
	last := envs[len(envs)-1]
	assert.Equal(t, EnvelopeTypeOffer, last.Type)
	assert.Equal(t, "alice", last.From)

	for _, env := range carol.envelopes() {
		assert.NotEqual(t, EnvelopeTypeOffer, env.Type)
	}
}

func TestHubRelayBroadcast(t *testing.T) {
	hub := NewHub()

	alice := &fakeConn{}
	bob := &fakeConn{}
	carol := &fakeConn{}

	hub.Add("room1", "alice", alice)
	hub.Add("room1", "bob", bob)
	hub.Add("room1", "carol", carol)

	err := hub.Relay("room1", "alice", Envelope{Type: EnvelopeTypeIce})
	require.NoError(t, err)

	for _, conn := range []*fakeConn{bob, carol} {
		envs := conn.envelopes()
		require.NotEmpty(t, envs)
		assert.Equal(t, EnvelopeTypeIce, envs[len(envs)-1].Type)
	}

	for _, env := range alice.envelopes() {
		assert.NotEqual(t, EnvelopeTypeIce, env.Type)
	}
}

func TestHubRelayToUnknownPeerIsDropped(t *testing.T) {
	hub := NewHub()

	alice := &fakeConn{}
	hub.Add("room1", "alice", alice)

	err := hub.Relay("room1", "alice", Envelope{Type: EnvelopeTypeOffer, To: "ghost"})
	assert.NoError(t, err)
}

func TestHubRemoveAnnouncesPeerLeft(t *testing.T) {
	hub := NewHub()

	alice := &fakeConn{}
	bob := &fakeConn{}

	hub.Add("room1", "alice", alice)
	hub.Add("room1", "bob", bob)

	hub.Remove("room1", "bob", bob)

	envs := alice.envelopes()
	require.NotEmpty(t, envs)
	last := envs[len(envs)-1]
	assert.Equal(t, EnvelopeTypePeerLeft, last.Type)
	assert.Equal(t, "bob", last.From)
	assert.Equal(t, 1, hub.NumPeers("room1"))
}

func TestHubReconnectReplacesConn(t *testing.T) {
	hub := NewHub()

	first := &fakeConn{}
	second := &fakeConn{}

	hub.Add("room1", "alice", first)
	hub.Add("room1", "alice", second)

	assert.True(t, first.closed)
	assert.Equal(t, 1, hub.NumPeers("room1"))

	// removing with the stale conn is a no-op
	hub.Remove("room1", "alice", first)
	assert.Equal(t, 1, hub.NumPeers("room1"))

	hub.Remove("room1", "alice", second)
	assert.Equal(t, 0, hub.NumPeers("room1"))
}

func TestHubCloseRoom(t *testing.T) {
	hub := NewHub()

	alice := &fakeConn{}
	bob := &fakeConn{}

	hub.Add("room1", "alice", alice)
	hub.Add("room1", "bob", bob)
	hub.Add("room2", "carol", &fakeConn{})

	hub.CloseRoom("room1")

	assert.True(t, alice.closed)
	assert.True(t, bob.closed)
	assert.Equal(t, 0, hub.NumPeers("room1"))
	assert.Equal(t, 1, hub.NumConns())
}
