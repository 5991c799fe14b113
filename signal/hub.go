package signal

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Envelope is a signaling message relayed between room participants. The
// payload (SDP offer/answer, ICE candidate) is opaque to the server.
type Envelope struct {
	Type    string          `json:"type"`
	From    string          `json:"from,omitempty"`
	To      string          `json:"to,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	EnvelopeTypeOffer      = "offer"
	EnvelopeTypeAnswer     = "answer"
	EnvelopeTypeIce        = "ice"
	EnvelopeTypePeerJoined = "peer-joined"
	EnvelopeTypePeerLeft   = "peer-left"
)

// Conn is the subset of *websocket.Conn the hub needs, so tests can plug
// in a fake.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type peer struct {
	userId string
	conn   Conn

	// gorilla websocket conns allow only one concurrent writer
	writeMu sync.Mutex
}

func (p *peer) send(env Envelope) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	return p.conn.WriteJSON(env)
}

// Hub tracks the live signaling connections per room and relays envelopes
// between them. Room membership and lifecycle live in the database; the
// hub only knows about open sockets, which die with the process.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[string]*peer
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[string]*peer)}
}

var DefaultHub = NewHub()

// Add registers a connection for userId in roomId, replacing (and closing)
// any previous connection from the same user, then announces the arrival
// to the other peers.
func (h *Hub) Add(roomId, userId string, conn Conn) {
	h.mu.Lock()
	peers, ok := h.rooms[roomId]
	if !ok {
		peers = make(map[string]*peer)
		h.rooms[roomId] = peers
	}
	prev := peers[userId]
	peers[userId] = &peer{userId: userId, conn: conn}
	h.mu.Unlock()

	if prev != nil {
		prev.conn.Close()
	}

	h.Broadcast(roomId, userId, Envelope{Type: EnvelopeTypePeerJoined, From: userId})
}

// Remove drops the connection for userId and announces the departure. It
// is a no-op if the registered connection is not conn (a reconnect already
// replaced it).
func (h *Hub) Remove(roomId, userId string, conn Conn) {
	h.mu.Lock()
	peers := h.rooms[roomId]
	p, ok := peers[userId]
	if !ok || p.conn != conn {
		h.mu.Unlock()
		return
	}
	delete(peers, userId)
	if len(peers) == 0 {
		delete(h.rooms, roomId)
	}
	h.mu.Unlock()

	h.Broadcast(roomId, userId, Envelope{Type: EnvelopeTypePeerLeft, From: userId})
}

// Relay delivers env to its addressee, or to every other peer in the room
// when env.To is empty. Unknown addressees are dropped silently: the peer
// may have disconnected between the sender reading the roster and sending.
func (h *Hub) Relay(roomId, fromUserId string, env Envelope) error {
	env.From = fromUserId

	if env.To == "" {
		h.Broadcast(roomId, fromUserId, env)
		return nil
	}

	h.mu.Lock()
	p := h.rooms[roomId][env.To]
	h.mu.Unlock()

	if p == nil {
		return nil
	}

	if err := p.send(env); err != nil {
		return fmt.Errorf("error relaying to %s: %v", env.To, err)
	}

	return nil
}

// Broadcast sends env to every peer in the room except exceptUserId.
func (h *Hub) Broadcast(roomId, exceptUserId string, env Envelope) {
	h.mu.Lock()
	targets := make([]*peer, 0, len(h.rooms[roomId]))
	for userId, p := range h.rooms[roomId] {
		if userId == exceptUserId {
			continue
		}
		targets = append(targets, p)
	}
	h.mu.Unlock()

	for _, p := range targets {
		// best-effort; a dead conn gets cleaned up by its read loop
		p.send(env)
	}
}

// CloseRoom closes every connection in the room, for host-initiated ends.
func (h *Hub) CloseRoom(roomId string) {
	h.mu.Lock()
	peers := h.rooms[roomId]
	delete(h.rooms, roomId)
	h.mu.Unlock()

	for _, p := range peers {
		p.conn.Close()
	}
}

// NumPeers reports the live connections in one room.
func (h *Hub) NumPeers(roomId string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomId])
}

// NumConns reports live connections across all rooms, used for shutdown
// draining.
func (h *Hub) NumConns() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, peers := range h.rooms {
		n += len(peers)
	}
	return n
}
