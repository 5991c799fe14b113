package handlers

import (
	"log"
	"net/http"
	"os"

	"github.com/DamienMonchaty/VIbe/db"
	"github.com/DamienMonchaty/VIbe/shared"
	"github.com/DamienMonchaty/VIbe/signal"
	"github.com/davecgh/go-spew/spew"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the token query param is the auth boundary, not the origin
	CheckOrigin: func(r *http.Request) bool { return true },
}

// RoomSignalHandler upgrades to a websocket and relays signaling envelopes
// (SDP offers/answers, ICE candidates) between the room's participants.
// Browsers can't set an Authorization header on a websocket dial, so the
// auth token rides the query string.
func RoomSignalHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for RoomSignalHandler")

	vars := mux.Vars(r)
	roomId := vars["roomId"]

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "no token", http.StatusUnauthorized)
		return
	}

	authToken, err := db.ValidateAuthToken(token)

	if err != nil {
		log.Printf("error validating auth token: %v\n", err)

		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidToken,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid auth token",
		})
		return
	}

	room := getRoomOr404(w, roomId)
	if room == nil {
		return
	}

	if room.Status == shared.RoomStatusEnded {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeRoomEnded,
			Status: http.StatusGone,
			Msg:    "Room has ended",
		})
		return
	}

	isMember, err := db.IsRoomParticipant(roomId, authToken.UserId)

	if err != nil {
		log.Printf("Error checking room membership: %v\n", err)
		http.Error(w, "Error checking room membership: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !isMember {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeForbidden,
			Status: http.StatusForbidden,
			Msg:    "Join the room before connecting to signaling",
		})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)

	if err != nil {
		log.Printf("Error upgrading connection: %v\n", err)
		return
	}

	userId := authToken.UserId

	signal.DefaultHub.Add(roomId, userId, conn)

	defer func() {
		signal.DefaultHub.Remove(roomId, userId, conn)
		conn.Close()
		log.Printf("signaling connection closed: room %s, user %s\n", roomId, userId)
	}()

	for {
		var env signal.Envelope
		err := conn.ReadJSON(&env)

		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("signaling read error: %v\n", err)
			}
			return
		}

		switch env.Type {
		case signal.EnvelopeTypeOffer, signal.EnvelopeTypeAnswer, signal.EnvelopeTypeIce:
		default:
			log.Printf("dropping signaling envelope with type %q\n", env.Type)
			continue
		}

		if os.Getenv("GOENV") == "development" {
			log.Println("relaying envelope:", spew.Sdump(env))
		}

		if err := signal.DefaultHub.Relay(roomId, userId, env); err != nil {
			log.Printf("Error relaying envelope: %v\n", err)
		}
	}
}
