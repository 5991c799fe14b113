package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/DamienMonchaty/VIbe/db"
	"github.com/DamienMonchaty/VIbe/shared"
	"github.com/DamienMonchaty/VIbe/types"
)

func authenticate(w http.ResponseWriter, r *http.Request) *types.ServerAuth {
	log.Println("authenticating request")

	token := bearerToken(r)

	if token == "" {
		log.Println("no auth header")
		http.Error(w, "no auth header", http.StatusUnauthorized)
		return nil
	}

	authToken, err := db.ValidateAuthToken(token)

	if err != nil {
		log.Printf("error validating auth token: %v\n", err)

		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidToken,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid auth token",
		})
		return nil
	}

	user, err := db.GetUser(authToken.UserId)

	if err != nil {
		log.Printf("error getting user: %v\n", err)
		http.Error(w, "error getting user", http.StatusInternalServerError)
		return nil
	}

	if user == nil {
		log.Println("user not found for valid token")
		http.Error(w, "user not found", http.StatusUnauthorized)
		return nil
	}

	return &types.ServerAuth{
		AuthToken: authToken,
		User:      user,
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")

	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}

	return strings.TrimPrefix(authHeader, "Bearer ")
}

// authorizeRoomHost loads the room and verifies the caller is its host.
func authorizeRoomHost(w http.ResponseWriter, roomId string, auth *types.ServerAuth) *db.VideoRoom {
	room, err := db.GetRoom(roomId)

	if err != nil {
		log.Printf("Error getting room: %v\n", err)
		http.Error(w, "Error getting room: "+err.Error(), http.StatusInternalServerError)
		return nil
	}

	if room == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "Room not found",
		})
		return nil
	}

	if room.HostId != auth.User.Id {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeForbidden,
			Status: http.StatusForbidden,
			Msg:    "Only the room host can do that",
		})
		return nil
	}

	return room
}
