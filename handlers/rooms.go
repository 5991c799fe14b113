package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/DamienMonchaty/VIbe/db"
	"github.com/DamienMonchaty/VIbe/shared"
	"github.com/DamienMonchaty/VIbe/signal"
	"github.com/gorilla/mux"
)

const (
	defaultMaxParticipants = 8
	minRoomParticipants    = 2
	maxRoomParticipants    = 16
)

func CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for CreateRoomHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.CreateRoomRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}
	req.Name = strings.TrimSpace(req.Name)

	if req.Name == "" || len(req.Name) > 100 {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusBadRequest,
			Msg:    "Room name must be between 1 and 100 characters",
		})
		return
	}

	if req.MaxParticipants == 0 {
		req.MaxParticipants = defaultMaxParticipants
	}

	if req.MaxParticipants < minRoomParticipants || req.MaxParticipants > maxRoomParticipants {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusBadRequest,
			Msg:    "Max participants must be between 2 and 16",
		})
		return
	}

	room, err := db.CreateRoom(auth.User.Id, req.Name, req.MaxParticipants)

	if err != nil {
		log.Printf("Error creating room: %v\n", err)
		http.Error(w, "Error creating room: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for CreateRoomHandler")

	writeRoom(w, room)
}

func ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for ListRoomsHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	var status shared.RoomStatus
	if s := r.URL.Query().Get("status"); s != "" {
		status = shared.RoomStatus(s)
		if !status.IsValid() {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeInvalidRequest,
				Status: http.StatusBadRequest,
				Msg:    "Status must be one of waiting, active, ended",
			})
			return
		}
	}

	paging := shared.ParsePaging(r.URL.Query())

	rooms, total, err := db.ListRooms(status, paging)

	if err != nil {
		log.Println("Error listing rooms: ", err)
		http.Error(w, "Error listing rooms: "+err.Error(), http.StatusInternalServerError)
		return
	}

	hostIds := make([]string, 0, len(rooms))
	for _, room := range rooms {
		hostIds = append(hostIds, room.HostId)
	}

	hostsById, err := db.GetUsersByIds(hostIds)

	if err != nil {
		log.Println("Error getting room hosts: ", err)
		http.Error(w, "Error getting room hosts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	apiRooms := make([]*shared.VideoRoom, 0, len(rooms))
	for _, room := range rooms {
		var host *shared.User
		if u := hostsById[room.HostId]; u != nil {
			host = u.ToApi()
		}
		apiRooms = append(apiRooms, room.ToApi(host, nil))
	}

	log.Println("Successfully processed request for ListRoomsHandler")

	writeJson(w, shared.ListRoomsResponse{Rooms: apiRooms, Total: total})
}

func GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for GetRoomHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	roomId := vars["roomId"]

	room := getRoomOr404(w, roomId)
	if room == nil {
		return
	}

	log.Println("Successfully processed request for GetRoomHandler")

	writeRoom(w, room)
}

func UpdateRoomHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for UpdateRoomHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	roomId := vars["roomId"]

	room := authorizeRoomHost(w, roomId, auth)
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

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.UpdateRoomRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > 100 {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeInvalidRequest,
				Status: http.StatusBadRequest,
				Msg:    "Room name must be between 1 and 100 characters",
			})
			return
		}
		room.Name = name
	}

	if req.MaxParticipants != nil {
		maxParticipants := *req.MaxParticipants
		if maxParticipants < minRoomParticipants || maxParticipants > maxRoomParticipants {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeInvalidRequest,
				Status: http.StatusBadRequest,
				Msg:    "Max participants must be between 2 and 16",
			})
			return
		}

		participants, err := db.GetRoomParticipants(roomId)
		if err != nil {
			log.Printf("Error getting room participants: %v\n", err)
			http.Error(w, "Error getting room participants: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if maxParticipants < len(participants) {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeInvalidRequest,
				Status: http.StatusBadRequest,
				Msg:    "Max participants can't be below the current participant count",
			})
			return
		}

		room.MaxParticipants = maxParticipants
	}

	err = db.UpdateRoom(room)

	if err != nil {
		log.Printf("Error updating room: %v\n", err)
		http.Error(w, "Error updating room: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for UpdateRoomHandler")

	writeRoom(w, room)
}

func JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for JoinRoomHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	roomId := vars["roomId"]

	err := db.JoinRoom(roomId, auth.User.Id)

	if err != nil {
		switch err {
		case db.ErrRoomNotFound:
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeNotFound,
				Status: http.StatusNotFound,
				Msg:    "Room not found",
			})
		case db.ErrRoomEnded:
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeRoomEnded,
				Status: http.StatusGone,
				Msg:    "Room has ended",
			})
		case db.ErrRoomFull:
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeRoomFull,
				Status: http.StatusConflict,
				Msg:    "Room is full",
			})
		default:
			log.Printf("Error joining room: %v\n", err)
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeOther,
				Status: http.StatusInternalServerError,
				Msg:    "Error joining room: " + err.Error(),
			})
		}
		return
	}

	room := getRoomOr404(w, roomId)
	if room == nil {
		return
	}

	log.Println("Successfully processed request for JoinRoomHandler")

	writeRoom(w, room)
}

func LeaveRoomHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for LeaveRoomHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	roomId := vars["roomId"]

	res, err := db.LeaveRoom(roomId, auth.User.Id)

	if err != nil {
		switch err {
		case db.ErrRoomNotFound:
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeNotFound,
				Status: http.StatusNotFound,
				Msg:    "Room not found",
			})
		case db.ErrRoomEnded:
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeRoomEnded,
				Status: http.StatusGone,
				Msg:    "Room has ended",
			})
		default:
			log.Printf("Error leaving room: %v\n", err)
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeOther,
				Status: http.StatusInternalServerError,
				Msg:    "Error leaving room: " + err.Error(),
			})
		}
		return
	}

	if res.Ended {
		signal.DefaultHub.CloseRoom(roomId)
	}

	log.Println("Successfully processed request for LeaveRoomHandler")

	room := getRoomOr404(w, roomId)
	if room == nil {
		return
	}

	writeRoom(w, room)
}

func EndRoomHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for EndRoomHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	roomId := vars["roomId"]

	room := authorizeRoomHost(w, roomId, auth)
	if room == nil {
		return
	}

	err := db.EndRoom(roomId)

	if err != nil {
		log.Printf("Error ending room: %v\n", err)
		http.Error(w, "Error ending room: "+err.Error(), http.StatusInternalServerError)
		return
	}

	signal.DefaultHub.CloseRoom(roomId)

	log.Println("Successfully processed request for EndRoomHandler")
}

func getRoomOr404(w http.ResponseWriter, roomId string) *db.VideoRoom {
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

	return room
}

// writeRoom loads the host and participant roster, then writes the full
// API model.
func writeRoom(w http.ResponseWriter, room *db.VideoRoom) {
	participants, err := db.GetRoomParticipants(room.Id)

	if err != nil {
		log.Printf("Error getting room participants: %v\n", err)
		http.Error(w, "Error getting room participants: "+err.Error(), http.StatusInternalServerError)
		return
	}

	userIds := make([]string, 0, len(participants)+1)
	userIds = append(userIds, room.HostId)
	for _, p := range participants {
		userIds = append(userIds, p.UserId)
	}

	usersById, err := db.GetUsersByIds(userIds)

	if err != nil {
		log.Printf("Error getting room users: %v\n", err)
		http.Error(w, "Error getting room users: "+err.Error(), http.StatusInternalServerError)
		return
	}

	apiParticipants := make([]*shared.RoomParticipant, 0, len(participants))
	for _, p := range participants {
		var user *shared.User
		if u := usersById[p.UserId]; u != nil {
			user = u.ToApi()
		}
		apiParticipants = append(apiParticipants, &shared.RoomParticipant{
			User:     user,
			IsHost:   p.UserId == room.HostId,
			JoinedAt: p.JoinedAt,
		})
	}

	var host *shared.User
	if u := usersById[room.HostId]; u != nil {
		host = u.ToApi()
	}

	writeJson(w, room.ToApi(host, apiParticipants))
}
