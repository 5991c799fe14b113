package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/DamienMonchaty/VIbe/db"
	"github.com/DamienMonchaty/VIbe/shared"
	"github.com/gorilla/mux"
)

func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for ListUsersHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	paging := shared.ParsePaging(r.URL.Query())

	users, total, err := db.ListUsers(query, paging)

	if err != nil {
		log.Println("Error listing users: ", err)
		http.Error(w, "Error listing users: "+err.Error(), http.StatusInternalServerError)
		return
	}

	apiUsers := make([]*shared.User, 0, len(users))
	for _, user := range users {
		apiUsers = append(apiUsers, user.ToApi())
	}

	log.Println("Successfully processed request for ListUsersHandler")

	writeJson(w, shared.ListUsersResponse{Users: apiUsers, Total: total})
}

func GetUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for GetUserHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	userId := vars["userId"]

	user, err := db.GetUser(userId)

	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if user == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "User not found",
		})
		return
	}

	log.Println("Successfully processed request for GetUserHandler")

	writeJson(w, user.ToApi())
}

func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for UpdateProfileHandler")
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

	var req shared.UpdateProfileRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	user := auth.User

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len(name) > 100 {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeInvalidRequest,
				Status: http.StatusBadRequest,
				Msg:    "Name must be between 1 and 100 characters",
			})
			return
		}
		user.Name = name
	}

	if req.Bio != nil {
		if len(*req.Bio) > 500 {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeInvalidRequest,
				Status: http.StatusBadRequest,
				Msg:    "Bio must be at most 500 characters",
			})
			return
		}
		user.Bio = *req.Bio
	}

	if req.AvatarUrl != nil {
		user.AvatarUrl = *req.AvatarUrl
	}

	err = db.UpdateUser(user)

	if err != nil {
		log.Printf("Error updating user: %v\n", err)
		http.Error(w, "Error updating user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for UpdateProfileHandler")

	writeJson(w, user.ToApi())
}
