package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/DamienMonchaty/VIbe/db"
	"github.com/DamienMonchaty/VIbe/shared"
)

func SignInHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SignInHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.SignInRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := db.GetUserByEmail(req.Email)

	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// same response for unknown email and wrong password
	if user == nil || subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(db.HashPassword(req.Password))) != 1 {
		log.Println("invalid credentials")

		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid email or password",
		})
		return
	}

	// start a transaction
	tx, err := db.Conn.Begin()
	if err != nil {
		log.Printf("Error starting transaction: %v\n", err)
		http.Error(w, "Error starting transaction: "+err.Error(), http.StatusInternalServerError)
		return
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("transaction rollback error: %v\n", rbErr)
			}
		}
	}()

	token, _, err := db.CreateAuthToken(user.Id, tx)

	if err != nil {
		log.Printf("Error creating auth token: %v\n", err)
		http.Error(w, "Error creating auth token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err = tx.Commit()
	if err != nil {
		log.Printf("Error committing transaction: %v\n", err)
		http.Error(w, "Error committing transaction: "+err.Error(), http.StatusInternalServerError)
		return
	}

	res := shared.SessionResponse{
		UserId:    user.Id,
		Token:     token,
		Email:     user.Email,
		UserName:  user.Name,
		AvatarUrl: user.AvatarUrl,
	}

	log.Println("Successfully processed request for SignInHandler")

	writeJson(w, res)
}

func SignOutHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SignOutHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	err := db.SoftDeleteAuthToken(auth.AuthToken.Id)

	if err != nil {
		log.Printf("Error deleting auth token: %v\n", err)
		http.Error(w, "Error deleting auth token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for SignOutHandler")
}

func GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetSessionHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	log.Println("Successfully processed request for GetSessionHandler")

	writeJson(w, auth.User.ToApi())
}
