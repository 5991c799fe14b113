package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/DamienMonchaty/VIbe/db"
	"github.com/DamienMonchaty/VIbe/email"
	"github.com/DamienMonchaty/VIbe/shared"
)

func CreateEmailVerificationHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateEmailVerificationHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.CreateEmailVerificationRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusBadRequest,
			Msg:    "A valid email is required",
		})
		return
	}

	// 6 alphanumeric characters
	pinBytes, err := shared.GetRandomAlphanumeric(6)
	if err != nil {
		log.Printf("Error generating random pin: %v\n", err)
		http.Error(w, "Error generating random pin: "+err.Error(), http.StatusInternalServerError)
		return
	}

	hashBytes := sha256.Sum256(pinBytes)
	pinHash := hex.EncodeToString(hashBytes[:])

	err = db.CreateEmailVerification(req.Email, pinHash)

	if err != nil {
		log.Printf("Error creating email verification: %v\n", err)
		http.Error(w, "Error creating email verification: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err = email.SendVerificationEmail(req.Email, string(pinBytes))

	if err != nil {
		log.Printf("Error sending verification email: %v\n", err)
		http.Error(w, "Error sending verification email: "+err.Error(), http.StatusInternalServerError)
		return
	}

	user, err := db.GetUserByEmail(req.Email)

	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	res := shared.CreateEmailVerificationResponse{
		HasAccount: user != nil,
	}

	log.Println("Successfully created email verification")

	writeJson(w, res)
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for RegisterHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.RegisterRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if req.Name == "" || len(req.Name) > 100 {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusBadRequest,
			Msg:    "Name must be between 1 and 100 characters",
		})
		return
	}

	if len(req.Password) < 8 || len(req.Password) > 72 {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusBadRequest,
			Msg:    "Password must be between 8 and 72 characters",
		})
		return
	}

	verificationId, err := db.ValidateEmailVerification(req.Email, req.Pin)

	if err != nil {
		log.Printf("Error validating email verification: %v\n", err)

		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid or expired pin",
		})
		return
	}

	existing, err := db.GetUserByEmail(req.Email)

	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if existing != nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeConflict,
			Status: http.StatusConflict,
			Msg:    "An account with that email already exists",
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

	// Ensure that rollback is attempted in case of failure
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("transaction rollback error: %v\n", rbErr)
			} else {
				log.Println("transaction rolled back")
			}
		}
	}()

	user, err := db.CreateUser(req.Name, req.Email, db.HashPassword(req.Password), tx)

	if err != nil {
		if err == db.ErrEmailTaken {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeConflict,
				Status: http.StatusConflict,
				Msg:    "An account with that email already exists",
			})
			return
		}

		log.Printf("Error creating user: %v\n", err)
		http.Error(w, "Error creating user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err = db.MarkEmailVerificationUsed(verificationId, user.Id, tx)

	if err != nil {
		log.Printf("Error marking email verification used: %v\n", err)
		http.Error(w, "Error marking email verification used: "+err.Error(), http.StatusInternalServerError)
		return
	}

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

	log.Println("Successfully processed request for RegisterHandler")

	writeJson(w, res)
}
