package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/DamienMonchaty/VIbe/shared"
)

func writeApiError(w http.ResponseWriter, apiErr shared.ApiError) {
	bytes, err := json.Marshal(apiErr)
	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response", http.StatusInternalServerError)
		return
	}

	log.Printf("API Error: %v\n", apiErr.Msg)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)

	_, writeErr := w.Write(bytes)
	if writeErr != nil {
		log.Printf("Error writing response: %v\n", writeErr)
	}
}

func writeJson(w http.ResponseWriter, v interface{}) {
	bytes, err := json.Marshal(v)

	if err != nil {
		log.Printf("Error marshalling response: %v\n", err)
		http.Error(w, "Error marshalling response: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(bytes)
}
