package routes

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/DamienMonchaty/VIbe/handlers"
	"github.com/gorilla/mux"
)

func AddRoutes(r *mux.Router) {
	AddHealthRoutes(r)
	AddApiRoutes(r)
	AddUIRoutes(r)
}

func AddHealthRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		execPath, err := os.Executable()
		if err != nil {
			log.Println("Error getting executable path: ", err)
			http.Error(w, "Error getting version", http.StatusInternalServerError)
			return
		}
		currentDir := filepath.Dir(execPath)

		// get version from version.txt
		bytes, err := os.ReadFile(filepath.Join(currentDir, "version.txt"))

		if err != nil {
			http.Error(w, "Error getting version", http.StatusInternalServerError)
			return
		}

		fmt.Fprint(w, string(bytes))
	})
}

func AddApiRoutes(r *mux.Router) {
	r.HandleFunc("/auth/email_verifications", handlers.CreateEmailVerificationHandler).Methods("POST")
	r.HandleFunc("/auth/register", handlers.RegisterHandler).Methods("POST")
	r.HandleFunc("/auth/sign_in", handlers.SignInHandler).Methods("POST")
	r.HandleFunc("/auth/sign_out", handlers.SignOutHandler).Methods("POST")
	r.HandleFunc("/auth/session", handlers.GetSessionHandler).Methods("GET")

	r.HandleFunc("/users", handlers.ListUsersHandler).Methods("GET")
	r.HandleFunc("/users/me", handlers.UpdateProfileHandler).Methods("PUT")
	r.HandleFunc("/users/{userId}", handlers.GetUserHandler).Methods("GET")

	r.HandleFunc("/posts", handlers.CreatePostHandler).Methods("POST")
	r.HandleFunc("/posts", handlers.ListPostsHandler).Methods("GET")
	r.HandleFunc("/posts/{postId}", handlers.GetPostHandler).Methods("GET")
	r.HandleFunc("/posts/{postId}", handlers.UpdatePostHandler).Methods("PUT")
	r.HandleFunc("/posts/{postId}", handlers.DeletePostHandler).Methods("DELETE")

	r.HandleFunc("/posts/{postId}/like", handlers.LikePostHandler).Methods("POST")
	r.HandleFunc("/posts/{postId}/like", handlers.UnlikePostHandler).Methods("DELETE")

	r.HandleFunc("/posts/{postId}/comments", handlers.CreateCommentHandler).Methods("POST")
	r.HandleFunc("/posts/{postId}/comments", handlers.ListCommentsHandler).Methods("GET")
	r.HandleFunc("/posts/{postId}/comments/{commentId}", handlers.UpdateCommentHandler).Methods("PUT")
	r.HandleFunc("/posts/{postId}/comments/{commentId}", handlers.DeleteCommentHandler).Methods("DELETE")

	r.HandleFunc("/market/products", handlers.CreateProductHandler).Methods("POST")
	r.HandleFunc("/market/products", handlers.ListProductsHandler).Methods("GET")
	r.HandleFunc("/market/products/{productId}", handlers.GetProductHandler).Methods("GET")
	r.HandleFunc("/market/products/{productId}", handlers.UpdateProductHandler).Methods("PUT")
	r.HandleFunc("/market/products/{productId}/status", handlers.UpdateProductStatusHandler).Methods("PATCH")
	r.HandleFunc("/market/products/{productId}", handlers.DeleteProductHandler).Methods("DELETE")

	r.HandleFunc("/video/rooms", handlers.CreateRoomHandler).Methods("POST")
	r.HandleFunc("/video/rooms", handlers.ListRoomsHandler).Methods("GET")
	r.HandleFunc("/video/rooms/{roomId}", handlers.GetRoomHandler).Methods("GET")
	r.HandleFunc("/video/rooms/{roomId}", handlers.UpdateRoomHandler).Methods("PUT")
	r.HandleFunc("/video/rooms/{roomId}", handlers.EndRoomHandler).Methods("DELETE")
	r.HandleFunc("/video/rooms/{roomId}/join", handlers.JoinRoomHandler).Methods("POST")
	r.HandleFunc("/video/rooms/{roomId}/leave", handlers.LeaveRoomHandler).Methods("POST")
	r.HandleFunc("/video/rooms/{roomId}/ws", handlers.RoomSignalHandler).Methods("GET")
}
