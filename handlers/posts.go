package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/DamienMonchaty/VIbe/db"
	"github.com/DamienMonchaty/VIbe/shared"
	"github.com/DamienMonchaty/VIbe/types"
	"github.com/gorilla/mux"
)

func CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for CreatePostHandler")
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

	var req shared.CreatePostRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !validPostBody(w, req.Body) {
		return
	}

	post, err := db.CreatePost(auth.User.Id, strings.TrimSpace(req.Body))

	if err != nil {
		log.Printf("Error creating post: %v\n", err)
		http.Error(w, "Error creating post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for CreatePostHandler")

	writeJson(w, post.ToApi(auth.User.ToApi()))
}

func ListPostsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for ListPostsHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	authorId := r.URL.Query().Get("authorId")
	paging := shared.ParsePaging(r.URL.Query())

	posts, total, err := db.ListPosts(authorId, paging)

	if err != nil {
		log.Println("Error listing posts: ", err)
		http.Error(w, "Error listing posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	authorIds := make([]string, 0, len(posts))
	for _, post := range posts {
		authorIds = append(authorIds, post.AuthorId)
	}

	authorsById, err := db.GetUsersByIds(authorIds)

	if err != nil {
		log.Println("Error getting post authors: ", err)
		http.Error(w, "Error getting post authors: "+err.Error(), http.StatusInternalServerError)
		return
	}

	apiPosts := make([]*shared.Post, 0, len(posts))
	for _, post := range posts {
		var author *shared.User
		if u := authorsById[post.AuthorId]; u != nil {
			author = u.ToApi()
		}
		apiPosts = append(apiPosts, post.ToApi(author))
	}

	log.Println("Successfully processed request for ListPostsHandler")

	writeJson(w, shared.ListPostsResponse{Posts: apiPosts, Total: total})
}

func GetPostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for GetPostHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	postId := vars["postId"]

	post := getPostOr404(w, postId)
	if post == nil {
		return
	}

	author, err := db.GetUser(post.AuthorId)

	if err != nil {
		log.Printf("Error getting post author: %v\n", err)
		http.Error(w, "Error getting post author: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var apiAuthor *shared.User
	if author != nil {
		apiAuthor = author.ToApi()
	}

	log.Println("Successfully processed request for GetPostHandler")

	writeJson(w, post.ToApi(apiAuthor))
}

func UpdatePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for UpdatePostHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	postId := vars["postId"]

	post := authorizePostAuthor(w, postId, auth)
	if post == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.UpdatePostRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !validPostBody(w, req.Body) {
		return
	}

	err = db.UpdatePostBody(postId, strings.TrimSpace(req.Body))

	if err != nil {
		log.Printf("Error updating post: %v\n", err)
		http.Error(w, "Error updating post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	post, err = db.GetPost(postId)

	if err != nil || post == nil {
		log.Printf("Error reloading post: %v\n", err)
		http.Error(w, "Error reloading post", http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for UpdatePostHandler")

	writeJson(w, post.ToApi(auth.User.ToApi()))
}

func DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for DeletePostHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	postId := vars["postId"]

	post := authorizePostAuthor(w, postId, auth)
	if post == nil {
		return
	}

	err := db.DeletePost(postId)

	if err != nil {
		log.Printf("Error deleting post: %v\n", err)
		http.Error(w, "Error deleting post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for DeletePostHandler")
}

func LikePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for LikePostHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	postId := vars["postId"]

	post := getPostOr404(w, postId)
	if post == nil {
		return
	}

	err := db.LikePost(postId, auth.User.Id)

	if err != nil {
		log.Printf("Error liking post: %v\n", err)
		http.Error(w, "Error liking post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	numLikes, err := db.NumPostLikes(postId)

	if err != nil {
		log.Printf("Error counting likes: %v\n", err)
		http.Error(w, "Error counting likes: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for LikePostHandler")

	writeJson(w, map[string]int{"numLikes": numLikes})
}

func UnlikePostHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for UnlikePostHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	postId := vars["postId"]

	post := getPostOr404(w, postId)
	if post == nil {
		return
	}

	err := db.UnlikePost(postId, auth.User.Id)

	if err != nil {
		log.Printf("Error unliking post: %v\n", err)
		http.Error(w, "Error unliking post: "+err.Error(), http.StatusInternalServerError)
		return
	}

	numLikes, err := db.NumPostLikes(postId)

	if err != nil {
		log.Printf("Error counting likes: %v\n", err)
		http.Error(w, "Error counting likes: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for UnlikePostHandler")

	writeJson(w, map[string]int{"numLikes": numLikes})
}

func validPostBody(w http.ResponseWriter, body string) bool {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" || len(trimmed) > 5000 {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusBadRequest,
			Msg:    "Post body must be between 1 and 5000 characters",
		})
		return false
	}
	return true
}

func getPostOr404(w http.ResponseWriter, postId string) *db.Post {
	post, err := db.GetPost(postId)

	if err != nil {
		log.Printf("Error getting post: %v\n", err)
		http.Error(w, "Error getting post: "+err.Error(), http.StatusInternalServerError)
		return nil
	}

	if post == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "Post not found",
		})
		return nil
	}

	return post
}

func authorizePostAuthor(w http.ResponseWriter, postId string, auth *types.ServerAuth) *db.Post {
	post := getPostOr404(w, postId)
	if post == nil {
		return nil
	}

	if post.AuthorId != auth.User.Id {
		log.Println("User is not the post author")

		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeForbidden,
			Status: http.StatusForbidden,
			Msg:    "Only the post author can do that",
		})
		return nil
	}

	return post
}
