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

func CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for CreateCommentHandler")
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

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.CreateCommentRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !validCommentBody(w, req.Body) {
		return
	}

	comment, err := db.CreateComment(postId, auth.User.Id, strings.TrimSpace(req.Body))

	if err != nil {
		log.Printf("Error creating comment: %v\n", err)
		http.Error(w, "Error creating comment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for CreateCommentHandler")

	writeJson(w, comment.ToApi(auth.User.ToApi()))
}

func ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for ListCommentsHandler")
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

	paging := shared.ParsePaging(r.URL.Query())

	comments, total, err := db.ListComments(postId, paging)

	if err != nil {
		log.Println("Error listing comments: ", err)
		http.Error(w, "Error listing comments: "+err.Error(), http.StatusInternalServerError)
		return
	}

	authorIds := make([]string, 0, len(comments))
	for _, comment := range comments {
		authorIds = append(authorIds, comment.AuthorId)
	}

	authorsById, err := db.GetUsersByIds(authorIds)

	if err != nil {
		log.Println("Error getting comment authors: ", err)
		http.Error(w, "Error getting comment authors: "+err.Error(), http.StatusInternalServerError)
		return
	}

	apiComments := make([]*shared.Comment, 0, len(comments))
	for _, comment := range comments {
		var author *shared.User
		if u := authorsById[comment.AuthorId]; u != nil {
			author = u.ToApi()
		}
		apiComments = append(apiComments, comment.ToApi(author))
	}

	log.Println("Successfully processed request for ListCommentsHandler")

	writeJson(w, shared.ListCommentsResponse{Comments: apiComments, Total: total})
}

func UpdateCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for UpdateCommentHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	postId := vars["postId"]
	commentId := vars["commentId"]

	comment := getCommentOr404(w, postId, commentId)
	if comment == nil {
		return
	}

	if comment.AuthorId != auth.User.Id {
		log.Println("User is not the comment author")

		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeForbidden,
			Status: http.StatusForbidden,
			Msg:    "Only the comment author can do that",
		})
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var req shared.UpdateCommentRequest
	err = json.Unmarshal(body, &req)
	if err != nil {
		log.Printf("Error unmarshalling request: %v\n", err)
		http.Error(w, "Error unmarshalling request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !validCommentBody(w, req.Body) {
		return
	}

	err = db.UpdateCommentBody(commentId, strings.TrimSpace(req.Body))

	if err != nil {
		log.Printf("Error updating comment: %v\n", err)
		http.Error(w, "Error updating comment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	comment, err = db.GetComment(commentId)

	if err != nil || comment == nil {
		log.Printf("Error reloading comment: %v\n", err)
		http.Error(w, "Error reloading comment", http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for UpdateCommentHandler")

	writeJson(w, comment.ToApi(auth.User.ToApi()))
}

// DeleteCommentHandler allows both the comment author and the post author
// to remove a comment.
func DeleteCommentHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received a request for DeleteCommentHandler")
	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	vars := mux.Vars(r)
	postId := vars["postId"]
	commentId := vars["commentId"]

	post := getPostOr404(w, postId)
	if post == nil {
		return
	}

	comment := getCommentOr404(w, postId, commentId)
	if comment == nil {
		return
	}

	if comment.AuthorId != auth.User.Id && post.AuthorId != auth.User.Id {
		log.Println("User is neither the comment author nor the post author")

		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeForbidden,
			Status: http.StatusForbidden,
			Msg:    "Only the comment author or the post author can do that",
		})
		return
	}

	err := db.DeleteComment(commentId)

	if err != nil {
		log.Printf("Error deleting comment: %v\n", err)
		http.Error(w, "Error deleting comment: "+err.Error(), http.StatusInternalServerError)
		return
	}

	log.Println("Successfully processed request for DeleteCommentHandler")
}

func validCommentBody(w http.ResponseWriter, body string) bool {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" || len(trimmed) > 2000 {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidRequest,
			Status: http.StatusBadRequest,
			Msg:    "Comment body must be between 1 and 2000 characters",
		})
		return false
	}
	return true
}

func getCommentOr404(w http.ResponseWriter, postId, commentId string) *db.Comment {
	comment, err := db.GetComment(commentId)

	if err != nil {
		log.Printf("Error getting comment: %v\n", err)
		http.Error(w, "Error getting comment: "+err.Error(), http.StatusInternalServerError)
		return nil
	}

	if comment == nil || comment.PostId != postId {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "Comment not found",
		})
		return nil
	}

	return comment
}
