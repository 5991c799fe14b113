package db

import (
	"database/sql"
	"fmt"

	"github.com/DamienMonchaty/VIbe/shared"
)

func CreateComment(postId, authorId, body string) (*Comment, error) {
	var comment Comment
	err := Conn.Get(&comment, "INSERT INTO comments (post_id, author_id, body) VALUES ($1, $2, $3) RETURNING *", postId, authorId, body)

	if err != nil {
		return nil, fmt.Errorf("error creating comment: %v", err)
	}

	return &comment, nil
}

func GetComment(commentId string) (*Comment, error) {
	var comment Comment
	err := Conn.Get(&comment, "SELECT * FROM comments WHERE id = $1", commentId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting comment: %v", err)
	}

	return &comment, nil
}

func ListComments(postId string, paging shared.Paging) ([]*Comment, int, error) {
	var comments []*Comment
	var total int

	err := Conn.Get(&total, "SELECT COUNT(*) FROM comments WHERE post_id = $1", postId)

	if err != nil {
		return nil, 0, fmt.Errorf("error counting comments: %v", err)
	}

	err = Conn.Select(&comments, "SELECT * FROM comments WHERE post_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3", postId, paging.Limit(), paging.Offset())

	if err != nil {
		return nil, 0, fmt.Errorf("error listing comments: %v", err)
	}

	return comments, total, nil
}

func UpdateCommentBody(commentId, body string) error {
	_, err := Conn.Exec("UPDATE comments SET body = $1, updated_at = NOW() WHERE id = $2", body, commentId)

	if err != nil {
		return fmt.Errorf("error updating comment: %v", err)
	}

	return nil
}

func DeleteComment(commentId string) error {
	_, err := Conn.Exec("DELETE FROM comments WHERE id = $1", commentId)

	if err != nil {
		return fmt.Errorf("error deleting comment: %v", err)
	}

	return nil
}
