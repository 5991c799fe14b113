package db

import (
	"database/sql"
	"fmt"

	"github.com/DamienMonchaty/VIbe/shared"
)

const postColumns = `posts.*,
	(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) AS num_likes,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS num_comments`

func CreatePost(authorId, body string) (*Post, error) {
	var post Post
	err := Conn.Get(&post, "INSERT INTO posts (author_id, body) VALUES ($1, $2) RETURNING *, 0 AS num_likes, 0 AS num_comments", authorId, body)

	if err != nil {
		return nil, fmt.Errorf("error creating post: %v", err)
	}

	return &post, nil
}

func GetPost(postId string) (*Post, error) {
	var post Post
	err := Conn.Get(&post, "SELECT "+postColumns+" FROM posts WHERE posts.id = $1", postId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting post: %v", err)
	}

	return &post, nil
}

func ListPosts(authorId string, paging shared.Paging) ([]*Post, int, error) {
	var posts []*Post
	var total int

	err := Conn.Get(&total, "SELECT COUNT(*) FROM posts WHERE ($1 = '' OR author_id::text = $1)", authorId)

	if err != nil {
		return nil, 0, fmt.Errorf("error counting posts: %v", err)
	}

	err = Conn.Select(&posts, "SELECT "+postColumns+" FROM posts WHERE ($1 = '' OR author_id::text = $1) ORDER BY created_at DESC LIMIT $2 OFFSET $3", authorId, paging.Limit(), paging.Offset())

	if err != nil {
		return nil, 0, fmt.Errorf("error listing posts: %v", err)
	}

	return posts, total, nil
}

func UpdatePostBody(postId, body string) error {
	_, err := Conn.Exec("UPDATE posts SET body = $1, updated_at = NOW() WHERE id = $2", body, postId)

	if err != nil {
		return fmt.Errorf("error updating post: %v", err)
	}

	return nil
}

func DeletePost(postId string) error {
	_, err := Conn.Exec("DELETE FROM posts WHERE id = $1", postId)

	if err != nil {
		return fmt.Errorf("error deleting post: %v", err)
	}

	return nil
}

// LikePost and UnlikePost are both idempotent, so liking then unliking
// always restores the original like count.
func LikePost(postId, userId string) error {
	_, err := Conn.Exec("INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT (post_id, user_id) DO NOTHING", postId, userId)

	if err != nil {
		return fmt.Errorf("error liking post: %v", err)
	}

	return nil
}

func UnlikePost(postId, userId string) error {
	_, err := Conn.Exec("DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2", postId, userId)

	if err != nil {
		return fmt.Errorf("error unliking post: %v", err)
	}

	return nil
}

func NumPostLikes(postId string) (int, error) {
	var n int
	err := Conn.Get(&n, "SELECT COUNT(*) FROM post_likes WHERE post_id = $1", postId)

	if err != nil {
		return 0, fmt.Errorf("error counting post likes: %v", err)
	}

	return n, nil
}
