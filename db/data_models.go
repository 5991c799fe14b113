package db

import (
	"time"

	"github.com/DamienMonchaty/VIbe/shared"
)

// The models below are server-side only. Each one that crosses the API
// boundary has a ToApi() method producing the corresponding shared model,
// so server-only fields (password and token hashes) never leak to clients.

type AuthToken struct {
	Id        string     `db:"id"`
	UserId    string     `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type User struct {
	Id           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Bio          string    `db:"bio"`
	AvatarUrl    string    `db:"avatar_url"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (user *User) ToApi() *shared.User {
	return &shared.User{
		Id:        user.Id,
		Name:      user.Name,
		Email:     user.Email,
		Bio:       user.Bio,
		AvatarUrl: user.AvatarUrl,
		CreatedAt: user.CreatedAt,
	}
}

type EmailVerification struct {
	Id        string     `db:"id"`
	Email     string     `db:"email"`
	PinHash   string     `db:"pin_hash"`
	UserId    *string    `db:"user_id"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}

type Post struct {
	Id       string `db:"id"`
	AuthorId string `db:"author_id"`
	Body     string `db:"body"`

	// filled by the list/get queries via subselects
	NumLikes    int `db:"num_likes"`
	NumComments int `db:"num_comments"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (post *Post) ToApi(author *shared.User) *shared.Post {
	return &shared.Post{
		Id:          post.Id,
		Author:      author,
		Body:        post.Body,
		NumLikes:    post.NumLikes,
		NumComments: post.NumComments,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

type Comment struct {
	Id        string    `db:"id"`
	PostId    string    `db:"post_id"`
	AuthorId  string    `db:"author_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (comment *Comment) ToApi(author *shared.User) *shared.Comment {
	return &shared.Comment{
		Id:        comment.Id,
		PostId:    comment.PostId,
		Author:    author,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

type Product struct {
	Id          string               `db:"id"`
	SellerId    string               `db:"seller_id"`
	Title       string               `db:"title"`
	Description string               `db:"description"`
	PriceCents  int64                `db:"price_cents"`
	Category    string               `db:"category"`
	Status      shared.ProductStatus `db:"status"`
	CreatedAt   time.Time            `db:"created_at"`
	UpdatedAt   time.Time            `db:"updated_at"`
}

func (product *Product) ToApi(seller *shared.User) *shared.Product {
	return &shared.Product{
		Id:          product.Id,
		Seller:      seller,
		Title:       product.Title,
		Description: product.Description,
		PriceCents:  product.PriceCents,
		Category:    product.Category,
		Status:      product.Status,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

type VideoRoom struct {
	Id              string            `db:"id"`
	Name            string            `db:"name"`
	HostId          string            `db:"host_id"`
	MaxParticipants int               `db:"max_participants"`
	Status          shared.RoomStatus `db:"status"`
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at"`
}

func (room *VideoRoom) ToApi(host *shared.User, participants []*shared.RoomParticipant) *shared.VideoRoom {
	return &shared.VideoRoom{
		Id:              room.Id,
		Name:            room.Name,
		Host:            host,
		MaxParticipants: room.MaxParticipants,
		Status:          room.Status,
		Participants:    participants,
		CreatedAt:       room.CreatedAt,
		UpdatedAt:       room.UpdatedAt,
	}
}

type RoomParticipant struct {
	Id       string    `db:"id"`
	RoomId   string    `db:"room_id"`
	UserId   string    `db:"user_id"`
	JoinedAt time.Time `db:"joined_at"`
}
