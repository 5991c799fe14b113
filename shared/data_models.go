package shared

import "time"

type User struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	AvatarUrl string    `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type Post struct {
	Id          string    `json:"id"`
	Author      *User     `json:"author"`
	Body        string    `json:"body"`
	NumLikes    int       `json:"numLikes"`
	NumComments int       `json:"numComments"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Comment struct {
	Id        string    `json:"id"`
	PostId    string    `json:"postId"`
	Author    *User     `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProductStatus string

const (
	ProductStatusAvailable ProductStatus = "available"
	ProductStatusSold      ProductStatus = "sold"
	ProductStatusReserved  ProductStatus = "reserved"
)

func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusAvailable, ProductStatusSold, ProductStatusReserved:
		return true
	}
	return false
}

type Product struct {
	Id          string        `json:"id"`
	Seller      *User         `json:"seller"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	PriceCents  int64         `json:"priceCents"`
	Category    string        `json:"category"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type RoomStatus string

const (
	RoomStatusWaiting RoomStatus = "waiting"
	RoomStatusActive  RoomStatus = "active"
	RoomStatusEnded   RoomStatus = "ended"
)

func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomStatusWaiting, RoomStatusActive, RoomStatusEnded:
		return true
	}
	return false
}

type RoomParticipant struct {
	User     *User     `json:"user"`
	IsHost   bool      `json:"isHost"`
	JoinedAt time.Time `json:"joinedAt"`
}

type VideoRoom struct {
	Id              string             `json:"id"`
	Name            string             `json:"name"`
	Host            *User              `json:"host"`
	MaxParticipants int                `json:"maxParticipants"`
	Status          RoomStatus         `json:"status"`
	Participants    []*RoomParticipant `json:"participants,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}
