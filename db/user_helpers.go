package db

import (
	"database/sql"
	"fmt"

	"github.com/DamienMonchaty/VIbe/shared"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

var ErrEmailTaken = errors.New("email already in use")

func GetUser(userId string) (*User, error) {
	var user User
	err := Conn.Get(&user, "SELECT * FROM users WHERE id = $1", userId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func GetUserByEmail(email string) (*User, error) {
	var user User
	err := Conn.Get(&user, "SELECT * FROM users WHERE email = $1", email)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func CreateUser(name, email, passwordHash string, tx *sql.Tx) (*User, error) {
	var user User
	err := tx.QueryRow("INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id, name, email, password_hash, bio, avatar_url, created_at, updated_at", name, email, passwordHash).Scan(&user.Id, &user.Name, &user.Email, &user.PasswordHash, &user.Bio, &user.AvatarUrl, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		// a concurrent register can slip past the handler's duplicate check
		// and land on the users.email unique constraint
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return &user, nil
}

func UpdateUser(user *User) error {
	_, err := Conn.Exec("UPDATE users SET name = $1, bio = $2, avatar_url = $3, updated_at = NOW() WHERE id = $4", user.Name, user.Bio, user.AvatarUrl, user.Id)

	if err != nil {
		return fmt.Errorf("error updating user: %v", err)
	}

	return nil
}

func ListUsers(query string, paging shared.Paging) ([]*User, int, error) {
	var users []*User
	var total int

	like := "%" + query + "%"

	err := Conn.Get(&total, "SELECT COUNT(*) FROM users WHERE ($1 = '' OR name ILIKE $2 OR email ILIKE $3)", query, like, query+"%")

	if err != nil {
		return nil, 0, fmt.Errorf("error counting users: %v", err)
	}

	err = Conn.Select(&users, "SELECT * FROM users WHERE ($1 = '' OR name ILIKE $2 OR email ILIKE $3) ORDER BY created_at DESC LIMIT $4 OFFSET $5", query, like, query+"%", paging.Limit(), paging.Offset())

	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %v", err)
	}

	return users, total, nil
}

// GetUsersByIds loads a batch of users and keys them by id, for embedding
// authors/sellers/hosts into API models.
func GetUsersByIds(ids []string) (map[string]*User, error) {
	usersById := make(map[string]*User, len(ids))

	if len(ids) == 0 {
		return usersById, nil
	}

	var users []*User
	err := Conn.Select(&users, "SELECT * FROM users WHERE id = ANY($1)", pq.Array(ids))

	if err != nil {
		return nil, fmt.Errorf("error getting users: %v", err)
	}

	for _, user := range users {
		usersById[user.Id] = user
	}

	return usersById, nil
}
