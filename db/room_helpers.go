package db

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/DamienMonchaty/VIbe/shared"
	"github.com/pkg/errors"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomEnded    = errors.New("room has ended")
	ErrRoomFull     = errors.New("room is full")
)

func CreateRoom(hostId, name string, maxParticipants int) (*VideoRoom, error) {
	var room VideoRoom

	tx, err := Conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %v", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("transaction rollback error: %v\n", rbErr)
			}
		}
	}()

	err = tx.QueryRow("INSERT INTO video_rooms (name, host_id, max_participants) VALUES ($1, $2, $3) RETURNING id, name, host_id, max_participants, status, created_at, updated_at", name, hostId, maxParticipants).Scan(&room.Id, &room.Name, &room.HostId, &room.MaxParticipants, &room.Status, &room.CreatedAt, &room.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("error creating room: %v", err)
	}

	// the host is the first participant
	_, err = tx.Exec("INSERT INTO room_participants (room_id, user_id) VALUES ($1, $2)", room.Id, hostId)

	if err != nil {
		return nil, fmt.Errorf("error adding host to room: %v", err)
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("error committing transaction: %v", err)
	}

	return &room, nil
}

func GetRoom(roomId string) (*VideoRoom, error) {
	var room VideoRoom
	err := Conn.Get(&room, "SELECT * FROM video_rooms WHERE id = $1", roomId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting room: %v", err)
	}

	return &room, nil
}

func GetRoomParticipants(roomId string) ([]*RoomParticipant, error) {
	var participants []*RoomParticipant
	err := Conn.Select(&participants, "SELECT * FROM room_participants WHERE room_id = $1 ORDER BY joined_at ASC", roomId)

	if err != nil {
		return nil, fmt.Errorf("error getting room participants: %v", err)
	}

	return participants, nil
}

func IsRoomParticipant(roomId, userId string) (bool, error) {
	var n int
	err := Conn.Get(&n, "SELECT COUNT(*) FROM room_participants WHERE room_id = $1 AND user_id = $2", roomId, userId)

	if err != nil {
		return false, fmt.Errorf("error checking room membership: %v", err)
	}

	return n > 0, nil
}

func ListRooms(status shared.RoomStatus, paging shared.Paging) ([]*VideoRoom, int, error) {
	var rooms []*VideoRoom
	var total int

	err := Conn.Get(&total, "SELECT COUNT(*) FROM video_rooms WHERE (($1 = '' AND status != 'ended') OR status = $1)", string(status))

	if err != nil {
		return nil, 0, fmt.Errorf("error counting rooms: %v", err)
	}

	err = Conn.Select(&rooms, "SELECT * FROM video_rooms WHERE (($1 = '' AND status != 'ended') OR status = $1) ORDER BY created_at DESC LIMIT $2 OFFSET $3", string(status), paging.Limit(), paging.Offset())

	if err != nil {
		return nil, 0, fmt.Errorf("error listing rooms: %v", err)
	}

	return rooms, total, nil
}

func UpdateRoom(room *VideoRoom) error {
	_, err := Conn.Exec("UPDATE video_rooms SET name = $1, max_participants = $2, updated_at = NOW() WHERE id = $3", room.Name, room.MaxParticipants, room.Id)

	if err != nil {
		return fmt.Errorf("error updating room: %v", err)
	}

	return nil
}

// JoinRoom adds a user to a room inside a transaction that locks the room
// row, so two concurrent joins can't both squeeze into the last slot.
// Re-joining is a no-op. The second distinct participant flips the room
// from waiting to active.
func JoinRoom(roomId, userId string) error {
	tx, err := Conn.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %v", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("transaction rollback error: %v\n", rbErr)
			}
		}
	}()

	var status shared.RoomStatus
	var maxParticipants int
	err = tx.QueryRow("SELECT status, max_participants FROM video_rooms WHERE id = $1 FOR UPDATE", roomId).Scan(&status, &maxParticipants)

	if err != nil {
		if err == sql.ErrNoRows {
			return ErrRoomNotFound
		}
		return fmt.Errorf("error locking room: %v", err)
	}

	if status == shared.RoomStatusEnded {
		err = ErrRoomEnded
		return err
	}

	var isMember bool
	err = tx.QueryRow("SELECT EXISTS (SELECT 1 FROM room_participants WHERE room_id = $1 AND user_id = $2)", roomId, userId).Scan(&isMember)

	if err != nil {
		return fmt.Errorf("error checking room membership: %v", err)
	}

	if isMember {
		err = tx.Commit()
		if err != nil {
			return fmt.Errorf("error committing transaction: %v", err)
		}
		return nil
	}

	var numParticipants int
	err = tx.QueryRow("SELECT COUNT(*) FROM room_participants WHERE room_id = $1", roomId).Scan(&numParticipants)

	if err != nil {
		return fmt.Errorf("error counting room participants: %v", err)
	}

	if numParticipants >= maxParticipants {
		err = ErrRoomFull
		return err
	}

	_, err = tx.Exec("INSERT INTO room_participants (room_id, user_id) VALUES ($1, $2)", roomId, userId)

	if err != nil {
		return fmt.Errorf("error adding room participant: %v", err)
	}

	if status == shared.RoomStatusWaiting && numParticipants+1 >= 2 {
		_, err = tx.Exec("UPDATE video_rooms SET status = 'active', updated_at = NOW() WHERE id = $1", roomId)

		if err != nil {
			return fmt.Errorf("error activating room: %v", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("error committing transaction: %v", err)
	}

	return nil
}

type LeaveRoomResult struct {
	Left      bool
	Ended     bool
	NewHostId string
}

// LeaveRoom removes a participant. If the host leaves, the earliest-joined
// remaining participant becomes host; the last leaver ends the room.
func LeaveRoom(roomId, userId string) (*LeaveRoomResult, error) {
	res := &LeaveRoomResult{}

	tx, err := Conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %v", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("transaction rollback error: %v\n", rbErr)
			}
		}
	}()

	var status shared.RoomStatus
	var hostId string
	err = tx.QueryRow("SELECT status, host_id FROM video_rooms WHERE id = $1 FOR UPDATE", roomId).Scan(&status, &hostId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("error locking room: %v", err)
	}

	if status == shared.RoomStatusEnded {
		err = ErrRoomEnded
		return nil, err
	}

	deleted, err := tx.Exec("DELETE FROM room_participants WHERE room_id = $1 AND user_id = $2", roomId, userId)

	if err != nil {
		return nil, fmt.Errorf("error removing room participant: %v", err)
	}

	numDeleted, err := deleted.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error getting rows affected: %v", err)
	}
	res.Left = numDeleted > 0

	if !res.Left {
		err = tx.Commit()
		if err != nil {
			return nil, fmt.Errorf("error committing transaction: %v", err)
		}
		return res, nil
	}

	var nextHostId string
	err = tx.QueryRow("SELECT user_id FROM room_participants WHERE room_id = $1 ORDER BY joined_at ASC LIMIT 1", roomId).Scan(&nextHostId)

	if err == sql.ErrNoRows {
		// last one out ends the room
		_, err = tx.Exec("UPDATE video_rooms SET status = 'ended', updated_at = NOW() WHERE id = $1", roomId)

		if err != nil {
			return nil, fmt.Errorf("error ending room: %v", err)
		}

		res.Ended = true
	} else if err != nil {
		return nil, fmt.Errorf("error finding next host: %v", err)
	} else if hostId == userId {
		_, err = tx.Exec("UPDATE video_rooms SET host_id = $1, updated_at = NOW() WHERE id = $2", nextHostId, roomId)

		if err != nil {
			return nil, fmt.Errorf("error transferring host: %v", err)
		}

		res.NewHostId = nextHostId
	}

	err = tx.Commit()
	if err != nil {
		return nil, fmt.Errorf("error committing transaction: %v", err)
	}

	return res, nil
}

// EndRoom is the host's hard stop: marks the room ended and clears the
// participant list.
func EndRoom(roomId string) error {
	tx, err := Conn.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %v", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("transaction rollback error: %v\n", rbErr)
			}
		}
	}()

	_, err = tx.Exec("UPDATE video_rooms SET status = 'ended', updated_at = NOW() WHERE id = $1", roomId)

	if err != nil {
		return fmt.Errorf("error ending room: %v", err)
	}

	_, err = tx.Exec("DELETE FROM room_participants WHERE room_id = $1", roomId)

	if err != nil {
		return fmt.Errorf("error clearing room participants: %v", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("error committing transaction: %v", err)
	}

	return nil
}
