package usecases

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"chat-server/entities"
	"chat-server/repositories"
)

// ErrRoomNotFound means no room exists for the given six digit code.
var ErrRoomNotFound = errors.New("chat room not found")

// createRoomAttempts bounds the retry loop when a generated code collides
// with an existing room.
const createRoomAttempts = 5

type ChatUseCase struct {
	Rooms repositories.ChatRoomRepository
	Users repositories.UserRepository
}

func NewChatUseCase(rooms repositories.ChatRoomRepository, users repositories.UserRepository) *ChatUseCase {
	return &ChatUseCase{Rooms: rooms, Users: users}
}

// generateRoomID draws a code uniformly from [100000, 999999].
func generateRoomID() string {
	return fmt.Sprintf("%d", 100000+rand.Intn(900000))
}

// CreateRoom creates an empty room owned by creator and returns its public
// code. Generated codes that collide with an existing room are redrawn; the
// unique index on room_id catches the race two concurrent creates can hit.
func (uc *ChatUseCase) CreateRoom(creator string) (string, error) {
	if creator == "" {
		return "", errors.New("creator is required")
	}

	var lastErr error
	for i := 0; i < createRoomAttempts; i++ {
		roomID := generateRoomID()

		if _, err := uc.Rooms.GetByRoomID(roomID); err == nil {
			continue
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return "", err
		}

		room := &entities.ChatRoom{RoomID: roomID, Creator: creator}
		if err := uc.Rooms.Create(room); err != nil {
			lastErr = err
			continue
		}
		return roomID, nil
	}
	if lastErr == nil {
		lastErr = errors.New("could not allocate a room id")
	}
	return "", lastErr
}

// JoinRoom adds userEmail to the room's member list and records the room on
// the user's account. Joining a room you are already in is a no-op; the
// returned flag reports that case.
func (uc *ChatUseCase) JoinRoom(roomID, userEmail string) (alreadyMember bool, err error) {
	room, err := uc.Rooms.GetByRoomID(roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, ErrRoomNotFound
		}
		return false, err
	}

	added, err := uc.Rooms.AddMember(room.ID, userEmail)
	if err != nil {
		return false, err
	}
	if !added {
		return true, nil
	}

	user, err := uc.Users.GetByEmail(userEmail)
	if err != nil {
		return false, err
	}
	user.RoomID = roomID
	if err := uc.Users.Update(user); err != nil {
		return false, err
	}
	return false, nil
}

// PostMessage appends one entry to the room's log, addressed by the public
// room code, and returns the stored message.
func (uc *ChatUseCase) PostMessage(roomID, displayName, text string) (*entities.Message, error) {
	room, err := uc.Rooms.GetByRoomID(roomID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	msg := &entities.Message{
		ChatRoomID: room.ID,
		User:       displayName,
		Content:    text,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := uc.Rooms.AppendMessage(msg); err != nil {
		return nil, err
	}
	return msg, nil
}
