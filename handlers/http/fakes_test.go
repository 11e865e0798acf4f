package httpHandler

import (
	"errors"
	"fmt"

	"chat-server/entities"
	"chat-server/repositories"
)

// In-memory repositories backing the handler tests.

type memUserRepo struct {
	users      map[string]*entities.User
	failCreate bool
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entities.User)}
}

func (r *memUserRepo) Create(user *entities.User) error {
	if r.failCreate {
		return errors.New("storage failure")
	}
	if _, exists := r.users[user.Email]; exists {
		return errors.New("duplicate key value violates unique constraint")
	}
	r.users[user.Email] = user
	return nil
}

func (r *memUserRepo) GetByEmail(email string) (*entities.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) Update(user *entities.User) error {
	r.users[user.Email] = user
	return nil
}

type memRoomRepo struct {
	rooms  map[string]*entities.ChatRoom
	nextID int
}

func newMemRoomRepo() *memRoomRepo {
	return &memRoomRepo{rooms: make(map[string]*entities.ChatRoom)}
}

func (r *memRoomRepo) Create(room *entities.ChatRoom) error {
	if _, exists := r.rooms[room.RoomID]; exists {
		return errors.New("duplicate key value violates unique constraint")
	}
	r.nextID++
	room.ID = fmt.Sprintf("internal-%d", r.nextID)
	r.rooms[room.RoomID] = room
	return nil
}

func (r *memRoomRepo) GetByRoomID(roomID string) (*entities.ChatRoom, error) {
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return room, nil
}

func (r *memRoomRepo) byInternalID(chatRoomID string) *entities.ChatRoom {
	for _, room := range r.rooms {
		if room.ID == chatRoomID {
			return room
		}
	}
	return nil
}

func (r *memRoomRepo) AddMember(chatRoomID, email string) (bool, error) {
	room := r.byInternalID(chatRoomID)
	if room == nil {
		return false, repositories.ErrNotFound
	}
	for _, m := range room.Members {
		if m.Email == email {
			return false, nil
		}
	}
	room.Members = append(room.Members, entities.RoomMember{ChatRoomID: chatRoomID, Email: email})
	return true, nil
}

func (r *memRoomRepo) AppendMessage(msg *entities.Message) error {
	room := r.byInternalID(msg.ChatRoomID)
	if room == nil {
		return repositories.ErrNotFound
	}
	room.Messages = append(room.Messages, *msg)
	return nil
}
