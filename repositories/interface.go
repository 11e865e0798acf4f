package repositories

import (
	"errors"

	"chat-server/entities"
)

// ErrNotFound is returned by lookups when no record matches. Postgres
// implementations translate the driver's not-found error into this one so
// callers never depend on gorm directly.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	Create(user *entities.User) error
	GetByEmail(email string) (*entities.User, error)
	Update(user *entities.User) error
}

type ChatRoomRepository interface {
	Create(room *entities.ChatRoom) error
	// GetByRoomID loads a room by its public six digit code, with members
	// and messages in insertion order.
	GetByRoomID(roomID string) (*entities.ChatRoom, error)
	// AddMember inserts a membership row unless one already exists.
	// Reports whether a row was actually added.
	AddMember(chatRoomID, email string) (bool, error)
	AppendMessage(msg *entities.Message) error
}

// TaskRepository is the contract for the task service once it is built.
// No implementation is wired yet; the task endpoints answer 501.
type TaskRepository interface {
	Create(task *entities.Task) error
	GetByID(id string) (*entities.Task, error)
	Update(task *entities.Task) error
	Delete(id string) error
}
