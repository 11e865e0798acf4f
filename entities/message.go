package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one entry in a room's append-only log. User is the display name
// the sender announced on the socket, not necessarily a registered account.
type Message struct {
	ID         string `gorm:"type:text;primaryKey" json:"id"`
	ChatRoomID string `gorm:"index;not null" json:"-"`
	User       string `gorm:"not null" json:"user"`
	Content    string `gorm:"type:text;not null" json:"message"`
	Timestamp  string `gorm:"not null" json:"timestamp"`
	CreatedAt  string `json:"created_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if m.Timestamp == "" {
		m.Timestamp = m.CreatedAt
	}
	return
}
