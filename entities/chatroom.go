package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatRoom is a chat room addressed by its public six digit RoomID. The
// internal ID is never exposed to clients; every lookup goes through RoomID.
type ChatRoom struct {
	ID        string       `gorm:"type:text;primaryKey" json:"id"`
	RoomID    string       `gorm:"uniqueIndex;not null" json:"room_id"`
	Creator   string       `gorm:"not null" json:"creator"`
	Members   []RoomMember `gorm:"foreignKey:ChatRoomID" json:"members"`
	Messages  []Message    `gorm:"foreignKey:ChatRoomID" json:"messages"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
}

func (r *ChatRoom) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	r.UpdatedAt = r.CreatedAt
	return
}

// RoomMember is one membership row. The composite unique index makes join
// idempotent even when two joins for the same email race.
type RoomMember struct {
	ID         string `gorm:"type:text;primaryKey" json:"id"`
	ChatRoomID string `gorm:"index;uniqueIndex:idx_room_member;not null" json:"-"`
	Email      string `gorm:"uniqueIndex:idx_room_member;not null" json:"email"`
	CreatedAt  string `json:"joined_at"`
}

func (m *RoomMember) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return
}
