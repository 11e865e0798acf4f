package repositories

import (
	"errors"

	"chat-server/db"
	"chat-server/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type chatRoomPgRepository struct {
	db db.Database
}

func NewChatRoomPgRepository(database db.Database) ChatRoomRepository {
	return &chatRoomPgRepository{db: database}
}

func (r *chatRoomPgRepository) Create(room *entities.ChatRoom) error {
	return r.db.GetDB().Create(room).Error
}

func (r *chatRoomPgRepository) GetByRoomID(roomID string) (*entities.ChatRoom, error) {
	var room entities.ChatRoom
	err := r.db.GetDB().
		Preload("Members", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		}).
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		}).
		Where("room_id = ?", roomID).
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

// AddMember relies on the composite unique index over (chat_room_id, email);
// a concurrent duplicate join becomes a no-op instead of a second row.
func (r *chatRoomPgRepository) AddMember(chatRoomID, email string) (bool, error) {
	member := entities.RoomMember{ChatRoomID: chatRoomID, Email: email}
	result := r.db.GetDB().
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&member)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *chatRoomPgRepository) AppendMessage(msg *entities.Message) error {
	return r.db.GetDB().Create(msg).Error
}
