package model

import (
	"time"

	"gorm.io/datatypes"
)

// Message rows are append-only. Id is a bigserial and the sole ordering
// key; CreatedAt is informational only.
type Message struct {
	Id             uint64  `gorm:"primaryKey;autoIncrement"`
	RoomId         uint64  `gorm:"not null;index:idx_room_message,priority:1"`
	UserId         uint64  `gorm:"not null"`
	AuthorNickname string  `gorm:"type:varchar(100);not null"`
	Body           *string `gorm:"type:text"`
	ImageRef       *string `gorm:"type:varchar(500)"`
	Kind           string  `gorm:"type:varchar(20);not null;default:'talk'"`
	Metadata       datatypes.JSON
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_room_message,priority:2"`
}

func (Message) TableName() string {
	return "chat_messages"
}
