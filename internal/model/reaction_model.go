package model

import "time"

type Reaction struct {
	Id        uint64    `gorm:"primaryKey;autoIncrement"`
	MessageId uint64    `gorm:"not null;uniqueIndex:uniq_message_user_emoji;index"`
	UserId    uint64    `gorm:"not null;uniqueIndex:uniq_message_user_emoji"`
	Emoji     string    `gorm:"type:varchar(32);not null;uniqueIndex:uniq_message_user_emoji"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Reaction) TableName() string {
	return "chat_message_reactions"
}
