package model

import "time"

type Room struct {
	Id          uint64 `gorm:"primaryKey;autoIncrement"`
	GroupId     uint64 `gorm:"not null;uniqueIndex:uniq_active_room_per_group,where:is_active = true"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	// Capacity checks read this; the membership unique index is the
	// final arbiter under concurrent joins.
	MaxParticipants int       `gorm:"not null;default:100"`
	IsActive        bool      `gorm:"not null;default:true"`
	CreatedBy       uint64    `gorm:"not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Room) TableName() string {
	return "chat_rooms"
}
