package model

import "time"

type RoomMember struct {
	Id     uint64 `gorm:"primaryKey;autoIncrement"`
	RoomId uint64 `gorm:"not null;uniqueIndex:uniq_room_member;index"`
	UserId uint64 `gorm:"not null;uniqueIndex:uniq_room_member;index"`
	Role   string `gorm:"type:varchar(20);not null;default:'member'"`
	// Nullable pointer into the message log; never a foreign key so the
	// retention sweep can drop old rows freely.
	LastReadMsgId *uint64    `gorm:"default:null"`
	IsActive      bool       `gorm:"not null;default:true"`
	JoinedAt      time.Time  `gorm:"not null"`
	LeftAt        *time.Time `gorm:"default:null"`
}

func (RoomMember) TableName() string {
	return "chat_room_members"
}
