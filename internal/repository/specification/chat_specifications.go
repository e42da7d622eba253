package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByID struct {
	ID uint64
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

type ByRoomID struct {
	RoomID uint64
}

func (s ByRoomID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("room_id = ?", s.RoomID)
}

type ByUserID struct {
	UserID uint64
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByGroupID struct {
	GroupID uint64
}

func (s ByGroupID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("group_id = ?", s.GroupID)
}

type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type ByMessageID struct {
	MessageID uint64
}

func (s ByMessageID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("message_id = ?", s.MessageID)
}

type ByMessageIDs struct {
	MessageIDs []uint64
}

func (s ByMessageIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("message_id IN ?", s.MessageIDs)
}

type ByEmoji struct {
	Emoji string
}

func (s ByEmoji) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("emoji = ?", s.Emoji)
}

// IdBefore keeps rows strictly older than the cursor. Pagination reads
// only ever look below an id already handed out, so concurrent appends
// can never duplicate or skip rows.
type IdBefore struct {
	Id uint64
}

func (s IdBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id < ?", s.Id)
}

// IdAfter keeps rows newer than the cursor; used for unread counts
// relative to a member's read pointer.
type IdAfter struct {
	Id uint64
}

func (s IdAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id > ?", s.Id)
}

type CreatedBefore struct {
	Instant time.Time
}

func (s CreatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at < ?", s.Instant)
}

type OrderByIdDesc struct{}

func (s OrderByIdDesc) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("id DESC")
}

type Limit struct {
	N int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.N)
}
