package entity

import "time"

// Room is the persisted chat destination bound 1:1 to a parent group.
// At most one active room exists per group; deleted groups deactivate
// their room rather than removing it.
type Room struct {
	Id              uint64
	GroupId         uint64
	Name            string
	Description     string
	MaxParticipants int
	IsActive        bool
	CreatedBy       uint64
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// MemberRole is the durable role of a user inside a room.
type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// Membership ties a user to a room. One row per (room, user) pair, ever;
// leaving flips IsActive off and rejoining flips it back on so message
// attribution survives departures.
type Membership struct {
	Id            uint64
	RoomId        uint64
	UserId        uint64
	Role          MemberRole
	LastReadMsgId *uint64
	IsActive      bool
	JoinedAt      time.Time
	LeftAt        *time.Time
}
