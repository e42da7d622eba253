package dto

import "time"

// RetentionSweepMessage rides the in-process bus from the admin
// endpoint or the ticker to the retention worker.
type RetentionSweepMessage struct {
	RoomId uint64    `json:"room_id"` // 0 sweeps every room
	Cutoff time.Time `json:"cutoff"`
}
