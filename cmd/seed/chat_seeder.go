package main

import (
	"log"
	"time"

	"groupchat-be/internal/model"

	"gorm.io/gorm"
)

// SeedChatRooms populates a demo room with members, a short message log
// and a few reactions. Intended for local development only.
func SeedChatRooms(db *gorm.DB) {
	now := time.Now()

	room := model.Room{
		GroupId:         1,
		Name:            "General",
		Description:     "Demo room seeded for local development",
		MaxParticipants: 100,
		IsActive:        true,
		CreatedBy:       1,
	}

	var existing model.Room
	err := db.Where("group_id = ? AND is_active = true", room.GroupId).First(&existing).Error
	if err == nil {
		log.Printf("Skip: group %d already has an active room (id=%d)", room.GroupId, existing.Id)
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Warn: Failed to check existing room: %v", err)
		return
	}

	if err := db.Create(&room).Error; err != nil {
		log.Printf("Warn: Failed to seed room: %v", err)
		return
	}

	members := []model.RoomMember{
		{RoomId: room.Id, UserId: 1, Role: "admin", IsActive: true, JoinedAt: now},
		{RoomId: room.Id, UserId: 2, Role: "member", IsActive: true, JoinedAt: now},
		{RoomId: room.Id, UserId: 3, Role: "member", IsActive: true, JoinedAt: now},
	}
	for i := range members {
		if err := db.Create(&members[i]).Error; err != nil {
			log.Printf("Warn: Failed to seed member %d: %v", members[i].UserId, err)
		}
	}

	body := func(s string) *string { return &s }
	messages := []model.Message{
		{RoomId: room.Id, UserId: 1, AuthorNickname: "alice", Kind: "enter", Body: body("alice entered")},
		{RoomId: room.Id, UserId: 1, AuthorNickname: "alice", Kind: "talk", Body: body("Welcome to the room!")},
		{RoomId: room.Id, UserId: 2, AuthorNickname: "bob", Kind: "enter", Body: body("bob entered")},
		{RoomId: room.Id, UserId: 2, AuthorNickname: "bob", Kind: "talk", Body: body("Hey everyone")},
		{RoomId: room.Id, UserId: 3, AuthorNickname: "carol", Kind: "enter", Body: body("carol entered")},
		{RoomId: room.Id, UserId: 3, AuthorNickname: "carol", Kind: "talk", Body: body("Good to be here")},
	}
	for i := range messages {
		if err := db.Create(&messages[i]).Error; err != nil {
			log.Printf("Warn: Failed to seed message: %v", err)
		}
	}

	// React to "Welcome to the room!"
	if len(messages) > 1 && messages[1].Id > 0 {
		reactions := []model.Reaction{
			{MessageId: messages[1].Id, UserId: 2, Emoji: "👍"},
			{MessageId: messages[1].Id, UserId: 3, Emoji: "👍"},
			{MessageId: messages[1].Id, UserId: 3, Emoji: "🎉"},
		}
		for i := range reactions {
			if err := db.Create(&reactions[i]).Error; err != nil {
				log.Printf("Warn: Failed to seed reaction: %v", err)
			}
		}
	}

	log.Printf("✅ Seeded room %d with %d members and %d messages", room.Id, len(members), len(messages))
}
