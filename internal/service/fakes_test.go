package service

import (
	"context"
	"sync"
	"time"

	"groupchat-be/internal/entity"
	"groupchat-be/internal/pkg/logger"
	"groupchat-be/internal/repository/contract"
	"groupchat-be/internal/repository/specification"
	"groupchat-be/internal/repository/unitofwork"
	"groupchat-be/internal/websocket"

	"gorm.io/gorm"
)

type testLogger struct{}

func (testLogger) Debug(string, string, map[string]interface{}) {}
func (testLogger) Info(string, string, map[string]interface{})  {}
func (testLogger) Warn(string, string, map[string]interface{})  {}
func (testLogger) Error(string, string, map[string]interface{}) {}
func (testLogger) Sync() error                                  { return nil }

var _ logger.ILogger = testLogger{}

// localRelay is a hub-backed relay with no broadcast transport; frames
// stay in-process, which is all unit tests need.
func localRelay() *websocket.Relay {
	return websocket.NewRelay(websocket.NewHub(testLogger{}), nil, nil, time.Second, testLogger{})
}

// query is the interpreted form of a specification list.
type query struct {
	id            *uint64
	roomId        *uint64
	userId        *uint64
	groupId       *uint64
	messageId     *uint64
	messageIds    []uint64
	emoji         *string
	activeOnly    bool
	idBefore      *uint64
	idAfter       *uint64
	createdBefore *time.Time
	orderDesc     bool
	limit         int
}

func parseSpecs(specs []specification.Specification) query {
	q := query{limit: -1}
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ByID:
			v := spec.ID
			q.id = &v
		case specification.ByRoomID:
			v := spec.RoomID
			q.roomId = &v
		case specification.ByUserID:
			v := spec.UserID
			q.userId = &v
		case specification.ByGroupID:
			v := spec.GroupID
			q.groupId = &v
		case specification.ByMessageID:
			v := spec.MessageID
			q.messageId = &v
		case specification.ByMessageIDs:
			q.messageIds = spec.MessageIDs
		case specification.ByEmoji:
			v := spec.Emoji
			q.emoji = &v
		case specification.ActiveOnly:
			q.activeOnly = true
		case specification.IdBefore:
			v := spec.Id
			q.idBefore = &v
		case specification.IdAfter:
			v := spec.Id
			q.idAfter = &v
		case specification.CreatedBefore:
			v := spec.Instant
			q.createdBefore = &v
		case specification.OrderByIdDesc:
			q.orderDesc = true
		case specification.Limit:
			q.limit = spec.N
		}
	}
	return q
}

// fakeStore is a single in-memory dataset shared by all fake repos.
type fakeStore struct {
	mu sync.Mutex

	rooms     []*entity.Room
	members   []*entity.Membership
	messages  []*entity.Message
	reactions []*entity.Reaction

	nextRoomId     uint64
	nextMemberId   uint64
	nextMessageId  uint64
	nextReactionId uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) factory() unitofwork.RepositoryFactory {
	return fakeFactory{store: s}
}

type fakeFactory struct {
	store *fakeStore
}

func (f fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) RoomRepository() contract.RoomRepository {
	return &fakeRoomRepo{store: u.store}
}
func (u *fakeUow) MembershipRepository() contract.MembershipRepository {
	return &fakeMembershipRepo{store: u.store}
}
func (u *fakeUow) MessageRepository() contract.MessageRepository {
	return &fakeMessageRepo{store: u.store}
}
func (u *fakeUow) ReactionRepository() contract.ReactionRepository {
	return &fakeReactionRepo{store: u.store}
}

// ---- rooms ----

type fakeRoomRepo struct {
	store *fakeStore
}

func (r *fakeRoomRepo) matches(room *entity.Room, q query) bool {
	if q.id != nil && room.Id != *q.id {
		return false
	}
	if q.groupId != nil && room.GroupId != *q.groupId {
		return false
	}
	if q.activeOnly && !room.IsActive {
		return false
	}
	return true
}

func (r *fakeRoomRepo) Create(ctx context.Context, room *entity.Room) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// uniq_active_room_per_group
	if room.IsActive {
		for _, existing := range r.store.rooms {
			if existing.IsActive && existing.GroupId == room.GroupId {
				return gorm.ErrDuplicatedKey
			}
		}
	}

	r.store.nextRoomId++
	room.Id = r.store.nextRoomId
	stored := *room
	r.store.rooms = append(r.store.rooms, &stored)
	return nil
}

func (r *fakeRoomRepo) Update(ctx context.Context, room *entity.Room) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.rooms {
		if existing.Id == room.Id {
			stored := *room
			r.store.rooms[i] = &stored
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRoomRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	for _, room := range r.store.rooms {
		if r.matches(room, q) {
			found := *room
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeRoomRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	result := make([]*entity.Room, 0)
	for _, room := range r.store.rooms {
		if r.matches(room, q) {
			found := *room
			result = append(result, &found)
		}
	}
	return result, nil
}

func (r *fakeRoomRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	rooms, _ := r.FindAll(ctx, specs...)
	return int64(len(rooms)), nil
}

// ---- memberships ----

type fakeMembershipRepo struct {
	store *fakeStore
}

func (r *fakeMembershipRepo) matches(m *entity.Membership, q query) bool {
	if q.id != nil && m.Id != *q.id {
		return false
	}
	if q.roomId != nil && m.RoomId != *q.roomId {
		return false
	}
	if q.userId != nil && m.UserId != *q.userId {
		return false
	}
	if q.activeOnly && !m.IsActive {
		return false
	}
	return true
}

func (r *fakeMembershipRepo) Create(ctx context.Context, member *entity.Membership) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// uniq_room_member
	for _, existing := range r.store.members {
		if existing.RoomId == member.RoomId && existing.UserId == member.UserId {
			return gorm.ErrDuplicatedKey
		}
	}

	r.store.nextMemberId++
	member.Id = r.store.nextMemberId
	stored := *member
	r.store.members = append(r.store.members, &stored)
	return nil
}

func (r *fakeMembershipRepo) Update(ctx context.Context, member *entity.Membership) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.members {
		if existing.Id == member.Id {
			stored := *member
			r.store.members[i] = &stored
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeMembershipRepo) UpdateLastRead(ctx context.Context, roomId, userId, messageId uint64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.members {
		if m.RoomId == roomId && m.UserId == userId {
			v := messageId
			m.LastReadMsgId = &v
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeMembershipRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Membership, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	for _, m := range r.store.members {
		if r.matches(m, q) {
			found := *m
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeMembershipRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Membership, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	result := make([]*entity.Membership, 0)
	for _, m := range r.store.members {
		if r.matches(m, q) {
			found := *m
			result = append(result, &found)
		}
	}
	return result, nil
}

func (r *fakeMembershipRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	members, _ := r.FindAll(ctx, specs...)
	return int64(len(members)), nil
}

// ---- messages ----

type fakeMessageRepo struct {
	store *fakeStore
}

func (r *fakeMessageRepo) matches(m *entity.Message, q query) bool {
	if q.id != nil && m.Id != *q.id {
		return false
	}
	if q.roomId != nil && m.RoomId != *q.roomId {
		return false
	}
	if q.idBefore != nil && m.Id >= *q.idBefore {
		return false
	}
	if q.idAfter != nil && m.Id <= *q.idAfter {
		return false
	}
	if q.createdBefore != nil && !m.CreatedAt.Before(*q.createdBefore) {
		return false
	}
	return true
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextMessageId++
	message.Id = r.store.nextMessageId
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	stored := *message
	r.store.messages = append(r.store.messages, &stored)
	return nil
}

func (r *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	for _, m := range r.store.messages {
		if r.matches(m, q) {
			found := *m
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)

	result := make([]*entity.Message, 0)
	for _, m := range r.store.messages {
		if r.matches(m, q) {
			found := *m
			result = append(result, &found)
		}
	}

	if q.orderDesc {
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}
	if q.limit >= 0 && len(result) > q.limit {
		result = result[:q.limit]
	}
	return result, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	messages, _ := r.FindAll(ctx, specs...)
	return int64(len(messages)), nil
}

func (r *fakeMessageRepo) DeleteWhere(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)

	kept := make([]*entity.Message, 0, len(r.store.messages))
	var deleted int64
	for _, m := range r.store.messages {
		if r.matches(m, q) {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.store.messages = kept
	return deleted, nil
}

// ---- reactions ----

type fakeReactionRepo struct {
	store *fakeStore
}

func (r *fakeReactionRepo) matches(re *entity.Reaction, q query) bool {
	if q.messageId != nil && re.MessageId != *q.messageId {
		return false
	}
	if len(q.messageIds) > 0 {
		found := false
		for _, id := range q.messageIds {
			if re.MessageId == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.userId != nil && re.UserId != *q.userId {
		return false
	}
	if q.emoji != nil && re.Emoji != *q.emoji {
		return false
	}
	return true
}

func (r *fakeReactionRepo) Create(ctx context.Context, reaction *entity.Reaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// uniq_message_user_emoji
	for _, existing := range r.store.reactions {
		if existing.MessageId == reaction.MessageId && existing.UserId == reaction.UserId && existing.Emoji == reaction.Emoji {
			return gorm.ErrDuplicatedKey
		}
	}

	r.store.nextReactionId++
	reaction.Id = r.store.nextReactionId
	stored := *reaction
	r.store.reactions = append(r.store.reactions, &stored)
	return nil
}

func (r *fakeReactionRepo) DeleteWhere(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)

	kept := make([]*entity.Reaction, 0, len(r.store.reactions))
	var deleted int64
	for _, re := range r.store.reactions {
		if r.matches(re, q) {
			deleted++
			continue
		}
		kept = append(kept, re)
	}
	r.store.reactions = kept
	return deleted, nil
}

func (r *fakeReactionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Reaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	for _, re := range r.store.reactions {
		if r.matches(re, q) {
			found := *re
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeReactionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	q := parseSpecs(specs)
	result := make([]*entity.Reaction, 0)
	for _, re := range r.store.reactions {
		if r.matches(re, q) {
			found := *re
			result = append(result, &found)
		}
	}
	return result, nil
}

func (r *fakeReactionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	reactions, _ := r.FindAll(ctx, specs...)
	return int64(len(reactions)), nil
}
