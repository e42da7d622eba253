package memory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// PresenceRepository is the process-local presence store used when no
// Redis is configured. Entries expire on their own; a silent client
// simply ages out of the online list.
type PresenceRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewPresenceRepository(ttl time.Duration) *PresenceRepository {
	// Purge interval does not need to be tight; List filters expired
	// entries itself.
	c := cache.New(ttl, 2*ttl)
	return &PresenceRepository{
		cache: c,
		ttl:   ttl,
	}
}

func presenceKey(roomId, userId uint64) string {
	return fmt.Sprintf("%d:%d", roomId, userId)
}

func (r *PresenceRepository) Set(roomId, userId uint64) {
	r.cache.Set(presenceKey(roomId, userId), struct{}{}, r.ttl)
}

func (r *PresenceRepository) Delete(roomId, userId uint64) {
	r.cache.Delete(presenceKey(roomId, userId))
}

func (r *PresenceRepository) List(roomId uint64) []uint64 {
	prefix := fmt.Sprintf("%d:", roomId)
	userIds := make([]uint64, 0)
	for key := range r.cache.Items() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		userId, err := strconv.ParseUint(strings.TrimPrefix(key, prefix), 10, 64)
		if err != nil {
			continue
		}
		userIds = append(userIds, userId)
	}
	return userIds
}
