package collector

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"xfollow/pkg/logger"
	"xfollow/pkg/models"
	"xfollow/pkg/store"
)

// State is the collection context shared by the scanner, the merger and the exporter
type State struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	following *store.RecordSet
	followers *store.RecordSet
	buffer    *store.RecordSet
	logger    logger.Logger
}

// MergeResult reports the outcome of moving the scan buffer into a persistent set
type MergeResult struct {
	Target models.ListKind
	Added  int
	Total  int
}

// Sizes is a point-in-time view of the three record sets
type Sizes struct {
	Following int
	Followers int
	Buffer    int
}

// NewState creates an empty collection state
func NewState(log logger.Logger) *State {
	if log == nil {
		log = logger.GetLogger()
	}
	id := uuid.NewString()
	return &State{
		ID:        id,
		CreatedAt: time.Now(),
		following: store.NewRecordSet(),
		followers: store.NewRecordSet(),
		buffer:    store.NewRecordSet(),
		logger:    log.WithField("session", id),
	}
}

// SaveFollowing merges the scan buffer into the following set
func (s *State) SaveFollowing() MergeResult {
	return s.save(models.ListFollowing)
}

// SaveFollowers merges the scan buffer into the followers set
func (s *State) SaveFollowers() MergeResult {
	return s.save(models.ListFollowers)
}

// save moves every buffered record not already in the target set into it,
// then empties the buffer whether or not anything was added.
func (s *State) save(kind models.ListKind) MergeResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.following
	if kind == models.ListFollowers {
		target = s.followers
	}

	added := 0
	s.buffer.Each(func(rec models.UserRecord) {
		if target.PutIfAbsent(rec) {
			added++
		}
	})
	s.buffer.Clear()

	result := MergeResult{Target: kind, Added: added, Total: target.Len()}
	s.logger.InfoWithFields("scan buffer merged", map[string]interface{}{
		"list":  string(kind),
		"added": result.Added,
		"total": result.Total,
	})

	return result
}

// Sizes returns the current set sizes without modifying anything
func (s *State) Sizes() Sizes {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Sizes{
		Following: s.following.Len(),
		Followers: s.followers.Len(),
		Buffer:    s.buffer.Len(),
	}
}

// Snapshot returns copies of the two persistent sets, taken under the lock
func (s *State) Snapshot() (following, followers *store.RecordSet) {
	s.mu.Lock()
	defer s.mu.Unlock()

	following, followers = store.NewRecordSet(), store.NewRecordSet()
	s.following.Each(func(rec models.UserRecord) { following.PutIfAbsent(rec) })
	s.followers.Each(func(rec models.UserRecord) { followers.PutIfAbsent(rec) })
	return following, followers
}
