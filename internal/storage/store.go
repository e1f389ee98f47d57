package storage

import "time"

// Store is the outer key-value store the sorted-list container is an
// external collaborator of (spec.md §1 "OUT OF SCOPE"): it binds a
// user-visible key to a typed Value, one of which may hold a
// *SortedList. Kept from the teacher's store.go; trimmed of the
// RDB-era copy-on-write snapshot machinery and cluster wiring, neither
// of which this spec's scope reaches (see DESIGN.md).
type Store struct {
	data           map[string]*Value
	dataWithExpiry map[string]time.Time
	PubSub         *PubSub
	notifyConfig   NotifyConfig
}

type Value struct {
	Data      interface{}
	ExpiresAt *time.Time
	Type      ValueType
}

type ValueType int

const (
	StringType ValueType = iota
	SortedListType
)

func NewStore() *Store {
	return &Store{
		data:           make(map[string]*Value),
		dataWithExpiry: make(map[string]time.Time),
		PubSub:         NewPubSub(),
	}
}

// SetNotifyConfig replaces the store's keyspace notification
// configuration. Safe to call once at startup before any connections
// are served.
func (s *Store) SetNotifyConfig(cfg NotifyConfig) {
	s.notifyConfig = cfg
}

// deleteKey is a helper to delete from both maps
func (s *Store) deleteKey(key string) {
	delete(s.data, key)
	delete(s.dataWithExpiry, key)
}
