package storage

import "strings"

// NotifyConfig mirrors the notify-keyspace-events class string: which
// event classes are published, and whether they go out as keyspace
// events, keyevent events, or both.
type NotifyConfig struct {
	KeyEvent bool // 'E'
	KeySpace bool // 'K'
	Generic  bool // 'g'
	List     bool // 'l' — sladd/slrem fall under the list notification class
	Expired  bool // 'x'
}

// ParseNotifyFlags parses a notify-keyspace-events class string such as
// "KEA" or "Kgl". Unknown letters are ignored rather than rejected.
func ParseNotifyFlags(spec string) NotifyConfig {
	var cfg NotifyConfig
	all := strings.Contains(spec, "A")
	for _, c := range spec {
		switch c {
		case 'K':
			cfg.KeySpace = true
		case 'E':
			cfg.KeyEvent = true
		case 'g':
			cfg.Generic = true
		case 'l':
			cfg.List = true
		case 'x':
			cfg.Expired = true
		}
	}
	if all {
		cfg.Generic = true
		cfg.List = true
		cfg.Expired = true
	}
	return cfg
}

// notify publishes a keyspace/keyevent notification pair for a mutation
// on key, per the standard __keyspace@<db>__:<key> / __keyevent@<db>__:<event>
// channel convention. db is always 0 in this service (no SELECT support).
// Uses the NotifyConfig last set on the store via SetNotifyConfig.
func (s *Store) notify(class byte, event, key string) {
	if !classEnabled(s.notifyConfig, class) {
		return
	}
	if s.notifyConfig.KeySpace {
		s.PubSub.Publish("__keyspace@0__:"+key, event)
	}
	if s.notifyConfig.KeyEvent {
		s.PubSub.Publish("__keyevent@0__:"+event, key)
	}
}

func classEnabled(cfg NotifyConfig, class byte) bool {
	switch class {
	case 'g':
		return cfg.Generic
	case 'l':
		return cfg.List
	case 'x':
		return cfg.Expired
	default:
		return false
	}
}

// NotifySorted emits the keyspace notification for a sorted-list
// mutation (event is e.g. "sladd", "slrem"), under the list
// notification class since this service has no dedicated zset class.
func (s *Store) NotifySorted(event, key string) {
	s.notify('l', event, key)
}

// NotifyGeneric emits the keyspace notification for a generic key
// mutation (event is e.g. "del", "expire", "rename").
func (s *Store) NotifyGeneric(event, key string) {
	s.notify('g', event, key)
}

// NotifyExpired emits the keyspace notification for a key removed by
// the active expiry sweep (CleanupExpiredKeys). Keys removed lazily on
// access do not emit it.
func (s *Store) NotifyExpired(key string) {
	s.notify('x', "expired", key)
}
