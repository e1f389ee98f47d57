package storage

import "testing"

func TestParseNotifyFlags(t *testing.T) {
	cfg := ParseNotifyFlags("Kgl")
	if !cfg.KeySpace || !cfg.Generic || !cfg.List {
		t.Errorf("expected K, g, l flags set, got %+v", cfg)
	}
	if cfg.KeyEvent || cfg.Expired {
		t.Errorf("expected E and x unset, got %+v", cfg)
	}
}

func TestParseNotifyFlagsAllClass(t *testing.T) {
	cfg := ParseNotifyFlags("KEA")
	if !cfg.Generic || !cfg.List || !cfg.Expired {
		t.Errorf("expected 'A' to enable every event class, got %+v", cfg)
	}
}

func TestParseNotifyFlagsIgnoresUnknown(t *testing.T) {
	cfg := ParseNotifyFlags("Kq")
	if !cfg.KeySpace {
		t.Error("expected known flag K to still be parsed")
	}
}

func TestNotifyPublishesOnEnabledClass(t *testing.T) {
	s := NewStore()
	s.SetNotifyConfig(ParseNotifyFlags("KEl"))

	sub := &Subscriber{ID: "sub1", Channels: make(chan *Message, 4)}
	s.PubSub.Subscribe("sub1", sub, "__keyevent@0__:sladd", "__keyspace@0__:myset")

	s.NotifySorted("sladd", "myset")

	seen := map[string]string{}
	for i := 0; i < 2; i++ {
		msg := <-sub.Channels
		seen[msg.Channel] = msg.Payload
	}
	if seen["__keyevent@0__:sladd"] != "myset" {
		t.Errorf("expected keyevent payload 'myset', got %q", seen["__keyevent@0__:sladd"])
	}
	if seen["__keyspace@0__:myset"] != "sladd" {
		t.Errorf("expected keyspace payload 'sladd', got %q", seen["__keyspace@0__:myset"])
	}
}

func TestNotifySuppressedWhenClassDisabled(t *testing.T) {
	s := NewStore()
	s.SetNotifyConfig(ParseNotifyFlags("KE")) // no 'g' class

	sub := &Subscriber{ID: "sub1", Channels: make(chan *Message, 1)}
	s.PubSub.Subscribe("sub1", sub, "__keyevent@0__:del")

	s.NotifyGeneric("del", "somekey")

	select {
	case msg := <-sub.Channels:
		t.Errorf("expected no notification for disabled class, got %+v", msg)
	default:
	}
}
