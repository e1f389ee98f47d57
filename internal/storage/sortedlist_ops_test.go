package storage

import "testing"

func TestSLAddAndSLCard(t *testing.T) {
	s := NewStore()
	pairs := [][2][]byte{
		{[]byte("1"), []byte("a")},
		{[]byte("2"), []byte("b")},
	}
	added, err := s.SLAdd("k", pairs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 new entries, got %d", added)
	}
	card, err := s.SLCard("k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card != 2 {
		t.Errorf("expected cardinality 2, got %d", card)
	}
}

func TestSLAddSameMemberDifferentScoreIsDistinctEntry(t *testing.T) {
	s := NewStore()
	s.SLAdd("k", [][2][]byte{{[]byte("1"), []byte("a")}})
	added, err := s.SLAdd("k", [][2][]byte{{[]byte("2"), []byte("a")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 1 {
		t.Errorf("expected the same member at a new score to count as net-new, got %d", added)
	}

	entries, err := s.SLAll("k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected both (1,a) and (2,a) to coexist, got %+v", entries)
	}
}

func TestSLAddExactPairIsReplacedNotDuplicated(t *testing.T) {
	s := NewStore()
	s.SLAdd("k", [][2][]byte{{[]byte("1"), []byte("a")}})
	added, err := s.SLAdd("k", [][2][]byte{{[]byte("1"), []byte("a")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 0 {
		t.Errorf("expected re-adding the exact same (score, member) to report 0 new entries, got %d", added)
	}

	card, err := s.SLCard("k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card != 1 {
		t.Errorf("expected cardinality to stay 1, got %d", card)
	}
}

func TestSLAddWrongType(t *testing.T) {
	s := NewStore()
	s.Set("k", "a string value", nil)

	_, err := s.SLAdd("k", [][2][]byte{{[]byte("1"), []byte("a")}})
	if err != ErrWrongType {
		t.Errorf("expected ErrWrongType, got %v", err)
	}
}

func TestSLRem(t *testing.T) {
	s := NewStore()
	s.SLAdd("k", [][2][]byte{{[]byte("1"), []byte("a")}, {[]byte("2"), []byte("b")}})

	removed, err := s.SLRem("k", [][]byte{[]byte("1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected removal of 1 entry at score 1, got %d", removed)
	}

	removed, err = s.SLRem("k", [][]byte{[]byte("1")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 0 {
		t.Error("expected removing an already-removed score to report 0")
	}
}

func TestSLRemDeletesAllEntriesAtEachScore(t *testing.T) {
	s := NewStore()
	s.SLAdd("k", [][2][]byte{
		{[]byte("1"), []byte("v1")},
		{[]byte("2"), []byte("v2")},
		{[]byte("2"), []byte("v22")},
		{[]byte("2"), []byte("v222")},
		{[]byte("3"), []byte("v3")},
	})

	removed, err := s.SLRem("k", [][]byte{[]byte("2")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 entries removed at score 2, got %d", removed)
	}

	entries, err := s.SLAll("k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 remaining entries, got %d", len(entries))
	}
}

func TestSLRemAcrossMultipleScoresSumsCount(t *testing.T) {
	s := NewStore()
	s.SLAdd("k", [][2][]byte{
		{[]byte("1"), []byte("a")},
		{[]byte("2"), []byte("b")},
		{[]byte("3"), []byte("c")},
	})

	removed, err := s.SLRem("k", [][]byte{[]byte("1"), []byte("3")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 total entries removed across both scores, got %d", removed)
	}

	card, _ := s.SLCard("k")
	if card != 1 {
		t.Errorf("expected 1 remaining entry, got %d", card)
	}
}

func TestSLRemDeletesKeyWhenEmpty(t *testing.T) {
	s := NewStore()
	s.SLAdd("k", [][2][]byte{{[]byte("1"), []byte("a")}})
	s.SLRem("k", [][]byte{[]byte("1")})

	if s.Exists("k") {
		t.Error("expected key to be removed once its sorted list becomes empty")
	}
}

func TestSLRemFiresDelNotificationWhenKeyDropped(t *testing.T) {
	s := NewStore()
	s.SetNotifyConfig(ParseNotifyFlags("KEg"))
	s.SLAdd("k", [][2][]byte{{[]byte("1"), []byte("a")}})

	sub := &Subscriber{ID: "sub1", Channels: make(chan *Message, 1)}
	s.PubSub.Subscribe("sub1", sub, "__keyevent@0__:del")

	s.SLRem("k", [][]byte{[]byte("1")})

	select {
	case msg := <-sub.Channels:
		if msg.Payload != "k" {
			t.Errorf("expected del notification payload 'k', got %q", msg.Payload)
		}
	default:
		t.Error("expected a del notification when SLREM empties the container")
	}
}

func TestSLOpsOnMissingKey(t *testing.T) {
	s := NewStore()

	entries, err := s.SLAll("absent")
	if err != nil || entries != nil {
		t.Errorf("expected (nil, nil) for SLAll on missing key, got (%v, %v)", entries, err)
	}

	card, err := s.SLCard("absent")
	if err != nil || card != 0 {
		t.Errorf("expected (0, nil) for SLCard on missing key, got (%d, %v)", card, err)
	}

	removed, err := s.SLRem("absent", [][]byte{[]byte("1")})
	if err != nil || removed != 0 {
		t.Errorf("expected (0, nil) for SLRem on missing key, got (%d, %v)", removed, err)
	}
}

func TestSLRangeAndSLSearch(t *testing.T) {
	s := NewStore()
	s.SLAdd("k", [][2][]byte{
		{[]byte("1"), []byte("a")},
		{[]byte("2"), []byte("b")},
		{[]byte("2"), []byte("c")},
		{[]byte("3"), []byte("d")},
	})

	entries, err := s.SLRange("k", []byte("2"), []byte("3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries in range [2,3], got %d", len(entries))
	}

	entries, err = s.SLSearch("k", []byte("2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries with score 2, got %d", len(entries))
	}
}
