package handler

import (
	"testing"

	"redis/internal/protocol"
)

func TestSplitKeysArgs(t *testing.T) {
	keys, args, err := splitKeysArgs([]string{"2", "k1", "k2", "v1", "v2", "v3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 2 || keys[0] != "k1" || keys[1] != "k2" {
		t.Errorf("expected keys [k1 k2], got %v", keys)
	}
	if len(args) != 3 || args[2] != "v3" {
		t.Errorf("expected 3 trailing args, got %v", args)
	}
}

func TestSplitKeysArgsZeroKeys(t *testing.T) {
	keys, args, err := splitKeysArgs([]string{"0", "a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("expected no keys, got %v", keys)
	}
	if len(args) != 2 {
		t.Errorf("expected 2 args, got %v", args)
	}
}

func TestSplitKeysArgsRejectsNonNumeric(t *testing.T) {
	if _, _, err := splitKeysArgs([]string{"notanumber", "a"}); err == nil {
		t.Error("expected error for non-numeric numkeys")
	}
}

func TestSplitKeysArgsRejectsTooManyKeys(t *testing.T) {
	if _, _, err := splitKeysArgs([]string{"5", "a", "b"}); err == nil {
		t.Error("expected error when numkeys exceeds available args")
	}
}

func TestLuaResultToRESP(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want []byte
	}{
		{"nil", nil, protocol.EncodeNullBulkString()},
		{"bool true", true, protocol.EncodeInteger(1)},
		{"bool false", false, protocol.EncodeInteger(0)},
		{"int", 7, protocol.EncodeInteger(7)},
		{"string", "hello", protocol.EncodeBulkString("hello")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := luaResultToRESP(c.in)
			if string(got) != string(c.want) {
				t.Errorf("expected %q, got %q", c.want, got)
			}
		})
	}
}
