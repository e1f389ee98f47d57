package handler

import (
	"strings"
	"testing"

	"redis/internal/processor"
	"redis/internal/protocol"
	"redis/internal/storage"
)

func newTestHandler() *CommandHandler {
	proc := processor.NewProcessor(storage.NewStore())
	return NewCommandHandler(proc, DefaultHandlerConfig(), nil)
}

func execute(h *CommandHandler, args ...string) string {
	return string(h.ExecuteCommand(&protocol.Command{Args: args}))
}

func TestHandleSLAddAndSLCard(t *testing.T) {
	h := newTestHandler()

	resp := execute(h, "SLADD", "board", "10", "alice", "20", "bob")
	if resp != ":2\r\n" {
		t.Errorf("expected :2\\r\\n, got %q", resp)
	}

	resp = execute(h, "SLCARD", "board")
	if resp != ":2\r\n" {
		t.Errorf("expected :2\\r\\n, got %q", resp)
	}
}

func TestHandleSLAddWrongArity(t *testing.T) {
	h := newTestHandler()
	resp := execute(h, "SLADD", "board", "10")
	if !strings.HasPrefix(resp, "-ERR") {
		t.Errorf("expected an error reply for odd pair count, got %q", resp)
	}
}

func TestHandleSLRemAndSLAll(t *testing.T) {
	h := newTestHandler()
	execute(h, "SLADD", "board", "10", "alice", "20", "bob")

	resp := execute(h, "SLREM", "board", "10")
	if resp != ":1\r\n" {
		t.Errorf("expected :1\\r\\n for successful removal, got %q", resp)
	}

	resp = execute(h, "SLALL", "board")
	if !strings.Contains(resp, "bob") || strings.Contains(resp, "alice") {
		t.Errorf("expected remaining entries to contain bob but not alice, got %q", resp)
	}
}

func TestHandleSLRemMultipleScores(t *testing.T) {
	h := newTestHandler()
	execute(h, "SLADD", "board", "1", "a", "2", "b", "2", "c", "3", "d")

	resp := execute(h, "SLREM", "board", "2", "3")
	if resp != ":3\r\n" {
		t.Errorf("expected :3\\r\\n removing all score-2 entries plus score 3, got %q", resp)
	}

	resp = execute(h, "SLALL", "board")
	if !strings.Contains(resp, "a") || strings.Contains(resp, "b") || strings.Contains(resp, "c") || strings.Contains(resp, "d") {
		t.Errorf("expected only 'a' to remain, got %q", resp)
	}
}

func TestHandleSLAddSameMemberAtNewScoreIsDistinct(t *testing.T) {
	h := newTestHandler()
	execute(h, "SLADD", "board", "10", "alice")

	resp := execute(h, "SLADD", "board", "20", "alice")
	if resp != ":1\r\n" {
		t.Errorf("expected the same member re-added at a new score to count as net-new, got %q", resp)
	}

	resp = execute(h, "SLCARD", "board")
	if resp != ":2\r\n" {
		t.Errorf("expected both (10,alice) and (20,alice) to coexist, got %q", resp)
	}
}

func TestHandleSLRangeAndSLSearch(t *testing.T) {
	h := newTestHandler()
	execute(h, "SLADD", "board", "1", "a", "2", "b", "2", "c", "3", "d")

	resp := execute(h, "SLRANGE", "board", "2", "3")
	for _, want := range []string{"b", "c", "d"} {
		if !strings.Contains(resp, want) {
			t.Errorf("expected range reply to contain %q, got %q", want, resp)
		}
	}

	resp = execute(h, "SLSEARCH", "board", "2")
	if !strings.Contains(resp, "b") || !strings.Contains(resp, "c") || strings.Contains(resp, "a") {
		t.Errorf("expected search reply to contain b,c but not a, got %q", resp)
	}
}

func TestHandleSLOpsWrongType(t *testing.T) {
	h := newTestHandler()
	execute(h, "SET", "k", "a string")

	resp := execute(h, "SLADD", "k", "1", "a")
	if !strings.Contains(resp, "WRONGTYPE") {
		t.Errorf("expected WRONGTYPE error, got %q", resp)
	}
}

func TestHandleIncrDecr(t *testing.T) {
	h := newTestHandler()

	resp := execute(h, "INCR", "counter")
	if resp != ":1\r\n" {
		t.Errorf("expected :1\\r\\n, got %q", resp)
	}

	resp = execute(h, "INCRBY", "counter", "9")
	if resp != ":10\r\n" {
		t.Errorf("expected :10\\r\\n, got %q", resp)
	}

	resp = execute(h, "DECRBY", "counter", "4")
	if resp != ":6\r\n" {
		t.Errorf("expected :6\\r\\n, got %q", resp)
	}
}

func TestHandleEvalReturnsScriptValue(t *testing.T) {
	h := newTestHandler()

	resp := execute(h, "EVAL", "return 1+1", "0")
	if resp != ":2\r\n" {
		t.Errorf("expected :2\\r\\n from a simple arithmetic script, got %q", resp)
	}
}

func TestHandleEvalCallsIntoStore(t *testing.T) {
	h := newTestHandler()
	execute(h, "SET", "greeting", "hello")

	resp := execute(h, "EVAL", "return redis.call('GET', KEYS[1])", "1", "greeting")
	if !strings.Contains(resp, "hello") {
		t.Errorf("expected script's redis.call('GET', ...) to see the store value, got %q", resp)
	}
}

func TestHandleScriptLoadAndEvalSHA(t *testing.T) {
	h := newTestHandler()

	loadResp := execute(h, "SCRIPT", "LOAD", "return 42")
	if !strings.HasPrefix(loadResp, "$") {
		t.Fatalf("expected a bulk string SHA1 reply, got %q", loadResp)
	}
	sha := strings.Split(loadResp, "\r\n")[1]

	resp := execute(h, "EVALSHA", sha, "0")
	if resp != ":42\r\n" {
		t.Errorf("expected :42\\r\\n replaying the cached script, got %q", resp)
	}
}

func TestHandleType(t *testing.T) {
	h := newTestHandler()
	execute(h, "SET", "str", "v")
	execute(h, "SLADD", "board", "10", "alice")

	if resp := execute(h, "TYPE", "str"); resp != "+string\r\n" {
		t.Errorf("expected +string\\r\\n, got %q", resp)
	}
	if resp := execute(h, "TYPE", "board"); resp != "+zset\r\n" {
		t.Errorf("expected +zset\\r\\n, got %q", resp)
	}
	if resp := execute(h, "TYPE", "missing"); resp != "+none\r\n" {
		t.Errorf("expected +none\\r\\n, got %q", resp)
	}
}

func TestHandleUnknownCommand(t *testing.T) {
	h := newTestHandler()
	resp := execute(h, "NOSUCHCOMMAND")
	if !strings.Contains(resp, "unknown command") {
		t.Errorf("expected unknown command error, got %q", resp)
	}
}
