package protocol

import (
	"bufio"
	"strings"
	"testing"
)

func TestParseCommandArray(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("*3\r\n$5\r\nSLADD\r\n$1\r\n1\r\n$1\r\na\r\n"))
	cmd, err := ParseCommand(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"SLADD", "1", "a"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("expected %v, got %v", want, cmd.Args)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("arg %d: expected %q, got %q", i, want[i], cmd.Args[i])
		}
	}
}

func TestParseCommandArrayRejectsNonBulkElement(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("*1\r\n:5\r\n"))
	if _, err := ParseCommand(reader); err == nil {
		t.Error("expected an error for a non-bulk-string array element")
	}
}

func TestParseCommandArrayRejectsNonPositiveLength(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("*0\r\n"))
	if _, err := ParseCommand(reader); err == nil {
		t.Error("expected an error for a zero-length array")
	}
}

func TestParseCommandInline(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("PING\r\n"))
	cmd, err := ParseCommand(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmd.Args) != 1 || cmd.Args[0] != "PING" {
		t.Errorf("expected [PING], got %v", cmd.Args)
	}
}

func TestParseCommandInlineWithArgs(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("SLCARD board\r\n"))
	cmd, err := ParseCommand(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"SLCARD", "board"}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("arg %d: expected %q, got %q", i, want[i], cmd.Args[i])
		}
	}
}

func TestParseCommandEmptyLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("\r\n"))
	if _, err := ParseCommand(reader); err == nil {
		t.Error("expected an error for an empty command line")
	}
}

func TestEncodeHelpers(t *testing.T) {
	cases := []struct {
		name string
		got  []byte
		want string
	}{
		{"SimpleString", EncodeSimpleString("OK"), "+OK\r\n"},
		{"Error", EncodeError("ERR bad"), "-ERR bad\r\n"},
		{"Integer", EncodeInteger(42), ":42\r\n"},
		{"Integer64", EncodeInteger64(-7), ":-7\r\n"},
		{"BulkString", EncodeBulkString("hi"), "$2\r\nhi\r\n"},
		{"NullBulkString", EncodeNullBulkString(), "$-1\r\n"},
		{"NilArray", EncodeNilArray(), "*-1\r\n"},
		{"Array", EncodeArray([]string{"a", "bb"}), "*2\r\n$1\r\na\r\n$2\r\nbb\r\n"},
		{"IntegerArray", EncodeIntegerArray([]int{1, 0, 1}), "*3\r\n:1\r\n:0\r\n:1\r\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if string(c.got) != c.want {
				t.Errorf("expected %q, got %q", c.want, string(c.got))
			}
		})
	}
}

func TestEncodeInterfaceArrayHandlesNil(t *testing.T) {
	got := EncodeInterfaceArray([]interface{}{"a", nil, 3})
	want := "*3\r\n$1\r\na\r\n$-1\r\n$1\r\n3\r\n"
	if string(got) != want {
		t.Errorf("expected %q, got %q", want, string(got))
	}
}

func TestEncodeRawArray(t *testing.T) {
	got := EncodeRawArray([][]byte{EncodeInteger(1), EncodeSimpleString("OK")})
	want := "*2\r\n:1\r\n+OK\r\n"
	if string(got) != want {
		t.Errorf("expected %q, got %q", want, string(got))
	}
}
