package handler

import (
	"fmt"
	"strconv"
	"strings"

	"redis/internal/protocol"
)

// handleEval executes a Lua script against the store.
// EVAL script numkeys key [key ...] arg [arg ...]
func (h *CommandHandler) handleEval(cmd *protocol.Command) []byte {
	if len(cmd.Args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'eval' command")
	}

	script := cmd.Args[1]
	keys, args, err := splitKeysArgs(cmd.Args[2:])
	if err != nil {
		return protocol.EncodeError(err.Error())
	}

	result, err := h.scriptEngine.Eval(script, keys, args)
	if err != nil {
		return protocol.EncodeError(fmt.Sprintf("ERR %s", err.Error()))
	}
	return luaResultToRESP(result)
}

// handleEvalSHA executes a cached script by its SHA1 hash.
// EVALSHA sha1 numkeys key [key ...] arg [arg ...]
func (h *CommandHandler) handleEvalSHA(cmd *protocol.Command) []byte {
	if len(cmd.Args) < 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'evalsha' command")
	}

	sha1Hash := cmd.Args[1]
	keys, args, err := splitKeysArgs(cmd.Args[2:])
	if err != nil {
		return protocol.EncodeError(err.Error())
	}

	result, err := h.scriptEngine.EvalSHA(sha1Hash, keys, args)
	if err != nil {
		return protocol.EncodeError(fmt.Sprintf("ERR %s", err.Error()))
	}
	return luaResultToRESP(result)
}

// splitKeysArgs parses the numkeys key [key ...] arg [arg ...] tail shared
// by EVAL and EVALSHA.
func splitKeysArgs(rest []string) (keys, args []string, err error) {
	if len(rest) < 1 {
		return nil, nil, fmt.Errorf("ERR wrong number of arguments")
	}
	numKeys, convErr := strconv.Atoi(rest[0])
	if convErr != nil || numKeys < 0 {
		return nil, nil, fmt.Errorf("ERR value is not an integer or out of range")
	}
	if len(rest)-1 < numKeys {
		return nil, nil, fmt.Errorf("ERR Number of keys can't be greater than number of args")
	}
	keys = rest[1 : 1+numKeys]
	args = rest[1+numKeys:]
	return keys, args, nil
}

// handleScript dispatches SCRIPT LOAD | EXISTS | FLUSH.
func (h *CommandHandler) handleScript(cmd *protocol.Command) []byte {
	if len(cmd.Args) < 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'script' command")
	}

	switch strings.ToUpper(cmd.Args[1]) {
	case "LOAD":
		if len(cmd.Args) < 3 {
			return protocol.EncodeError("ERR wrong number of arguments for 'script|load' command")
		}
		sha1Hash := h.scriptEngine.LoadScript(cmd.Args[2])
		return protocol.EncodeBulkString(sha1Hash)

	case "EXISTS":
		if len(cmd.Args) < 3 {
			return protocol.EncodeError("ERR wrong number of arguments for 'script|exists' command")
		}
		exists := h.scriptEngine.ScriptExists(cmd.Args[2:])
		flags := make([]int, len(exists))
		for i, ok := range exists {
			if ok {
				flags[i] = 1
			}
		}
		return protocol.EncodeIntegerArray(flags)

	case "FLUSH":
		h.scriptEngine.ScriptFlush()
		return protocol.EncodeSimpleString("OK")

	default:
		return protocol.EncodeError(fmt.Sprintf("ERR unknown SCRIPT subcommand '%s'", cmd.Args[1]))
	}
}

// luaResultToRESP converts a Lua script's return value into wire-protocol
// bytes, following the redis.call conversion table: bool, number, string
// and table map onto integer, bulk string and array replies.
func luaResultToRESP(result interface{}) []byte {
	if result == nil {
		return protocol.EncodeNullBulkString()
	}

	switch v := result.(type) {
	case bool:
		if v {
			return protocol.EncodeInteger(1)
		}
		return protocol.EncodeInteger(0)
	case int:
		return protocol.EncodeInteger(v)
	case int64:
		return protocol.EncodeInteger(int(v))
	case float64:
		return protocol.EncodeInteger(int(v))
	case string:
		return protocol.EncodeBulkString(v)
	case []interface{}:
		strArray := make([]string, len(v))
		for i, item := range v {
			strArray[i] = fmt.Sprintf("%v", item)
		}
		return protocol.EncodeArray(strArray)
	case map[string]interface{}:
		if status, ok := v["ok"]; ok {
			return protocol.EncodeSimpleString(fmt.Sprintf("%v", status))
		}
		if errMsg, ok := v["err"]; ok {
			return protocol.EncodeError(fmt.Sprintf("%v", errMsg))
		}
		pairs := make([]string, 0, len(v)*2)
		for key, val := range v {
			pairs = append(pairs, key, fmt.Sprintf("%v", val))
		}
		return protocol.EncodeArray(pairs)
	default:
		return protocol.EncodeBulkString(fmt.Sprintf("%v", v))
	}
}
