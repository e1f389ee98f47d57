package lua

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"redis/internal/storage"
)

// RedisExecutor implements RedisCommandExecutor, narrowed to the generic
// key surface and the sorted list command set this service exposes.
type RedisExecutor struct {
	store *storage.Store
}

// NewRedisExecutor creates a new executor for Lua scripts.
func NewRedisExecutor(store *storage.Store) *RedisExecutor {
	return &RedisExecutor{
		store: store,
	}
}

// ExecuteCommand executes a command and returns the result.
func (r *RedisExecutor) ExecuteCommand(cmdName string, args ...interface{}) (interface{}, error) {
	cmdName = strings.ToUpper(cmdName)

	stringArgs := make([]string, len(args))
	for i, arg := range args {
		stringArgs[i] = fmt.Sprintf("%v", arg)
	}

	switch cmdName {
	// ==================== GENERIC KEY COMMANDS ====================
	case "GET":
		if len(stringArgs) < 1 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'get' command")
		}
		value, exists := r.store.Get(stringArgs[0])
		if !exists {
			return nil, nil
		}
		return value, nil

	case "SET":
		if len(stringArgs) < 2 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'set' command")
		}
		r.store.Set(stringArgs[0], stringArgs[1], nil)
		return "OK", nil

	case "DEL":
		if len(stringArgs) < 1 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'del' command")
		}
		count := 0
		for _, key := range stringArgs {
			if r.store.Delete(key) {
				count++
			}
		}
		return int64(count), nil

	case "EXISTS":
		if len(stringArgs) < 1 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'exists' command")
		}
		count := int64(0)
		for _, key := range stringArgs {
			if r.store.Exists(key) {
				count++
			}
		}
		return count, nil

	case "INCR":
		if len(stringArgs) < 1 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'incr' command")
		}
		return r.store.Incr(stringArgs[0])

	case "DECR":
		if len(stringArgs) < 1 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'decr' command")
		}
		return r.store.Decr(stringArgs[0])

	case "INCRBY":
		if len(stringArgs) < 2 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'incrby' command")
		}
		delta, err := strconv.ParseInt(stringArgs[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ERR value is not an integer or out of range")
		}
		return r.store.IncrBy(stringArgs[0], delta)

	case "DECRBY":
		if len(stringArgs) < 2 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'decrby' command")
		}
		delta, err := strconv.ParseInt(stringArgs[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ERR value is not an integer or out of range")
		}
		return r.store.DecrBy(stringArgs[0], delta)

	case "EXPIRE":
		if len(stringArgs) < 2 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'expire' command")
		}
		seconds, err := strconv.ParseInt(stringArgs[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ERR value is not an integer or out of range")
		}
		expiryTime := time.Now().Add(time.Duration(seconds) * time.Second)
		if r.store.Expire(stringArgs[0], &expiryTime) {
			return int64(1), nil
		}
		return int64(0), nil

	case "TTL":
		if len(stringArgs) < 1 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'ttl' command")
		}
		return r.store.TTL(stringArgs[0]), nil

	case "TYPE":
		if len(stringArgs) < 1 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'type' command")
		}
		return r.store.Type(stringArgs[0]), nil

	case "KEYS":
		keys := r.store.Keys()
		result := make([]interface{}, len(keys))
		for i, k := range keys {
			result[i] = k
		}
		return result, nil

	// ==================== SORTED LIST COMMANDS ====================
	case "SLADD":
		if len(stringArgs) < 3 || len(stringArgs)%2 == 0 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'sladd' command")
		}
		pairs := make([][2][]byte, 0, (len(stringArgs)-1)/2)
		for i := 1; i < len(stringArgs); i += 2 {
			pairs = append(pairs, [2][]byte{[]byte(stringArgs[i]), []byte(stringArgs[i+1])})
		}
		added, err := r.store.SLAdd(stringArgs[0], pairs)
		if err != nil {
			return nil, err
		}
		return int64(added), nil

	case "SLREM":
		if len(stringArgs) < 2 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'slrem' command")
		}
		scores := make([][]byte, 0, len(stringArgs)-1)
		for _, s := range stringArgs[1:] {
			scores = append(scores, []byte(s))
		}
		removed, err := r.store.SLRem(stringArgs[0], scores)
		if err != nil {
			return nil, err
		}
		return int64(removed), nil

	case "SLALL":
		if len(stringArgs) != 1 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'slall' command")
		}
		entries, err := r.store.SLAll(stringArgs[0])
		if err != nil {
			return nil, err
		}
		return entriesToInterfaces(entries), nil

	case "SLSEARCH":
		if len(stringArgs) != 2 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'slsearch' command")
		}
		entries, err := r.store.SLSearch(stringArgs[0], []byte(stringArgs[1]))
		if err != nil {
			return nil, err
		}
		return entriesToInterfaces(entries), nil

	case "SLRANGE":
		if len(stringArgs) != 3 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'slrange' command")
		}
		entries, err := r.store.SLRange(stringArgs[0], []byte(stringArgs[1]), []byte(stringArgs[2]))
		if err != nil {
			return nil, err
		}
		return entriesToInterfaces(entries), nil

	case "SLCARD":
		if len(stringArgs) != 1 {
			return nil, fmt.Errorf("ERR wrong number of arguments for 'slcard' command")
		}
		count, err := r.store.SLCard(stringArgs[0])
		if err != nil {
			return nil, err
		}
		return int64(count), nil

	default:
		return nil, fmt.Errorf("ERR unknown command '%s' called from script", cmdName)
	}
}

// entriesToInterfaces flattens an Entry list into score,member,score,member...
// matching the flat multi-bulk shape these commands return over the wire.
func entriesToInterfaces(entries []storage.Entry) []interface{} {
	result := make([]interface{}, 0, len(entries)*2)
	for _, e := range entries {
		result = append(result, e.Score.String(), e.Member.String())
	}
	return result
}
