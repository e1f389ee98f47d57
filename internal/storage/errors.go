package storage

import "errors"

var (
	// General errors
	ErrKeyNotFound      = errors.New("key not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrWrongType        = errors.New("WRONGTYPE Operation against a key holding the wrong kind of value")

	// Generic key-surface errors
	ErrNoSuchKey    = errors.New("ERR no such key")
	ErrWrongNumArgs = errors.New("ERR wrong number of arguments")
)
