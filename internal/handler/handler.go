package handler

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"time"

	"redis/internal/aof"
	"redis/internal/lua"
	"redis/internal/metrics"
	"redis/internal/processor"
	"redis/internal/protocol"
	"redis/internal/storage"
)

// CommandFunc is a function type for command handlers
type CommandFunc func(cmd *protocol.Command) []byte

type Client struct {
	ID         int64
	Conn       net.Conn
	Subscriber *storage.Subscriber // Pub/Sub subscriber (nil if not in pub/sub mode)
	InPubSub   bool                // True if client is in pub/sub mode
}

// HandlerConfig holds all handler configuration
type HandlerConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	ReadTimeout     time.Duration
}

// DefaultHandlerConfig returns default handler configuration
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		ReadTimeout:     60 * time.Second,
	}
}

type CommandHandler struct {
	processor       *processor.Processor
	readBufferSize  int
	writeBufferSize int
	readTimeout     time.Duration
	commands        map[string]CommandFunc
	aofWriter       *aof.Writer
	scriptEngine    *lua.ScriptEngine
	onChange        func() // optional callback for tracking write activity
}

func NewCommandHandler(proc *processor.Processor, config HandlerConfig, aofWriter *aof.Writer) *CommandHandler {
	h := &CommandHandler{
		processor:       proc,
		readBufferSize:  config.ReadBufferSize,
		writeBufferSize: config.WriteBufferSize,
		readTimeout:     config.ReadTimeout,
		aofWriter:       aofWriter,
		scriptEngine:    lua.NewScriptEngine(lua.NewRedisExecutor(proc.GetStore())),
	}
	h.registerCommands()
	return h
}

// SetChangeCallback sets the callback that LogToAOF invokes for each
// successful write command, just before appending it to the AOF. It is
// not invoked when the handler has no AOF writer.
func (h *CommandHandler) SetChangeCallback(callback func()) {
	h.onChange = callback
}

// LogToAOF logs a write command to the AOF file. Called after
// successful command execution.
func (h *CommandHandler) LogToAOF(command string, args []string) {
	if h.aofWriter == nil {
		return
	}

	if !aof.IsWriteCommand(command) {
		return
	}

	if h.onChange != nil {
		h.onChange()
	}

	fullArgs := make([]string, 0, len(args)+1)
	fullArgs = append(fullArgs, command)
	fullArgs = append(fullArgs, args...)

	if err := h.aofWriter.WriteCommand(fullArgs); err != nil {
		log.Printf("AOF write error: %v", err)
	}
}

// registerCommands initializes the command map with all supported commands
func (h *CommandHandler) registerCommands() {
	h.commands = make(map[string]CommandFunc)

	h.registerStringCommands()
	h.registerSortedListCommands()
	h.registerPubSubCommands()
	h.registerLuaCommands()
}

// registerStringCommands registers all generic key commands
func (h *CommandHandler) registerStringCommands() {
	h.commands["PING"] = h.handlePing
	h.commands["ECHO"] = h.handleEcho
	h.commands["SET"] = h.handleSet
	h.commands["SETEX"] = h.handleSetEx
	h.commands["GET"] = h.handleGet
	h.commands["DEL"] = h.handleDel
	h.commands["EXISTS"] = h.handleExists
	h.commands["KEYS"] = h.handleKeys
	h.commands["FLUSHALL"] = h.handleFlushAll
	h.commands["COMMAND"] = h.handleCommand
	h.commands["EXPIRE"] = h.handleExpire
	h.commands["TTL"] = h.handleTTL
	h.commands["TYPE"] = h.handleType
	h.commands["INCR"] = h.handleIncr
	h.commands["DECR"] = h.handleDecr
	h.commands["INCRBY"] = h.handleIncrBy
	h.commands["DECRBY"] = h.handleDecrBy
}

// registerSortedListCommands registers the sorted collection commands
func (h *CommandHandler) registerSortedListCommands() {
	h.commands["SLADD"] = h.handleSLAdd
	h.commands["SLREM"] = h.handleSLRem
	h.commands["SLALL"] = h.handleSLAll
	h.commands["SLRANGE"] = h.handleSLRange
	h.commands["SLSEARCH"] = h.handleSLSearch
	h.commands["SLCARD"] = h.handleSLCard
}

// registerPubSubCommands registers all pub/sub commands
func (h *CommandHandler) registerPubSubCommands() {
	h.commands["PUBLISH"] = h.handlePublish
	h.commands["PUBSUB"] = h.handlePubSub
}

// registerLuaCommands registers scripting commands backed by the
// gopher-lua engine.
func (h *CommandHandler) registerLuaCommands() {
	h.commands["EVAL"] = h.handleEval
	h.commands["EVALSHA"] = h.handleEvalSHA
	h.commands["SCRIPT"] = h.handleScript
}

// Handle serves a single client connection, one command at a time,
// until the connection closes or ctx is cancelled. SUBSCRIBE and its
// relatives are intercepted here since they need the raw *Client to
// attach a subscriber and pump asynchronous messages.
func (h *CommandHandler) Handle(ctx context.Context, client *Client) {
	reader := bufio.NewReaderSize(client.Conn, h.readBufferSize)
	writer := bufio.NewWriterSize(client.Conn, h.writeBufferSize)

	readTimeout := h.readTimeout
	if readTimeout <= 0 {
		readTimeout = 60 * time.Second
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		client.Conn.SetReadDeadline(time.Now().Add(readTimeout))

		cmd, err := protocol.ParseCommand(reader)
		if err != nil {
			if err == io.EOF {
				return
			}
			response := protocol.EncodeError(fmt.Sprintf("ERR %v", err))
			writer.Write(response)
			writer.Flush()
			continue
		}

		client.Conn.SetReadDeadline(time.Time{})

		if len(cmd.Args) == 0 {
			continue
		}

		switch strings.ToUpper(cmd.Args[0]) {
		case "SUBSCRIBE":
			writer.Write(h.handleSubscribe(cmd, client))
			writer.Flush()
			h.StartMessagePump(ctx, client, client.Conn)
			continue
		case "PSUBSCRIBE":
			writer.Write(h.handlePSubscribe(cmd, client))
			writer.Flush()
			h.StartMessagePump(ctx, client, client.Conn)
			continue
		case "UNSUBSCRIBE":
			response := h.handleUnsubscribe(cmd, client)
			writer.Write(response)
			writer.Flush()
			continue
		case "PUNSUBSCRIBE":
			response := h.handlePUnsubscribe(cmd, client)
			writer.Write(response)
			writer.Flush()
			continue
		}

		start := time.Now()
		response := h.executeCommand(cmd)
		command := strings.ToUpper(cmd.Args[0])
		var cmdErr error
		if len(response) > 0 && response[0] == '-' {
			cmdErr = fmt.Errorf("%s", response)
		}
		metrics.RecordCommand(command, time.Since(start), cmdErr)

		if _, err := writer.Write(response); err != nil {
			return
		}
		if err := writer.Flush(); err != nil {
			return
		}

		if cmdErr == nil {
			h.LogToAOF(command, cmd.Args[1:])
		}
	}
}

func (h *CommandHandler) executeCommand(cmd *protocol.Command) []byte {
	if cmd == nil || len(cmd.Args) == 0 {
		return protocol.EncodeError("ERR empty command")
	}

	command := strings.ToUpper(cmd.Args[0])

	if handler, exists := h.commands[command]; exists {
		return handler(cmd)
	}

	return protocol.EncodeError(fmt.Sprintf("ERR unknown command '%s'", command))
}

// ExecuteCommand is an exported wrapper for executeCommand, used during
// AOF replay to execute commands without networking.
func (h *CommandHandler) ExecuteCommand(cmd *protocol.Command) []byte {
	return h.executeCommand(cmd)
}
