package processor

import (
	"context"
	"fmt"
	"time"

	"redis/internal/storage"
)

type CommandType int

const (
	CmdSet CommandType = iota
	CmdGet
	CmdDelete
	CmdExists
	CmdKeys
	CmdFlush
	CmdCleanup
	CmdExpire
	CmdTTL
	CmdIncr
	CmdIncrBy
	CmdDecr
	CmdDecrBy
	CmdType
	// Sorted list commands
	CmdSLAdd
	CmdSLRem
	CmdSLAll
	CmdSLRange
	CmdSLSearch
	CmdSLCard
	// Pub/Sub commands
	CmdPublish
	CmdPubSubChannels
	CmdPubSubNumSub
	CmdPubSubNumPat
	CmdSubscribe
	CmdUnsubscribe
	CmdPSubscribe
	CmdPUnsubscribe
)

// Result types for command responses
type IntResult struct {
	Result int
	Err    error
}

type GetResult struct {
	Value  interface{}
	Exists bool
}

type Int64Result struct {
	Result int64
	Err    error
}

// EntriesResult carries a (score, member) list for SLALL/SLRANGE/SLSEARCH.
type EntriesResult struct {
	Entries []storage.Entry
	Err     error
}

type Command struct {
	Type     CommandType
	Key      string
	Value    interface{}
	Expiry   *time.Time
	Args     []interface{} // Additional arguments for complex commands
	ClientID int64         // Client ID for pub/sub subscriptions
	Response chan interface{}
}

// GetSubscriberID returns a string representation of the client ID for pub/sub
func (c *Command) GetSubscriberID() string {
	if c.ClientID == 0 {
		return "default"
	}
	return fmt.Sprintf("client:%d", c.ClientID)
}

// CommandExecutor is a function type for command executors
type CommandExecutor func(cmd *Command)

type Processor struct {
	store       *storage.Store
	commandChan chan *Command
	ctx         context.Context
	cancel      context.CancelFunc
	executors   map[CommandType]CommandExecutor
}

func NewProcessor(store *storage.Store) *Processor {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Processor{
		store:       store,
		commandChan: make(chan *Command, 1000),
		ctx:         ctx,
		cancel:      cancel,
	}
	p.registerExecutors()
	go p.run()
	go p.periodicCleanup()
	return p
}

// GetStore returns the underlying store (for pub/sub cleanup)
func (p *Processor) GetStore() *storage.Store {
	return p.store
}

// registerExecutors initializes the executor map
func (p *Processor) registerExecutors() {
	p.executors = make(map[CommandType]CommandExecutor)

	p.registerStringExecutors()
	p.registerSortedListExecutors()
	p.registerPubSubExecutors()
}

// registerStringExecutors registers the generic key-surface executors
func (p *Processor) registerStringExecutors() {
	stringCmds := []CommandType{
		CmdSet, CmdGet, CmdDelete, CmdExists,
		CmdKeys, CmdFlush, CmdCleanup, CmdExpire, CmdTTL,
		CmdIncr, CmdIncrBy, CmdDecr, CmdDecrBy, CmdType,
	}
	for _, cmdType := range stringCmds {
		p.executors[cmdType] = p.executeStringCommand
	}
}

// registerSortedListExecutors registers the sorted list command executors
func (p *Processor) registerSortedListExecutors() {
	slCmds := []CommandType{
		CmdSLAdd, CmdSLRem, CmdSLAll, CmdSLRange, CmdSLSearch, CmdSLCard,
	}
	for _, cmdType := range slCmds {
		p.executors[cmdType] = p.executeSortedListCommand
	}
}

// registerPubSubExecutors registers pub/sub command executors
func (p *Processor) registerPubSubExecutors() {
	pubsubCmds := []CommandType{
		CmdPublish, CmdPubSubChannels, CmdPubSubNumSub, CmdPubSubNumPat,
		CmdSubscribe, CmdUnsubscribe, CmdPSubscribe, CmdPUnsubscribe,
	}
	for _, cmdType := range pubsubCmds {
		p.executors[cmdType] = p.executePubSubCommand
	}
}

func (p *Processor) run() {
	for {
		select {
		case <-p.ctx.Done():
			// Drain remaining commands before exiting
			p.drainCommands()
			return
		case cmd, ok := <-p.commandChan:
			if !ok {
				return
			}
			p.executeCommand(cmd)
		}
	}
}

func (p *Processor) drainCommands() {
	for {
		select {
		case cmd, ok := <-p.commandChan:
			if !ok {
				// Channel closed by Shutdown
				return
			}
			p.executeCommand(cmd)
		default:
			// Channel empty
			return
		}
	}
}

func (p *Processor) executeCommand(cmd *Command) {
	if executor, exists := p.executors[cmd.Type]; exists {
		executor(cmd)
	}
}

func (p *Processor) periodicCleanup() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			cmd := &Command{
				Type:     CmdCleanup,
				Response: make(chan interface{}, 1),
			}
			p.commandChan <- cmd
			<-cmd.Response
		}
	}
}

func (p *Processor) Submit(cmd *Command) {
	p.commandChan <- cmd
}

func (p *Processor) Shutdown() {
	p.cancel()
	close(p.commandChan)
}
