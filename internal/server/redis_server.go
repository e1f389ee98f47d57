package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"redis/internal/aof"
	"redis/internal/config"
	"redis/internal/handler"
	"redis/internal/metrics"
	"redis/internal/processor"
	"redis/internal/protocol"
	"redis/internal/ratelimit"
	"redis/internal/storage"
)

// RedisServer accepts connections and dispatches commands against a
// single in-process store.
type RedisServer struct {
	config          config.AppConfig
	listener        net.Listener
	processor       *processor.Processor
	handler         *handler.CommandHandler
	aofWriter       *aof.Writer
	limiter         *ratelimit.Limiter
	connections     sync.Map
	connIDCounter   atomic.Int64
	activeConnCount atomic.Int64
	wg              sync.WaitGroup
	shutdownChan    chan struct{}
	mu              sync.RWMutex
	isShutdown      bool
}

// NewRedisServer creates a new server instance from cfg, loading any
// existing AOF file before accepting connections.
func NewRedisServer(cfg config.AppConfig) *RedisServer {
	store := storage.NewStore()
	store.SetNotifyConfig(storage.ParseNotifyFlags(cfg.Notify.Flags))
	proc := processor.NewProcessor(store)

	var aofWriter *aof.Writer
	var err error
	if cfg.AOF.Enabled {
		aofWriter, err = aof.NewWriter(cfg.AOF)
		if err != nil {
			log.Printf("Warning: Failed to create AOF writer: %v", err)
			log.Printf("Continuing without AOF persistence")
			aofWriter = nil
		} else {
			log.Printf("AOF enabled: %s (sync: %s)", cfg.AOF.Filepath, syncPolicyName(cfg.AOF.SyncPolicy))
		}
	}

	handlerConfig := handler.HandlerConfig{
		ReadBufferSize:  cfg.Server.ReadBufferSize,
		WriteBufferSize: cfg.Server.WriteBufferSize,
		ReadTimeout:     cfg.Server.ReadTimeout,
	}
	cmdHandler := handler.NewCommandHandler(proc, handlerConfig, aofWriter)
	cmdHandler.SetChangeCallback(func() {})

	s := &RedisServer{
		config:       cfg,
		processor:    proc,
		handler:      cmdHandler,
		aofWriter:    aofWriter,
		limiter:      ratelimit.New(cfg.RateLimit),
		shutdownChan: make(chan struct{}),
	}

	if cfg.AOF.Enabled {
		if err := s.loadAOF(); err != nil {
			log.Printf("Warning: Failed to load AOF: %v", err)
			log.Printf("Starting with empty database")
		}
	}

	metrics.Start(cfg.Metrics)

	return s
}

// syncPolicyName returns a human-readable name for the sync policy
func syncPolicyName(policy aof.SyncPolicy) string {
	switch policy {
	case aof.SyncAlways:
		return "always"
	case aof.SyncEverySecond:
		return "everysec"
	case aof.SyncNo:
		return "no"
	default:
		return "unknown"
	}
}

// loadAOF loads and replays commands from the AOF file
func (s *RedisServer) loadAOF() error {
	startTime := time.Now()

	reader, err := aof.NewReader(s.config.AOF.Filepath)
	if err != nil {
		return fmt.Errorf("failed to create AOF reader: %w", err)
	}
	if reader == nil {
		log.Println("No AOF file found, starting with empty database")
		return nil
	}
	defer reader.Close()

	log.Printf("Loading AOF file: %s", s.config.AOF.Filepath)

	commands, err := reader.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load AOF commands: %w", err)
	}

	errorCount := 0
	for _, cmd := range commands {
		if err := s.executeCommand(cmd); err != nil {
			log.Printf("AOF replay error for command %v: %v", cmd, err)
			errorCount++
		}
	}

	duration := time.Since(startTime)
	log.Printf("AOF loaded: %d commands replayed in %v", len(commands), duration)
	if errorCount > 0 {
		log.Printf("Warning: %d errors during AOF replay", errorCount)
	}

	return nil
}

// executeCommand executes a single command during AOF replay
func (s *RedisServer) executeCommand(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}

	cmd := &protocol.Command{Args: args}
	response := s.handler.ExecuteCommand(cmd)

	if len(response) > 0 && response[0] == '-' {
		return fmt.Errorf("command failed: %s", string(response))
	}

	return nil
}

// Start starts the server's accept loop and blocks until ctx is done.
func (s *RedisServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start listener: %w", err)
	}

	s.listener = listener
	log.Printf("Redis server listening on %s", addr)

	go s.acceptConnections(ctx)

	<-ctx.Done()
	return nil
}

func (s *RedisServer) acceptConnections(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.shutdownChan:
			return
		default:
			conn, err := s.listener.Accept()
			if err != nil {
				s.mu.RLock()
				if s.isShutdown {
					s.mu.RUnlock()
					return
				}
				s.mu.RUnlock()
				log.Printf("Error accepting connection: %v", err)
				continue
			}

			if s.activeConnCount.Load() >= int64(s.config.Server.MaxConnections) {
				log.Printf("Max connections reached, rejecting connection from %s", conn.RemoteAddr())
				metrics.RecordConnectionRejected("max_connections")
				conn.Close()
				continue
			}

			ip, _, _ := net.SplitHostPort(conn.RemoteAddr().String())
			if !s.limiter.Allow(ip) {
				metrics.RecordConnectionRejected("rate_limit")
				conn.Close()
				continue
			}

			s.wg.Add(1)
			go s.handleConnection(ctx, conn)
		}
	}
}

func (s *RedisServer) handleConnection(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()

	connID := s.connIDCounter.Add(1)
	s.activeConnCount.Add(1)
	metrics.SetActiveConnections(int(s.activeConnCount.Load()))
	defer func() {
		s.activeConnCount.Add(-1)
		metrics.SetActiveConnections(int(s.activeConnCount.Load()))
	}()

	s.connections.Store(connID, conn)
	defer s.connections.Delete(connID)
	defer conn.Close()

	startTime := time.Now()

	client := &handler.Client{
		ID:   connID,
		Conn: conn,
	}

	s.handler.Handle(ctx, client)

	duration := time.Since(startTime)
	if duration > 2*time.Second {
		log.Printf("Connection [%d] from %s closed after %v", connID, conn.RemoteAddr(), duration.Round(time.Second))
	}
}

// Shutdown gracefully shuts down the server
func (s *RedisServer) Shutdown() {
	s.mu.Lock()
	if s.isShutdown {
		s.mu.Unlock()
		return
	}
	s.isShutdown = true
	s.mu.Unlock()

	log.Println("Initiating graceful shutdown...")

	close(s.shutdownChan)
	s.limiter.Stop()

	if s.listener != nil {
		s.listener.Close()
	}

	s.connections.Range(func(key, value interface{}) bool {
		if conn, ok := value.(net.Conn); ok {
			conn.Close()
		}
		return true
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("All connections closed gracefully")
	case <-time.After(5 * time.Second):
		log.Println("Shutdown timeout reached, forcing exit")
	}

	if s.aofWriter != nil {
		log.Println("Closing AOF writer...")
		if err := s.aofWriter.Close(); err != nil {
			log.Printf("Error closing AOF writer: %v", err)
		} else {
			log.Println("AOF writer closed successfully")
		}
	}

	if s.processor != nil {
		s.processor.Shutdown()
	}

	log.Println("Redis server shutdown complete")
}
