package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/wlansim/wmedium/internal/logging"
	"github.com/wlansim/wmedium/internal/observability"
	"github.com/wlansim/wmedium/internal/topology"
)

// DefaultSocketPath is the well-known control socket location.
const DefaultSocketPath = "/var/run/wmedium.sock"

// Config holds the control server configuration
type Config struct {
	// SocketPath is where the Unix stream socket is bound. Empty means
	// DefaultSocketPath.
	SocketPath string
}

// Server owns the listening endpoint and the accept loop of the control
// channel. Each accepted connection gets one dedicated worker goroutine
// running a blocking receive/dispatch/respond loop; the topology gateway
// serializes their mutations.
type Server struct {
	config  *Config
	gw      *topology.Gateway
	metrics *observability.Collector

	listener net.Listener
	wg       sync.WaitGroup
	connSeq  atomic.Uint64

	teardown sync.Once
	done     chan struct{}
}

// New creates a control server over the given gateway. metrics may be
// nil to run without instrumentation.
func New(config *Config, gw *topology.Gateway, metrics *observability.Collector) *Server {
	if config == nil {
		config = &Config{}
	}
	if config.SocketPath == "" {
		config.SocketPath = DefaultSocketPath
	}
	return &Server{
		config:  config,
		gw:      gw,
		metrics: metrics,
		done:    make(chan struct{}),
	}
}

// SocketPath returns the path the control socket is bound to.
func (s *Server) SocketPath() string {
	return s.config.SocketPath
}

// Start binds the control socket and launches the accept loop. It
// returns once the server is listening, or with the bind failure. The
// server does not retry a failed bind.
func (s *Server) Start() error {
	// Clean up a stale socket from an earlier run.
	if err := os.Remove(s.config.SocketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale socket %s: %w", s.config.SocketPath, err)
	}

	listener, err := net.Listen("unix", s.config.SocketPath)
	if err != nil {
		return fmt.Errorf("failed to bind control socket %s: %w", s.config.SocketPath, err)
	}
	s.listener = listener

	logging.Info("Control server listening",
		zap.String("socket", s.config.SocketPath),
	)

	go s.acceptLoop()
	return nil
}

// acceptLoop accepts connections until the listener is torn down. An
// accept failure on a live listener is logged and the loop continues;
// only teardown ends it.
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			logging.Error("Failed to accept connection", zap.Error(err))
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// Done is closed once the server has stopped accepting connections,
// whether by a shutdown request on the wire or an external Stop. The
// embedding process selects on it alongside its signal context.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Stop tears the acceptor down: stop accepting, close the listening
// socket, remove its filesystem artifact. Safe to call any number of
// times and from either trigger (protocol shutdown or process signal).
// Connections already accepted are not closed; their workers drain
// naturally. Use Wait to bound that drain.
func (s *Server) Stop() {
	s.teardown.Do(func() {
		logging.Info("Shutting down control server",
			zap.String("socket", s.config.SocketPath),
		)
		close(s.done)
		if s.listener != nil {
			if err := s.listener.Close(); err != nil {
				logging.Error("Error closing listener", zap.Error(err))
			}
		}
		if err := os.Remove(s.config.SocketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			logging.Error("Error removing control socket",
				zap.String("socket", s.config.SocketPath),
				zap.Error(err),
			)
		}
	})
}

// Wait blocks until every in-flight worker has exited or the context
// expires.
func (s *Server) Wait(ctx context.Context) error {
	drained := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(10 * time.Second):
		return errors.New("timed out waiting for control connections to drain")
	}
}
