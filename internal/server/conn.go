package server

import (
	"errors"
	"fmt"
	"io"
	"net"

	"go.uber.org/zap"

	"github.com/wlansim/wmedium/internal/logging"
	"github.com/wlansim/wmedium/internal/protocol"
)

// handleConnection runs one worker: the full protocol lifecycle of a
// single accepted connection. The worker owns the socket exclusively,
// blocks on reads until data, EOF, or error arrives, and never retries
// a failed read or write. Any exit closes the socket.
func (s *Server) handleConnection(conn net.Conn) {
	client := fmt.Sprintf("conn-%d", s.connSeq.Add(1))

	s.metrics.ConnOpened()
	logging.LogConnection(client, "connection_accepted")

	defer func() {
		_ = conn.Close()
		s.metrics.ConnClosed()
		logging.LogConnection(client, "connection_closed")
	}()

	for {
		logging.Debug("Waiting for request", zap.String("client", client))

		req, err := protocol.ReadRequest(conn)
		if err != nil {
			if errors.Is(err, io.EOF) {
				logging.LogConnection(client, "client_disconnected")
				return
			}
			if errors.Is(err, protocol.ErrUnknownTag) || errors.Is(err, protocol.ErrShortMessage) {
				// Protocol error: close without a response.
				s.metrics.ObserveProtocolError()
				logging.Warn("Disconnecting client after protocol error",
					zap.String("client", client),
					zap.Error(err),
				)
				return
			}
			s.metrics.ObserveTransportError()
			logging.Error("Disconnecting client after read error",
				zap.String("client", client),
				zap.Error(err),
			)
			return
		}

		if _, ok := req.(protocol.ShutdownRequest); ok {
			// No response; stop the acceptor and let other workers drain.
			logging.Info("Closing server on shutdown request",
				zap.String("client", client),
			)
			s.metrics.ObserveRequest(protocol.TagShutdown.String(), protocol.ResultSuccess.String())
			s.Stop()
			return
		}

		if err := s.dispatch(conn, client, req); err != nil {
			s.metrics.ObserveTransportError()
			logging.Error("Disconnecting client after response error",
				zap.String("client", client),
				zap.Error(err),
			)
			return
		}
	}
}
