// Package logging provides structured logging for the wmedium control server.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the server. It provides both general logging
// functions and specialized functions for control-plane logging needs.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (hex dumps, message framing)
//   - Info: Normal operations (connections, requests, topology changes)
//   - Warn: Non-fatal issues (not-found or duplicate requests, accept errors)
//   - Error: Fatal issues (bind failures, transport errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Station added",
//	    zap.String("addr", "aa:aa:aa:aa:aa:01"),
//	    zap.Uint32("id", 1),
//	)
//
// # Specialized Logging
//
// Connection logging:
//
//	logging.LogConnection(client, "connection_accepted")
//	logging.LogConnection(client, "connection_closed")
//
// Request logging:
//
//	logging.LogRequest(client, "update_link", "success")
//
// # Configuration
//
// Initialize logging at server startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When no level is given, the WMEDIUM_LOG_LEVEL environment variable is
// consulted; if that is also unset, logging is silent. This keeps the CLI
// tools quiet by default while letting the daemon log at full verbosity.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
