// Package server implements the control-plane server of the
// wireless-medium simulator: a Unix stream socket an external
// management client uses to mutate the simulated topology at runtime.
//
// # Architecture
//
// One goroutine owns the accept loop. Each accepted connection gets a
// dedicated worker goroutine that repeatedly reads a framed request,
// hands it to the dispatcher, and writes the response before reading
// the next request (strictly synchronous, no pipelining). All topology
// mutations funnel through topology.Gateway, whose single lock makes
// concurrent client mutations serialize.
//
// # Lifecycle
//
// Start binds the socket (removing a stale artifact first) and returns
// once listening. The accept phase ends when a worker observes a
// shutdown request on the wire or when the embedding process calls
// Stop; both funnel into one idempotent teardown that closes the
// listener and removes the socket file. Workers already in flight are
// not interrupted; they drain when their own loop exits, and Wait lets
// the embedder bound that drain.
//
// # Error Handling
//
// Accept failures are logged and the loop continues. A protocol error
// (unknown tag, truncated body) closes the offending connection without
// a response. A transport error on read or write closes that connection
// only. Not-found and duplicate outcomes are not errors; they travel
// back to the client as response result codes.
package server
