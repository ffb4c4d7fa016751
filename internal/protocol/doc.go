// Package protocol implements the wmedium control-channel wire format.
//
// This package handles parsing, validation, and construction of the binary
// messages a management client uses to mutate the simulated topology at
// runtime: adjusting link quality between two stations, registering new
// stations, and removing them.
//
// # Wire Format
//
// Every message is a one-byte tag followed by a fixed-size body; the tag
// alone implies the body length, so framing never needs a length field.
// All multi-byte integers are big-endian. Hardware addresses are exactly
// 6 bytes. Requests and responses share the tag space:
//
//	Tag               Request body              Response body
//	0x01 shutdown     (none)                    (no response)
//	0x02 update_link  from(6) to(6) snr(4)      request + result(1)
//	0x03 add_station  addr(6)                   addr(6) id(4) result(1)
//	0x04 delete_by_id id(4)                     id(4) result(1)
//	0x05 delete_by_mac addr(6)                  addr(6) result(1)
//
// Every response echoes the request it answers plus a one-byte result
// code: 0x00 success, 0x01 not found, 0x02 duplicate.
//
// # Framing Semantics
//
// A read that returns zero bytes at a message boundary is a clean
// disconnect and surfaces as io.EOF. A stream that closes inside a
// message yields ErrShortMessage, and a tag outside the declared set
// yields ErrUnknownTag; both are protocol errors that must close the
// connection without a response.
//
// # Usage Example
//
//	req, err := protocol.ReadRequest(conn)
//	if err == io.EOF {
//	    return // client disconnected cleanly
//	}
//	if err != nil {
//	    return // protocol or transport error, close without response
//	}
//	switch r := req.(type) {
//	case protocol.UpdateLinkRequest:
//	    // resolve r.From / r.To, write matrix cell, respond
//	}
//
// # Thread Safety
//
// All encoding and decoding functions are stateless and safe for
// concurrent use. Reads and writes on one connection must not be
// interleaved by multiple goroutines; the server gives each connection
// a single worker, which makes request/response strictly synchronous.
package protocol
