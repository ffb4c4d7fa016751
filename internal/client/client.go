package client

import (
	"fmt"
	"net"

	"github.com/wlansim/wmedium/internal/protocol"
)

// Client is a management connection to the control socket. Methods
// issue one request and block for its response; the protocol is
// strictly synchronous per connection, so a Client must not be shared
// between goroutines.
type Client struct {
	conn net.Conn
}

// Dial connects to the control socket at the given path.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to control socket %s: %w", socketPath, err)
	}
	return &Client{conn: conn}, nil
}

// Close closes the control connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// roundTrip sends one request and reads the one response it yields.
func (c *Client) roundTrip(req protocol.Request) (protocol.Response, error) {
	if err := protocol.WriteRequest(c.conn, req); err != nil {
		return nil, err
	}
	resp, err := protocol.ReadResponse(c.conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", req.Tag(), err)
	}
	if resp.Tag() != req.Tag() {
		return nil, fmt.Errorf("response tag %s does not match request %s", resp.Tag(), req.Tag())
	}
	return resp, nil
}

// UpdateLink sets the signal quality for the directed pair from -> to.
func (c *Client) UpdateLink(from, to protocol.MAC, snr int32) (protocol.UpdateLinkResponse, error) {
	resp, err := c.roundTrip(protocol.UpdateLinkRequest{From: from, To: to, SNR: snr})
	if err != nil {
		return protocol.UpdateLinkResponse{}, err
	}
	return resp.(protocol.UpdateLinkResponse), nil
}

// AddStation registers a new station and returns the response carrying
// its assigned id.
func (c *Client) AddStation(addr protocol.MAC) (protocol.AddStationResponse, error) {
	resp, err := c.roundTrip(protocol.AddStationRequest{Addr: addr})
	if err != nil {
		return protocol.AddStationResponse{}, err
	}
	return resp.(protocol.AddStationResponse), nil
}

// DeleteByID removes the station with the given id.
func (c *Client) DeleteByID(id uint32) (protocol.DeleteByIDResponse, error) {
	resp, err := c.roundTrip(protocol.DeleteByIDRequest{ID: id})
	if err != nil {
		return protocol.DeleteByIDResponse{}, err
	}
	return resp.(protocol.DeleteByIDResponse), nil
}

// DeleteByMAC removes the station with the given address.
func (c *Client) DeleteByMAC(addr protocol.MAC) (protocol.DeleteByMACResponse, error) {
	resp, err := c.roundTrip(protocol.DeleteByMACRequest{Addr: addr})
	if err != nil {
		return protocol.DeleteByMACResponse{}, err
	}
	return resp.(protocol.DeleteByMACResponse), nil
}

// Shutdown asks the server to stop accepting connections. The request
// has no response; the socket is closed by the far side once the
// acceptor is down.
func (c *Client) Shutdown() error {
	return protocol.WriteRequest(c.conn, protocol.ShutdownRequest{})
}
