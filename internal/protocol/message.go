package protocol

import (
	"fmt"
	"net"
)

// MACLen is the length of a station hardware address on the wire.
const MACLen = 6

// MAC is a 6-byte station hardware address.
type MAC [MACLen]byte

// ParseMAC parses a textual hardware address (e.g. "aa:bb:cc:dd:ee:01").
// Only 48-bit addresses are accepted.
func ParseMAC(s string) (MAC, error) {
	var mac MAC
	hw, err := net.ParseMAC(s)
	if err != nil {
		return mac, fmt.Errorf("invalid hardware address %q: %w", s, err)
	}
	if len(hw) != MACLen {
		return mac, fmt.Errorf("invalid hardware address %q: want %d bytes, got %d", s, MACLen, len(hw))
	}
	copy(mac[:], hw)
	return mac, nil
}

// String returns the canonical colon-separated form.
func (m MAC) String() string {
	return net.HardwareAddr(m[:]).String()
}

// Tag is the message discriminant carried in the one-byte header.
// Requests and responses share the same tag space; direction is implied
// by which side is reading.
type Tag byte

const (
	TagShutdown    Tag = 0x01
	TagUpdateLink  Tag = 0x02
	TagAddStation  Tag = 0x03
	TagDeleteByID  Tag = 0x04
	TagDeleteByMAC Tag = 0x05
)

// String returns a human-readable tag name
func (t Tag) String() string {
	switch t {
	case TagShutdown:
		return "shutdown"
	case TagUpdateLink:
		return "update_link"
	case TagAddStation:
		return "add_station"
	case TagDeleteByID:
		return "delete_by_id"
	case TagDeleteByMAC:
		return "delete_by_mac"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(t))
	}
}

// Result is the outcome code carried in every response body.
type Result byte

const (
	ResultSuccess   Result = 0x00
	ResultNotFound  Result = 0x01
	ResultDuplicate Result = 0x02
)

// String returns a human-readable result name
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultNotFound:
		return "not_found"
	case ResultDuplicate:
		return "duplicate"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(r))
	}
}

// Request is a decoded client-to-server message.
type Request interface {
	Tag() Tag
}

// Response is a decoded server-to-client message. Every response echoes
// the fields of the request it answers plus a result code.
type Response interface {
	Tag() Tag
	Code() Result
}

// ShutdownRequest asks the server to stop accepting new connections.
// It has no body and never receives a response.
type ShutdownRequest struct{}

func (ShutdownRequest) Tag() Tag { return TagShutdown }

// UpdateLinkRequest sets the signal quality for the directed pair
// (From -> To).
type UpdateLinkRequest struct {
	From MAC
	To   MAC
	SNR  int32
}

func (UpdateLinkRequest) Tag() Tag { return TagUpdateLink }

// UpdateLinkResponse echoes an UpdateLinkRequest with its outcome.
type UpdateLinkResponse struct {
	UpdateLinkRequest
	Result Result
}

func (r UpdateLinkResponse) Code() Result { return r.Result }

// AddStationRequest registers a new station with the given address.
type AddStationRequest struct {
	Addr MAC
}

func (AddStationRequest) Tag() Tag { return TagAddStation }

// AddStationResponse echoes an AddStationRequest with the id assigned
// to the new station. CreatedID is zero when the result is not Success.
type AddStationResponse struct {
	AddStationRequest
	CreatedID uint32
	Result    Result
}

func (r AddStationResponse) Code() Result { return r.Result }

// DeleteByIDRequest removes the station with the given id.
type DeleteByIDRequest struct {
	ID uint32
}

func (DeleteByIDRequest) Tag() Tag { return TagDeleteByID }

// DeleteByIDResponse echoes a DeleteByIDRequest with its outcome.
type DeleteByIDResponse struct {
	DeleteByIDRequest
	Result Result
}

func (r DeleteByIDResponse) Code() Result { return r.Result }

// DeleteByMACRequest removes the station with the given address.
type DeleteByMACRequest struct {
	Addr MAC
}

func (DeleteByMACRequest) Tag() Tag { return TagDeleteByMAC }

// DeleteByMACResponse echoes a DeleteByMACRequest with its outcome.
type DeleteByMACResponse struct {
	DeleteByMACRequest
	Result Result
}

func (r DeleteByMACResponse) Code() Result { return r.Result }
