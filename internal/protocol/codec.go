package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Protocol errors. Both terminate the offending connection without a
// response; they are never answered on the wire.
var (
	// ErrUnknownTag reports a header byte outside the declared tag set.
	ErrUnknownTag = errors.New("unknown message tag")
	// ErrShortMessage reports a stream that closed inside a message body.
	ErrShortMessage = errors.New("short message body")
)

// Fixed body lengths implied by the tag. There are no variable-length
// fields, so framing is "read one tag byte, then the body this table
// declares".
var requestBodyLen = map[Tag]int{
	TagShutdown:    0,
	TagUpdateLink:  MACLen + MACLen + 4,
	TagAddStation:  MACLen,
	TagDeleteByID:  4,
	TagDeleteByMAC: MACLen,
}

var responseBodyLen = map[Tag]int{
	TagUpdateLink:  MACLen + MACLen + 4 + 1,
	TagAddStation:  MACLen + 4 + 1,
	TagDeleteByID:  4 + 1,
	TagDeleteByMAC: MACLen + 1,
}

// RequestBodyLen returns the fixed request body length for a tag.
// The second return is false for tags outside the declared set.
func RequestBodyLen(tag Tag) (int, bool) {
	n, ok := requestBodyLen[tag]
	return n, ok
}

// ResponseBodyLen returns the fixed response body length for a tag.
// Shutdown has no response, so it is absent from this direction.
func ResponseBodyLen(tag Tag) (int, bool) {
	n, ok := responseBodyLen[tag]
	return n, ok
}

// ReadRequest reads one framed request from r.
//
// A clean disconnect at a message boundary surfaces as io.EOF. A stream
// that ends mid-message returns ErrShortMessage; a header byte outside
// the tag set returns ErrUnknownTag. All integers are big-endian.
func ReadRequest(r io.Reader) (Request, error) {
	tag, body, err := readFrame(r, requestBodyLen)
	if err != nil {
		return nil, err
	}
	return DecodeRequest(tag, body)
}

// ReadResponse reads one framed response from r. Used by clients; the
// error conventions match ReadRequest.
func ReadResponse(r io.Reader) (Response, error) {
	tag, body, err := readFrame(r, responseBodyLen)
	if err != nil {
		return nil, err
	}
	return DecodeResponse(tag, body)
}

// readFrame reads the one-byte header and the fixed-size body the given
// length table implies for it.
func readFrame(r io.Reader, lengths map[Tag]int) (Tag, []byte, error) {
	var header [1]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF {
			// Zero bytes at a message boundary: clean disconnect.
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("failed to read message header: %w", err)
	}

	tag := Tag(header[0])
	n, ok := lengths[tag]
	if !ok {
		return 0, nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, header[0])
	}
	if n == 0 {
		return tag, nil, nil
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, nil, fmt.Errorf("%w: %s truncated", ErrShortMessage, tag)
		}
		return 0, nil, fmt.Errorf("failed to read %s body: %w", tag, err)
	}
	return tag, body, nil
}

// DecodeRequest decodes a request body for the given tag. The body must
// be exactly the length RequestBodyLen declares.
func DecodeRequest(tag Tag, body []byte) (Request, error) {
	n, ok := requestBodyLen[tag]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, byte(tag))
	}
	if len(body) != n {
		return nil, fmt.Errorf("%w: %s body is %d bytes, want %d", ErrShortMessage, tag, len(body), n)
	}

	switch tag {
	case TagShutdown:
		return ShutdownRequest{}, nil
	case TagUpdateLink:
		var req UpdateLinkRequest
		copy(req.From[:], body[0:MACLen])
		copy(req.To[:], body[MACLen:2*MACLen])
		req.SNR = int32(binary.BigEndian.Uint32(body[2*MACLen:]))
		return req, nil
	case TagAddStation:
		var req AddStationRequest
		copy(req.Addr[:], body)
		return req, nil
	case TagDeleteByID:
		return DeleteByIDRequest{ID: binary.BigEndian.Uint32(body)}, nil
	case TagDeleteByMAC:
		var req DeleteByMACRequest
		copy(req.Addr[:], body)
		return req, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, byte(tag))
	}
}

// DecodeResponse decodes a response body for the given tag.
func DecodeResponse(tag Tag, body []byte) (Response, error) {
	n, ok := responseBodyLen[tag]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, byte(tag))
	}
	if len(body) != n {
		return nil, fmt.Errorf("%w: %s body is %d bytes, want %d", ErrShortMessage, tag, len(body), n)
	}

	switch tag {
	case TagUpdateLink:
		var resp UpdateLinkResponse
		copy(resp.From[:], body[0:MACLen])
		copy(resp.To[:], body[MACLen:2*MACLen])
		resp.SNR = int32(binary.BigEndian.Uint32(body[2*MACLen : 2*MACLen+4]))
		resp.Result = Result(body[2*MACLen+4])
		return resp, nil
	case TagAddStation:
		var resp AddStationResponse
		copy(resp.Addr[:], body[0:MACLen])
		resp.CreatedID = binary.BigEndian.Uint32(body[MACLen : MACLen+4])
		resp.Result = Result(body[MACLen+4])
		return resp, nil
	case TagDeleteByID:
		return DeleteByIDResponse{
			DeleteByIDRequest: DeleteByIDRequest{ID: binary.BigEndian.Uint32(body[0:4])},
			Result:            Result(body[4]),
		}, nil
	case TagDeleteByMAC:
		var resp DeleteByMACResponse
		copy(resp.Addr[:], body[0:MACLen])
		resp.Result = Result(body[MACLen])
		return resp, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownTag, byte(tag))
	}
}

// EncodeRequest encodes a request as header plus fixed body.
func EncodeRequest(req Request) []byte {
	buf := []byte{byte(req.Tag())}
	switch r := req.(type) {
	case ShutdownRequest:
		// Tag only.
	case UpdateLinkRequest:
		buf = append(buf, r.From[:]...)
		buf = append(buf, r.To[:]...)
		buf = binary.BigEndian.AppendUint32(buf, uint32(r.SNR))
	case AddStationRequest:
		buf = append(buf, r.Addr[:]...)
	case DeleteByIDRequest:
		buf = binary.BigEndian.AppendUint32(buf, r.ID)
	case DeleteByMACRequest:
		buf = append(buf, r.Addr[:]...)
	}
	return buf
}

// EncodeResponse encodes a response as header plus fixed body.
func EncodeResponse(resp Response) []byte {
	buf := []byte{byte(resp.Tag())}
	switch r := resp.(type) {
	case UpdateLinkResponse:
		buf = append(buf, r.From[:]...)
		buf = append(buf, r.To[:]...)
		buf = binary.BigEndian.AppendUint32(buf, uint32(r.SNR))
		buf = append(buf, byte(r.Result))
	case AddStationResponse:
		buf = append(buf, r.Addr[:]...)
		buf = binary.BigEndian.AppendUint32(buf, r.CreatedID)
		buf = append(buf, byte(r.Result))
	case DeleteByIDResponse:
		buf = binary.BigEndian.AppendUint32(buf, r.ID)
		buf = append(buf, byte(r.Result))
	case DeleteByMACResponse:
		buf = append(buf, r.Addr[:]...)
		buf = append(buf, byte(r.Result))
	}
	return buf
}

// WriteRequest encodes req and writes it to w in a single call, so a
// worker on the far side never observes a torn header.
func WriteRequest(w io.Writer, req Request) error {
	if _, err := w.Write(EncodeRequest(req)); err != nil {
		return fmt.Errorf("failed to write %s request: %w", req.Tag(), err)
	}
	return nil
}

// WriteResponse encodes resp and writes it to w in a single call. The
// write is fully flushed before the caller may read the next request.
func WriteResponse(w io.Writer, resp Response) error {
	if _, err := w.Write(EncodeResponse(resp)); err != nil {
		return fmt.Errorf("failed to write %s response: %w", resp.Tag(), err)
	}
	return nil
}
