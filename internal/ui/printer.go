package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/wlansim/wmedium/internal/protocol"
)

// Printer renders styled wmediumctl output to a writer.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Println writes a line to the output
func (p *Printer) Println(content string) {
	fmt.Fprintln(p.out, content)
}

// Response renders a control response as a marker line plus detail rows.
func (p *Printer) Response(resp protocol.Response) {
	p.Println(resultLine(resp.Code()))

	switch r := resp.(type) {
	case protocol.UpdateLinkResponse:
		p.detail("From", r.From.String())
		p.detail("To", r.To.String())
		p.detail("SNR", fmt.Sprintf("%d dB", r.SNR))
	case protocol.AddStationResponse:
		p.detail("Station", r.Addr.String())
		if r.Result == protocol.ResultSuccess {
			p.detail("ID", fmt.Sprintf("%d", r.CreatedID))
		}
	case protocol.DeleteByIDResponse:
		p.detail("ID", fmt.Sprintf("%d", r.ID))
	case protocol.DeleteByMACResponse:
		p.detail("Station", r.Addr.String())
	}
}

// Failure renders a transport or protocol failure.
func (p *Printer) Failure(err error) {
	p.Println(ErrorStyle.Render(fmt.Sprintf("%s %v", FailureMarker, err)))
}

func (p *Printer) detail(key, value string) {
	p.Println("  " + KeyStyle.Render(key) + ValueStyle.Render(value))
}

func resultLine(code protocol.Result) string {
	switch code {
	case protocol.ResultSuccess:
		return SuccessStyle.Render(fmt.Sprintf("%s success", SuccessMarker))
	case protocol.ResultNotFound:
		return WarnStyle.Render(fmt.Sprintf("%s station not found", FailureMarker))
	case protocol.ResultDuplicate:
		return WarnStyle.Render(fmt.Sprintf("%s station already exists", FailureMarker))
	default:
		return ErrorStyle.Render(fmt.Sprintf("%s %s", FailureMarker, code))
	}
}
