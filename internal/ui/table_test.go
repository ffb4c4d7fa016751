package ui

import (
	"strings"
	"testing"

	"github.com/wlansim/wmedium/internal/medium"
	"github.com/wlansim/wmedium/internal/protocol"
	"github.com/wlansim/wmedium/internal/topology"
)

func mustMAC(t *testing.T, s string) protocol.MAC {
	t.Helper()
	mac, err := protocol.ParseMAC(s)
	if err != nil {
		t.Fatalf("ParseMAC(%q) failed: %v", s, err)
	}
	return mac
}

func TestRenderTopologyEmpty(t *testing.T) {
	gw := topology.New(medium.New(0))
	out := RenderTopology(gw.Snapshot())

	if !strings.Contains(out, "no stations") {
		t.Errorf("expected empty-topology marker, got:\n%s", out)
	}
}

func TestRenderTopologyListsStationsAndLinks(t *testing.T) {
	gw := topology.New(medium.New(0))
	macA := mustMAC(t, "aa:bb:cc:dd:ee:01")
	macB := mustMAC(t, "aa:bb:cc:dd:ee:02")

	if _, err := gw.Add(macA); err != nil {
		t.Fatalf("Add(A) failed: %v", err)
	}
	if _, err := gw.Add(macB); err != nil {
		t.Fatalf("Add(B) failed: %v", err)
	}
	if err := gw.UpdateLink(macA, macB, -42); err != nil {
		t.Fatalf("UpdateLink failed: %v", err)
	}

	out := RenderTopology(gw.Snapshot())

	for _, want := range []string{"[1]", "[2]", macA.String(), macB.String(), "-42"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinterRendersResponse(t *testing.T) {
	var buf strings.Builder
	p := NewPrinter(&buf)

	p.Response(protocol.AddStationResponse{
		AddStationRequest: protocol.AddStationRequest{Addr: mustMAC(t, "aa:bb:cc:dd:ee:01")},
		CreatedID:         7,
		Result:            protocol.ResultSuccess,
	})

	out := buf.String()
	for _, want := range []string{"success", "aa:bb:cc:dd:ee:01", "7"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinterRendersDuplicateWithoutID(t *testing.T) {
	var buf strings.Builder
	p := NewPrinter(&buf)

	p.Response(protocol.AddStationResponse{
		AddStationRequest: protocol.AddStationRequest{Addr: mustMAC(t, "aa:bb:cc:dd:ee:01")},
		Result:            protocol.ResultDuplicate,
	})

	out := buf.String()
	if !strings.Contains(out, "already exists") {
		t.Errorf("expected duplicate marker, got:\n%s", out)
	}
	if strings.Contains(out, "ID") {
		t.Errorf("duplicate response should not render an id row:\n%s", out)
	}
}
