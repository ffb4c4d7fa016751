package server

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/wlansim/wmedium/internal/client"
	"github.com/wlansim/wmedium/internal/medium"
	"github.com/wlansim/wmedium/internal/protocol"
	"github.com/wlansim/wmedium/internal/topology"
)

func startTestServer(t *testing.T) (*Server, *topology.Gateway) {
	t.Helper()

	socket := filepath.Join(t.TempDir(), "wmedium.sock")
	gw := topology.New(medium.New(0))
	srv := New(&Config{SocketPath: socket}, gw, nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(srv.Stop)
	return srv, gw
}

func dialTest(t *testing.T, srv *Server) *client.Client {
	t.Helper()
	c, err := client.Dial(srv.SocketPath())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func mustMAC(t *testing.T, s string) protocol.MAC {
	t.Helper()
	mac, err := protocol.ParseMAC(s)
	if err != nil {
		t.Fatalf("ParseMAC(%q) error = %v", s, err)
	}
	return mac
}

func TestControlScenario(t *testing.T) {
	srv, gw := startTestServer(t)
	c := dialTest(t, srv)

	macA := mustMAC(t, "aa:aa:aa:aa:aa:01")
	macB := mustMAC(t, "bb:bb:bb:bb:bb:02")

	addA, err := c.AddStation(macA)
	if err != nil {
		t.Fatalf("AddStation(A) error = %v", err)
	}
	if addA.Result != protocol.ResultSuccess || addA.CreatedID != 1 {
		t.Fatalf("AddStation(A) = {%s, id=%d}, want {success, id=1}", addA.Result, addA.CreatedID)
	}

	addB, err := c.AddStation(macB)
	if err != nil {
		t.Fatalf("AddStation(B) error = %v", err)
	}
	if addB.Result != protocol.ResultSuccess || addB.CreatedID != 2 {
		t.Fatalf("AddStation(B) = {%s, id=%d}, want {success, id=2}", addB.Result, addB.CreatedID)
	}

	upd, err := c.UpdateLink(macA, macB, -42)
	if err != nil {
		t.Fatalf("UpdateLink() error = %v", err)
	}
	if upd.Result != protocol.ResultSuccess {
		t.Fatalf("UpdateLink() result = %s, want success", upd.Result)
	}
	if got := gw.LinkQuality(1, 2); got != -42 {
		t.Errorf("matrix[1][2] = %d, want -42", got)
	}

	del, err := c.DeleteByID(1)
	if err != nil {
		t.Fatalf("DeleteByID(1) error = %v", err)
	}
	if del.Result != protocol.ResultSuccess {
		t.Fatalf("DeleteByID(1) result = %s, want success", del.Result)
	}

	// A no longer exists, so the update must report not found and the
	// response must echo the request fields.
	upd2, err := c.UpdateLink(macA, macB, -10)
	if err != nil {
		t.Fatalf("UpdateLink() after delete error = %v", err)
	}
	if upd2.Result != protocol.ResultNotFound {
		t.Errorf("UpdateLink() after delete result = %s, want not_found", upd2.Result)
	}
	if upd2.From != macA || upd2.To != macB || upd2.SNR != -10 {
		t.Errorf("response does not echo request: %+v", upd2)
	}

	dup, err := c.AddStation(macB)
	if err != nil {
		t.Fatalf("AddStation(B) again error = %v", err)
	}
	if dup.Result != protocol.ResultDuplicate {
		t.Errorf("AddStation(B) again result = %s, want duplicate", dup.Result)
	}
	if dup.CreatedID != 0 {
		t.Errorf("duplicate response carries id %d, want 0", dup.CreatedID)
	}
}

func TestDeleteByMACOverWire(t *testing.T) {
	srv, _ := startTestServer(t)
	c := dialTest(t, srv)

	macA := mustMAC(t, "aa:aa:aa:aa:aa:01")
	if _, err := c.AddStation(macA); err != nil {
		t.Fatalf("AddStation() error = %v", err)
	}

	del, err := c.DeleteByMAC(macA)
	if err != nil {
		t.Fatalf("DeleteByMAC() error = %v", err)
	}
	if del.Result != protocol.ResultSuccess || del.Addr != macA {
		t.Errorf("DeleteByMAC() = %+v, want success echoing %s", del, macA)
	}

	again, err := c.DeleteByMAC(macA)
	if err != nil {
		t.Fatalf("second DeleteByMAC() error = %v", err)
	}
	if again.Result != protocol.ResultNotFound {
		t.Errorf("second DeleteByMAC() result = %s, want not_found", again.Result)
	}
}

func TestUnknownTagClosesConnectionWithoutResponse(t *testing.T) {
	srv, _ := startTestServer(t)

	conn, err := net.Dial("unix", srv.SocketPath())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte{0xFF}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1)
	if n, err := conn.Read(buf); err == nil {
		t.Fatalf("expected closed connection, read %d bytes", n)
	}
}

func TestTruncatedBodyClosesConnectionWithoutResponse(t *testing.T) {
	srv, _ := startTestServer(t)

	conn, err := net.Dial("unix", srv.SocketPath())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	// Half an add_station body, then end of stream.
	if _, err := conn.Write([]byte{byte(protocol.TagAddStation), 0xaa, 0xbb}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := conn.(*net.UnixConn).CloseWrite(); err != nil {
		t.Fatalf("CloseWrite() error = %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1)
	if n, err := conn.Read(buf); err == nil {
		t.Fatalf("expected closed connection, read %d bytes", n)
	}
}

func TestMalformedClientDoesNotAffectOthers(t *testing.T) {
	srv, _ := startTestServer(t)
	good := dialTest(t, srv)

	bad, err := net.Dial("unix", srv.SocketPath())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer bad.Close()
	if _, err := bad.Write([]byte{0xFF}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	resp, err := good.AddStation(mustMAC(t, "aa:aa:aa:aa:aa:01"))
	if err != nil {
		t.Fatalf("well-formed client broken by misbehaving one: %v", err)
	}
	if resp.Result != protocol.ResultSuccess {
		t.Errorf("AddStation() result = %s, want success", resp.Result)
	}
}

func TestShutdownRequestStopsAcceptor(t *testing.T) {
	srv, _ := startTestServer(t)

	inFlight := dialTest(t, srv)
	if _, err := inFlight.AddStation(mustMAC(t, "aa:aa:aa:aa:aa:01")); err != nil {
		t.Fatalf("AddStation() error = %v", err)
	}

	c := dialTest(t, srv)
	if err := c.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	select {
	case <-srv.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("accept loop did not stop after shutdown request")
	}

	// The endpoint artifact is removed and new connections are refused.
	if _, err := os.Stat(srv.SocketPath()); !os.IsNotExist(err) {
		t.Errorf("control socket still present after shutdown: %v", err)
	}
	if _, err := net.Dial("unix", srv.SocketPath()); err == nil {
		t.Error("new connection accepted after shutdown")
	}

	// Connections accepted before the shutdown drain naturally.
	resp, err := inFlight.AddStation(mustMAC(t, "bb:bb:bb:bb:bb:02"))
	if err != nil {
		t.Fatalf("in-flight connection broken by shutdown: %v", err)
	}
	if resp.Result != protocol.ResultSuccess {
		t.Errorf("AddStation() on in-flight connection result = %s, want success", resp.Result)
	}
}

func TestTeardownIsIdempotent(t *testing.T) {
	srv, _ := startTestServer(t)

	// Protocol-triggered then external: the artifact is removed once
	// and nothing faults.
	c := dialTest(t, srv)
	if err := c.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	select {
	case <-srv.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("accept loop did not stop")
	}

	srv.Stop()
	srv.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Wait(ctx); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
}

func TestStaleSocketIsCleanedUpOnStart(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "wmedium.sock")
	// A crashed daemon leaves the bound path behind.
	f, err := os.Create(socket)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	f.Close()

	srv := New(&Config{SocketPath: socket}, topology.New(medium.New(0)), nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() over stale socket error = %v", err)
	}
	defer srv.Stop()
}

func TestStartReportsBindFailure(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "missing", "wmedium.sock")
	srv := New(&Config{SocketPath: socket}, topology.New(medium.New(0)), nil)
	if err := srv.Start(); err == nil {
		srv.Stop()
		t.Fatal("Start() succeeded with an unbindable path")
	}
}

func TestConcurrentClientsSerialize(t *testing.T) {
	srv, gw := startTestServer(t)
	const n = 16

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := client.Dial(srv.SocketPath())
			if err != nil {
				t.Errorf("Dial() error = %v", err)
				return
			}
			defer c.Close()

			addr, err := protocol.ParseMAC(fmt.Sprintf("02:00:00:00:00:%02x", i))
			if err != nil {
				t.Errorf("ParseMAC() error = %v", err)
				return
			}
			resp, err := c.AddStation(addr)
			if err != nil {
				t.Errorf("AddStation() error = %v", err)
				return
			}
			if resp.Result != protocol.ResultSuccess {
				t.Errorf("AddStation(%s) result = %s, want success", addr, resp.Result)
			}
		}(i)
	}
	wg.Wait()

	if got := gw.StationCount(); got != n {
		t.Errorf("StationCount() = %d, want %d", got, n)
	}

	snap := gw.Snapshot()
	seen := make(map[uint32]bool)
	for _, sta := range snap.Stations {
		if seen[sta.ID] {
			t.Errorf("duplicate station id %d", sta.ID)
		}
		seen[sta.ID] = true
	}
}
