package medium

import (
	"errors"
	"testing"

	"github.com/wlansim/wmedium/internal/protocol"
)

var (
	macA = protocol.MAC{0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0x01}
	macB = protocol.MAC{0xbb, 0xbb, 0xbb, 0xbb, 0xbb, 0x02}
	macC = protocol.MAC{0xcc, 0xcc, 0xcc, 0xcc, 0xcc, 0x03}
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	m := New(0)

	staA, err := m.Add(macA)
	if err != nil {
		t.Fatalf("Add(A) error = %v", err)
	}
	if staA.ID != 1 {
		t.Errorf("first id = %d, want 1", staA.ID)
	}

	staB, err := m.Add(macB)
	if err != nil {
		t.Fatalf("Add(B) error = %v", err)
	}
	if staB.ID != 2 {
		t.Errorf("second id = %d, want 2", staB.ID)
	}

	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
}

func TestAddDuplicateLeavesRegistryUnchanged(t *testing.T) {
	m := New(0)
	if _, err := m.Add(macA); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	_, err := m.Add(macA)
	if !errors.Is(err, ErrStationExists) {
		t.Fatalf("duplicate Add() error = %v, want ErrStationExists", err)
	}
	if m.Count() != 1 {
		t.Errorf("Count() after duplicate = %d, want 1", m.Count())
	}

	// The next successful add still gets a fresh id.
	staB, err := m.Add(macB)
	if err != nil {
		t.Fatalf("Add(B) error = %v", err)
	}
	if staB.ID != 2 {
		t.Errorf("id after duplicate attempt = %d, want 2", staB.ID)
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	m := New(0)
	staA, _ := m.Add(macA)
	if err := m.DeleteByID(staA.ID); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}

	staB, err := m.Add(macB)
	if err != nil {
		t.Fatalf("Add(B) error = %v", err)
	}
	if staB.ID == staA.ID {
		t.Errorf("id %d reused after delete", staA.ID)
	}
}

func TestFindByMACAndID(t *testing.T) {
	m := New(0)
	staA, _ := m.Add(macA)

	if got := m.FindByMAC(macA); got == nil || got.ID != staA.ID {
		t.Errorf("FindByMAC(A) = %v, want id %d", got, staA.ID)
	}
	if got := m.FindByMAC(macB); got != nil {
		t.Errorf("FindByMAC(B) = %v, want nil", got)
	}
	if got := m.FindByID(staA.ID); got == nil || got.Addr != macA {
		t.Errorf("FindByID(%d) = %v, want addr %s", staA.ID, got, macA)
	}
	if got := m.FindByID(99); got != nil {
		t.Errorf("FindByID(99) = %v, want nil", got)
	}
}

func TestDeleteByMAC(t *testing.T) {
	m := New(0)
	m.Add(macA)

	if err := m.DeleteByMAC(macA); err != nil {
		t.Fatalf("DeleteByMAC() error = %v", err)
	}
	if m.FindByMAC(macA) != nil {
		t.Error("station still resolvable after delete")
	}
	if err := m.DeleteByMAC(macA); !errors.Is(err, ErrStationNotFound) {
		t.Errorf("second delete error = %v, want ErrStationNotFound", err)
	}
}

func TestDeleteByIDNotFound(t *testing.T) {
	m := New(0)
	if err := m.DeleteByID(1); !errors.Is(err, ErrStationNotFound) {
		t.Errorf("DeleteByID() error = %v, want ErrStationNotFound", err)
	}
}

func TestMatrixDefaultAndWrite(t *testing.T) {
	m := New(-20)
	staA, _ := m.Add(macA)
	staB, _ := m.Add(macB)

	if got := m.SNR(staA.ID, staB.ID); got != -20 {
		t.Errorf("fresh cell = %d, want default -20", got)
	}

	m.SetSNR(staA.ID, staB.ID, -42)
	if got := m.SNR(staA.ID, staB.ID); got != -42 {
		t.Errorf("SNR(A, B) = %d, want -42", got)
	}
	// The matrix is directed; the reverse cell keeps its default.
	if got := m.SNR(staB.ID, staA.ID); got != -20 {
		t.Errorf("SNR(B, A) = %d, want -20", got)
	}
}

func TestMatrixGrowKeepsExistingCells(t *testing.T) {
	m := New(0)
	staA, _ := m.Add(macA)
	staB, _ := m.Add(macB)
	m.SetSNR(staA.ID, staB.ID, 17)

	staC, _ := m.Add(macC)

	if got := m.SNR(staA.ID, staB.ID); got != 17 {
		t.Errorf("cell lost on grow: SNR(A, B) = %d, want 17", got)
	}
	if got := m.SNR(staA.ID, staC.ID); got != 0 {
		t.Errorf("fresh cell after grow = %d, want 0", got)
	}
}

func TestStationsOrderedByID(t *testing.T) {
	m := New(0)
	m.Add(macA)
	m.Add(macB)
	m.Add(macC)
	m.DeleteByMAC(macB)

	stations := m.Stations()
	if len(stations) != 2 {
		t.Fatalf("len(Stations()) = %d, want 2", len(stations))
	}
	if stations[0].ID != 1 || stations[1].ID != 3 {
		t.Errorf("station ids = [%d %d], want [1 3]", stations[0].ID, stations[1].ID)
	}
}
