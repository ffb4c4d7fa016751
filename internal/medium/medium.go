package medium

import (
	"sort"

	"github.com/wlansim/wmedium/internal/protocol"
)

// Station is one simulated radio: a stable process-local id assigned at
// creation and a hardware address unique among live stations.
type Station struct {
	ID   uint32
	Addr protocol.MAC
}

// Medium holds the shared world state of the simulation: the station
// registry and the directed signal-quality matrix. It is a plain data
// structure with no locking of its own; the control server serializes
// every access through topology.Gateway, and the packet-delivery path
// only reads it.
type Medium struct {
	stations []*Station
	nextID   uint32

	// matrix[from][to] is the signal-to-noise figure in dB for the
	// directed pair. Sized by the registry on add; the control server
	// never resizes it.
	matrix     [][]int32
	defaultSNR int32
}

// New creates an empty medium. defaultSNR fills fresh matrix cells so a
// newly added station has a defined quality toward every other station
// before the first explicit update.
func New(defaultSNR int32) *Medium {
	return &Medium{
		nextID:     1,
		defaultSNR: defaultSNR,
	}
}

// FindByMAC returns the live station with the given address, or nil.
func (m *Medium) FindByMAC(addr protocol.MAC) *Station {
	for _, sta := range m.stations {
		if sta.Addr == addr {
			return sta
		}
	}
	return nil
}

// FindByID returns the live station with the given id, or nil.
func (m *Medium) FindByID(id uint32) *Station {
	for _, sta := range m.stations {
		if sta.ID == id {
			return sta
		}
	}
	return nil
}

// Add registers a new station and assigns it a fresh id. It fails with
// ErrStationExists if any live station already has the address. Ids are
// never reused, so a deleted station's id can never alias a new one.
func (m *Medium) Add(addr protocol.MAC) (*Station, error) {
	if m.FindByMAC(addr) != nil {
		return nil, ErrStationExists
	}

	sta := &Station{ID: m.nextID, Addr: addr}
	m.nextID++
	m.stations = append(m.stations, sta)
	m.grow(sta.ID)
	return sta, nil
}

// DeleteByID removes the station with the given id. The station's matrix
// row and column are left in place; ids are never reassigned, so stale
// cells are unreachable rather than dangerous.
func (m *Medium) DeleteByID(id uint32) error {
	for i, sta := range m.stations {
		if sta.ID == id {
			m.stations = append(m.stations[:i], m.stations[i+1:]...)
			return nil
		}
	}
	return ErrStationNotFound
}

// DeleteByMAC removes the station with the given address.
func (m *Medium) DeleteByMAC(addr protocol.MAC) error {
	for i, sta := range m.stations {
		if sta.Addr == addr {
			m.stations = append(m.stations[:i], m.stations[i+1:]...)
			return nil
		}
	}
	return ErrStationNotFound
}

// SetSNR writes the matrix cell for the directed pair (from, to). Both
// ids must belong to live stations; the caller resolves them first.
func (m *Medium) SetSNR(from, to uint32, snr int32) {
	m.matrix[from][to] = snr
}

// SNR reads the matrix cell for the directed pair (from, to).
func (m *Medium) SNR(from, to uint32) int32 {
	return m.matrix[from][to]
}

// Stations returns a copy of the live station list, ordered by id.
func (m *Medium) Stations() []Station {
	out := make([]Station, 0, len(m.stations))
	for _, sta := range m.stations {
		out = append(out, *sta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of live stations.
func (m *Medium) Count() int {
	return len(m.stations)
}

// grow extends the matrix so that id indexes a valid row and column,
// filling new cells with the default quality.
func (m *Medium) grow(id uint32) {
	need := int(id) + 1
	if len(m.matrix) >= need {
		return
	}
	for i := range m.matrix {
		row := m.matrix[i]
		for len(row) < need {
			row = append(row, m.defaultSNR)
		}
		m.matrix[i] = row
	}
	for len(m.matrix) < need {
		row := make([]int32, need)
		for j := range row {
			row[j] = m.defaultSNR
		}
		m.matrix = append(m.matrix, row)
	}
}
