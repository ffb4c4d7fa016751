package topology

import (
	"sync"

	"github.com/wlansim/wmedium/internal/medium"
	"github.com/wlansim/wmedium/internal/protocol"
)

// Gateway is the synchronized interface over the shared station registry
// and signal matrix. Every operation takes the one mutex for its whole
// duration, so concurrent mutations from different control connections
// serialize and none observes the registry mid-mutation. The state is
// small and the call rate low, so a single global lock beats any
// fine-grained scheme here.
type Gateway struct {
	mu sync.Mutex
	m  *medium.Medium
}

// New wraps the given medium. The gateway must be the only path through
// which the control server touches it.
func New(m *medium.Medium) *Gateway {
	return &Gateway{m: m}
}

// FindByMAC returns the live station with the given address, or nil.
func (g *Gateway) FindByMAC(addr protocol.MAC) *medium.Station {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m.FindByMAC(addr)
}

// FindByID returns the live station with the given id, or nil.
func (g *Gateway) FindByID(id uint32) *medium.Station {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m.FindByID(id)
}

// Add registers a new station and returns its freshly assigned id.
// Fails with medium.ErrStationExists when the address is already live.
func (g *Gateway) Add(addr protocol.MAC) (uint32, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sta, err := g.m.Add(addr)
	if err != nil {
		return 0, err
	}
	return sta.ID, nil
}

// DeleteByID removes the station with the given id. Fails with
// medium.ErrStationNotFound when no live station has it.
func (g *Gateway) DeleteByID(id uint32) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m.DeleteByID(id)
}

// DeleteByMAC removes the station with the given address.
func (g *Gateway) DeleteByMAC(addr protocol.MAC) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m.DeleteByMAC(addr)
}

// UpdateLink resolves sender and receiver by address and writes the
// matrix cell for the directed pair, all inside one critical section so
// a concurrent delete can never slip between resolution and the write.
// Fails with medium.ErrStationNotFound when either endpoint is missing;
// nothing is mutated in that case.
func (g *Gateway) UpdateLink(from, to protocol.MAC, snr int32) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	sender := g.m.FindByMAC(from)
	receiver := g.m.FindByMAC(to)
	if sender == nil || receiver == nil {
		return medium.ErrStationNotFound
	}
	g.m.SetSNR(sender.ID, receiver.ID, snr)
	return nil
}

// LinkQuality reads the matrix cell for the directed pair (fromID, toID).
// Both ids must belong to live stations.
func (g *Gateway) LinkQuality(fromID, toID uint32) int32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m.SNR(fromID, toID)
}

// StationCount returns the number of live stations.
func (g *Gateway) StationCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m.Count()
}

// Link is one directed pair from a topology snapshot.
type Link struct {
	From medium.Station
	To   medium.Station
	SNR  int32
}

// Snapshot is a consistent read-only view of the topology, taken under
// the same lock as every mutation.
type Snapshot struct {
	Stations []medium.Station
	Links    []Link
}

// Snapshot captures the live stations and every directed link between
// them in one critical section.
func (g *Gateway) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	stations := g.m.Stations()
	snap := Snapshot{Stations: stations}
	for _, from := range stations {
		for _, to := range stations {
			if from.ID == to.ID {
				continue
			}
			snap.Links = append(snap.Links, Link{
				From: from,
				To:   to,
				SNR:  g.m.SNR(from.ID, to.ID),
			})
		}
	}
	return snap
}
