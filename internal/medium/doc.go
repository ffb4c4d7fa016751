// Package medium holds the shared world state of the wireless-medium
// simulation: the station registry and the pairwise signal-quality
// matrix.
//
// The control server is the sole writer of the runtime-mutable fields;
// the simulation's packet-delivery path only reads them. The package
// performs no locking of its own. All concurrent access funnels through
// topology.Gateway, which owns the single lock over this state.
//
// Station ids are assigned sequentially starting at 1 and are never
// reused. The matrix is grown by the registry when a station is added;
// nothing else resizes it. Deleting a station leaves its matrix row and
// column in place, which is safe because a retired id can never be
// resolved again.
package medium
