// Package topology is the synchronized access layer over the shared
// station registry and signal matrix.
//
// Every mutation the control server performs goes through one Gateway,
// which holds a single mutex for the whole of each operation. Compound
// operations that must see one consistent registry state, such as
// resolving both endpoints of a link before writing its quality, run
// entirely inside one critical section. The lock is always released via
// defer, so no error path can leave it held.
package topology
