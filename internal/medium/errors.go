package medium

import "errors"

// Registry outcomes the control server translates into wire result codes.
var (
	// ErrStationExists reports an add whose address is already registered.
	ErrStationExists = errors.New("station already exists")
	// ErrStationNotFound reports a lookup or delete with no matching station.
	ErrStationNotFound = errors.New("station not found")
)
