// Package config loads the wmedium daemon configuration file.
//
// The file is YAML with the control socket path, log level, optional
// Prometheus metrics address, and an initial topology (station roster
// and link seeds) registered before the control server starts:
//
//	socket_path: /tmp/wmedium.sock
//	log_level: info
//	metrics_addr: "127.0.0.1:9390"
//	default_snr: -20
//	stations:
//	  - addr: aa:aa:aa:aa:aa:01
//	  - addr: bb:bb:bb:bb:bb:02
//	links:
//	  - from: aa:aa:aa:aa:aa:01
//	    to: bb:bb:bb:bb:bb:02
//	    snr: -42
//
// Validation rejects malformed hardware addresses, duplicate roster
// entries, and links referencing stations outside the roster.
package config
