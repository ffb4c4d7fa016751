// Package observability exposes Prometheus metrics for the control
// server: request counts by kind and result, protocol and transport
// error counts, and gauges for open connections and registered
// stations.
//
// A Collector registers against an injectable prometheus.Registerer so
// tests can use an isolated registry. Every recording method tolerates
// a nil receiver, which is how the server runs when metrics are
// disabled.
package observability
