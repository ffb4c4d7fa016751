package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for the control server. All
// recording methods are nil-receiver safe, so the server can embed
// without metrics by passing a nil collector.
type Collector struct {
	gatherer prometheus.Gatherer

	Requests        *prometheus.CounterVec
	ProtocolErrors  prometheus.Counter
	TransportErrors prometheus.Counter

	Connections prometheus.Gauge
	Stations    prometheus.Gauge
}

// NewCollector registers control-server Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry
// when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wmedium_requests_total",
		Help: "Total number of handled control requests, labeled by kind and result.",
	}, []string{"kind", "result"})
	requests, err := registerCounterVec(reg, requests, "wmedium_requests_total")
	if err != nil {
		return nil, err
	}

	protoErrs, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wmedium_protocol_errors_total",
		Help: "Connections closed because of an unknown tag or truncated message.",
	}), "wmedium_protocol_errors_total")
	if err != nil {
		return nil, err
	}

	transportErrs, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wmedium_transport_errors_total",
		Help: "Connections closed because of a socket read or write failure.",
	}), "wmedium_transport_errors_total")
	if err != nil {
		return nil, err
	}

	connections, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wmedium_control_connections",
		Help: "Current number of open control connections.",
	}), "wmedium_control_connections")
	if err != nil {
		return nil, err
	}

	stations, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wmedium_stations",
		Help: "Current number of registered stations.",
	}), "wmedium_stations")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:        gatherer,
		Requests:        requests,
		ProtocolErrors:  protoErrs,
		TransportErrors: transportErrs,
		Connections:     connections,
		Stations:        stations,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one dispatched request by kind and result.
func (c *Collector) ObserveRequest(kind, result string) {
	if c == nil || c.Requests == nil {
		return
	}
	c.Requests.WithLabelValues(kind, result).Inc()
}

// ObserveProtocolError records a connection closed for a malformed message.
func (c *Collector) ObserveProtocolError() {
	if c == nil || c.ProtocolErrors == nil {
		return
	}
	c.ProtocolErrors.Inc()
}

// ObserveTransportError records a connection closed for a socket failure.
func (c *Collector) ObserveTransportError() {
	if c == nil || c.TransportErrors == nil {
		return
	}
	c.TransportErrors.Inc()
}

// ConnOpened records a newly accepted control connection.
func (c *Collector) ConnOpened() {
	if c == nil || c.Connections == nil {
		return
	}
	c.Connections.Inc()
}

// ConnClosed records a control connection that has finished.
func (c *Collector) ConnClosed() {
	if c == nil || c.Connections == nil {
		return
	}
	c.Connections.Dec()
}

// SetStations drives the station gauge from the registry's mutators.
func (c *Collector) SetStations(n int) {
	if c == nil || c.Stations == nil {
		return
	}
	c.Stations.Set(float64(n))
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
