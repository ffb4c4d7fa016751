package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewCollectorRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector() error = %v", err)
	}

	c.ObserveRequest("add_station", "success")
	c.ObserveRequest("add_station", "duplicate")
	c.ObserveRequest("update_link", "success")
	c.ObserveProtocolError()
	c.ConnOpened()
	c.ConnOpened()
	c.ConnClosed()
	c.SetStations(3)

	if got := testutil.ToFloat64(c.Requests.WithLabelValues("add_station", "success")); got != 1 {
		t.Errorf("requests{add_station,success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.ProtocolErrors); got != 1 {
		t.Errorf("protocol errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Connections); got != 1 {
		t.Errorf("connections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.Stations); got != 3 {
		t.Errorf("stations = %v, want 3", got)
	}
}

func TestNewCollectorTwiceReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("first NewCollector() error = %v", err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector() error = %v", err)
	}

	first.ObserveRequest("delete_by_id", "not_found")
	second.ObserveRequest("delete_by_id", "not_found")

	if got := testutil.ToFloat64(second.Requests.WithLabelValues("delete_by_id", "not_found")); got != 2 {
		t.Errorf("requests = %v, want 2 (shared collector)", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.ObserveRequest("add_station", "success")
	c.ObserveProtocolError()
	c.ObserveTransportError()
	c.ConnOpened()
	c.ConnClosed()
	c.SetStations(5)
	if h := c.Handler(); h == nil {
		t.Error("Handler() on nil collector returned nil")
	}
}
