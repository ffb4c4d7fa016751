package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wlansim/wmedium/internal/config"
	"github.com/wlansim/wmedium/internal/logging"
	"github.com/wlansim/wmedium/internal/medium"
	"github.com/wlansim/wmedium/internal/observability"
	"github.com/wlansim/wmedium/internal/protocol"
	"github.com/wlansim/wmedium/internal/server"
	"github.com/wlansim/wmedium/internal/topology"
	"github.com/wlansim/wmedium/internal/ui"
)

// Serve command and flags
var (
	configPath  string
	socketPath  string
	logLevel    string
	metricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the control daemon",
	Long: `Start the wmedium control daemon.

A YAML config file can seed the initial topology (station roster and
link qualities) and set the socket path, log level, and metrics
address. Flags override the corresponding file values.`,
	Example: `  # Start with defaults (socket at ` + server.DefaultSocketPath + `)
  wmedium-server serve

  # Start with a custom socket and verbose logging
  wmedium-server serve --socket /tmp/wmedium.sock --log-level debug

  # Start from a config file with an initial topology
  wmedium-server serve --config /etc/wmedium/config.yaml

  # Expose Prometheus metrics
  wmedium-server serve --metrics-addr 127.0.0.1:9390`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file (optional)")
	serveCmd.Flags().StringVar(&socketPath, "socket", "", "Control socket path (overrides config)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "TCP address for the Prometheus /metrics endpoint (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if socketPath != "" {
		cfg.SocketPath = socketPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}

	if err := logging.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	var metrics *observability.Collector
	if cfg.MetricsAddr != "" {
		var err error
		metrics, err = observability.NewCollector(nil)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	gw := topology.New(medium.New(cfg.DefaultSNR))
	if err := seedTopology(gw, cfg); err != nil {
		return err
	}
	metrics.SetStations(gw.StationCount())
	if gw.StationCount() > 0 {
		fmt.Print(ui.RenderTopology(gw.Snapshot()))
	}

	srv := server.New(&server.Config{SocketPath: cfg.SocketPath}, gw, metrics)
	if err := srv.Start(); err != nil {
		return err
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, metrics)
	}

	// Teardown on SIGINT/SIGTERM or on a shutdown request from the wire;
	// stop() restores the previous signal behavior either way.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logging.Info("Shutdown signal received, stopping server...")
	case <-srv.Done():
		logging.Info("Shutdown requested over control channel")
	}
	srv.Stop()

	drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Wait(drainCtx); err != nil {
		logging.Warn("Control connections did not drain", zap.Error(err))
	}
	return nil
}

// seedTopology registers the configured station roster and link
// qualities before the socket accepts its first client.
func seedTopology(gw *topology.Gateway, cfg *config.Config) error {
	for _, sta := range cfg.Stations {
		addr, err := protocol.ParseMAC(sta.Addr)
		if err != nil {
			return err
		}
		id, err := gw.Add(addr)
		if err != nil {
			return fmt.Errorf("failed to seed station %s: %w", addr, err)
		}
		logging.Info("Seeded station",
			zap.String("addr", addr.String()),
			zap.Uint32("id", id),
		)
	}

	for _, link := range cfg.Links {
		from, err := protocol.ParseMAC(link.From)
		if err != nil {
			return err
		}
		to, err := protocol.ParseMAC(link.To)
		if err != nil {
			return err
		}
		if err := gw.UpdateLink(from, to, link.SNR); err != nil {
			return fmt.Errorf("failed to seed link %s -> %s: %w", from, to, err)
		}
	}
	return nil
}

func serveMetrics(addr string, metrics *observability.Collector) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	logging.Info("Metrics endpoint listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logging.Error("Metrics endpoint failed", zap.Error(err))
	}
}
