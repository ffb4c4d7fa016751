// Wmedium-server is the control-plane daemon of the wireless-medium
// simulator.
//
// It owns the shared world state (station registry and signal matrix)
// and exposes a Unix-socket control channel through which a management
// client mutates the topology at runtime: adjusting link quality
// between two stations, registering new stations, and removing them.
//
// Usage:
//
//	wmedium-server serve [flags]
//
// See 'wmedium-server serve --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wlansim/wmedium/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wmedium-server",
	Short: "Wireless-medium simulator control daemon",
	Long: `The control-plane daemon of the wireless-medium simulator.

The daemon maintains the simulated topology (stations and the pairwise
signal matrix) and listens on a local Unix socket for control requests.
Use the 'wmediumctl' utility to mutate the topology while it runs.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wmedium-server %s (commit: %s)\n", version.Version, version.Commit)
	},
}
