// Wmediumctl is the management client for the wmedium control daemon.
//
// It connects to the daemon's Unix control socket and mutates the
// simulated topology at runtime: registering stations, removing them,
// and adjusting the signal quality of directed links.
//
// Usage:
//
//	wmediumctl add aa:bb:cc:dd:ee:01
//	wmediumctl link aa:bb:cc:dd:ee:01 aa:bb:cc:dd:ee:02 -42
//	wmediumctl del 1
//	wmediumctl shutdown
//	wmediumctl console
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wlansim/wmedium/internal/server"
	"github.com/wlansim/wmedium/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var socketPath string

var rootCmd = &cobra.Command{
	Use:   "wmediumctl",
	Short: "Wireless-medium simulator control client",
	Long: `Management client for the wmedium control daemon.

All commands talk to the daemon over its local Unix control socket and
print the daemon's response. Domain outcomes (station not found, station
already exists) are reported as results, not errors; the command exits
non-zero only when the socket itself fails.`,
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", server.DefaultSocketPath,
		"Path of the daemon's control socket")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(delCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(shutdownCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wmediumctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
