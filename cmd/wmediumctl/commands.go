package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wlansim/wmedium/internal/client"
	"github.com/wlansim/wmedium/internal/logging"
	"github.com/wlansim/wmedium/internal/protocol"
	"github.com/wlansim/wmedium/internal/ui"
)

// withClient dials the control socket, runs fn, and closes the
// connection. Logging stays silent unless WMEDIUM_LOG_LEVEL is set.
func withClient(fn func(c *client.Client, p *ui.Printer) error) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return err
	}
	defer logging.Sync()

	c, err := client.Dial(socketPath)
	if err != nil {
		return err
	}
	defer c.Close()

	return fn(c, ui.NewPrinter(nil))
}

var addCmd = &cobra.Command{
	Use:   "add <mac>",
	Short: "Register a new station",
	Args:  cobra.ExactArgs(1),
	Example: `  wmediumctl add aa:bb:cc:dd:ee:01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := protocol.ParseMAC(args[0])
		if err != nil {
			return err
		}
		return withClient(func(c *client.Client, p *ui.Printer) error {
			resp, err := c.AddStation(addr)
			if err != nil {
				return err
			}
			p.Response(resp)
			return nil
		})
	},
}

var delCmd = &cobra.Command{
	Use:   "del <id|mac>",
	Short: "Remove a station by id or hardware address",
	Args:  cobra.ExactArgs(1),
	Example: `  wmediumctl del 1
  wmediumctl del aa:bb:cc:dd:ee:01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// A bare integer is an id; anything else must parse as a MAC.
		if id, err := strconv.ParseUint(args[0], 10, 32); err == nil {
			return withClient(func(c *client.Client, p *ui.Printer) error {
				resp, err := c.DeleteByID(uint32(id))
				if err != nil {
					return err
				}
				p.Response(resp)
				return nil
			})
		}

		addr, err := protocol.ParseMAC(args[0])
		if err != nil {
			return err
		}
		return withClient(func(c *client.Client, p *ui.Printer) error {
			resp, err := c.DeleteByMAC(addr)
			if err != nil {
				return err
			}
			p.Response(resp)
			return nil
		})
	},
}

var linkCmd = &cobra.Command{
	Use:   "link <from> <to> <snr>",
	Short: "Set the signal quality of the directed link from -> to",
	Args:  cobra.ExactArgs(3),
	Example: `  wmediumctl link aa:bb:cc:dd:ee:01 aa:bb:cc:dd:ee:02 -42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := protocol.ParseMAC(args[0])
		if err != nil {
			return err
		}
		to, err := protocol.ParseMAC(args[1])
		if err != nil {
			return err
		}
		snr, err := strconv.ParseInt(args[2], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid snr %q: %w", args[2], err)
		}
		return withClient(func(c *client.Client, p *ui.Printer) error {
			resp, err := c.UpdateLink(from, to, int32(snr))
			if err != nil {
				return err
			}
			p.Response(resp)
			return nil
		})
	},
}

var shutdownCmd = &cobra.Command{
	Use:   "shutdown",
	Short: "Stop the daemon's accept loop",
	Long: `Ask the daemon to stop accepting control connections.

The shutdown request yields no response. Control connections already
open elsewhere keep working until their clients disconnect.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *client.Client, p *ui.Printer) error {
			if err := c.Shutdown(); err != nil {
				return err
			}
			p.Println(ui.SuccessStyle.Render(ui.SuccessMarker + " shutdown requested"))
			return nil
		})
	},
}

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open an interactive control console",
	Long: `Open an interactive console on the control socket.

Commands:
  add <mac>                 register a station
  del <id|mac>              remove a station
  link <from> <to> <snr>    set a directed link quality
  shutdown                  stop the daemon's accept loop
  quit                      leave the console`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *client.Client, p *ui.Printer) error {
			return ui.RunConsole(c)
		})
	},
}
