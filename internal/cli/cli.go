// Package cli implements the pixelsort-mcp command-line interface.
//
// Run without a subcommand, the binary serves MCP over stdin and stdout. The
// subcommands expose the same engine for scripting:
//   - sort: Sort an image file and save the result
//   - spans: Print the spans of one row or column
//   - preset: Write sort parameters to a TOML preset
//
// # Logging
//
// Logs always go to stderr, since stdout carries the MCP protocol. The level
// comes from PIXELSORT_MCP_LOG_LEVEL and --verbose (-v) forces debug.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/pixelsort-mcp/internal/config"
	"github.com/ironsheep/pixelsort-mcp/internal/server"
)

var (
	version   = "dev"     // semantic version
	commit    = "unknown" // git commit SHA
	buildTime = "unknown" // build timestamp
)

// SetVersion sets the version information reported by --version and the MCP
// initialize handshake. main calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	buildTime = d
}

// CLI holds state shared by all commands.
type CLI struct {
	Logger   *log.Logger
	Settings config.Settings
}

// New creates a CLI that logs to w at the level in settings.
func New(w io.Writer, settings config.Settings) *CLI {
	return &CLI{
		Logger:   newLogger(w, settings.LogLevel),
		Settings: settings,
	}
}

// newLogger creates a logger with timestamp formatting.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           server.Name,
		Short:         "MCP server and CLI for pixel sorting images",
		Long:          "pixelsort-mcp sorts runs of pixels in rows or columns of an image by a colour metric.\nRun without arguments it serves the Model Context Protocol over stdin/stdout for MCP clients.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Logger.Debug("starting server", "version", version, "commit", commit, "built", buildTime,
				"block_size", c.Settings.BlockSize)
			srv := server.New(c.Logger.WithPrefix("mcp"), c.Settings, version)
			return srv.Run(cmd.Context())
		},
	}

	root.SetVersionTemplate("{{.Name}} version {{.Version}}\ncommit: " + commit + "\nbuilt: " + buildTime + "\n")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.sortCommand())
	root.AddCommand(c.spansCommand())
	root.AddCommand(c.presetCommand())

	return root
}
