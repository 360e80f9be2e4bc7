// Package cli provides the command-line interface for desktools.
package cli

import (
	"fmt"
	"io"

	"github.com/daisuke/desktools/internal/version"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the desktools command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "desktools",
		Short: "Small desktop automation tools",
		Long: `desktools bundles a few desktop automation helpers:

  colours  build an HTML (or PNG) swatch table from the X11 colour database
  crop     print ImageMagick commands that crop and convert screenshots
  capture  screenshot a document viewer page by page, clicking to turn pages`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newColoursCmd())
	rootCmd.AddCommand(newCropCmd())
	rootCmd.AddCommand(newCaptureCmd())

	return rootCmd
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// newLogger returns the command's logger, honouring --verbose and --quiet.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return buildLogger(cmd.ErrOrStderr(), verbose, quiet)
}

func buildLogger(out io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	switch {
	case quiet:
		level = hclog.Error
	case verbose:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "desktools",
		Output: out,
		Level:  level,
		Color:  hclog.AutoColor,
	})
}

// newVersionCmd represents the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
