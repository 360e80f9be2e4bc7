package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/daisuke/desktools/internal/colour"
	"github.com/daisuke/desktools/internal/compression"
	"github.com/daisuke/desktools/internal/render"
	"github.com/daisuke/desktools/internal/security"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Default paths for the colours command.
const (
	DefaultRGBFile    = "/usr/X11R7/lib/X11/rgb.txt"
	DefaultColourFile = "x11_colours.html"

	// rgbFileEnv overrides DefaultRGBFile.
	rgbFileEnv = "DESKTOOLS_RGB_FILE"
)

// defaultRGBFile returns the colour database path used when -i is not given.
func defaultRGBFile() string {
	if p := os.Getenv(rgbFileEnv); p != "" {
		return p
	}
	return DefaultRGBFile
}

type coloursOptions struct {
	input     string
	output    string
	format    string
	strict    bool
	title     string
	signature string
	columns   int
}

func newColoursCmd() *cobra.Command {
	opts := &coloursOptions{}

	cmd := &cobra.Command{
		Use:     "colours",
		Aliases: []string{"colors"},
		Short:   "Make an X11 colour table",
		Long: `Build a table of every named colour in the X11 colour database (rgb.txt).

Each row lists the colour name, its hex code, the red, green and blue values
and a swatch. Rows are ordered by hex code, highest first. The database may be
gzip, bzip2, xz or zstd compressed.

Lines whose channel values are not integers between 0 and 255 are skipped with
a warning. Lines without the tab-tab separator are skipped too, unless --strict
is given, in which case they abort the run.

The output file must not already exist.

Examples:
  # Write x11_colours.html from the system colour database
  desktools colours

  # Use another database and output file
  desktools colours -i /usr/share/X11/rgb.txt -o colours.html

  # Draw a PNG swatch sheet instead
  desktools colours -o colours.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColours(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "file-rgb", "i", defaultRGBFile(), "location of the colour database (env "+rgbFileEnv+")")
	cmd.Flags().StringVarP(&opts.output, "file-output", "o", DefaultColourFile, "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format (html, png; default: from output extension)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "abort on lines without the tab-tab separator")
	cmd.Flags().StringVar(&opts.title, "title", render.DefaultTitle, "HTML document title")
	cmd.Flags().StringVar(&opts.signature, "signature", render.DefaultSignature, "HTML footer address line")
	cmd.Flags().IntVar(&opts.columns, "columns", render.DefaultPNGOptions().Columns, "swatches per row in PNG output")

	cmd.AddCommand(newColoursListCmd())

	return cmd
}

// runColours executes the colours command.
func runColours(cmd *cobra.Command, opts *coloursOptions) error {
	logger := newLogger(cmd)

	format := render.FormatFromPath(opts.output)
	if opts.format != "" {
		var err error
		if format, err = render.ParseFormat(opts.format); err != nil {
			return err
		}
	}

	// Both paths are checked before anything is read or written.
	if err := security.ValidateOutputAbsent(opts.output); err != nil {
		return err
	}
	if err := security.ValidateInputFile(opts.input); err != nil {
		return err
	}

	res, err := loadColourTable(opts.input, opts.strict, logger)
	if err != nil {
		return err
	}

	renderOpts := render.Options{
		HTML: render.HTMLOptions{Title: opts.title, Signature: opts.signature},
		PNG:  render.PNGOptions{Columns: opts.columns},
	}
	entries := res.Table.Entries()
	err = writeNewFile(opts.output, func(w io.Writer) error {
		return render.Render(w, format, entries, renderOpts)
	})
	if err != nil {
		return err
	}

	logger.Info("colour table written",
		"file", opts.output, "format", string(format),
		"colours", len(entries), "skipped", len(res.Warnings))
	return nil
}

// loadColourTable reads and parses the colour database at path.
func loadColourTable(path string, strict bool, logger hclog.Logger) (*colour.Result, error) {
	rc, kind, err := compression.Open(path, compression.DefaultMaxSize)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	logger.Debug("reading colour database", "file", path, "encoding", string(kind))

	res, err := colour.Build(rc, colour.Options{Strict: strict, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return res, nil
}

// writeNewFile creates path, which must not exist, and passes it to write.
// The file is always closed, and removed again if write or close fails.
func writeNewFile(path string, write func(io.Writer) error) (err error) {
	f, err := security.CreateNew(path)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
		if err != nil {
			if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				err = errors.Join(err, rmErr)
			}
		}
	}()

	return write(f)
}

type coloursListOptions struct {
	input  string
	match  string
	colour string
}

func newColoursListCmd() *cobra.Command {
	opts := &coloursListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the colour table to the terminal",
		Long: `Print every named colour in hex order, with a truecolour swatch when
the output is a terminal.

Examples:
  # List all colours
  desktools colours list

  # List colours whose name contains "blue"
  desktools colours list --match blue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColoursList(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "file-rgb", "i", defaultRGBFile(), "location of the colour database (env "+rgbFileEnv+")")
	cmd.Flags().StringVarP(&opts.match, "match", "m", "", "only list colours whose name contains this text")
	cmd.Flags().StringVar(&opts.colour, "colour", "auto", "show swatches (auto, always, never)")

	return cmd
}

func runColoursList(cmd *cobra.Command, opts *coloursListOptions) error {
	logger := newLogger(cmd)
	out := cmd.OutOrStdout()

	swatches, err := wantSwatches(opts.colour, out)
	if err != nil {
		return err
	}
	if err := security.ValidateInputFile(opts.input); err != nil {
		return err
	}

	res, err := loadColourTable(opts.input, false, logger)
	if err != nil {
		return err
	}

	headers := []string{"Name", "Hex", "R", "G", "B"}
	if swatches {
		headers = append(headers, "Colour")
	}
	table := NewTable(headers)
	table.SetColumnMaxWidth(0, 28)
	for _, e := range res.Table.Filter(opts.match) {
		row := []string{e.Name, e.Hex(), strconv.Itoa(e.Red), strconv.Itoa(e.Green), strconv.Itoa(e.Blue)}
		if swatches {
			row = append(row, colour.ColourPreviewWithText(e, e.Hex(), 12))
		}
		table.AddRow(row)
	}

	_, err = io.WriteString(out, table.Render())
	return err
}

// wantSwatches decides whether to print ANSI swatches for mode on w.
func wantSwatches(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil // #nosec G115 - file descriptors fit in int
	default:
		return false, fmt.Errorf("invalid colour mode %q (valid: auto, always, never)", mode)
	}
}
