package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/daisuke/desktools/internal/capture"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type captureOptions struct {
	book       string
	format     string
	dir        string
	initial    int
	pages      int
	interval   int
	convert    string
	xdotool    string
	xdpyinfo   string
	kimport    string
	offsetX    int
	offsetY    int
	direction  string
	skipXCheck bool
}

func (o *captureOptions) config() capture.Config {
	return capture.Config{
		Book:      o.book,
		Format:    o.format,
		Dir:       o.dir,
		Initial:   time.Duration(o.initial) * time.Second,
		Interval:  time.Duration(o.interval) * time.Second,
		Pages:     o.pages,
		OffsetX:   o.offsetX,
		OffsetY:   o.offsetY,
		Direction: capture.Direction(o.direction),
		Tools: capture.Tools{
			Convert:  o.convert,
			Import:   o.kimport,
			Xdotool:  o.xdotool,
			Xdpyinfo: o.xdpyinfo,
		},
	}
}

// addCaptureFlags registers the capture flags, seeded from capture.DefaultConfig.
func addCaptureFlags(fs *pflag.FlagSet, o *captureOptions) {
	d := capture.DefaultConfig()

	fs.StringVarP(&o.book, "book", "b", d.Book, "book name, used as the file name prefix")
	fs.StringVarP(&o.format, "format", "f", d.Format, "image format ("+strings.Join(capture.ValidFormats(), ", ")+")")
	fs.StringVar(&o.dir, "dir", d.Dir, "directory to write images to")
	fs.IntVarP(&o.initial, "initial", "i", int(d.Initial/time.Second), "seconds to wait before the first screenshot")
	fs.IntVarP(&o.pages, "number", "n", d.Pages, "number of pages")
	fs.IntVarP(&o.interval, "sleep", "s", int(d.Interval/time.Second), "seconds to wait between screenshots")
	fs.StringVarP(&o.convert, "convert", "c", d.Tools.Convert, "location of convert")
	fs.StringVarP(&o.xdotool, "xdotool", "t", d.Tools.Xdotool, "location of xdotool")
	fs.StringVarP(&o.xdpyinfo, "xdpyinfo", "p", d.Tools.Xdpyinfo, "location of xdpyinfo")
	fs.StringVarP(&o.kimport, "kimport", "m", d.Tools.Import, "location of import")
	fs.IntVarP(&o.offsetX, "offsetx", "x", d.OffsetX, "click position from the left (vertical) or right (horizontal) edge")
	fs.IntVarP(&o.offsetY, "offsety", "y", d.OffsetY, "click position from the bottom edge")
	fs.StringVarP(&o.direction, "direction", "d", string(d.Direction), "writing direction (vertical, horizontal)")
	fs.BoolVar(&o.skipXCheck, "skip-x-check", false, "do not look for a running X server")
}

func newCaptureCmd() *cobra.Command {
	opts := &captureOptions{}

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Take screenshots and move to the next page automatically",
		Long: `Screenshot the whole screen once per page of a document, clicking to turn
the page after each shot. Images are named <book>_<NNNNNN>.<format>.

The click position is measured from the bottom of the screen and from the
left edge for vertical writing or the right edge for horizontal writing.
Screen size is read from xdpyinfo; screenshots are taken with ImageMagick
import and converted with convert when the format is not png; clicks are
sent with xdotool.

Press Ctrl-C to stop early.

Examples:
  # Capture 150 pages of a vertically written book
  desktools capture -b novel

  # Capture 20 horizontally written pages as TIFF, 5 seconds apart
  desktools capture -b manual -n 20 -s 5 -f tiff -d horizontal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCapture(cmd, opts)
		},
	}

	addCaptureFlags(cmd.Flags(), opts)

	return cmd
}

func runCapture(cmd *cobra.Command, opts *captureOptions) error {
	logger := newLogger(cmd)
	cfg := opts.config()

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := capture.CheckTools(cfg.Tools); err != nil {
		return fmt.Errorf("required commands are missing, install them first:\n%w", err)
	}
	if info, err := os.Stat(cfg.Dir); err != nil || !info.IsDir() {
		return fmt.Errorf("output directory %q is not a directory", cfg.Dir)
	}

	if !opts.skipXCheck {
		pid, name, found, err := capture.DetectDisplayServer()
		switch {
		case err != nil:
			logger.Warn("could not inspect running processes", "error", err)
		case !found:
			logger.Warn("no X server process found; screenshots may fail")
		default:
			logger.Debug("X server found", "name", name, "pid", pid)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	session := capture.NewSession(cfg, logger)
	files, err := session.Run(ctx)
	if err != nil {
		if len(files) > 0 {
			logger.Info("stopped early", "pages_captured", len(files))
		}
		return err
	}
	return nil
}
