package cli

import (
	"github.com/daisuke/desktools/internal/crop"
	"github.com/daisuke/desktools/internal/image"
	"github.com/spf13/cobra"
)

type cropOptions struct {
	region crop.Geometry
	magick string
	prefix string
	ext    string
	check  bool
}

func newCropCmd() *cobra.Command {
	opts := &cropOptions{}
	opts.region, _ = crop.ParseGeometry(crop.DefaultRegion)

	cmd := &cobra.Command{
		Use:   "crop <file>...",
		Short: "Print ImageMagick commands to crop screenshots",
		Long: `Print shell commands that crop each screenshot to a fixed region, saving
the result as TIFF, and then convert the TIFF back to PNG. Only files whose
name starts with the prefix and has the given extension are used; others are
reported as skipped. The commands are printed, not run: pipe them to sh.

For <stem>.png the commands write <stem>c.tif and <stem>c.png.

Examples:
  # Print commands for every Newton screenshot
  desktools crop Newton*.png

  # Use another region and run the commands straight away
  desktools crop --region 1200x1800+800+100 Newton*.png | sh`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrop(cmd, opts, args)
		},
	}

	cmd.Flags().Var(&opts.region, "region", "crop region as WxH+X+Y")
	cmd.Flags().StringVar(&opts.magick, "magick", crop.DefaultMagick, "location of the ImageMagick magick command")
	cmd.Flags().StringVar(&opts.prefix, "prefix", crop.DefaultPrefix, "only process files whose name starts with this")
	cmd.Flags().StringVar(&opts.ext, "ext", crop.DefaultExt, "only process files with this extension")
	cmd.Flags().BoolVar(&opts.check, "check", false, "warn when the region does not fit inside an image")

	return cmd
}

func runCrop(cmd *cobra.Command, opts *cropOptions, paths []string) error {
	logger := newLogger(cmd)

	planner := &crop.Planner{
		Magick: opts.magick,
		Region: opts.region,
		Prefix: opts.prefix,
		Ext:    opts.ext,
	}

	if opts.check {
		for _, path := range paths {
			if !planner.Matches(path) {
				continue
			}
			if !image.IsImageFile(path) {
				logger.Debug("cannot check region of this file type", "file", path)
				continue
			}
			if err := planner.CheckRegion(path); err != nil {
				logger.Warn("crop region check failed", "file", path, "error", err)
			}
		}
	}

	return planner.Write(cmd.OutOrStdout(), paths)
}
