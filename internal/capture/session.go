package capture

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/daisuke/desktools/internal/executor"
	"github.com/hashicorp/go-hclog"
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Session drives the capture loop.
type Session struct {
	Config Config
	Runner executor.ProcessRunner
	Sleep  Sleeper
	Logger hclog.Logger

	// Remove deletes intermediate screenshots; defaults to os.Remove.
	Remove func(path string) error
}

// NewSession creates a session that runs real commands.
func NewSession(cfg Config, logger hclog.Logger) *Session {
	return &Session{
		Config: cfg,
		Runner: executor.NewRealProcessRunner(),
		Sleep:  SleepContext,
		Logger: logger,
		Remove: os.Remove,
	}
}

func (s *Session) logger() hclog.Logger {
	if s.Logger == nil {
		return hclog.NewNullLogger()
	}
	return s.Logger
}

func (s *Session) path(name string) string {
	if s.Config.Dir == "" {
		return name
	}
	return filepath.Join(s.Config.Dir, name)
}

func (s *Session) run(ctx context.Context, path string, args ...string) ([]byte, error) {
	s.logger().Debug("running command", "path", path, "args", args)
	stdout, _, err := s.Runner.Run(ctx, path, args, nil)
	return stdout, err
}

// ScreenSize asks xdpyinfo for the screen dimensions.
func (s *Session) ScreenSize(ctx context.Context) (width, height int, err error) {
	out, err := s.run(ctx, s.Config.Tools.Xdpyinfo)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query display: %w", err)
	}
	width, height, err = ParseDimensions(string(out))
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected output from %s: %w", s.Config.Tools.Xdpyinfo, err)
	}
	return width, height, nil
}

// Run captures every page and returns the files written, in page order.
// Cancelling ctx stops the loop between commands; the files captured so
// far are still returned.
func (s *Session) Run(ctx context.Context) ([]string, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid capture configuration: %w", err)
	}
	log := s.logger()
	cfg := s.Config

	width, height, err := s.ScreenSize(ctx)
	if err != nil {
		return nil, err
	}
	x, y := ClickPoint(cfg.Direction, width, height, cfg.OffsetX, cfg.OffsetY)
	log.Info("screen detected", "width", width, "height", height, "click_x", x, "click_y", y)

	log.Info("waiting before taking screenshots", "seconds", cfg.Initial.Seconds())
	if err := s.Sleep(ctx, cfg.Initial); err != nil {
		return nil, err
	}

	var files []string
	for i := 0; i < cfg.Pages; i++ {
		page := i + 1
		log.Info("taking page", "page", page, "of", cfg.Pages)

		file, err := s.capturePage(ctx, i)
		if err != nil {
			return files, fmt.Errorf("page %d: %w", page, err)
		}
		files = append(files, file)

		if err := s.turnPage(ctx, x, y); err != nil {
			return files, fmt.Errorf("page %d: %w", page, err)
		}

		log.Debug("sleeping", "seconds", cfg.Interval.Seconds())
		if err := s.Sleep(ctx, cfg.Interval); err != nil {
			return files, err
		}
		log.Info("finished page", "page", fmt.Sprintf("%06d", page))
	}

	log.Info("finished taking screenshots for all pages", "pages", len(files))
	return files, nil
}

// capturePage screenshots the root window and converts it to the
// configured format, returning the final file path.
func (s *Session) capturePage(ctx context.Context, i int) (string, error) {
	cfg := s.Config
	log := s.logger()

	png := s.path(cfg.PageFile(i, "png"))
	if _, err := s.run(ctx, cfg.Tools.Import, "-window", "root", png); err != nil {
		return "", fmt.Errorf("screenshot failed: %w", err)
	}
	log.Debug("screenshot created", "file", png)

	if cfg.Format == "png" {
		return png, nil
	}

	out := s.path(cfg.PageFile(i, cfg.Format))
	log.Debug("converting image", "from", png, "to", out)
	if _, err := s.run(ctx, cfg.Tools.Convert, png, out); err != nil {
		return "", fmt.Errorf("conversion to %s failed: %w", cfg.Format, err)
	}

	remove := s.Remove
	if remove == nil {
		remove = os.Remove
	}
	if err := remove(png); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("failed to delete intermediate screenshot", "file", png, "error", err)
	}
	return out, nil
}

// turnPage moves the pointer to (x, y) and clicks the first button.
func (s *Session) turnPage(ctx context.Context, x, y int) error {
	xdotool := s.Config.Tools.Xdotool
	if _, err := s.run(ctx, xdotool, "mousemove", strconv.Itoa(x), strconv.Itoa(y)); err != nil {
		return fmt.Errorf("mouse move failed: %w", err)
	}
	if _, err := s.run(ctx, xdotool, "click", "1"); err != nil {
		return fmt.Errorf("mouse click failed: %w", err)
	}
	return nil
}
