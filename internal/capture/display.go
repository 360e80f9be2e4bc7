package capture

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/daisuke/desktools/internal/security"
	"github.com/mitchellh/go-ps"
)

// ErrNoDimensions is returned when xdpyinfo output has no screen size.
var ErrNoDimensions = errors.New("no screen dimensions in xdpyinfo output")

var dimensionsPattern = regexp.MustCompile(`dimensions:\s+(\d+)x(\d+)\s+pixels`)

// displayServers are executable names that provide an X display.
var displayServers = []string{"Xorg", "X", "Xwayland", "Xvfb", "Xephyr", "Xnest", "Xvnc"}

// ParseDimensions extracts the first screen's size from xdpyinfo output.
func ParseDimensions(out string) (width, height int, err error) {
	m := dimensionsPattern.FindStringSubmatch(out)
	if m == nil {
		return 0, 0, ErrNoDimensions
	}
	width, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrNoDimensions, err)
	}
	height, err = strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrNoDimensions, err)
	}
	return width, height, nil
}

// ClickPoint returns where to click to turn the page. Offsets are measured
// from the bottom edge and, for vertical text, from the left edge; for
// horizontal text, from the right edge.
func ClickPoint(dir Direction, width, height, offsetX, offsetY int) (x, y int) {
	y = height - offsetY
	if dir == Horizontal {
		return width - offsetX, y
	}
	return offsetX, y
}

// CheckTools verifies that every tool exists and is executable. The error
// lists every missing tool, not just the first.
func CheckTools(tools Tools) error {
	var errs []error
	for _, tool := range tools.All() {
		if err := security.ValidateExecutable(tool[1]); err != nil {
			errs = append(errs, fmt.Errorf("command %s: %w", tool[0], err))
		}
	}
	return errors.Join(errs...)
}

// DetectDisplayServer returns the PID and name of a running X server.
// found is false when none is visible in the process table.
func DetectDisplayServer() (pid int, name string, found bool, err error) {
	processes, err := ps.Processes()
	if err != nil {
		return 0, "", false, fmt.Errorf("failed to get process list: %w", err)
	}
	return findDisplayServer(processes)
}

func findDisplayServer(processes []ps.Process) (int, string, bool, error) {
	for _, p := range processes {
		if slices.Contains(displayServers, p.Executable()) {
			return p.Pid(), p.Executable(), true, nil
		}
	}
	return 0, "", false, nil
}
