package colour

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Options controls how Build treats malformed lines.
type Options struct {
	// Strict makes structural line errors (missing separator, wrong number
	// of channels, empty name) fatal for the whole run. Channel values that
	// are not integers or are out of range are always skipped with a warning.
	Strict bool

	// Logger receives one warning per skipped line. Nil discards them.
	Logger hclog.Logger
}

// Result is the outcome of a successful Build.
type Result struct {
	Table *Table

	// Warnings holds one entry per skipped line, in input order.
	Warnings []*ParseError

	// Lines is the number of lines read, including blank and comment lines.
	Lines int

	// Replaced counts entries overwritten by a later line with the same name.
	Replaced int
}

// Build reads an rgb.txt stream and returns the resulting table.
// Blank lines and lines starting with '!' or '#' are ignored.
func Build(r io.Reader, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	res := &Result{Table: NewTable()}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		res.Lines++
		line := scanner.Text()
		if isIgnorable(line) {
			continue
		}

		entry, err := ParseLine(line)
		if err != nil {
			var perr *ParseError
			if !errors.As(err, &perr) {
				return nil, err
			}
			perr.Line = res.Lines
			if opts.Strict && isStructural(perr.Err) {
				return nil, perr
			}
			logWarning(logger, perr)
			res.Warnings = append(res.Warnings, perr)
			continue
		}

		if res.Table.Add(entry) {
			res.Replaced++
			logger.Debug("colour redefined", "name", entry.Name, "hex", entry.Hex(), "line", res.Lines)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read colour database: %w", err)
	}

	logger.Debug("colour database parsed",
		"lines", res.Lines, "colours", res.Table.Len(),
		"skipped", len(res.Warnings), "replaced", res.Replaced)

	return res, nil
}

// isIgnorable reports whether a line carries no colour definition.
func isIgnorable(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || trimmed[0] == '!' || trimmed[0] == '#'
}

// isStructural reports whether err means the line does not have rgb.txt shape.
func isStructural(err error) bool {
	return errors.Is(err, ErrDelimiter) || errors.Is(err, ErrChannelCount) || errors.Is(err, ErrEmptyName)
}

func logWarning(logger hclog.Logger, perr *ParseError) {
	switch {
	case errors.Is(perr.Err, ErrChannelSyntax):
		logger.Warn("unable to convert value into integer, skipping line",
			"line", perr.Line, "channel", string(perr.Channel), "value", perr.Token)
	case errors.Is(perr.Err, ErrChannelRange):
		logger.Warn("channel value out of range, skipping line",
			"line", perr.Line, "channel", string(perr.Channel), "value", perr.Token)
	default:
		logger.Warn("malformed line, skipping", "line", perr.Line, "error", perr.Err, "text", perr.Token)
	}
}
