package colour

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Separator splits the colour triplet from the colour name in rgb.txt.
const Separator = "\t\t"

// MaxChannel is the largest value a channel may take.
const MaxChannel = 255

var (
	// ErrDelimiter is returned when a line has no tab-tab separator.
	ErrDelimiter = errors.New("missing tab-tab separator between colour and name")

	// ErrChannelCount is returned when the colour part does not hold exactly three values.
	ErrChannelCount = errors.New("expected three channel values")

	// ErrChannelSyntax is returned when a channel token is not a base-10 integer.
	ErrChannelSyntax = errors.New("channel value is not an integer")

	// ErrChannelRange is returned when a channel value falls outside 0-255.
	ErrChannelRange = errors.New("channel value out of range 0-255")

	// ErrEmptyName is returned when the name part of a line is blank.
	ErrEmptyName = errors.New("empty colour name")
)

// ParseError describes why a single line could not be parsed.
type ParseError struct {
	// Line is the 1-based line number, or 0 when unknown.
	Line int
	// Channel is set for ErrChannelSyntax and ErrChannelRange.
	Channel Channel
	// Token is the offending text.
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	switch {
	case e.Channel != "":
		fmt.Fprintf(&b, "%s value %q: %v", e.Channel, e.Token, e.Err)
	case e.Token != "":
		fmt.Fprintf(&b, "%q: %v", e.Token, e.Err)
	default:
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseLine parses one rgb.txt line of the form "<r> <g> <b>\t\t<name>".
// Trailing line terminators are ignored. The returned error is always a
// *ParseError.
func ParseLine(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")

	code, name, ok := strings.Cut(line, Separator)
	if !ok {
		return Entry{}, &ParseError{Token: line, Err: ErrDelimiter}
	}

	// Extra separator whitespace belongs to neither side.
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, &ParseError{Token: line, Err: ErrEmptyName}
	}

	fields := strings.Fields(code)
	if len(fields) != len(channels) {
		return Entry{}, &ParseError{Token: code, Err: ErrChannelCount}
	}

	var values [3]int
	for i, field := range fields {
		v, err := parseChannel(channels[i], field)
		if err != nil {
			return Entry{}, err
		}
		values[i] = v
	}

	return Entry{
		Name:  name,
		Red:   values[0],
		Green: values[1],
		Blue:  values[2],
	}, nil
}

// parseChannel converts a single channel token to an integer in 0-255.
func parseChannel(ch Channel, token string) (int, error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, &ParseError{Channel: ch, Token: token, Err: ErrChannelSyntax}
	}
	if v < 0 || v > MaxChannel {
		return 0, &ParseError{Channel: ch, Token: token, Err: ErrChannelRange}
	}
	return v, nil
}
