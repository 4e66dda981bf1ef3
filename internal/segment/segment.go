// Package segment models media time segments attached to records.
package segment

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unit is the time unit segment offsets are expressed in.
type Unit string

const (
	Millisecond Unit = "ms"
	Second      Unit = "s"
)

// Segment is a start/end offset pair.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Unit  Unit    `json:"unit"`
}

// Zero is the placeholder stored when a segment cell cannot be parsed.
var Zero = Segment{Unit: Millisecond}

// ErrMalformed reports a segment cell that could not be parsed.
var ErrMalformed = errors.New("malformed segment")

// ParseError wraps ErrMalformed with the offending input.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("segment %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrMalformed }

// ErrorKind classifies segment failures as recoverable field errors.
func (e *ParseError) ErrorKind() string { return "parse" }

// Parse reads "start-end" where each side is either plain milliseconds
// ("1500") or a clock offset ("1:02.500", "0:01:02.5"). Clock values are
// converted to milliseconds. An optional "ms" or "s" suffix on plain numbers
// selects the unit.
func Parse(text string) (Segment, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return Zero, &ParseError{Input: text, Reason: "empty"}
	}
	raw = strings.Trim(raw, "()[]")
	left, right, ok := strings.Cut(raw, "-")
	if !ok {
		return Zero, &ParseError{Input: text, Reason: "expected start-end"}
	}
	unit := Millisecond
	right = strings.TrimSpace(right)
	switch {
	case strings.HasSuffix(right, "ms"):
		right = strings.TrimSuffix(right, "ms")
	case strings.HasSuffix(right, "s"):
		right = strings.TrimSuffix(right, "s")
		unit = Second
	}
	start, err := parseOffset(strings.TrimSpace(left), unit)
	if err != nil {
		return Zero, &ParseError{Input: text, Reason: "start: " + err.Error()}
	}
	end, err := parseOffset(strings.TrimSpace(right), unit)
	if err != nil {
		return Zero, &ParseError{Input: text, Reason: "end: " + err.Error()}
	}
	if end < start {
		return Zero, &ParseError{Input: text, Reason: "end precedes start"}
	}
	return Segment{Start: start, End: end, Unit: unit}, nil
}

// ParseOrZero parses text and returns Zero alongside the error on failure.
func ParseOrZero(text string) (Segment, error) {
	seg, err := Parse(text)
	if err != nil {
		return Zero, err
	}
	return seg, nil
}

func parseOffset(value string, unit Unit) (float64, error) {
	if value == "" {
		return 0, errors.New("missing value")
	}
	if !strings.Contains(value, ":") {
		value = strings.TrimSuffix(strings.TrimSuffix(value, "ms"), "s")
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return 0, fmt.Errorf("invalid number %q", value)
		}
		return f, nil
	}
	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock %q", value)
	}
	var seconds float64
	for i, part := range parts {
		last := i == len(parts)-1
		if last {
			f, err := strconv.ParseFloat(part, 64)
			if err != nil || f < 0 || f >= 60 {
				return 0, fmt.Errorf("invalid seconds %q", part)
			}
			seconds = seconds*60 + f
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || (i > 0 && n >= 60) {
			return 0, fmt.Errorf("invalid clock field %q", part)
		}
		seconds = seconds*60 + float64(n)
	}
	if unit == Second {
		return seconds, nil
	}
	return seconds * 1000, nil
}

// Duration returns End-Start in the segment's unit.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

// Milliseconds returns the offsets converted to milliseconds.
func (s Segment) Milliseconds() (float64, float64) {
	if s.Unit == Second {
		return s.Start * 1000, s.End * 1000
	}
	return s.Start, s.End
}

// String formats the segment as "m:ss.SSS-m:ss.SSS".
func (s Segment) String() string {
	start, end := s.Milliseconds()
	return formatClock(start) + "-" + formatClock(end)
}

func formatClock(ms float64) string {
	total := int64(ms + 0.5)
	minutes := total / 60000
	seconds := (total % 60000) / 1000
	millis := total % 1000
	return fmt.Sprintf("%d:%02d.%03d", minutes, seconds, millis)
}
