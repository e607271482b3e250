package core

import (
	"strconv"
	"strings"

	apperrors "github.com/urlpix/urlpix/errors"
)

// ParseInt converts a capability-call argument to an int, attributing
// failures to the named operation.
func ParseInt(op, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.Invalidf(op, "expected integer, got %q", s)
	}
	return v, nil
}

// ParseFloat converts a capability-call argument to a float64.
func ParseFloat(op, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, apperrors.Invalidf(op, "expected number, got %q", s)
	}
	return v, nil
}

// ParseCoord converts a capability-call argument to a Coord: values with a
// decimal point become relative coordinates, everything else pixels.
func ParseCoord(op, s string) (Coord, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ".") {
		v, err := ParseFloat(op, s)
		if err != nil {
			return Coord{}, err
		}
		return Rel(v), nil
	}
	v, err := ParseInt(op, s)
	if err != nil {
		return Coord{}, err
	}
	return Px(v), nil
}

// WantArgs checks the argument count of a capability call.
func WantArgs(op string, args []string, min, max int) error {
	if len(args) < min || (max >= 0 && len(args) > max) {
		return apperrors.Invalidf(op, "wrong argument count %d", len(args))
	}
	return nil
}
