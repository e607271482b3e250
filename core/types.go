package core

import (
	"fmt"
	"strconv"
)

// Operation represents one path-segment-producing pipeline step,
// e.g. "fit-in" or "resize" with arg "300x200".  A pipeline holds at most
// one operation per name.
type Operation struct {
	Name string
	Arg  string // rendered in place of the name when non-empty
}

// Filter represents one filter invocation, e.g. blur(3,2).  Filters are
// never placed in the path individually; they are folded into a single
// synthetic "filters" operation at render time.
type Filter struct {
	Name string
	Args []string
}

// Call is a by-name capability invocation, the contract the CLI and
// comparison layers use to drive a builder without static method calls.
type Call struct {
	Name string
	Args []string
}

func (c Call) String() string {
	s := c.Name + "("
	for i, a := range c.Args {
		if i > 0 {
			s += ","
		}
		s += a
	}
	return s + ")"
}

// Coord is a crop/focal coordinate: either absolute pixels or a relative
// fraction of the image dimension.  Relative values render with four
// decimal digits, matching the wire format the target servers parse.
type Coord struct {
	s string
}

// Px returns an absolute pixel coordinate.
func Px(n int) Coord { return Coord{strconv.Itoa(n)} }

// Rel returns a relative coordinate in [0, 1].
func Rel(v float64) Coord { return Coord{fmt.Sprintf("%.4f", v)} }

func (c Coord) String() string { return c.s }

// IsZero reports whether the coordinate was never set.
func (c Coord) IsZero() bool { return c.s == "" }

// ThumborOrder is the fixed serialization order for the Thumbor dialect.
// Operations render in table order regardless of call order; names absent
// from the table never render.
var ThumborOrder = []string{
	"meta",
	"trim",
	"crop",
	"fit-in",
	"full-fit-in",
	"adaptive-fit-in",
	"stretch",
	"resize",
	"halign",
	"valign",
	"smart",
	"filters",
}

// ImagorOrder is the fixed serialization order for the Imagor dialect.
var ImagorOrder = []string{
	"meta",
	"trim",
	"crop",
	"fit-in",
	"stretch",
	"resize",
	"halign",
	"valign",
	"smart",
	"filters",
}

// Logger is the minimal structured logging interface the core depends on.
// Adapters live in the hooks package.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// BuildHook observes pipeline mutations and renders.
type BuildHook interface {
	OnOperation(op Operation)
	OnFilter(f Filter)
	OnRender(path string, err error)
}
