package imagor

import (
	"strconv"

	"github.com/urlpix/urlpix/core"
	apperrors "github.com/urlpix/urlpix/errors"
	"github.com/urlpix/urlpix/utils"
)

// Position is a watermark/label placement token: a named anchor, an
// absolute pixel offset, or a percentage of the image dimension.
type Position struct {
	s string
}

// Named anchors.
var (
	Left   = Position{"left"}
	Center = Position{"center"}
	Right  = Position{"right"}
	Top    = Position{"top"}
	Middle = Position{"middle"}
	Bottom = Position{"bottom"}
	Repeat = Position{"repeat"}
)

// At returns an absolute pixel position measured from the left/top edge.
func At(px int) Position { return Position{strconv.Itoa(px)} }

// AtPct returns a percentage position ("20p" for 20%).
func AtPct(pct int) Position { return Position{strconv.Itoa(pct) + "p"} }

func (p Position) String() string { return p.s }

// Watermark overlays another image at the given position with the given
// transparency (0 opaque - 100 invisible).  The watermark locator is
// percent-encoded into a single filter argument.
func (i *Imagor) Watermark(image string, x, y Position, alpha int) *Imagor {
	n := i.clone()
	if alpha < 0 || alpha > 100 {
		n.p.Fail(apperrors.Invalidf("watermark", "alpha must be in [0, 100], got %d", alpha))
		return n
	}
	n.p.AddFilter("watermark",
		utils.EncodeImagePath(image), x.String(), y.String(), strconv.Itoa(alpha))
	return n
}

// WatermarkScaled is Watermark with the overlay scaled to wRatio/hRatio
// percent of the base image dimensions.
func (i *Imagor) WatermarkScaled(image string, x, y Position, alpha int, wRatio, hRatio float64) *Imagor {
	n := i.clone()
	if alpha < 0 || alpha > 100 {
		n.p.Fail(apperrors.Invalidf("watermark", "alpha must be in [0, 100], got %d", alpha))
		return n
	}
	n.p.AddFilter("watermark",
		utils.EncodeImagePath(image), x.String(), y.String(), strconv.Itoa(alpha),
		trimFloat(wRatio), trimFloat(hRatio))
	return n
}

// Label draws text at the given position.  Color is a hex string without
// the leading "#".
func (i *Imagor) Label(text string, x, y Position, size int, color string) *Imagor {
	return i.AddFilter("label",
		text, x.String(), y.String(), strconv.Itoa(size), utils.NormalizeHexColor(color))
}

// LabelStyled is Label with explicit transparency (0-100) and font.
func (i *Imagor) LabelStyled(text string, x, y Position, size int, color string, alpha int, font string) *Imagor {
	n := i.clone()
	if alpha < 0 || alpha > 100 {
		n.p.Fail(apperrors.Invalidf("label", "alpha must be in [0, 100], got %d", alpha))
		return n
	}
	args := []string{text, x.String(), y.String(), strconv.Itoa(size), utils.NormalizeHexColor(color), strconv.Itoa(alpha)}
	if font != "" {
		args = append(args, font)
	}
	n.p.AddFilter("label", args...)
	return n
}

// ParsePosition converts a capability-call token to a Position: a named
// anchor, a percentage with "p" suffix, or a pixel offset.
func ParsePosition(op, s string) (Position, error) {
	switch s {
	case "left", "center", "right", "top", "middle", "bottom", "repeat":
		return Position{s}, nil
	}
	num := s
	if len(s) > 1 && s[len(s)-1] == 'p' {
		num = s[:len(s)-1]
	}
	if _, err := core.ParseInt(op, num); err != nil {
		return Position{}, apperrors.Invalidf(op, "bad position %q", s)
	}
	return Position{s}, nil
}
