package imagor

import (
	"github.com/urlpix/urlpix/core"
	apperrors "github.com/urlpix/urlpix/errors"
)

// capabilities is the by-name dispatch table for the CLI and comparison
// layers.  Handlers parse string arguments and delegate to the typed
// builder methods, so validation lives in one place.
var capabilities = core.NewRegistry[*Imagor]()

// Capabilities returns the registry driving ApplyCall.
func Capabilities() *core.Registry[*Imagor] { return capabilities }

// ApplyCall applies a single by-name capability call.
func (i *Imagor) ApplyCall(call core.Call) (*Imagor, error) {
	return capabilities.Apply(i, call)
}

// ApplyCalls applies a chain of capability calls, stopping at the first
// failure.
func (i *Imagor) ApplyCalls(calls ...core.Call) (*Imagor, error) {
	cur := i
	for _, call := range calls {
		next, err := cur.ApplyCall(call)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func init() {
	capabilities.Register("resize", func(i *Imagor, args []string) (*Imagor, error) {
		w, h, err := parsePair("resize", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(i.Resize(w, h))
	})
	capabilities.Register("fit-in", func(i *Imagor, args []string) (*Imagor, error) {
		w, h, err := parsePair("fit-in", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(i.FitIn(w, h))
	})
	capabilities.Register("stretch", func(i *Imagor, args []string) (*Imagor, error) {
		w, h, err := parsePair("stretch", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(i.Stretch(w, h))
	})
	capabilities.Register("crop", func(i *Imagor, args []string) (*Imagor, error) {
		coords, err := parseCoords("crop", args, 4)
		if err != nil {
			return nil, err
		}
		return i.Crop(coords[0], coords[1], coords[2], coords[3]), nil
	})
	capabilities.Register("focal", func(i *Imagor, args []string) (*Imagor, error) {
		switch len(args) {
		case 2:
			coords, err := parseCoords("focal", args, 2)
			if err != nil {
				return nil, err
			}
			return i.FocalPoint(coords[0], coords[1]), nil
		case 4:
			coords, err := parseCoords("focal", args, 4)
			if err != nil {
				return nil, err
			}
			return i.FocalRegion(coords[0], coords[1], coords[2], coords[3]), nil
		}
		return nil, apperrors.Invalidf("focal",
			"need a 2-coordinate point or a 4-coordinate region, got %d args", len(args))
	})
	capabilities.Register("trim", func(i *Imagor, args []string) (*Imagor, error) {
		if err := core.WantArgs("trim", args, 0, 0); err != nil {
			return nil, err
		}
		return i.Trim(), nil
	})
	capabilities.Register("smart", func(i *Imagor, args []string) (*Imagor, error) {
		return i.SmartCrop(), nil
	})
	capabilities.Register("orient", func(i *Imagor, args []string) (*Imagor, error) {
		angle, err := parseOne("orient", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(i.Orient(angle))
	})
	capabilities.Register("rotate", func(i *Imagor, args []string) (*Imagor, error) {
		angle, err := parseOne("rotate", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(i.Rotate(angle))
	})
	capabilities.Register("blur", func(i *Imagor, args []string) (*Imagor, error) {
		radius, err := parseOne("blur", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(i.Blur(radius))
	})
	capabilities.Register("quality", func(i *Imagor, args []string) (*Imagor, error) {
		q, err := parseOne("quality", args)
		if err != nil {
			return nil, err
		}
		return i.Quality(q), nil
	})
	capabilities.Register("grayscale", func(i *Imagor, args []string) (*Imagor, error) {
		return i.Grayscale(), nil
	})
	capabilities.Register("brightness", func(i *Imagor, args []string) (*Imagor, error) {
		amount, err := parseOne("brightness", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(i.Brightness(amount))
	})
	capabilities.Register("contrast", func(i *Imagor, args []string) (*Imagor, error) {
		amount, err := parseOne("contrast", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(i.Contrast(amount))
	})
	capabilities.Register("round-corner", func(i *Imagor, args []string) (*Imagor, error) {
		if err := core.WantArgs("round-corner", args, 1, 3); err != nil {
			return nil, err
		}
		rx, err := core.ParseInt("round-corner", args[0])
		if err != nil {
			return nil, err
		}
		ry, color := rx, ""
		if len(args) > 1 {
			if ry, err = core.ParseInt("round-corner", args[1]); err != nil {
				return nil, err
			}
		}
		if len(args) > 2 {
			color = args[2]
		}
		return i.RoundCornerWith(rx, ry, color), nil
	})
	capabilities.Register("format", func(i *Imagor, args []string) (*Imagor, error) {
		if err := core.WantArgs("format", args, 1, 1); err != nil {
			return nil, err
		}
		return i.Format(args[0]), nil
	})
	capabilities.Register("proportion", func(i *Imagor, args []string) (*Imagor, error) {
		if err := core.WantArgs("proportion", args, 1, 1); err != nil {
			return nil, err
		}
		pct, err := core.ParseFloat("proportion", args[0])
		if err != nil {
			return nil, err
		}
		return stickyResult(i.Proportion(pct))
	})
	capabilities.Register("upscale", func(i *Imagor, args []string) (*Imagor, error) {
		return i.Upscale(), nil
	})
	capabilities.Register("watermark", func(i *Imagor, args []string) (*Imagor, error) {
		if err := core.WantArgs("watermark", args, 4, 4); err != nil {
			return nil, err
		}
		x, err := ParsePosition("watermark", args[1])
		if err != nil {
			return nil, err
		}
		y, err := ParsePosition("watermark", args[2])
		if err != nil {
			return nil, err
		}
		alpha, err := core.ParseInt("watermark", args[3])
		if err != nil {
			return nil, err
		}
		return stickyResult(i.Watermark(args[0], x, y, alpha))
	})
	capabilities.Register("meta", func(i *Imagor, args []string) (*Imagor, error) {
		return i.Meta(), nil
	})
}

// stickyResult converts a sticky builder error into a handler error so
// by-name callers see failures immediately.
func stickyResult(i *Imagor) (*Imagor, error) {
	if err := i.Err(); err != nil {
		return nil, err
	}
	return i, nil
}

func parseOne(op string, args []string) (int, error) {
	if err := core.WantArgs(op, args, 1, 1); err != nil {
		return 0, err
	}
	return core.ParseInt(op, args[0])
}

func parsePair(op string, args []string) (int, int, error) {
	if err := core.WantArgs(op, args, 2, 2); err != nil {
		return 0, 0, err
	}
	w, err := core.ParseInt(op, args[0])
	if err != nil {
		return 0, 0, err
	}
	h, err := core.ParseInt(op, args[1])
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func parseCoords(op string, args []string, n int) ([]core.Coord, error) {
	if err := core.WantArgs(op, args, n, n); err != nil {
		return nil, err
	}
	coords := make([]core.Coord, n)
	for idx, a := range args {
		c, err := core.ParseCoord(op, a)
		if err != nil {
			return nil, err
		}
		coords[idx] = c
	}
	return coords, nil
}
