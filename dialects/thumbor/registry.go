package thumbor

import (
	"github.com/urlpix/urlpix/core"
	apperrors "github.com/urlpix/urlpix/errors"
)

// capabilities is the by-name dispatch table for the CLI and comparison
// layers.
var capabilities = core.NewRegistry[*Thumbor]()

// Capabilities returns the registry driving ApplyCall.
func Capabilities() *core.Registry[*Thumbor] { return capabilities }

// ApplyCall applies a single by-name capability call.
func (t *Thumbor) ApplyCall(call core.Call) (*Thumbor, error) {
	return capabilities.Apply(t, call)
}

// ApplyCalls applies a chain of capability calls, stopping at the first
// failure.
func (t *Thumbor) ApplyCalls(calls ...core.Call) (*Thumbor, error) {
	cur := t
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
	capabilities.Register("resize", func(t *Thumbor, args []string) (*Thumbor, error) {
		w, h, err := parsePair("resize", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(t.Resize(w, h))
	})
	capabilities.Register("fit-in", func(t *Thumbor, args []string) (*Thumbor, error) {
		if err := core.WantArgs("fit-in", args, 2, 3); err != nil {
			return nil, err
		}
		w, err := core.ParseInt("fit-in", args[0])
		if err != nil {
			return nil, err
		}
		h, err := core.ParseInt("fit-in", args[1])
		if err != nil {
			return nil, err
		}
		method := FitInDefault
		if len(args) == 3 {
			switch args[2] {
			case "full":
				method = FitInFull
			case "adaptive":
				method = FitInAdaptive
			default:
				return nil, apperrors.Invalidf("fit-in", "unknown fit-in method %q", args[2])
			}
		}
		return stickyResult(t.FitInMethod(w, h, method))
	})
	capabilities.Register("stretch", func(t *Thumbor, args []string) (*Thumbor, error) {
		w, h, err := parsePair("stretch", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(t.Stretch(w, h))
	})
	capabilities.Register("crop", func(t *Thumbor, args []string) (*Thumbor, error) {
		coords, err := parseCoords("crop", args, 4)
		if err != nil {
			return nil, err
		}
		return t.Crop(coords[0], coords[1], coords[2], coords[3]), nil
	})
	capabilities.Register("focal", func(t *Thumbor, args []string) (*Thumbor, error) {
		coords, err := parseCoords("focal", args, 4)
		if err != nil {
			return nil, err
		}
		return t.Focal(coords[0], coords[1], coords[2], coords[3]), nil
	})
	capabilities.Register("trim", func(t *Thumbor, args []string) (*Thumbor, error) {
		return t.Trim(), nil
	})
	capabilities.Register("smart", func(t *Thumbor, args []string) (*Thumbor, error) {
		return t.SmartCrop(), nil
	})
	capabilities.Register("meta", func(t *Thumbor, args []string) (*Thumbor, error) {
		if err := core.WantArgs("meta", args, 0, 0); err != nil {
			return nil, err
		}
		return t.Meta(), nil
	})
	capabilities.Register("rotate", func(t *Thumbor, args []string) (*Thumbor, error) {
		angle, err := parseOne("rotate", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(t.Rotate(angle))
	})
	capabilities.Register("blur", func(t *Thumbor, args []string) (*Thumbor, error) {
		radius, err := parseOne("blur", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(t.Blur(radius))
	})
	capabilities.Register("quality", func(t *Thumbor, args []string) (*Thumbor, error) {
		q, err := parseOne("quality", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(t.Quality(q))
	})
	capabilities.Register("noise", func(t *Thumbor, args []string) (*Thumbor, error) {
		amount, err := parseOne("noise", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(t.Noise(amount))
	})
	capabilities.Register("grayscale", func(t *Thumbor, args []string) (*Thumbor, error) {
		return t.Grayscale(), nil
	})
	capabilities.Register("brightness", func(t *Thumbor, args []string) (*Thumbor, error) {
		amount, err := parseOne("brightness", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(t.Brightness(amount))
	})
	capabilities.Register("contrast", func(t *Thumbor, args []string) (*Thumbor, error) {
		amount, err := parseOne("contrast", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(t.Contrast(amount))
	})
	capabilities.Register("round-corner", func(t *Thumbor, args []string) (*Thumbor, error) {
		if err := core.WantArgs("round-corner", args, 1, 2); err != nil {
			return nil, err
		}
		rx, err := core.ParseInt("round-corner", args[0])
		if err != nil {
			return nil, err
		}
		color := ""
		if len(args) == 2 {
			color = args[1]
		}
		return stickyResult(t.RoundCornerColor(rx, color))
	})
	capabilities.Register("format", func(t *Thumbor, args []string) (*Thumbor, error) {
		if err := core.WantArgs("format", args, 1, 2); err != nil {
			return nil, err
		}
		quality := 0
		if len(args) == 2 {
			var err error
			if quality, err = core.ParseInt("format", args[1]); err != nil {
				return nil, err
			}
		}
		return stickyResult(t.Format(args[0], quality))
	})
	capabilities.Register("proportion", func(t *Thumbor, args []string) (*Thumbor, error) {
		if err := core.WantArgs("proportion", args, 1, 1); err != nil {
			return nil, err
		}
		pct, err := core.ParseFloat("proportion", args[0])
		if err != nil {
			return nil, err
		}
		return stickyResult(t.Proportion(pct))
	})
	capabilities.Register("upscale", func(t *Thumbor, args []string) (*Thumbor, error) {
		return t.Upscale(), nil
	})
}

func stickyResult(t *Thumbor) (*Thumbor, error) {
	if err := t.Err(); err != nil {
		return nil, err
	}
	return t, nil
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
