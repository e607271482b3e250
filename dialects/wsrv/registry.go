package wsrv

import (
	"strconv"

	"github.com/urlpix/urlpix/core"
	apperrors "github.com/urlpix/urlpix/errors"
)

var capabilities = core.NewRegistry[*Wsrv]()

// Capabilities returns the registered capability table for this dialect.
func Capabilities() *core.Registry[*Wsrv] { return capabilities }

// ApplyCall dispatches a single named call through the capability table.
func (w *Wsrv) ApplyCall(call core.Call) (*Wsrv, error) {
	return capabilities.Apply(w, call)
}

// ApplyCalls dispatches calls in order, stopping at the first error.
func (w *Wsrv) ApplyCalls(calls ...core.Call) (*Wsrv, error) {
	var err error
	for _, c := range calls {
		w, err = w.ApplyCall(c)
		if err != nil {
			return nil, err
		}
	}
	return w, nil
}

func stickyResult(w *Wsrv) (*Wsrv, error) {
	if err := w.Err(); err != nil {
		return nil, err
	}
	return w, nil
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
	a, err := core.ParseInt(op, args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := core.ParseInt(op, args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func init() {
	capabilities.Register("resize", func(w *Wsrv, args []string) (*Wsrv, error) {
		width, height, err := parsePair("resize", args)
		if err != nil {
			return nil, err
		}
		return w.Resize(width, height), nil
	})
	capabilities.Register("fit-in", func(w *Wsrv, args []string) (*Wsrv, error) {
		if err := core.WantArgs("fit-in", args, 2, 3); err != nil {
			return nil, err
		}
		width, err := core.ParseInt("fit-in", args[0])
		if err != nil {
			return nil, err
		}
		height, err := core.ParseInt("fit-in", args[1])
		if err != nil {
			return nil, err
		}
		fit := FitContain
		if len(args) == 3 {
			fit = Fit(args[2])
		}
		return w.FitIn(width, height, fit), nil
	})
	capabilities.Register("crop", func(w *Wsrv, args []string) (*Wsrv, error) {
		if err := core.WantArgs("crop", args, 4, 4); err != nil {
			return nil, err
		}
		vals := make([]int, 4)
		for i, a := range args {
			v, err := core.ParseInt("crop", a)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return w.Crop(vals[0], vals[1], vals[2], vals[3]), nil
	})
	capabilities.Register("rotate", func(w *Wsrv, args []string) (*Wsrv, error) {
		angle, err := parseOne("rotate", args)
		if err != nil {
			return nil, err
		}
		return w.Rotate(angle), nil
	})
	capabilities.Register("blur", func(w *Wsrv, args []string) (*Wsrv, error) {
		radius, err := parseOne("blur", args)
		if err != nil {
			return nil, err
		}
		return w.Blur(radius), nil
	})
	capabilities.Register("contrast", func(w *Wsrv, args []string) (*Wsrv, error) {
		amount, err := parseOne("contrast", args)
		if err != nil {
			return nil, err
		}
		return stickyResult(w.Contrast(amount))
	})
	capabilities.Register("grayscale", func(w *Wsrv, args []string) (*Wsrv, error) {
		if err := core.WantArgs("grayscale", args, 0, 0); err != nil {
			return nil, err
		}
		return w.Grayscale(), nil
	})
	capabilities.Register("upscale", func(w *Wsrv, args []string) (*Wsrv, error) {
		if err := core.WantArgs("upscale", args, 0, 0); err != nil {
			return nil, err
		}
		return w.Upscale(), nil
	})
	capabilities.Register("round-corner", func(w *Wsrv, args []string) (*Wsrv, error) {
		rx, err := parseOne("round-corner", args)
		if err != nil {
			return nil, err
		}
		return w.RoundCorner(rx), nil
	})
	capabilities.Register("format", func(w *Wsrv, args []string) (*Wsrv, error) {
		if err := core.WantArgs("format", args, 1, 2); err != nil {
			return nil, err
		}
		quality := 0
		if len(args) == 2 {
			q, err := core.ParseInt("format", args[1])
			if err != nil {
				return nil, err
			}
			quality = q
		}
		return stickyResult(w.Format(args[0], quality, ""))
	})
	capabilities.Register("quality", func(w *Wsrv, args []string) (*Wsrv, error) {
		q, err := parseOne("quality", args)
		if err != nil {
			return nil, err
		}
		if q < 1 || q > 100 {
			return nil, apperrors.Invalidf("quality", "quality must be in [1, 100], got %d", q)
		}
		return w.AddFilter("q", strconv.Itoa(q)), nil
	})
	capabilities.Register("meta", func(w *Wsrv, args []string) (*Wsrv, error) {
		if err := core.WantArgs("meta", args, 0, 0); err != nil {
			return nil, err
		}
		return w.Meta(), nil
	})
}
