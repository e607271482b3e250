// Package wsrv builds URLs for the wsrv.nl image proxy.
//
// The dialect serializes as a query string rather than a slash path:
// every pipeline step becomes one query parameter, and URLs are never
// signed.  Operations that the service cannot express (round corners)
// are documented no-ops.
package wsrv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urlpix/urlpix/core"
	apperrors "github.com/urlpix/urlpix/errors"
	"github.com/urlpix/urlpix/utils"
)

// Fit selects how the image is resized into the requested box.
type Fit string

const (
	FitCover   Fit = "cover"
	FitContain Fit = "contain"
	FitFill    Fit = "fill"
	FitInside  Fit = "inside"
	FitOutside Fit = "outside"
)

// Wsrv is the URL builder for the wsrv.nl dialect.
type Wsrv struct {
	p *core.Pipeline
}

// New creates a builder for the given proxy base URL.
func New(baseURL string) *Wsrv {
	return &Wsrv{p: core.NewPipeline(baseURL, "", nil, nil)}
}

// Pipeline exposes the underlying pipeline for hooks and tests.
func (w *Wsrv) Pipeline() *core.Pipeline { return w.p }

func (w *Wsrv) clone() *Wsrv { return &Wsrv{p: w.p.Clone()} }

// Clone returns an independent copy of the builder.
func (w *Wsrv) Clone() *Wsrv { return w.clone() }

// Err returns the first validation error recorded on this builder chain.
func (w *Wsrv) Err() error { return w.p.Err() }

// WithImage sets the source image locator.
func (w *Wsrv) WithImage(image string) *Wsrv {
	n := w.clone()
	n.p.SetImage(image)
	return n
}

// WithBase sets the proxy base URL.
func (w *Wsrv) WithBase(baseURL string) *Wsrv {
	n := w.clone()
	n.p.SetBase(baseURL)
	return n
}

// AddFilter inserts or replaces a query parameter by name.
func (w *Wsrv) AddFilter(name string, args ...string) *Wsrv {
	n := w.clone()
	n.p.AddFilter(name, args...)
	return n
}

// Remove deletes the query parameter with the given name.
func (w *Wsrv) Remove(name string) *Wsrv {
	n := w.clone()
	n.p.Remove(name)
	return n
}

// RemoveFilters clears all query parameters.
func (w *Wsrv) RemoveFilters() *Wsrv {
	n := w.clone()
	n.p.RemoveFilters()
	return n
}

// Path renders the query string: ?url=<encoded-image>&k=v&...
// Parameters appear in insertion order; a parameter without a value
// renders as a bare key.
func (w *Wsrv) Path() (string, error) {
	if err := w.p.Err(); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("?url=")
	b.WriteString(utils.EncodeImagePath(strings.Trim(w.p.Image(), "/")))
	for _, f := range w.p.Filters() {
		b.WriteByte('&')
		b.WriteString(f.Name)
		if len(f.Args) > 0 {
			b.WriteByte('=')
			b.WriteString(f.Args[0])
		}
	}
	query := b.String()
	w.p.NotifyRender(query, nil)
	return query, nil
}

// URL renders the full URL: the base URL followed by the query string.
func (w *Wsrv) URL() (string, error) {
	path, err := w.Path()
	if err != nil {
		return "", err
	}
	if w.p.BaseURL() == "" {
		return path, nil
	}
	return w.p.BaseURL() + "/" + path, nil
}

// ── Pipeline steps (all expressed as query parameters) ───────────────────────

// Resize sets the target width and height.
func (w *Wsrv) Resize(width, height int) *Wsrv {
	n := w.clone()
	n.p.AddFilter("w", strconv.Itoa(width))
	n.p.AddFilter("h", strconv.Itoa(height))
	return n
}

// Crop cuts the region bounded by the left-top and right-bottom points.
// wsrv takes the crop as an origin plus extent.
func (w *Wsrv) Crop(left, top, right, bottom int) *Wsrv {
	n := w.clone()
	n.p.AddFilter("cx", strconv.Itoa(right))
	n.p.AddFilter("cy", strconv.Itoa(bottom))
	n.p.AddFilter("cw", strconv.Itoa(right-left))
	n.p.AddFilter("ch", strconv.Itoa(bottom-top))
	return n
}

// FitIn resizes into the given box with the given fit mode.  Upscaling is
// on by default; NoUpscale disables it.
func (w *Wsrv) FitIn(width, height int, fit Fit) *Wsrv {
	n := w.clone()
	n.p.AddFilter("w", strconv.Itoa(width))
	n.p.AddFilter("h", strconv.Itoa(height))
	n.p.AddFilter("fit", string(fit))
	return n
}

// Upscale re-enables enlargement past the original dimensions.
func (w *Wsrv) Upscale() *Wsrv {
	n := w.clone()
	n.p.Remove("we")
	return n
}

// NoUpscale prevents enlargement past the original dimensions.
func (w *Wsrv) NoUpscale() *Wsrv { return w.AddFilter("we") }

// Rotate rotates by the given angle after processing.
func (w *Wsrv) Rotate(angle int) *Wsrv {
	return w.AddFilter("ro", strconv.Itoa(angle))
}

// BackgroundColor sets the background layer color.
func (w *Wsrv) BackgroundColor(color string) *Wsrv {
	return w.AddFilter("bg", utils.NormalizeHexColor(color))
}

// Blur applies gaussian blur.  The service takes a kernel deviation, so
// the radius maps through sigma = 1 + radius/2.
func (w *Wsrv) Blur(radius int) *Wsrv {
	sigma := 1 + float64(radius)/2
	return w.AddFilter("blur", fmt.Sprintf("%.2f", sigma))
}

// BlurSigma applies gaussian blur with an explicit kernel deviation.
func (w *Wsrv) BlurSigma(sigma float64) *Wsrv {
	return w.AddFilter("blur", fmt.Sprintf("%.2f", sigma))
}

// Contrast adjusts contrast by amount percent (-100 to 100).
func (w *Wsrv) Contrast(amount int) *Wsrv {
	n := w.clone()
	if amount < -100 || amount > 100 {
		n.p.Fail(apperrors.Invalidf("contrast", "amount must be in [-100, 100], got %d", amount))
		return n
	}
	n.p.AddFilter("con", strconv.Itoa(amount))
	return n
}

// Sharpen sharpens the image with an explicit kernel deviation and
// optional flat/jagged strengths (pass negative values to omit them).
func (w *Wsrv) Sharpen(sigma float64, flat, jagged int) *Wsrv {
	n := w.clone()
	n.p.AddFilter("sharp", fmt.Sprintf("%.6f", sigma))
	if flat >= 0 {
		n.p.AddFilter("sharpf", strconv.Itoa(flat))
	}
	if jagged >= 0 {
		n.p.AddFilter("sharpj", strconv.Itoa(jagged))
	}
	return n
}

// Format converts the output to the given format.  "jpeg" normalizes to
// "jpg"; a positive quality maps to the q parameter and a non-empty
// filename to the filename parameter.
func (w *Wsrv) Format(format string, quality int, filename string) *Wsrv {
	n := w.clone()
	format = strings.ToLower(format)
	if format == "jpeg" {
		format = "jpg"
	}
	if quality != 0 {
		if quality < 1 || quality > 100 {
			n.p.Fail(apperrors.Invalidf("format", "quality must be in [1, 100], got %d", quality))
			return n
		}
		n.p.AddFilter("q", strconv.Itoa(quality))
	}
	if filename != "" {
		n.p.AddFilter("filename", filename)
	}
	n.p.AddFilter("output", format)
	return n
}

// Grayscale converts the image to grayscale.
func (w *Wsrv) Grayscale() *Wsrv { return w.AddFilter("filt", "greyscale") }

// RoundCorner is accepted for interface parity but the service has no
// equivalent capability, so it is a no-op.
func (w *Wsrv) RoundCorner(rx int) *Wsrv { return w.clone() }

// Meta switches the output to the service's JSON metadata document.
func (w *Wsrv) Meta() *Wsrv { return w.AddFilter("output", "json") }
