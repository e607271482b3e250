// Package imagor builds signed URLs for imagor servers.
//
// Every mutating method clones the builder and returns the clone, so a
// builder value can be branched and shared freely.  Methods that validate
// record the first violation on the returned clone; Err exposes it and
// Path/URL fail with it.
package imagor

import (
	"fmt"
	"strconv"

	"github.com/urlpix/urlpix/core"
	apperrors "github.com/urlpix/urlpix/errors"
	"github.com/urlpix/urlpix/utils"
)

// Alignment keywords shared by crop and align operations.
const (
	HAlignLeft   = "left"
	HAlignCenter = "center"
	HAlignRight  = "right"
	VAlignTop    = "top"
	VAlignMiddle = "middle"
	VAlignBottom = "bottom"
)

// Trim anchor keywords.
const (
	TrimByTopLeft     = "top-left"
	TrimByBottomRight = "bottom-right"
)

// Imagor is the URL builder for the imagor dialect.
type Imagor struct {
	p *core.Pipeline
}

// New creates a builder for the given server base URL.  Pass a nil signer
// to render unsigned (unsafe) URLs.
func New(baseURL string, signer *core.Signer) *Imagor {
	return &Imagor{p: core.NewPipeline(baseURL, "", signer, core.ImagorOrder)}
}

// Pipeline exposes the underlying pipeline for advanced use (hooks,
// direct inspection in tests).
func (i *Imagor) Pipeline() *core.Pipeline { return i.p }

func (i *Imagor) clone() *Imagor { return &Imagor{p: i.p.Clone()} }

// Clone returns an independent copy.  Mutating the clone never affects
// the original.
func (i *Imagor) Clone() *Imagor { return i.clone() }

// Err returns the first validation error recorded on this builder chain.
func (i *Imagor) Err() error { return i.p.Err() }

// WithImage sets the source image locator.
func (i *Imagor) WithImage(image string) *Imagor {
	n := i.clone()
	n.p.SetImage(image)
	return n
}

// WithBase sets the server base URL.
func (i *Imagor) WithBase(baseURL string) *Imagor {
	n := i.clone()
	n.p.SetBase(baseURL)
	return n
}

// Sign attaches a signer.
func (i *Imagor) Sign(s *core.Signer) *Imagor {
	n := i.clone()
	n.p.SetSigner(s)
	return n
}

// Unsafe drops the signer so renders emit the unsafe token.
func (i *Imagor) Unsafe() *Imagor {
	n := i.clone()
	n.p.SetSigner(nil)
	return n
}

// AddOperation inserts or replaces an operation by name.
func (i *Imagor) AddOperation(name, arg string) *Imagor {
	n := i.clone()
	n.p.AddOperation(name, arg)
	return n
}

// AddFilter inserts or replaces a filter by name.
func (i *Imagor) AddFilter(name string, args ...string) *Imagor {
	n := i.clone()
	n.p.AddFilter(name, args...)
	return n
}

// Remove deletes any operation or filter with the given name.
func (i *Imagor) Remove(name string) *Imagor {
	n := i.clone()
	n.p.Remove(name)
	return n
}

// RemoveFilters clears all filters.
func (i *Imagor) RemoveFilters() *Imagor {
	n := i.clone()
	n.p.RemoveFilters()
	return n
}

// Path renders the signed path.
func (i *Imagor) Path() (string, error) { return i.p.Path(core.RenderOptions{}) }

// PathWith renders the signed path with per-render overrides.
func (i *Imagor) PathWith(opts core.RenderOptions) (string, error) { return i.p.Path(opts) }

// URL renders the full URL.
func (i *Imagor) URL() (string, error) { return i.p.URL(core.RenderOptions{}) }

// URLWith renders the full URL with per-render overrides.
func (i *Imagor) URLWith(opts core.RenderOptions) (string, error) { return i.p.URL(opts) }

// ── Operations ────────────────────────────────────────────────────────────────

// Meta switches the render to the server's metadata endpoint, which
// returns a JSON document instead of the transformed image.
func (i *Imagor) Meta() *Imagor {
	return i.AddOperation("meta", "")
}

// Trim removes surrounding space from the image.
func (i *Imagor) Trim() *Imagor {
	return i.AddOperation("trim", "")
}

// TrimBy removes surrounding space using the given reference corner and
// color tolerance (0-442).
func (i *Imagor) TrimBy(by string, tolerance int) *Imagor {
	n := i.clone()
	if by != TrimByTopLeft && by != TrimByBottomRight {
		n.p.Fail(apperrors.Invalidf("trim", "unknown trim anchor %q", by))
		return n
	}
	arg := "trim:" + by
	if tolerance > 0 {
		arg += ":" + strconv.Itoa(tolerance)
	}
	n.p.AddOperation("trim", arg)
	return n
}

// Crop cuts the region bounded by the left-top and right-bottom points.
// Coordinates are pixels (core.Px) or fractions of the image dimensions
// (core.Rel).
func (i *Imagor) Crop(left, top, right, bottom core.Coord) *Imagor {
	arg := fmt.Sprintf("%sx%s:%sx%s", left, top, right, bottom)
	return i.AddOperation("crop", arg)
}

// FitIn resizes the image to fit inside the given box, preserving aspect
// ratio.  Mutually exclusive with Stretch.
func (i *Imagor) FitIn(width, height int) *Imagor {
	n := i.clone()
	if n.p.HasOperation("stretch") {
		n.p.Fail(apperrors.Conflict("fit-in", apperrors.ErrFitStretchConflict))
		return n
	}
	n.p.AddOperation("fit-in", "")
	n.p.AddOperation("resize", fmt.Sprintf("%dx%d", width, height))
	return n
}

// FitInUpscale is FitIn with enlargement past the original dimensions
// enabled.
func (i *Imagor) FitInUpscale(width, height int) *Imagor {
	n := i.FitIn(width, height)
	if n.Err() != nil {
		return n
	}
	return n.Upscale()
}

// Resize is FitIn under the name the comparison layer drives it by.
func (i *Imagor) Resize(width, height int) *Imagor { return i.FitIn(width, height) }

// Stretch resizes to the exact dimensions, ignoring aspect ratio.
// Mutually exclusive with FitIn.
func (i *Imagor) Stretch(width, height int) *Imagor {
	n := i.clone()
	if n.p.HasOperation("fit-in") {
		n.p.Fail(apperrors.Conflict("stretch", apperrors.ErrFitStretchConflict))
		return n
	}
	n.p.AddOperation("stretch", "")
	n.p.AddOperation("resize", fmt.Sprintf("%dx%d", width, height))
	return n
}

// Orient rotates the image before any resize or crop is applied.  The
// angle must be a multiple of 90.  The server treats this as a filter.
func (i *Imagor) Orient(angle int) *Imagor {
	n := i.clone()
	if angle%90 != 0 {
		n.p.Fail(apperrors.Invalidf("orient", "angle must be a multiple of 90, got %d", angle))
		return n
	}
	n.p.AddFilter("orient", strconv.Itoa(angle))
	return n
}

// HAlign sets the horizontal crop alignment (left, center, right).
func (i *Imagor) HAlign(align string) *Imagor {
	return i.AddOperation("halign", align)
}

// VAlign sets the vertical crop alignment (top, middle, bottom).
func (i *Imagor) VAlign(align string) *Imagor {
	return i.AddOperation("valign", align)
}

// SmartCrop enables focal-point detection when cropping.
func (i *Imagor) SmartCrop() *Imagor {
	return i.AddOperation("smart", "")
}

// MaxFrames keeps at most n frames of an animated image.  The server
// treats this as a filter.
func (i *Imagor) MaxFrames(n int) *Imagor {
	return i.AddFilter("max_frames", strconv.Itoa(n))
}

// ── Filters ──────────────────────────────────────────────────────────────────

// FocalRegion sets the focal area used by later crops, bounded by the
// left-top and right-bottom points.
func (i *Imagor) FocalRegion(left, top, right, bottom core.Coord) *Imagor {
	return i.AddFilter("focal", fmt.Sprintf("%sx%s:%sx%s", left, top, right, bottom))
}

// FocalPoint sets a single focal point.
func (i *Imagor) FocalPoint(x, y core.Coord) *Imagor {
	return i.AddFilter("focal", fmt.Sprintf("%sx%s", x, y))
}

// Rotate rotates the image after processing.  The angle must be a
// multiple of 90.
func (i *Imagor) Rotate(angle int) *Imagor {
	n := i.clone()
	if angle%90 != 0 {
		n.p.Fail(apperrors.Invalidf("rotate", "angle must be a multiple of 90, got %d", angle))
		return n
	}
	n.p.AddFilter("rotate", strconv.Itoa(angle))
	return n
}

// RoundCorner rounds the corners with radius rx, transparent background.
func (i *Imagor) RoundCorner(rx int) *Imagor {
	return i.RoundCornerWith(rx, rx, "")
}

// RoundCornerWith rounds the corners with separate x/y radii and a corner
// color.  A non-positive ry falls back to rx; an empty color renders as
// "none" (transparent).  Any leading "#" is stripped and the color
// lowercased.
func (i *Imagor) RoundCornerWith(rx, ry int, color string) *Imagor {
	if ry <= 0 {
		ry = rx
	}
	if color == "" {
		color = "none"
	} else {
		color = utils.NormalizeHexColor(color)
	}
	return i.AddFilter("round_corner", fmt.Sprintf("%d,%d,%s", rx, ry, color))
}

// Grayscale converts the image to grayscale.
func (i *Imagor) Grayscale() *Imagor { return i.AddFilter("grayscale") }

// Quality sets the output quality for lossy formats (0-100).
func (i *Imagor) Quality(amount int) *Imagor {
	return i.AddFilter("quality", strconv.Itoa(amount))
}

// Brightness adjusts brightness by amount percent (-100 to 100).
func (i *Imagor) Brightness(amount int) *Imagor {
	n := i.clone()
	if amount < -100 || amount > 100 {
		n.p.Fail(apperrors.Invalidf("brightness", "amount must be in [-100, 100], got %d", amount))
		return n
	}
	n.p.AddFilter("brightness", strconv.Itoa(amount))
	return n
}

// Contrast adjusts contrast by amount percent (-100 to 100).
func (i *Imagor) Contrast(amount int) *Imagor {
	n := i.clone()
	if amount < -100 || amount > 100 {
		n.p.Fail(apperrors.Invalidf("contrast", "amount must be in [-100, 100], got %d", amount))
		return n
	}
	n.p.AddFilter("contrast", strconv.Itoa(amount))
	return n
}

// Saturation adjusts saturation by amount percent (-100 to 100).
func (i *Imagor) Saturation(amount int) *Imagor {
	n := i.clone()
	if amount < -100 || amount > 100 {
		n.p.Fail(apperrors.Invalidf("saturation", "amount must be in [-100, 100], got %d", amount))
		return n
	}
	n.p.AddFilter("saturation", strconv.Itoa(amount))
	return n
}

// Hue rotates the hue by angle degrees (0-359).
func (i *Imagor) Hue(angle int) *Imagor {
	n := i.clone()
	if angle < 0 || angle > 359 {
		n.p.Fail(apperrors.Invalidf("hue", "angle must be in [0, 359], got %d", angle))
		return n
	}
	n.p.AddFilter("hue", strconv.Itoa(angle))
	return n
}

// RGB adjusts the red, green, and blue channels (-100 to 100 each).
func (i *Imagor) RGB(r, g, b int) *Imagor {
	return i.AddFilter("rgb", strconv.Itoa(r), strconv.Itoa(g), strconv.Itoa(b))
}

// Blur applies gaussian blur with the given radius (0-150).
func (i *Imagor) Blur(radius int) *Imagor {
	n := i.clone()
	if radius < 0 || radius > 150 {
		n.p.Fail(apperrors.Invalidf("blur", "radius must be in [0, 150], got %d", radius))
		return n
	}
	n.p.AddFilter("blur", strconv.Itoa(radius))
	return n
}

// BlurSigma applies gaussian blur with an explicit kernel deviation.
func (i *Imagor) BlurSigma(radius, sigma int) *Imagor {
	n := i.clone()
	if radius < 0 || radius > 150 || sigma < 0 || sigma > 150 {
		n.p.Fail(apperrors.Invalidf("blur", "radius and sigma must be in [0, 150]"))
		return n
	}
	n.p.AddFilter("blur", strconv.Itoa(radius), strconv.Itoa(sigma))
	return n
}

// Sharpen sharpens the image.
func (i *Imagor) Sharpen(sigma, amount float64) *Imagor {
	return i.AddFilter("sharpen", trimFloat(sigma), trimFloat(amount))
}

// BackgroundColor sets the background layer color, useful when flattening
// transparent images to JPEG.
func (i *Imagor) BackgroundColor(color string) *Imagor {
	return i.AddFilter("background_color", utils.NormalizeHexColor(color))
}

// Fill fills missing areas or a transparent background.  Accepts a hex
// color or the keywords "blur", "auto", and "none"; empty means "none".
func (i *Imagor) Fill(color string) *Imagor {
	if color == "" {
		color = "none"
	}
	return i.AddFilter("fill", color)
}

// Page selects a page of a multi-page document (1-based).
func (i *Imagor) Page(num int) *Imagor {
	return i.AddFilter("page", strconv.Itoa(num))
}

// DPI sets the density for rasterizing vector sources.
func (i *Imagor) DPI(dpi int) *Imagor {
	return i.AddFilter("dpi", strconv.Itoa(dpi))
}

// Proportion scales the image to the given percentage of its original
// size (0-100).
func (i *Imagor) Proportion(percentage float64) *Imagor {
	n := i.clone()
	if percentage < 0 || percentage > 100 {
		n.p.Fail(apperrors.Invalidf("proportion", "percentage must be in [0, 100], got %v", percentage))
		return n
	}
	n.p.AddFilter("proportion", fmt.Sprintf("%.1f", percentage/100))
	return n
}

// Format converts the output to the given format.
func (i *Imagor) Format(format string) *Imagor {
	return i.AddFilter("format", format)
}

// MaxBytes caps the output file size in bytes.
func (i *Imagor) MaxBytes(amount int) *Imagor {
	return i.AddFilter("max_bytes", strconv.Itoa(amount))
}

// StripEXIF removes EXIF metadata.
func (i *Imagor) StripEXIF() *Imagor { return i.AddFilter("strip_exif") }

// StripICC removes the ICC profile.
func (i *Imagor) StripICC() *Imagor { return i.AddFilter("strip_icc") }

// StripMetadata removes all metadata.
func (i *Imagor) StripMetadata() *Imagor { return i.AddFilter("strip_metadata") }

// Upscale allows FitIn to grow the image past its original dimensions.
func (i *Imagor) Upscale() *Imagor { return i.AddFilter("upscale") }

// NoUpscale removes a previously added upscale filter.
func (i *Imagor) NoUpscale() *Imagor { return i.Remove("upscale") }

// trimFloat renders a float without trailing zeros ("1.5", "3").
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
