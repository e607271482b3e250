// Package thumbor builds signed URLs for Thumbor servers.
//
// The builder follows the same copy-on-write discipline as the imagor
// dialect: mutating methods return a new builder and record validation
// failures as a sticky error surfaced by Err, Path, and URL.
package thumbor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urlpix/urlpix/core"
	apperrors "github.com/urlpix/urlpix/errors"
	"github.com/urlpix/urlpix/utils"
)

// FitInMethod selects the Thumbor fit-in variant, which changes the
// emitted operation name.
type FitInMethod string

const (
	FitInDefault  FitInMethod = ""
	FitInFull     FitInMethod = "full"
	FitInAdaptive FitInMethod = "adaptive"
)

// Alignment keywords.
const (
	HAlignLeft   = "left"
	HAlignCenter = "center"
	HAlignRight  = "right"
	VAlignTop    = "top"
	VAlignMiddle = "middle"
	VAlignBottom = "bottom"
)

// Thumbor is the URL builder for the Thumbor dialect.
type Thumbor struct {
	p *core.Pipeline
}

// New creates a builder for the given server base URL.  Pass a nil signer
// to render unsigned (unsafe) URLs.
func New(baseURL string, signer *core.Signer) *Thumbor {
	return &Thumbor{p: core.NewPipeline(baseURL, "", signer, core.ThumborOrder)}
}

// Pipeline exposes the underlying pipeline for hooks and tests.
func (t *Thumbor) Pipeline() *core.Pipeline { return t.p }

func (t *Thumbor) clone() *Thumbor { return &Thumbor{p: t.p.Clone()} }

// Clone returns an independent copy of the builder.
func (t *Thumbor) Clone() *Thumbor { return t.clone() }

// Err returns the first validation error recorded on this builder chain.
func (t *Thumbor) Err() error { return t.p.Err() }

// WithImage sets the source image locator.
func (t *Thumbor) WithImage(image string) *Thumbor {
	n := t.clone()
	n.p.SetImage(image)
	return n
}

// WithBase sets the server base URL.
func (t *Thumbor) WithBase(baseURL string) *Thumbor {
	n := t.clone()
	n.p.SetBase(baseURL)
	return n
}

// Sign attaches a signer.
func (t *Thumbor) Sign(s *core.Signer) *Thumbor {
	n := t.clone()
	n.p.SetSigner(s)
	return n
}

// Unsafe drops the signer so renders emit the unsafe token.
func (t *Thumbor) Unsafe() *Thumbor {
	n := t.clone()
	n.p.SetSigner(nil)
	return n
}

// AddOperation inserts or replaces an operation by name.
func (t *Thumbor) AddOperation(name, arg string) *Thumbor {
	n := t.clone()
	n.p.AddOperation(name, arg)
	return n
}

// AddFilter inserts or replaces a filter by name.
func (t *Thumbor) AddFilter(name string, args ...string) *Thumbor {
	n := t.clone()
	n.p.AddFilter(name, args...)
	return n
}

// Remove deletes any operation or filter with the given name.
func (t *Thumbor) Remove(name string) *Thumbor {
	n := t.clone()
	n.p.Remove(name)
	return n
}

// RemoveFilters clears all filters.
func (t *Thumbor) RemoveFilters() *Thumbor {
	n := t.clone()
	n.p.RemoveFilters()
	return n
}

// Path renders the signed path.
func (t *Thumbor) Path() (string, error) { return t.p.Path(core.RenderOptions{}) }

// PathWith renders the signed path with per-render overrides.
func (t *Thumbor) PathWith(opts core.RenderOptions) (string, error) { return t.p.Path(opts) }

// URL renders the full URL.
func (t *Thumbor) URL() (string, error) { return t.p.URL(core.RenderOptions{}) }

// URLWith renders the full URL with per-render overrides.
func (t *Thumbor) URLWith(opts core.RenderOptions) (string, error) { return t.p.URL(opts) }

// ── Operations ────────────────────────────────────────────────────────────────

// Meta requests the server's JSON metadata document instead of pixels.
func (t *Thumbor) Meta() *Thumbor { return t.AddOperation("meta", "") }

// Trim removes surrounding space from the image.
func (t *Thumbor) Trim() *Thumbor { return t.AddOperation("trim", "") }

// Crop cuts the region bounded by the left-top and right-bottom points.
func (t *Thumbor) Crop(left, top, right, bottom core.Coord) *Thumbor {
	return t.AddOperation("crop", fmt.Sprintf("%sx%s:%sx%s", left, top, right, bottom))
}

// FitIn resizes the image to fit inside the given box.  Mutually
// exclusive with Stretch.
func (t *Thumbor) FitIn(width, height int) *Thumbor {
	return t.fitIn(width, height, FitInDefault)
}

// FitInMethod resizes with the full or adaptive fit-in variant, which
// emits "full-fit-in" or "adaptive-fit-in" instead of "fit-in".
func (t *Thumbor) FitInMethod(width, height int, method FitInMethod) *Thumbor {
	return t.fitIn(width, height, method)
}

func (t *Thumbor) fitIn(width, height int, method FitInMethod) *Thumbor {
	n := t.clone()
	if n.p.HasOperation("stretch") {
		n.p.Fail(apperrors.Conflict("fit-in", apperrors.ErrFitStretchConflict))
		return n
	}
	switch method {
	case FitInDefault:
		n.p.AddOperation("fit-in", "")
	case FitInFull, FitInAdaptive:
		n.p.AddOperation(string(method)+"-fit-in", "")
	default:
		n.p.Fail(apperrors.Invalidf("fit-in", "unknown fit-in method %q", method))
		return n
	}
	n.p.AddOperation("resize", fmt.Sprintf("%dx%d", width, height))
	return n
}

// Resize is FitIn under the name the comparison layer drives it by.
func (t *Thumbor) Resize(width, height int) *Thumbor { return t.FitIn(width, height) }

// Stretch resizes to the exact dimensions, ignoring aspect ratio.
// Mutually exclusive with FitIn.
func (t *Thumbor) Stretch(width, height int) *Thumbor {
	n := t.clone()
	if n.p.HasOperation("fit-in") || n.p.HasOperation("full-fit-in") || n.p.HasOperation("adaptive-fit-in") {
		n.p.Fail(apperrors.Conflict("stretch", apperrors.ErrFitStretchConflict))
		return n
	}
	n.p.AddOperation("stretch", "")
	n.p.AddOperation("resize", fmt.Sprintf("%dx%d", width, height))
	return n
}

// HAlign sets the horizontal crop alignment (left, center, right).
func (t *Thumbor) HAlign(align string) *Thumbor { return t.AddOperation("halign", align) }

// VAlign sets the vertical crop alignment (top, middle, bottom).
func (t *Thumbor) VAlign(align string) *Thumbor { return t.AddOperation("valign", align) }

// SmartCrop enables Thumbor's smart detection when cropping.
func (t *Thumbor) SmartCrop() *Thumbor { return t.AddOperation("smart", "") }

// ── Filters ──────────────────────────────────────────────────────────────────

// AutoJPG converts PNG sources to JPEG automatically.
func (t *Thumbor) AutoJPG() *Thumbor { return t.AddFilter("autojpg") }

// Convolution runs the given kernel on the image.  Rows are joined with
// ";" and the column count emitted separately, as Thumbor expects.
func (t *Thumbor) Convolution(matrix [][]float64, normalize bool) *Thumbor {
	n := t.clone()
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		n.p.Fail(apperrors.Invalidf("convolution", "matrix must not be empty"))
		return n
	}
	rows := make([]string, len(matrix))
	for ri, row := range matrix {
		cells := make([]string, len(row))
		for ci, v := range row {
			cells[ci] = trimFloat(v)
		}
		rows[ri] = strings.Join(cells, ";")
	}
	n.p.AddFilter("convolution",
		strings.Join(rows, ";"),
		strconv.Itoa(len(matrix[0])),
		strconv.FormatBool(normalize))
	return n
}

// Cover extracts the first frame of a GIF as its cover image.
func (t *Thumbor) Cover() *Thumbor { return t.AddFilter("cover") }

// Equalize equalizes the color distribution.
func (t *Thumbor) Equalize() *Thumbor { return t.AddFilter("equalize") }

// ExtractFocal reuses focal points encoded in the image path.
func (t *Thumbor) ExtractFocal() *Thumbor { return t.AddFilter("extract_focal") }

// Focal sets the focal region used by later crops.
func (t *Thumbor) Focal(left, top, right, bottom core.Coord) *Thumbor {
	return t.AddFilter("focal", fmt.Sprintf("%sx%s:%sx%s", left, top, right, bottom))
}

// Fill fills the area fit-in leaves empty with the given color, and
// optionally fills transparent areas too.
func (t *Thumbor) Fill(color string, fillTransparent bool) *Thumbor {
	return t.AddFilter("fill",
		utils.NormalizeHexColor(color), strconv.FormatBool(fillTransparent))
}

// Format converts the output to the given format.  "jpg" normalizes to
// "jpeg"; a positive quality is emitted as a separate quality filter
// before the format filter.
func (t *Thumbor) Format(format string, quality int) *Thumbor {
	n := t.clone()
	format = strings.ToLower(format)
	if format == "jpg" {
		format = "jpeg"
	}
	if quality != 0 {
		if quality < 1 || quality > 100 {
			n.p.Fail(apperrors.Invalidf("format", "quality must be in [1, 100], got %d", quality))
			return n
		}
		n.p.AddFilter("quality", strconv.Itoa(quality))
	}
	n.p.AddFilter("format", format)
	return n
}

// Grayscale converts the image to grayscale.
func (t *Thumbor) Grayscale() *Thumbor { return t.AddFilter("grayscale") }

// Quality sets the output quality for lossy formats (1-100).
func (t *Thumbor) Quality(amount int) *Thumbor {
	n := t.clone()
	if amount < 1 || amount > 100 {
		n.p.Fail(apperrors.Invalidf("quality", "amount must be in [1, 100], got %d", amount))
		return n
	}
	n.p.AddFilter("quality", strconv.Itoa(amount))
	return n
}

// Noise adds noise to the image (0-100 percent).
func (t *Thumbor) Noise(amount int) *Thumbor {
	n := t.clone()
	if amount < 0 || amount > 100 {
		n.p.Fail(apperrors.Invalidf("noise", "amount must be in [0, 100], got %d", amount))
		return n
	}
	n.p.AddFilter("noise", strconv.Itoa(amount))
	return n
}

// RedEye detects and corrects red eyes.
func (t *Thumbor) RedEye() *Thumbor { return t.AddFilter("redeye") }

// RoundCorner rounds the corners with radius rx and a transparent
// background.
func (t *Thumbor) RoundCorner(rx int) *Thumbor { return t.RoundCornerColor(rx, "") }

// RoundCornerColor rounds the corners with the given background color.
// Thumbor takes the color as an RGB triple; an empty color renders white
// with the transparent flag set.  Unparseable colors record an
// invalid-argument error.
func (t *Thumbor) RoundCornerColor(rx int, color string) *Thumbor {
	n := t.clone()
	r, g, b := 255, 255, 255
	transparent := 1
	if color != "" && color != "none" {
		var err error
		r, g, b, err = utils.ParseHTMLColor(color)
		if err != nil {
			n.p.Fail(apperrors.InvalidArgument("round_corner", err))
			return n
		}
		transparent = 0
	}
	n.p.AddFilter("round_corner",
		strconv.Itoa(rx), strconv.Itoa(r), strconv.Itoa(g), strconv.Itoa(b),
		strconv.Itoa(transparent))
	return n
}

// Rotate rotates the image after processing.  The angle must be a
// multiple of 90.
func (t *Thumbor) Rotate(angle int) *Thumbor {
	n := t.clone()
	if angle%90 != 0 {
		n.p.Fail(apperrors.Invalidf("rotate", "angle must be a multiple of 90, got %d", angle))
		return n
	}
	n.p.AddFilter("rotate", strconv.Itoa(angle))
	return n
}

// Blur applies gaussian blur with the given radius (0-150).
func (t *Thumbor) Blur(radius int) *Thumbor {
	n := t.clone()
	if radius < 0 || radius > 150 {
		n.p.Fail(apperrors.Invalidf("blur", "radius must be in [0, 150], got %d", radius))
		return n
	}
	n.p.AddFilter("blur", strconv.Itoa(radius))
	return n
}

// Brightness adjusts brightness by amount percent (-100 to 100).
func (t *Thumbor) Brightness(amount int) *Thumbor {
	n := t.clone()
	if amount < -100 || amount > 100 {
		n.p.Fail(apperrors.Invalidf("brightness", "amount must be in [-100, 100], got %d", amount))
		return n
	}
	n.p.AddFilter("brightness", strconv.Itoa(amount))
	return n
}

// Contrast adjusts contrast by amount percent (-100 to 100).
func (t *Thumbor) Contrast(amount int) *Thumbor {
	n := t.clone()
	if amount < -100 || amount > 100 {
		n.p.Fail(apperrors.Invalidf("contrast", "amount must be in [-100, 100], got %d", amount))
		return n
	}
	n.p.AddFilter("contrast", strconv.Itoa(amount))
	return n
}

// Saturation adjusts saturation by amount percent (-100 to 100).
func (t *Thumbor) Saturation(amount float64) *Thumbor {
	n := t.clone()
	if amount < -100 || amount > 100 {
		n.p.Fail(apperrors.Invalidf("saturation", "amount must be in [-100, 100], got %v", amount))
		return n
	}
	n.p.AddFilter("saturation", trimFloat(amount))
	return n
}

// RGB adjusts the red, green, and blue channels (-100 to 100 each).
func (t *Thumbor) RGB(r, g, b int) *Thumbor {
	return t.AddFilter("rgb", strconv.Itoa(r), strconv.Itoa(g), strconv.Itoa(b))
}

// Sharpen sharpens the image.
func (t *Thumbor) Sharpen(amount, radius float64, luminanceOnly bool) *Thumbor {
	return t.AddFilter("sharpen",
		trimFloat(amount), trimFloat(radius), strconv.FormatBool(luminanceOnly))
}

// StretchFilter stretches instead of cropping to reach the requested
// dimensions (distinct from the stretch operation).
func (t *Thumbor) StretchFilter() *Thumbor { return t.AddFilter("stretch") }

// StripMetadata removes EXIF and ICC metadata.
func (t *Thumbor) StripMetadata() *Thumbor {
	n := t.clone()
	n.p.AddFilter("strip_exif")
	n.p.AddFilter("strip_icc")
	return n
}

// StripEXIF removes EXIF metadata.
func (t *Thumbor) StripEXIF() *Thumbor { return t.AddFilter("strip_exif") }

// StripICC removes the ICC profile.
func (t *Thumbor) StripICC() *Thumbor { return t.AddFilter("strip_icc") }

// MaxBytes caps the output file size in bytes.
func (t *Thumbor) MaxBytes(amount int) *Thumbor {
	return t.AddFilter("max_bytes", strconv.Itoa(amount))
}

// Proportion scales the image to the given percentage of its original
// size (0-100).
func (t *Thumbor) Proportion(percentage float64) *Thumbor {
	n := t.clone()
	if percentage < 0 || percentage > 100 {
		n.p.Fail(apperrors.Invalidf("proportion", "percentage must be in [0, 100], got %v", percentage))
		return n
	}
	n.p.AddFilter("proportion", fmt.Sprintf("%.1f", percentage/100))
	return n
}

// Upscale allows fit-in to grow the image past its original dimensions.
func (t *Thumbor) Upscale() *Thumbor { return t.AddFilter("upscale") }

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
