package imagor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urlpix/urlpix/core"
	apperrors "github.com/urlpix/urlpix/errors"
)

func unsafeBuilder() *Imagor {
	return New("http://x", core.UnsafeSigner()).WithImage("a.jpg")
}

func TestRoundTripURL(t *testing.T) {
	url, err := unsafeBuilder().
		FitIn(400, 300).
		Grayscale().
		Quality(85).
		URL()
	require.NoError(t, err)
	assert.Equal(t, "http://x/unsafe/fit-in/400x300/filters:grayscale():quality(85)/a.jpg", url)
}

func TestSignedURL(t *testing.T) {
	signer := core.MustSigner(core.SHA1, "my-security-key")
	url, err := New("http://x", signer).
		WithImage("a.jpg").
		FitIn(400, 300).
		Grayscale().
		Quality(85).
		URL()
	require.NoError(t, err)
	assert.Equal(t, "http://x/yWt25ceILldoOA872xflN3rA0i0=/fit-in/400x300/filters:grayscale():quality(85)/a.jpg", url)
}

func TestBuilderIsImmutable(t *testing.T) {
	base := unsafeBuilder().FitIn(100, 100)
	withBlur := base.Blur(3)
	withGray := base.Grayscale()

	p1, err := withBlur.Path()
	require.NoError(t, err)
	p2, err := withGray.Path()
	require.NoError(t, err)
	p3, err := base.Path()
	require.NoError(t, err)

	assert.Equal(t, "unsafe/fit-in/100x100/filters:blur(3)/a.jpg", p1)
	assert.Equal(t, "unsafe/fit-in/100x100/filters:grayscale()/a.jpg", p2)
	assert.Equal(t, "unsafe/fit-in/100x100/a.jpg", p3)
}

func TestFitInStretchConflict(t *testing.T) {
	b := unsafeBuilder().FitIn(100, 100).Stretch(200, 200)
	require.Error(t, b.Err())
	assert.ErrorIs(t, b.Err(), apperrors.ErrFitStretchConflict)
	assert.True(t, apperrors.IsKind(b.Err(), apperrors.KindConflict))

	_, err := b.URL()
	assert.ErrorIs(t, err, apperrors.ErrFitStretchConflict)
}

func TestStretchFitInConflict(t *testing.T) {
	b := unsafeBuilder().Stretch(200, 200).FitIn(100, 100)
	assert.ErrorIs(t, b.Err(), apperrors.ErrFitStretchConflict)
}

func TestStretchRendersBeforeResize(t *testing.T) {
	path, err := unsafeBuilder().Stretch(500, 400).Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/stretch/500x400/a.jpg", path)
}

func TestCropWithMixedCoords(t *testing.T) {
	path, err := unsafeBuilder().
		Crop(core.Px(10), core.Px(20), core.Rel(0.5), core.Rel(0.75)).
		Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/10x20:0.5000x0.7500/a.jpg", path)
}

func TestOrientValidation(t *testing.T) {
	assert.NoError(t, unsafeBuilder().Orient(270).Err())
	err := unsafeBuilder().Orient(45).Err()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestRotateValidation(t *testing.T) {
	path, err := unsafeBuilder().Rotate(90).Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/filters:rotate(90)/a.jpg", path)

	_, err = unsafeBuilder().Rotate(45).Path()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestFocalForms(t *testing.T) {
	path, err := unsafeBuilder().
		FocalRegion(core.Px(10), core.Px(10), core.Px(200), core.Px(300)).
		Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/filters:focal(10x10:200x300)/a.jpg", path)

	path, err = unsafeBuilder().FocalPoint(core.Rel(0.3), core.Rel(0.6)).Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/filters:focal(0.3000x0.6000)/a.jpg", path)
}

func TestFocalReplacesPreviousForm(t *testing.T) {
	path, err := unsafeBuilder().
		FocalRegion(core.Px(0), core.Px(0), core.Px(10), core.Px(10)).
		FocalPoint(core.Px(5), core.Px(5)).
		Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/filters:focal(5x5)/a.jpg", path)
}

func TestRoundCorner(t *testing.T) {
	path, err := unsafeBuilder().RoundCorner(12).Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/filters:round_corner(12,12,none)/a.jpg", path)

	path, err = unsafeBuilder().RoundCornerWith(12, 24, "#FF00AA").Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/filters:round_corner(12,24,ff00aa)/a.jpg", path)
}

func TestTrimBy(t *testing.T) {
	path, err := unsafeBuilder().TrimBy(TrimByBottomRight, 30).Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/trim:bottom-right:30/a.jpg", path)

	err = unsafeBuilder().TrimBy("middle", 0).Err()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestMetaEndpoint(t *testing.T) {
	path, err := unsafeBuilder().FitIn(50, 50).Meta().Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/meta/fit-in/50x50/a.jpg", path)
}

func TestOrientAndMaxFramesRenderAsFilters(t *testing.T) {
	path, err := unsafeBuilder().MaxFrames(3).Orient(90).Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/filters:max_frames(3):orient(90)/a.jpg", path)
}

func TestRangeValidatedFilters(t *testing.T) {
	for _, tc := range []struct {
		name string
		b    *Imagor
	}{
		{"brightness", unsafeBuilder().Brightness(101)},
		{"contrast", unsafeBuilder().Contrast(-101)},
		{"saturation", unsafeBuilder().Saturation(200)},
		{"hue", unsafeBuilder().Hue(360)},
		{"blur", unsafeBuilder().Blur(151)},
		{"proportion", unsafeBuilder().Proportion(120)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.b.Err())
			assert.True(t, apperrors.IsKind(tc.b.Err(), apperrors.KindInvalidArgument))
		})
	}
}

func TestFitInUpscale(t *testing.T) {
	path, err := unsafeBuilder().FitInUpscale(400, 300).Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/fit-in/400x300/filters:upscale()/a.jpg", path)

	path, err = unsafeBuilder().FitInUpscale(400, 300).NoUpscale().Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/fit-in/400x300/a.jpg", path)
}

func TestProportionRendersFraction(t *testing.T) {
	path, err := unsafeBuilder().Proportion(50).Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/filters:proportion(0.5)/a.jpg", path)
}

func TestWatermarkEncodesImage(t *testing.T) {
	path, err := unsafeBuilder().
		Watermark("https://example.com/logo.png", Left, Bottom, 40).
		Path()
	require.NoError(t, err)
	assert.Equal(t,
		"unsafe/filters:watermark(https%3A%2F%2Fexample.com%2Flogo.png,left,bottom,40)/a.jpg",
		path)
}

func TestUnsafeDropsSigner(t *testing.T) {
	signer := core.MustSigner(core.SHA1, "my-security-key")
	path, err := New("http://x", signer).WithImage("a.jpg").Unsafe().Path()
	require.NoError(t, err)
	assert.Equal(t, "unsafe/a.jpg", path)
}

func TestApplyCalls(t *testing.T) {
	b, err := unsafeBuilder().ApplyCalls(
		core.Call{Name: "fit-in", Args: []string{"400", "300"}},
		core.Call{Name: "grayscale"},
		core.Call{Name: "quality", Args: []string{"85"}},
	)
	require.NoError(t, err)

	url, err := b.URL()
	require.NoError(t, err)
	assert.Equal(t, "http://x/unsafe/fit-in/400x300/filters:grayscale():quality(85)/a.jpg", url)
}

func TestApplyCallUnknownName(t *testing.T) {
	_, err := unsafeBuilder().ApplyCall(core.Call{Name: "sepia"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownCapability)
}

func TestApplyCallSurfacesConflict(t *testing.T) {
	_, err := unsafeBuilder().ApplyCalls(
		core.Call{Name: "fit-in", Args: []string{"100", "100"}},
		core.Call{Name: "stretch", Args: []string{"200", "200"}},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrFitStretchConflict)
}

func TestCapabilityNamesStable(t *testing.T) {
	names := Capabilities().Names()
	assert.Contains(t, names, "resize")
	assert.Contains(t, names, "fit-in")
	assert.Contains(t, names, "watermark")
	assert.Contains(t, names, "meta")
}
