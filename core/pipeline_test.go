package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline() *Pipeline {
	return NewPipeline("http://localhost:8000", "img.jpg", UnsafeSigner(), ImagorOrder)
}

func TestAddOperationReplacesByName(t *testing.T) {
	p := newTestPipeline()
	p.AddOperation("resize", "100x100")
	p.AddOperation("resize", "400x300")

	ops := p.Operations()
	require.Len(t, ops, 1)
	assert.Equal(t, "400x300", ops[0].Arg)
}

func TestAddFilterReplacesAndMovesToEnd(t *testing.T) {
	p := newTestPipeline()
	p.AddFilter("quality", "70")
	p.AddFilter("grayscale")
	p.AddFilter("quality", "85")

	assert.Equal(t, "grayscale():quality(85)", p.RenderFilters())
}

func TestOrderTableGovernsRendering(t *testing.T) {
	p := newTestPipeline()
	// Insertion order deliberately scrambled relative to the table.
	p.AddFilter("grayscale")
	p.AddOperation("resize", "400x300")
	p.AddOperation("fit-in", "")
	p.AddOperation("trim", "")

	path, err := p.Path(RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "unsafe/trim/fit-in/400x300/filters:grayscale()/img.jpg", path)
}

func TestBareOperationRendersItsName(t *testing.T) {
	p := newTestPipeline()
	p.AddOperation("smart", "")

	path, err := p.Path(RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "unsafe/smart/img.jpg", path)
}

func TestRemoveSharesNamespace(t *testing.T) {
	p := newTestPipeline()
	p.AddOperation("trim", "")
	p.AddFilter("trim", "1")

	p.Remove("trim")
	assert.False(t, p.HasOperation("trim"))
	assert.False(t, p.HasFilter("trim"))
}

func TestCloneIsolation(t *testing.T) {
	p := newTestPipeline()
	p.AddOperation("resize", "100x100")
	p.AddFilter("watermark", "logo.png", "10", "10")

	cp := p.Clone()
	cp.AddOperation("resize", "999x999")
	cp.Filters()[0].Args[0] = "mutated"
	cp.AddFilter("watermark", "other.png")

	assert.Equal(t, "100x100", p.Operations()[0].Arg)
	assert.Equal(t, "logo.png", p.Filters()[0].Args[0])
}

func TestEmptyImageStillRenders(t *testing.T) {
	p := NewPipeline("http://x", "", UnsafeSigner(), ImagorOrder)

	path, err := p.Path(RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "unsafe/", path)
}

func TestImageIsPercentEncoded(t *testing.T) {
	p := NewPipeline("http://x", "https://example.com/a b.jpg", UnsafeSigner(), ImagorOrder)

	path, err := p.Path(RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "unsafe/https%3A%2F%2Fexample.com%2Fa%20b.jpg", path)
}

func TestRawImageSkipsEncoding(t *testing.T) {
	p := NewPipeline("http://x", "a/b/c.jpg", UnsafeSigner(), ImagorOrder)

	path, err := p.Path(RenderOptions{RawImage: true})
	require.NoError(t, err)
	assert.Equal(t, "unsafe/a/b/c.jpg", path)
}

func TestStickyErrorFailsRender(t *testing.T) {
	p := newTestPipeline()
	first := errors.New("first")
	p.Fail(first)
	p.Fail(errors.New("second"))

	assert.Same(t, first, p.Err())
	_, err := p.Path(RenderOptions{})
	assert.Same(t, first, err)
	_, err = p.URL(RenderOptions{})
	assert.Same(t, first, err)
}

func TestURLJoinsBase(t *testing.T) {
	p := NewPipeline("http://localhost:8000/", "img.jpg", UnsafeSigner(), ImagorOrder)

	url, err := p.URL(RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/unsafe/img.jpg", url)
}

func TestRenderOverrides(t *testing.T) {
	p := newTestPipeline()

	url, err := p.URL(RenderOptions{Image: "other.png", Base: "https://cdn.example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/unsafe/other.png", url)

	// The pipeline itself is untouched.
	assert.Equal(t, "img.jpg", p.Image())
	assert.Equal(t, "http://localhost:8000", p.BaseURL())
}

type recordingHook struct {
	ops     []Operation
	filters []Filter
	renders []string
}

func (h *recordingHook) OnOperation(op Operation) { h.ops = append(h.ops, op) }
func (h *recordingHook) OnFilter(f Filter)        { h.filters = append(h.filters, f) }
func (h *recordingHook) OnRender(path string, err error) {
	h.renders = append(h.renders, path)
}

func TestHooksObserveMutationsAndRenders(t *testing.T) {
	p := newTestPipeline()
	hook := &recordingHook{}
	p.AddHook(hook)

	p.AddOperation("resize", "10x10")
	p.AddFilter("grayscale")
	_, err := p.Path(RenderOptions{})
	require.NoError(t, err)

	require.Len(t, hook.ops, 1)
	require.Len(t, hook.filters, 1)
	require.Len(t, hook.renders, 1)
	assert.Equal(t, "unsafe/10x10/filters:grayscale()/img.jpg", hook.renders[0])
}
