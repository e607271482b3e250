// Package core implements the ordered operation/filter pipeline, its
// serialization grammar, and the HMAC signing scheme shared by every URL
// dialect.
package core

import (
	"strings"

	"github.com/urlpix/urlpix/utils"
)

// Pipeline owns the ordered, name-unique operation and filter sequences of
// one builder.  Dialects compose a Pipeline rather than inheriting from it.
//
// The mutation discipline is copy-on-write: dialect methods clone the
// pipeline and apply to the clone, so a Pipeline reachable from user code
// is never mutated after it has been handed out.  Path and URL are pure
// functions of the pipeline state.
type Pipeline struct {
	baseURL string
	image   string
	ops     []Operation
	filters []Filter
	signer  *Signer
	order   []string
	hooks   []BuildHook
	err     error // first recorded error; renders fail with it
}

// NewPipeline creates a Pipeline for a dialect with the given serialization
// order table.  The base URL loses any trailing slash and the image locator
// any leading slash.
func NewPipeline(baseURL, image string, signer *Signer, order []string) *Pipeline {
	return &Pipeline{
		baseURL: strings.TrimRight(baseURL, "/"),
		image:   strings.TrimLeft(image, "/"),
		signer:  signer,
		order:   order,
	}
}

// Clone returns an independent copy.  Operation and filter sequences are
// deep-copied; the signer is shared by reference.
func (p *Pipeline) Clone() *Pipeline {
	cp := &Pipeline{
		baseURL: p.baseURL,
		image:   p.image,
		ops:     make([]Operation, len(p.ops)),
		filters: make([]Filter, len(p.filters)),
		signer:  p.signer,
		order:   p.order,
		hooks:   make([]BuildHook, len(p.hooks)),
		err:     p.err,
	}
	copy(cp.ops, p.ops)
	for i, f := range p.filters {
		args := make([]string, len(f.Args))
		copy(args, f.Args)
		cp.filters[i] = Filter{Name: f.Name, Args: args}
	}
	copy(cp.hooks, p.hooks)
	return cp
}

// AddOperation inserts or replaces an operation by name.  A duplicate name
// is removed first, so the newest call wins and the entry moves to the end
// of the insertion sequence (rendering order is still governed by the
// order table).
func (p *Pipeline) AddOperation(name, arg string) {
	p.removeOperation(name)
	op := Operation{Name: name, Arg: arg}
	p.ops = append(p.ops, op)
	for _, h := range p.hooks {
		h.OnOperation(op)
	}
}

// AddFilter inserts or replaces a filter by name, with the same
// replace-on-duplicate semantics as AddOperation.
func (p *Pipeline) AddFilter(name string, args ...string) {
	p.removeFilter(name)
	f := Filter{Name: name, Args: args}
	p.filters = append(p.filters, f)
	for _, h := range p.hooks {
		h.OnFilter(f)
	}
}

// Remove deletes any operation or filter with the given name.  Operations
// and filters share the removal namespace.
func (p *Pipeline) Remove(name string) {
	p.removeOperation(name)
	p.removeFilter(name)
}

// RemoveFilters clears all filters, leaving operations untouched.
func (p *Pipeline) RemoveFilters() { p.filters = nil }

func (p *Pipeline) removeOperation(name string) {
	for i, op := range p.ops {
		if op.Name == name {
			p.ops = append(p.ops[:i], p.ops[i+1:]...)
			return
		}
	}
}

func (p *Pipeline) removeFilter(name string) {
	for i, f := range p.filters {
		if f.Name == name {
			p.filters = append(p.filters[:i], p.filters[i+1:]...)
			return
		}
	}
}

// HasOperation reports whether an operation with the given name is present.
func (p *Pipeline) HasOperation(name string) bool {
	for _, op := range p.ops {
		if op.Name == name {
			return true
		}
	}
	return false
}

// HasFilter reports whether a filter with the given name is present.
func (p *Pipeline) HasFilter(name string) bool {
	for _, f := range p.filters {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Operations returns a copy of the operation sequence in insertion order.
func (p *Pipeline) Operations() []Operation {
	out := make([]Operation, len(p.ops))
	copy(out, p.ops)
	return out
}

// Filters returns a copy of the filter sequence in insertion order.
func (p *Pipeline) Filters() []Filter {
	out := make([]Filter, len(p.filters))
	copy(out, p.filters)
	return out
}

// Fail records err as the pipeline's sticky error.  The first error wins;
// later mutations still apply but renders return the recorded error.
func (p *Pipeline) Fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Err returns the first error recorded by a validating mutator, or nil.
func (p *Pipeline) Err() error { return p.err }

// SetImage replaces the image locator, stripping any leading slash.
func (p *Pipeline) SetImage(image string) { p.image = strings.TrimLeft(image, "/") }

// Image returns the current image locator.
func (p *Pipeline) Image() string { return p.image }

// SetBase replaces the base URL, stripping any trailing slash.
func (p *Pipeline) SetBase(baseURL string) { p.baseURL = strings.TrimRight(baseURL, "/") }

// BaseURL returns the configured base URL.
func (p *Pipeline) BaseURL() string { return p.baseURL }

// SetSigner attaches a signer.  Pass nil to render unsigned URLs.
func (p *Pipeline) SetSigner(s *Signer) { p.signer = s }

// Signer returns the attached signer, which may be nil.
func (p *Pipeline) Signer() *Signer { return p.signer }

// AddHook registers an observer for pipeline mutations and renders.
func (p *Pipeline) AddHook(h BuildHook) { p.hooks = append(p.hooks, h) }

// RenderOptions tweaks a single Path or URL render without mutating the
// pipeline.
type RenderOptions struct {
	Unsafe   bool    // force the unsafe token even when a signer is set
	Image    string  // override the image locator for this render
	Base     string  // override the base URL (URL only)
	Signer   *Signer // override the attached signer
	RawImage bool    // skip percent-encoding of the image locator
}

// RenderFilters flattens the filter sequence into the body of the
// synthetic filters operation: name(a,b):name2():...  It returns the empty
// string when no filters are set.
func (p *Pipeline) RenderFilters() string {
	if len(p.filters) == 0 {
		return ""
	}
	parts := make([]string, len(p.filters))
	for i, f := range p.filters {
		parts[i] = f.Name + "(" + strings.Join(f.Args, ",") + ")"
	}
	return strings.Join(parts, ":")
}

// orderedSegments resolves the order table against the present operations:
// each table entry contributes at most one segment, the operation's arg
// when set or its bare name otherwise.
func (p *Pipeline) orderedSegments() []string {
	resolved := make(map[string]string, len(p.ops)+1)
	for _, op := range p.ops {
		if op.Arg != "" {
			resolved[op.Name] = op.Arg
		} else {
			resolved[op.Name] = op.Name
		}
	}
	if fs := p.RenderFilters(); fs != "" {
		resolved["filters"] = "filters:" + fs
	}
	segments := make([]string, 0, len(resolved))
	for _, name := range p.order {
		if seg, ok := resolved[name]; ok {
			segments = append(segments, seg)
		}
	}
	return segments
}

// Path renders the canonical slash-dialect path: the signature segment
// followed by the ordered operation segments and the percent-encoded image
// locator.
func (p *Pipeline) Path(opts RenderOptions) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	image := p.image
	if opts.Image != "" {
		image = opts.Image
	}
	image = strings.Trim(image, "/")
	if !opts.RawImage {
		image = utils.EncodeImagePath(image)
	}
	parts := append(p.orderedSegments(), image)
	path := strings.Trim(strings.Join(parts, "/"), "/")

	signer := p.signer
	if opts.Signer != nil {
		signer = opts.Signer
	}
	signature := UnsafeToken
	if !opts.Unsafe && signer != nil {
		sig, err := signer.Sign(path)
		if err != nil {
			p.NotifyRender(path, err)
			return "", err
		}
		signature = sig
	}
	full := signature + "/" + path
	p.NotifyRender(full, nil)
	return full, nil
}

// URL renders the full URL: the base URL joined with the path, or the bare
// path when no base URL is configured.
func (p *Pipeline) URL(opts RenderOptions) (string, error) {
	path, err := p.Path(opts)
	if err != nil {
		return "", err
	}
	base := p.baseURL
	if opts.Base != "" {
		base = strings.TrimRight(opts.Base, "/")
	}
	if base == "" {
		return path, nil
	}
	return base + "/" + path, nil
}

// NotifyRender informs every attached hook of a render outcome.  Dialects
// that bypass Path, such as query-string renderers, call it themselves.
func (p *Pipeline) NotifyRender(path string, err error) {
	for _, h := range p.hooks {
		h.OnRender(path, err)
	}
}
