// Package report compares the same pipeline across dialects and renders
// the results as an HTML report.
package report

import (
	"github.com/urlpix/urlpix/core"
	"github.com/urlpix/urlpix/dialects/imagor"
	"github.com/urlpix/urlpix/dialects/thumbor"
	"github.com/urlpix/urlpix/dialects/wsrv"
)

// Backend adapts one dialect to the comparator.  Apply runs a sequence
// of named calls against a fresh builder for the given image.
type Backend interface {
	Name() string
	Apply(image string, calls []core.Call) (Backend, error)
	URL() (string, error)
	MetaURL() (string, error)
}

// ── Imagor adapter ────────────────────────────────────────────────────────────

// ImagorBackend wraps an imagor builder as a Backend.
type ImagorBackend struct {
	b *imagor.Imagor
}

// NewImagorBackend creates an imagor-backed comparator target.
func NewImagorBackend(baseURL string, signer *core.Signer) *ImagorBackend {
	return &ImagorBackend{b: imagor.New(baseURL, signer)}
}

func (a *ImagorBackend) Name() string { return "imagor" }

func (a *ImagorBackend) Apply(image string, calls []core.Call) (Backend, error) {
	b, err := a.b.WithImage(image).ApplyCalls(calls...)
	if err != nil {
		return nil, err
	}
	return &ImagorBackend{b: b}, nil
}

func (a *ImagorBackend) URL() (string, error) { return a.b.URL() }

func (a *ImagorBackend) MetaURL() (string, error) { return a.b.Meta().URL() }

// ── Thumbor adapter ───────────────────────────────────────────────────────────

// ThumborBackend wraps a thumbor builder as a Backend.
type ThumborBackend struct {
	b *thumbor.Thumbor
}

// NewThumborBackend creates a thumbor-backed comparator target.
func NewThumborBackend(baseURL string, signer *core.Signer) *ThumborBackend {
	return &ThumborBackend{b: thumbor.New(baseURL, signer)}
}

func (a *ThumborBackend) Name() string { return "thumbor" }

func (a *ThumborBackend) Apply(image string, calls []core.Call) (Backend, error) {
	b, err := a.b.WithImage(image).ApplyCalls(calls...)
	if err != nil {
		return nil, err
	}
	return &ThumborBackend{b: b}, nil
}

func (a *ThumborBackend) URL() (string, error) { return a.b.URL() }

func (a *ThumborBackend) MetaURL() (string, error) { return a.b.Meta().URL() }

// ── wsrv adapter ──────────────────────────────────────────────────────────────

// WsrvBackend wraps a wsrv builder as a Backend.
type WsrvBackend struct {
	b *wsrv.Wsrv
}

// NewWsrvBackend creates a wsrv-backed comparator target.
func NewWsrvBackend(baseURL string) *WsrvBackend {
	return &WsrvBackend{b: wsrv.New(baseURL)}
}

func (a *WsrvBackend) Name() string { return "wsrv" }

func (a *WsrvBackend) Apply(image string, calls []core.Call) (Backend, error) {
	b, err := a.b.WithImage(image).ApplyCalls(calls...)
	if err != nil {
		return nil, err
	}
	return &WsrvBackend{b: b}, nil
}

func (a *WsrvBackend) URL() (string, error) { return a.b.URL() }

func (a *WsrvBackend) MetaURL() (string, error) { return a.b.Meta().URL() }
