// Package urlpix generates URLs for remote image-processing servers.
//
// Three dialects are supported: imagor and thumbor (slash-separated
// paths with an HMAC signature prefix) and wsrv.nl (a query string,
// never signed).  Builders are immutable: every call returns a new
// builder, so partial chains can be shared and extended safely.
package urlpix

import (
	"github.com/urlpix/urlpix/config"
	"github.com/urlpix/urlpix/core"
	"github.com/urlpix/urlpix/dialects/imagor"
	"github.com/urlpix/urlpix/dialects/thumbor"
	"github.com/urlpix/urlpix/dialects/wsrv"
)

// Re-export signing algorithms for convenience.
const (
	SHA1   = core.SHA1
	SHA256 = core.SHA256
	SHA512 = core.SHA512
)

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() config.Config { return config.Default() }

// NewSigner creates an HMAC signer for the slash dialects.
func NewSigner(algorithm core.Algorithm, key string) (*core.Signer, error) {
	return core.NewSigner(algorithm, key)
}

// UnsafeSigner creates a signer that emits the unsafe prefix instead of
// a signature.
func UnsafeSigner() *core.Signer { return core.UnsafeSigner() }

// NewImagor creates a builder for an imagor server.
func NewImagor(baseURL string, signer *core.Signer) *imagor.Imagor {
	return imagor.New(baseURL, signer)
}

// NewThumbor creates a builder for a thumbor server.
func NewThumbor(baseURL string, signer *core.Signer) *thumbor.Thumbor {
	return thumbor.New(baseURL, signer)
}

// NewWsrv creates a builder for a wsrv.nl compatible proxy.
func NewWsrv(baseURL string) *wsrv.Wsrv { return wsrv.New(baseURL) }

// Px returns an absolute pixel coordinate.
func Px(n int) core.Coord { return core.Px(n) }

// Rel returns a relative coordinate in [0, 1].
func Rel(v float64) core.Coord { return core.Rel(v) }
