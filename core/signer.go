package core

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"hash"

	apperrors "github.com/urlpix/urlpix/errors"
)

// Algorithm selects the keyed-hash function used for URL signing.
type Algorithm string

const (
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
	SHA512 Algorithm = "sha512"
)

// UnsafeToken is the signature segment emitted when signing is skipped.
const UnsafeToken = "unsafe"

// Signer holds the signing configuration shared by builders.  The same
// Signer may be attached to any number of builders; it is never mutated by
// them, so concurrent use is safe.
type Signer struct {
	Algorithm Algorithm
	Key       string
	Truncate  int  // cap on signature length in characters; 0 = full
	Unsafe    bool // skip signing without discarding the key
}

// NewSigner returns a Signer with the given algorithm and key.  An
// algorithm outside the supported set fails with a configuration error.
func NewSigner(algorithm Algorithm, key string) (*Signer, error) {
	s := &Signer{Algorithm: algorithm, Key: key}
	if _, err := s.hashFunc(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustSigner is NewSigner for statically known algorithms; it panics on an
// unsupported one.
func MustSigner(algorithm Algorithm, key string) *Signer {
	s, err := NewSigner(algorithm, key)
	if err != nil {
		panic(err)
	}
	return s
}

// UnsafeSigner returns a Signer that always emits the unsafe token.
func UnsafeSigner() *Signer { return &Signer{Unsafe: true} }

// WithTruncate returns a copy of s that truncates signatures to n characters.
func (s *Signer) WithTruncate(n int) *Signer {
	cp := *s
	cp.Truncate = n
	return &cp
}

// ActiveKey returns the signing key, or the empty string while the signer
// is in unsafe mode.
func (s *Signer) ActiveKey() string {
	if s.Unsafe {
		return ""
	}
	return s.Key
}

// Sign computes the signature segment for path: the unsafe token when the
// signer is unsafe, otherwise base64url(HMAC(key, path)) truncated to
// Truncate characters when set.
func (s *Signer) Sign(path string) (string, error) {
	if s.Unsafe {
		return UnsafeToken, nil
	}
	if s.Key == "" {
		return "", apperrors.Config("sign", apperrors.ErrMissingKey)
	}
	newHash, err := s.hashFunc()
	if err != nil {
		return "", err
	}
	mac := hmac.New(newHash, []byte(s.Key))
	mac.Write([]byte(path))
	sig := base64.URLEncoding.EncodeToString(mac.Sum(nil))
	if s.Truncate > 0 && s.Truncate < len(sig) {
		sig = sig[:s.Truncate]
	}
	return sig, nil
}

func (s *Signer) hashFunc() (func() hash.Hash, error) {
	switch s.Algorithm {
	case SHA1, "":
		return sha1.New, nil
	case SHA256:
		return sha256.New, nil
	case SHA512:
		return sha512.New, nil
	}
	return nil, apperrors.Config("sign",
		apperrors.ErrUnsupportedAlgorithm)
}
