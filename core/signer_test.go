package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/urlpix/urlpix/errors"
)

const signedPath = "fit-in/400x300/filters:grayscale():quality(85)/a.jpg"

func TestSignKnownVectors(t *testing.T) {
	tests := []struct {
		alg  Algorithm
		key  string
		path string
		want string
	}{
		{SHA1, "my-security-key", signedPath, "yWt25ceILldoOA872xflN3rA0i0="},
		{SHA256, "my-security-key", signedPath, "bcp9kg4xwenRqwIXXWBm1RGktAm_GSjH9vOl-OiWnOY="},
		{SHA512, "my-security-key", signedPath, "ZOA6knkx4_rsaoMt-GRlbuHsy3QZJbkJy4aZqjLdRgkfMvLQBdga6VlnSa5QmJXKTVkiWgE5jAuHjYXXuYNcPw=="},
		{SHA1, "secret", "300x200/img.png", "WnEh_UzK5jShV6Pt_ioXEWx5yHs="},
		{SHA256, "secret", "300x200/img.png", "rbdnKuIC_N_Hrfbe8q1uFPVrrgOYjebGoc1pChRFksw="},
	}
	for _, tt := range tests {
		t.Run(string(tt.alg), func(t *testing.T) {
			got, err := MustSigner(tt.alg, tt.key).Sign(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignIsDeterministic(t *testing.T) {
	s := MustSigner(SHA256, "key")
	a, err := s.Sign(signedPath)
	require.NoError(t, err)
	b, err := s.Sign(signedPath)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSignatureChangesWithPath(t *testing.T) {
	s := MustSigner(SHA256, "key")
	a, err := s.Sign(signedPath)
	require.NoError(t, err)
	b, err := s.Sign(signedPath + "x")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEmptyAlgorithmDefaultsToSHA1(t *testing.T) {
	a, err := MustSigner("", "secret").Sign("300x200/img.png")
	require.NoError(t, err)
	assert.Equal(t, "WnEh_UzK5jShV6Pt_ioXEWx5yHs=", a)
}

func TestUnsafeSignerEmitsToken(t *testing.T) {
	got, err := UnsafeSigner().Sign(signedPath)
	require.NoError(t, err)
	assert.Equal(t, UnsafeToken, got)
}

func TestActiveKey(t *testing.T) {
	assert.Equal(t, "k", MustSigner(SHA1, "k").ActiveKey())
	assert.Equal(t, "", UnsafeSigner().ActiveKey())
}

func TestWithTruncate(t *testing.T) {
	s := MustSigner(SHA256, "my-security-key").WithTruncate(16)
	got, err := s.Sign(signedPath)
	require.NoError(t, err)
	assert.Equal(t, "bcp9kg4xwenRqwIX", got)

	// The original signer is unchanged.
	full, err := MustSigner(SHA256, "my-security-key").Sign(signedPath)
	require.NoError(t, err)
	assert.Len(t, full, 44)
}

func TestTruncateLongerThanDigestIsNoop(t *testing.T) {
	s := MustSigner(SHA1, "secret").WithTruncate(9999)
	got, err := s.Sign("300x200/img.png")
	require.NoError(t, err)
	assert.Equal(t, "WnEh_UzK5jShV6Pt_ioXEWx5yHs=", got)
}

func TestMissingKeyFails(t *testing.T) {
	_, err := MustSigner(SHA1, "").Sign(signedPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMissingKey)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConfig))
}

func TestUnsupportedAlgorithmFails(t *testing.T) {
	s, err := NewSigner("md5", "secret")
	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedAlgorithm)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConfig))
}

func TestMustSignerPanicsOnUnsupportedAlgorithm(t *testing.T) {
	assert.Panics(t, func() { MustSigner("md5", "secret") })
}
