package report

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urlpix/urlpix/core"
)

func testBackends() []Backend {
	return []Backend{
		NewImagorBackend("http://imagor", core.UnsafeSigner()),
		NewThumborBackend("http://thumbor", core.UnsafeSigner()),
		NewWsrvBackend("https://wsrv.nl"),
	}
}

var thumbnailChain = Chain{
	Name: "thumbnail",
	Calls: []core.Call{
		{Name: "fit-in", Args: []string{"300", "200"}},
		{Name: "quality", Args: []string{"85"}},
	},
}

func TestComparatorBuildsURLsPerBackend(t *testing.T) {
	c := NewComparator(testBackends(), nil, nil)

	rep := c.Run(context.Background(), "img.jpg", []Chain{thumbnailChain})
	require.Len(t, rep.Rows, 3)
	assert.NotEqual(t, rep.ID.String(), "00000000-0000-0000-0000-000000000000")

	byBackend := map[string]Row{}
	for _, row := range rep.Rows {
		require.NoError(t, row.Err, row.Backend)
		byBackend[row.Backend] = row
	}
	assert.Equal(t,
		"http://imagor/unsafe/fit-in/300x200/filters:quality(85)/img.jpg",
		byBackend["imagor"].URL)
	assert.Equal(t,
		"http://thumbor/unsafe/fit-in/300x200/filters:quality(85)/img.jpg",
		byBackend["thumbor"].URL)
	assert.Equal(t,
		"https://wsrv.nl/?url=img.jpg&w=300&h=200&fit=contain&q=85",
		byBackend["wsrv"].URL)
}

func TestComparatorRecordsRowErrors(t *testing.T) {
	c := NewComparator(testBackends(), nil, nil)
	bad := Chain{Name: "bad", Calls: []core.Call{{Name: "sepia"}}}

	rep := c.Run(context.Background(), "img.jpg", []Chain{bad})
	require.Len(t, rep.Rows, 3)
	for _, row := range rep.Rows {
		assert.Error(t, row.Err, row.Backend)
		assert.NotEmpty(t, row.ErrText())
	}
}

func TestMetaClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"format":"jpeg","content_type":"image/jpeg","width":300,"height":200,"has_alpha":false}`))
	}))
	defer srv.Close()

	m, err := NewMetaClient(2*time.Second).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", m.Format)
	assert.Equal(t, 300, m.Width)
	assert.Equal(t, 200, m.Height)
	assert.False(t, m.HasAlpha)
}

func TestMetaClientNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewMetaClient(2*time.Second).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestMetaClientContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewMetaClient(5*time.Second).Fetch(ctx, srv.URL)
	assert.Error(t, err)
}

func TestComparatorFetchesMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"format":"png","width":10,"height":20}`))
	}))
	defer srv.Close()

	backends := []Backend{NewImagorBackend(srv.URL, core.UnsafeSigner())}
	c := NewComparator(backends, NewMetaClient(2*time.Second), nil)

	rep := c.Run(context.Background(), "img.jpg", []Chain{thumbnailChain})
	require.Len(t, rep.Rows, 1)
	require.NoError(t, rep.Rows[0].Err)
	require.NotNil(t, rep.Rows[0].Meta)
	assert.Equal(t, "png", rep.Rows[0].Meta.Format)
}

func TestWriteHTML(t *testing.T) {
	c := NewComparator(testBackends(), nil, nil)
	rep := c.Run(context.Background(), "img.jpg", []Chain{thumbnailChain})

	var buf bytes.Buffer
	require.NoError(t, rep.WriteHTML(&buf))

	out := buf.String()
	assert.True(t, strings.Contains(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, rep.ID.String())
	assert.Contains(t, out, "img.jpg")
	assert.Contains(t, out, "thumbnail")
	assert.Contains(t, out, "wsrv")
}
