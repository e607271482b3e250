package report

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	apperrors "github.com/urlpix/urlpix/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Metadata is the JSON document a metadata endpoint returns.  Field names
// cover both the imagor/thumbor shape and the wsrv shape; absent fields
// stay zero.
type Metadata struct {
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Orientation int    `json:"orientation"`
	Pages       int    `json:"pages"`
	Bands       int    `json:"bands"`
	HasAlpha    bool   `json:"has_alpha"`
}

// MetaClient fetches metadata documents over HTTP.
type MetaClient struct {
	client *http.Client
}

// NewMetaClient creates a client with the given request timeout.
func NewMetaClient(timeout time.Duration) *MetaClient {
	return &MetaClient{client: &http.Client{Timeout: timeout}}
}

// Fetch retrieves and decodes the metadata document at url.
func (c *MetaClient) Fetch(ctx context.Context, url string) (*Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Config("meta.fetch", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Config("meta.fetch", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Config("meta.fetch",
			fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url))
	}
	var m Metadata
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, apperrors.Config("meta.decode", err)
	}
	return &m, nil
}
