package report

import (
	"context"
	"html/template"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/urlpix/urlpix/core"
)

// Chain is one named sequence of pipeline calls to compare.
type Chain struct {
	Name        string
	Description string
	Calls       []core.Call
}

// Row is the outcome of applying one chain to one backend.
type Row struct {
	Chain   string
	Backend string
	URL     string
	MetaURL string
	Meta    *Metadata
	Err     error
}

// ErrText renders the row error for templates; empty when the row succeeded.
func (r Row) ErrText() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Report is a point-in-time comparison of chains across backends.
type Report struct {
	ID          uuid.UUID
	GeneratedAt time.Time
	SourceImage string
	Rows        []Row
}

// Comparator applies chains across a set of backends and collects rows.
type Comparator struct {
	backends []Backend
	meta     *MetaClient
	logger   core.Logger
}

// NewComparator creates a comparator over the given backends.  The meta
// client is optional; without one, rows carry URLs but no fetched metadata.
func NewComparator(backends []Backend, meta *MetaClient, logger core.Logger) *Comparator {
	return &Comparator{backends: backends, meta: meta, logger: logger}
}

// Run applies every chain to every backend and returns the report.
// Backend or fetch failures are recorded per row, not returned.
func (c *Comparator) Run(ctx context.Context, image string, chains []Chain) *Report {
	rep := &Report{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		SourceImage: image,
	}
	for _, chain := range chains {
		for _, backend := range c.backends {
			rep.Rows = append(rep.Rows, c.runOne(ctx, image, chain, backend))
		}
	}
	return rep
}

func (c *Comparator) runOne(ctx context.Context, image string, chain Chain, backend Backend) Row {
	row := Row{Chain: chain.Name, Backend: backend.Name()}

	applied, err := backend.Apply(image, chain.Calls)
	if err != nil {
		row.Err = err
		c.warn("compare.apply", chain.Name, backend.Name(), err)
		return row
	}
	if row.URL, err = applied.URL(); err != nil {
		row.Err = err
		c.warn("compare.url", chain.Name, backend.Name(), err)
		return row
	}
	if row.MetaURL, err = applied.MetaURL(); err != nil {
		row.Err = err
		c.warn("compare.meta_url", chain.Name, backend.Name(), err)
		return row
	}
	if c.meta != nil {
		meta, err := c.meta.Fetch(ctx, row.MetaURL)
		if err != nil {
			row.Err = err
			c.warn("compare.meta_fetch", chain.Name, backend.Name(), err)
			return row
		}
		row.Meta = meta
	}
	return row
}

func (c *Comparator) warn(event, chain, backend string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Warn(event, "chain", chain, "backend", backend, "error", err.Error())
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Backend comparison {{.ID}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; vertical-align: top; }
th { background: #f0f0f0; }
td.err { color: #b00020; }
code { word-break: break-all; }
</style>
</head>
<body>
<h1>Backend comparison</h1>
<p>Report {{.ID}} generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}}</p>
<p>Source image: <code>{{.SourceImage}}</code></p>
<table>
<tr><th>Chain</th><th>Backend</th><th>URL</th><th>Metadata</th><th>Error</th></tr>
{{range .Rows}}
<tr>
<td>{{.Chain}}</td>
<td>{{.Backend}}</td>
<td><code>{{.URL}}</code></td>
<td>{{with .Meta}}{{.Width}}x{{.Height}} {{.Format}}{{end}}</td>
<td class="err">{{.ErrText}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

// WriteHTML renders the report as a standalone HTML page.
func (r *Report) WriteHTML(w io.Writer) error {
	return reportTemplate.Execute(w, r)
}
