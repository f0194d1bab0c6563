// Package fetch downloads and parses source payloads over HTTP and FTP,
// with CSV, JSON, and XLSX decoding.
package fetch

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// Fetcher downloads a remote payload. Implementations must be safe for
// concurrent use by independent source adapters.
type Fetcher interface {
	// Download fetches the URL and returns the response body. The caller
	// must close the returned reader.
	Download(ctx context.Context, rawURL string) (io.ReadCloser, error)
}

// Options configures the default fetcher.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
}

// schemeFetcher dispatches by URL scheme: http/https to the HTTP fetcher,
// ftp to the FTP fetcher.
type schemeFetcher struct {
	http *HTTPFetcher
	ftp  *FTPFetcher
}

// New returns a Fetcher handling http, https, and ftp URLs.
func New(opts Options) Fetcher {
	return &schemeFetcher{
		http: NewHTTPFetcher(opts),
		ftp:  NewFTPFetcher(FTPOptions{Timeout: opts.Timeout}),
	}
}

func (s *schemeFetcher) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: parse url %s", rawURL)
	}

	switch u.Scheme {
	case "http", "https":
		return s.http.Download(ctx, rawURL)
	case "ftp":
		return s.ftp.Download(ctx, rawURL)
	default:
		return nil, eris.Errorf("fetch: unsupported scheme %q", u.Scheme)
	}
}
