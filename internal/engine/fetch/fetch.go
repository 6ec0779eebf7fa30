// Package fetch reads the static data files from local paths, HTTP(S) URLs
// or S3 objects.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported location scheme")
	ErrEmptyLocation     = errors.New("empty location")
	ErrTooLarge          = errors.New("resource too large")
)

type Options struct {
	ProxyURL string
	Timeout  time.Duration
	S3       S3Config
}

// Fetcher dispatches a location to the matching transport. The S3 client is
// created on first use.
type Fetcher struct {
	opts Options
	http *Client

	s3Once sync.Once
	s3     *S3Getter
	s3Err  error
}

func New(opts Options) *Fetcher {
	return &Fetcher{
		opts: opts,
		http: NewClient(opts.ProxyURL, opts.Timeout),
	}
}

// Fetch returns the full content of the resource at location.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrEmptyLocation
	}

	switch Scheme(location) {
	case "http", "https":
		return f.http.Get(ctx, location)
	case "s3":
		f.s3Once.Do(func() {
			f.s3, f.s3Err = NewS3Getter(ctx, f.opts.S3)
		})
		if f.s3Err != nil {
			return nil, f.s3Err
		}
		return f.s3.Get(ctx, location)
	case "file":
		return readFile(strings.TrimPrefix(location, "file://"))
	case "":
		return readFile(location)
	default:
		return nil, fmt.Errorf("%q: %w", location, ErrUnsupportedScheme)
	}
}

// Scheme returns the lowercase URL scheme of location, or "" for plain paths.
func Scheme(location string) string {
	i := strings.Index(location, "://")
	if i <= 0 {
		return ""
	}
	return strings.ToLower(location[:i])
}

// readLimited reads r to the end, failing with ErrTooLarge past limit bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrTooLarge, limit)
	}
	return body, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
