package chart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gocloud.dev/blob"
)

// ErrBadStatus is returned when the cutout service answers with a
// non-success status code.
var ErrBadStatus = errors.New("chart: unexpected status from cutout service")

// defaultBaseURL is the SDSS DR7 image-cutout endpoint.
const defaultBaseURL = "http://casjobs.sdss.org/ImgCutoutDR7/getjpeg.aspx"

// spatialQuery is a service-specific spatial-request parameter. It is passed
// through to the service verbatim.
const spatialQuery = "SR(10,10)"

// Options configures the fetcher.
type Options struct {
	// BaseURL is the image-cutout endpoint.
	// Default: the SDSS DR7 getjpeg service.
	BaseURL string

	// Timeout for individual requests.
	// Default: 60s
	Timeout time.Duration
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		BaseURL: defaultBaseURL,
		Timeout: 60 * time.Second,
	}
}

// Request describes one finding chart to download.
type Request struct {
	RA     float64 // decimal degrees
	Dec    float64 // decimal degrees
	Width  int     // pixels
	Height int     // pixels
	Scale  float64 // arcsec/pixel
	Opt    string  // concatenated display options
	Key    string  // destination object key, usually "<identifier>.jpg"
}

// Fetcher downloads finding charts from the cutout service into a bucket.
type Fetcher struct {
	client  *http.Client
	bucket  *blob.Bucket
	baseURL string
	log     zerolog.Logger
}

// NewFetcher creates a fetcher writing charts to bucket.
func NewFetcher(bucket *blob.Bucket, opts Options, log zerolog.Logger) *Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}

	return &Fetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		bucket:  bucket,
		baseURL: opts.BaseURL,
		log:     log,
	}
}

// Fetch downloads one chart and stores it under req.Key. It returns the
// number of body bytes written.
//
// The request is attempted exactly once. On any failure, including
// cancellation mid-download, the partially written object is removed so no
// partial chart is ever left behind.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (int64, error) {
	u := f.buildURL(req)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", req.Key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch %s: %w: %d %s", req.Key, ErrBadStatus, resp.StatusCode, resp.Status)
	}

	w, err := f.bucket.NewWriter(ctx, req.Key, &blob.WriterOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return 0, fmt.Errorf("open writer for %s: %w", req.Key, err)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		w.Close()
		f.discard(req.Key)
		return 0, fmt.Errorf("write %s: %w", req.Key, err)
	}

	if err := w.Close(); err != nil {
		f.discard(req.Key)
		return 0, fmt.Errorf("store %s: %w", req.Key, err)
	}

	f.log.Debug().
		Str("chart", req.Key).
		Int64("bytes", n).
		Float64("scale", req.Scale).
		Msg("chart stored")

	return n, nil
}

// buildURL assembles the cutout query. The spatial-request parameter is
// appended raw so its value reaches the service unescaped.
func (f *Fetcher) buildURL(req Request) string {
	q := url.Values{}
	q.Set("ra", strconv.FormatFloat(req.RA, 'f', -1, 64))
	q.Set("dec", strconv.FormatFloat(req.Dec, 'f', -1, 64))
	q.Set("width", strconv.Itoa(req.Width))
	q.Set("height", strconv.Itoa(req.Height))
	q.Set("scale", strconv.FormatFloat(req.Scale, 'f', -1, 64))
	q.Set("opt", req.Opt)

	return f.baseURL + "?" + q.Encode() + "&query=" + spatialQuery
}

// discard removes whatever ended up under key. The run context may already
// be cancelled here, so the deletion gets its own deadline. Deletion errors
// are ignored: the object most likely was never committed.
func (f *Fetcher) discard(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = f.bucket.Delete(ctx, key)
}
