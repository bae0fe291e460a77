package readme

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL serves raw file content for public GitHub repositories.
const DefaultBaseURL = "https://raw.githubusercontent.com"

// Default candidate lists, probed branches-outer, filenames-inner.
var (
	DefaultBranches  = []string{"main", "master"}
	DefaultFilenames = []string{"README.md", "README.rst", "README.txt", "readme.md"}
)

// Document is a fetched README plus the candidate coordinates that produced it.
type Document struct {
	Text     string
	Branch   string
	Filename string
	URL      string
}

// Fetcher probes the raw content host for a repository's README.
type Fetcher struct {
	baseURL    string
	branches   []string
	filenames  []string
	httpClient *http.Client
	logger     *slog.Logger
	timeout    time.Duration
}

// Option configures the Fetcher during construction.
type Option func(*Fetcher)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.httpClient = c }
}

// WithTimeout sets a timeout on the HTTP client. Zero leaves requests
// bounded only by the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// WithLogger configures structured logging. Candidate attempts are traced
// at debug level only.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// WithBaseURL overrides the raw content host.
func WithBaseURL(u string) Option {
	return func(f *Fetcher) { f.baseURL = strings.TrimSuffix(u, "/") }
}

// WithBranches overrides the branch candidates. Empty keeps the defaults.
func WithBranches(branches []string) Option {
	return func(f *Fetcher) {
		if len(branches) > 0 {
			f.branches = branches
		}
	}
}

// WithFilenames overrides the filename candidates. Empty keeps the defaults.
func WithFilenames(filenames []string) Option {
	return func(f *Fetcher) {
		if len(filenames) > 0 {
			f.filenames = filenames
		}
	}
}

// NewFetcher creates a Fetcher with the default candidate lists.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL:   DefaultBaseURL,
		branches:  DefaultBranches,
		filenames: DefaultFilenames,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.httpClient == nil {
		f.httpClient = &http.Client{}
	}
	if f.timeout > 0 {
		f.httpClient.Timeout = f.timeout
	}
	if f.logger == nil {
		f.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return f
}

// Fetch tries each branch/filename candidate in order and returns the first
// hit. A miss, whether a transport error or a non-2xx status, moves on to
// the next candidate. When every candidate misses it returns a
// *NotFoundError naming the repository URL and the branches checked.
func (f *Fetcher) Fetch(ctx context.Context, ref Ref) (*Document, error) {
	for _, branch := range f.branches {
		for _, filename := range f.filenames {
			url := fmt.Sprintf("%s/%s/%s/%s/%s", f.baseURL, ref.Owner, ref.Name, branch, filename)
			text, err := f.get(ctx, url)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				f.logger.Debug("readme candidate miss", "url", url, "err", err)
				continue
			}
			f.logger.Debug("readme candidate hit", "url", url, "bytes", len(text))
			return &Document{Text: text, Branch: branch, Filename: filename, URL: url}, nil
		}
	}
	return nil, &NotFoundError{URL: ref.URL, Branches: f.branches}
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
