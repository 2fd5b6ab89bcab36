package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Source serves a site's static resources by relative name, such as
// "index.html" or "pages/about.html".
type Source interface {
	// Exists checks that name can be retrieved.
	Exists(ctx context.Context, name string) error

	// Get retrieves the text content of name.
	Get(ctx context.Context, name string) (string, error)
}

// StatusError is returned when a resource request gets a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request %s failed with status: %d", e.URL, e.StatusCode)
}

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// HTTPSource fetches resources relative to a base URL.
type HTTPSource struct {
	base       *url.URL
	httpClient *http.Client
}

// NewHTTPSource creates an HTTPSource rooted at base.
func NewHTTPSource(base string, timeout time.Duration) (*HTTPSource, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse site url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported site url scheme %q", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &HTTPSource{
		base: u,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// URL returns the absolute URL for name.
func (s *HTTPSource) URL(name string) (string, error) {
	ref, err := url.Parse(name)
	if err != nil {
		return "", fmt.Errorf("invalid resource name %q: %w", name, err)
	}
	return s.base.ResolveReference(ref).String(), nil
}

func (s *HTTPSource) do(ctx context.Context, name string) (*http.Response, error) {
	u, err := s.URL(name)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: u, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// Exists issues a request for name and checks the status only.
func (s *HTTPSource) Exists(ctx context.Context, name string) error {
	resp, err := s.do(ctx, name)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Get returns the response body for name.
func (s *HTTPSource) Get(ctx context.Context, name string) (string, error) {
	resp, err := s.do(ctx, name)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

// DirSource reads resources from a file system, such as os.DirFS or an
// embedded site.
type DirSource struct {
	fsys fs.FS
}

// NewDirSource wraps fsys.
func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys}
}

// Exists stats name.
func (s *DirSource) Exists(_ context.Context, name string) error {
	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", name)
	}
	return nil
}

// Get reads name.
func (s *DirSource) Get(_ context.Context, name string) (string, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
