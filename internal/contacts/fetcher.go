package contacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/tartampluch/go-panchanga/internal/cache"
	"github.com/tartampluch/go-panchanga/internal/config"
)

// Fetcher retrieves a remote vCard stream.
type Fetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher implements Fetcher with net/http.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher with the configured timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: config.HTTPTimeout},
	}
}

// Fetch downloads targetURL with optional Basic Auth. Query strings are kept
// out of the logs since CardDAV links often embed tokens. 5xx answers are
// marked retryable; the body is capped at config.MaxHTTPResponseSize.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompContacts),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.DebugContext(ctx, config.MsgFetchStart)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequestBuild, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrNetwork, ctx.Err())
		}
		return nil, cache.Retryable(fmt.Errorf("%s: %w", config.ErrNetwork, err))
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.WarnContext(ctx, config.MsgFetchStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		err := fmt.Errorf("%s: %s", config.ErrStatus, resp.Status)
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, cache.Retryable(err)
		}
		return nil, err
	}

	log.InfoContext(ctx, config.MsgFetchOK, slog.Int64(config.LogKeyLength, resp.ContentLength))

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

type limitedReadCloser struct {
	io.Reader
	io.Closer
}

// Open returns a reader over source: an http(s) URL goes through fetcher
// (with retries), anything else is a local file path.
func Open(ctx context.Context, fetcher Fetcher, source, user, pass string) (io.ReadCloser, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, errors.New(config.ErrLocalPathEmpty)
	}

	if !isRemote(source) {
		return os.Open(source)
	}
	if fetcher == nil {
		return nil, errors.New(config.ErrFetcherMissing)
	}

	var rc io.ReadCloser
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		rc, err = fetcher.Fetch(ctx, source, user, pass)
		return err
	})
	return rc, err
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, config.SchemeHTTP+"://") || strings.HasPrefix(lower, config.SchemeHTTPS+"://")
}
