// Package server exposes charts over HTTP: an on-demand chart API and a
// cached ICS feed for a vCard source, refreshed in the background.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tartampluch/go-panchanga/internal/config"
	"github.com/tartampluch/go-panchanga/internal/engine"
)

// ChartComputer computes one chart from raw input.
type ChartComputer interface {
	ComputeChart(ctx context.Context, req engine.ChartRequest) (*engine.BirthChartRecord, error)
}

// Renderer encodes records in a named format.
type Renderer interface {
	Write(ctx context.Context, w io.Writer, format string, records ...*engine.BirthChartRecord) error
}

// FeedFunc builds the ICS feed served at the root route.
type FeedFunc func(ctx context.Context) ([]byte, error)

// cacheItem stores the rendered feed and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// ChartServer serves the chart API and the feed.
type ChartServer struct {
	// The feed is read on every request and replaced once per refresh, so
	// readers load it without locking.
	cache atomic.Pointer[cacheItem]

	Port   string
	Engine ChartComputer
	Render Renderer
	Clock  engine.Clock
}

// NewChartServer creates a server bound to localhost:port.
func NewChartServer(port string, eng ChartComputer, r Renderer) *ChartServer {
	return &ChartServer{
		Port:   port,
		Engine: eng,
		Render: r,
		Clock:  engine.RealClock{},
	}
}

// Routes builds the chi router.
func (s *ChartServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(config.RequestTimeout))

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	})

	r.Get(config.RouteRoot, s.handleFeed)
	r.Head(config.RouteRoot, s.handleFeed)
	r.Get(config.RouteHealth, s.handleHealth)
	r.Get(config.RouteChart, s.handleChart(""))
	r.Get(config.RouteChartICS, s.handleChart(config.FormatICS))
	return r
}

// Start listens on localhost:Port and blocks until the context is cancelled.
func (s *ChartServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}
	ln, err := net.Listen("tcp", config.LocalhostBindAddr+config.AddrSeparator+s.Port)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until the context is cancelled, then shuts
// down gracefully.
func (s *ChartServer) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Routes(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, ln.Addr().String(),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed.
func (s *ChartServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	s.cache.Store(&cacheItem{
		data:         data,
		etag:         etag,
		lastModified: s.now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// RefreshWorker rebuilds the feed now and then every interval until ctx ends.
// A failed refresh keeps the previous feed.
func (s *ChartServer) RefreshWorker(ctx context.Context, interval time.Duration, build FeedFunc) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)
	if interval <= 0 {
		interval = config.DefaultRefreshMin * time.Minute
	}

	refresh := func() {
		data, err := build(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Error(config.MsgFeedFailed, config.LogKeyError, err)
			}
			return
		}
		s.Update(data)
	}

	refresh()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-ticker.C:
			refresh()
		}
	}
}

func (s *ChartServer) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

// handleFeed serves the ICS feed with HTTP caching support.
func (s *ChartServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

func (s *ChartServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderContentType, config.MimeText)
	_, _ = io.WriteString(w, config.HTTPMsgOK)
}

// handleChart computes a chart from the query string. A fixed format wins over
// the ?format parameter, which defaults to JSON.
func (s *ChartServer) handleChart(fixed string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		format := fixed
		if format == "" {
			format = strings.ToLower(q.Get(config.QueryFormat))
		}
		if format == "" {
			format = config.FormatJSON
		}
		mime, ok := mimeTypes[format]
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%s: %q", config.ErrUnknownFormat, format))
			return
		}

		req := engine.ChartRequest{
			Name:     q.Get(config.QueryName),
			Date:     q.Get(config.QueryDate),
			Time:     q.Get(config.QueryTime),
			Place:    q.Get(config.QueryPlace),
			Timezone: q.Get(config.QueryTZ),
		}
		if raw := q.Get(config.QueryOffset); raw != "" {
			off, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %s", engine.ErrInputFormat, raw))
				return
			}
			req.Offset = &off
		}

		rec, err := s.Engine.ComputeChart(r.Context(), req)
		if err != nil {
			slog.Warn(config.ErrChartFailed,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyName, req.Name,
				config.LogKeyError, err,
			)
			writeError(w, statusFor(err), err)
			return
		}

		var buf bytes.Buffer
		if err := s.Render.Write(r.Context(), &buf, format, rec); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set(config.HeaderContentType, mime)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
		if _, err := io.Copy(w, &buf); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

var mimeTypes = map[string]string{
	config.FormatJSON: config.MimeJSON,
	config.FormatYAML: config.MimeYAML,
	config.FormatText: config.MimeText,
	config.FormatICS:  config.MimeTextCalendar,
}

// statusFor maps engine sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrInputFormat):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrCityNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrEphemerisUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrGeocode):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = config.HTTPMsgInternalErr
	}
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg})
}
