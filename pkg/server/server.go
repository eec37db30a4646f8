// Package server serves an interactive chart over HTTP.
//
// The server owns one [donut.Chart] and drives its interaction state from
// pointer routes:
//
//	GET /                       HTML page embedding the chart
//	GET /chart.{svg,json,png,pdf}
//	GET /hover/slice/{label}    hover a slice, respond with SVG
//	GET /hover/center           hover the center, respond with SVG
//	GET /leave                  clear hover, respond with SVG
//	GET /select/slice/{label}   redirect to the slice target
//	GET /select/center          redirect to the center target
//
// Selection is forwarded through the chart's collaborators, so a label the
// chart does not know, or a center click on a pie, is answered with 404.
//
// Chart state is shared by every client and guarded by a mutex.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/donut/pkg/config"
	"github.com/matzehuels/donut/pkg/donut"
	derrors "github.com/matzehuels/donut/pkg/errors"
	"github.com/matzehuels/donut/pkg/interact"
	"github.com/matzehuels/donut/pkg/observability"
	"github.com/matzehuels/donut/pkg/pipeline"
)

const (
	targetSlice  = "slice"
	targetCenter = "center"

	shutdownTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	// SliceURL and CenterURL are the redirect targets of selections.
	// They default to config.DefaultSliceURL and config.DefaultCenterURL.
	SliceURL  string
	CenterURL string

	// Runner renders artifacts. Nil renders without a cache.
	Runner *pipeline.Runner

	Logger *log.Logger
}

// Server is the chart HTTP server.
type Server struct {
	mu    sync.Mutex
	chart *donut.Chart

	// target is set by the collaborators during a select request.
	target string

	sliceURL  string
	centerURL string
	runner    *pipeline.Runner
	logger    *log.Logger
	router    chi.Router
}

// New returns a server for c. The chart's selection collaborators are
// replaced by the server's redirects.
func New(c *donut.Chart, opts Options) *Server {
	s := &Server{
		chart:     c,
		sliceURL:  opts.SliceURL,
		centerURL: opts.CenterURL,
		runner:    opts.Runner,
		logger:    opts.Logger,
	}
	if s.sliceURL == "" {
		s.sliceURL = config.DefaultSliceURL
	}
	if s.centerURL == "" {
		s.centerURL = config.DefaultCenterURL
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}

	c.State().SetCollaborators(interact.Collaborators{
		SliceSelected:  func(string) { s.target = s.sliceURL },
		CenterSelected: func() { s.target = s.centerURL },
	})

	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/chart.svg", s.handleArtifact(pipeline.FormatSVG))
	r.Get("/chart.json", s.handleArtifact(pipeline.FormatJSON))
	r.Get("/chart.png", s.handleArtifact(pipeline.FormatPNG))
	r.Get("/chart.pdf", s.handleArtifact(pipeline.FormatPDF))

	r.Get("/hover/slice/{label}", s.handleHoverSlice)
	r.Get("/hover/center", s.handleHoverCenter)
	r.Get("/leave", s.handleLeave)

	r.Get("/select/slice/{label}", s.handleSelectSlice)
	r.Get("/select/center", s.handleSelectCenter)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Update replaces the chart parameters, keeping the interaction state.
func (s *Server) Update(p donut.Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chart.SetParams(p)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("serving chart", "addr", "http://"+ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	svg, err := s.render(r.Context(), pipeline.FormatSVG)
	title := s.chart.Params().Title
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}
	if title == "" {
		title = "donut"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{Title: title, Chart: template.HTML(svg)}
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("render page", "err", err)
	}
}

func (s *Server) handleArtifact(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		data, err := s.render(r.Context(), format)
		s.mu.Unlock()
		if err != nil {
			s.fail(w, err)
			return
		}
		s.write(w, format, data)
	}
}

func (s *Server) handleHoverSlice(w http.ResponseWriter, r *http.Request) {
	label := labelParam(r)
	observability.Interaction().OnHover(r.Context(), targetSlice, label)
	s.transition(w, r, func(st *interact.State) { st.SliceHover(label) })
}

func (s *Server) handleHoverCenter(w http.ResponseWriter, r *http.Request) {
	observability.Interaction().OnHover(r.Context(), targetCenter, "")
	s.transition(w, r, (*interact.State).CenterHover)
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	observability.Interaction().OnLeave(r.Context())
	s.transition(w, r, (*interact.State).PointerLeave)
}

func (s *Server) handleSelectSlice(w http.ResponseWriter, r *http.Request) {
	label := labelParam(r)
	s.selectTarget(w, r, targetSlice, label, func(st *interact.State) { st.SliceClick(label) })
}

func (s *Server) handleSelectCenter(w http.ResponseWriter, r *http.Request) {
	s.selectTarget(w, r, targetCenter, "", (*interact.State).CenterClick)
}

// transition applies fn to the chart state and responds with the SVG.
func (s *Server) transition(w http.ResponseWriter, r *http.Request, fn func(*interact.State)) {
	s.mu.Lock()
	fn(s.chart.State())
	data, err := s.render(r.Context(), pipeline.FormatSVG)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}
	s.write(w, pipeline.FormatSVG, data)
}

func (s *Server) selectTarget(w http.ResponseWriter, r *http.Request, target, label string, fn func(*interact.State)) {
	s.mu.Lock()
	s.target = ""
	fn(s.chart.State())
	dest := s.target
	s.mu.Unlock()

	if dest == "" {
		http.NotFound(w, r)
		return
	}
	observability.Interaction().OnSelect(r.Context(), target, label)
	http.Redirect(w, r, dest, http.StatusFound)
}

// labelParam returns the decoded {label} segment. chi matches on the raw
// path when the request escapes reserved characters such as "/".
func labelParam(r *http.Request) string {
	label := chi.URLParam(r, "label")
	if r.URL.RawPath == "" {
		return label
	}
	if decoded, err := url.PathUnescape(label); err == nil {
		return decoded
	}
	return label
}

// render must be called with s.mu held.
func (s *Server) render(ctx context.Context, format string) ([]byte, error) {
	artifacts, err := s.runner.Render(ctx, s.chart, pipeline.Options{
		Formats:     []string{format},
		Links:       true,
		Interaction: true,
		Logger:      s.logger,
	})
	if err != nil {
		return nil, err
	}
	return artifacts[format], nil
}

func (s *Server) write(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("write response", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := http.StatusText(status)
	if status != http.StatusInternalServerError {
		msg = derrors.UserMessage(err)
	}
	s.logger.Error("request failed", "status", status, "err", err)
	http.Error(w, msg, status)
}

// statusFor maps an error code to an HTTP status. Errors without a code
// are internal.
func statusFor(err error) int {
	if derrors.IsValidation(err) {
		return http.StatusBadRequest
	}
	switch derrors.GetCode(err) {
	case derrors.ErrCodeNotFound, derrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case derrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}
