package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/leadscan"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// UserIDHeader carries the opaque identifier of the calling user.
// Saving and listing history require it.
const UserIDHeader = "X-User-ID"

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 5 * time.Second

// Server exposes a Scanner and a ResultService over HTTP.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Bind address for the server's listener.
	Addr string

	// Services used by the HTTP handlers.
	Scanner leadscan.Scanner
	Results leadscan.ResultService

	// Limiter throttles individual clients before they reach the
	// shared scanner. Optional.
	Limiter leadscan.ClientLimiter

	Logger *slog.Logger
}

// NewServer returns a new Server with routes registered.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router: chi.NewRouter(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.Error(w, r, leadscan.Errorf(leadscan.ENOTFOUND, "not found"))
	})

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/scan", s.handleScan)
	s.router.Get("/results", s.handleResultIndex)
	s.router.Delete("/results/{id}", s.handleResultDelete)

	s.server.Handler = s.router
	return s
}

// Open binds the listener on Addr.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	return nil
}

// Serve handles requests on the opened listener until Shutdown is called.
// It returns nil after a graceful shutdown.
func (s *Server) Serve() error {
	if err := s.server.Serve(s.ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// ServeHTTP routes the request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(begin),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScan handles "GET /scan?url=...". With "save=true" and a user ID
// the result is also stored in the user's history.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		s.Error(w, r, leadscan.Errorf(leadscan.EINVALID, "url parameter required"))
		return
	}

	userID := r.Header.Get(UserIDHeader)
	save, _ := strconv.ParseBool(r.URL.Query().Get("save"))
	if save && userID == "" {
		s.Error(w, r, leadscan.Errorf(leadscan.EINVALID, "%s header required to save results", UserIDHeader))
		return
	}

	// Keyed by client address. The user header is caller supplied.
	if s.Limiter != nil && !s.Limiter.Allow(clientIP(r)) {
		s.Error(w, r, leadscan.NewRateLimitError(time.Second))
		return
	}

	result, err := s.Scanner.Scan(r.Context(), rawURL)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	if save {
		result.UserID = userID
		if err := s.Results.CreateResult(r.Context(), result); err != nil {
			s.Error(w, r, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// handleResultIndex handles "GET /results", the caller's history.
func (s *Server) handleResultIndex(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		s.Error(w, r, leadscan.Errorf(leadscan.EINVALID, "%s header required", UserIDHeader))
		return
	}

	limit := leadscan.HistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.Error(w, r, leadscan.Errorf(leadscan.EINVALID, "invalid limit %q", v))
			return
		}
		limit = n
	}

	results, err := s.Results.FindResults(r.Context(), leadscan.ResultFilter{UserID: &userID, Limit: limit})
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// handleResultDelete handles "DELETE /results/{id}". Results owned by
// other users are reported as not found.
func (s *Server) handleResultDelete(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		s.Error(w, r, leadscan.Errorf(leadscan.EINVALID, "%s header required", UserIDHeader))
		return
	}

	id := chi.URLParam(r, "id")
	result, err := s.Results.FindResultByID(r.Context(), id)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if result.UserID != userID {
		s.Error(w, r, leadscan.Errorf(leadscan.ENOTFOUND, "result not found"))
		return
	}

	if err := s.Results.DeleteResult(r.Context(), id); err != nil {
		s.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// errorStatusCodes maps application error codes to HTTP status codes.
var errorStatusCodes = map[string]int{
	leadscan.EINVALID:   http.StatusBadRequest,
	leadscan.ENOTFOUND:  http.StatusNotFound,
	leadscan.ERATELIMIT: http.StatusTooManyRequests,
	leadscan.EFETCH:     http.StatusBadGateway,
	leadscan.EINTERNAL:  http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := errorStatusCodes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the JSON body of an error response.
type ErrorResponse struct {
	Error      string `json:"error"`
	Code       string `json:"code"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

// Error writes err as a JSON error response. Internal errors are logged
// and reported without detail.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := leadscan.ErrorCode(err), leadscan.ErrorMessage(err)

	if code == leadscan.EINTERNAL {
		s.Logger.Error("http error", "method", r.Method, "path", r.URL.Path, "err", err)
	}

	resp := ErrorResponse{Error: message, Code: code}
	if rl := rateLimitError(err); rl != nil {
		resp.RetryAfter = rl.RetryAfterSeconds()
		w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
	}

	writeJSON(w, ErrorStatusCode(code), resp)
}

func rateLimitError(err error) *leadscan.RateLimitError {
	var rl *leadscan.RateLimitError
	if errors.As(err, &rl) {
		return rl
	}
	return nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
