// Package server exposes a package store over HTTP.
//
// Routes:
//
//	GET  /v1/packages                  stored package records
//	GET  /v1/packages/:hash            JSON document of one package
//	GET  /v1/packages/:hash/exports    export rows of one package
//	GET  /v1/classes/:class/exports    export rows of one class across packages
//	POST /v1/decode?name=File.uasset   decode the request body, index it when a store is attached
//
// Failures are answered with a JSON body {"error", "phase", "kind"} and a
// status derived from the error kind.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"

	"github.com/wippyai/uasset/asset"
	"github.com/wippyai/uasset/errors"
	"github.com/wippyai/uasset/render"
	"github.com/wippyai/uasset/store"
)

// DefaultMaxUploadBytes bounds a decode request body when Config leaves it 0.
const DefaultMaxUploadBytes = 64 << 20

const contentType = "content-type"

// Config configures a Server.
type Config struct {
	Addr           string // listen address, e.g. ":7089"
	MaxUploadBytes int64  // 0 uses DefaultMaxUploadBytes
	// Decode is applied to uploaded packages.
	Decode asset.DecodeOptions
}

// Server serves decoded packages. A nil store limits it to /v1/decode.
type Server struct {
	cfg    Config
	store  *store.Store
	router *httprouter.Router
	log    *zap.Logger
}

// New creates a Server over st.
func New(cfg Config, st *store.Store) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	s := &Server{cfg: cfg, store: st, router: httprouter.New(), log: Logger()}

	s.router.GET("/v1/packages", s.withStore(s.listPackages))
	s.router.GET("/v1/packages/:hash", s.withStore(s.getPackage))
	s.router.GET("/v1/packages/:hash/exports", s.withStore(s.packageExports))
	s.router.GET("/v1/classes/:class/exports", s.withStore(s.classExports))
	s.router.POST("/v1/decode", s.decode)
	return s
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// ServeHTTP routes the request and logs its outcome.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	s.router.ServeHTTP(sw, req)
	s.log.Debug("request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", sw.status),
		zap.Duration("took", time.Since(start)))
}

// ListenAndServe serves on cfg.Addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", zap.String("addr", s.cfg.Addr))

	select {
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.IO(errors.PhaseServe, err, "listen "+s.cfg.Addr)
	}
}

func (s *Server) withStore(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if s.store == nil {
			s.fail(w, errors.NotFound(errors.PhaseServe, "store", "index"))
			return
		}
		h(w, r, ps)
	}
}

func (s *Server) listPackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.reply(w, http.StatusOK, recs)
}

func (s *Server) getPackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	rec, err := s.store.Get(r.Context(), ps.ByName("hash"))
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set(contentType, "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(rec.Document)
}

func (s *Server) packageExports(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	exports, err := s.store.Exports(r.Context(), ps.ByName("hash"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.reply(w, http.StatusOK, exports)
}

func (s *Server) classExports(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	exports, err := s.store.FindExportsByClass(r.Context(), ps.ByName("class"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.reply(w, http.StatusOK, exports)
}

// decodeResponse answers /v1/decode. Record is set only when indexed.
type decodeResponse struct {
	Record   *store.Record    `json:"record,omitempty"`
	Document *render.Document `json:"document"`
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.failWith(w, http.StatusRequestEntityTooLarge, errors.InvalidInput(errors.PhaseServe, "package exceeds upload limit"))
			return
		}
		s.fail(w, errors.IO(errors.PhaseServe, err, "read body"))
		return
	}
	if len(data) == 0 {
		s.fail(w, errors.InvalidInput(errors.PhaseServe, "empty body"))
		return
	}

	pkg, err := asset.DecodeWithOptions(data, s.cfg.Decode)
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := decodeResponse{Document: render.NewDocument(pkg)}
	status := http.StatusOK
	if s.store != nil {
		name := r.URL.Query().Get("name")
		if name == "" {
			name = store.HashContent(data)
		}
		if resp.Record, err = s.store.Put(r.Context(), name, data, pkg); err != nil {
			s.fail(w, err)
			return
		}
		status = http.StatusCreated
	}
	s.reply(w, status, resp)
}

func (s *Server) reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set(contentType, "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("write response", zap.Error(err))
	}
}

type errorBody struct {
	Error string `json:"error"`
	Phase string `json:"phase,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.failWith(w, StatusOf(err), err)
}

func (s *Server) failWith(w http.ResponseWriter, status int, err error) {
	body := errorBody{Error: err.Error()}
	var e *errors.Error
	if errors.As(err, &e) {
		body.Phase = string(e.Phase)
		body.Kind = string(e.Kind)
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	s.reply(w, status, body)
}

// StatusOf maps an error to an HTTP status by its kind.
func StatusOf(err error) int {
	switch errors.KindOf(err) {
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindInvalidInput:
		return http.StatusBadRequest
	case errors.KindOutOfBounds, errors.KindFormatUnsupported, errors.KindUnsupportedMetadata,
		errors.KindUnknownProperty, errors.KindInvalidData:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
