package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hazyhaar/skillmatch/pkg/document"
	"github.com/hazyhaar/skillmatch/pkg/kit"
	"github.com/hazyhaar/skillmatch/pkg/skills"
	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
)

const (
	maxJSONBody           = 256 * 1024
	DefaultMaxUploadBytes = 10 << 20
)

// Options configures the router.
type Options struct {
	// MaxUploadBytes caps multipart uploads. Zero means DefaultMaxUploadBytes.
	MaxUploadBytes int64
	Logger         *slog.Logger
	// MCP is mounted at /mcp when set.
	MCP http.Handler
}

// NewRouter returns an http.Handler with all skillmatch API routes.
func NewRouter(eng *skills.Engine, reg *taxonomy.Registry, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	mux := http.NewServeMux()
	h := &handler{
		eps:       NewEndpoints(eng, reg, opts.Logger),
		reg:       reg,
		maxUpload: opts.MaxUploadBytes,
	}

	mux.HandleFunc("POST /v1/match", h.handleMatch)
	mux.HandleFunc("POST /v1/match/upload", h.handleMatchUpload)
	mux.HandleFunc("GET /v1/categorize", h.handleCategorizeQuery)
	mux.HandleFunc("POST /v1/categorize", h.handleCategorize)
	mux.HandleFunc("POST /v1/extract", h.handleExtract)
	mux.HandleFunc("GET /v1/taxonomy", h.handleTaxonomy)
	mux.HandleFunc("POST /v1/taxonomy/reload", h.handleReload)
	mux.HandleFunc("GET /v1/health", h.handleHealth)
	if opts.MCP != nil {
		mux.Handle("/mcp", opts.MCP)
	}

	return cors(requestID(mux))
}

type handler struct {
	eps       *Endpoints
	reg       *taxonomy.Registry
	maxUpload int64
}

// --- match ---

func (h *handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchReq
	if !decodeJSON(w, r, &req) {
		return
	}
	h.serve(w, r, h.eps.Match, &req)
}

func (h *handler) handleMatchUpload(w http.ResponseWriter, r *http.Request) {
	resume, ok := h.readUpload(w, r, "resume")
	if !ok {
		return
	}
	h.serve(w, r, h.eps.MatchUpload, &matchUploadReq{Resume: *resume, JobText: r.FormValue("job_text")})
}

// --- categorize ---

func (h *handler) handleCategorizeQuery(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.eps.Categorize, &textReq{Text: r.URL.Query().Get("text")})
}

func (h *handler) handleCategorize(w http.ResponseWriter, r *http.Request) {
	var req textReq
	if !decodeJSON(w, r, &req) {
		return
	}
	h.serve(w, r, h.eps.Categorize, &req)
}

// --- extract ---

func (h *handler) handleExtract(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.readUpload(w, r, "document")
	if !ok {
		return
	}
	h.serve(w, r, h.eps.Extract, doc)
}

// --- taxonomy ---

func (h *handler) handleTaxonomy(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.eps.Taxonomy, nil)
}

func (h *handler) handleReload(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.eps.Reload, nil)
}

// --- health ---

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if h.reg.Taxonomy() == nil {
		status = "loading"
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     status,
		Categories: h.reg.CategoryCount(),
		Skills:     h.reg.SkillCount(),
	})
}

// --- helpers ---

func (h *handler) serve(w http.ResponseWriter, r *http.Request, ep kit.Endpoint, req any) {
	resp, err := ep(r.Context(), req)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// readUpload reads one multipart file field into memory.
func (h *handler) readUpload(w http.ResponseWriter, r *http.Request, field string) (*extractReq, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeError(w, uploadStatus(err), fmt.Sprintf("invalid multipart body: %v", err))
		return nil, false
	}
	f, hdr, err := r.FormFile(field)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("missing file field %q", field))
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeError(w, uploadStatus(err), fmt.Sprintf("read %s: %v", field, err))
		return nil, false
	}
	return &extractReq{Name: hdr.Filename, MIME: hdr.Header.Get("Content-Type"), Data: data}, true
}

func uploadStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func statusFor(err error) int {
	var xerr *document.ExtractError
	switch {
	case errors.As(err, &xerr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		code := uploadStatus(err)
		msg := "invalid JSON body"
		if code == http.StatusRequestEntityTooLarge {
			msg = "request body too large"
		}
		writeError(w, code, msg)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// requestID propagates X-Request-ID, generating one when the client sent none.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := kit.WithTransport(kit.WithRequestID(r.Context(), id), "http")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
