package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/bryanwahyu/contentlens/internal/application/analysis"
	domai "github.com/bryanwahyu/contentlens/internal/domain/ai"
	domain "github.com/bryanwahyu/contentlens/internal/domain/analysis"
	"github.com/bryanwahyu/contentlens/internal/middleware"
)

// ContentFetcher turns a submitted URL into plain text.
type ContentFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

type Router struct {
	svc     *appanalysis.Service
	fetcher ContentFetcher
}

func NewRouter(svc *appanalysis.Service, fetcher ContentFetcher) http.Handler {
	r := &Router{svc: svc, fetcher: fetcher}
	mux := chi.NewRouter()

	mux.Post("/analyze", r.wrap(r.handleAnalyze))
	mux.Get("/analyses", r.wrap(r.handleList))
	mux.Get("/analyses/latest", r.wrap(r.handleLatest))
	mux.Get("/analyses/{id}", r.wrap(r.handleGet))
	mux.Delete("/analyses/{id}", r.wrap(r.handleDelete))
	mux.Get("/analyses/{id}/export", r.wrap(r.handleExport))
	mux.Get("/providers", r.wrap(r.handleProviders))
	mux.Get("/summary", r.wrap(r.handleSummary))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks validation failures so wrap maps them to 400.
type badRequestError struct{ msg string }

func (e *badRequestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &badRequestError{msg: fmt.Sprintf(format, args...)}
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var br *badRequestError
		switch {
		case errors.As(err, &br):
			writeError(w, http.StatusBadRequest, br.msg)
		case errors.Is(err, appanalysis.ErrEmptyContent):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domai.ErrContentTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, appanalysis.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, appanalysis.ErrExportUnavailable):
			writeError(w, http.StatusNotImplemented, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "error": msg})
}

func writeJSON(w http.ResponseWriter, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(payload)
}

// POST /analyze
// Body: {"url": "..."} or {"content": "...", "contentType": "text", "provider": "openai"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		URL         string `json:"url"`
		Content     string `json:"content"`
		ContentType string `json:"contentType"`
		Provider    string `json:"provider"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.IncrementAnalysesRejected()
		return badRequest("invalid JSON body: %v", err)
	}
	if (body.URL == "") == (body.Content == "") {
		middleware.IncrementAnalysesRejected()
		return badRequest("exactly one of url or content is required")
	}
	if err := middleware.ValidateContentType(body.ContentType); err != nil {
		middleware.IncrementAnalysesRejected()
		return badRequest("%v", err)
	}

	cmd := appanalysis.AnalyzeCommand{
		URL:         body.URL,
		ContentType: domain.ContentType(body.ContentType),
		Provider:    body.Provider,
	}
	if body.URL != "" {
		if err := middleware.ValidateURL(body.URL); err != nil {
			middleware.IncrementAnalysesRejected()
			return badRequest("%v", err)
		}
		text, err := r.fetcher.Fetch(req.Context(), body.URL)
		if err != nil {
			middleware.IncrementAnalysesRejected()
			return badRequest("unable to access the website: %v", err)
		}
		cmd.Content = text
		if cmd.ContentType == "" {
			cmd.ContentType = domain.ContentTypeWebsite
		}
	} else {
		cmd.Content = middleware.SanitizeString(body.Content)
	}

	a, err := r.svc.Analyze(req.Context(), cmd)
	if err != nil {
		middleware.IncrementAnalysesRejected()
		return err
	}

	middleware.IncrementAnalyses()
	if a.Model == "fallback" {
		middleware.IncrementAnalysesFallback()
	}
	return writeJSON(w, map[string]any{"success": true, "analysis": a})
}

// GET /analyses?page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.svc.Paginate(req.Context(), middleware.ValidatePage(page), middleware.ValidateLimit(size))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Analysis{}
	}
	return writeJSON(w, map[string]any{"analyses": list, "page": middleware.ValidatePage(page)})
}

// GET /analyses/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.svc.Latest(req.Context(), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Analysis{}
	}
	return writeJSON(w, map[string]any{"analyses": list})
}

// GET /analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	a, err := r.svc.Get(req.Context(), domain.AnalysisID(chi.URLParam(req, "id")))
	if err != nil {
		return err
	}
	return writeJSON(w, a)
}

// DELETE /analyses/{id}
func (r *Router) handleDelete(w http.ResponseWriter, req *http.Request) error {
	id := domain.AnalysisID(chi.URLParam(req, "id"))
	if err := r.svc.Delete(req.Context(), id); err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"success": true, "id": id})
}

// GET /analyses/{id}/export
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	id := domain.AnalysisID(chi.URLParam(req, "id"))
	url, err := r.svc.ExportJSON(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"success": true, "id": id, "url": url})
}

// GET /providers
func (r *Router) handleProviders(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, map[string]any{"providers": r.svc.ProviderStatus(req.Context())})
}

// GET /summary?days=30
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))

	summary, err := r.svc.Summary(req.Context(), middleware.ValidateDays(days))
	if err != nil {
		return err
	}
	return writeJSON(w, summary)
}
