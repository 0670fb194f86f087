package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/felipemarinho97/webshare-stremio/logging"
	"github.com/felipemarinho97/webshare-stremio/monitoring"
	"github.com/felipemarinho97/webshare-stremio/schema"
	"github.com/gorilla/mux"
)

// Playback links stay valid upstream for a few hours.
const linkMaxAge = 5 * time.Hour

type StreamResolver interface {
	ResolveStreams(ctx context.Context, info schema.ShowInfo, token string) []schema.Candidate
}

type FileLinker interface {
	FileLink(ctx context.Context, ident, token string) (string, error)
}

type Handler struct {
	resolver StreamResolver
	linker   FileLinker
	metrics  *monitoring.Metrics
}

// NewHandler builds the HTTP handlers. metrics may be nil.
func NewHandler(resolver StreamResolver, linker FileLinker, metrics *monitoring.Metrics) *Handler {
	return &Handler{resolver: resolver, linker: linker, metrics: metrics}
}

type ResolveRequest struct {
	ShowInfo schema.ShowInfo `json:"showInfo"`
	Token    string          `json:"token"`
}

type ResolveResponse struct {
	Streams []schema.Stream `json:"streams"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); err != nil {
		logging.Error().Err(err).Msg("Failed to encode error response")
	}
}

func (h *Handler) HandlerResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, errors.New("token is required"))
		return
	}
	if !req.ShowInfo.IsMovie() && !req.ShowInfo.IsSeries() {
		writeError(w, http.StatusBadRequest, errors.New("type must be movie or series"))
		return
	}

	logging.DebugWithRequest(r).Str("name", req.ShowInfo.Name).Str("type", string(req.ShowInfo.Type)).Msg("Resolving streams")
	candidates := h.resolver.ResolveStreams(r.Context(), req.ShowInfo, req.Token)

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(ResolveResponse{Streams: schema.StreamsFromCandidates(candidates)})
	if err != nil {
		logging.ErrorWithRequest(r).Err(err).Msg("Failed to encode response")
	}
}

// HandlerGetURL resolves a file ident into its stream link and redirects
// the player there.
func (h *Handler) HandlerGetURL(w http.ResponseWriter, r *http.Request) {
	ident := mux.Vars(r)["ident"]
	token := r.URL.Query().Get("token")
	if ident == "" || token == "" {
		writeError(w, http.StatusBadRequest, errors.New("ident and token are required"))
		return
	}

	link, err := h.linker.FileLink(r.Context(), ident, token)
	if err != nil {
		if h.metrics != nil {
			h.metrics.FileLinkErrors.Inc()
		}
		logging.ErrorWithRequest(r).Err(err).Str("ident", ident).Msg("Failed to resolve file link")
		writeError(w, http.StatusBadGateway, errors.New("cannot resolve stream link"))
		return
	}

	now := time.Now().UTC()
	w.Header().Set("Expires", now.Add(linkMaxAge).Format(http.TimeFormat))
	w.Header().Set("Last-Modified", now.Format(http.TimeFormat))
	w.Header().Set("Cache-Control", "max-age=18000, must-revalidate, proxy-revalidate")
	http.Redirect(w, r, link, http.StatusFound)
}

// NewRouter wires the handlers and the logging middlewares.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(logging.RequestIDMiddleware, logging.HTTPLoggingMiddleware)

	r.HandleFunc("/", HandlerIndex).Methods(http.MethodGet)
	r.HandleFunc("/resolve", h.HandlerResolve).Methods(http.MethodPost)
	r.HandleFunc("/getUrl/{ident}", h.HandlerGetURL).Methods(http.MethodGet)
	return r
}
