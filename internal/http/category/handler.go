package category

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cashflow/internal/app"
)

type Handler struct {
	state *app.State
}

func NewHandler(state *app.State) *Handler {
	return &Handler{state: state}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/{name}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.state.Categories()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

type createCategoryResponse struct {
	Name  string `json:"name"`
	Added bool   `json:"added"`
}

// create answers 201 when the label is new and 200 when it already existed.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	added := h.state.AddCategory(r.Context(), name)

	w.Header().Set("Content-Type", "application/json")

	if added {
		w.WriteHeader(http.StatusCreated)
	}

	if err := json.NewEncoder(w).Encode(createCategoryResponse{Name: name, Added: added}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	name, err := labelParam(r)
	if err != nil {
		http.Error(w, "invalid name", http.StatusBadRequest)
		return
	}

	h.state.DeleteCategory(r.Context(), name)

	w.WriteHeader(http.StatusNoContent)
}

// labelParam returns the decoded {name} segment. chi routes on RawPath when
// the request carries one (e.g. an escaped slash) and on the already decoded
// Path otherwise, so only the former needs unescaping.
func labelParam(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}

	return url.PathUnescape(name)
}
