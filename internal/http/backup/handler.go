package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cashflow/internal/app"
	"github.com/MrJamesThe3rd/cashflow/internal/backup"
)

const maxUploadSize = 10 << 20

type Handler struct {
	state *app.State
}

func NewHandler(state *app.State) *Handler {
	return &Handler{state: state}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
	r.Post("/", h.restore)
}

func (h *Handler) download(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := backup.Export(&buf, h.state.Snapshot()); err != nil {
		slog.Error("failed to export backup", "error", err)
		http.Error(w, "failed to export backup", http.StatusInternalServerError)

		return
	}

	filename := fmt.Sprintf("cashflow-%s.json", time.Now().Format(time.DateOnly))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write backup", "error", err)
	}
}

type restoreResponse struct {
	Transactions int `json:"transactions"`
	Categories   int `json:"categories"`
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	snap, err := backup.Import(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := h.state.Restore(r.Context(), snap)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(restoreResponse{
		Transactions: res.Transactions,
		Categories:   res.Categories,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
