package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cashflow/internal/app"
	"github.com/MrJamesThe3rd/cashflow/internal/transaction"
)

type Handler struct {
	state *app.State
}

func NewHandler(state *app.State) *Handler {
	return &Handler{state: state}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Put("/{id}", h.update)
}

type createTransactionRequest struct {
	Date        string      `json:"date"`
	Amount      amountInput `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	typ, err := parseType(req.Type)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !slices.Contains(h.state.Categories(), req.Category) {
		http.Error(w, "unknown category", http.StatusBadRequest)
		return
	}

	tx := h.state.AddTransaction(r.Context(), transaction.CreateParams{
		Date:        date,
		Amount:      int64(req.Amount),
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Type:        typ,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// list uses the category query parameter when present and the selected
// filter otherwise.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var txs []*transaction.Transaction

	if r.URL.Query().Has("category") {
		txs, _ = h.state.ViewFor(r.URL.Query().Get("category"))
	} else {
		txs = h.state.Transactions()
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.state.Transaction(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// delete answers 204 for unknown ids too, the operation is a no-op then.
func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	h.state.DeleteTransaction(r.Context(), chi.URLParam(r, "id"))

	w.WriteHeader(http.StatusNoContent)
}

type updateTransactionRequest struct {
	Date        *string      `json:"date,omitempty"`
	Amount      *amountInput `json:"amount,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Description *string      `json:"description,omitempty"`
	Type        *string      `json:"type,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.state.Transaction(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		tx.Date = date
	}

	if req.Amount != nil {
		tx.Amount = int64(*req.Amount)
	}

	if req.Category != nil && *req.Category != tx.Category {
		if !slices.Contains(h.state.Categories(), *req.Category) {
			http.Error(w, "unknown category", http.StatusBadRequest)
			return
		}

		tx.Category = *req.Category
	}

	if req.Description != nil {
		tx.Description = strings.TrimSpace(*req.Description)
	}

	if req.Type != nil {
		typ, err := parseType(*req.Type)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		tx.Type = typ
	}

	h.state.EditTransaction(r.Context(), tx)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
