package summary

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cashflow/internal/amount"
	"github.com/MrJamesThe3rd/cashflow/internal/app"
	"github.com/MrJamesThe3rd/cashflow/internal/summary"
)

type Handler struct {
	state     *app.State
	formatter *amount.Formatter
}

func NewHandler(state *app.State, formatter *amount.Formatter) *Handler {
	return &Handler{state: state, formatter: formatter}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

func (h *Handler) FilterRoutes(r chi.Router) {
	r.Get("/", h.getFilter)
	r.Put("/", h.setFilter)
}

type formattedTotals struct {
	TotalIncome  string `json:"total_income"`
	TotalExpense string `json:"total_expense"`
	Balance      string `json:"balance"`
}

type summaryResponse struct {
	Category     string          `json:"category"`
	Count        int             `json:"count"`
	TotalIncome  float64         `json:"total_income"`
	TotalExpense float64         `json:"total_expense"`
	Balance      float64         `json:"balance"`
	Formatted    formattedTotals `json:"formatted"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	category := h.state.SelectedCategory()
	if r.URL.Query().Has("category") {
		category = r.URL.Query().Get("category")
	}

	txs, sum := h.state.ViewFor(category)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.toResponse(category, len(txs), sum)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) toResponse(category string, count int, sum summary.Summary) summaryResponse {
	income, expense, balance := sum.Formatted(h.formatter)

	return summaryResponse{
		Category:     category,
		Count:        count,
		TotalIncome:  amount.ToFloat(sum.TotalIncome),
		TotalExpense: amount.ToFloat(sum.TotalExpense),
		Balance:      amount.ToFloat(sum.Balance),
		Formatted: formattedTotals{
			TotalIncome:  income,
			TotalExpense: expense,
			Balance:      balance,
		},
	}
}

type filterBody struct {
	Category string `json:"category"`
}

func (h *Handler) getFilter(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(filterBody{Category: h.state.SelectedCategory()}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// setFilter accepts any label, including ones not in the registry, so
// orphaned categories stay selectable.
func (h *Handler) setFilter(w http.ResponseWriter, r *http.Request) {
	var req filterBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.state.SelectCategoryFilter(req.Category)

	w.WriteHeader(http.StatusNoContent)
}
