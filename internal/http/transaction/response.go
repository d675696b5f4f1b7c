package transaction

import (
	"time"

	"github.com/MrJamesThe3rd/cashflow/internal/amount"
	"github.com/MrJamesThe3rd/cashflow/internal/transaction"
)

type transactionResponse struct {
	ID          string           `json:"id"`
	Date        string           `json:"date"`
	Amount      float64          `json:"amount"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Type        transaction.Type `json:"type"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Date:        tx.Date.Format(time.DateOnly),
		Amount:      amount.ToFloat(tx.Amount),
		Category:    tx.Category,
		Description: tx.Description,
		Type:        tx.Type,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
