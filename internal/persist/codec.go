package persist

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/cashflow/internal/amount"
	"github.com/MrJamesThe3rd/cashflow/internal/transaction"
)

// Wire labels for the transaction type.
const (
	wireIncome  = "収入"
	wireExpense = "支出"
)

// Record is the stored form of a transaction.
type Record struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
}

func ToRecord(tx *transaction.Transaction) Record {
	typ := wireExpense
	if tx.Type == transaction.TypeIncome {
		typ = wireIncome
	}

	return Record{
		ID:          tx.ID,
		Date:        tx.Date.Format(time.DateOnly),
		Amount:      amount.ToFloat(tx.Amount),
		Category:    tx.Category,
		Description: tx.Description,
		Type:        typ,
	}
}

func ToRecords(txs []*transaction.Transaction) []Record {
	out := make([]Record, len(txs))
	for i, tx := range txs {
		out[i] = ToRecord(tx)
	}

	return out
}

// FromRecord validates r and converts it back. The internal type names are
// accepted next to the wire labels.
func FromRecord(r Record) (*transaction.Transaction, error) {
	var typ transaction.Type

	switch r.Type {
	case wireIncome, string(transaction.TypeIncome):
		typ = transaction.TypeIncome
	case wireExpense, string(transaction.TypeExpense):
		typ = transaction.TypeExpense
	default:
		return nil, fmt.Errorf("transaction %s: unknown type %q", r.ID, r.Type)
	}

	date, err := time.Parse(time.DateOnly, r.Date)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: parsing date: %w", r.ID, err)
	}

	return &transaction.Transaction{
		ID:          r.ID,
		Date:        date,
		Amount:      amount.FromFloat(r.Amount),
		Category:    r.Category,
		Description: r.Description,
		Type:        typ,
	}, nil
}

func FromRecords(records []Record) ([]*transaction.Transaction, error) {
	out := make([]*transaction.Transaction, 0, len(records))

	for _, r := range records {
		tx, err := FromRecord(r)
		if err != nil {
			return nil, err
		}

		out = append(out, tx)
	}

	return out, nil
}

func encodeTransactions(txs []*transaction.Transaction) ([]byte, error) {
	return json.Marshal(ToRecords(txs))
}

func decodeTransactions(data []byte) ([]*transaction.Transaction, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding transactions: %w", err)
	}

	return FromRecords(records)
}

func encodeCategories(labels []string) ([]byte, error) {
	if labels == nil {
		labels = []string{}
	}

	return json.Marshal(labels)
}

func decodeCategories(data []byte) ([]string, error) {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("decoding categories: %w", err)
	}

	return labels, nil
}
