package transaction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/cashflow/internal/amount"
	"github.com/MrJamesThe3rd/cashflow/internal/transaction"
)

// amountInput accepts either a JSON number or the raw text typed into a form.
// Text goes through amount.ParseCents so stray characters never reject the
// request.
type amountInput int64

func (a *amountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*a = amountInput(amount.ParseCents(s))

		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("amount must be a number or a string")
	}

	*a = amountInput(amount.FromFloat(f))

	return nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD")
	}

	return d, nil
}

// parseType accepts the API names and the stored labels. Empty means expense.
func parseType(s string) (transaction.Type, error) {
	switch s {
	case "", string(transaction.TypeExpense), "支出":
		return transaction.TypeExpense, nil
	case string(transaction.TypeIncome), "収入":
		return transaction.TypeIncome, nil
	}

	return "", fmt.Errorf("type must be income or expense")
}
