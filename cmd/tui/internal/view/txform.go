package view

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cashflow/internal/amount"
	"github.com/MrJamesThe3rd/cashflow/internal/transaction"
)

// txFields holds the form bindings. It lives behind a pointer because huh
// writes through the addresses it was given while the model is copied around.
type txFields struct {
	date        string
	amount      string
	category    string
	description string
	typ         transaction.Type
}

// newTxFields prefills the form from tx, or with today's date and an expense
// when tx is nil.
func newTxFields(tx *transaction.Transaction, now time.Time) *txFields {
	if tx == nil {
		return &txFields{
			date: now.Format(time.DateOnly),
			typ:  transaction.TypeExpense,
		}
	}

	return &txFields{
		date:        FormatDate(tx.Date),
		amount:      plainAmount(tx.Amount),
		category:    tx.Category,
		description: tx.Description,
		typ:         tx.Type,
	}
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// plainAmount renders cents without grouping so the text round-trips through
// amount.ParseCents.
func plainAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

func (f *txFields) params() (transaction.CreateParams, error) {
	date, err := time.Parse(time.DateOnly, strings.TrimSpace(f.date))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("invalid date %q", f.date)
	}

	return transaction.CreateParams{
		Date:        date,
		Amount:      amount.ParseCents(f.amount),
		Category:    f.category,
		Description: strings.TrimSpace(f.description),
		Type:        f.typ,
	}, nil
}

// apply copies the edited values onto tx, keeping its ID.
func (f *txFields) apply(tx *transaction.Transaction) error {
	p, err := f.params()
	if err != nil {
		return err
	}

	tx.Date = p.Date
	tx.Amount = p.Amount
	tx.Category = p.Category
	tx.Description = p.Description
	tx.Type = p.Type

	return nil
}

// categoryOptions lists the known labels, keeping current first if it is no
// longer registered, and moves suggested to the top as the preselected entry.
func categoryOptions(categories []string, current, suggested string) []huh.Option[string] {
	labels := slices.Clone(categories)
	if current != "" && !slices.Contains(labels, current) {
		labels = append([]string{current}, labels...)
	}

	if i := slices.Index(labels, suggested); i > 0 {
		labels = slices.Insert(slices.Delete(labels, i, i+1), 0, suggested)
	}

	opts := make([]huh.Option[string], len(labels))
	for i, l := range labels {
		opts[i] = huh.NewOption(l, l).Selected(l == suggested)
	}

	return opts
}

// newTxForm builds the add/edit form. suggest maps a description to a
// category and may return "".
func newTxForm(f *txFields, categories []string, suggest func(string) string) *huh.Form {
	current := f.category

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&f.description),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				OptionsFunc(func() []huh.Option[string] {
					suggested := current
					if current == "" {
						suggested = suggest(f.description)
					}

					return categoryOptions(categories, current, suggested)
				}, &f.description).
				Value(&f.category).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("add a category first")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&f.amount),

			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
				).
				Value(&f.typ),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.date).
				Validate(validateDate),
		),
	).WithWidth(45).WithShowHelp(false)
}
