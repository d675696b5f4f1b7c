// Package backup writes and reads a single JSON document holding both slots,
// so a ledger can be moved between stores or restored from a browser export.
package backup

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/cashflow/internal/app"
	"github.com/MrJamesThe3rd/cashflow/internal/encoding"
	"github.com/MrJamesThe3rd/cashflow/internal/persist"
)

type document struct {
	Transactions []persist.Record `json:"transactions"`
	Categories   []string         `json:"categories"`
}

func Export(w io.Writer, snap app.Snapshot) error {
	doc := document{
		Transactions: persist.ToRecords(snap.Transactions),
		Categories:   snap.Categories,
	}

	if doc.Categories == nil {
		doc.Categories = []string{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}

	return nil
}

// Import decodes a backup in any encoding NewUTF8Reader recognizes.
func Import(r io.Reader) (app.Snapshot, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return app.Snapshot{}, fmt.Errorf("detecting encoding: %w", err)
	}

	var doc document
	if err := json.NewDecoder(utf8r).Decode(&doc); err != nil {
		return app.Snapshot{}, fmt.Errorf("decoding backup: %w", err)
	}

	txs, err := persist.FromRecords(doc.Transactions)
	if err != nil {
		return app.Snapshot{}, fmt.Errorf("reading transactions: %w", err)
	}

	return app.Snapshot{Transactions: txs, Categories: doc.Categories}, nil
}
