package backup_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"

	"github.com/MrJamesThe3rd/cashflow/internal/app"
	"github.com/MrJamesThe3rd/cashflow/internal/backup"
	"github.com/MrJamesThe3rd/cashflow/internal/transaction"
)

func TestExportImport(t *testing.T) {
	snap := app.Snapshot{
		Transactions: []*transaction.Transaction{
			{
				ID:          "a1",
				Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				Amount:      98765,
				Category:    "Salary",
				Description: "Bonus",
				Type:        transaction.TypeIncome,
			},
		},
		Categories: []string{"Salary", "Food"},
	}

	var buf bytes.Buffer
	require.NoError(t, backup.Export(&buf, snap))
	assert.Contains(t, buf.String(), `"type": "収入"`)
	assert.Contains(t, buf.String(), `"amount": 987.65`)

	got, err := backup.Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestExport_EmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, backup.Export(&buf, app.Snapshot{}))

	assert.JSONEq(t, `{"transactions":[],"categories":[]}`, buf.String())
}

func TestImport_ShiftJIS(t *testing.T) {
	doc := `{"transactions":[` +
		`{"id":"1","date":"2024-07-01","amount":1280,"category":"食費","description":"スーパーで野菜と果物を買いました","type":"支出"},` +
		`{"id":"2","date":"2024-07-02","amount":540,"category":"交通費","description":"電車で会社まで行きました","type":"支出"},` +
		`{"id":"3","date":"2024-07-25","amount":280000,"category":"給与","description":"今月のお給料です","type":"収入"}` +
		`],"categories":["食費","交通費","娯楽費","給与"]}`

	sjis, err := japanese.ShiftJIS.NewEncoder().String(doc)
	require.NoError(t, err)

	got, err := backup.Import(strings.NewReader(sjis))
	require.NoError(t, err)

	require.Len(t, got.Transactions, 3)
	assert.Equal(t, "食費", got.Transactions[0].Category)
	assert.Equal(t, int64(128000), got.Transactions[0].Amount)
	assert.Equal(t, transaction.TypeIncome, got.Transactions[2].Type)
	assert.Equal(t, []string{"食費", "交通費", "娯楽費", "給与"}, got.Categories)
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "NotJSON", input: "hello"},
		{name: "UnknownType", input: `{"transactions":[{"id":"1","date":"2024-01-01","amount":1,"type":"振替"}]}`},
		{name: "BadDate", input: `{"transactions":[{"id":"1","date":"yesterday","amount":1,"type":"収入"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := backup.Import(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}
