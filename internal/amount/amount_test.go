package amount_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/cashflow/internal/amount"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Plain", input: "1234.56", want: "1234.56"},
		{name: "StripsSymbols", input: "¥1,234.5円", want: "1234.5"},
		{name: "CollapsesPoints", input: "1.2.3", want: "1.23"},
		{name: "Letters", input: "abc", want: ""},
		{name: "LeadingPoint", input: ".50", want: ".50"},
		{name: "FullWidthDigitsDropped", input: "１２3", want: "3"},
		{name: "Empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, amount.Sanitize(tt.input))
		})
	}
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{name: "Integer", input: "100", want: 10000},
		{name: "TwoDecimals", input: "12.34", want: 1234},
		{name: "RoundsUp", input: "12.345", want: 1235},
		{name: "RoundsDown", input: "12.344", want: 1234},
		{name: "LeadingPoint", input: ".5", want: 50},
		{name: "TrailingPoint", input: "7.", want: 700},
		{name: "MinusIgnored", input: "-30", want: 3000},
		{name: "Garbage", input: "abc", want: 0},
		{name: "OnlyPoint", input: ".", want: 0},
		{name: "Empty", input: "", want: 0},
		{name: "Capped", input: "99999999999999999999999", want: amount.MaxCents},
		{name: "AtCap", input: "10000000000000", want: amount.MaxCents},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, amount.ParseCents(tt.input))
		})
	}
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, int64(10050), amount.FromFloat(100.5))
	assert.Equal(t, int64(1), amount.FromFloat(0.01))
	assert.Equal(t, int64(0), amount.FromFloat(-3))
	assert.Equal(t, int64(0), amount.FromFloat(math.NaN()))
	assert.Equal(t, int64(0), amount.FromFloat(math.Inf(1)))
	assert.Equal(t, amount.MaxCents, amount.FromFloat(math.MaxFloat64))
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 100.5, amount.ToFloat(10050))
	assert.Equal(t, 0.0, amount.ToFloat(0))
	assert.Equal(t, int64(123456), amount.FromFloat(amount.ToFloat(123456)))
}

func TestFormatter_Format(t *testing.T) {
	f := amount.NewFormatter("en")

	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{name: "Zero", cents: 0, want: "0.00"},
		{name: "Whole", cents: 15000, want: "150.00"},
		{name: "Grouped", cents: 123450, want: "1,234.50"},
		{name: "Negative", cents: -3000, want: "-30.00"},
		{name: "NegativeBelowOne", cents: -30, want: "-0.30"},
		{name: "SingleCent", cents: 1, want: "0.01"},
		{name: "Cap", cents: amount.MaxCents, want: "10,000,000,000,000.00"},
		{name: "BeyondFloatPrecision", cents: math.MaxInt64, want: "92,233,720,368,547,758.07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.cents))
		})
	}
}

func TestFormatter_Locale(t *testing.T) {
	assert.Equal(t, "1.234,50", amount.NewFormatter("de").Format(123450))
	assert.Equal(t, "1,234.50", amount.NewFormatter("not a tag!").Format(123450))
}
