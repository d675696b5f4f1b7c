// Package amount normalizes user-entered amounts into cents and renders cents
// back for display.
package amount

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxCents caps any single amount. It keeps every value exactly
// representable as a float64 on the wire and leaves room to sum many of them
// without overflowing int64.
const MaxCents int64 = 1_000_000_000_000_000

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(MaxCents)
)

// Sanitize drops every character that is not an ASCII digit or a decimal point
// and keeps only the first decimal point.
//
//	Sanitize("¥1,234.5") -> "1234.5"
//	Sanitize("1.2.3")    -> "1.23"
func Sanitize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	seenPoint := false

	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenPoint:
			seenPoint = true

			b.WriteRune(r)
		}
	}

	return b.String()
}

// ParseCents sanitizes s and converts it to cents. Anything that does not
// leave a number behind yields 0.
func ParseCents(s string) int64 {
	d, err := decimal.NewFromString(Sanitize(s))
	if err != nil {
		return 0
	}

	return toCents(d)
}

// FromFloat converts a wire amount in major units to cents. Negative, NaN and
// infinite values yield 0.
func FromFloat(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}

	return toCents(decimal.NewFromFloat(f))
}

// ToFloat converts cents to major units for the wire format.
func ToFloat(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

func toCents(d decimal.Decimal) int64 {
	c := d.Mul(hundred).Round(0)
	if c.IsNegative() {
		return 0
	}

	if c.GreaterThan(maxCents) {
		return MaxCents
	}

	return c.IntPart()
}

// Formatter renders cents with two decimals using locale-specific grouping.
type Formatter struct {
	p     *message.Printer
	point string
}

// NewFormatter returns a Formatter for the given BCP 47 tag. Unknown tags fall
// back to English.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	p := message.NewPrinter(tag)

	// The locale's decimal separator sits between the two digits.
	sample := []rune(p.Sprintf("%.1f", 1.5))

	return &Formatter{p: p, point: string(sample[1 : len(sample)-1])}
}

// Format groups the whole units with the locale's separator and appends the
// exact cents. No step goes through float64.
func (f *Formatter) Format(cents int64) string {
	d := decimal.New(cents, -2)
	whole := d.Truncate(0)
	frac := d.Sub(whole).Abs().Shift(2).IntPart()

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}

	return sign + f.p.Sprintf("%d", whole.Abs().IntPart()) + f.point + fmt.Sprintf("%02d", frac)
}
