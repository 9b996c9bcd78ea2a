package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Locale describes how amounts are displayed. It is passed explicitly
// instead of relying on process-wide locale state.
type Locale struct {
	Symbol    string
	Thousands string
	Decimal   string
}

var (
	LocaleBR = Locale{Symbol: "R$", Thousands: ".", Decimal: ","}
	LocaleUS = Locale{Symbol: "$", Thousands: ",", Decimal: "."}
)

const dateLayout = "2/1/2006"

// ParseBRL parses an amount written as "1.234,56". Every "." is dropped
// and "," becomes the decimal point, so a period used for anything other
// than digit grouping is silently lost ("1.5" parses as 15).
func ParseBRL(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", input, err)
	}
	return v, nil
}

// ParseDate reads DD/MM/YYYY. Anything else yields nil.
func ParseDate(input string) *time.Time {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

// FormatAmount renders v with two decimals and the locale separators.
func FormatAmount(v decimal.Decimal, loc Locale) string {
	fixed := v.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(loc.Thousands)
		}
		b.WriteRune(r)
	}
	b.WriteString(loc.Decimal)
	b.WriteString(frac)
	return b.String()
}

func FormatCurrency(v decimal.Decimal, loc Locale) string {
	return loc.Symbol + " " + FormatAmount(v, loc)
}
