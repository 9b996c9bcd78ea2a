// Package report computes the aggregates shown for a liquidations table and
// renders them as text.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fiscal/internal"
)

const monthLayout = "2006-01"

type Summary struct {
	Count     int
	Total     decimal.Decimal
	Mean      decimal.Decimal
	Median    decimal.Decimal
	Max       decimal.Decimal
	Min       decimal.Decimal
	AboveMean int
	FirstDate *time.Time
	LastDate  *time.Time
}

// Summarize reduces the table to its headline numbers. An empty table
// yields a zero Summary.
func Summarize(rows []internal.Liquidation) Summary {
	var s Summary
	if len(rows) == 0 {
		return s
	}

	values := make([]decimal.Decimal, 0, len(rows))
	s.Max = rows[0].Valor
	s.Min = rows[0].Valor
	for _, r := range rows {
		values = append(values, r.Valor)
		s.Total = s.Total.Add(r.Valor)
		if r.Valor.GreaterThan(s.Max) {
			s.Max = r.Valor
		}
		if r.Valor.LessThan(s.Min) {
			s.Min = r.Valor
		}
		if r.Data != nil {
			if s.FirstDate == nil || r.Data.Before(*s.FirstDate) {
				s.FirstDate = r.Data
			}
			if s.LastDate == nil || r.Data.After(*s.LastDate) {
				s.LastDate = r.Data
			}
		}
	}
	s.Count = len(rows)
	s.Mean = s.Total.Div(decimal.NewFromInt(int64(s.Count)))
	s.Median = median(values)
	for _, v := range values {
		if v.GreaterThan(s.Mean) {
			s.AboveMean++
		}
	}
	return s
}

func median(values []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

type GroupTotal struct {
	Key   string
	Total decimal.Decimal
	Count int

	// FirstLine is the smallest source LineNo among the group's rows.
	FirstLine int
}

// GroupBy sums Valor per key. Groups come out in order of first appearance
// in rows; rows for which key reports false are skipped.
func GroupBy(rows []internal.Liquidation, key func(internal.Liquidation) (string, bool)) []GroupTotal {
	pos := map[string]int{}
	var out []GroupTotal
	for _, r := range rows {
		k, ok := key(r)
		if !ok {
			continue
		}
		i, seen := pos[k]
		if !seen {
			i = len(out)
			pos[k] = i
			out = append(out, GroupTotal{Key: k, FirstLine: r.LineNo})
		}
		if r.LineNo < out[i].FirstLine {
			out[i].FirstLine = r.LineNo
		}
		out[i].Total = out[i].Total.Add(r.Valor)
		out[i].Count++
	}
	return out
}

func BySupplier(rows []internal.Liquidation) []GroupTotal {
	return GroupBy(rows, func(r internal.Liquidation) (string, bool) { return r.FornecedorLimpo, true })
}

// ByBiddingType skips rows with a blank tipo_licitacao.
func ByBiddingType(rows []internal.Liquidation) []GroupTotal {
	return GroupBy(rows, func(r internal.Liquidation) (string, bool) {
		return r.TipoLicitacao, strings.TrimSpace(r.TipoLicitacao) != ""
	})
}

// ByMonth groups by calendar month (YYYY-MM). Rows without a date are left
// out of the series but still count in Summarize.
func ByMonth(rows []internal.Liquidation) []GroupTotal {
	return GroupBy(rows, func(r internal.Liquidation) (string, bool) {
		if r.Data == nil {
			return "", false
		}
		return r.Data.Format(monthLayout), true
	})
}

// Chronological returns month groups sorted by key ascending.
func Chronological(months []GroupTotal) []GroupTotal {
	out := make([]GroupTotal, len(months))
	copy(out, months)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// TopN returns the n largest groups by total. Equal totals are ordered by
// FirstLine, so the group seen earliest in the source file ranks first.
// n <= 0 returns every group.
func TopN(groups []GroupTotal, n int) []GroupTotal {
	out := make([]GroupTotal, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].FirstLine < out[j].FirstLine
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Share returns each group's percentage of the combined total of groups.
func Share(groups []GroupTotal) []float64 {
	sum := decimal.Zero
	for _, g := range groups {
		sum = sum.Add(g.Total)
	}
	out := make([]float64, len(groups))
	if sum.IsZero() {
		return out
	}
	hundred := decimal.NewFromInt(100)
	for i, g := range groups {
		out[i] = g.Total.Mul(hundred).Div(sum).InexactFloat64()
	}
	return out
}
