package report

import (
	"fmt"
	"strconv"

	"fiscal/internal/util"
)

// Metric is one headline card: a value plus the secondary figure shown
// under it.
type Metric struct {
	Label string
	Value string
	Delta string
}

func Metrics(s Summary, loc util.Locale) []Metric {
	return []Metric{
		{Label: "Total Gasto", Value: util.FormatCurrency(s.Total, loc), Delta: "+" + util.FormatCurrency(s.Max, loc)},
		{Label: "Registros", Value: strconv.Itoa(s.Count), Delta: fmt.Sprintf("+%d acima da média", s.AboveMean)},
		{Label: "Média", Value: util.FormatCurrency(s.Mean, loc), Delta: "Mediana: " + util.FormatCurrency(s.Median, loc)},
		{Label: "Maior Gasto", Value: util.FormatCurrency(s.Max, loc), Delta: "Min: " + util.FormatCurrency(s.Min, loc)},
	}
}
