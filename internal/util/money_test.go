package util

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseBRL(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "thousands and cents", input: "1.234,56", want: "1234.56"},
		{name: "cents only", input: "10,00", want: "10"},
		{name: "millions", input: "1.000.000,00", want: "1000000"},
		{name: "no separators", input: "42", want: "42"},
		{name: "padded", input: "  7,5 ", want: "7.5"},
		{name: "stray period is grouping", input: "1.5", want: "15"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseBRL(tc.input)
			if err != nil {
				t.Fatal(err)
			}
			want := decimal.RequireFromString(tc.want)
			if !got.Equal(want) {
				t.Fatalf("got %s want %s", got, want)
			}
		})
	}
}

func TestParseBRLInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "1,2,3", "R$ 10,00"} {
		if _, err := ParseBRL(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseDate(t *testing.T) {
	got := ParseDate("15/03/2024")
	if got == nil {
		t.Fatal("date is nil")
	}
	want := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for _, in := range []string{"not-a-date", "", "2024-03-15", "31/02/2024"} {
		if d := ParseDate(in); d != nil {
			t.Fatalf("expected nil for %q, got %v", in, d)
		}
	}
	if FormatDate(got) != "15/03/2024" || FormatDate(nil) != "" {
		t.Fatalf("format mismatch")
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		value string
		loc   Locale
		want  string
	}{
		{value: "1234.56", loc: LocaleBR, want: "R$ 1.234,56"},
		{value: "1000000", loc: LocaleBR, want: "R$ 1.000.000,00"},
		{value: "0.5", loc: LocaleBR, want: "R$ 0,50"},
		{value: "-999.999", loc: LocaleBR, want: "R$ -1.000,00"},
		{value: "1234.5", loc: LocaleUS, want: "$ 1,234.50"},
	}
	for _, tc := range cases {
		got := FormatCurrency(decimal.RequireFromString(tc.value), tc.loc)
		if got != tc.want {
			t.Fatalf("value %s: got %q want %q", tc.value, got, tc.want)
		}
	}
}
