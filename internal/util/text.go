package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// SupplierSentinel replaces supplier names that are empty after redaction.
	SupplierSentinel = "N/A"
	supplierSep      = " - "
)

var (
	reCNPJ      = regexp.MustCompile(`\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}`)
	reCPF       = regexp.MustCompile(`\d{3}\.\d{3}\.\d{3}-\d{2}`)
	reMaskedCPF = regexp.MustCompile(`\*\*\*\*\d+\*\*\*\*`)
	reSpaces    = regexp.MustCompile(`\s+`)
)

// CleanSupplierName strips tax IDs from a supplier label. The steps run in
// a fixed order: CNPJ, CPF, masked CPF, then every " - " separator, then a
// trim. The pass repeats until the name stops changing, since a removal can
// join two fragments into a new separator ("A  - - B").
func CleanSupplierName(raw string) string {
	s := raw
	for {
		next := redactSupplier(s)
		if next == s {
			break
		}
		s = next
	}
	if s == "" {
		return SupplierSentinel
	}
	return s
}

func redactSupplier(s string) string {
	s = reCNPJ.ReplaceAllString(s, "")
	s = reCPF.ReplaceAllString(s, "")
	s = reMaskedCPF.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, supplierSep, "")
	return strings.TrimSpace(s)
}

func CleanSupplierNamePtr(raw *string) string {
	if raw == nil {
		return SupplierSentinel
	}
	return CleanSupplierName(*raw)
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func StringPtr(v string) *string { return &v }
