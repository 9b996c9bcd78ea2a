package pipeline

import (
	"strings"

	"fiscal/internal"
)

// columnRule assigns a canonical role to a header containing every one of
// its needles (case-sensitive).
type columnRule struct {
	Role    internal.Role
	Needles []string
}

// columnRules is evaluated in order for each header and the first
// satisfied rule wins, so "Valor do Empenho" is valor, never empenho.
var columnRules = []columnRule{
	{Role: internal.RoleData, Needles: []string{"Data", "Liquid"}},
	{Role: internal.RoleFornecedor, Needles: []string{"Fornecedor"}},
	{Role: internal.RoleValor, Needles: []string{"Valor"}},
	{Role: internal.RoleTipoLicitacao, Needles: []string{"Tipo", "Licit"}},
	{Role: internal.RoleEmpenho, Needles: []string{"Empenho"}},
}

func (r columnRule) matches(header string) bool {
	for _, n := range r.Needles {
		if !strings.Contains(header, n) {
			return false
		}
	}
	return true
}

type DiscoveredColumn struct {
	Index  int
	Header string
	Role   internal.Role
}

type ColumnMap struct {
	Columns []DiscoveredColumn
	byRole  map[internal.Role]int
}

// Index returns the source field index holding role, or -1.
func (m ColumnMap) Index(role internal.Role) int {
	if idx, ok := m.byRole[role]; ok {
		return idx
	}
	return -1
}

// Rename maps original header text to its canonical name.
func (m ColumnMap) Rename() map[string]string {
	out := make(map[string]string, len(m.Columns))
	for _, c := range m.Columns {
		out[c.Header] = string(c.Role)
	}
	return out
}

// MatchRole returns the role for a single header, if any.
func MatchRole(header string) (internal.Role, bool) {
	for _, rule := range columnRules {
		if rule.matches(header) {
			return rule.Role, true
		}
	}
	return "", false
}

// DiscoverColumns keeps the headers that match a role, in source order.
// When two headers resolve to the same role the leftmost one owns it.
func DiscoverColumns(headers []string) (ColumnMap, error) {
	m := ColumnMap{byRole: map[internal.Role]int{}}
	for i, h := range headers {
		role, ok := MatchRole(h)
		if !ok {
			continue
		}
		if _, taken := m.byRole[role]; taken {
			continue
		}
		m.byRole[role] = i
		m.Columns = append(m.Columns, DiscoveredColumn{Index: i, Header: h, Role: role})
	}

	var missing []internal.Role
	for _, rule := range columnRules {
		if _, ok := m.byRole[rule.Role]; !ok {
			missing = append(missing, rule.Role)
		}
	}
	if len(missing) > 0 {
		return m, &ColumnNotFoundError{Role: missing[0], Missing: missing}
	}
	return m, nil
}
