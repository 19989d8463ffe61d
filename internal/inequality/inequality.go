package inequality

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	chainSep = ";"
	termSep  = "<="
)

// Inequality is one `Lower <= Upper` relation between two opaque terms.
type Inequality struct {
	Lower string `json:"lower"`
	Upper string `json:"upper"`
}

// String renders the inequality as `lower<=upper`.
func (i Inequality) String() string {
	return i.Lower + termSep + i.Upper
}

// Diagnostic records a chain that was dropped during normalization.
type Diagnostic struct {
	Node   string `json:"node,omitempty"`
	Chain  string `json:"chain"`
	Terms  int    `json:"terms"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	if d.Node != "" {
		return fmt.Sprintf("node %s: chain %q: %s", d.Node, d.Chain, d.Reason)
	}
	return fmt.Sprintf("chain %q: %s", d.Chain, d.Reason)
}

// Normalize splits raw text into inequalities.
//
// Fragments that are empty after trimming are ignored. Chains with a term
// count other than 2 or 3, or with an empty term, are dropped and reported
// as diagnostics; the remaining chains are unaffected.
//
// Normalize is a pure function.
func Normalize(raw string) ([]Inequality, []Diagnostic) {
	out := []Inequality{}
	var diags []Diagnostic

	for _, fragment := range strings.Split(raw, chainSep) {
		chain := strings.TrimSpace(fragment)
		if chain == "" {
			continue
		}

		terms := strings.Split(chain, termSep)
		for i, term := range terms {
			terms[i] = norm.NFC.String(strings.TrimSpace(term))
		}

		if len(terms) != 2 && len(terms) != 3 {
			diags = append(diags, Diagnostic{
				Chain:  chain,
				Terms:  len(terms),
				Reason: fmt.Sprintf("unsupported term count %d", len(terms)),
			})
			continue
		}
		if empty := emptyTerm(terms); empty >= 0 {
			diags = append(diags, Diagnostic{
				Chain:  chain,
				Terms:  len(terms),
				Reason: fmt.Sprintf("term %d is empty", empty+1),
			})
			continue
		}

		out = append(out, Inequality{Lower: terms[0], Upper: terms[1]})
		if len(terms) == 3 {
			out = append(out, Inequality{Lower: terms[1], Upper: terms[2]})
		}
	}

	return out, diags
}

func emptyTerm(terms []string) int {
	for i, t := range terms {
		if t == "" {
			return i
		}
	}
	return -1
}
