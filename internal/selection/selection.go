package selection

import "strings"

// State is the tri-state value of one symbol toggle.
type State int

const (
	// Ignore leaves the symbol unconstrained.
	Ignore State = iota
	// Yes requires the symbol to be true.
	Yes
	// No requires the symbol to be false.
	No
)

// String returns the status letter used on the wire.
func (s State) String() string {
	switch s {
	case Yes:
		return "Y"
	case No:
		return "N"
	default:
		return "I"
	}
}

// ParseState maps a status string to a State. Only the exact strings
// "Y" and "N" are recognised; everything else is Ignore.
func ParseState(status string) State {
	switch status {
	case "Y":
		return Yes
	case "N":
		return No
	default:
		return Ignore
	}
}

// Selection is one symbol toggle.
type Selection struct {
	Symbol string `json:"symbol"`
	State  State  `json:"state"`
}

// Active reports whether the selection constrains the query.
func (s Selection) Active() bool {
	return s.State == Yes || s.State == No
}

// String renders the selection back to token form.
func (s Selection) String() string {
	return s.State.String() + ":" + s.Symbol
}

// Result is the outcome of parsing a token list.
type Result struct {
	// Selections holds one entry per distinct symbol in first-seen order.
	Selections []Selection

	// Skipped lists malformed tokens in input order.
	Skipped []string
}

// Active returns the Yes/No selections in order.
func (r Result) Active() []Selection {
	active := make([]Selection, 0, len(r.Selections))
	for _, s := range r.Selections {
		if s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// Parse turns raw "<status>:<symbol>" tokens into selections.
//
// Tokens are split at the first ':'. A token without ':' or with an empty
// symbol is recorded in Skipped and parsing continues. When a symbol
// appears more than once, the later state wins but the symbol keeps the
// position of its first occurrence.
//
// Parse is a pure function.
func Parse(tokens []string) Result {
	res := Result{
		Selections: make([]Selection, 0, len(tokens)),
	}
	index := make(map[string]int, len(tokens))

	for _, tok := range tokens {
		status, symbol, ok := strings.Cut(tok, ":")
		if !ok || symbol == "" {
			res.Skipped = append(res.Skipped, tok)
			continue
		}

		sel := Selection{Symbol: symbol, State: ParseState(status)}
		if i, seen := index[symbol]; seen {
			res.Selections[i] = sel
			continue
		}
		index[symbol] = len(res.Selections)
		res.Selections = append(res.Selections, sel)
	}

	return res
}
