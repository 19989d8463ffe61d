package harness

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name string

	// SQL and Params are the compiled id query.
	SQL    string
	Params []any

	// IDs are the ids returned by SQLite.
	IDs []int64

	// Evaluated are the ids computed by queryir.Evaluate.
	Evaluated []int64

	Skipped []string
}

// Result is the outcome of a scenario.
type Result struct {
	// Pass is true when every case matched its expectation and both
	// backends agreed.
	Pass bool

	Cases []CaseResult

	// Errors contains one message per failed check.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{Pass: true, Cases: []CaseResult{}, Errors: []string{}}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
