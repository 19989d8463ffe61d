package harness

import (
	"context"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/morsezoo/internal/ir"
)

// Snapshot renders a result as canonical JSON for golden comparison:
//
//	{"cases":[{"ids":[...],"name":"...","params":[...],"sql":"..."}],"scenario":"..."}
func Snapshot(name string, r *Result) ([]byte, error) {
	cases := make(ir.IRArray, 0, len(r.Cases))
	for _, c := range r.Cases {
		params := make(ir.IRArray, 0, len(c.Params))
		for _, p := range c.Params {
			v, err := ir.ToIRValue(p)
			if err != nil {
				return nil, fmt.Errorf("case %q: param: %w", c.Name, err)
			}
			params = append(params, v)
		}
		ids := make(ir.IRArray, 0, len(c.IDs))
		for _, id := range c.IDs {
			ids = append(ids, ir.IRInt(id))
		}
		cases = append(cases, ir.IRObject{
			"name":   ir.IRString(c.Name),
			"sql":    ir.IRString(c.SQL),
			"params": params,
			"ids":    ids,
		})
	}
	data, err := ir.MarshalCanonical(ir.IRObject{
		"scenario": ir.IRString(name),
		"cases":    cases,
	})
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden runs a scenario, fails t for every failed check and
// compares the snapshot with testdata/golden/{scenario.Name}.golden.
func RunWithGolden(t *testing.T, scenario *Scenario) *Result {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		t.Fatalf("run scenario %s: %v", scenario.Name, err)
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	snapshot, err := Snapshot(scenario.Name, result)
	if err != nil {
		t.Fatalf("snapshot %s: %v", scenario.Name, err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot)
	return result
}
