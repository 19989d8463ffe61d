// Package harness runs selection scenarios end to end.
//
// A scenario is a YAML file holding a small dataset and a list of cases.
// Each case is a list of radio tokens, optionally scoped to one
// permutation, with the ids it is expected to select. Run loads the
// dataset into a fresh in-memory store, compiles every case, executes it
// in SQLite and evaluates it again with queryir.Evaluate. A case fails
// when the two disagree or when either differs from the expectation.
//
// RunWithGolden additionally snapshots the compiled SQL, its parameters
// and the ids of every case as canonical JSON under testdata/golden.
// To regenerate golden files:
//
//	go test ./internal/harness -update
package harness
