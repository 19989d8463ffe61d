// Package engine orchestrates requests against a Morse graph archive.
//
// Each request runs to completion on the caller's goroutine:
//
//  1. Resolve the database (and permutation) under the archive root.
//  2. Open the record store read-only.
//  3. Parse selection tokens, compile the query, execute it.
//  4. Aggregate, consolidate or package the results.
//  5. Close the store and remove any scratch directory.
//
// The engine holds no per-request state, so one Engine serves concurrent
// requests. Every request is tagged with a token from a TokenGenerator,
// which appears in logs and in returned errors.
//
// Failures are reported as *Error values carrying an ErrorCode; use IsCode
// or the Is* helpers to classify them.
package engine
