// Package ir provides the foundational value types shared by the archive
// browser: query literal values, graph records, permutation summaries and
// the canonical JSON encoding used for golden snapshots.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Query literals are IRValue (IRString, IRInt, IRBool), never floats
//   - Record identifiers are int64 (morsegraph file ids)
//   - Canonical JSON sorts keys by UTF-16 code units and NFC-normalizes strings
package ir
