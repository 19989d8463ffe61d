// Package store provides the SQLite record store behind a Morse graph
// database.
//
// The store holds four tables:
//   - permutations: one row per permutation directory
//   - morsegraphs: one row per classified graph, with its share of the
//     parameter space
//   - morsesets: one row per Morse set, with a 0/1 column per symbol
//   - symbols: the registry of symbol columns, in alphabet order
//
// Queries are built from queryir trees by querysql. The symbols registry is
// the whitelist of column names the compiler may emit.
//
// # Database Configuration
//
//   - WAL mode for writers; request paths open read-only
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Every query orders by morsegraph_file_id, so results are deterministic.
package store
