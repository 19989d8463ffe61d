// Package compiler turns parsed symbol selections into set-algebra queries.
//
// The compiled shape reproduces the archive's historical query text:
//
//	SELECT ids WHERE s1 = v1
//	INTERSECT SELECT ids WHERE s2 = v2
//	...
//	EXCEPT SELECT ids WHERE n1 = 1
//	EXCEPT SELECT ids WHERE n2 = 1
//
// where s1, s2, ... are the Yes/No selections in input order and n1, n2, ...
// are the No selections. The EXCEPT clauses are kept even though each one
// is subsumed by its `= 0` equality whenever a graph has a single Morse set
// row; queryir.Analyze reports them as redundant.
//
// Intersection and difference by fixed sets are commutative here, so the
// resulting id set does not depend on selection order.
package compiler
