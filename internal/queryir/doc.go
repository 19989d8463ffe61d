// Package queryir provides the typed set-algebra query representation that
// sits between selection compilation and the record store.
//
// ARCHITECTURE:
//
//	[selection tokens] → [compiler] → [Query IR] → [querysql] → SQLite
//
// A query denotes a set of Morse graph file ids. Leaves are Universe (every
// id in the archive) or Select (ids of graphs with at least one Morse set
// row satisfying a filter). Inner nodes combine sets:
//
//	Intersect(left, right)   ids in both
//	Except(left, right)      ids in left but not in right
//
// Compilers build left-deep trees, which is exactly how SQLite associates a
// chain of compound operators (A INTERSECT B EXCEPT C = (A ∩ B) − C).
//
// SEALED INTERFACES:
//
// Query and Predicate are sealed with marker methods so backends can switch
// exhaustively:
//
//	switch q := query.(type) {
//	case Universe:
//	case Select:
//	case Intersect:
//	case Except:
//	}
//
// Literal values in predicates are ir.IRValue. They are always bound as
// parameters by backends, never interpolated. Field names are symbol
// names; backends must check them against the archive's symbol registry.
package queryir
