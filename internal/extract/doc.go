// Package extract runs the external extraction tools of a permutation
// inside exclusively owned scratch directories.
//
// A Scratch is created atomically with a unique name and removed by Close
// on every exit path. Tools are invoked with the scratch directory as the
// first argument followed by the permutation inputs:
//
//	<tool> <scratch> <perm>/database.mdb <perm>/ <perm>.txt <mgcc> [<incc>]
package extract
