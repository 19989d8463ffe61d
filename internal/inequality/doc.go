// Package inequality parses the inequality chains attached to the nodes of
// a parameter graph certificate and consolidates them across nodes.
//
// Chains are `;`-separated and use `<=` between terms. A chain with two
// terms is one inequality; a chain with three terms `a<=b<=c` is the pair
// `a<=b`, `b<=c`. Terms are compared as NFC-normalized text with
// surrounding whitespace removed; they are never evaluated.
//
// Consolidation finds the inequalities every node shares so a renderer can
// set them apart from the ones unique to a node.
package inequality
