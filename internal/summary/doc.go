// Package summary groups matching graph records by permutation and reports
// count and percentage statistics per group.
package summary
