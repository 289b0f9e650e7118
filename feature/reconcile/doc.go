// Package reconcile diffs two parsed inventory snapshots under a pluggable
// identity-key strategy.
//
// Records are first aggregated per snapshot by key, summing quantities.
// Multiple records resolving to the same key within one snapshot are always
// merged by deterministic addition, never last-wins, because downstream
// consumers rely on totals matching physical counting. The engine then
// partitions keys into unchanged, changed (with signed deltas), only-in-1 and
// only-in-2 sets, all sorted lexicographically for diff-friendly output.
//
// Key strategies are plain function values: the named built-ins can be
// resolved from configuration, and callers may supply any custom KeyFunc with
// the same shape.
package reconcile
