package reconcile

// ChangedItem describes the quantity change for one key present in both
// snapshots with differing aggregated totals.
type ChangedItem struct {
	// Key is the reconciliation key.
	Key string `json:"key"`

	// Snapshot1Quantity is the aggregated quantity in snapshot 1.
	Snapshot1Quantity int `json:"snapshot_1_quantity"`

	// Snapshot2Quantity is the aggregated quantity in snapshot 2.
	Snapshot2Quantity int `json:"snapshot_2_quantity"`

	// Delta is Snapshot2Quantity - Snapshot1Quantity.
	Delta int `json:"delta"`
}

// Summary is the structured reconciliation output for one keying strategy.
// All key lists are sorted lexicographically for deterministic output.
type Summary struct {
	// InBothUnchanged lists keys present in both snapshots with equal totals.
	InBothUnchanged []string `json:"in_both_unchanged"`

	// InBothChanged lists keys present in both snapshots with differing
	// totals, ordered by key.
	InBothChanged []ChangedItem `json:"in_both_changed"`

	// OnlyInSnapshot1 lists keys present only in snapshot 1.
	OnlyInSnapshot1 []string `json:"only_in_snapshot_1"`

	// OnlyInSnapshot2 lists keys present only in snapshot 2.
	OnlyInSnapshot2 []string `json:"only_in_snapshot_2"`

	// DeltaByKey maps each changed key to its signed delta.
	DeltaByKey map[string]int `json:"delta_by_key"`
}

// DuplicateMergeInfo reports one key that resolved from more than one record
// within a single snapshot and was merged by addition.
type DuplicateMergeInfo struct {
	// Key is the reconciliation key that merged multiple records.
	Key string `json:"key"`

	// RowCount is the number of contributing records.
	RowCount int `json:"row_count"`

	// MergedQuantity is the summed quantity across those records.
	MergedQuantity int `json:"merged_quantity"`
}
