package reconcile

import (
	"sort"

	"inventory-reconciler/feature/snapshot"
)

// AggregateQuantities sums record quantities by key for one snapshot.
// Records without a key are skipped; a nil quantity counts as 0 so
// issue-flagged records still appear in reconciliation output.
func AggregateQuantities(records []snapshot.Record, keyFn KeyFunc) map[string]int {
	totals := make(map[string]int)
	for _, record := range records {
		key := keyFn(record)
		if key == "" {
			continue
		}
		totals[key] += quantityOrZero(record)
	}
	return totals
}

// Reconcile aggregates both record collections independently and partitions
// the resulting keys into unchanged, changed, only-in-1 and only-in-2 sets.
// Empty inputs and zero-overlap inputs produce a well-formed summary with
// empty lists rather than an error.
func Reconcile(snapshot1Records, snapshot2Records []snapshot.Record, keyFn KeyFunc) *Summary {
	totals1 := AggregateQuantities(snapshot1Records, keyFn)
	totals2 := AggregateQuantities(snapshot2Records, keyFn)

	summary := &Summary{
		InBothUnchanged: []string{},
		InBothChanged:   []ChangedItem{},
		OnlyInSnapshot1: []string{},
		OnlyInSnapshot2: []string{},
		DeltaByKey:      map[string]int{},
	}

	var changedKeys []string
	for key, total1 := range totals1 {
		total2, shared := totals2[key]
		switch {
		case !shared:
			summary.OnlyInSnapshot1 = append(summary.OnlyInSnapshot1, key)
		case total1 == total2:
			summary.InBothUnchanged = append(summary.InBothUnchanged, key)
		default:
			changedKeys = append(changedKeys, key)
		}
	}
	for key := range totals2 {
		if _, shared := totals1[key]; !shared {
			summary.OnlyInSnapshot2 = append(summary.OnlyInSnapshot2, key)
		}
	}

	sort.Strings(summary.InBothUnchanged)
	sort.Strings(summary.OnlyInSnapshot1)
	sort.Strings(summary.OnlyInSnapshot2)
	sort.Strings(changedKeys)

	for _, key := range changedKeys {
		item := ChangedItem{
			Key:               key,
			Snapshot1Quantity: totals1[key],
			Snapshot2Quantity: totals2[key],
			Delta:             totals2[key] - totals1[key],
		}
		summary.InBothChanged = append(summary.InBothChanged, item)
		summary.DeltaByKey[key] = item.Delta
	}

	return summary
}

// ReconcileCombined reconciles the snapshots held in a CombinedParseResult.
func ReconcileCombined(combined *snapshot.CombinedParseResult, keyFn KeyFunc) *Summary {
	return Reconcile(combined.Snapshot1.Records, combined.Snapshot2.Records, keyFn)
}

// DetectMergedDuplicates reports every key within one record collection that
// resolved from more than one record, with its row count and merged quantity.
// This is a diagnostic view over the same addition rule Reconcile uses, so
// silent-looking totals can be traced back to their source rows.
func DetectMergedDuplicates(records []snapshot.Record, keyFn KeyFunc) []DuplicateMergeInfo {
	rowCounts := make(map[string]int)
	mergedTotals := make(map[string]int)

	for _, record := range records {
		key := keyFn(record)
		if key == "" {
			continue
		}
		rowCounts[key]++
		mergedTotals[key] += quantityOrZero(record)
	}

	keys := make([]string, 0, len(rowCounts))
	for key, count := range rowCounts {
		if count > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	duplicates := make([]DuplicateMergeInfo, 0, len(keys))
	for _, key := range keys {
		duplicates = append(duplicates, DuplicateMergeInfo{
			Key:            key,
			RowCount:       rowCounts[key],
			MergedQuantity: mergedTotals[key],
		})
	}
	return duplicates
}

func quantityOrZero(record snapshot.Record) int {
	if record.Quantity == nil {
		return 0
	}
	return *record.Quantity
}
