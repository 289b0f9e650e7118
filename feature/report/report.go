package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"inventory-reconciler/feature/reconcile"
	"inventory-reconciler/feature/snapshot"

	"github.com/google/uuid"
)

// Snapshot role labels used to attribute issues in the report.
const (
	roleSnapshot1 = "snapshot_1"
	roleSnapshot2 = "snapshot_2"
)

// mergeRuleNote documents the duplicate-merge policy inside the report itself
// so consumers reading only the JSON understand how totals were formed.
const mergeRuleNote = "If multiple rows resolve to the same reconciliation key within a snapshot, " +
	"their quantities are merged by deterministic addition."

// Metadata describes one report run.
type Metadata struct {
	RunID                  string `json:"run_id"`
	GeneratedAtUTC         string `json:"generated_at_utc"`
	Snapshot1Path          string `json:"snapshot_1_path"`
	Snapshot2Path          string `json:"snapshot_2_path"`
	KeyStrategy            string `json:"key_strategy"`
	DeterministicMergeRule string `json:"deterministic_merge_rule"`
}

// CountSummary carries headline counts for quick report scanning.
type CountSummary struct {
	Snapshot1RecordCount       int `json:"snapshot_1_record_count"`
	Snapshot2RecordCount       int `json:"snapshot_2_record_count"`
	Snapshot1RecordsWithIssues int `json:"snapshot_1_records_with_issues"`
	Snapshot2RecordsWithIssues int `json:"snapshot_2_records_with_issues"`
	InBothChangedCount         int `json:"in_both_changed_count"`
	InBothUnchangedCount       int `json:"in_both_unchanged_count"`
	OnlyInSnapshot1Count       int `json:"only_in_snapshot_1_count"`
	OnlyInSnapshot2Count       int `json:"only_in_snapshot_2_count"`
}

// FileIssue is a file-level issue tagged with the snapshot it came from.
type FileIssue struct {
	Snapshot string `json:"snapshot"`
	Code     string `json:"code"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
}

// RowKeyFields carries the identity-relevant fields of the record an issue
// belongs to, so flagged rows can be located without the source file.
type RowKeyFields struct {
	SKU      *string `json:"sku"`
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

// RowIssue is a record-level issue with its source attribution.
type RowIssue struct {
	Snapshot   string             `json:"snapshot"`
	SourceFile string             `json:"source_file"`
	SourceRow  int                `json:"source_row"`
	KeyFields  RowKeyFields       `json:"key_fields"`
	Issue      snapshot.DataIssue `json:"issue"`
}

// DuplicateSection lists merged duplicate keys per snapshot role.
type DuplicateSection struct {
	Snapshot1 []reconcile.DuplicateMergeInfo `json:"snapshot_1"`
	Snapshot2 []reconcile.DuplicateMergeInfo `json:"snapshot_2"`
}

// DataQuality groups every data-quality finding of the run.
type DataQuality struct {
	FileIssues                    []FileIssue      `json:"file_issues"`
	RowIssues                     []RowIssue       `json:"row_issues"`
	DuplicateKeysMergedByAddition DuplicateSection `json:"duplicate_keys_merged_by_addition"`
}

// Report is the top-level reconciliation report document.
type Report struct {
	Metadata       Metadata           `json:"metadata"`
	Summary        CountSummary       `json:"summary"`
	Reconciliation *reconcile.Summary `json:"reconciliation"`
	DataQuality    DataQuality        `json:"data_quality_issues"`
}

// Build assembles the full report for an already-parsed snapshot pair.
// keyStrategy is recorded verbatim in the metadata; keyFn performs the actual
// grouping so custom strategies work the same as named ones.
func Build(combined *snapshot.CombinedParseResult, keyStrategy string, keyFn reconcile.KeyFunc) *Report {
	reconciliation := reconcile.ReconcileCombined(combined, keyFn)

	fileIssues := make([]FileIssue, 0, len(combined.Snapshot1.FileIssues)+len(combined.Snapshot2.FileIssues))
	fileIssues = append(fileIssues, collectFileIssues(combined.Snapshot1, roleSnapshot1)...)
	fileIssues = append(fileIssues, collectFileIssues(combined.Snapshot2, roleSnapshot2)...)

	rowIssues := make([]RowIssue, 0)
	rowIssues = append(rowIssues, collectRowIssues(combined.Snapshot1, roleSnapshot1)...)
	rowIssues = append(rowIssues, collectRowIssues(combined.Snapshot2, roleSnapshot2)...)

	return &Report{
		Metadata: Metadata{
			RunID:                  uuid.NewString(),
			GeneratedAtUTC:         time.Now().UTC().Format(time.RFC3339),
			Snapshot1Path:          combined.Snapshot1.FilePath,
			Snapshot2Path:          combined.Snapshot2.FilePath,
			KeyStrategy:            keyStrategy,
			DeterministicMergeRule: mergeRuleNote,
		},
		Summary: CountSummary{
			Snapshot1RecordCount:       combined.Snapshot1.TotalRecords(),
			Snapshot2RecordCount:       combined.Snapshot2.TotalRecords(),
			Snapshot1RecordsWithIssues: combined.Snapshot1.RecordsWithIssues(),
			Snapshot2RecordsWithIssues: combined.Snapshot2.RecordsWithIssues(),
			InBothChangedCount:         len(reconciliation.InBothChanged),
			InBothUnchangedCount:       len(reconciliation.InBothUnchanged),
			OnlyInSnapshot1Count:       len(reconciliation.OnlyInSnapshot1),
			OnlyInSnapshot2Count:       len(reconciliation.OnlyInSnapshot2),
		},
		Reconciliation: reconciliation,
		DataQuality: DataQuality{
			FileIssues: fileIssues,
			RowIssues:  rowIssues,
			DuplicateKeysMergedByAddition: DuplicateSection{
				Snapshot1: reconcile.DetectMergedDuplicates(combined.Snapshot1.Records, keyFn),
				Snapshot2: reconcile.DetectMergedDuplicates(combined.Snapshot2.Records, keyFn),
			},
		},
	}
}

// Write serializes the report as indented JSON, creating the output directory
// if needed.
func (r *Report) Write(path string) error {
	payload, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	payload = append(payload, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func collectFileIssues(result *snapshot.ParseResult, role string) []FileIssue {
	issues := make([]FileIssue, 0, len(result.FileIssues))
	for _, issue := range result.FileIssues {
		issues = append(issues, FileIssue{
			Snapshot: role,
			Code:     issue.Code,
			Field:    issue.Field,
			Message:  issue.Message,
		})
	}
	return issues
}

func collectRowIssues(result *snapshot.ParseResult, role string) []RowIssue {
	var issues []RowIssue
	for i := range result.Records {
		record := &result.Records[i]
		for _, issue := range record.Issues {
			issues = append(issues, RowIssue{
				Snapshot:   role,
				SourceFile: record.SourceFile,
				SourceRow:  record.SourceRow,
				KeyFields: RowKeyFields{
					SKU:      record.SKU,
					Name:     record.Name,
					Location: record.Location,
				},
				Issue: issue,
			})
		}
	}
	return issues
}
