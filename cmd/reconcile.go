package cmd

import (
	"fmt"

	"inventory-reconciler/core/config"
	"inventory-reconciler/core/logger"
	"inventory-reconciler/feature/reconcile"
	"inventory-reconciler/feature/report"
	"inventory-reconciler/feature/snapshot"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	snapshot1Path string
	snapshot2Path string
	outputPath    string
	keyStrategy   string
)

// reconcileCmd parses both snapshots, reconciles them, and writes the report.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile two inventory snapshots and write a JSON report",
	Long: `Reconcile two inventory snapshot CSV files.

Each file is normalized into canonical records, data-quality anomalies are
collected, and the snapshots are diffed by the chosen key strategy. The result
is written as a JSON report covering additions, removals, quantity deltas,
merged duplicate keys, and every issue encountered.

Examples:
  # Reconcile with defaults from config/env
  inventory-reconciler reconcile

  # Explicit inputs, keyed by SKU only
  inventory-reconciler reconcile --snapshot-1 a.csv --snapshot-2 b.csv --key sku`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&snapshot1Path, "snapshot-1", "", "Path to snapshot 1 CSV (defaults from config)")
	reconcileCmd.Flags().StringVar(&snapshot2Path, "snapshot-2", "", "Path to snapshot 2 CSV (defaults from config)")
	reconcileCmd.Flags().StringVar(&outputPath, "output", "", "Output JSON report path (defaults from config)")
	reconcileCmd.Flags().StringVar(&keyStrategy, "key", "", "Key strategy: sku, name, sku_warehouse or name_warehouse (defaults from config)")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	path1 := firstNonEmpty(snapshot1Path, cfg.Snapshot.Path1)
	path2 := firstNonEmpty(snapshot2Path, cfg.Snapshot.Path2)
	output := firstNonEmpty(outputPath, cfg.Report.Output)
	key := firstNonEmpty(keyStrategy, cfg.Report.KeyStrategy)

	// An unknown key name is a structural failure; resolve it before any
	// file work so the run aborts up front.
	keyFn, err := reconcile.ResolveKeyFunc(key)
	if err != nil {
		return err
	}

	l.Info("Starting reconciliation",
		zap.String("snapshot_1", path1),
		zap.String("snapshot_2", path2),
		zap.String("key_strategy", key),
	)

	combined, err := snapshot.ParseBothSnapshots(path1, path2)
	if err != nil {
		return err
	}

	logParseResult(logger.WithSnapshot(l, "snapshot_1"), combined.Snapshot1)
	logParseResult(logger.WithSnapshot(l, "snapshot_2"), combined.Snapshot2)

	rpt := report.Build(combined, key, keyFn)
	if err := rpt.Write(output); err != nil {
		return err
	}

	logReconciliationSummary(l, rpt)
	l.Info("Wrote reconciliation report", zap.String("output", output), zap.String("run_id", rpt.Metadata.RunID))
	return nil
}

// logParseResult reports one parsed snapshot's headline numbers.
func logParseResult(l *zap.Logger, result *snapshot.ParseResult) {
	l.Info("Parsed snapshot",
		zap.String("file", result.FilePath),
		zap.String("schema", result.SchemaName),
		zap.Int("records", result.TotalRecords()),
		zap.Int("records_with_issues", result.RecordsWithIssues()),
		zap.Int("file_issues", len(result.FileIssues)),
	)
}

// logReconciliationSummary reports the diff category counts.
func logReconciliationSummary(l *zap.Logger, rpt *report.Report) {
	s := rpt.Summary

	l.Info("Reconciliation summary",
		zap.Int("unchanged", s.InBothUnchangedCount),
		zap.Int("changed", s.InBothChangedCount),
		zap.Int("only_in_snapshot_1", s.OnlyInSnapshot1Count),
		zap.Int("only_in_snapshot_2", s.OnlyInSnapshot2Count),
	)

	duplicates := rpt.DataQuality.DuplicateKeysMergedByAddition
	if len(duplicates.Snapshot1)+len(duplicates.Snapshot2) > 0 {
		l.Info("Duplicate keys merged by addition",
			zap.Int("snapshot_1", len(duplicates.Snapshot1)),
			zap.Int("snapshot_2", len(duplicates.Snapshot2)),
		)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
