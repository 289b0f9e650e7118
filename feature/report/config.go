package report

// Config holds configuration for report generation.
type Config struct {
	// Output is the path of the JSON report to write.
	Output string `mapstructure:"output" default:"output/reconciliation_report.json"`
	// KeyStrategy is the default reconciliation key strategy
	// (sku, name, sku_warehouse, name_warehouse).
	KeyStrategy string `mapstructure:"key_strategy" default:"sku_warehouse"`
}
