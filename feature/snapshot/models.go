package snapshot

import "time"

// DataIssue is one structured data-quality finding emitted during parsing.
// Issues are evidence, never errors: a record can carry several of them and
// still participate in reconciliation.
type DataIssue struct {
	// Code is a short machine-readable identifier, e.g. "negative_quantity".
	Code string `json:"code"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Field names the affected canonical field, empty for file-level issues.
	Field string `json:"field,omitempty"`
}

// Record is the canonical representation of one inventory count after
// normalization, independent of the source layout. Optional fields are nil
// exactly when normalization could not produce a value, in which case a
// corresponding issue explains why.
type Record struct {
	// SourceFile is the path of the originating snapshot file.
	SourceFile string `json:"source_file"`

	// SourceRow is the 1-based line number in the original file; the header
	// occupies line 1, so data rows start at 2.
	SourceRow int `json:"source_row"`

	// SourceSchema is the name of the matched layout.
	SourceSchema string `json:"source_schema"`

	// SKU is the normalized stock keeping unit, nil when missing.
	SKU *string `json:"sku"`

	// Name is the trimmed product name, nil when missing.
	Name *string `json:"name"`

	// Quantity is the counted quantity; it may be negative and is nil when
	// the source value did not parse as an integer.
	Quantity *int `json:"quantity"`

	// Location is the trimmed warehouse location, nil when missing.
	Location *string `json:"location"`

	// CountedOn is the calendar date of the count, nil when unparseable.
	CountedOn *time.Time `json:"counted_on"`

	// Raw preserves the original unparsed value per canonical field for
	// audit, regardless of normalization outcome. Absent columns map to nil.
	Raw map[string]*string `json:"raw"`

	// Issues lists every data-quality issue found while normalizing this
	// record, in field order.
	Issues []DataIssue `json:"issues"`
}

// HasIssues reports whether the record carries at least one issue.
func (r *Record) HasIssues() bool {
	return len(r.Issues) > 0
}

// ParseResult is the parsed output for one snapshot file.
type ParseResult struct {
	// FilePath is the path of the parsed file.
	FilePath string `json:"file_path"`

	// SchemaName is the name of the matched layout.
	SchemaName string `json:"schema_name"`

	// Records holds the canonical records in file order, blank rows excluded.
	Records []Record `json:"records"`

	// FileIssues lists issues not tied to a single record, such as skipped
	// blank rows or rows with extra columns.
	FileIssues []DataIssue `json:"file_issues"`
}

// TotalRecords returns the number of parsed, non-skipped records.
func (p *ParseResult) TotalRecords() int {
	return len(p.Records)
}

// RecordsWithIssues returns how many records carry at least one issue.
func (p *ParseResult) RecordsWithIssues() int {
	count := 0
	for i := range p.Records {
		if p.Records[i].HasIssues() {
			count++
		}
	}
	return count
}

// CombinedParseResult pairs both parsed snapshots under their fixed roles.
type CombinedParseResult struct {
	Snapshot1 *ParseResult `json:"snapshot_1"`
	Snapshot2 *ParseResult `json:"snapshot_2"`
}

// AllRecords returns a flat list of records from both snapshots.
func (c *CombinedParseResult) AllRecords() []Record {
	all := make([]Record, 0, len(c.Snapshot1.Records)+len(c.Snapshot2.Records))
	all = append(all, c.Snapshot1.Records...)
	all = append(all, c.Snapshot2.Records...)
	return all
}
