package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshotFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseSnapshot_V1HappyPath(t *testing.T) {
	path := writeSnapshotFile(t, "snapshot.csv",
		"sku,name,quantity,location,last_counted\n"+
			"SKU-001,Widget A,10,Warehouse A,2024-01-08\n"+
			"SKU-002,Widget B,20,Warehouse B,2024-01-09\n")

	result, err := ParseSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, "snapshot_v1", result.SchemaName)
	assert.Equal(t, 2, result.TotalRecords())
	assert.Equal(t, 0, result.RecordsWithIssues())
	assert.Empty(t, result.FileIssues)

	first := result.Records[0]
	assert.Equal(t, path, first.SourceFile)
	assert.Equal(t, 2, first.SourceRow)
	assert.Equal(t, "snapshot_v1", first.SourceSchema)
	require.NotNil(t, first.SKU)
	assert.Equal(t, "SKU-001", *first.SKU)
	require.NotNil(t, first.Quantity)
	assert.Equal(t, 10, *first.Quantity)
	require.NotNil(t, first.CountedOn)
	assert.Equal(t, "2024-01-08", first.CountedOn.Format("2006-01-02"))
}

func TestParseSnapshot_V2ColumnMapping(t *testing.T) {
	path := writeSnapshotFile(t, "snapshot.csv",
		"sku,product_name,qty,warehouse,updated_at\n"+
			"SKU-010,Gadget,5,Warehouse C,2024-02-01\n")

	result, err := ParseSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, "snapshot_v2", result.SchemaName)
	require.Equal(t, 1, result.TotalRecords())

	record := result.Records[0]
	require.NotNil(t, record.Name)
	assert.Equal(t, "Gadget", *record.Name)
	require.NotNil(t, record.Location)
	assert.Equal(t, "Warehouse C", *record.Location)

	// Raw values are preserved under canonical field names for audit.
	require.NotNil(t, record.Raw[FieldName])
	assert.Equal(t, "Gadget", *record.Raw[FieldName])
	require.NotNil(t, record.Raw[FieldCountedOn])
	assert.Equal(t, "2024-02-01", *record.Raw[FieldCountedOn])
}

func TestParseSnapshot_NormalizesAndFlagsAnomalies(t *testing.T) {
	path := writeSnapshotFile(t, "snapshot.csv",
		"sku,name,quantity,location,last_counted\n"+
			" sku-005 ,Widget A,80.00,Warehouse A,01/15/2024\n"+
			"SKU008,Widget B,-5,Warehouse B,2024-01-09\n"+
			"bad-sku,Widget C,abc,Warehouse C,not-a-date\n")

	result, err := ParseSnapshot(path)
	require.NoError(t, err)
	require.Equal(t, 3, result.TotalRecords())
	assert.Equal(t, 3, result.RecordsWithIssues())

	first := result.Records[0]
	require.NotNil(t, first.SKU)
	assert.Equal(t, "SKU-005", *first.SKU)
	require.NotNil(t, first.Quantity)
	assert.Equal(t, 80, *first.Quantity)
	assert.Contains(t, issueCodes(first.Issues), "sku_format_normalized")
	assert.Contains(t, issueCodes(first.Issues), "decimal_quantity_format")
	assert.Contains(t, issueCodes(first.Issues), "non_iso_date_format")

	second := result.Records[1]
	require.NotNil(t, second.SKU)
	assert.Equal(t, "SKU-008", *second.SKU)
	require.NotNil(t, second.Quantity)
	assert.Equal(t, -5, *second.Quantity)
	assert.Contains(t, issueCodes(second.Issues), "negative_quantity")

	third := result.Records[2]
	require.NotNil(t, third.SKU)
	assert.Equal(t, "BAD-SKU", *third.SKU)
	assert.Nil(t, third.Quantity)
	assert.Nil(t, third.CountedOn)
	assert.Contains(t, issueCodes(third.Issues), "invalid_sku_format")
	assert.Contains(t, issueCodes(third.Issues), "invalid_quantity")
	assert.Contains(t, issueCodes(third.Issues), "invalid_date")
}

func TestParseSnapshot_FlagsFileLevelIssues(t *testing.T) {
	path := writeSnapshotFile(t, "snapshot.csv",
		"sku,name,quantity,location,last_counted\n"+
			"SKU-001,Widget A,10,Warehouse A,2024-01-08\n"+
			",,,,\n"+
			"SKU-002,Widget B,20,Warehouse B,2024-01-09,EXTRA\n")

	result, err := ParseSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, "snapshot_v1", result.SchemaName)
	// The blank row contributes no record; the extra-column row still parses.
	assert.Equal(t, 2, result.TotalRecords())
	assert.ElementsMatch(t, []string{"blank_row_skipped", "row_has_extra_columns"}, issueCodes(result.FileIssues))

	last := result.Records[1]
	require.NotNil(t, last.SKU)
	assert.Equal(t, "SKU-002", *last.SKU)
	assert.Equal(t, 4, last.SourceRow)
}

func TestParseSnapshot_ShortRowDegradesMissingFields(t *testing.T) {
	path := writeSnapshotFile(t, "snapshot.csv",
		"sku,name,quantity,location,last_counted\n"+
			"SKU-001,Widget A\n")

	result, err := ParseSnapshot(path)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalRecords())

	record := result.Records[0]
	assert.Nil(t, record.Quantity)
	assert.Nil(t, record.Location)
	assert.Nil(t, record.CountedOn)
	assert.Nil(t, record.Raw[FieldQuantity])

	codes := issueCodes(record.Issues)
	assert.Equal(t, 3, countOf(codes, "missing_value"))
}

func TestParseSnapshot_SkipsUTF8BOM(t *testing.T) {
	path := writeSnapshotFile(t, "snapshot.csv",
		"\xEF\xBB\xBFsku,name,quantity,location,last_counted\n"+
			"SKU-001,Widget A,10,Warehouse A,2024-01-08\n")

	result, err := ParseSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, "snapshot_v1", result.SchemaName)
	assert.Equal(t, 1, result.TotalRecords())
}

func TestParseSnapshot_UnknownSchemaFails(t *testing.T) {
	path := writeSnapshotFile(t, "snapshot.csv",
		"item_id,item_name,count,site,date_seen\n"+
			"1,Widget A,10,Warehouse A,2024-01-08\n")

	_, err := ParseSnapshot(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized snapshot schema fields")
}

func TestParseSnapshot_EmptyFileFails(t *testing.T) {
	path := writeSnapshotFile(t, "snapshot.csv", "")

	_, err := ParseSnapshot(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestParseSnapshot_MissingFileFails(t *testing.T) {
	_, err := ParseSnapshot(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open snapshot")
}

func TestParseBothSnapshots_CombinesRoles(t *testing.T) {
	path1 := writeSnapshotFile(t, "snapshot_1.csv",
		"sku,name,quantity,location,last_counted\n"+
			"SKU-001,Widget A,10,Warehouse A,2024-01-08\n")
	path2 := writeSnapshotFile(t, "snapshot_2.csv",
		"sku,product_name,qty,warehouse,updated_at\n"+
			"SKU-001,Widget A,12,Warehouse A,2024-02-01\n"+
			"SKU-002,Widget B,3,Warehouse B,2024-02-01\n")

	combined, err := ParseBothSnapshots(path1, path2)
	require.NoError(t, err)

	assert.Equal(t, "snapshot_v1", combined.Snapshot1.SchemaName)
	assert.Equal(t, "snapshot_v2", combined.Snapshot2.SchemaName)
	assert.Equal(t, 1, combined.Snapshot1.TotalRecords())
	assert.Equal(t, 2, combined.Snapshot2.TotalRecords())
	assert.Len(t, combined.AllRecords(), 3)
}

func countOf(values []string, target string) int {
	count := 0
	for _, value := range values {
		if value == target {
			count++
		}
	}
	return count
}
