// Package snapshot parses inventory snapshot CSV files into canonical records.
//
// Input files arrive in one of a small, closed set of column layouts. The
// parser detects the layout from the header row, maps every data row through
// field-level normalizers, and produces records in one unified shape along
// with structured data-quality issues. Field anomalies (malformed SKUs,
// non-numeric quantities, unparseable dates) never abort parsing; they degrade
// the affected field and leave a DataIssue behind. Structural anomalies
// (missing header, unrecognized layout) are fatal so a drifted schema cannot
// silently mis-map columns.
//
// # Usage
//
//	result, err := snapshot.ParseSnapshot("data/snapshot_1.csv")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.SchemaName, result.TotalRecords())
package snapshot
