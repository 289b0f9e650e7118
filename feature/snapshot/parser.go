package snapshot

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseSnapshot parses one snapshot CSV file into canonical records plus
// file-level issues. The header row determines the schema; an unrecognized
// header set is fatal while row-level anomalies only produce issues.
func ParseSnapshot(path string) (*ParseResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	result, err := parseSnapshotReader(file, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return result, nil
}

// ParseBothSnapshots parses both snapshot files and returns them under their
// fixed roles for reconciliation.
func ParseBothSnapshots(path1, path2 string) (*CombinedParseResult, error) {
	snapshot1, err := ParseSnapshot(path1)
	if err != nil {
		return nil, err
	}
	snapshot2, err := ParseSnapshot(path2)
	if err != nil {
		return nil, err
	}
	return &CombinedParseResult{Snapshot1: snapshot1, Snapshot2: snapshot2}, nil
}

// parseSnapshotReader consumes one decoded text stream. It is split from
// ParseSnapshot so tests can parse in-memory CSV content directly.
func parseSnapshotReader(r io.Reader, path string) (*ParseResult, error) {
	buffered := bufio.NewReader(r)
	if err := skipBOM(buffered); err != nil {
		return nil, err
	}

	reader := csv.NewReader(buffered)
	// Rows may legitimately carry extra trailing columns; those are reported
	// as file-level issues rather than parse errors.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("snapshot file has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	schema, err := DetectSchema(headers)
	if err != nil {
		return nil, err
	}

	headerIndex := make(map[string]int, len(headers))
	for i, header := range headers {
		normalized := normalizeHeader(header)
		if _, seen := headerIndex[normalized]; !seen {
			headerIndex[normalized] = i
		}
	}

	var records []Record
	var fileIssues []DataIssue

	// Data rows are numbered from 2; the header occupies line 1.
	lineNumber := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read data row: %w", err)
		}
		lineNumber++

		if len(row) > len(headers) {
			fileIssues = append(fileIssues, DataIssue{
				Code:    "row_has_extra_columns",
				Message: fmt.Sprintf("Row %d has more columns than the header", lineNumber),
			})
		}

		if isBlankRow(row, len(headers)) {
			fileIssues = append(fileIssues, DataIssue{
				Code:    "blank_row_skipped",
				Message: fmt.Sprintf("Row %d is blank and was skipped", lineNumber),
			})
			continue
		}

		records = append(records, buildRecord(row, headerIndex, schema, path, lineNumber))
	}

	return &ParseResult{
		FilePath:   path,
		SchemaName: schema.Name,
		Records:    records,
		FileIssues: fileIssues,
	}, nil
}

// skipBOM discards an optional UTF-8 byte-order marker.
func skipBOM(r *bufio.Reader) error {
	prefix, err := r.Peek(len(utf8BOM))
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to inspect file prefix: %w", err)
	}
	if bytes.Equal(prefix, utf8BOM) {
		if _, err := r.Discard(len(utf8BOM)); err != nil {
			return fmt.Errorf("failed to skip byte-order marker: %w", err)
		}
	}
	return nil
}

// isBlankRow reports whether every declared column in a row is empty.
// Values beyond the declared header count do not keep a row alive.
func isBlankRow(row []string, headerCount int) bool {
	for i := 0; i < headerCount && i < len(row); i++ {
		if strings.TrimSpace(row[i]) != "" {
			return false
		}
	}
	return true
}

// buildRecord converts one raw CSV row into a canonical record, accumulating
// every issue the field normalizers produce. The raw values are preserved
// verbatim for audit regardless of normalization outcome.
func buildRecord(row []string, headerIndex map[string]int, schema *SchemaDefinition, path string, lineNumber int) Record {
	rawValue := func(canonicalField string) *string {
		header, ok := schema.ColumnMap[canonicalField]
		if !ok {
			return nil
		}
		idx, ok := headerIndex[header]
		if !ok || idx >= len(row) {
			return nil
		}
		value := row[idx]
		return &value
	}

	skuRaw := rawValue(FieldSKU)
	nameRaw := rawValue(FieldName)
	quantityRaw := rawValue(FieldQuantity)
	locationRaw := rawValue(FieldLocation)
	countedOnRaw := rawValue(FieldCountedOn)

	sku, skuIssues := NormalizeSKU(skuRaw)
	name, nameIssues := NormalizeText(nameRaw, FieldName)
	quantity, quantityIssues := ParseQuantity(quantityRaw)
	location, locationIssues := NormalizeText(locationRaw, FieldLocation)
	countedOn, dateIssues := ParseCountDate(countedOnRaw)

	issues := make([]DataIssue, 0, len(skuIssues)+len(nameIssues)+len(quantityIssues)+len(locationIssues)+len(dateIssues))
	issues = append(issues, skuIssues...)
	issues = append(issues, nameIssues...)
	issues = append(issues, quantityIssues...)
	issues = append(issues, locationIssues...)
	issues = append(issues, dateIssues...)

	return Record{
		SourceFile:   path,
		SourceRow:    lineNumber,
		SourceSchema: schema.Name,
		SKU:          sku,
		Name:         name,
		Quantity:     quantity,
		Location:     location,
		CountedOn:    countedOn,
		Raw: map[string]*string{
			FieldSKU:       skuRaw,
			FieldName:      nameRaw,
			FieldQuantity:  quantityRaw,
			FieldLocation:  locationRaw,
			FieldCountedOn: countedOnRaw,
		},
		Issues: issues,
	}
}
