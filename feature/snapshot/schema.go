package snapshot

import (
	"fmt"
	"sort"
	"strings"
)

// Canonical field names shared by every layout.
const (
	FieldSKU       = "sku"
	FieldName      = "name"
	FieldQuantity  = "quantity"
	FieldLocation  = "location"
	FieldCountedOn = "counted_on"
)

// SchemaDefinition describes one known input layout: the exact set of
// expected headers and the mapping from canonical field names to that
// layout's actual header names.
type SchemaDefinition struct {
	// Name identifies the layout, e.g. "snapshot_v1".
	Name string

	// Fields is the normalized header set the layout requires.
	Fields map[string]struct{}

	// ColumnMap maps canonical field name -> source header name.
	ColumnMap map[string]string
}

// registeredSchemas is the closed set of layouts the parser understands.
// Adding a layout means adding a table entry, not editing parser logic.
var registeredSchemas = []SchemaDefinition{
	{
		Name:   "snapshot_v1",
		Fields: headerSet("sku", "name", "quantity", "location", "last_counted"),
		ColumnMap: map[string]string{
			FieldSKU:       "sku",
			FieldName:      "name",
			FieldQuantity:  "quantity",
			FieldLocation:  "location",
			FieldCountedOn: "last_counted",
		},
	},
	{
		Name:   "snapshot_v2",
		Fields: headerSet("sku", "product_name", "qty", "warehouse", "updated_at"),
		ColumnMap: map[string]string{
			FieldSKU:       "sku",
			FieldName:      "product_name",
			FieldQuantity:  "qty",
			FieldLocation:  "warehouse",
			FieldCountedOn: "updated_at",
		},
	},
}

func headerSet(headers ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		set[h] = struct{}{}
	}
	return set
}

// normalizeHeader makes schema matching resilient to header formatting.
func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// DetectSchema returns the layout whose header set exactly matches the given
// headers after normalization. Matching is deliberately strict: a subset or
// superset of a known layout is rejected instead of guessed, so schema drift
// fails fast rather than silently mis-mapping columns.
func DetectSchema(headers []string) (*SchemaDefinition, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("snapshot file has no header row")
	}

	normalized := make(map[string]struct{}, len(headers))
	for _, header := range headers {
		normalized[normalizeHeader(header)] = struct{}{}
	}

	for i := range registeredSchemas {
		schema := &registeredSchemas[i]
		if headerSetsEqual(normalized, schema.Fields) {
			return schema, nil
		}
	}

	sorted := make([]string, 0, len(normalized))
	for header := range normalized {
		sorted = append(sorted, header)
	}
	sort.Strings(sorted)
	return nil, fmt.Errorf("unrecognized snapshot schema fields: %s", strings.Join(sorted, ", "))
}

func headerSetsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for header := range a {
		if _, ok := b[header]; !ok {
			return false
		}
	}
	return true
}
