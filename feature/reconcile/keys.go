package reconcile

import (
	"fmt"
	"strings"

	"inventory-reconciler/feature/snapshot"
)

// KeyFunc computes the reconciliation identity key for one canonical record.
// An empty string means the record has no usable key and is skipped during
// aggregation.
type KeyFunc func(record snapshot.Record) string

// Names of the built-in key strategies accepted by ResolveKeyFunc.
const (
	KeySKU           = "sku"
	KeyName          = "name"
	KeySKUWarehouse  = "sku_warehouse"
	KeyNameWarehouse = "name_warehouse"
)

// KeyBySKU keys records by normalized SKU.
func KeyBySKU(record snapshot.Record) string {
	if record.SKU == nil {
		return ""
	}
	return *record.SKU
}

// KeyByName keys records by trimmed, case-folded product name.
func KeyByName(record snapshot.Record) string {
	if record.Name == nil {
		return ""
	}
	return foldKeyPart(*record.Name)
}

// KeyBySKUWarehouse keys records by SKU and warehouse location, so inventory
// of the same SKU in different warehouses is not collapsed under one key.
func KeyBySKUWarehouse(record snapshot.Record) string {
	sku := KeyBySKU(record)
	location := locationKeyPart(record)
	if sku == "" || location == "" {
		return ""
	}
	return sku + "|" + location
}

// KeyByNameWarehouse keys records by case-folded name and warehouse location.
func KeyByNameWarehouse(record snapshot.Record) string {
	name := KeyByName(record)
	location := locationKeyPart(record)
	if name == "" || location == "" {
		return ""
	}
	return name + "|" + location
}

func locationKeyPart(record snapshot.Record) string {
	if record.Location == nil {
		return ""
	}
	return foldKeyPart(*record.Location)
}

func foldKeyPart(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// ResolveKeyFunc maps a configured strategy name to its built-in KeyFunc.
// Unknown names fail instead of defaulting silently; callers with custom
// grouping logic pass their own KeyFunc to the engine directly.
func ResolveKeyFunc(name string) (KeyFunc, error) {
	switch name {
	case KeySKU:
		return KeyBySKU, nil
	case KeyName:
		return KeyByName, nil
	case KeySKUWarehouse:
		return KeyBySKUWarehouse, nil
	case KeyNameWarehouse:
		return KeyByNameWarehouse, nil
	default:
		return nil, fmt.Errorf("unsupported reconciliation key: %s", name)
	}
}
