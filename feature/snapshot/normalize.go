package snapshot

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	skuStandardRe = regexp.MustCompile(`^SKU-\d{3}$`)
	skuNoHyphenRe = regexp.MustCompile(`^SKU\d{3}$`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Date layouts accepted for counted_on values, tried in order. The legacy
// layout parses but is flagged with non_iso_date_format.
const (
	isoDateLayout    = "2006-01-02"
	legacyDateLayout = "01/02/2006"
)

// NormalizeText trims a raw text value, collapses empty values to nil, and
// reports quality issues. Normalizers return issues as data rather than
// errors because one row can carry several independent problems and parsing
// must continue regardless.
func NormalizeText(value *string, field string) (*string, []DataIssue) {
	if value == nil {
		return nil, []DataIssue{{
			Code:    "missing_value",
			Message: fmt.Sprintf("%s is missing", field),
			Field:   field,
		}}
	}

	trimmed := strings.TrimSpace(*value)
	var issues []DataIssue

	if trimmed == "" {
		issues = append(issues, DataIssue{
			Code:    "missing_value",
			Message: fmt.Sprintf("%s is empty", field),
			Field:   field,
		})
		return nil, issues
	}

	if trimmed != *value {
		issues = append(issues, DataIssue{
			Code:    "whitespace_trimmed",
			Message: fmt.Sprintf("%s had leading/trailing whitespace", field),
			Field:   field,
		})
	}

	return &trimmed, issues
}

// NormalizeSKU normalizes SKU formatting to the canonical `SKU-XXX` form when
// possible. Values matching neither known pattern are kept best-effort
// (uppercased, internal whitespace stripped) and flagged invalid_sku_format so
// downstream keying still has something to group on.
func NormalizeSKU(value *string) (*string, []DataIssue) {
	cleaned, issues := NormalizeText(value, "sku")
	if cleaned == nil {
		return nil, issues
	}

	candidate := whitespaceRe.ReplaceAllString(strings.ToUpper(*cleaned), "")

	if skuStandardRe.MatchString(candidate) {
		if candidate != *cleaned {
			issues = append(issues, DataIssue{
				Code:    "sku_format_normalized",
				Message: "SKU casing/spacing was normalized",
				Field:   "sku",
			})
		}
		return &candidate, issues
	}

	if skuNoHyphenRe.MatchString(candidate) {
		normalized := "SKU-" + candidate[len(candidate)-3:]
		issues = append(issues, DataIssue{
			Code:    "sku_format_normalized",
			Message: "SKU missing hyphen was normalized",
			Field:   "sku",
		})
		return &normalized, issues
	}

	issues = append(issues, DataIssue{
		Code:    "invalid_sku_format",
		Message: fmt.Sprintf("SKU has unexpected format: %s", *cleaned),
		Field:   "sku",
	})
	return &candidate, issues
}

// ParseQuantity parses a quantity as an integer and flags invalid or unusual
// formats. Exact decimal parsing keeps values like "80.00" from drifting
// through float rounding.
func ParseQuantity(value *string) (*int, []DataIssue) {
	cleaned, issues := NormalizeText(value, "quantity")
	if cleaned == nil {
		return nil, issues
	}

	parsed, err := decimal.NewFromString(*cleaned)
	if err != nil {
		issues = append(issues, DataIssue{
			Code:    "invalid_quantity",
			Message: fmt.Sprintf("Quantity is not numeric: %s", *cleaned),
			Field:   "quantity",
		})
		return nil, issues
	}

	if !parsed.IsInteger() {
		issues = append(issues, DataIssue{
			Code:    "non_integral_quantity",
			Message: fmt.Sprintf("Quantity is not an integer: %s", *cleaned),
			Field:   "quantity",
		})
		return nil, issues
	}

	if strings.Contains(*cleaned, ".") {
		issues = append(issues, DataIssue{
			Code:    "decimal_quantity_format",
			Message: fmt.Sprintf("Quantity uses decimal formatting: %s", *cleaned),
			Field:   "quantity",
		})
	}

	quantity := int(parsed.IntPart())
	if quantity < 0 {
		issues = append(issues, DataIssue{
			Code:    "negative_quantity",
			Message: fmt.Sprintf("Quantity is negative: %d", quantity),
			Field:   "quantity",
		})
	}
	return &quantity, issues
}

// ParseCountDate parses a counted_on date, accepting ISO-8601 and the known
// legacy MM/DD/YYYY format. The legacy format is accepted for resilience but
// still flagged.
func ParseCountDate(value *string) (*time.Time, []DataIssue) {
	cleaned, issues := NormalizeText(value, "counted_on")
	if cleaned == nil {
		return nil, issues
	}

	for _, layout := range []string{isoDateLayout, legacyDateLayout} {
		parsed, err := time.Parse(layout, *cleaned)
		if err != nil {
			continue
		}
		if layout != isoDateLayout {
			issues = append(issues, DataIssue{
				Code:    "non_iso_date_format",
				Message: fmt.Sprintf("Date is not ISO-8601 format: %s", *cleaned),
				Field:   "counted_on",
			})
		}
		return &parsed, issues
	}

	issues = append(issues, DataIssue{
		Code:    "invalid_date",
		Message: fmt.Sprintf("Unable to parse date: %s", *cleaned),
		Field:   "counted_on",
	})
	return nil, issues
}
