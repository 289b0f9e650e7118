package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func issueCodes(issues []DataIssue) []string {
	codes := make([]string, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return codes
}

func TestNormalizeText_TrimsAndReportsWhitespace(t *testing.T) {
	value, issues := NormalizeText(strPtr("  Widget A  "), "name")

	require.NotNil(t, value)
	assert.Equal(t, "Widget A", *value)
	assert.Equal(t, []string{"whitespace_trimmed"}, issueCodes(issues))
}

func TestNormalizeText_EmptyOrMissingValues(t *testing.T) {
	tests := []struct {
		name  string
		input *string
	}{
		{"Missing", nil},
		{"Blank", strPtr("   ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, issues := NormalizeText(tt.input, "name")
			assert.Nil(t, value)
			assert.Equal(t, []string{"missing_value"}, issueCodes(issues))
		})
	}
}

// Re-normalizing an already-trimmed value yields it unchanged with no issues.
func TestNormalizeText_IdempotentOnTrimmedInput(t *testing.T) {
	once, _ := NormalizeText(strPtr("  Widget A  "), "name")
	require.NotNil(t, once)

	twice, issues := NormalizeText(once, "name")
	require.NotNil(t, twice)
	assert.Equal(t, *once, *twice)
	assert.Empty(t, issues)
}

func TestNormalizeSKU_CaseAndHyphenRepair(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantCodes []string
	}{
		{"CaseAndWhitespace", " sku-008 ", "SKU-008", []string{"whitespace_trimmed", "sku_format_normalized"}},
		{"MissingHyphen", "SKU005", "SKU-005", []string{"sku_format_normalized"}},
		{"AlreadyCanonical", "SKU-001", "SKU-001", nil},
		{"InternalSpacing", "SKU - 012", "SKU-012", []string{"sku_format_normalized"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, issues := NormalizeSKU(strPtr(tt.input))
			require.NotNil(t, value)
			assert.Equal(t, tt.want, *value)
			assert.ElementsMatch(t, tt.wantCodes, issueCodes(issues))
		})
	}
}

func TestNormalizeSKU_InvalidFormatIsKeptAndFlagged(t *testing.T) {
	value, issues := NormalizeSKU(strPtr("bad-sku"))

	require.NotNil(t, value)
	assert.Equal(t, "BAD-SKU", *value)
	assert.Equal(t, []string{"invalid_sku_format"}, issueCodes(issues))
}

func TestNormalizeSKU_MissingValuePassesThrough(t *testing.T) {
	value, issues := NormalizeSKU(nil)

	assert.Nil(t, value)
	assert.Equal(t, []string{"missing_value"}, issueCodes(issues))
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      *int
		wantCodes []string
	}{
		{"PlainInteger", "80", intPtr(80), nil},
		{"DecimalFormattedInteger", "80.00", intPtr(80), []string{"decimal_quantity_format"}},
		{"NonIntegral", "12.5", nil, []string{"non_integral_quantity"}},
		{"NonNumeric", "abc", nil, []string{"invalid_quantity"}},
		{"Negative", "-5", intPtr(-5), []string{"negative_quantity"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, issues := ParseQuantity(strPtr(tt.input))
			if tt.want == nil {
				assert.Nil(t, value)
			} else {
				require.NotNil(t, value)
				assert.Equal(t, *tt.want, *value)
			}
			assert.ElementsMatch(t, tt.wantCodes, issueCodes(issues))
		})
	}
}

// The same integer differing only in decimal formatting parses to the same
// value; only the decimal-formatted form is flagged.
func TestParseQuantity_DecimalFormattingDoesNotChangeValue(t *testing.T) {
	plain, plainIssues := ParseQuantity(strPtr("80"))
	decimal, decimalIssues := ParseQuantity(strPtr("80.00"))

	require.NotNil(t, plain)
	require.NotNil(t, decimal)
	assert.Equal(t, *plain, *decimal)
	assert.Empty(t, issueCodes(plainIssues))
	assert.Equal(t, []string{"decimal_quantity_format"}, issueCodes(decimalIssues))
}

func TestParseCountDate(t *testing.T) {
	jan15 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		input     string
		want      *time.Time
		wantCodes []string
	}{
		{"ISO", "2024-01-15", &jan15, nil},
		{"LegacyUS", "01/15/2024", &jan15, []string{"non_iso_date_format"}},
		{"Unparseable", "2024/15/01", nil, []string{"invalid_date"}},
		{"OutOfRangeMonth", "2024-13-01", nil, []string{"invalid_date"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, issues := ParseCountDate(strPtr(tt.input))
			if tt.want == nil {
				assert.Nil(t, value)
			} else {
				require.NotNil(t, value)
				assert.True(t, tt.want.Equal(*value))
			}
			assert.ElementsMatch(t, tt.wantCodes, issueCodes(issues))
		})
	}
}

func intPtr(i int) *int {
	return &i
}
