package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"asc lowercase", "asc", "ASC"},
		{"asc uppercase", "ASC", "ASC"},
		{"asc with spaces", "  asc  ", "ASC"},
		{"desc", "desc", "DESC"},
		{"empty defaults to desc", "", "DESC"},
		{"garbage defaults to desc", "sideways", "DESC"},
		{"injection attempt defaults to desc", "asc; DROP TABLE customers", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"whitelisted field", "name", "name"},
		{"another whitelisted field", "number", "number"},
		{"empty falls back to default", "", "created_at"},
		{"unknown falls back to default", "secret_column", "created_at"},
		{"injection attempt falls back to default", "name; DROP TABLE customers", "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, PartnerSortFields, "created_at"))
		})
	}
}
