package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		name  string
		cents int64
		want  string
	}{
		{"zero", 0, "0.00"},
		{"under one unit", 99, "0.99"},
		{"no grouping", 123456, "1,234.56"},
		{"grand total example", 3750000, "37,500.00"},
		{"millions", 123456789012, "1,234,567,890.12"},
		{"exact thousand", 100000, "1,000.00"},
		{"negative", -250050, "-2,500.50"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatAmount(tc.cents))
		})
	}
}
