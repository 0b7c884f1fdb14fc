// AngelaMos | 2026
// money_test.go

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name       string
		minorUnits int64
		want       string
	}{
		{"typical amount", 12345, "$123.45"},
		{"zero", 0, "$0.00"},
		{"single cent", 1, "$0.01"},
		{"whole dollars", 500, "$5.00"},
		{"cents pad to two digits", 10005, "$100.05"},
		{"negative amount", -105, "-$1.05"},
		{"negative whole dollars", -300, "-$3.00"},
		{"large amount", 123456789, "$1234567.89"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.minorUnits))
		})
	}
}
