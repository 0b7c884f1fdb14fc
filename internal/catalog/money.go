// AngelaMos | 2026
// money.go

package catalog

import (
	"fmt"
)

// FormatPrice renders an amount of minor currency units as a dollar
// string: FormatPrice(12345) == "$123.45". Negative amounts carry a
// leading sign: FormatPrice(-105) == "-$1.05".
func FormatPrice(minorUnits int64) string {
	sign := ""
	if minorUnits < 0 {
		sign = "-"
		minorUnits = -minorUnits
	}
	return fmt.Sprintf("%s$%d.%02d", sign, minorUnits/100, minorUnits%100)
}
