package exporter

import (
	"fmt"

	"idxstat/internal/returns"
)

// formatFloat formats a float64 value for tabular output with exactly 2
// decimal places, so values like 13.4 appear as 13.40
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatNullable renders an undefined value as an empty cell
func formatNullable(f returns.Float) string {
	if !f.Valid {
		return ""
	}
	return fmt.Sprintf("%.4f", f.Value)
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
