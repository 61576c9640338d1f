package util

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatGP renders a gp amount in compact in-game notation: 1.2K gp, 3.4M gp, 5.6B gp.
func FormatGP(value int64) string {
	switch {
	case value >= 1_000_000_000:
		return fmt.Sprintf("%.1fB gp", float64(value)/1_000_000_000)
	case value >= 1_000_000:
		return fmt.Sprintf("%.1fM gp", float64(value)/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("%.1fK gp", float64(value)/1_000)
	default:
		return fmt.Sprintf("%d gp", value)
	}
}

// FormatGrouped renders a gp amount with thousands separators: 1,234,567 gp.
func FormatGrouped(value int64) string {
	return humanize.Comma(value) + " gp"
}
