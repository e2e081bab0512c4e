package services

import (
	"fmt"
	"strings"

	"borough-recommender/models"
)

// Summarize renders the selected search parameters as the short text shown
// next to the form.
func Summarize(req models.Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Accommodation types: %s \n", strings.Join(req.Categories, ", "))
	fmt.Fprintf(&b, "Rent range: %s£ to %s£ per month.\n", formatRent(req.RentMin), formatRent(req.RentMax))
	b.WriteString("Preference ranking: \n\t")
	for i, g := range req.Ranking {
		if i > 0 {
			b.WriteString("\n\t")
		}
		fmt.Fprintf(&b, "%d. %s", i+1, g)
	}
	return b.String()
}

func formatRent(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
