package services

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"employee-stats/models"
)

// dimensionTitles are the report headings per dimension.
var dimensionTitles = map[models.Dimension]string{
	models.DimensionDepartment:  "Department Distribution",
	models.DimensionSite:        "Site Distribution",
	models.DimensionDirectorate: "Directorate Distribution",
	models.DimensionGrouping:    "Grouping Distribution",
}

// PrintReport writes a terminal summary of r to w.
func PrintReport(w io.Writer, r *models.StatsResult) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  STATISTIC PROCESSOR\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Rows parsed      : \033[1m%d\033[0m\n", r.TotalParsedRows)
	fmt.Fprintf(w, "  Records resolved : \033[1m%d\033[0m\n", r.TotalResolvedRows)
	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "  Malformed rows   : \033[1;31m%d\033[0m\n", len(r.Warnings))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Winner\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	block := r.Winner.Block()
	for _, f := range models.WinnerFields {
		fmt.Fprintf(w, "  %-13s : %s\n", f.Label, block[f.Key])
	}
	if r.Winner.Found && r.Winner.Rank > 1 {
		fmt.Fprintf(w, "  (rank %d; higher ranks had no employee record)\n", r.Winner.Rank)
	}
	if !r.Winner.Found && r.Winner.DisplayName != "" {
		fmt.Fprintf(w, "  Rank one name : %s\n", r.Winner.DisplayName)
	}
	fmt.Fprintln(w)

	for _, d := range models.Dimensions {
		fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", dimensionTitles[d])
		fmt.Fprintf(w, "  %s\n", thin)
		dist := r.Distributions[d]
		if len(dist) == 0 {
			fmt.Fprintf(w, "  No data\n\n")
			continue
		}
		for _, e := range dist {
			fmt.Fprintf(w, "  %-30s %5d (%s)\n", truncate(e.Label, 28), e.Count, e.Percentage)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)
}

// truncate shortens s to max runes, ending in "...".
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}
