// Package report renders statistics for sharing, printing and the terminal.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/at-ishikawa/liftlog/internal/statistics"
)

const divider = "────────────────────"

// ExportText renders the export in the plain-text share format.
func ExportText(data statistics.ExportData) string {
	stats := data.Stats
	lines := []string{
		"📋 Training log",
		fmt.Sprintf("%s ~ %s", slashDate(stats.StartDate), slashDate(stats.EndDate)),
		fmt.Sprintf("%d training days | %d sets in total", stats.TotalDays, stats.TotalSets),
		"",
	}

	for _, day := range data.DailyDetails {
		lines = append(lines,
			divider,
			fmt.Sprintf("📅 %s (%s)", slashDate(day.Date), day.DayOfWeek),
			divider,
		)
		for _, item := range day.Items {
			lines = append(lines, "• "+itemLine(item, " | "))
			if item.Notes != nil && *item.Notes != "" {
				lines = append(lines, "  └ "+*item.Notes)
			}
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func itemLine(item statistics.DailyDetailItem, sep string) string {
	line := fmt.Sprintf("%s%s%d sets × %d reps", item.ExerciseName, sep, item.Sets, item.Reps)
	if item.Weight != nil && *item.Weight > 0 {
		line += sep + strconv.FormatFloat(*item.Weight, 'f', -1, 64) + "kg"
	}
	return line
}

func slashDate(key string) string {
	return strings.ReplaceAll(key, "-", "/")
}
