package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"

	"github.com/at-ishikawa/liftlog/internal/statistics"
)

// ExportMarkdown renders the export as a markdown document.
func ExportMarkdown(data statistics.ExportData) string {
	var sb strings.Builder
	stats := data.Stats

	fmt.Fprintf(&sb, "# Training log %s ~ %s\n\n", slashDate(stats.StartDate), slashDate(stats.EndDate))
	fmt.Fprintf(&sb, "- Training days: %d\n", stats.TotalDays)
	fmt.Fprintf(&sb, "- Total sets: %d\n\n", stats.TotalSets)

	if len(stats.ExerciseStats) > 0 {
		sb.WriteString("## Exercises\n\n")
		sb.WriteString("| Exercise | Sets | Reps |\n")
		sb.WriteString("| --- | --- | --- |\n")
		for _, stat := range stats.ExerciseStats {
			fmt.Fprintf(&sb, "| %s | %d | %d |\n", stat.ExerciseName, stat.TotalSets, stat.TotalReps)
		}
		sb.WriteString("\n")
	}

	for _, day := range data.DailyDetails {
		fmt.Fprintf(&sb, "## %s (%s)\n\n", slashDate(day.Date), day.DayOfWeek)
		for _, item := range day.Items {
			fmt.Fprintf(&sb, "- %s\n", itemLine(item, ", "))
			if item.Notes != nil && *item.Notes != "" {
				fmt.Fprintf(&sb, "  - %s\n", *item.Notes)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// WriteMarkdown writes the markdown export to <dir>/<name>.md and returns its path.
func WriteMarkdown(dir, name string, data statistics.ExportData) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}
	path := filepath.Join(dir, name+".md")
	if err := os.WriteFile(path, []byte(ExportMarkdown(data)), 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

// ConvertMarkdownToPDF converts a markdown file to a PDF next to it and returns the PDF path.
func ConvertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
