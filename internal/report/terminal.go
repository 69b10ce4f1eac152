package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/liftlog/internal/exercise"
	"github.com/at-ishikawa/liftlog/internal/menu"
	"github.com/at-ishikawa/liftlog/internal/progress"
	"github.com/at-ishikawa/liftlog/internal/statistics"
	"github.com/at-ishikawa/liftlog/internal/workout"
)

// Printer writes human readable listings to a terminal.
type Printer struct {
	w      io.Writer
	loc    *time.Location
	bold   *color.Color
	faint  *color.Color
	green  *color.Color
	yellow *color.Color
}

// NewPrinter returns a Printer writing to w and showing dates in loc.
func NewPrinter(w io.Writer, loc *time.Location) *Printer {
	if loc == nil {
		loc = time.UTC
	}
	return &Printer{
		w:      w,
		loc:    loc,
		bold:   color.New(color.Bold),
		faint:  color.New(color.Faint),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
	}
}

// Exercises lists exercises with their body parts.
func (p *Printer) Exercises(exercises []exercise.Exercise) {
	if len(exercises) == 0 {
		p.faint.Fprintln(p.w, "No exercises")
		return
	}
	for _, e := range exercises {
		labels := make([]string, len(e.BodyParts))
		for i, part := range e.BodyParts {
			labels[i] = part.Info().Label
		}
		p.bold.Fprintf(p.w, "%4d  %s", e.ID, e.Name)
		if len(labels) > 0 {
			p.faint.Fprintf(p.w, "  [%s]", strings.Join(labels, ", "))
		}
		if !e.IsActive {
			p.yellow.Fprint(p.w, "  (inactive)")
		}
		fmt.Fprintln(p.w)
	}
}

// Sessions lists sessions with their exercise names.
func (p *Printer) Sessions(sessions []workout.Session, names map[int64]string) {
	if len(sessions) == 0 {
		p.faint.Fprintln(p.w, "No workouts")
		return
	}
	for _, s := range sessions {
		name, ok := names[s.ExerciseID]
		if !ok {
			name = statistics.UnknownExerciseName
		}
		fmt.Fprintf(p.w, "%4d  %s  ", s.ID, s.Date.In(p.loc).Format("2006-01-02 15:04"))
		p.bold.Fprint(p.w, name)
		fmt.Fprintf(p.w, "  %s", workout.Summary(s))
		if s.Difficulty != nil {
			p.faint.Fprintf(p.w, "  difficulty %d/5", *s.Difficulty)
		}
		fmt.Fprintln(p.w)
		if s.Notes != nil && *s.Notes != "" {
			p.faint.Fprintf(p.w, "      %s\n", *s.Notes)
		}
	}
}

// Sets lists the per-set detail of a session.
func (p *Printer) Sets(sets []workout.Set) {
	for _, set := range sets {
		fmt.Fprintf(p.w, "  set %d:", set.SetNumber)
		if set.Weight != nil {
			fmt.Fprintf(p.w, " %s", workout.FormatWeight(*set.Weight))
		}
		if set.Reps != nil {
			fmt.Fprintf(p.w, " × %d reps", *set.Reps)
		}
		if set.Duration != nil {
			fmt.Fprintf(p.w, " %s", workout.FormatDuration(*set.Duration))
		}
		fmt.Fprintln(p.w)
	}
}

// Menus lists menus; menus in active are marked as in progress.
func (p *Printer) Menus(menus []menu.Menu, active map[int64]bool) {
	if len(menus) == 0 {
		p.faint.Fprintln(p.w, "No menus")
		return
	}
	for _, m := range menus {
		p.bold.Fprintf(p.w, "%4d  %s", m.ID, m.Name)
		if active[m.ID] {
			p.yellow.Fprint(p.w, "  (in progress)")
		}
		if m.LastCompletedAt != nil {
			p.faint.Fprintf(p.w, "  last done %s", m.LastCompletedAt.In(p.loc).Format("2006-01-02"))
		}
		fmt.Fprintln(p.w)
		if m.Description != nil && *m.Description != "" {
			p.faint.Fprintf(p.w, "      %s\n", *m.Description)
		}
	}
}

// Items lists menu items in order. completed may be nil when no session is in progress.
func (p *Printer) Items(items []menu.ItemWithExercise, completed func(exerciseID int64) bool) {
	if len(items) == 0 {
		p.faint.Fprintln(p.w, "No exercises in this menu")
		return
	}
	for i, item := range items {
		mark := " "
		if completed != nil && completed(item.ExerciseID) {
			mark = p.green.Sprint("✓")
		}
		fmt.Fprintf(p.w, "%s %2d. %s", mark, i+1, menu.FormatWithGoal(item.ExerciseName, item.Item))
		p.faint.Fprintf(p.w, "  (item %d)\n", item.ID)
	}
}

// Summary prints the reconciled state of a menu session.
func (p *Printer) Summary(summary *progress.Summary, names map[int64]string) {
	p.bold.Fprintf(p.w, "Completed %d/%d exercises in %s\n",
		summary.CompletedCount, summary.TotalItems, progress.FormatElapsed(summary.Elapsed))
	fmt.Fprintf(p.w, "Total: %d sets, %d reps\n", summary.TotalSets, summary.TotalReps)
	for _, s := range summary.Sessions {
		fmt.Fprintf(p.w, "  • %s  %s\n", names[s.ExerciseID], workout.Summary(s))
	}
}

// Overview prints the dashboard counts.
func (p *Printer) Overview(o statistics.Overview) {
	p.bold.Fprintln(p.w, "Overview")
	fmt.Fprintf(p.w, "  This week:  %d\n", o.ThisWeekCount)
	fmt.Fprintf(p.w, "  This month: %d\n", o.ThisMonthCount)
	fmt.Fprintf(p.w, "  Total:      %d\n", o.TotalCount)
	fmt.Fprintf(p.w, "  Avg difficulty: %.1f\n", o.AverageDifficulty)
	for i, count := range o.DifficultyDistribution {
		fmt.Fprintf(p.w, "    %d: %s %d\n", i+1, bar(count), count)
	}
	p.bold.Fprintln(p.w, "This week")
	for _, day := range o.WeeklyWorkouts {
		fmt.Fprintf(p.w, "  %s %s %d\n", day.Day, bar(day.Count), day.Count)
	}
}

// Progress prints the progress points of an exercise.
func (p *Printer) Progress(points []statistics.ProgressPoint) {
	if len(points) == 0 {
		p.faint.Fprintln(p.w, "No workouts")
		return
	}
	for _, point := range points {
		fmt.Fprintf(p.w, "%s  max %s  %d reps  %d sets\n",
			statistics.DateKey(point.Date, p.loc), workout.FormatWeight(point.MaxWeight), point.TotalReps, point.TotalSets)
	}
}

// Trend prints the trend points of an exercise.
func (p *Printer) Trend(points []statistics.TrendPoint) {
	if len(points) == 0 {
		p.faint.Fprintln(p.w, "No workouts")
		return
	}
	for _, point := range points {
		fmt.Fprintf(p.w, "%s  max %s  volume %s  est. 1RM %s\n",
			point.Date, workout.FormatWeight(point.MaxWeight), workout.FormatWeight(point.Volume), workout.FormatWeight(point.Estimated1RM))
	}
}

// BodyParts prints training days per body part.
func (p *Printer) BodyParts(stats []statistics.BodyPartStat) {
	for _, stat := range stats {
		fmt.Fprintf(p.w, "%-10s %s %d\n", stat.Label, bar(stat.TrainingDays), stat.TrainingDays)
	}
}

func bar(n int) string {
	return strings.Repeat("█", n)
}
