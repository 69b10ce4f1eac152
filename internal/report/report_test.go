package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/liftlog/internal/exercise"
	"github.com/at-ishikawa/liftlog/internal/menu"
	"github.com/at-ishikawa/liftlog/internal/progress"
	"github.com/at-ishikawa/liftlog/internal/statistics"
	"github.com/at-ishikawa/liftlog/internal/workout"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func stringPtr(s string) *string  { return &s }

func sampleExport() statistics.ExportData {
	return statistics.ExportData{
		Stats: statistics.ExportStats{
			StartDate: "2025-03-01",
			EndDate:   "2025-03-07",
			TotalDays: 2,
			TotalSets: 9,
			ExerciseStats: []statistics.ExerciseExportStat{
				{ExerciseID: 1, ExerciseName: "Squat", TotalSets: 5, TotalReps: 25},
				{ExerciseID: 2, ExerciseName: "Push-up", TotalSets: 4, TotalReps: 60},
			},
		},
		DailyDetails: []statistics.DailyDetail{
			{
				Date:      "2025-03-06",
				DayOfWeek: "Thu",
				Items: []statistics.DailyDetailItem{
					{ExerciseName: "Squat", Sets: 5, Reps: 25, Weight: floatPtr(102.5), Notes: stringPtr("felt strong")},
				},
			},
			{
				Date:      "2025-03-02",
				DayOfWeek: "Sun",
				Items: []statistics.DailyDetailItem{
					{ExerciseName: "Push-up", Sets: 4, Reps: 60, Weight: floatPtr(0), Notes: stringPtr("")},
				},
			},
		},
	}
}

func TestExportText(t *testing.T) {
	want := `📋 Training log
2025/03/01 ~ 2025/03/07
2 training days | 9 sets in total

────────────────────
📅 2025/03/06 (Thu)
────────────────────
• Squat | 5 sets × 25 reps | 102.5kg
  └ felt strong

────────────────────
📅 2025/03/02 (Sun)
────────────────────
• Push-up | 4 sets × 60 reps
`
	assert.Equal(t, want, ExportText(sampleExport()))

	empty := ExportText(statistics.ExportData{Stats: statistics.ExportStats{StartDate: "2025-03-01", EndDate: "2025-03-01"}})
	assert.Equal(t, "📋 Training log\n2025/03/01 ~ 2025/03/01\n0 training days | 0 sets in total\n", empty)
}

func TestExportMarkdown(t *testing.T) {
	got := ExportMarkdown(sampleExport())

	assert.Contains(t, got, "# Training log 2025/03/01 ~ 2025/03/07\n")
	assert.Contains(t, got, "| Squat | 5 | 25 |\n| Push-up | 4 | 60 |\n")
	assert.Contains(t, got, "## 2025/03/06 (Thu)\n\n- Squat, 5 sets × 25 reps, 102.5kg\n  - felt strong\n")
	assert.Contains(t, got, "- Push-up, 4 sets × 60 reps\n\n")
}

func TestWriteMarkdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	path, err := WriteMarkdown(dir, "2025-03", sampleExport())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2025-03.md"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ExportMarkdown(sampleExport()), string(content))
}

func TestConvertMarkdownToPDF_RequiresMarkdown(t *testing.T) {
	_, err := ConvertMarkdownToPDF(filepath.Join(t.TempDir(), "report.txt"))
	assert.ErrorContains(t, err, ".md extension")

	_, err = ConvertMarkdownToPDF(filepath.Join(t.TempDir(), "missing.md"))
	assert.Error(t, err)
}

func TestPreset_Range(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)
	now := time.Date(2025, 3, 15, 21, 0, 0, 0, loc)
	day := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 0, 0, 0, 0, loc) }

	tests := []struct {
		preset    Preset
		wantStart time.Time
		wantEnd   time.Time
	}{
		{preset: PresetToday, wantStart: day(3, 15), wantEnd: day(3, 15)},
		{preset: Preset7Days, wantStart: day(3, 9), wantEnd: day(3, 15)},
		{preset: Preset30Days, wantStart: day(2, 14), wantEnd: day(3, 15)},
		{preset: PresetThisMonth, wantStart: day(3, 1), wantEnd: day(3, 15)},
		{preset: PresetLastMonth, wantStart: day(2, 1), wantEnd: day(2, 28)},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			start, end, err := tt.preset.Range(now, loc)
			require.NoError(t, err)
			assert.True(t, tt.wantStart.Equal(start), "start %s", start)
			assert.True(t, tt.wantEnd.Equal(end), "end %s", end)
		})
	}

	_, _, err = Preset("yesterday").Range(now, loc)
	assert.Error(t, err)
}

func TestPrinter(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	date := time.Date(2025, 3, 6, 9, 30, 0, 0, time.UTC)

	t.Run("exercises", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf, time.UTC).Exercises([]exercise.Exercise{
			{ID: 1, Name: "Squat", IsActive: true, BodyParts: []exercise.BodyPart{exercise.BodyPartLegs, exercise.BodyPartCore}},
			{ID: 2, Name: "Old press"},
		})
		assert.Equal(t, "   1  Squat  [Legs, Core]\n   2  Old press  (inactive)\n", buf.String())
	})

	t.Run("sessions", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf, time.UTC).Sessions([]workout.Session{
			{ID: 5, ExerciseID: 1, Date: date, Weight: floatPtr(60), Reps: intPtr(8), SetCount: intPtr(3), Difficulty: intPtr(4), Notes: stringPtr("good")},
			{ID: 6, ExerciseID: 9, Date: date, Duration: intPtr(90), SetCount: intPtr(2)},
		}, map[int64]string{1: "Bench Press"})
		assert.Equal(t, "   5  2025-03-06 09:30  Bench Press  60kg × 8 reps × 3 sets  difficulty 4/5\n"+
			"      good\n"+
			"   6  2025-03-06 09:30  Unknown exercise  1m 30s × 2 sets\n", buf.String())
	})

	t.Run("empty lists", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, nil)
		p.Exercises(nil)
		p.Sessions(nil, nil)
		p.Menus(nil, nil)
		p.Items(nil, nil)
		assert.Equal(t, "No exercises\nNo workouts\nNo menus\nNo exercises in this menu\n", buf.String())
	})

	t.Run("menus and items", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, time.UTC)
		p.Menus([]menu.Menu{
			{ID: 1, Name: "Leg day", Description: stringPtr("heavy"), LastCompletedAt: &date},
			{ID: 2, Name: "Push"},
		}, map[int64]bool{2: true})
		p.Items([]menu.ItemWithExercise{
			{Item: menu.Item{ID: 10, ExerciseID: 1, TargetSets: intPtr(3), TargetReps: intPtr(5)}, ExerciseName: "Squat"},
			{Item: menu.Item{ID: 11, ExerciseID: 2}, ExerciseName: "Lunge"},
		}, func(id int64) bool { return id == 1 })
		assert.Equal(t, "   1  Leg day  last done 2025-03-06\n"+
			"      heavy\n"+
			"   2  Push  (in progress)\n"+
			"✓  1. Squat (3 sets × 5 reps)  (item 10)\n"+
			"   2. Lunge  (item 11)\n", buf.String())
	})

	t.Run("summary", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf, time.UTC).Summary(&progress.Summary{
			Elapsed:        65 * time.Minute,
			CompletedCount: 1,
			TotalItems:     2,
			TotalSets:      3,
			TotalReps:      24,
			Sessions:       []workout.Session{{ExerciseID: 1, Weight: floatPtr(60), Reps: intPtr(8), SetCount: intPtr(3)}},
		}, map[int64]string{1: "Bench Press"})
		assert.Equal(t, "Completed 1/2 exercises in 1 h 5 min\nTotal: 3 sets, 24 reps\n  • Bench Press  60kg × 8 reps × 3 sets\n", buf.String())
	})

	t.Run("statistics", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, time.UTC)
		p.Progress([]statistics.ProgressPoint{{Date: date, MaxWeight: 62.5, TotalReps: 24, TotalSets: 3}})
		p.Trend([]statistics.TrendPoint{{Date: "2025-03-06", MaxWeight: 60, Volume: 1440, Estimated1RM: 76}})
		p.BodyParts([]statistics.BodyPartStat{{Label: "Legs", TrainingDays: 2}})
		assert.Equal(t, "2025-03-06  max 62.5kg  24 reps  3 sets\n"+
			"2025-03-06  max 60kg  volume 1440kg  est. 1RM 76kg\n"+
			"Legs       ██ 2\n", buf.String())
	})

	t.Run("overview", func(t *testing.T) {
		var buf bytes.Buffer
		NewPrinter(&buf, time.UTC).Overview(statistics.Overview{
			ThisWeekCount:          2,
			TotalCount:             2,
			AverageDifficulty:      3.5,
			DifficultyDistribution: [5]int{0, 0, 1, 1, 0},
			WeeklyWorkouts:         []statistics.DayCount{{Day: "Sun", Count: 2}},
		})
		assert.Contains(t, buf.String(), "  Avg difficulty: 3.5\n")
		assert.Contains(t, buf.String(), "    3: █ 1\n")
		assert.Contains(t, buf.String(), "  Sun ██ 2\n")
	})
}
