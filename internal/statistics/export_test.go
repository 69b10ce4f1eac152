package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/at-ishikawa/liftlog/internal/exercise"
	"github.com/at-ishikawa/liftlog/internal/workout"
)

func TestBuildExport(t *testing.T) {
	exercises := []exercise.Exercise{
		{ID: 1, Name: "Squat"},
		{ID: 2, Name: "Bench Press"},
	}
	heavy := stringPtr("felt heavy")
	sessions := []workout.Session{
		{ID: 10, ExerciseID: 2, Date: time.Date(2025, 3, 3, 18, 0, 0, 0, time.UTC), Weight: floatPtr(60), Reps: intPtr(8), SetCount: intPtr(3)},
		{ID: 11, ExerciseID: 1, Date: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), Notes: heavy},
		{ID: 12, ExerciseID: 1, Date: time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC), Weight: floatPtr(100), Reps: intPtr(5), SetCount: intPtr(2), Notes: stringPtr("")},
		{ID: 13, ExerciseID: 99, Date: time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC), Reps: intPtr(20)},
	}
	sets := []workout.Set{
		{SessionID: 11, SetNumber: 1, Weight: floatPtr(100), Reps: intPtr(5)},
		{SessionID: 11, SetNumber: 2, Weight: floatPtr(100), Reps: intPtr(5)},
		{SessionID: 11, SetNumber: 3, Weight: floatPtr(110), Reps: intPtr(3)},
	}
	start, end := ExportRange(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), time.UTC)

	got := BuildExport(exercises, sessions, sets, start, end, time.UTC)

	assert.Equal(t, ExportStats{
		StartDate: "2025-03-01",
		EndDate:   "2025-03-03",
		TotalDays: 2,
		TotalSets: 8,
		ExerciseStats: []ExerciseExportStat{
			{ExerciseID: 1, ExerciseName: "Squat", TotalSets: 5, TotalReps: 18},
			{ExerciseID: 2, ExerciseName: "Bench Press", TotalSets: 3, TotalReps: 8},
			{ExerciseID: 99, ExerciseName: UnknownExerciseName, TotalSets: 0, TotalReps: 20},
		},
	}, got.Stats)

	assert.Equal(t, []DailyDetail{
		{
			Date:      "2025-03-03",
			DayOfWeek: "Mon",
			Items: []DailyDetailItem{
				{ExerciseName: "Bench Press", Sets: 3, Reps: 8, Weight: floatPtr(60)},
				{ExerciseName: "Squat", Sets: 4, Reps: 15, Weight: floatPtr(100), Notes: heavy},
				{ExerciseName: "Squat", Sets: 1, Reps: 3, Weight: floatPtr(110), Notes: heavy},
			},
		},
		{
			Date:      "2025-03-01",
			DayOfWeek: "Sat",
			Items: []DailyDetailItem{
				{ExerciseName: UnknownExerciseName, Sets: 1, Reps: 20},
			},
		},
	}, got.DailyDetails)
}

func TestBuildExport_NotesFromLaterSession(t *testing.T) {
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	sessions := []workout.Session{
		{ID: 2, ExerciseID: 1, Date: day.Add(2 * time.Hour), Reps: intPtr(10), SetCount: intPtr(2), Notes: stringPtr("")},
		{ID: 1, ExerciseID: 1, Date: day.Add(time.Hour), Reps: intPtr(12), SetCount: intPtr(1), Notes: stringPtr("warm up")},
	}

	got := BuildExport([]exercise.Exercise{{ID: 1, Name: "Push-up"}}, sessions, nil, day, EndOfDay(day, time.UTC), time.UTC)

	assert.Equal(t, []DailyDetailItem{
		{ExerciseName: "Push-up", Sets: 3, Reps: 22, Notes: stringPtr("warm up")},
	}, got.DailyDetails[0].Items)
}

func TestBuildExport_Empty(t *testing.T) {
	loc := taipei(t)
	start, end := ExportRange(time.Date(2025, 3, 1, 0, 0, 0, 0, loc), time.Date(2025, 3, 7, 0, 0, 0, 0, loc), loc)

	got := BuildExport(nil, nil, nil, start, end, loc)

	assert.Equal(t, "2025-03-01", got.Stats.StartDate)
	assert.Equal(t, "2025-03-07", got.Stats.EndDate)
	assert.Zero(t, got.Stats.TotalDays)
	assert.NotNil(t, got.Stats.ExerciseStats)
	assert.NotNil(t, got.DailyDetails)
	assert.Empty(t, got.DailyDetails)
}
