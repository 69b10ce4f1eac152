// Package statistics aggregates workout sessions into counts, progress and export summaries.
// Every day boundary is computed in the given time zone.
package statistics

import (
	"math"
	"time"

	"github.com/at-ishikawa/liftlog/internal/exercise"
	"github.com/at-ishikawa/liftlog/internal/workout"
)

const (
	dateKeyLayout = "2006-01-02"

	// DefaultProgressLimit is the number of sessions ExerciseProgress covers by default.
	DefaultProgressLimit = 10
	// BodyPartWindowDays is the look-back window of BodyPartDistribution.
	BodyPartWindowDays = 28
)

// DateKey returns t as YYYY-MM-DD in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateKeyLayout)
}

// StartOfDay returns midnight of t's day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay returns the last nanosecond of t's day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	return StartOfDay(t, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// WeekStart returns Sunday 00:00 of the week containing now.
func WeekStart(now time.Time, loc *time.Location) time.Time {
	day := StartOfDay(now, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// MonthStart returns the first day of now's month at 00:00.
func MonthStart(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}

// DayCount is the number of sessions on one weekday.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Overview holds the dashboard counts.
type Overview struct {
	ThisWeekCount          int        `json:"thisWeekCount"`
	ThisMonthCount         int        `json:"thisMonthCount"`
	TotalCount             int        `json:"totalCount"`
	AverageDifficulty      float64    `json:"averageDifficulty"`
	DifficultyDistribution [5]int     `json:"difficultyDistribution"`
	WeeklyWorkouts         []DayCount `json:"weeklyWorkouts"`
}

// CalculateOverview counts sessions of this week and month, and summarizes difficulty.
// WeeklyWorkouts lists this week's sessions per day from Sunday to Saturday.
func CalculateOverview(sessions []workout.Session, now time.Time, loc *time.Location) Overview {
	weekStart := WeekStart(now, loc)
	monthStart := MonthStart(now, loc)

	var overview Overview
	var daily [7]int
	totalDifficulty, difficultyCount := 0, 0
	for _, s := range sessions {
		date := s.Date.In(loc)
		if !date.Before(weekStart) {
			overview.ThisWeekCount++
			daily[date.Weekday()]++
		}
		if !date.Before(monthStart) {
			overview.ThisMonthCount++
		}
		if s.Difficulty != nil && *s.Difficulty >= 1 && *s.Difficulty <= 5 {
			totalDifficulty += *s.Difficulty
			difficultyCount++
			overview.DifficultyDistribution[*s.Difficulty-1]++
		}
	}

	overview.TotalCount = len(sessions)
	if difficultyCount > 0 {
		overview.AverageDifficulty = float64(totalDifficulty) / float64(difficultyCount)
	}
	overview.WeeklyWorkouts = make([]DayCount, 7)
	for i := range daily {
		overview.WeeklyWorkouts[i] = DayCount{Day: shortWeekday(time.Weekday(i)), Count: daily[i]}
	}
	return overview
}

// ProgressPoint is one session on an exercise's progress chart.
type ProgressPoint struct {
	SessionID int64     `json:"sessionId"`
	Date      time.Time `json:"date"`
	MaxWeight float64   `json:"maxWeight"`
	TotalReps int       `json:"totalReps"`
	TotalSets int       `json:"totalSets"`
}

// CalculateExerciseProgress turns the latest sessions of an exercise (newest first) into
// points ordered oldest first. Sessions without set rows use their own weight, reps and set count.
func CalculateExerciseProgress(sessions []workout.Session, sets []workout.Set) []ProgressPoint {
	bySession := groupSets(sets)
	points := make([]ProgressPoint, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		point := ProgressPoint{SessionID: s.ID, Date: s.Date}
		sessionSets := bySession[s.ID]
		if len(sessionSets) == 0 {
			point.MaxWeight = s.WeightKg()
			point.TotalReps = s.RepsPerSet() * s.Sets()
			point.TotalSets = s.Sets()
		} else {
			for _, set := range sessionSets {
				point.MaxWeight = math.Max(point.MaxWeight, floatValue(set.Weight))
				point.TotalReps += intValue(set.Reps)
			}
			point.TotalSets = len(sessionSets)
		}
		points = append(points, point)
	}
	return points
}

// TrendPoint is one session on the progress trend chart.
type TrendPoint struct {
	Date         string  `json:"date"`
	MaxWeight    float64 `json:"maxWeight"`
	Volume       float64 `json:"volume"`
	Estimated1RM float64 `json:"estimated1RM"`
}

// EstimateOneRepMax applies the Epley formula. It returns 0 unless weight and reps are positive.
func EstimateOneRepMax(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	return weight * (1 + float64(reps)/30)
}

// CalculateProgressTrend computes max weight, volume and the best estimated 1RM of each session
// (oldest first). Without set rows the volume is weight × reps × set count.
func CalculateProgressTrend(sessions []workout.Session, sets []workout.Set, loc *time.Location) []TrendPoint {
	bySession := groupSets(sets)
	points := make([]TrendPoint, 0, len(sessions))
	for _, s := range sessions {
		maxWeight := s.WeightKg()
		volume := 0.0
		best := 0.0

		if sessionSets := bySession[s.ID]; len(sessionSets) > 0 {
			for _, set := range sessionSets {
				weight := floatValue(set.Weight)
				reps := intValue(set.Reps)
				maxWeight = math.Max(maxWeight, weight)
				volume += weight * float64(reps)
				best = math.Max(best, EstimateOneRepMax(weight, reps))
			}
		} else {
			setCount := s.Sets()
			if setCount == 0 {
				setCount = 1
			}
			volume = s.WeightKg() * float64(s.RepsPerSet()) * float64(setCount)
			best = EstimateOneRepMax(s.WeightKg(), s.RepsPerSet())
		}

		points = append(points, TrendPoint{
			Date:         DateKey(s.Date, loc),
			MaxWeight:    maxWeight,
			Volume:       volume,
			Estimated1RM: math.Round(best*10) / 10,
		})
	}
	return points
}

// BodyPartStat is the number of distinct training days of a body part.
type BodyPartStat struct {
	BodyPart     exercise.BodyPart `json:"bodyPart"`
	Label        string            `json:"label"`
	Color        string            `json:"color"`
	TrainingDays int               `json:"trainingDays"`
}

// BodyPartWindowStart returns the first instant counted by BodyPartDistribution.
func BodyPartWindowStart(now time.Time, loc *time.Location) time.Time {
	return StartOfDay(now, loc).AddDate(0, 0, -BodyPartWindowDays)
}

// CalculateBodyPartDistribution counts distinct days per body part within the window ending at now.
// Every known body part is present in display order, including untrained ones.
func CalculateBodyPartDistribution(rows []workout.BodyPartDate, now time.Time, loc *time.Location) []BodyPartStat {
	start := BodyPartWindowStart(now, loc)
	days := make(map[exercise.BodyPart]map[string]struct{})
	for _, row := range rows {
		if row.Date.Before(start) {
			continue
		}
		if days[row.BodyPart] == nil {
			days[row.BodyPart] = make(map[string]struct{})
		}
		days[row.BodyPart][DateKey(row.Date, loc)] = struct{}{}
	}

	stats := make([]BodyPartStat, 0, len(exercise.BodyParts))
	for _, info := range exercise.BodyParts {
		stats = append(stats, BodyPartStat{
			BodyPart:     info.Key,
			Label:        info.Label,
			Color:        info.Color,
			TrainingDays: len(days[info.Key]),
		})
	}
	return stats
}

func groupSets(sets []workout.Set) map[int64][]workout.Set {
	grouped := make(map[int64][]workout.Set)
	for _, set := range sets {
		grouped[set.SessionID] = append(grouped[set.SessionID], set)
	}
	return grouped
}

func shortWeekday(d time.Weekday) string {
	return d.String()[:3]
}

func floatValue(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func intValue(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
