package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/liftlog/internal/exercise"
	"github.com/at-ishikawa/liftlog/internal/workout"
)

// UnknownExerciseName labels sessions whose exercise no longer exists.
const UnknownExerciseName = "Unknown exercise"

// ExerciseExportStat totals one exercise over the export range.
type ExerciseExportStat struct {
	ExerciseID   int64  `json:"exerciseId"`
	ExerciseName string `json:"exerciseName"`
	TotalSets    int    `json:"totalSets"`
	TotalReps    int    `json:"totalReps"`
}

// ExportStats summarizes the export range.
type ExportStats struct {
	StartDate     string               `json:"startDate"`
	EndDate       string               `json:"endDate"`
	TotalDays     int                  `json:"totalDays"`
	TotalSets     int                  `json:"totalSets"`
	ExerciseStats []ExerciseExportStat `json:"exerciseStats"`
}

// DailyDetailItem is one exercise at one weight on a day.
type DailyDetailItem struct {
	ExerciseName string   `json:"exerciseName"`
	Sets         int      `json:"sets"`
	Reps         int      `json:"reps"`
	Weight       *float64 `json:"weight,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// DailyDetail lists what was trained on one day.
type DailyDetail struct {
	Date      string            `json:"date"`
	DayOfWeek string            `json:"dayOfWeek"`
	Items     []DailyDetailItem `json:"items"`
}

// ExportData is everything the text, markdown and PDF exports render.
type ExportData struct {
	Stats        ExportStats   `json:"stats"`
	DailyDetails []DailyDetail `json:"dailyDetails"`
}

// ExportRange widens [start, end] to whole days in loc.
func ExportRange(start, end time.Time, loc *time.Location) (time.Time, time.Time) {
	return StartOfDay(start, loc), EndOfDay(end, loc)
}

type dayBucket struct {
	date  time.Time
	keys  []string
	items map[string]*DailyDetailItem
}

func (b *dayBucket) add(key string, item DailyDetailItem) {
	if existing, ok := b.items[key]; ok {
		existing.Sets += item.Sets
		existing.Reps += item.Reps
		if (existing.Notes == nil || *existing.Notes == "") && item.Notes != nil && *item.Notes != "" {
			existing.Notes = item.Notes
		}
		return
	}
	b.keys = append(b.keys, key)
	b.items[key] = &item
}

type weightGroup struct {
	weight *float64
	sets   int
	reps   int
}

// BuildExport summarizes sessions (newest first) between start and end.
// Totals count distinct days and sets; per-exercise stats are sorted by sets, most first.
// Daily details are newest first and group each day's sessions by exercise and weight.
func BuildExport(exercises []exercise.Exercise, sessions []workout.Session, sets []workout.Set, start, end time.Time, loc *time.Location) ExportData {
	names := make(map[int64]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}
	nameOf := func(id int64) string {
		if name, ok := names[id]; ok {
			return name
		}
		return UnknownExerciseName
	}
	bySession := groupSets(sets)

	data := ExportData{
		Stats: ExportStats{
			StartDate:     DateKey(start, loc),
			EndDate:       DateKey(end, loc),
			ExerciseStats: []ExerciseExportStat{},
		},
		DailyDetails: []DailyDetail{},
	}

	uniqueDays := make(map[string]struct{})
	var exerciseOrder []int64
	exerciseStats := make(map[int64]*ExerciseExportStat)
	days := make(map[string]*dayBucket)

	for _, s := range sessions {
		dateKey := DateKey(s.Date, loc)
		uniqueDays[dateKey] = struct{}{}
		sessionSets := bySession[s.ID]

		setCount := len(sessionSets)
		if setCount == 0 {
			setCount = s.Sets()
		}
		repsCount := 0
		for _, set := range sessionSets {
			repsCount += intValue(set.Reps)
		}
		if repsCount == 0 {
			repsCount = s.RepsPerSet()
		}
		data.Stats.TotalSets += setCount

		if stat, ok := exerciseStats[s.ExerciseID]; ok {
			stat.TotalSets += setCount
			stat.TotalReps += repsCount
		} else {
			exerciseOrder = append(exerciseOrder, s.ExerciseID)
			exerciseStats[s.ExerciseID] = &ExerciseExportStat{
				ExerciseID:   s.ExerciseID,
				ExerciseName: nameOf(s.ExerciseID),
				TotalSets:    setCount,
				TotalReps:    repsCount,
			}
		}

		bucket, ok := days[dateKey]
		if !ok {
			bucket = &dayBucket{date: s.Date.In(loc), items: make(map[string]*DailyDetailItem)}
			days[dateKey] = bucket
		}

		if len(sessionSets) > 0 {
			var groups []*weightGroup
			for _, set := range sessionSets {
				var group *weightGroup
				for _, g := range groups {
					if sameWeight(g.weight, set.Weight) {
						group = g
						break
					}
				}
				if group == nil {
					group = &weightGroup{weight: set.Weight}
					groups = append(groups, group)
				}
				group.sets++
				group.reps += intValue(set.Reps)
			}
			for _, g := range groups {
				bucket.add(itemKey(s.ExerciseID, g.weight), DailyDetailItem{
					ExerciseName: nameOf(s.ExerciseID),
					Sets:         g.sets,
					Reps:         g.reps,
					Weight:       g.weight,
					Notes:        s.Notes,
				})
			}
			continue
		}

		sessionSetCount := s.Sets()
		if sessionSetCount == 0 {
			sessionSetCount = 1
		}
		bucket.add(itemKey(s.ExerciseID, s.Weight), DailyDetailItem{
			ExerciseName: nameOf(s.ExerciseID),
			Sets:         sessionSetCount,
			Reps:         s.RepsPerSet(),
			Weight:       s.Weight,
			Notes:        s.Notes,
		})
	}

	data.Stats.TotalDays = len(uniqueDays)
	for _, id := range exerciseOrder {
		data.Stats.ExerciseStats = append(data.Stats.ExerciseStats, *exerciseStats[id])
	}
	sort.SliceStable(data.Stats.ExerciseStats, func(i, j int) bool {
		return data.Stats.ExerciseStats[i].TotalSets > data.Stats.ExerciseStats[j].TotalSets
	})

	dateKeys := make([]string, 0, len(days))
	for key := range days {
		dateKeys = append(dateKeys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dateKeys)))
	for _, key := range dateKeys {
		bucket := days[key]
		detail := DailyDetail{
			Date:      key,
			DayOfWeek: shortWeekday(bucket.date.Weekday()),
			Items:     make([]DailyDetailItem, 0, len(bucket.keys)),
		}
		for _, k := range bucket.keys {
			detail.Items = append(detail.Items, *bucket.items[k])
		}
		data.DailyDetails = append(data.DailyDetails, detail)
	}
	return data
}

func sameWeight(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func itemKey(exerciseID int64, weight *float64) string {
	if weight == nil {
		return fmt.Sprintf("%d-null", exerciseID)
	}
	return fmt.Sprintf("%d-%g", exerciseID, *weight)
}
