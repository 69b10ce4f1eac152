package report

import (
	"fmt"
	"time"

	"github.com/at-ishikawa/liftlog/internal/statistics"
)

// Preset is a named export range.
type Preset string

const (
	PresetToday     Preset = "today"
	Preset7Days     Preset = "7d"
	Preset30Days    Preset = "30d"
	PresetThisMonth Preset = "this-month"
	PresetLastMonth Preset = "last-month"
)

// Presets lists every preset in display order.
var Presets = []Preset{PresetToday, Preset7Days, Preset30Days, PresetThisMonth, PresetLastMonth}

// Range returns the first and last day covered by p as of now.
func (p Preset) Range(now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	today := statistics.StartOfDay(now, loc)
	switch p {
	case PresetToday:
		return today, today, nil
	case Preset7Days:
		return today.AddDate(0, 0, -6), today, nil
	case Preset30Days:
		return today.AddDate(0, 0, -29), today, nil
	case PresetThisMonth:
		return statistics.MonthStart(now, loc), today, nil
	case PresetLastMonth:
		thisMonth := statistics.MonthStart(now, loc)
		return thisMonth.AddDate(0, -1, 0), thisMonth.AddDate(0, 0, -1), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown preset %q, must be one of %v", p, Presets)
	}
}
