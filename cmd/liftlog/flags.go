package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/liftlog/internal/exercise"
	"github.com/at-ishikawa/liftlog/internal/report"
	"github.com/at-ishikawa/liftlog/internal/workout"
)

// BodyPartFlag collects body parts from a repeated or comma separated flag.
type BodyPartFlag []exercise.BodyPart

// Set implements pflag.Value.
func (f *BodyPartFlag) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		bp := exercise.BodyPart(strings.TrimSpace(part))
		if !bp.IsKnown() {
			return fmt.Errorf("invalid body part %q", bp)
		}
		*f = append(*f, bp)
	}
	return nil
}

// String implements pflag.Value.
func (f *BodyPartFlag) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, len(*f))
	for i, p := range *f {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}

// Type implements pflag.Value.
func (f *BodyPartFlag) Type() string {
	return "BodyPartFlag"
}

// PresetFlag is an export date range preset.
type PresetFlag string

// Set implements pflag.Value.
func (f *PresetFlag) Set(v string) error {
	for _, p := range report.Presets {
		if string(p) == v {
			*f = PresetFlag(v)
			return nil
		}
	}
	return fmt.Errorf("invalid value %q, valid values are %v", v, report.Presets)
}

// String implements pflag.Value.
func (f *PresetFlag) String() string {
	if f == nil {
		return ""
	}
	return string(*f)
}

// Type implements pflag.Value.
func (f *PresetFlag) Type() string {
	return "PresetFlag"
}

// SetFlag collects per-set detail written as "reps", "reps@weight" or "30s".
type SetFlag []workout.SetInput

// Set implements pflag.Value.
func (f *SetFlag) Set(v string) error {
	in := workout.SetInput{SetNumber: len(*f) + 1}
	if seconds, ok := strings.CutSuffix(v, "s"); ok {
		d, err := strconv.Atoi(seconds)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid set %q", v)
		}
		in.Duration = &d
		*f = append(*f, in)
		return nil
	}

	repsPart, weightPart, hasWeight := strings.Cut(v, "@")
	reps, err := strconv.Atoi(repsPart)
	if err != nil || reps < 0 {
		return fmt.Errorf("invalid set %q", v)
	}
	in.Reps = &reps
	if hasWeight {
		weight, err := strconv.ParseFloat(strings.TrimSuffix(weightPart, "kg"), 64)
		if err != nil || weight < 0 {
			return fmt.Errorf("invalid set %q", v)
		}
		in.Weight = &weight
	}
	*f = append(*f, in)
	return nil
}

// String implements pflag.Value.
func (f *SetFlag) String() string {
	if f == nil {
		return ""
	}
	sets := make([]string, len(*f))
	for i, s := range *f {
		switch {
		case s.Duration != nil:
			sets[i] = fmt.Sprintf("%ds", *s.Duration)
		case s.Weight != nil:
			sets[i] = fmt.Sprintf("%d@%s", *s.Reps, strconv.FormatFloat(*s.Weight, 'f', -1, 64))
		default:
			sets[i] = strconv.Itoa(*s.Reps)
		}
	}
	return strings.Join(sets, ",")
}

// Type implements pflag.Value.
func (f *SetFlag) Type() string {
	return "SetFlag"
}

var (
	_ pflag.Value = (*BodyPartFlag)(nil)
	_ pflag.Value = (*PresetFlag)(nil)
	_ pflag.Value = (*SetFlag)(nil)
)
