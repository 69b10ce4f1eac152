package datasync

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	exercisesFile = "exercises.yml"
	sessionsFile  = "sessions.yml"
	menusFile     = "menus.yml"
)

// ExerciseRecord is an exercise keyed by its name.
type ExerciseRecord struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Inactive    bool     `yaml:"inactive,omitempty"`
	BodyParts   []string `yaml:"body_parts,omitempty"`
}

// SetRecord is one set of a session.
type SetRecord struct {
	SetNumber int      `yaml:"set_number"`
	Reps      *int     `yaml:"reps,omitempty"`
	Weight    *float64 `yaml:"weight,omitempty"`
	Duration  *int     `yaml:"duration,omitempty"`
}

// SessionRecord is a session keyed by its exercise name and date.
type SessionRecord struct {
	Exercise     string      `yaml:"exercise"`
	Date         time.Time   `yaml:"date"`
	Weight       *float64    `yaml:"weight,omitempty"`
	Reps         *int        `yaml:"reps,omitempty"`
	SetCount     *int        `yaml:"set_count,omitempty"`
	Duration     *int        `yaml:"duration,omitempty"`
	Difficulty   *int        `yaml:"difficulty,omitempty"`
	IsBodyweight bool        `yaml:"is_bodyweight,omitempty"`
	Notes        *string     `yaml:"notes,omitempty"`
	Sets         []SetRecord `yaml:"sets,omitempty"`
}

// MenuItemRecord is one exercise of a menu with its goal.
type MenuItemRecord struct {
	Exercise       string  `yaml:"exercise"`
	TargetSets     *int    `yaml:"target_sets,omitempty"`
	TargetReps     *int    `yaml:"target_reps,omitempty"`
	TargetDuration *int    `yaml:"target_duration,omitempty"`
	TargetText     *string `yaml:"target_text,omitempty"`
}

// MenuRecord is a menu keyed by its name.
type MenuRecord struct {
	Name            string           `yaml:"name"`
	Description     string           `yaml:"description,omitempty"`
	LastCompletedAt *time.Time       `yaml:"last_completed_at,omitempty"`
	Items           []MenuItemRecord `yaml:"items,omitempty"`
}

// Snapshot is the whole data set in its portable form.
type Snapshot struct {
	Exercises []ExerciseRecord `yaml:"exercises"`
	Sessions  []SessionRecord  `yaml:"sessions"`
	Menus     []MenuRecord     `yaml:"menus"`
}

// WriteDir writes the snapshot to exercises.yml, sessions.yml and menus.yml in dir.
func WriteDir(dir string, snapshot *Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	files := []struct {
		name string
		data interface{}
	}{
		{exercisesFile, snapshot.Exercises},
		{sessionsFile, snapshot.Sessions},
		{menusFile, snapshot.Menus},
	}
	for _, f := range files {
		if err := writeYAML(filepath.Join(dir, f.name), f.data); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}

// ReadDir reads a snapshot written by WriteDir. Missing files are treated as empty.
func ReadDir(dir string) (*Snapshot, error) {
	var snapshot Snapshot
	files := []struct {
		name string
		dest interface{}
	}{
		{exercisesFile, &snapshot.Exercises},
		{sessionsFile, &snapshot.Sessions},
		{menusFile, &snapshot.Menus},
	}
	for _, f := range files {
		if err := readYAML(filepath.Join(dir, f.name), f.dest); err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
	}
	return &snapshot, nil
}

// Marshal encodes the snapshot as a single YAML document.
func Marshal(snapshot *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(snapshot); err != nil {
		return nil, fmt.Errorf("enc.Encode() > %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("enc.Close() > %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a document produced by Marshal.
func Unmarshal(data []byte) (*Snapshot, error) {
	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal() > %w", err)
	}
	return &snapshot, nil
}

func writeYAML(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}

func readYAML(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, dest)
}
