// Package config loads household files: a YAML document describing the
// scenario's items as rows, validated and handed to the model's construct
// factory.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wealthpath/finsim/internal/model"
)

// File is the YAML shape of a household file.
type File struct {
	Scenario string      `yaml:"scenario"`
	EndYear  int         `yaml:"endYear"`
	Start    time.Time   `yaml:"start"`
	End      time.Time   `yaml:"end"`
	Items    []model.Row `yaml:"items"`
}

// Loader parses and validates household files.
type Loader struct{}

// NewLoader creates a new loader.
func NewLoader() *Loader { return &Loader{} }

// LoadFromFile reads a household file and builds the scenario it describes.
func (l *Loader) LoadFromFile(filename string) (*model.Scenario, *File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return l.Load(data)
}

// Load parses household YAML and builds the scenario.
func (l *Loader) Load(data []byte) (*model.Scenario, *File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := l.Validate(&f); err != nil {
		return nil, nil, fmt.Errorf("household validation failed: %w", err)
	}
	sc, err := model.BuildScenario(f.Scenario, f.Items, f.EndYear)
	if err != nil {
		return nil, nil, err
	}
	return sc, &f, nil
}

// Validate checks the file-level fields and every row before construction so
// errors surface with the offending row's name.
func (l *Loader) Validate(f *File) error {
	if f.Scenario == "" {
		f.Scenario = "base"
	}
	if f.EndYear == 0 {
		if f.End.IsZero() {
			return fmt.Errorf("endYear or end date is required")
		}
		f.EndYear = f.End.Year()
	}
	if len(f.Items) == 0 {
		return fmt.Errorf("at least one item row is required")
	}
	persons := 0
	for i, r := range f.Items {
		typ, err := model.ParseType(r.Type)
		if err != nil {
			return fmt.Errorf("item %d (%s): %w", i, r.Name, err)
		}
		if r.Name == "" {
			return fmt.Errorf("item %d: name is required", i)
		}
		if r.Start.IsZero() {
			return fmt.Errorf("item %d (%s): start date is required", i, r.Name)
		}
		if typ == model.TypePerson {
			persons++
			if r.Birth.IsZero() {
				return fmt.Errorf("person %q: birth date is required", r.Name)
			}
			if r.Sex == "" {
				return fmt.Errorf("person %q: sex is required", r.Name)
			}
		}
	}
	if persons == 0 {
		return fmt.Errorf("at least one person row (spouse1) is required")
	}
	return nil
}
