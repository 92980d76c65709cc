package lexicon

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML override file. Categories present in the file replace the
// built-in ones; everything else keeps its default. An empty path yields the
// default lexicon.
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Default(), err
	}
	return Parse(content)
}

func Parse(content []byte) (*Lexicon, error) {
	var override Definition
	if err := yaml.Unmarshal(content, &override); err != nil {
		return nil, err
	}
	return New(Merge(DefaultDefinition(), override))
}

func Merge(base, override Definition) Definition {
	out := Definition{
		Terms:    make(map[Category][]string, len(base.Terms)),
		Patterns: make(map[Category][]string, len(base.Patterns)),
		Social:   base.Social,
	}
	for category, terms := range base.Terms {
		out.Terms[category] = terms
	}
	for category, patterns := range base.Patterns {
		out.Patterns[category] = patterns
	}
	for category, terms := range override.Terms {
		if len(terms) > 0 {
			out.Terms[category] = terms
		}
	}
	for category, patterns := range override.Patterns {
		if len(patterns) > 0 {
			out.Patterns[category] = patterns
		}
	}

	s := override.Social
	if len(s.ExerciseFrequency) > 0 {
		out.Social.ExerciseFrequency = s.ExerciseFrequency
	}
	if len(s.ExerciseActivities) > 0 {
		out.Social.ExerciseActivities = s.ExerciseActivities
	}
	if len(s.DietTypes) > 0 {
		out.Social.DietTypes = s.DietTypes
	}
	if len(s.DietRestrictions) > 0 {
		out.Social.DietRestrictions = s.DietRestrictions
	}
	if len(s.DietPreferences) > 0 {
		out.Social.DietPreferences = s.DietPreferences
	}
	if len(s.EmploymentStatus) > 0 {
		out.Social.EmploymentStatus = s.EmploymentStatus
	}
	if len(s.Occupations) > 0 {
		out.Social.Occupations = s.Occupations
	}
	if len(s.Industries) > 0 {
		out.Social.Industries = s.Industries
	}
	if len(s.Substances) > 0 {
		out.Social.Substances = s.Substances
	}
	if len(s.SubstanceStatus) > 0 {
		out.Social.SubstanceStatus = s.SubstanceStatus
	}
	return out
}
