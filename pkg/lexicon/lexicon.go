package lexicon

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Category string

const (
	Symptoms           Category = "symptoms"
	Conditions         Category = "conditions"
	Medications        Category = "medications"
	Severity           Category = "severity"
	BodyParts          Category = "body_parts"
	Procedures         Category = "procedures"
	Investigations     Category = "investigations"
	FamilyTerms        Category = "family_terms"
	HereditaryDiseases Category = "hereditary_diseases"
	SocialTerms        Category = "social_terms"
	Allergies          Category = "allergies"
	NoKnownAllergies   Category = "no_known_allergies"
	Onset              Category = "onset"
	FollowUp           Category = "follow_up"
	Instructions       Category = "instructions"
	Restrictions       Category = "restrictions"
)

var ErrEmptyLexicon = errors.New("lexicon has no terms")

// Cue maps a categorical value to the phrases that signal it. Cues are
// evaluated in order and the first hit wins.
type Cue struct {
	Value string   `yaml:"value" json:"value"`
	Terms []string `yaml:"terms" json:"terms"`
}

type SocialDefinition struct {
	ExerciseFrequency  []Cue             `yaml:"exercise_frequency" json:"exercise_frequency"`
	ExerciseActivities []string          `yaml:"exercise_activities" json:"exercise_activities"`
	DietTypes          []Cue             `yaml:"diet_types" json:"diet_types"`
	DietRestrictions   []string          `yaml:"diet_restrictions" json:"diet_restrictions"`
	DietPreferences    []string          `yaml:"diet_preferences" json:"diet_preferences"`
	EmploymentStatus   []Cue             `yaml:"employment_status" json:"employment_status"`
	Occupations        []string          `yaml:"occupations" json:"occupations"`
	Industries         map[string]string `yaml:"industries" json:"industries"`
	Substances         []string          `yaml:"substances" json:"substances"`
	SubstanceStatus    []Cue             `yaml:"substance_status" json:"substance_status"`
}

// Definition is the serializable form of a Lexicon.
type Definition struct {
	Terms    map[Category][]string `yaml:"terms" json:"terms"`
	Patterns map[Category][]string `yaml:"patterns" json:"patterns"`
	Social   SocialDefinition      `yaml:"social" json:"social"`
}

// Lexicon is an immutable, compiled set of term lists and patterns. All
// accessors return copies so callers cannot mutate shared state.
type Lexicon struct {
	terms    map[Category][]string
	patterns map[Category][]*regexp.Regexp
	social   SocialDefinition
}

func New(def Definition) (*Lexicon, error) {
	lex := &Lexicon{
		terms:    make(map[Category][]string, len(def.Terms)),
		patterns: make(map[Category][]*regexp.Regexp, len(def.Patterns)),
		social:   cloneSocial(def.Social),
	}

	total := 0
	for category, terms := range def.Terms {
		normalized := normalizeTerms(terms)
		if len(normalized) == 0 {
			continue
		}
		lex.terms[category] = normalized
		total += len(normalized)
	}
	if total == 0 {
		return nil, ErrEmptyLexicon
	}

	for category, patterns := range def.Patterns {
		for _, pattern := range patterns {
			if strings.TrimSpace(pattern) == "" {
				continue
			}
			re, err := regexp.Compile(`(?i)` + pattern)
			if err != nil {
				return nil, fmt.Errorf("compiling %s pattern %q: %w", category, pattern, err)
			}
			lex.patterns[category] = append(lex.patterns[category], re)
		}
	}

	return lex, nil
}

// Default returns the built-in lexicon. It panics only if the built-in
// definition itself is broken.
func Default() *Lexicon {
	lex, err := New(DefaultDefinition())
	if err != nil {
		panic(fmt.Sprintf("default lexicon invalid: %v", err))
	}
	return lex
}

func (l *Lexicon) Terms(category Category) []string {
	return append([]string(nil), l.terms[category]...)
}

func (l *Lexicon) Patterns(category Category) []*regexp.Regexp {
	return append([]*regexp.Regexp(nil), l.patterns[category]...)
}

func (l *Lexicon) Social() SocialDefinition {
	return cloneSocial(l.social)
}

func normalizeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		normalized := strings.ToLower(strings.TrimSpace(term))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

func cloneCues(cues []Cue) []Cue {
	out := make([]Cue, 0, len(cues))
	for _, cue := range cues {
		out = append(out, Cue{Value: cue.Value, Terms: normalizeTerms(cue.Terms)})
	}
	return out
}

func cloneSocial(s SocialDefinition) SocialDefinition {
	industries := make(map[string]string, len(s.Industries))
	for job, industry := range s.Industries {
		industries[strings.ToLower(job)] = industry
	}
	return SocialDefinition{
		ExerciseFrequency:  cloneCues(s.ExerciseFrequency),
		ExerciseActivities: normalizeTerms(s.ExerciseActivities),
		DietTypes:          cloneCues(s.DietTypes),
		DietRestrictions:   normalizeTerms(s.DietRestrictions),
		DietPreferences:    normalizeTerms(s.DietPreferences),
		EmploymentStatus:   cloneCues(s.EmploymentStatus),
		Occupations:        normalizeTerms(s.Occupations),
		Industries:         industries,
		Substances:         normalizeTerms(s.Substances),
		SubstanceStatus:    cloneCues(s.SubstanceStatus),
	}
}
