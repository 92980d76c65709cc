package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLexiconHasCoreCategories(t *testing.T) {
	lex := Default()
	for _, category := range []Category{Symptoms, Conditions, Medications, Severity, BodyParts, Procedures, Investigations, FamilyTerms, HereditaryDiseases, SocialTerms} {
		if len(lex.Terms(category)) == 0 {
			t.Fatalf("expected terms for %s", category)
		}
	}
	if len(lex.Patterns(Severity)) == 0 {
		t.Fatal("expected severity patterns")
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	lex := Default()
	terms := lex.Terms(Symptoms)
	terms[0] = "mutated"
	if lex.Terms(Symptoms)[0] == "mutated" {
		t.Fatal("terms accessor leaked internal slice")
	}

	social := lex.Social()
	social.Industries["teacher"] = "mutated"
	if lex.Social().Industries["teacher"] == "mutated" {
		t.Fatal("social accessor leaked internal map")
	}
}

func TestPatternsAreCaseInsensitive(t *testing.T) {
	lex := Default()
	matched := false
	for _, re := range lex.Patterns(Symptoms) {
		if re.MatchString("PAIN IN Chest") {
			matched = true
		}
	}
	if !matched {
		t.Fatal("expected case-insensitive symptom pattern match")
	}
}

func TestNewRejectsEmptyAndBadPatterns(t *testing.T) {
	if _, err := New(Definition{}); !errors.Is(err, ErrEmptyLexicon) {
		t.Fatalf("expected ErrEmptyLexicon, got %v", err)
	}

	def := Definition{
		Terms:    map[Category][]string{Symptoms: {"pain"}},
		Patterns: map[Category][]string{Symptoms: {"("}},
	}
	if _, err := New(def); err == nil {
		t.Fatal("expected compile error for invalid pattern")
	}
}

func TestNewNormalizesTerms(t *testing.T) {
	lex, err := New(Definition{Terms: map[Category][]string{Symptoms: {" Cough ", "cough", ""}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	terms := lex.Terms(Symptoms)
	if len(terms) != 1 || terms[0] != "cough" {
		t.Fatalf("expected normalized single term, got %v", terms)
	}
}

func TestParseOverridesOnlyGivenCategories(t *testing.T) {
	content := []byte(`
terms:
  symptoms:
    - rash
    - itching
social:
  diet_types:
    - value: low-sodium
      terms: [low salt, low sodium]
`)
	lex, err := Parse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := lex.Terms(Symptoms); len(got) != 2 || got[0] != "rash" {
		t.Fatalf("expected overridden symptoms, got %v", got)
	}
	if len(lex.Terms(Conditions)) == 0 {
		t.Fatal("expected default conditions to survive the override")
	}
	if diet := lex.Social().DietTypes; len(diet) != 1 || diet[0].Value != "low-sodium" {
		t.Fatalf("expected overridden diet types, got %v", diet)
	}
	if len(lex.Social().Substances) == 0 {
		t.Fatal("expected default substances to survive the override")
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	lex, err := Load("")
	if err != nil || lex == nil {
		t.Fatalf("expected default lexicon, got %v", err)
	}

	lex, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if lex == nil || len(lex.Terms(Symptoms)) == 0 {
		t.Fatal("expected default lexicon alongside the error")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	if err := os.WriteFile(path, []byte("terms:\n  medications: [warfarin]\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	lex, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := lex.Terms(Medications); len(got) != 1 || got[0] != "warfarin" {
		t.Fatalf("expected warfarin only, got %v", got)
	}
}
