package extraction

import (
	"reflect"
	"testing"

	"github.com/synaptica-ai/scribe/pkg/lexicon"
)

const scenario = "I've had chest pain for 2 days, severity 8 out of 10, taking metformin 500mg, no known allergies, my father had diabetes"

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func TestAnalyzeScenarioUtterance(t *testing.T) {
	result := NewAnalyzer(nil).Analyze(scenario)

	if !contains(result.Symptoms, "chest pain") {
		t.Fatalf("expected chest pain in symptoms, got %v", result.Symptoms)
	}
	if !contains(result.Severity, "8 out of 10") {
		t.Fatalf("expected severity score, got %v", result.Severity)
	}
	if !contains(result.Medications, "metformin") {
		t.Fatalf("expected metformin, got %v", result.Medications)
	}
	if !contains(result.Onset, "for 2 days") {
		t.Fatalf("expected onset, got %v", result.Onset)
	}
	if !contains(result.FamilyHistory.HereditaryDiseases, "diabetes") {
		t.Fatalf("expected diabetes in hereditary diseases, got %v", result.FamilyHistory.HereditaryDiseases)
	}
	want := Relationship{Member: "father", Condition: "diabetes"}
	if len(result.FamilyHistory.Relationships) != 1 || result.FamilyHistory.Relationships[0] != want {
		t.Fatalf("expected %v, got %v", want, result.FamilyHistory.Relationships)
	}
	if !reflect.DeepEqual(result.Allergies, []string{"no known allergies"}) {
		t.Fatalf("expected no known allergies, got %v", result.Allergies)
	}
}

func TestListExtractorsOrderByFirstOccurrence(t *testing.T) {
	a := NewAnalyzer(nil)
	got := a.ExtractSymptoms("Nausea since morning and now a headache, more nausea")
	// "headache" starts before its own "ache" substring.
	want := []string{"nausea", "headache", "ache"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestListExtractorsDeduplicate(t *testing.T) {
	a := NewAnalyzer(nil)
	got := a.ExtractMedications("aspirin, more aspirin, and ASPIRIN again")
	if !reflect.DeepEqual(got, []string{"aspirin"}) {
		t.Fatalf("expected single aspirin, got %v", got)
	}
}

func TestListExtractorsReturnEmptyNotNil(t *testing.T) {
	a := NewAnalyzer(nil)
	for name, got := range map[string][]string{
		"symptoms":       a.ExtractSymptoms(""),
		"conditions":     a.ExtractConditions("nothing relevant"),
		"procedures":     a.ExtractProcedures(""),
		"investigations": a.ExtractInvestigations(""),
		"allergies":      a.ExtractAllergies(""),
	} {
		if got == nil || len(got) != 0 {
			t.Fatalf("%s: expected empty non-nil list, got %#v", name, got)
		}
	}
}

func TestSymptomPatterns(t *testing.T) {
	a := NewAnalyzer(nil)
	got := a.ExtractSymptoms("There is Pain in Knee and a sore throat")
	for _, want := range []string{"pain in knee", "sore throat"} {
		if !contains(got, want) {
			t.Fatalf("expected %q in %v", want, got)
		}
	}
}

func TestMedicationPatterns(t *testing.T) {
	a := NewAnalyzer(nil)
	got := a.ExtractMedications("She was prescribed lisinopril and takes 20mg atorvastatin")
	for _, want := range []string{"prescribed lisinopril", "20mg atorvastatin"} {
		if !contains(got, want) {
			t.Fatalf("expected %q in %v", want, got)
		}
	}
}

func TestProceduresAndInvestigations(t *testing.T) {
	a := NewAnalyzer(nil)
	text := "We will order a blood test and an ECG, then maybe a CT scan"
	procedures := a.ExtractProcedures(text)
	if !contains(procedures, "blood test") || !contains(procedures, "ct") {
		t.Fatalf("unexpected procedures %v", procedures)
	}
	investigations := a.ExtractInvestigations(text)
	want := []string{"blood test", "ecg", "ct scan"}
	if !reflect.DeepEqual(investigations, want) {
		t.Fatalf("expected %v, got %v", want, investigations)
	}
}

func TestAllergiesUseCaptureGroup(t *testing.T) {
	a := NewAnalyzer(nil)
	got := a.ExtractAllergies("I'm allergic to penicillin and have an allergy to latex")
	if !reflect.DeepEqual(got, []string{"penicillin", "latex"}) {
		t.Fatalf("unexpected allergies %v", got)
	}

	cases := map[string][]string{
		"I have a penicillin allergy":                 {"penicillin"},
		"no known allergy":                            {},
		"I have a nut allergy and a shellfish allergy": {},
		"a drug allergy to sulfa":                     {"sulfa"},
		"no known allergies":                          {"no known allergies"},
	}
	for text, want := range cases {
		if got := a.ExtractAllergies(text); !reflect.DeepEqual(got, want) {
			t.Fatalf("%q: expected %v, got %v", text, want, got)
		}
	}
}

func TestCustomLexicon(t *testing.T) {
	lex, err := lexicon.New(lexicon.Definition{Terms: map[lexicon.Category][]string{lexicon.Symptoms: {"rash"}}})
	if err != nil {
		t.Fatalf("lexicon: %v", err)
	}
	a := NewAnalyzer(lex)
	if got := a.ExtractSymptoms("a rash and some pain"); !reflect.DeepEqual(got, []string{"rash"}) {
		t.Fatalf("expected only rash, got %v", got)
	}
	if got := a.ExtractConditions("diabetes"); len(got) != 0 {
		t.Fatalf("expected no conditions from custom lexicon, got %v", got)
	}
}

func TestEmptyTextProducesEmptyAnalysis(t *testing.T) {
	result := NewAnalyzer(nil).Analyze("")
	if !result.IsEmpty() {
		t.Fatalf("expected empty analysis, got populated fields %v", result.Populated())
	}
}

func TestPopulatedListsOnlyFieldsWithData(t *testing.T) {
	result := NewAnalyzer(nil).Analyze("I have a headache and I am 40 years old")
	var fields []string
	for _, fv := range result.Populated() {
		fields = append(fields, fv.Field)
	}
	want := []string{FieldSymptoms, FieldBodyParts, FieldDemographics}
	if !reflect.DeepEqual(fields, want) {
		t.Fatalf("expected %v, got %v", want, fields)
	}
}

func TestDischargePlanExtractors(t *testing.T) {
	a := NewAnalyzer(nil)
	text := "Take it with food, drink plenty of fluids, avoid heavy lifting and no driving. Follow up in 2 weeks."

	if got := a.ExtractInstructions(text); !reflect.DeepEqual(got, []string{"take it with food", "drink plenty of fluids"}) {
		t.Errorf("unexpected instructions %v", got)
	}
	if got := a.ExtractRestrictions(text); !reflect.DeepEqual(got, []string{"avoid heavy lifting", "no driving"}) {
		t.Errorf("unexpected restrictions %v", got)
	}
	if got := a.ExtractFollowUp(text); !reflect.DeepEqual(got, []string{"follow up in 2 weeks"}) {
		t.Errorf("unexpected follow-up %v", got)
	}
}
