package confidence

import (
	"math"
	"testing"

	"github.com/synaptica-ai/scribe/pkg/extraction"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScorePolicy(t *testing.T) {
	age := 40
	cases := []struct {
		name  string
		field string
		data  interface{}
		want  float64
	}{
		{"core list", extraction.FieldSymptoms, []string{"cough"}, 1.0},
		{"plain list", extraction.FieldSeverity, []string{"mild"}, 0.9},
		{"empty core list", extraction.FieldMedications, []string{}, 0.6},
		{"empty plain list", extraction.FieldBodyParts, []string{}, 0.5},
		{"record", extraction.FieldDemographics, extraction.Demographics{Age: &age}, 0.7},
		{"empty record", extraction.FieldVitalSigns, extraction.VitalSigns{}, 0.5},
		{"map", "examination", map[string]string{"heartRate": "70 bpm"}, 0.7},
		{"relationships", extraction.FieldFamilyHistory, []extraction.Relationship{{Member: "father", Condition: "diabetes"}}, 0.9},
		{"nil", extraction.FieldConditions, nil, 0.6},
		{"scalar", "notes", "free text", 0.5},
	}
	for _, tc := range cases {
		if got := Score(tc.field, tc.data); !almostEqual(got, tc.want) {
			t.Errorf("%s: expected %.2f, got %.2f", tc.name, tc.want, got)
		}
	}
}

func TestScoreStaysInBounds(t *testing.T) {
	inputs := []interface{}{
		nil, 0, -1, "", "x", []int{1, 2, 3}, []string{"a"}, map[string]int{"a": 1},
		struct{ A int }{A: 1}, &struct{ A int }{}, (*int)(nil), extraction.SocialHistory{},
		extraction.EmptySocialHistory(),
	}
	fields := []string{extraction.FieldSymptoms, extraction.FieldProcedures, "anything", ""}
	for _, field := range fields {
		for _, in := range inputs {
			got := Score(field, in)
			if got < 0 || got > 1 {
				t.Fatalf("score out of bounds for %q/%#v: %f", field, in, got)
			}
		}
	}
}

func TestScoresCoversPopulatedFields(t *testing.T) {
	analysis := extraction.NewAnalyzer(nil).Analyze("I have chest pain and take aspirin")
	scores := Scores(analysis)
	if !almostEqual(scores[extraction.FieldSymptoms], 1.0) {
		t.Fatalf("expected symptoms 1.0, got %v", scores)
	}
	if _, ok := scores[extraction.FieldConditions]; ok {
		t.Fatalf("did not expect a score for an empty field: %v", scores)
	}
}
