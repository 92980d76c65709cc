package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/synaptica-ai/scribe/pkg/extraction"
)

const scenario = "I've had chest pain for 2 days, severity 8 out of 10, taking metformin 500mg, no known allergies, my father had diabetes"

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestAggregator() *Aggregator {
	n := 0
	return NewAggregator(nil,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("session-%d", n)
		}),
	)
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func hasDuplicates(values []string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"doctor":     RoleDoctor,
		" Doctor ":   RoleDoctor,
		"Speaker 1":  RoleDoctor,
		"patient":    RolePatient,
		"speaker 2":  RolePatient,
		"nurse":      RoleUnknown,
		"":           RoleUnknown,
		"Speaker 3":  RoleUnknown,
	}
	for label, want := range cases {
		if got := ParseRole(label); got != want {
			t.Errorf("ParseRole(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestEmptyUtteranceOnlyAppendsLogEntry(t *testing.T) {
	agg := newTestAggregator()
	before := agg.Snapshot()

	update := agg.Update(Utterance{Text: "", Speaker: "patient", Timestamp: "2024-03-01T09:31:00Z"})

	after := update.Report
	if len(after.Conversation.PatientStatements) != 1 {
		t.Fatalf("expected one patient statement, got %d", len(after.Conversation.PatientStatements))
	}
	entry := after.Conversation.PatientStatements[0]
	if !entry.Content.IsEmpty() || entry.Type != EntryPatientStatement || entry.Timestamp != "2024-03-01T09:31:00Z" {
		t.Fatalf("unexpected log entry: %+v", entry)
	}

	after.Conversation = before.Conversation
	if fmt.Sprintf("%+v", after) != fmt.Sprintf("%+v", before) {
		t.Fatalf("substantive fields changed:\nbefore %+v\nafter  %+v", before, after)
	}
	if len(update.Scores) != 0 {
		t.Fatalf("expected no scores, got %v", update.Scores)
	}
	sources := agg.Sources()
	if len(sources) != 1 || sources[0].Field != FieldUtterance || sources[0].Value != "" || sources[0].Source.Confidence != 0 {
		t.Fatalf("expected a single empty audit entry, got %+v", sources)
	}
}

func TestEmptyTimestampDefaultsToClock(t *testing.T) {
	agg := newTestAggregator()
	update := agg.Update(Utterance{Text: "I feel dizzy", Speaker: "doctor"})
	got := update.Report.Conversation.DoctorNotes[0].Timestamp
	if got != "2024-03-01T09:30:00Z" {
		t.Fatalf("expected clock timestamp, got %q", got)
	}
}

func TestUnionMonotonicity(t *testing.T) {
	agg := newTestAggregator()
	first := agg.Update(Utterance{Text: "I have a headache and I take aspirin, I have asthma", Speaker: "patient"})
	second := agg.Update(Utterance{Text: "Now there is nausea too", Speaker: "patient"})

	for _, s := range first.Report.Patient.Symptoms {
		if !contains(second.Report.Patient.Symptoms, s) {
			t.Fatalf("symptom %q regressed: %v", s, second.Report.Patient.Symptoms)
		}
	}
	for _, m := range first.Report.Patient.CurrentMedications {
		if !contains(second.Report.Patient.CurrentMedications, m) {
			t.Fatalf("medication %q regressed: %v", m, second.Report.Patient.CurrentMedications)
		}
	}
	if !contains(second.Report.Patient.MedicalHistory, "asthma") {
		t.Fatalf("condition regressed: %v", second.Report.Patient.MedicalHistory)
	}
	if !contains(second.Report.Patient.Symptoms, "nausea") {
		t.Fatalf("expected nausea to be added: %v", second.Report.Patient.Symptoms)
	}
}

func TestPresentingComplaintIsWriteOnce(t *testing.T) {
	agg := newTestAggregator()
	agg.Update(Utterance{Text: "I have chest pain", Speaker: "patient"})
	update := agg.Update(Utterance{Text: "I have a headache", Speaker: "patient"})

	complaint := update.Report.Patient.PresentingComplaint
	if !strings.Contains(complaint, "chest pain") {
		t.Fatalf("expected first complaint, got %q", complaint)
	}
	if strings.Contains(complaint, "headache") {
		t.Fatalf("complaint overwritten: %q", complaint)
	}
	if !contains(update.Report.Patient.Symptoms, "headache") {
		t.Fatalf("headache should still be a symptom: %v", update.Report.Patient.Symptoms)
	}
}

func TestRepeatedUtteranceDoesNotDuplicate(t *testing.T) {
	agg := newTestAggregator()
	agg.Update(Utterance{Text: scenario, Speaker: "patient"})
	update := agg.Update(Utterance{Text: scenario, Speaker: "patient"})

	p := update.Report.Patient
	if hasDuplicates(p.Symptoms) || hasDuplicates(p.CurrentMedications) || hasDuplicates(p.Allergies) {
		t.Fatalf("duplicates found: symptoms=%v meds=%v allergies=%v", p.Symptoms, p.CurrentMedications, p.Allergies)
	}
	if len(p.FamilyHistory.Relationships) != 1 {
		t.Fatalf("expected one relationship, got %v", p.FamilyHistory.Relationships)
	}
	if len(update.Report.Conversation.PatientStatements) != 2 {
		t.Fatalf("expected both statements logged, got %d", len(update.Report.Conversation.PatientStatements))
	}
}

func TestScenarioPopulatesReport(t *testing.T) {
	agg := newTestAggregator()
	update := agg.Update(Utterance{Text: scenario, Speaker: "patient", Timestamp: "2024-03-01T09:31:00Z"})

	if !contains(update.Analysis.Severity, "8 out of 10") {
		t.Fatalf("expected severity, got %v", update.Analysis.Severity)
	}
	p := update.Report.Patient
	if !contains(p.Symptoms, "chest pain") {
		t.Fatalf("expected chest pain, got %v", p.Symptoms)
	}
	if !contains(p.CurrentMedications, "metformin") {
		t.Fatalf("expected metformin, got %v", p.CurrentMedications)
	}
	if !contains(p.Allergies, "no known allergies") {
		t.Fatalf("expected allergy status, got %v", p.Allergies)
	}
	if !contains(p.FamilyHistory.HereditaryDiseases, "diabetes") {
		t.Fatalf("expected diabetes, got %v", p.FamilyHistory.HereditaryDiseases)
	}
	want := extraction.Relationship{Member: "father", Condition: "diabetes"}
	if len(p.FamilyHistory.Relationships) == 0 || p.FamilyHistory.Relationships[0] != want {
		t.Fatalf("expected father/diabetes relationship, got %v", p.FamilyHistory.Relationships)
	}
	if update.Scores[extraction.FieldSymptoms] != 1.0 {
		t.Fatalf("expected symptom score 1.0, got %v", update.Scores[extraction.FieldSymptoms])
	}

	sources := agg.Sources()
	if len(sources) != len(update.Analysis.Populated()) {
		t.Fatalf("expected one source per populated field, got %d", len(sources))
	}
	first := sources[0]
	if first.Field != extraction.FieldSymptoms || first.Source.Speaker != "patient" || first.Source.Context != scenario {
		t.Fatalf("unexpected audit entry: %+v", first)
	}
}

func TestDoctorUtteranceFeedsClinicalAndDischarge(t *testing.T) {
	agg := newTestAggregator()
	update := agg.Update(Utterance{
		Text:    "You have hypertension, blood pressure 150/95 mmHg. Take it with food, avoid alcohol and follow up in 2 weeks.",
		Speaker: "Speaker 1",
	})

	r := update.Report
	if update.Role != RoleDoctor || len(r.Conversation.DoctorNotes) != 1 {
		t.Fatalf("expected doctor note, role=%q notes=%d", update.Role, len(r.Conversation.DoctorNotes))
	}
	if !contains(r.Clinical.Diagnosis, "hypertension") {
		t.Fatalf("expected diagnosis, got %v", r.Clinical.Diagnosis)
	}
	if r.Clinical.Examination["bloodPressure"] != "150/95 mmHg" {
		t.Fatalf("expected examination vitals, got %v", r.Clinical.Examination)
	}
	if r.Patient.VitalSigns.BloodPressure != "150/95 mmHg" {
		t.Fatalf("expected patient vitals, got %+v", r.Patient.VitalSigns)
	}
	if r.Discharge.Condition != "hypertension" {
		t.Fatalf("expected discharge condition, got %q", r.Discharge.Condition)
	}
	if !contains(r.Discharge.FollowUp, "follow up in 2 weeks") {
		t.Fatalf("expected follow up, got %v", r.Discharge.FollowUp)
	}
	if !contains(r.Discharge.Instructions, "take it with food") {
		t.Fatalf("expected instructions, got %v", r.Discharge.Instructions)
	}
	if !contains(r.Discharge.Restrictions, "avoid alcohol") {
		t.Fatalf("expected restriction, got %v", r.Discharge.Restrictions)
	}
	if len(r.Patient.MedicalHistory) != 0 {
		t.Fatalf("doctor conditions should not be patient history: %v", r.Patient.MedicalHistory)
	}
}

func TestDischargeConditionIsLastWriteWins(t *testing.T) {
	agg := newTestAggregator()
	agg.Update(Utterance{Text: "This looks like bronchitis", Speaker: "doctor"})
	update := agg.Update(Utterance{Text: "Actually it is pneumonia", Speaker: "doctor"})

	if update.Report.Discharge.Condition != "pneumonia" {
		t.Fatalf("expected latest condition, got %q", update.Report.Discharge.Condition)
	}
	if !contains(update.Report.Clinical.Diagnosis, "bronchitis") {
		t.Fatalf("diagnosis list should keep earlier entries: %v", update.Report.Clinical.Diagnosis)
	}
}

func TestUnknownSpeakerStillMerges(t *testing.T) {
	agg := newTestAggregator()
	update := agg.Update(Utterance{Text: "She has a fever and a cough", Speaker: "nurse"})

	if update.Role != RoleUnknown {
		t.Fatalf("expected unknown role, got %q", update.Role)
	}
	c := update.Report.Conversation
	if len(c.DoctorNotes) != 0 || len(c.PatientStatements) != 0 {
		t.Fatalf("unknown speaker should not be logged: %+v", c)
	}
	if !contains(update.Report.Patient.Symptoms, "cough") {
		t.Fatalf("expected generic merge, got %v", update.Report.Patient.Symptoms)
	}
	if update.Report.Patient.Demographics.Gender != "female" {
		t.Fatalf("expected gender merge, got %+v", update.Report.Patient.Demographics)
	}
	if agg.Sources()[0].Source.Speaker != "nurse" {
		t.Fatalf("expected raw speaker label in audit, got %+v", agg.Sources()[0])
	}
}

func TestSocialHistoryKeepsKnownValues(t *testing.T) {
	agg := newTestAggregator()
	agg.Update(Utterance{Text: "I go running daily and I used to smoke", Speaker: "patient"})
	update := agg.Update(Utterance{Text: "I also enjoy swimming", Speaker: "patient"})

	social := update.Report.Patient.SocialHistory
	if social.Exercise.Frequency != "daily" {
		t.Fatalf("frequency regressed: %+v", social.Exercise)
	}
	if !contains(social.Exercise.Activities, "running") || !contains(social.Exercise.Activities, "swimming") {
		t.Fatalf("expected both activities, got %v", social.Exercise.Activities)
	}
	if social.SubstanceUse.Status != "former" {
		t.Fatalf("substance status regressed: %+v", social.SubstanceUse)
	}
}

func TestResetMintsNewSession(t *testing.T) {
	agg := newTestAggregator()
	firstID := agg.Snapshot().SessionID
	agg.Update(Utterance{Text: scenario, Speaker: "patient"})

	agg.Reset()

	snap := agg.Snapshot()
	if snap.SessionID == firstID || snap.SessionID == "" {
		t.Fatalf("expected new session id, got %q (was %q)", snap.SessionID, firstID)
	}
	if snap.HasPatientData() || len(snap.Patient.CurrentMedications) != 0 || len(snap.Conversation.PatientStatements) != 0 {
		t.Fatalf("expected empty report after reset, got %+v", snap)
	}
	if len(agg.Scores()) != 0 || len(agg.Sources()) != 0 {
		t.Fatalf("expected scores and sources cleared")
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	agg := newTestAggregator()
	agg.Update(Utterance{Text: "I have a headache", Speaker: "patient"})

	snap := agg.Snapshot()
	snap.Patient.Symptoms[0] = "mutated"
	snap.Clinical.Examination["heartRate"] = "1 bpm"

	again := agg.Snapshot()
	if again.Patient.Symptoms[0] == "mutated" {
		t.Fatalf("snapshot shares symptom storage with aggregator")
	}
	if _, ok := again.Clinical.Examination["heartRate"]; ok {
		t.Fatalf("snapshot shares examination map with aggregator")
	}
}
