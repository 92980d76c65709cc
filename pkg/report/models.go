package report

import (
	"strings"

	"github.com/synaptica-ai/scribe/pkg/extraction"
)

type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
	RoleUnknown Role = "unknown"
)

// ParseRole maps a transcription speaker label to a role. Diarized labels
// "Speaker 1" and "Speaker 2" are treated as doctor and patient.
func ParseRole(label string) Role {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "doctor", "speaker 1":
		return RoleDoctor
	case "patient", "speaker 2":
		return RolePatient
	default:
		return RoleUnknown
	}
}

const (
	EntryDoctorNote       = "doctor_note"
	EntryPatientStatement = "patient_statement"
)

// FieldUtterance is the audit field recorded for an utterance that yielded
// no data, so every utterance leaves a trace.
const FieldUtterance = "utterance"

type LogEntry struct {
	Timestamp string                    `json:"timestamp"`
	Content   extraction.AnalysisResult `json:"content"`
	Type      string                    `json:"type"`
}

type Patient struct {
	Demographics        extraction.Demographics  `json:"demographics"`
	PresentingComplaint string                   `json:"presentingComplaint"`
	Symptoms            []string                 `json:"symptoms"`
	MedicalHistory      []string                 `json:"medicalHistory"`
	CurrentMedications  []string                 `json:"currentMedications"`
	Allergies           []string                 `json:"allergies"`
	VitalSigns          extraction.VitalSigns    `json:"vitalSigns"`
	FamilyHistory       extraction.FamilyHistory `json:"familyHistory"`
	SocialHistory       extraction.SocialHistory `json:"socialHistory"`
}

type Clinical struct {
	Examination    map[string]string `json:"examination"`
	Investigations []string          `json:"investigations"`
	Diagnosis      []string          `json:"diagnosis"`
	Treatment      []string          `json:"treatment"`
	Procedures     []string          `json:"procedures"`
}

type Conversation struct {
	DoctorNotes       []LogEntry `json:"doctorNotes"`
	PatientStatements []LogEntry `json:"patientStatements"`
}

type Discharge struct {
	Condition    string   `json:"condition"`
	Medications  []string `json:"medications"`
	Instructions []string `json:"instructions"`
	FollowUp     []string `json:"followUp"`
	Restrictions []string `json:"restrictions"`
}

// Report is the cumulative clinical document for one session.
type Report struct {
	SessionID    string       `json:"sessionId"`
	CreatedAt    string       `json:"timestamp"`
	Patient      Patient      `json:"patient"`
	Clinical     Clinical     `json:"clinical"`
	Conversation Conversation `json:"conversation"`
	Discharge    Discharge    `json:"discharge"`
}

func newReport(sessionID, createdAt string) *Report {
	return &Report{
		SessionID: sessionID,
		CreatedAt: createdAt,
		Patient: Patient{
			Symptoms:           []string{},
			MedicalHistory:     []string{},
			CurrentMedications: []string{},
			Allergies:          []string{},
			FamilyHistory: extraction.FamilyHistory{
				HereditaryDiseases: []string{},
				FamilyMembers:      []string{},
				Relationships:      []extraction.Relationship{},
			},
			SocialHistory: extraction.EmptySocialHistory(),
		},
		Clinical: Clinical{
			Examination:    map[string]string{},
			Investigations: []string{},
			Diagnosis:      []string{},
			Treatment:      []string{},
			Procedures:     []string{},
		},
		Conversation: Conversation{
			DoctorNotes:       []LogEntry{},
			PatientStatements: []LogEntry{},
		},
		Discharge: Discharge{
			Medications:  []string{},
			Instructions: []string{},
			FollowUp:     []string{},
			Restrictions: []string{},
		},
	}
}

// HasPatientData reports whether anything substantive has been captured.
// Export callers can use it to gate on "has the patient said anything yet".
func (r Report) HasPatientData() bool {
	return r.Patient.PresentingComplaint != "" || len(r.Patient.Symptoms) > 0
}

type Source struct {
	Speaker    string  `json:"speaker"`
	Timestamp  string  `json:"timestamp"`
	Confidence float64 `json:"confidence"`
	Context    string  `json:"context"`
}

// DataSource is an audit entry linking one field update to its utterance.
type DataSource struct {
	Field  string      `json:"field"`
	Value  interface{} `json:"value"`
	Source Source      `json:"source"`
}
