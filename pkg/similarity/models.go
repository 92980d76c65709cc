package similarity

import (
	"time"

	"gorm.io/datatypes"
)

type CaseDemographics struct {
	Age *float64 `json:"age,omitempty"`
	Sex string   `json:"sex,omitempty"`
}

type CaseMedication struct {
	Name string `json:"name"`
}

type CaseEncounter struct {
	EncounterID    string           `json:"encounter_id,omitempty"`
	Date           string           `json:"date,omitempty"`
	ChiefComplaint string           `json:"chief_complaint,omitempty"`
	Diagnoses      []string         `json:"diagnoses,omitempty"`
	Symptoms       []string         `json:"symptoms,omitempty"`
	Medications    []CaseMedication `json:"medications,omitempty"`
	NotesText      string           `json:"notes_text,omitempty"`
}

// CaseRecord is a historical patient used as a similarity reference. Records
// are read-only once loaded.
type CaseRecord struct {
	PatientID    string           `json:"patient_id"`
	Demographics CaseDemographics `json:"demographics"`
	Encounters   []CaseEncounter  `json:"encounters"`
}

type RankedMatch struct {
	Case    CaseRecord `json:"case"`
	Score   float64    `json:"score"`
	Reasons []string   `json:"reasons"`
}

// CaseRow is the persisted form of a CaseRecord.
type CaseRow struct {
	PatientID    string         `gorm:"primaryKey;column:patient_id"`
	Position     int            `gorm:"column:position;index"`
	Demographics datatypes.JSON `gorm:"column:demographics"`
	Encounters   datatypes.JSON `gorm:"column:encounters"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (CaseRow) TableName() string {
	return "case_records"
}
