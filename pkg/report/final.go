package report

import (
	"fmt"
	"time"

	"github.com/synaptica-ai/scribe/pkg/extraction"
	"github.com/synaptica-ai/scribe/pkg/terminology"
)

const (
	EncounterTypeOutpatient = "outpatient"
	PlaceholderUnknown      = "Unknown"
	PlaceholderPending      = "Pending"
)

type FinalDemographics struct {
	Age       *int     `json:"age"`
	Sex       *string  `json:"sex"`
	Race      *string  `json:"race"`
	Ethnicity *string  `json:"ethnicity"`
	HeightCM  *float64 `json:"height_cm"`
	WeightKG  *float64 `json:"weight_kg"`
	BMI       *float64 `json:"bmi"`
}

// Medication dose and route are not reliably stated in conversation, so
// they are always placeholders.
type Medication struct {
	Name      string  `json:"name"`
	Dose      string  `json:"dose"`
	Route     string  `json:"route"`
	Frequency string  `json:"frequency"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type LabResult struct {
	LOINCCode string `json:"loinc_code"`
	Name      string `json:"name"`
	Value     string `json:"value"`
	Units     string `json:"units"`
	Date      string `json:"date"`
}

type Encounter struct {
	EncounterID           string                   `json:"encounter_id"`
	Date                  string                   `json:"date"`
	ChiefComplaint        string                   `json:"chief_complaint"`
	EncounterType         string                   `json:"encounter_type"`
	Diagnoses             []string                 `json:"diagnoses"`
	DiagnosisCodes        map[string]string        `json:"diagnosis_codes"`
	Procedures            []string                 `json:"procedures"`
	Medications           []Medication             `json:"medications"`
	LabResults            []LabResult              `json:"lab_results"`
	VitalSigns            extraction.VitalSigns    `json:"vital_signs"`
	Symptoms              []string                 `json:"symptoms"`
	TreatmentPlan         []string                 `json:"treatment_plan"`
	FollowUp              []string                 `json:"follow_up"`
	DischargeInstructions []string                 `json:"discharge_instructions"`
	Allergies             []string                 `json:"allergies"`
	FamilyHistory         extraction.FamilyHistory `json:"family_history"`
	SocialHistory         extraction.SocialHistory `json:"social_history"`
}

// FinalReport is the export-ready projection of a Report.
type FinalReport struct {
	PatientID        string             `json:"patient_id"`
	Demographics     FinalDemographics  `json:"demographics"`
	Encounters       []Encounter        `json:"encounters"`
	ConfidenceScores map[string]float64 `json:"confidence_scores"`
	DataSources      []DataSource       `json:"data_sources"`
	LastUpdated      string             `json:"last_updated"`
	SessionID        string             `json:"session_id"`
}

type FinalOptions struct {
	Catalog terminology.Catalog
	Now     func() time.Time
}

// GenerateFinalReport builds a FinalReport from a snapshot. It never mutates
// its inputs. Patient and encounter ids are derived from the clock and are
// not guaranteed unique; every call mints new ones.
func GenerateFinalReport(r Report, scores map[string]float64, sources []DataSource, opts FinalOptions) FinalReport {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	ts := now().UTC()
	date := ts.Format("2006-01-02")
	r = r.Clone()

	encounter := Encounter{
		EncounterID:           timestampID("E", ts),
		Date:                  date,
		ChiefComplaint:        r.Patient.PresentingComplaint,
		EncounterType:         EncounterTypeOutpatient,
		Diagnoses:             r.Clinical.Diagnosis,
		DiagnosisCodes:        diagnosisCodes(opts.Catalog, r.Clinical.Diagnosis),
		Procedures:            r.Clinical.Procedures,
		Medications:           formatMedications(r.Patient.CurrentMedications, date),
		LabResults:            formatLabResults(opts.Catalog, r.Clinical.Investigations, date),
		VitalSigns:            r.Patient.VitalSigns,
		Symptoms:              r.Patient.Symptoms,
		TreatmentPlan:         r.Clinical.Treatment,
		FollowUp:              r.Discharge.FollowUp,
		DischargeInstructions: r.Discharge.Instructions,
		Allergies:             r.Patient.Allergies,
		FamilyHistory:         r.Patient.FamilyHistory,
		SocialHistory:         r.Patient.SocialHistory,
	}

	final := FinalReport{
		PatientID:        timestampID("P", ts),
		Demographics:     finalDemographics(r.Patient.Demographics),
		Encounters:       []Encounter{encounter},
		ConfidenceScores: make(map[string]float64, len(scores)),
		DataSources:      append([]DataSource{}, sources...),
		LastUpdated:      ts.Format(time.RFC3339Nano),
		SessionID:        r.SessionID,
	}
	for k, v := range scores {
		final.ConfidenceScores[k] = v
	}
	return final
}

func finalDemographics(d extraction.Demographics) FinalDemographics {
	out := FinalDemographics{}
	if d.Age != nil {
		age := *d.Age
		out.Age = &age
	}
	if d.Gender != "" {
		sex := d.Gender
		out.Sex = &sex
	}
	return out
}

func formatMedications(names []string, date string) []Medication {
	out := make([]Medication, 0, len(names))
	for _, name := range names {
		out = append(out, Medication{
			Name:      name,
			Dose:      PlaceholderUnknown,
			Route:     PlaceholderUnknown,
			Frequency: PlaceholderUnknown,
			StartDate: date,
		})
	}
	return out
}

func formatLabResults(catalog terminology.Catalog, investigations []string, date string) []LabResult {
	out := make([]LabResult, 0, len(investigations))
	for _, name := range investigations {
		out = append(out, LabResult{
			LOINCCode: catalog.LOINC(name),
			Name:      name,
			Value:     PlaceholderPending,
			Units:     PlaceholderUnknown,
			Date:      date,
		})
	}
	return out
}

func diagnosisCodes(catalog terminology.Catalog, diagnoses []string) map[string]string {
	out := make(map[string]string)
	for _, d := range diagnoses {
		if code, ok := catalog.ICD10(d); ok {
			out[d] = code
		}
	}
	return out
}

// timestampID mirrors the legacy id format: a prefix plus the last six
// digits of the millisecond clock.
func timestampID(prefix string, ts time.Time) string {
	return fmt.Sprintf("%s%06d", prefix, ts.UnixMilli()%1_000_000)
}
