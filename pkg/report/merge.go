package report

import (
	"strings"

	"github.com/synaptica-ai/scribe/pkg/extraction"
)

// applyRole runs the speaker-specific part of a merge. Unknown roles are a
// no-op here; the generic merge still runs.
func applyRole(r *Report, role Role, analysis extraction.AnalysisResult, timestamp string) {
	switch role {
	case RoleDoctor:
		r.Conversation.DoctorNotes = append(r.Conversation.DoctorNotes, LogEntry{
			Timestamp: timestamp,
			Content:   analysis,
			Type:      EntryDoctorNote,
		})
		r.Clinical.Diagnosis = union(r.Clinical.Diagnosis, analysis.Conditions)
		for key, value := range analysis.VitalSigns.Map() {
			r.Clinical.Examination[key] = value
		}
		r.Discharge.Medications = union(r.Discharge.Medications, analysis.Medications)
		r.Discharge.Instructions = union(r.Discharge.Instructions, analysis.Instructions)
		r.Discharge.FollowUp = union(r.Discharge.FollowUp, analysis.FollowUp)
		r.Discharge.Restrictions = union(r.Discharge.Restrictions, analysis.Restrictions)
	case RolePatient:
		r.Conversation.PatientStatements = append(r.Conversation.PatientStatements, LogEntry{
			Timestamp: timestamp,
			Content:   analysis,
			Type:      EntryPatientStatement,
		})
		r.Patient.MedicalHistory = union(r.Patient.MedicalHistory, analysis.Conditions)
	}
}

// applyGeneric merges every populated field regardless of speaker. Lists are
// unions, presentingComplaint is write-once, discharge.condition is
// last-write-wins and records merge key by key.
func applyGeneric(r *Report, analysis extraction.AnalysisResult) {
	p := &r.Patient

	if p.PresentingComplaint == "" && len(analysis.Symptoms) > 0 {
		p.PresentingComplaint = strings.Join(analysis.Symptoms, ", ")
	}
	p.Symptoms = union(p.Symptoms, analysis.Symptoms)
	p.CurrentMedications = union(p.CurrentMedications, analysis.Medications)
	p.Allergies = union(p.Allergies, analysis.Allergies)
	mergeDemographics(&p.Demographics, analysis.Demographics)
	mergeVitals(&p.VitalSigns, analysis.VitalSigns)
	mergeFamily(&p.FamilyHistory, analysis.FamilyHistory)
	mergeSocial(&p.SocialHistory, analysis.SocialHistory)

	c := &r.Clinical
	c.Treatment = union(c.Treatment, analysis.Medications)
	c.Procedures = union(c.Procedures, analysis.Procedures)
	c.Investigations = union(c.Investigations, analysis.Investigations)

	if len(analysis.Conditions) > 0 {
		r.Discharge.Condition = strings.Join(analysis.Conditions, ", ")
	}
}

func mergeDemographics(dst *extraction.Demographics, src extraction.Demographics) {
	if src.Age != nil {
		age := *src.Age
		dst.Age = &age
	}
	if src.Gender != "" {
		dst.Gender = src.Gender
	}
}

func mergeVitals(dst *extraction.VitalSigns, src extraction.VitalSigns) {
	if src.BloodPressure != "" {
		dst.BloodPressure = src.BloodPressure
	}
	if src.HeartRate != "" {
		dst.HeartRate = src.HeartRate
	}
	if src.Temperature != "" {
		dst.Temperature = src.Temperature
	}
}

func mergeFamily(dst *extraction.FamilyHistory, src extraction.FamilyHistory) {
	dst.HereditaryDiseases = union(dst.HereditaryDiseases, src.HereditaryDiseases)
	dst.FamilyMembers = union(dst.FamilyMembers, src.FamilyMembers)
	for _, rel := range src.Relationships {
		if !hasRelationship(dst.Relationships, rel) {
			dst.Relationships = append(dst.Relationships, rel)
		}
	}
}

// mergeSocial merges field by field rather than replacing a whole
// subcategory: a classification is overwritten only when the new one is
// known, keyword lists are unioned even when the new classification is
// unknown, and occupation job and status update independently. A later
// utterance that mentions only part of a subcategory therefore never erases
// what an earlier one captured.
func mergeSocial(dst *extraction.SocialHistory, src extraction.SocialHistory) {
	if known(src.Exercise.Frequency) {
		dst.Exercise.Frequency = src.Exercise.Frequency
	}
	if src.Exercise.Duration != "" {
		dst.Exercise.Duration = src.Exercise.Duration
	}
	dst.Exercise.Activities = union(dst.Exercise.Activities, src.Exercise.Activities)

	if known(src.Diet.Type) {
		dst.Diet.Type = src.Diet.Type
	}
	dst.Diet.Restrictions = union(dst.Diet.Restrictions, src.Diet.Restrictions)
	dst.Diet.Preferences = union(dst.Diet.Preferences, src.Diet.Preferences)

	if known(src.Occupation.Status) {
		dst.Occupation.Status = src.Occupation.Status
	}
	if known(src.Occupation.Job) {
		dst.Occupation.Job = src.Occupation.Job
		dst.Occupation.Industry = src.Occupation.Industry
	}

	if known(src.SubstanceUse.Status) {
		dst.SubstanceUse.Status = src.SubstanceUse.Status
	}
	dst.SubstanceUse.Substances = union(dst.SubstanceUse.Substances, src.SubstanceUse.Substances)
	dst.SubstanceUse.Details = union(dst.SubstanceUse.Details, src.SubstanceUse.Details)
}

func known(v string) bool {
	return v != "" && v != extraction.Unknown
}

// union appends the values of src missing from dst, keeping dst's order.
func union(dst, src []string) []string {
	if dst == nil {
		dst = []string{}
	}
	if len(src) == 0 {
		return dst
	}
	seen := make(map[string]struct{}, len(dst)+len(src))
	for _, v := range dst {
		seen[v] = struct{}{}
	}
	for _, v := range src {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}

func hasRelationship(list []extraction.Relationship, rel extraction.Relationship) bool {
	for _, existing := range list {
		if existing == rel {
			return true
		}
	}
	return false
}
