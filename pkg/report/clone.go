package report

import "github.com/synaptica-ai/scribe/pkg/extraction"

func cloneStrings(in []string) []string {
	return append([]string{}, in...)
}

func cloneAnalysis(a extraction.AnalysisResult) extraction.AnalysisResult {
	out := a
	out.Symptoms = cloneStrings(a.Symptoms)
	out.Conditions = cloneStrings(a.Conditions)
	out.Medications = cloneStrings(a.Medications)
	out.Severity = cloneStrings(a.Severity)
	out.BodyParts = cloneStrings(a.BodyParts)
	out.Demographics = cloneDemographics(a.Demographics)
	out.Procedures = cloneStrings(a.Procedures)
	out.Investigations = cloneStrings(a.Investigations)
	out.FamilyHistory = cloneFamily(a.FamilyHistory)
	out.SocialHistory = cloneSocial(a.SocialHistory)
	out.Allergies = cloneStrings(a.Allergies)
	out.Onset = cloneStrings(a.Onset)
	out.FollowUp = cloneStrings(a.FollowUp)
	out.Instructions = cloneStrings(a.Instructions)
	out.Restrictions = cloneStrings(a.Restrictions)
	return out
}

func cloneDemographics(d extraction.Demographics) extraction.Demographics {
	out := d
	if d.Age != nil {
		age := *d.Age
		out.Age = &age
	}
	return out
}

func cloneFamily(f extraction.FamilyHistory) extraction.FamilyHistory {
	return extraction.FamilyHistory{
		HereditaryDiseases: cloneStrings(f.HereditaryDiseases),
		FamilyMembers:      cloneStrings(f.FamilyMembers),
		Relationships:      append([]extraction.Relationship{}, f.Relationships...),
	}
}

func cloneSocial(s extraction.SocialHistory) extraction.SocialHistory {
	out := s
	out.Exercise.Activities = cloneStrings(s.Exercise.Activities)
	out.Diet.Restrictions = cloneStrings(s.Diet.Restrictions)
	out.Diet.Preferences = cloneStrings(s.Diet.Preferences)
	out.SubstanceUse.Substances = cloneStrings(s.SubstanceUse.Substances)
	out.SubstanceUse.Details = cloneStrings(s.SubstanceUse.Details)
	return out
}

func cloneEntries(in []LogEntry) []LogEntry {
	out := make([]LogEntry, 0, len(in))
	for _, e := range in {
		out = append(out, LogEntry{Timestamp: e.Timestamp, Content: cloneAnalysis(e.Content), Type: e.Type})
	}
	return out
}

// Clone returns a deep copy that shares no memory with r.
func (r Report) Clone() Report {
	out := r
	out.Patient.Demographics = cloneDemographics(r.Patient.Demographics)
	out.Patient.Symptoms = cloneStrings(r.Patient.Symptoms)
	out.Patient.MedicalHistory = cloneStrings(r.Patient.MedicalHistory)
	out.Patient.CurrentMedications = cloneStrings(r.Patient.CurrentMedications)
	out.Patient.Allergies = cloneStrings(r.Patient.Allergies)
	out.Patient.FamilyHistory = cloneFamily(r.Patient.FamilyHistory)
	out.Patient.SocialHistory = cloneSocial(r.Patient.SocialHistory)

	out.Clinical.Examination = make(map[string]string, len(r.Clinical.Examination))
	for k, v := range r.Clinical.Examination {
		out.Clinical.Examination[k] = v
	}
	out.Clinical.Investigations = cloneStrings(r.Clinical.Investigations)
	out.Clinical.Diagnosis = cloneStrings(r.Clinical.Diagnosis)
	out.Clinical.Treatment = cloneStrings(r.Clinical.Treatment)
	out.Clinical.Procedures = cloneStrings(r.Clinical.Procedures)

	out.Conversation.DoctorNotes = cloneEntries(r.Conversation.DoctorNotes)
	out.Conversation.PatientStatements = cloneEntries(r.Conversation.PatientStatements)

	out.Discharge.Medications = cloneStrings(r.Discharge.Medications)
	out.Discharge.Instructions = cloneStrings(r.Discharge.Instructions)
	out.Discharge.FollowUp = cloneStrings(r.Discharge.FollowUp)
	out.Discharge.Restrictions = cloneStrings(r.Discharge.Restrictions)
	return out
}
