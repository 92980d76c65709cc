package extraction

const Unknown = "unknown"

// Field names used for confidence scores and audit records.
const (
	FieldSymptoms       = "symptoms"
	FieldConditions     = "conditions"
	FieldMedications    = "medications"
	FieldSeverity       = "severity"
	FieldBodyParts      = "bodyParts"
	FieldDemographics   = "demographics"
	FieldVitalSigns     = "vitalSigns"
	FieldProcedures     = "procedures"
	FieldInvestigations = "investigations"
	FieldFamilyHistory  = "familyHistory"
	FieldSocialHistory  = "socialHistory"
	FieldAllergies      = "allergies"
	FieldOnset          = "onset"
	FieldFollowUp       = "followUp"
	FieldInstructions   = "instructions"
	FieldRestrictions   = "restrictions"
)

type Demographics struct {
	Age    *int   `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

func (d Demographics) IsEmpty() bool {
	return d.Age == nil && d.Gender == ""
}

type VitalSigns struct {
	BloodPressure string `json:"bloodPressure,omitempty"`
	HeartRate     string `json:"heartRate,omitempty"`
	Temperature   string `json:"temperature,omitempty"`
}

func (v VitalSigns) IsEmpty() bool {
	return v.BloodPressure == "" && v.HeartRate == "" && v.Temperature == ""
}

// Map returns only the populated vitals keyed by their JSON names.
func (v VitalSigns) Map() map[string]string {
	out := make(map[string]string, 3)
	if v.BloodPressure != "" {
		out["bloodPressure"] = v.BloodPressure
	}
	if v.HeartRate != "" {
		out["heartRate"] = v.HeartRate
	}
	if v.Temperature != "" {
		out["temperature"] = v.Temperature
	}
	return out
}

type Relationship struct {
	Member    string `json:"member"`
	Condition string `json:"condition"`
}

type FamilyHistory struct {
	HereditaryDiseases []string       `json:"hereditaryDiseases"`
	FamilyMembers      []string       `json:"familyMembers"`
	Relationships      []Relationship `json:"relationships"`
}

func (f FamilyHistory) IsEmpty() bool {
	return len(f.HereditaryDiseases) == 0 && len(f.FamilyMembers) == 0 && len(f.Relationships) == 0
}

type ExerciseInfo struct {
	Frequency  string   `json:"frequency"`
	Activities []string `json:"activities"`
	Duration   string   `json:"duration,omitempty"`
}

type DietInfo struct {
	Type         string   `json:"type"`
	Restrictions []string `json:"restrictions"`
	Preferences  []string `json:"preferences"`
}

type OccupationInfo struct {
	Job      string `json:"job"`
	Industry string `json:"industry"`
	Status   string `json:"status"`
}

type SubstanceInfo struct {
	Substances []string `json:"substances"`
	Status     string   `json:"status"`
	Details    []string `json:"details"`
}

type SocialHistory struct {
	Exercise     ExerciseInfo   `json:"exercise"`
	Diet         DietInfo       `json:"diet"`
	Occupation   OccupationInfo `json:"occupation"`
	SubstanceUse SubstanceInfo  `json:"substanceUse"`
}

// EmptySocialHistory is the closed-world default: every classification is
// unknown and every list is empty.
func EmptySocialHistory() SocialHistory {
	return SocialHistory{
		Exercise:     ExerciseInfo{Frequency: Unknown, Activities: []string{}},
		Diet:         DietInfo{Type: Unknown, Restrictions: []string{}, Preferences: []string{}},
		Occupation:   OccupationInfo{Job: Unknown, Industry: Unknown, Status: Unknown},
		SubstanceUse: SubstanceInfo{Substances: []string{}, Status: Unknown, Details: []string{}},
	}
}

// IsEmpty reports whether no sub-extractor found a cue.
func (s SocialHistory) IsEmpty() bool {
	return s.Exercise.Frequency == Unknown && len(s.Exercise.Activities) == 0 && s.Exercise.Duration == "" &&
		s.Diet.Type == Unknown && len(s.Diet.Restrictions) == 0 && len(s.Diet.Preferences) == 0 &&
		s.Occupation.Job == Unknown && s.Occupation.Status == Unknown &&
		s.SubstanceUse.Status == Unknown && len(s.SubstanceUse.Substances) == 0 && len(s.SubstanceUse.Details) == 0
}

// AnalysisResult is the structured extraction output for one utterance.
type AnalysisResult struct {
	Symptoms       []string      `json:"symptoms"`
	Conditions     []string      `json:"conditions"`
	Medications    []string      `json:"medications"`
	Severity       []string      `json:"severity"`
	BodyParts      []string      `json:"bodyParts"`
	Demographics   Demographics  `json:"demographics"`
	VitalSigns     VitalSigns    `json:"vitalSigns"`
	Procedures     []string      `json:"procedures"`
	Investigations []string      `json:"investigations"`
	FamilyHistory  FamilyHistory `json:"familyHistory"`
	SocialHistory  SocialHistory `json:"socialHistory"`
	Allergies      []string      `json:"allergies"`
	Onset          []string      `json:"onset"`
	FollowUp       []string      `json:"followUp"`
	Instructions   []string      `json:"instructions"`
	Restrictions   []string      `json:"restrictions"`
}

// FieldValue pairs a populated analysis field with its data.
type FieldValue struct {
	Field string
	Value interface{}
}

// Populated lists the fields that carry data, in declaration order.
func (a AnalysisResult) Populated() []FieldValue {
	var out []FieldValue
	addList := func(field string, values []string) {
		if len(values) > 0 {
			out = append(out, FieldValue{Field: field, Value: values})
		}
	}

	addList(FieldSymptoms, a.Symptoms)
	addList(FieldConditions, a.Conditions)
	addList(FieldMedications, a.Medications)
	addList(FieldSeverity, a.Severity)
	addList(FieldBodyParts, a.BodyParts)
	if !a.Demographics.IsEmpty() {
		out = append(out, FieldValue{Field: FieldDemographics, Value: a.Demographics})
	}
	if !a.VitalSigns.IsEmpty() {
		out = append(out, FieldValue{Field: FieldVitalSigns, Value: a.VitalSigns})
	}
	addList(FieldProcedures, a.Procedures)
	addList(FieldInvestigations, a.Investigations)
	if !a.FamilyHistory.IsEmpty() {
		out = append(out, FieldValue{Field: FieldFamilyHistory, Value: a.FamilyHistory})
	}
	if !a.SocialHistory.IsEmpty() {
		out = append(out, FieldValue{Field: FieldSocialHistory, Value: a.SocialHistory})
	}
	addList(FieldAllergies, a.Allergies)
	addList(FieldOnset, a.Onset)
	addList(FieldFollowUp, a.FollowUp)
	addList(FieldInstructions, a.Instructions)
	addList(FieldRestrictions, a.Restrictions)
	return out
}

func (a AnalysisResult) IsEmpty() bool {
	return len(a.Populated()) == 0
}
