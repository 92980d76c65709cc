package lexicon

// DefaultDefinition returns the built-in term lists and patterns.
func DefaultDefinition() Definition {
	return Definition{
		Terms: map[Category][]string{
			Symptoms: {
				"chest pain", "pain", "ache", "hurt", "sore", "burning", "sharp", "dull", "throbbing",
				"cough", "breathing", "shortness", "wheezing", "chest tightness", "difficulty breathing",
				"nausea", "vomiting", "diarrhea", "constipation", "stomach", "abdomen", "belly",
				"headache", "dizziness", "confusion", "memory", "seizure", "fainting",
				"joint", "muscle", "stiffness", "swelling", "mobility", "weakness",
				"fever", "temperature", "hot", "cold", "chills", "sweating",
				"fatigue", "tired", "exhausted", "weak", "lethargic",
			},
			Conditions: {
				"diabetes", "hypertension", "asthma", "arthritis", "depression", "anxiety",
				"infection", "injury", "fracture", "allergic reaction", "inflammation",
				"heart attack", "stroke", "pneumonia", "bronchitis", "gastritis",
				"migraine", "seizure", "epilepsy", "cancer", "tumor",
			},
			Medications: {
				"aspirin", "ibuprofen", "penicillin", "metformin", "insulin", "morphine",
				"antibiotic", "painkiller", "antihistamine", "steroid", "inhaler",
				"tablet", "capsule", "injection", "cream", "ointment",
			},
			Severity: {
				"severe", "acute", "emergency", "critical", "unbearable", "intense",
				"moderate", "manageable", "intermittent", "occasional",
				"mild", "slight", "minor", "tolerable",
			},
			BodyParts: {
				"head", "chest", "heart", "lung", "stomach", "abdomen", "back", "neck",
				"arm", "leg", "hand", "foot", "knee", "shoulder", "hip", "wrist", "ankle",
			},
			Procedures: {
				"surgery", "operation", "procedure", "biopsy", "scan", "x-ray", "mri", "ct",
				"blood test", "urine test", "injection", "vaccination", "suture", "cast",
			},
			Investigations: {
				"blood test", "urine test", "x-ray", "mri", "ct scan", "ultrasound",
				"ecg", "ekg", "endoscopy", "colonoscopy", "biopsy", "culture",
			},
			FamilyTerms: {
				"family history", "hereditary", "genetic", "inherited", "runs in family",
				"mother", "father", "parent", "grandmother", "grandfather", "grandparent",
				"sister", "brother", "sibling", "aunt", "uncle", "cousin", "relative",
			},
			HereditaryDiseases: {
				"diabetes", "hypertension", "heart disease", "cancer", "breast cancer",
				"colon cancer", "lung cancer", "prostate cancer", "ovarian cancer",
				"alzheimer", "dementia", "parkinson", "huntington", "cystic fibrosis",
				"sickle cell", "hemophilia", "thalassemia", "muscular dystrophy",
				"down syndrome", "trisomy", "fragile x", "tay sachs", "g6pd deficiency",
			},
			SocialTerms: {
				"exercise", "physical activity", "workout", "gym", "running", "walking",
				"diet", "eating", "nutrition", "vegetarian", "vegan", "fast food",
				"drug use", "substance abuse", "marijuana", "cocaine", "heroin",
				"occupation", "job", "work", "employment", "retired", "unemployed",
			},
			NoKnownAllergies: {"no known allergies", "no known drug allergies", "nkda"},
		},
		Patterns: map[Category][]string{
			Symptoms: {
				`pain in \w+`,
				`ache in \w+`,
				`hurts in \w+`,
				`sore \w+`,
				`burning \w+`,
			},
			Medications: {
				`taking \w+`,
				`prescribed \w+`,
				`medication \w+`,
				`drug \w+`,
				`tablet \w+`,
				`\d+mg \w+`,
			},
			Severity: {
				`\d+\s*out of\s*10`,
			},
			Allergies: {
				`allergic to (\w+)`,
				`allergy to (\w+)`,
				`\b(\w+) allergy\b`,
			},
			Onset: {
				`for \d+ (?:hours?|days?|weeks?|months?|years?)`,
				`since (?:yesterday|last \w+|this \w+)`,
			},
			FollowUp: {
				`follow[- ]?up in \d+ (?:days?|weeks?|months?)`,
				`(?:come back|return|see you) in \d+ (?:days?|weeks?|months?)`,
				`follow[- ]?up with (?:your |a |the )?\w+`,
			},
			Instructions: {
				`take (?:it|them|this) (?:with food|twice a day|once a day|at night|in the morning)`,
				`drink plenty of (?:fluids|water)`,
				`get (?:plenty of |some )?rest`,
				`apply (?:it|the cream|ice) \w+ (?:times a day|a day)`,
			},
			Restrictions: {
				`avoid (?:\w+ )?\w+ing`,
				`avoid (?:alcohol|caffeine|salt|sugar|dairy)`,
				`no (?:driving|lifting|alcohol|heavy lifting|strenuous exercise|contact sports)`,
			},
		},
		Social: SocialDefinition{
			ExerciseFrequency: []Cue{
				{Value: "daily", Terms: []string{"daily", "every day"}},
				{Value: "weekly", Terms: []string{"weekly", "per week"}},
				{Value: "occasional", Terms: []string{"occasional", "sometimes"}},
				{Value: "never", Terms: []string{"never", "sedentary"}},
			},
			ExerciseActivities: []string{
				"running", "walking", "cycling", "swimming", "gym", "workout", "yoga", "pilates", "weight lifting",
			},
			DietTypes: []Cue{
				{Value: "vegetarian", Terms: []string{"vegetarian", "vegan"}},
				{Value: "ketogenic", Terms: []string{"keto", "ketogenic"}},
				{Value: "paleo", Terms: []string{"paleo"}},
				{Value: "mediterranean", Terms: []string{"mediterranean"}},
			},
			DietRestrictions: []string{"gluten-free", "dairy-free", "nut allergy", "shellfish allergy", "lactose intolerant"},
			DietPreferences:  []string{"organic", "fresh", "processed", "fast food", "home cooked"},
			EmploymentStatus: []Cue{
				{Value: "retired", Terms: []string{"retired", "retirement"}},
				{Value: "unemployed", Terms: []string{"unemployed", "jobless"}},
				{Value: "employed", Terms: []string{"employed", "working"}},
			},
			Occupations: []string{
				"teacher", "doctor", "nurse", "engineer", "lawyer", "accountant", "manager",
				"sales", "construction", "factory", "office", "hospital", "school", "government",
			},
			Industries: map[string]string{
				"teacher":      "education",
				"school":       "education",
				"doctor":       "healthcare",
				"nurse":        "healthcare",
				"hospital":     "healthcare",
				"engineer":     "engineering",
				"lawyer":       "legal",
				"accountant":   "finance",
				"sales":        "retail",
				"construction": "construction",
				"factory":      "manufacturing",
				"government":   "public sector",
			},
			Substances: []string{
				"marijuana", "cannabis", "cocaine", "heroin", "methamphetamine", "opioids", "prescription drugs",
			},
			SubstanceStatus: []Cue{
				{Value: "current", Terms: []string{"current use", "actively using"}},
				{Value: "former", Terms: []string{"former use", "past use", "used to"}},
				{Value: "never", Terms: []string{"never used", "no history"}},
			},
		},
	}
}
