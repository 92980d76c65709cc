package terminology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const UnknownCode = "Unknown"

type Concept struct {
	Display string `yaml:"display" json:"display"`
	SNOMED  string `yaml:"snomed" json:"snomed"`
	LOINC   string `yaml:"loinc" json:"loinc"`
	ICD10   string `yaml:"icd10" json:"icd10"`
}

// Catalog maps extracted terms (lowercase) to standard codes.
type Catalog struct {
	Concepts map[string]Concept `yaml:"concepts" json:"concepts"`
}

func Load(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultCatalog(), err
	}
	var cat Catalog
	if err := yaml.Unmarshal(content, &cat); err != nil {
		return Catalog{}, err
	}
	if len(cat.Concepts) == 0 {
		return Catalog{}, fmt.Errorf("terminology catalog empty")
	}
	return cat, nil
}

func (c Catalog) Lookup(key string) (Concept, bool) {
	if c.Concepts == nil {
		return Concept{}, false
	}
	concept, ok := c.Concepts[strings.ToLower(strings.TrimSpace(key))]
	if ok {
		return concept, true
	}
	for k, v := range c.Concepts {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return Concept{}, false
}

// LOINC returns the LOINC code for term or UnknownCode.
func (c Catalog) LOINC(term string) string {
	if concept, ok := c.Lookup(term); ok && concept.LOINC != "" {
		return concept.LOINC
	}
	return UnknownCode
}

// ICD10 returns the ICD-10 code for term, if the catalog has one.
func (c Catalog) ICD10(term string) (string, bool) {
	concept, ok := c.Lookup(term)
	if !ok || concept.ICD10 == "" {
		return "", false
	}
	return concept.ICD10, true
}

func DefaultCatalog() Catalog {
	return Catalog{Concepts: map[string]Concept{
		"blood test":   {Display: "Complete blood count", LOINC: "58410-2"},
		"urine test":   {Display: "Urinalysis", LOINC: "24356-8"},
		"ecg":          {Display: "Electrocardiogram", LOINC: "11524-6", SNOMED: "29303009"},
		"ekg":          {Display: "Electrocardiogram", LOINC: "11524-6", SNOMED: "29303009"},
		"culture":      {Display: "Blood culture", LOINC: "600-7"},
		"x-ray":        {Display: "Chest X-ray", LOINC: "36643-5"},
		"ct scan":      {Display: "CT scan", SNOMED: "77477000"},
		"mri":          {Display: "MRI", SNOMED: "113091000"},
		"ultrasound":   {Display: "Ultrasonography", SNOMED: "16310003"},
		"diabetes":     {Display: "Type 2 diabetes mellitus", SNOMED: "44054006", ICD10: "E11.9"},
		"hypertension": {Display: "Essential hypertension", SNOMED: "59621000", ICD10: "I10"},
		"asthma":       {Display: "Asthma", SNOMED: "195967001", ICD10: "J45.909"},
		"pneumonia":    {Display: "Pneumonia", SNOMED: "233604007", ICD10: "J18.9"},
		"bronchitis":   {Display: "Bronchitis", SNOMED: "32398004", ICD10: "J40"},
		"migraine":     {Display: "Migraine", SNOMED: "37796009", ICD10: "G43.909"},
		"gastritis":    {Display: "Gastritis", SNOMED: "4556007", ICD10: "K29.70"},
		"depression":   {Display: "Depressive disorder", SNOMED: "35489007", ICD10: "F32.9"},
		"anxiety":      {Display: "Anxiety disorder", SNOMED: "197480006", ICD10: "F41.9"},
		"arthritis":    {Display: "Arthritis", SNOMED: "3723001", ICD10: "M19.90"},
		"epilepsy":     {Display: "Epilepsy", SNOMED: "84757009", ICD10: "G40.909"},
		"stroke":       {Display: "Cerebrovascular accident", SNOMED: "230690007", ICD10: "I63.9"},
		"heart attack": {Display: "Myocardial infarction", SNOMED: "22298006", ICD10: "I21.9"},
	}}
}
