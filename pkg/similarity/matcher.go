package similarity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/synaptica-ai/scribe/pkg/extraction"
	"github.com/synaptica-ai/scribe/pkg/lexicon"
)

const (
	DefaultTopK = 5

	symptomWeight    = 0.4
	ageWeight        = 0.2
	conditionWeight  = 0.3
	medicationWeight = 0.1

	// Cases scoring at or below this are not reported.
	minScore = 0.1
)

type Matcher struct {
	symptomTerms []string
}

// NewMatcher uses the lexicon's symptom terms to pull symptoms out of case
// notes.
func NewMatcher(lex *lexicon.Lexicon) *Matcher {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Matcher{symptomTerms: lex.Terms(lexicon.Symptoms)}
}

// FindSimilarCases ranks records against an analysis. Equal scores keep
// corpus order. The result is never nil.
func (m *Matcher) FindSimilarCases(analysis extraction.AnalysisResult, records []CaseRecord, topK int) []RankedMatch {
	if topK <= 0 {
		topK = DefaultTopK
	}
	matches := make([]RankedMatch, 0)
	for _, record := range records {
		score := m.Score(analysis, record)
		if score <= minScore {
			continue
		}
		matches = append(matches, RankedMatch{
			Case:    record,
			Score:   score,
			Reasons: m.Reasons(analysis, record),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// Score is the weighted similarity between an analysis and one record.
// Missing record fields contribute nothing.
func (m *Matcher) Score(analysis extraction.AnalysisResult, record CaseRecord) float64 {
	score := 0.0
	score += overlap(analysis.Symptoms, m.recordSymptoms(record)) * symptomWeight
	score += ageSimilarity(analysis.Demographics.Age, record.Demographics.Age) * ageWeight
	score += overlap(analysis.Conditions, recordConditions(record)) * conditionWeight
	score += overlap(analysis.Medications, recordMedications(record)) * medicationWeight
	return score
}

// Reasons explains a match for display. It does not affect ranking.
func (m *Matcher) Reasons(analysis extraction.AnalysisResult, record CaseRecord) []string {
	reasons := make([]string, 0, 4)
	if common := commonTerms(analysis.Symptoms, m.recordSymptoms(record)); len(common) > 0 {
		reasons = append(reasons, "Common symptoms: "+strings.Join(common, ", "))
	}
	if age, ok := ageOf(analysis.Demographics.Age); ok {
		if recordAge, ok := recordAgeOf(record.Demographics.Age); ok && abs(age-recordAge) <= 10 {
			reasons = append(reasons, fmt.Sprintf("Similar age: %s vs %s", formatAge(recordAge), formatAge(age)))
		}
	}
	if common := commonTerms(analysis.Conditions, recordConditions(record)); len(common) > 0 {
		reasons = append(reasons, "Common conditions: "+strings.Join(common, ", "))
	}
	if common := commonTerms(analysis.Medications, recordMedications(record)); len(common) > 0 {
		reasons = append(reasons, "Common medications: "+strings.Join(common, ", "))
	}
	return reasons
}

// recordSymptoms collects chief complaints, explicit symptoms and any note
// words containing a symptom term.
func (m *Matcher) recordSymptoms(record CaseRecord) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, enc := range record.Encounters {
		add(strings.TrimSpace(enc.ChiefComplaint))
		for _, s := range enc.Symptoms {
			add(strings.TrimSpace(s))
		}
		for _, word := range strings.Fields(strings.ToLower(enc.NotesText)) {
			for _, term := range m.symptomTerms {
				if strings.Contains(word, term) {
					add(word)
					break
				}
			}
		}
	}
	return out
}

func recordConditions(record CaseRecord) []string {
	var out []string
	for _, enc := range record.Encounters {
		out = append(out, enc.Diagnoses...)
	}
	return out
}

func recordMedications(record CaseRecord) []string {
	var out []string
	for _, enc := range record.Encounters {
		for _, med := range enc.Medications {
			out = append(out, med.Name)
		}
	}
	return out
}

// overlap counts the terms of a with a substring match in b, in either
// direction, over the larger set size.
func overlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := len(commonTerms(a, b))
	denominator := len(a)
	if len(b) > denominator {
		denominator = len(b)
	}
	return float64(n) / float64(denominator)
}

func commonTerms(a, b []string) []string {
	var out []string
	for _, item := range a {
		x := strings.ToLower(item)
		for _, other := range b {
			y := strings.ToLower(other)
			if y == "" || x == "" {
				continue
			}
			if strings.Contains(y, x) || strings.Contains(x, y) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func ageSimilarity(a *int, b *float64) float64 {
	age, ok := ageOf(a)
	if !ok {
		return 0
	}
	recordAge, ok := recordAgeOf(b)
	if !ok {
		return 0
	}
	diff := abs(age - recordAge)
	switch {
	case diff <= 5:
		return 1.0
	case diff <= 10:
		return 0.8
	case diff <= 20:
		return 0.5
	default:
		return 0.2
	}
}

// A zero age is treated as absent.
func ageOf(age *int) (float64, bool) {
	if age == nil || *age <= 0 {
		return 0, false
	}
	return float64(*age), true
}

func recordAgeOf(age *float64) (float64, bool) {
	if age == nil || *age <= 0 {
		return 0, false
	}
	return *age, true
}

func formatAge(age float64) string {
	return strconv.FormatFloat(age, 'f', -1, 64)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
