package extraction

import (
	"regexp"
	"sort"
	"strings"

	"github.com/synaptica-ai/scribe/pkg/lexicon"
)

// Analyzer runs every field extractor against a fixed lexicon. It holds no
// mutable state and is safe for concurrent use.
type Analyzer struct {
	lex    *lexicon.Lexicon
	social lexicon.SocialDefinition
}

func NewAnalyzer(lex *lexicon.Lexicon) *Analyzer {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Analyzer{lex: lex, social: lex.Social()}
}

func (a *Analyzer) Analyze(text string) AnalysisResult {
	return AnalysisResult{
		Symptoms:       a.ExtractSymptoms(text),
		Conditions:     a.ExtractConditions(text),
		Medications:    a.ExtractMedications(text),
		Severity:       a.ExtractSeverity(text),
		BodyParts:      a.ExtractBodyParts(text),
		Demographics:   ExtractDemographics(text),
		VitalSigns:     ExtractVitalSigns(text),
		Procedures:     a.ExtractProcedures(text),
		Investigations: a.ExtractInvestigations(text),
		FamilyHistory:  a.ExtractFamilyHistory(text),
		SocialHistory:  a.ExtractSocialHistory(text),
		Allergies:      a.ExtractAllergies(text),
		Onset:          a.ExtractOnset(text),
		FollowUp:       a.ExtractFollowUp(text),
		Instructions:   a.ExtractInstructions(text),
		Restrictions:   a.ExtractRestrictions(text),
	}
}

func (a *Analyzer) ExtractSymptoms(text string) []string {
	return a.extractCategory(text, lexicon.Symptoms)
}

func (a *Analyzer) ExtractConditions(text string) []string {
	return a.extractCategory(text, lexicon.Conditions)
}

func (a *Analyzer) ExtractMedications(text string) []string {
	return a.extractCategory(text, lexicon.Medications)
}

func (a *Analyzer) ExtractSeverity(text string) []string {
	return a.extractCategory(text, lexicon.Severity)
}

func (a *Analyzer) ExtractBodyParts(text string) []string {
	return a.extractCategory(text, lexicon.BodyParts)
}

func (a *Analyzer) ExtractProcedures(text string) []string {
	return a.extractCategory(text, lexicon.Procedures)
}

func (a *Analyzer) ExtractInvestigations(text string) []string {
	return a.extractCategory(text, lexicon.Investigations)
}

func (a *Analyzer) ExtractOnset(text string) []string {
	return a.extractCategory(text, lexicon.Onset)
}

func (a *Analyzer) ExtractFollowUp(text string) []string {
	return a.extractCategory(text, lexicon.FollowUp)
}

func (a *Analyzer) ExtractInstructions(text string) []string {
	return a.extractCategory(text, lexicon.Instructions)
}

func (a *Analyzer) ExtractRestrictions(text string) []string {
	return a.extractCategory(text, lexicon.Restrictions)
}

// allergyFillers are words the "<x> allergy" cue captures that never name an
// allergen.
var allergyFillers = map[string]struct{}{
	"no": {}, "known": {}, "any": {}, "an": {}, "a": {}, "the": {}, "my": {},
	"drug": {}, "food": {}, "medication": {}, "seasonal": {}, "severe": {}, "mild": {},
}

// ExtractAllergies returns allergens named after "allergic to"-style cues, or
// the single entry "no known allergies" when the patient denies any. Phrases
// the lexicon files as diet restrictions ("nut allergy") are left to the diet
// extractor.
func (a *Analyzer) ExtractAllergies(text string) []string {
	lower := strings.ToLower(text)
	restrictions := a.lex.Social().DietRestrictions
	var hits []hit
	for _, h := range a.matchPatterns(lower, a.lex.Patterns(lexicon.Allergies), 0) {
		if _, filler := allergyFillers[h.value]; filler {
			continue
		}
		if containsString(restrictions, h.value+" allergy") {
			continue
		}
		hits = append(hits, h)
	}
	for _, phrase := range a.lex.Terms(lexicon.NoKnownAllergies) {
		if idx := strings.Index(lower, phrase); idx >= 0 {
			hits = append(hits, hit{value: "no known allergies", pos: idx})
			break
		}
	}
	return orderedUnique(hits)
}

func (a *Analyzer) extractCategory(text string, category lexicon.Category) []string {
	lower := strings.ToLower(text)
	hits := matchTerms(lower, a.lex.Terms(category))
	hits = append(hits, a.matchPatterns(lower, a.lex.Patterns(category), len(hits))...)
	return orderedUnique(hits)
}

type hit struct {
	value string
	pos   int
	seq   int
}

func matchTerms(lower string, terms []string) []hit {
	var hits []hit
	for i, term := range terms {
		if idx := strings.Index(lower, term); idx >= 0 {
			hits = append(hits, hit{value: term, pos: idx, seq: i})
		}
	}
	return hits
}

// matchPatterns uses the first capture group when the pattern has one and the
// whole match otherwise.
func (a *Analyzer) matchPatterns(lower string, patterns []*regexp.Regexp, seqOffset int) []hit {
	var hits []hit
	seq := seqOffset
	for _, re := range patterns {
		for _, loc := range re.FindAllStringSubmatchIndex(lower, -1) {
			start, end := loc[0], loc[1]
			if len(loc) >= 4 && loc[2] >= 0 {
				start, end = loc[2], loc[3]
			}
			value := strings.Join(strings.Fields(lower[start:end]), " ")
			if value == "" {
				continue
			}
			hits = append(hits, hit{value: value, pos: start, seq: seq})
			seq++
		}
	}
	return hits
}

// orderedUnique sorts hits by first occurrence in the text and drops repeats.
// The result is never nil so it serializes as an empty list.
func orderedUnique(hits []hit) []string {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].pos != hits[j].pos {
			return hits[i].pos < hits[j].pos
		}
		return hits[i].seq < hits[j].seq
	})
	out := make([]string, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.value]; ok {
			continue
		}
		seen[h.value] = struct{}{}
		out = append(out, h.value)
	}
	return out
}

func containsAny(lower string, terms []string) (string, bool) {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return term, true
		}
	}
	return "", false
}

func firstCue(lower string, cues []lexicon.Cue) (lexicon.Cue, string, bool) {
	for _, cue := range cues {
		if term, ok := containsAny(lower, cue.Terms); ok {
			return cue, term, true
		}
	}
	return lexicon.Cue{}, "", false
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
