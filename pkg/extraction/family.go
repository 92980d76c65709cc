package extraction

import (
	"regexp"
	"strings"

	"github.com/synaptica-ai/scribe/pkg/lexicon"
)

// relationRegex captures "<member> <verb> <word>". Compound subjects such as
// "mother and father both have" are not captured.
var relationRegex = regexp.MustCompile(`(?i)\b(mother|father|parent|grandmother|grandfather|sister|brother|aunt|uncle|cousin)\s+(?:has|had|have|died of|died from|suffers from|suffered from|was diagnosed with|diagnosed with)\s+(\w+)`)

func (a *Analyzer) ExtractFamilyHistory(text string) FamilyHistory {
	lower := strings.ToLower(text)

	history := FamilyHistory{
		HereditaryDiseases: orderedUnique(matchTerms(lower, a.lex.Terms(lexicon.HereditaryDiseases))),
		FamilyMembers:      orderedUnique(matchTerms(lower, a.lex.Terms(lexicon.FamilyTerms))),
		Relationships:      []Relationship{},
	}

	seen := make(map[Relationship]struct{})
	for _, match := range relationRegex.FindAllStringSubmatch(lower, -1) {
		rel := Relationship{Member: match[1], Condition: match[2]}
		if _, ok := seen[rel]; ok {
			continue
		}
		seen[rel] = struct{}{}
		history.Relationships = append(history.Relationships, rel)
	}

	return history
}
