package extraction

import (
	"regexp"
	"strings"
)

var (
	exerciseDurationRegex = regexp.MustCompile(`(?i)(\d+)\s*(?:minutes?|hours?|mins?|hrs?)\s*(?:per\s*day|daily|per\s*week|weekly|a\s+day|a\s+week)`)
	substanceDetailRegex  = regexp.MustCompile(`(?i)\b(?:smok(?:e|es|ed|ing|er)|cigarettes?|vap(?:e|es|ing)|alcohol|drinks?|drinking|beers?|wine)\b[^.;,]*`)
)

func (a *Analyzer) ExtractSocialHistory(text string) SocialHistory {
	return SocialHistory{
		Exercise:     a.ExtractExercise(text),
		Diet:         a.ExtractDiet(text),
		Occupation:   a.ExtractOccupation(text),
		SubstanceUse: a.ExtractSubstanceUse(text),
	}
}

func (a *Analyzer) ExtractExercise(text string) ExerciseInfo {
	lower := strings.ToLower(text)
	info := ExerciseInfo{Frequency: Unknown}

	if cue, _, ok := firstCue(lower, a.social.ExerciseFrequency); ok {
		info.Frequency = cue.Value
	}
	info.Activities = orderedUnique(matchTerms(lower, a.social.ExerciseActivities))
	if match := exerciseDurationRegex.FindString(lower); match != "" {
		info.Duration = match
	}
	return info
}

func (a *Analyzer) ExtractDiet(text string) DietInfo {
	lower := strings.ToLower(text)
	info := DietInfo{Type: Unknown}

	if cue, _, ok := firstCue(lower, a.social.DietTypes); ok {
		info.Type = cue.Value
	}
	info.Restrictions = orderedUnique(matchTerms(lower, a.social.DietRestrictions))
	info.Preferences = orderedUnique(matchTerms(lower, a.social.DietPreferences))
	return info
}

// ExtractOccupation picks the job mentioned earliest in the text and derives
// its industry from the lexicon.
func (a *Analyzer) ExtractOccupation(text string) OccupationInfo {
	lower := strings.ToLower(text)
	info := OccupationInfo{Job: Unknown, Industry: Unknown, Status: Unknown}

	if cue, _, ok := firstCue(lower, a.social.EmploymentStatus); ok {
		info.Status = cue.Value
	}
	if jobs := orderedUnique(matchTerms(lower, a.social.Occupations)); len(jobs) > 0 {
		info.Job = jobs[0]
		if industry, ok := a.social.Industries[info.Job]; ok {
			info.Industry = industry
		}
	}
	return info
}

func (a *Analyzer) ExtractSubstanceUse(text string) SubstanceInfo {
	lower := strings.ToLower(text)
	info := SubstanceInfo{Status: Unknown}

	info.Substances = orderedUnique(matchTerms(lower, a.social.Substances))
	if cue, _, ok := firstCue(lower, a.social.SubstanceStatus); ok {
		info.Status = cue.Value
	}

	details := make([]hit, 0)
	for _, loc := range substanceDetailRegex.FindAllStringIndex(lower, -1) {
		details = append(details, hit{value: strings.TrimSpace(lower[loc[0]:loc[1]]), pos: loc[0]})
	}
	info.Details = orderedUnique(details)
	return info
}
