package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	ageRegex    = regexp.MustCompile(`(?i)(\d+)\s*(?:years?\s*old|y\.?o\b\.?)`)
	maleRegex   = regexp.MustCompile(`(?i)\b(?:male|man|he|him)\b`)
	femaleRegex = regexp.MustCompile(`(?i)\b(?:female|woman|she|her)\b`)

	bloodPressureRegex = regexp.MustCompile(`(?i)(\d+)/(\d+)\s*(?:mm\s?hg|blood pressure)`)
	bloodPressureLead  = regexp.MustCompile(`(?i)(?:blood pressure|bp)(?:\s+(?:is|of|was|at))?\s*(\d+)/(\d+)`)
	heartRateRegex     = regexp.MustCompile(`(?i)(\d+)\s*(?:bpm|heart rate|pulse)`)
	heartRateLead      = regexp.MustCompile(`(?i)(?:heart rate|pulse)(?:\s+(?:is|of|was|at))?\s*(\d+)`)
	temperatureRegex   = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(°f|°c|degrees?|fever)`)
)

// ExtractDemographics returns only the keys it finds.
func ExtractDemographics(text string) Demographics {
	var demographics Demographics

	if match := ageRegex.FindStringSubmatch(text); match != nil {
		if age, err := strconv.Atoi(match[1]); err == nil {
			demographics.Age = &age
		}
	}

	if maleRegex.MatchString(text) {
		demographics.Gender = "male"
	} else if femaleRegex.MatchString(text) {
		demographics.Gender = "female"
	}

	return demographics
}

// ExtractVitalSigns returns only the vitals it finds, normalized to display
// strings ("120/80 mmHg", "72 bpm", "101.2°F").
func ExtractVitalSigns(text string) VitalSigns {
	var vitals VitalSigns

	if match := bloodPressureRegex.FindStringSubmatch(text); match != nil {
		vitals.BloodPressure = match[1] + "/" + match[2] + " mmHg"
	} else if match := bloodPressureLead.FindStringSubmatch(text); match != nil {
		vitals.BloodPressure = match[1] + "/" + match[2] + " mmHg"
	}

	if match := heartRateRegex.FindStringSubmatch(text); match != nil {
		vitals.HeartRate = match[1] + " bpm"
	} else if match := heartRateLead.FindStringSubmatch(text); match != nil {
		vitals.HeartRate = match[1] + " bpm"
	}

	if match := temperatureRegex.FindStringSubmatch(text); match != nil {
		unit := "°F"
		if strings.EqualFold(match[2], "°c") {
			unit = "°C"
		}
		vitals.Temperature = match[1] + unit
	}

	return vitals
}
