// Package confidence assigns a heuristic richness score to extracted fields.
//
// The score is a proxy for how much structured data was captured for a field,
// not a statistical confidence in its correctness. Callers and tests should
// treat 0.9 as "a populated list" rather than "90% likely to be right".
package confidence

import (
	"reflect"

	"github.com/synaptica-ai/scribe/pkg/extraction"
)

const (
	base        = 0.5
	listBonus   = 0.2
	objectBonus = 0.2
	coreBonus   = 0.1
)

var coreFields = map[string]struct{}{
	extraction.FieldSymptoms:    {},
	extraction.FieldConditions:  {},
	extraction.FieldMedications: {},
	extraction.FieldProcedures:  {},
}

type shape struct {
	list   bool
	object bool
}

// Score rates data captured for field. A non-empty list counts as both a list
// and an object, a non-empty record only as an object. Core medical fields get
// an extra bonus. The result is clamped to [0, 1].
func Score(field string, data interface{}) float64 {
	score := base
	s := classify(data)
	if s.list {
		score += listBonus
	}
	if s.object {
		score += objectBonus
	}
	if IsCoreField(field) {
		score += coreBonus
	}
	return clamp(score)
}

func IsCoreField(field string) bool {
	_, ok := coreFields[field]
	return ok
}

// Scores rates every populated field of an analysis.
func Scores(analysis extraction.AnalysisResult) map[string]float64 {
	out := make(map[string]float64)
	for _, fv := range analysis.Populated() {
		out[fv.Field] = Score(fv.Field, fv.Value)
	}
	return out
}

func classify(data interface{}) shape {
	switch v := data.(type) {
	case nil:
		return shape{}
	case []string:
		return listShape(len(v))
	case []extraction.Relationship:
		return listShape(len(v))
	case map[string]string:
		return shape{object: len(v) > 0}
	case map[string]interface{}:
		return shape{object: len(v) > 0}
	case extraction.Demographics:
		return shape{object: !v.IsEmpty()}
	case extraction.VitalSigns:
		return shape{object: !v.IsEmpty()}
	case extraction.FamilyHistory:
		return shape{object: !v.IsEmpty()}
	case extraction.SocialHistory:
		return shape{object: !v.IsEmpty()}
	}

	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return listShape(rv.Len())
	case reflect.Map:
		return shape{object: rv.Len() > 0}
	case reflect.Ptr:
		if rv.IsNil() {
			return shape{}
		}
		return classify(rv.Elem().Interface())
	case reflect.Struct:
		return shape{object: !rv.IsZero()}
	}
	return shape{}
}

func listShape(n int) shape {
	return shape{list: n > 0, object: n > 0}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
