package summary

import (
	"math"
	"sort"
	"strconv"

	"github.com/mlotta/formforge/model"
)

// FieldSummary is the per-field analytics block. Exactly one of
// Choices, Numeric and Texts is populated, depending on the field
// type. Fields of other types are omitted from the summary entirely.
type FieldSummary struct {
	FieldID string          `json:"field_id"`
	Label   string          `json:"label"`
	Type    model.FieldType `json:"type"`

	Choices []OptionCount   `json:"choices,omitempty"`
	Numeric *NumericSummary `json:"numeric,omitempty"`
	Texts   []string        `json:"texts,omitempty"`
}

// OptionCount is how many responses picked one option, keyed by its
// label. Options nobody picked still appear with a zero count.
type OptionCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type NumericSummary struct {
	Avg          float64      `json:"avg"`
	Min          float64      `json:"min"`
	Max          float64      `json:"max"`
	Distribution []ValueCount `json:"distribution"`
}

// ValueCount is the number of responses with one distinct numeric value.
type ValueCount struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

const textSampleSize = 5

// Aggregate computes per-field tallies over all responses, in field
// order. Responses are expected most recent first, so text samples are
// the latest submissions.
func Aggregate(form model.Form, responses []model.Response) []FieldSummary {
	summaries := []FieldSummary{}
	for _, f := range form.Fields {
		s := FieldSummary{FieldID: f.ID, Label: f.Label, Type: f.Type}

		switch {
		case f.Type.HasOptions():
			s.Choices = countChoices(f, responses)
		case f.Type.IsNumeric():
			s.Numeric = summarizeNumeric(f, responses)
		case f.Type.IsFreeText():
			s.Texts = sampleTexts(f, responses)
		default:
			continue
		}

		summaries = append(summaries, s)
	}
	return summaries
}

// countChoices tallies stored values against the field's option list.
// Values matching no option are skipped, not counted.
func countChoices(f model.Field, responses []model.Response) []OptionCount {
	index := make(map[string]int, len(f.Options))
	counts := make([]OptionCount, len(f.Options))
	for i, opt := range f.Options {
		index[opt.Value] = i
		counts[i] = OptionCount{Label: opt.Label}
	}

	bump := func(value string) {
		if i, ok := index[value]; ok {
			counts[i].Count++
		}
	}

	for _, r := range responses {
		switch answer := r.Data[f.ID].(type) {
		case string:
			bump(answer)
		case []string:
			for _, v := range answer {
				bump(v)
			}
		case []any:
			for _, v := range answer {
				if s, ok := v.(string); ok {
					bump(s)
				}
			}
		}
	}
	return counts
}

func summarizeNumeric(f model.Field, responses []model.Response) *NumericSummary {
	values := []float64{}
	for _, r := range responses {
		if n, ok := numericValue(r.Data[f.ID]); ok {
			values = append(values, n)
		}
	}
	if len(values) == 0 {
		return &NumericSummary{Distribution: []ValueCount{}}
	}

	sum, min, max := 0.0, values[0], values[0]
	occurrences := map[float64]int{}
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		occurrences[v]++
	}

	distribution := make([]ValueCount, 0, len(occurrences))
	for v, n := range occurrences {
		distribution = append(distribution, ValueCount{Value: v, Count: n})
	}
	sort.Slice(distribution, func(i, j int) bool {
		return distribution[i].Value < distribution[j].Value
	})

	return &NumericSummary{
		Avg:          math.Round(sum/float64(len(values))*100) / 100,
		Min:          min,
		Max:          max,
		Distribution: distribution,
	}
}

func numericValue(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// sampleTexts returns the most recent non-empty answers, verbatim,
// capped at five.
func sampleTexts(f model.Field, responses []model.Response) []string {
	texts := []string{}
	for _, r := range responses {
		if len(texts) == textSampleSize {
			break
		}
		if s, ok := r.Data[f.ID].(string); ok && s != "" {
			texts = append(texts, s)
		}
	}
	return texts
}
