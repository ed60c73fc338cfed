package summary

import (
	"fmt"
	"testing"

	"github.com/mlotta/formforge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(values ...map[string]any) []model.Response {
	out := make([]model.Response, len(values))
	for i, data := range values {
		out[i] = model.Response{ID: fmt.Sprintf("r%d", i), Data: data}
	}
	return out
}

func TestAggregateChoiceCounts(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "color", Type: model.TypeRadio, Label: "Color", Options: []model.Option{
			{Value: "red", Label: "Red"},
			{Value: "blue", Label: "Blue"},
			{Value: "green", Label: "Green"},
		}},
	}}
	responses := respond(
		map[string]any{"color": "red"},
		map[string]any{"color": "blue"},
		map[string]any{"color": "red"},
		map[string]any{"color": "mauve"}, // not an option, skipped
	)

	summaries := Aggregate(form, responses)
	require.Len(t, summaries, 1)
	assert.Equal(t, []OptionCount{
		{Label: "Red", Count: 2},
		{Label: "Blue", Count: 1},
		{Label: "Green", Count: 0},
	}, summaries[0].Choices)
}

func TestAggregateCheckboxCountsEachSelection(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "tags", Type: model.TypeCheckbox, Label: "Tags", Options: []model.Option{
			{Value: "a", Label: "A"},
			{Value: "b", Label: "B"},
		}},
	}}
	responses := respond(
		map[string]any{"tags": []string{"a", "b"}},
		// values as decoded from the stored JSON blob
		map[string]any{"tags": []any{"a"}},
	)

	summaries := Aggregate(form, responses)
	require.Len(t, summaries, 1)
	assert.Equal(t, []OptionCount{
		{Label: "A", Count: 2},
		{Label: "B", Count: 1},
	}, summaries[0].Choices)
}

func TestAggregateNumericStats(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "score", Type: model.TypeRating, Label: "Score"},
	}}
	responses := respond(
		map[string]any{"score": "4"},
		map[string]any{"score": "5"},
		map[string]any{"score": float64(4)},
		map[string]any{"score": "not a number"}, // skipped
	)

	summaries := Aggregate(form, responses)
	require.Len(t, summaries, 1)
	num := summaries[0].Numeric
	require.NotNil(t, num)
	assert.Equal(t, 4.33, num.Avg)
	assert.Equal(t, 4.0, num.Min)
	assert.Equal(t, 5.0, num.Max)
	assert.Equal(t, []ValueCount{
		{Value: 4, Count: 2},
		{Value: 5, Count: 1},
	}, num.Distribution)
}

func TestAggregateNumericZeroCase(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "n", Type: model.TypeNumber, Label: "N"},
	}}
	responses := respond(map[string]any{"n": "oops"}, map[string]any{})

	summaries := Aggregate(form, responses)
	require.Len(t, summaries, 1)
	assert.Equal(t, &NumericSummary{Avg: 0, Min: 0, Max: 0, Distribution: []ValueCount{}}, summaries[0].Numeric)
}

func TestAggregateTextSamples(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "fb", Type: model.TypeTextarea, Label: "Feedback"},
	}}
	var data []map[string]any
	for i := 0; i < 8; i++ {
		data = append(data, map[string]any{"fb": fmt.Sprintf("comment %d", i)})
	}
	data = append([]map[string]any{{"fb": ""}}, data...) // empty, skipped

	summaries := Aggregate(form, respond(data...))
	require.Len(t, summaries, 1)
	assert.Equal(t, []string{"comment 0", "comment 1", "comment 2", "comment 3", "comment 4"}, summaries[0].Texts)
}

func TestAggregateOmitsUnsupportedTypes(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "d", Type: model.TypeDate, Label: "Date"},
		{ID: "f", Type: model.TypeFile, Label: "File"},
		{ID: "t", Type: model.TypeTime, Label: "Time"},
		{ID: "q", Type: model.TypeText, Label: "Question"},
	}}

	summaries := Aggregate(form, respond(map[string]any{"q": "hi"}))
	require.Len(t, summaries, 1)
	assert.Equal(t, "q", summaries[0].FieldID)
}
