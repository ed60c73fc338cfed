package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(n float64) *float64 {
	return &n
}

func TestFieldValidate(t *testing.T) {
	ok := []Field{
		{Type: TypeText, Label: "Name"},
		{Type: TypeSelect, Label: "Pick", Options: []Option{{Value: "a", Label: "A"}}},
		{Type: TypeNumber, Label: "Age", Properties: &Properties{Min: fptr(0), Max: fptr(120)}},
		{Type: TypeSlider, Label: "Level", Properties: &Properties{Min: fptr(0), Max: fptr(10), Step: fptr(0.5)}},
		{Type: TypeFile, Label: "CV", Properties: &Properties{Accept: ".pdf"}},
		{Type: TypeRating, Label: "Stars"},
	}
	for _, f := range ok {
		assert.NoError(t, f.Validate(), "field %q", f.Label)
	}

	bad := []Field{
		{Type: "carousel", Label: "What"},
		{Type: TypeText, Label: "Name", Options: []Option{{Value: "a", Label: "A"}}},
		{Type: TypeDate, Label: "Day", Properties: &Properties{Min: fptr(1)}},
		{Type: TypeRating, Label: "Stars", Properties: &Properties{Min: fptr(1), Max: fptr(10)}},
		{Type: TypeNumber, Label: "Age", Properties: &Properties{Min: fptr(9), Max: fptr(1)}},
		{Type: TypeNumber, Label: "Age", Properties: &Properties{Step: fptr(2)}},
		{Type: TypeText, Label: "Name", Properties: &Properties{Accept: ".png"}},
	}
	for _, f := range bad {
		assert.Error(t, f.Validate(), "field %q", f.Label)
	}
}

func TestFieldTypeCapabilities(t *testing.T) {
	assert.True(t, TypeCheckbox.HasOptions())
	assert.False(t, TypeCheckbox.HasNumericRange())
	assert.True(t, TypeSlider.HasStep())
	assert.False(t, TypeNumber.HasStep())
	assert.True(t, TypeFile.HasFileAccept())
	assert.True(t, TypeRating.IsNumeric())
	assert.False(t, TypeRating.HasNumericRange())
	assert.True(t, TypeCheckbox.IsMultiValue())
	assert.True(t, TypeTextarea.IsFreeText())

	_, err := ParseFieldType("time")
	assert.NoError(t, err)
	_, err = ParseFieldType("carousel")
	assert.Error(t, err)
}
