package model

import "fmt"

type FieldType string

const (
	TypeText     FieldType = "text"
	TypeTextarea FieldType = "textarea"
	TypeNumber   FieldType = "number"
	TypeRadio    FieldType = "radio"
	TypeCheckbox FieldType = "checkbox"
	TypeSelect   FieldType = "select"
	TypeDate     FieldType = "date"
	TypeFile     FieldType = "file"
	TypeRating   FieldType = "rating"
	TypeSlider   FieldType = "slider"
	TypeTime     FieldType = "time"
)

var fieldTypes = map[FieldType]bool{
	TypeText: true, TypeTextarea: true, TypeNumber: true,
	TypeRadio: true, TypeCheckbox: true, TypeSelect: true,
	TypeDate: true, TypeFile: true, TypeRating: true,
	TypeSlider: true, TypeTime: true,
}

func ParseFieldType(s string) (FieldType, error) {
	t := FieldType(s)
	if !fieldTypes[t] {
		return "", fmt.Errorf("unknown field type %q", s)
	}
	return t, nil
}

// HasOptions reports whether the type carries a configurable option list.
func (t FieldType) HasOptions() bool {
	return t == TypeRadio || t == TypeCheckbox || t == TypeSelect
}

// HasNumericRange reports whether min/max properties are meaningful.
// Rating is excluded: its scale is fixed at 1..5.
func (t FieldType) HasNumericRange() bool {
	return t == TypeNumber || t == TypeSlider
}

// HasStep reports whether a step property is meaningful.
func (t FieldType) HasStep() bool {
	return t == TypeSlider
}

// HasFileAccept reports whether an accept pattern is meaningful.
func (t FieldType) HasFileAccept() bool {
	return t == TypeFile
}

// IsNumeric reports whether submitted values are interpreted as numbers
// for range validation and summary statistics.
func (t FieldType) IsNumeric() bool {
	return t == TypeNumber || t == TypeRating || t == TypeSlider
}

// IsMultiValue reports whether submitted values are stored as an array.
func (t FieldType) IsMultiValue() bool {
	return t == TypeCheckbox
}

// IsFreeText reports whether the type collects free-form text.
func (t FieldType) IsFreeText() bool {
	return t == TypeText || t == TypeTextarea
}

const (
	RatingMin = 1
	RatingMax = 5
)
