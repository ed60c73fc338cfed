package builder

import "github.com/mlotta/formforge/model"

// Field ordering. Every operation returns a fresh slice whose Order
// values are exactly 0..n-1, so callers never observe gaps, duplicates
// or a partially renumbered list.

func renumber(fields []model.Field) []model.Field {
	out := make([]model.Field, len(fields))
	for i, f := range fields {
		f.Order = i
		out[i] = f
	}
	return out
}

// Insert splices newField into the list at the given index and
// renumbers. An index past the end appends, a negative index prepends.
func Insert(fields []model.Field, newField model.Field, at int) []model.Field {
	if at < 0 {
		at = 0
	}
	if at > len(fields) {
		at = len(fields)
	}
	out := make([]model.Field, 0, len(fields)+1)
	out = append(out, fields[:at]...)
	out = append(out, newField)
	out = append(out, fields[at:]...)
	return renumber(out)
}

// Remove drops the field with the given id and closes the gap.
// An unknown id leaves the list unchanged apart from renumbering.
func Remove(fields []model.Field, fieldID string) []model.Field {
	out := make([]model.Field, 0, len(fields))
	for _, f := range fields {
		if f.ID != fieldID {
			out = append(out, f)
		}
	}
	return renumber(out)
}

// Move relocates the field fromID to the position currently occupied
// by toID. Moving a field onto itself, or naming an unknown id, keeps
// the relative order but still renumbers.
func Move(fields []model.Field, fromID, toID string) []model.Field {
	from, to := indexOf(fields, fromID), indexOf(fields, toID)
	if from < 0 || to < 0 || from == to {
		return renumber(fields)
	}
	out := make([]model.Field, 0, len(fields))
	out = append(out, fields...)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]model.Field{moved}, out[to:]...)...)
	return renumber(out)
}

// Restore re-inserts a previously removed field at its captured Order
// index, so Remove followed by Restore round-trips the list.
func Restore(fields []model.Field, removed model.Field) []model.Field {
	return Insert(fields, removed, removed.Order)
}

func indexOf(fields []model.Field, id string) int {
	for i, f := range fields {
		if f.ID == id {
			return i
		}
	}
	return -1
}
