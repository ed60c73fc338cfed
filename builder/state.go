package builder

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mlotta/formforge/model"
)

// State is the serializable builder session: everything the canvas
// shows, independent of any UI framework. Transitions are pure, they
// return a new State and never mutate the receiver's field slice.
type State struct {
	FormID           string        `json:"form_id"`
	Title            string        `json:"title"`
	Description      string        `json:"description"`
	Fields           []model.Field `json:"fields"`
	LimitOnePerEmail bool          `json:"limit_one_response_per_email"`
}

// NewFormID is the sentinel form id of a builder session that has not
// been saved yet.
const NewFormID = "new"

// AddField appends a field of the given type at the index, seeded the
// way the palette seeds it: a placeholder label and, for choice types,
// a single starter option.
func (s State) AddField(t model.FieldType, at int) State {
	f := model.Field{
		ID:    uuid.NewString(),
		Type:  t,
		Label: fmt.Sprintf("New %s field", t),
	}
	if t.HasOptions() {
		f.Options = []model.Option{{Value: "option-1", Label: "Option 1"}}
	}
	s.Fields = Insert(s.Fields, f, at)
	return s
}

func (s State) RemoveField(id string) State {
	s.Fields = Remove(s.Fields, id)
	return s
}

func (s State) MoveField(fromID, toID string) State {
	s.Fields = Move(s.Fields, fromID, toID)
	return s
}

// RestoreField is the undo of RemoveField: the captured field goes
// back to its original position.
func (s State) RestoreField(removed model.Field) State {
	s.Fields = Restore(s.Fields, removed)
	return s
}

// UpdateField applies fn to the field with the given id. Unknown ids
// are ignored.
func (s State) UpdateField(id string, fn func(*model.Field)) State {
	out := make([]model.Field, len(s.Fields))
	copy(out, s.Fields)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
			break
		}
	}
	s.Fields = out
	return s
}

// CanSave reports whether the session may be persisted. A form with no
// fields cannot be saved.
func (s State) CanSave() bool {
	return len(s.Fields) > 0
}
