package builder

import (
	"testing"

	"github.com/mlotta/formforge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFieldSeedsDefaults(t *testing.T) {
	s := State{FormID: NewFormID}

	s = s.AddField(model.TypeText, 0)
	require.Len(t, s.Fields, 1)
	assert.Equal(t, "New text field", s.Fields[0].Label)
	assert.NotEmpty(t, s.Fields[0].ID)
	assert.Empty(t, s.Fields[0].Options)

	s = s.AddField(model.TypeRadio, 1)
	require.Len(t, s.Fields, 2)
	assert.Equal(t, []model.Option{{Value: "option-1", Label: "Option 1"}}, s.Fields[1].Options)
}

func TestStateTransitionsDoNotShareFieldSlices(t *testing.T) {
	s := State{}.AddField(model.TypeText, 0).AddField(model.TypeNumber, 1)

	updated := s.UpdateField(s.Fields[0].ID, func(f *model.Field) {
		f.Label = "Changed"
	})

	assert.Equal(t, "New text field", s.Fields[0].Label)
	assert.Equal(t, "Changed", updated.Fields[0].Label)
}

func TestRemoveAndRestoreField(t *testing.T) {
	s := State{}.
		AddField(model.TypeText, 0).
		AddField(model.TypeNumber, 1).
		AddField(model.TypeDate, 2)

	removed := s.Fields[1]
	s = s.RemoveField(removed.ID)
	require.Len(t, s.Fields, 2)

	s = s.RestoreField(removed)
	require.Len(t, s.Fields, 3)
	assert.Equal(t, removed.ID, s.Fields[1].ID)
	assert.Equal(t, 1, s.Fields[1].Order)
}

func TestCanSave(t *testing.T) {
	s := State{}
	assert.False(t, s.CanSave())
	assert.True(t, s.AddField(model.TypeText, 0).CanSave())
}

func TestAddOptionNumbersSequentially(t *testing.T) {
	f := model.Field{Type: model.TypeSelect}

	f = AddOption(f)
	f = AddOption(f)
	require.Len(t, f.Options, 2)
	assert.Equal(t, model.Option{Value: "option-2", Label: "Option 2"}, f.Options[1])
}

func TestRenameOptionRederivesValue(t *testing.T) {
	f := AddOption(model.Field{Type: model.TypeRadio})

	f = RenameOption(f, 0, "Strongly  Agree")
	assert.Equal(t, model.Option{Value: "strongly-agree", Label: "Strongly  Agree"}, f.Options[0])

	// out-of-range index is ignored
	f = RenameOption(f, 5, "nope")
	require.Len(t, f.Options, 1)
}

func TestRemoveOption(t *testing.T) {
	f := AddOption(AddOption(model.Field{Type: model.TypeCheckbox}))

	f = RemoveOption(f, 0)
	require.Len(t, f.Options, 1)
	assert.Equal(t, "option-2", f.Options[0].Value)
}
