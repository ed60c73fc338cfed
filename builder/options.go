package builder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mlotta/formforge/model"
)

var reSpace = regexp.MustCompile(`\s+`)

// SlugValue derives an option value from its label: lowercase, runs of
// whitespace collapsed to hyphens. Values are never edited directly,
// they always track the label through this derivation.
func SlugValue(label string) string {
	return reSpace.ReplaceAllString(strings.ToLower(label), "-")
}

// AddOption appends the next "Option N" to the field's option list.
func AddOption(f model.Field) model.Field {
	n := len(f.Options) + 1
	f.Options = append(cloneOptions(f.Options), model.Option{
		Value: fmt.Sprintf("option-%d", n),
		Label: fmt.Sprintf("Option %d", n),
	})
	return f
}

// RenameOption sets the option's label and re-derives its value.
func RenameOption(f model.Field, index int, label string) model.Field {
	if index < 0 || index >= len(f.Options) {
		return f
	}
	opts := cloneOptions(f.Options)
	opts[index] = model.Option{Value: SlugValue(label), Label: label}
	f.Options = opts
	return f
}

// RemoveOption splices the option at index out of the list.
func RemoveOption(f model.Field, index int) model.Field {
	if index < 0 || index >= len(f.Options) {
		return f
	}
	opts := cloneOptions(f.Options)
	f.Options = append(opts[:index], opts[index+1:]...)
	return f
}

func cloneOptions(opts []model.Option) []model.Option {
	out := make([]model.Option, len(opts))
	copy(out, opts)
	return out
}
