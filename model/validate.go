package model

import "fmt"

// Validate checks that the field's configuration is permitted for its
// type: options only on choice types, min/max/step only where a range
// is configurable, accept patterns only on file fields.
func (f Field) Validate() error {
	_, err := ParseFieldType(string(f.Type))
	if err != nil {
		return err
	}

	if len(f.Options) > 0 && !f.Type.HasOptions() {
		return fmt.Errorf("field %q: %s fields take no options", f.Label, f.Type)
	}

	if f.Properties != nil {
		p := f.Properties
		if (p.Min != nil || p.Max != nil) && !f.Type.HasNumericRange() {
			return fmt.Errorf("field %q: %s fields take no min/max", f.Label, f.Type)
		}
		if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
			return fmt.Errorf("field %q: min exceeds max", f.Label)
		}
		if p.Step != nil && !f.Type.HasStep() {
			return fmt.Errorf("field %q: %s fields take no step", f.Label, f.Type)
		}
		if p.Accept != "" && !f.Type.HasFileAccept() {
			return fmt.Errorf("field %q: %s fields take no accept pattern", f.Label, f.Type)
		}
	}

	return nil
}
