package model

import "time"

type Form struct {
	ID               int       `json:"id,omitempty"`
	Owner            string    `json:"-"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Fields           []Field   `json:"fields"`
	LimitOnePerEmail bool      `json:"limit_one_response_per_email"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
	ResponseCount    int       `json:"response_count,omitempty"`
}

type Field struct {
	ID          string      `json:"id"`
	Type        FieldType   `json:"type"`
	Label       string      `json:"label"`
	Placeholder string      `json:"placeholder,omitempty"`
	Required    bool        `json:"required"`
	Options     []Option    `json:"options,omitempty"`
	Properties  *Properties `json:"properties,omitempty"`
	Order       int         `json:"order"`
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Properties holds type-specific configuration. Which members are
// meaningful depends on the field type, see FieldType capabilities.
type Properties struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Step     *float64 `json:"step,omitempty"`
	Accept   string   `json:"accept,omitempty"`
	HelpText string   `json:"help_text,omitempty"`
}

// Response data values are strings, []string for multi-select fields,
// or file URLs (strings). Keys are ids of fields that existed on the
// form at submission time.
type Response struct {
	ID             string         `json:"id"`
	FormID         int            `json:"form_id"`
	SubmittedAt    time.Time      `json:"submitted_at"`
	SubmitterEmail string         `json:"submitter_email,omitempty"`
	Data           map[string]any `json:"data"`
}
