package submit

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/mlotta/formforge/model"
	"github.com/mlotta/formforge/storage"
)

// ErrDuplicateEmail marks a rejection under the one-response-per-email
// policy, so the caller can explain the restriction rather than show a
// generic validation failure.
var ErrDuplicateEmail = errors.New("this email address has already submitted a response to this form")

var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// FormStore is the slice of the persistence layer the submission
// pipeline needs.
type FormStore interface {
	GetForm(ctx context.Context, id int, owner string) (model.Form, error)
	HasResponseFromEmail(ctx context.Context, formID int, email string) (bool, error)
	InsertResponse(ctx context.Context, resp model.Response) (model.Response, error)
}

type Pipeline struct {
	forms    FormStore
	files    storage.Store
	inflight *inflight
}

func NewPipeline(forms FormStore, files storage.Store) *Pipeline {
	return &Pipeline{
		forms:    forms,
		files:    files,
		inflight: newInflight(),
	}
}

// Submit runs one public submission end to end: policy pre-checks,
// validation, normalization with file uploads, then a single response
// insert. No response record is written unless every step succeeded.
func (p *Pipeline) Submit(ctx context.Context, formID int, in Input) (model.Response, error) {
	form, err := p.forms.GetForm(ctx, formID, "")
	if err != nil {
		return model.Response{}, err
	}

	if form.LimitOnePerEmail {
		if !reEmail.MatchString(in.SubmitterEmail) {
			return model.Response{}, validationErrorf("Please enter a valid email address.")
		}

		// in-flight guard narrows the window between the advisory
		// read below and the insert; the check stays best-effort
		// across processes
		key := fmt.Sprintf("%d\x00%s", formID, in.SubmitterEmail)
		if !p.inflight.acquire(key) {
			return model.Response{}, ErrDuplicateEmail
		}
		defer p.inflight.release(key)

		exists, err := p.forms.HasResponseFromEmail(ctx, formID, in.SubmitterEmail)
		if err != nil {
			return model.Response{}, err
		}
		if exists {
			return model.Response{}, ErrDuplicateEmail
		}
	}

	err = Validate(form.Fields, in)
	if err != nil {
		return model.Response{}, err
	}

	data, err := Normalize(ctx, formID, form.Fields, in, p.files)
	if err != nil {
		return model.Response{}, err
	}

	return p.forms.InsertResponse(ctx, model.Response{
		FormID:         formID,
		SubmitterEmail: in.SubmitterEmail,
		Data:           data,
	})
}
