package submit

import (
	"context"
	"fmt"
	"io"
	"path"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/mlotta/formforge/model"
	"github.com/mlotta/formforge/storage"
	"golang.org/x/sync/errgroup"
)

// File is one uploaded file attached to a submission. Open is called
// at most once, when the upload is issued.
type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Input is the raw submitted payload of one response: form-encoded
// values plus uploaded files, both keyed by field id.
type Input struct {
	Values         map[string][]string
	Files          map[string][]File
	SubmitterEmail string
}

// ValidationError carries the single human-readable message shown to
// the submitter, naming the offending field.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string {
	return e.msg
}

func validationErrorf(format string, args ...any) error {
	return ValidationError{msg: fmt.Sprintf(format, args...)}
}

// Validate runs all pre-persistence checks: required fields first,
// then numeric range bounds. It never touches storage, so a rejected
// submission uploads nothing.
func Validate(fields []model.Field, in Input) error {
	for _, f := range fields {
		values := in.Values[f.ID]
		hasValue := len(values) > 0 && values[0] != ""
		hasFile := len(in.Files[f.ID]) > 0

		if f.Required && !hasValue && !hasFile {
			return validationErrorf("%s is a required field.", f.Label)
		}

		if f.Type == model.TypeNumber && hasValue && f.Properties != nil {
			n, err := strconv.ParseFloat(values[0], 64)
			if err != nil {
				continue
			}
			if f.Properties.Min != nil && n < *f.Properties.Min {
				return validationErrorf("%s must be at least %s.", f.Label, formatNumber(*f.Properties.Min))
			}
			if f.Properties.Max != nil && n > *f.Properties.Max {
				return validationErrorf("%s must be no more than %s.", f.Label, formatNumber(*f.Properties.Max))
			}
		}
	}
	return nil
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Normalize maps the raw submitted values into the per-field keyed
// data record to persist:
//   - checkbox groups become arrays of selected option values, empty
//     array when none selected;
//   - every other non-file field becomes its scalar value, the key is
//     omitted when nothing was submitted;
//   - file fields become the resolved public URL once the upload
//     completes; uploads run concurrently and any failure aborts the
//     whole submission before anything is persisted.
func Normalize(ctx context.Context, formID int, fields []model.Field, in Input, files storage.Store) (map[string]any, error) {
	data := map[string]any{}
	var mu sync.Mutex

	grp, ctx := errgroup.WithContext(ctx)
	for _, f := range fields {
		switch {
		case f.Type == model.TypeFile:
			uploads := in.Files[f.ID]
			if len(uploads) == 0 {
				continue
			}
			f, upload := f, uploads[0]
			grp.Go(func() error {
				url, err := uploadFile(ctx, formID, upload, files)
				if err != nil {
					return validationErrorf("File upload failed for %s: %s", f.Label, err)
				}
				mu.Lock()
				data[f.ID] = url
				mu.Unlock()
				return nil
			})

		case f.Type.IsMultiValue():
			selected := in.Values[f.ID]
			if selected == nil {
				selected = []string{}
			}
			data[f.ID] = selected

		default:
			values := in.Values[f.ID]
			if len(values) > 0 {
				data[f.ID] = values[0]
			}
		}
	}

	err := grp.Wait()
	if err != nil {
		// sibling uploads that already finished are not cleaned up
		return nil, err
	}
	return data, nil
}

func uploadFile(ctx context.Context, formID int, upload File, files storage.Store) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r, err := upload.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()

	p := fmt.Sprintf("form_uploads/%d/%s-%s", formID, uuid.NewString(), path.Base(upload.Name))
	return files.Upload(p, r)
}
