package submit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/mlotta/formforge/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForms struct {
	form     model.Form
	existing map[string]bool
	inserted []model.Response
}

func (f *fakeForms) GetForm(ctx context.Context, id int, owner string) (model.Form, error) {
	return f.form, nil
}

func (f *fakeForms) HasResponseFromEmail(ctx context.Context, formID int, email string) (bool, error) {
	return f.existing[email], nil
}

func (f *fakeForms) InsertResponse(ctx context.Context, resp model.Response) (model.Response, error) {
	resp.ID = fmt.Sprintf("r%d", len(f.inserted))
	f.inserted = append(f.inserted, resp)
	return resp, nil
}

type fakeFiles struct {
	mu      sync.Mutex
	failOn  string
	uploads map[string]string
}

func (f *fakeFiles) Upload(path string, r io.Reader) (string, error) {
	if f.failOn != "" && strings.Contains(path, f.failOn) {
		return "", errors.New("disk full")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploads == nil {
		f.uploads = map[string]string{}
	}
	f.uploads[path] = string(data)
	return f.PublicURL(path), nil
}

func (f *fakeFiles) PublicURL(path string) string {
	return "http://files.test/" + path
}

func (f *fakeFiles) Remove(path string) error {
	return nil
}

func uploaded(name, content string) File {
	return File{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func floatPtr(n float64) *float64 {
	return &n
}

func TestSubmitRejectsMissingRequiredField(t *testing.T) {
	forms := &fakeForms{form: model.Form{ID: 1, Fields: []model.Field{
		{ID: "q1", Type: model.TypeText, Label: "Favorite color", Required: true},
	}}}
	p := NewPipeline(forms, &fakeFiles{})

	_, err := p.Submit(context.Background(), 1, Input{
		Values: map[string][]string{"q1": {""}},
	})

	require.EqualError(t, err, "Favorite color is a required field.")
	var verr ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Empty(t, forms.inserted)
}

func TestSubmitRejectsNumberBelowMin(t *testing.T) {
	forms := &fakeForms{form: model.Form{ID: 1, Fields: []model.Field{
		{
			ID: "age", Type: model.TypeNumber, Label: "Age",
			Properties: &model.Properties{Min: floatPtr(18), Max: floatPtr(99)},
		},
	}}}
	p := NewPipeline(forms, &fakeFiles{})

	_, err := p.Submit(context.Background(), 1, Input{
		Values: map[string][]string{"age": {"10"}},
	})
	require.EqualError(t, err, "Age must be at least 18.")

	_, err = p.Submit(context.Background(), 1, Input{
		Values: map[string][]string{"age": {"120"}},
	})
	require.EqualError(t, err, "Age must be no more than 99.")

	assert.Empty(t, forms.inserted)
}

func TestSubmitNormalizesCheckboxToArray(t *testing.T) {
	forms := &fakeForms{form: model.Form{ID: 1, Fields: []model.Field{
		{ID: "interests", Type: model.TypeCheckbox, Label: "Interests", Options: []model.Option{
			{Value: "sports", Label: "Sports"},
			{Value: "music", Label: "Music"},
		}},
	}}}
	p := NewPipeline(forms, &fakeFiles{})

	resp, err := p.Submit(context.Background(), 1, Input{
		Values: map[string][]string{"interests": {"sports", "music"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sports", "music"}, resp.Data["interests"])

	resp, err = p.Submit(context.Background(), 1, Input{})
	require.NoError(t, err)
	assert.Equal(t, []string{}, resp.Data["interests"])
}

func TestSubmitUploadsFileAndStoresURL(t *testing.T) {
	forms := &fakeForms{form: model.Form{ID: 7, Fields: []model.Field{
		{ID: "cv", Type: model.TypeFile, Label: "Resume"},
	}}}
	files := &fakeFiles{}
	p := NewPipeline(forms, files)

	resp, err := p.Submit(context.Background(), 7, Input{
		Files: map[string][]File{"cv": {uploaded("resume.pdf", "pdf bytes")}},
	})
	require.NoError(t, err)

	url, ok := resp.Data["cv"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(url, "http://files.test/form_uploads/7/"))
	assert.True(t, strings.HasSuffix(url, "-resume.pdf"))
	require.Len(t, files.uploads, 1)
}

func TestSubmitFailedUploadAbortsWholeSubmission(t *testing.T) {
	forms := &fakeForms{form: model.Form{ID: 1, Fields: []model.Field{
		{ID: "a", Type: model.TypeFile, Label: "Attachment A"},
		{ID: "b", Type: model.TypeFile, Label: "Attachment B"},
	}}}
	p := NewPipeline(forms, &fakeFiles{failOn: "bad.bin"})

	_, err := p.Submit(context.Background(), 1, Input{
		Files: map[string][]File{
			"a": {uploaded("good.bin", "ok")},
			"b": {uploaded("bad.bin", "boom")},
		},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "File upload failed for Attachment B")
	assert.Empty(t, forms.inserted)
}

func TestSubmitEnforcesOneResponsePerEmail(t *testing.T) {
	forms := &fakeForms{
		form:     model.Form{ID: 1, LimitOnePerEmail: true},
		existing: map[string]bool{"dup@example.com": true},
	}
	p := NewPipeline(forms, &fakeFiles{})

	_, err := p.Submit(context.Background(), 1, Input{SubmitterEmail: "dup@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	_, err = p.Submit(context.Background(), 1, Input{SubmitterEmail: "not-an-email"})
	require.EqualError(t, err, "Please enter a valid email address.")

	_, err = p.Submit(context.Background(), 1, Input{SubmitterEmail: "new@example.com"})
	require.NoError(t, err)
	require.Len(t, forms.inserted, 1)
	assert.Equal(t, "new@example.com", forms.inserted[0].SubmitterEmail)
}

func TestInflightGuard(t *testing.T) {
	g := newInflight()

	assert.True(t, g.acquire("k"))
	assert.False(t, g.acquire("k"))
	g.release("k")
	assert.True(t, g.acquire("k"))
}
