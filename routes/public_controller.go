package routes

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mlotta/formforge/app"
	"github.com/mlotta/formforge/httpx"
	"github.com/mlotta/formforge/log"
	"github.com/mlotta/formforge/store"
	"github.com/mlotta/formforge/submit"
)

const maxSubmissionMemory = 32 << 20 // 32 MiB before multipart spills to disk

func PublicGetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form, err := app.GetForm(r.Context(), formId, "")
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "get_form", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}

		render.JSON(w, r, form)
	}
}

func PublicSubmitForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		in, err := parseSubmission(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		_, err = app.Submissions.Submit(r.Context(), formId, in)
		switch {
		case err == nil:
			w.WriteHeader(http.StatusCreated)
			render.JSON(w, r, map[string]any{
				"success": true,
			})

		case errors.Is(err, store.ErrNotFound):
			httpx.LogNotFound(w, "submit_response", formId)

		case errors.Is(err, submit.ErrDuplicateEmail):
			httpx.LogErrorJSON(w, r, http.StatusConflict, "submit_response.duplicate_email", err)

		case isValidation(err):
			httpx.LogErrorJSON(w, r, http.StatusUnprocessableEntity, "submit_response.validate", err)

		default:
			log.Errorf("submit_response: %s", err)
			httpx.LogErrorJSON(w, r, http.StatusInternalServerError, "submit_response",
				errors.New("There was an error submitting your response."))
		}
	}
}

func isValidation(err error) bool {
	var verr submit.ValidationError
	return errors.As(err, &verr)
}

// parseSubmission accepts multipart (file uploads included) or plain
// form-encoded bodies. The submitter_email key is reserved, everything
// else is a field id.
func parseSubmission(r *http.Request) (submit.Input, error) {
	in := submit.Input{
		Values: map[string][]string{},
		Files:  map[string][]submit.File{},
	}

	err := r.ParseMultipartForm(maxSubmissionMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return in, err
	}

	for key, values := range r.Form {
		if key == "submitter_email" {
			if len(values) > 0 {
				in.SubmitterEmail = values[0]
			}
			continue
		}
		in.Values[key] = values
	}

	if r.MultipartForm != nil {
		for key, headers := range r.MultipartForm.File {
			for _, fh := range headers {
				fh := fh
				in.Files[key] = append(in.Files[key], submit.File{
					Name: fh.Filename,
					Open: func() (io.ReadCloser, error) {
						return fh.Open()
					},
				})
			}
		}
	}

	return in, nil
}
