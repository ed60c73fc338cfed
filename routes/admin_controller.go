package routes

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"
	"github.com/go-chi/render"
	"github.com/mlotta/formforge/app"
	"github.com/mlotta/formforge/export"
	"github.com/mlotta/formforge/httpx"
	"github.com/mlotta/formforge/log"
	"github.com/mlotta/formforge/model"
	"github.com/mlotta/formforge/store"
	"github.com/mlotta/formforge/summary"
)

// currentUser is the token subject put in context by the admin
// middleware. Mutating operations scope every query to it.
func currentUser(r *http.Request) string {
	username, _ := r.Context().Value(oauth.CredentialContext).(string)
	return username
}

func validateFields(fields []model.Field) error {
	for _, f := range fields {
		err := f.Validate()
		if err != nil {
			return err
		}
	}
	return nil
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.Form{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = validateFields(form.Fields)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.DebugLevel, "create_form.validate", "%s", err)
			return
		}

		form.Owner = currentUser(r)
		formId, err := app.CreateForm(r.Context(), form)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": formId,
		})
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := app.Store.ListForms(r.Context(), currentUser(r))
		if err != nil {
			httpx.LogInternalError(w, "db.get_forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form, err := app.GetForm(r.Context(), formId, currentUser(r))
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "get_form", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}

		form.ResponseCount, err = app.CountResponses(r.Context(), formId)
		if err != nil {
			httpx.LogInternalError(w, "db.count_responses", err)
			return
		}
		render.JSON(w, r, form)
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form := model.Form{}
		err = render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = validateFields(form.Fields)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.DebugLevel, "update_form.validate", "%s", err)
			return
		}

		form.ID = formId
		form.Owner = currentUser(r)
		err = app.Store.UpdateForm(r.Context(), form)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "update_form", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.update_form", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		// the deleted definition goes back to the client so an undo
		// can re-create it verbatim
		deleted, err := app.Store.DeleteForm(r.Context(), formId, currentUser(r))
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "delete_form", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.delete_form", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"deleted": deleted,
		})
	}
}

func RestoreForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.Form{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if form.ID == 0 {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "restore_form.id")
			return
		}

		form.Owner = currentUser(r)
		err = app.Store.RestoreForm(r.Context(), form)
		if err != nil {
			httpx.LogInternalError(w, "db.restore_form", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": form.ID,
		})
	}
}

func GetFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, responses, ok := formWithResponses(app, w, r)
		if !ok {
			return
		}

		render.JSON(w, r, map[string]any{
			"form":      form,
			"responses": responses,
			"count":     len(responses),
		})
	}
}

func GetFormSummary(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, responses, ok := formWithResponses(app, w, r)
		if !ok {
			return
		}

		render.JSON(w, r, map[string]any{
			"count":   len(responses),
			"summary": summary.Aggregate(form, responses),
		})
	}
}

func ExportFormResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "export.format", "%s", err)
			return
		}

		form, responses, ok := formWithResponses(app, w, r)
		if !ok {
			return
		}

		doc, err := export.Export(form, responses, format)
		if err != nil {
			httpx.LogInternalError(w, "export.render", err)
			return
		}

		w.Header().Set("content-type", doc.ContentType)
		w.Header().Set("content-disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
		w.Write(doc.Data)
	}
}

func formWithResponses(app app.App, w http.ResponseWriter, r *http.Request) (model.Form, []model.Response, bool) {
	formId, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
		return model.Form{}, nil, false
	}

	form, err := app.GetForm(r.Context(), formId, currentUser(r))
	if errors.Is(err, store.ErrNotFound) {
		httpx.LogNotFound(w, "get_form", formId)
		return model.Form{}, nil, false
	}
	if err != nil {
		httpx.LogInternalError(w, "db.get_form", err)
		return model.Form{}, nil, false
	}

	responses, err := app.ListResponses(r.Context(), formId)
	if err != nil {
		httpx.LogInternalError(w, "db.get_responses", err)
		return model.Form{}, nil, false
	}

	form.ResponseCount = len(responses)
	return form, responses, true
}
