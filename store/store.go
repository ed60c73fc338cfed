package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mlotta/formforge/model"
)

// ErrNotFound is returned when a form does not exist or is not owned
// by the requesting user.
var ErrNotFound = errors.New("form not found")

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateForm inserts the form row and its fields in one transaction,
// so a failed field insert can never leave an orphaned, fieldless form
// behind. Fields are numbered by position. Returns the new form id.
func (s *Store) CreateForm(ctx context.Context, form model.Form) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var formID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO form (owner, title, description, limit_one_per_email)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		form.Owner,
		form.Title,
		form.Description,
		form.LimitOnePerEmail,
	).Scan(&formID)
	if err != nil {
		return 0, err
	}

	err = insertFields(ctx, tx, formID, form.Fields)
	if err != nil {
		return 0, err
	}

	return formID, tx.Commit()
}

// UpdateForm replaces the form's metadata and its whole field list.
// Field replace is delete-all-then-insert, inside the same transaction
// as the metadata update: there is no observable window where the form
// has no fields.
func (s *Store) UpdateForm(ctx context.Context, form model.Form) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE form
		SET
			title = ?,
			description = ?,
			limit_one_per_email = ?
		WHERE	id = ?
			AND owner = ?`,
		form.Title,
		form.Description,
		form.LimitOnePerEmail,
		form.ID,
		form.Owner,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n < 1 {
		return ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM form_field
		WHERE form_id = ?`,
		form.ID,
	)
	if err != nil {
		return err
	}

	err = insertFields(ctx, tx, form.ID, form.Fields)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func insertFields(ctx context.Context, tx *sql.Tx, formID int, fields []model.Field) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO form_field (id, form_id, type, label, placeholder, required, options, properties, ord)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, f := range fields {
		if f.ID == "" {
			f.ID = uuid.NewString()
		}

		var optionsJson, propertiesJson []byte
		if f.Options != nil {
			optionsJson, err = json.Marshal(f.Options)
			if err != nil {
				return err
			}
		}
		if f.Properties != nil {
			propertiesJson, err = json.Marshal(f.Properties)
			if err != nil {
				return err
			}
		}

		_, err = stmt.ExecContext(ctx,
			f.ID, formID, f.Type, f.Label, f.Placeholder, f.Required,
			string(optionsJson), string(propertiesJson), i,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetForm loads a form and its fields in ascending order. An empty
// owner skips the ownership check (public form view).
func (s *Store) GetForm(ctx context.Context, id int, owner string) (form model.Form, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT id, owner, title, description, limit_one_per_email, created_at
		FROM form
		WHERE id = ?`,
		id,
	).Scan(&form.ID, &form.Owner, &form.Title, &form.Description, &form.LimitOnePerEmail, &form.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return form, ErrNotFound
	}
	if err != nil {
		return form, err
	}
	if owner != "" && form.Owner != owner {
		return model.Form{}, ErrNotFound
	}

	form.Fields, err = s.ListFields(ctx, id)
	return form, err
}

// ListFields returns the form's fields sorted by their order column.
func (s *Store) ListFields(ctx context.Context, formID int) ([]model.Field, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, label, placeholder, required, options, properties, ord
		FROM form_field
		WHERE form_id = ?
		ORDER BY ord`,
		formID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := []model.Field{}
	for rows.Next() {
		f := model.Field{}
		var opts, props string
		err = rows.Scan(&f.ID, &f.Type, &f.Label, &f.Placeholder, &f.Required, &opts, &props, &f.Order)
		if err != nil {
			return nil, err
		}

		if opts != "" {
			err = json.Unmarshal([]byte(opts), &f.Options)
			if err != nil {
				return nil, fmt.Errorf("field %s options: %w", f.ID, err)
			}
		}
		if props != "" {
			err = json.Unmarshal([]byte(props), &f.Properties)
			if err != nil {
				return nil, fmt.Errorf("field %s properties: %w", f.ID, err)
			}
		}

		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// ListForms returns the owner's forms with derived response counts,
// most recent first. Fields are not loaded.
func (s *Store) ListForms(ctx context.Context, owner string) ([]model.Form, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			f.id, f.title, f.description, f.limit_one_per_email, f.created_at,
			(SELECT count(*) FROM form_response r WHERE r.form_id = f.id)
		FROM form f
		WHERE f.owner = ?
		ORDER BY f.created_at DESC`,
		owner,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	forms := []model.Form{}
	for rows.Next() {
		f := model.Form{Owner: owner}
		err = rows.Scan(&f.ID, &f.Title, &f.Description, &f.LimitOnePerEmail, &f.CreatedAt, &f.ResponseCount)
		if err != nil {
			return nil, err
		}
		forms = append(forms, f)
	}
	return forms, rows.Err()
}

// InsertResponse stores one submission as a single JSON blob. The
// response id is assigned here when empty.
func (s *Store) InsertResponse(ctx context.Context, resp model.Response) (model.Response, error) {
	if resp.ID == "" {
		resp.ID = uuid.NewString()
	}
	if resp.SubmittedAt.IsZero() {
		resp.SubmittedAt = time.Now()
	}

	dataJson, err := json.Marshal(resp.Data)
	if err != nil {
		return resp, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO form_response (id, form_id, submitted_at, submitter_email, data)
		VALUES (?, ?, ?, ?, ?)`,
		resp.ID,
		resp.FormID,
		resp.SubmittedAt,
		resp.SubmitterEmail,
		string(dataJson),
	)
	return resp, err
}

// ListResponses returns all responses to a form, most recent first.
func (s *Store) ListResponses(ctx context.Context, formID int) ([]model.Response, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, submitted_at, submitter_email, data
		FROM form_response
		WHERE form_id = ?
		ORDER BY submitted_at DESC, id`,
		formID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []model.Response{}
	for rows.Next() {
		r := model.Response{FormID: formID}
		var data string
		err = rows.Scan(&r.ID, &r.SubmittedAt, &r.SubmitterEmail, &data)
		if err != nil {
			return nil, err
		}

		err = json.Unmarshal([]byte(data), &r.Data)
		if err != nil {
			return nil, fmt.Errorf("response %s data: %w", r.ID, err)
		}

		responses = append(responses, r)
	}
	return responses, rows.Err()
}

// CountResponses returns how many responses a form has received.
func (s *Store) CountResponses(ctx context.Context, formID int) (n int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT count(*) FROM form_response
		WHERE form_id = ?`,
		formID,
	).Scan(&n)
	return
}

// HasResponseFromEmail is the advisory pre-check behind the
// one-response-per-email policy. It does not guard against two
// concurrent submissions passing it at once, see submit.Inflight.
func (s *Store) HasResponseFromEmail(ctx context.Context, formID int, email string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM form_response
		WHERE form_id = ?
			AND submitter_email = ?`,
		formID,
		email,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// DeleteForm removes the form; fields and responses go with it through
// the cascading foreign keys. The deleted form and its fields are
// returned so the caller can offer an undo window.
func (s *Store) DeleteForm(ctx context.Context, id int, owner string) (model.Form, error) {
	form, err := s.GetForm(ctx, id, owner)
	if err != nil {
		return form, err
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM form
		WHERE id = ?
			AND owner = ?`,
		id,
		owner,
	)
	if err != nil {
		return form, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return form, err
	}
	if n < 1 {
		return form, ErrNotFound
	}
	return form, nil
}

// RestoreForm re-inserts a deleted form and its fields verbatim,
// keeping the original id and creation time. Responses are gone for
// good, the undo window only covers the form definition.
func (s *Store) RestoreForm(ctx context.Context, form model.Form) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO form (id, owner, title, description, limit_one_per_email, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		form.ID,
		form.Owner,
		form.Title,
		form.Description,
		form.LimitOnePerEmail,
		form.CreatedAt,
	)
	if err != nil {
		return err
	}

	err = insertFields(ctx, tx, form.ID, form.Fields)
	if err != nil {
		return err
	}

	return tx.Commit()
}
