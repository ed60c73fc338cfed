package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/mlotta/formforge/model"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

var contentTypes = map[Format]string{
	FormatCSV:  "text/csv",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
	FormatDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if _, ok := contentTypes[f]; !ok {
		return "", fmt.Errorf("unknown export format %q", s)
	}
	return f, nil
}

// Document is one rendered export: payload, canonical MIME type and
// download filename.
type Document struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Table is the single source all four renderers draw from, which is
// what keeps column ordering and cell text identical across formats.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

const submittedAtColumn = "Submitted At"

// BuildTable flattens a (form, responses) pair: one column per field
// in ascending order behind a fixed "Submitted At" column, one row per
// response with every stored value rendered as cell text.
func BuildTable(form model.Form, responses []model.Response) Table {
	fields := make([]model.Field, len(form.Fields))
	copy(fields, form.Fields)
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})

	headers := make([]string, 0, len(fields)+1)
	headers = append(headers, submittedAtColumn)
	for _, f := range fields {
		headers = append(headers, f.Label)
	}

	rows := make([][]string, 0, len(responses))
	for _, r := range responses {
		row := make([]string, 0, len(headers))
		row = append(row, r.SubmittedAt.Format("2006-01-02 15:04:05"))
		for _, f := range fields {
			row = append(row, renderCell(r.Data[f.ID]))
		}
		rows = append(rows, row)
	}

	return Table{Title: form.Title, Headers: headers, Rows: rows}
}

// renderCell turns one stored value into cell text: arrays join with
// ", ", objects JSON-stringify, missing values render empty.
func renderCell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		out := ""
		for i, e := range v {
			if i > 0 {
				out += ", "
			}
			out += e
		}
		return out
	case []any:
		out := ""
		for i, e := range v {
			if i > 0 {
				out += ", "
			}
			out += renderCell(e)
		}
		return out
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case map[string]any:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	default:
		return fmt.Sprint(v)
	}
}

// Export renders the form's responses in the requested format.
func Export(form model.Form, responses []model.Response, format Format) (Document, error) {
	table := BuildTable(form, responses)

	var data []byte
	var err error
	switch format {
	case FormatCSV:
		data, err = renderCSV(table)
	case FormatXLSX:
		data, err = renderXLSX(table)
	case FormatPDF:
		data, err = renderPDF(table)
	case FormatDOCX:
		data, err = renderDOCX(table)
	default:
		return Document{}, fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return Document{}, fmt.Errorf("export %s: %w", format, err)
	}

	return Document{
		Data:        data,
		ContentType: contentTypes[format],
		Filename:    fmt.Sprintf("%s Responses.%s", form.Title, format),
	}, nil
}

func renderCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	err := w.Write(t.Headers)
	if err != nil {
		return nil, err
	}
	err = w.WriteAll(t.Rows)
	if err != nil {
		return nil, err
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
