package export

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

func renderXLSX(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(t.Title)
	err := f.SetSheetName("Sheet1", sheet)
	if err != nil {
		return nil, err
	}

	err = writeRow(f, sheet, 1, t.Headers)
	if err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		err = writeRow(f, sheet, i+2, row)
		if err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
	if err != nil {
		return nil, err
	}
	err = f.SetCellStyle(sheet, "A1", lastHeader, bold)
	if err != nil {
		return nil, err
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.Headers))
	if err != nil {
		return nil, err
	}
	err = f.SetColWidth(sheet, "A", lastCol, 30)
	if err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []string) error {
	for col, cell := range cells {
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		err = f.SetCellValue(sheet, name, cell)
		if err != nil {
			return err
		}
	}
	return nil
}

// sheetName fits the form title into the worksheet name rules: the
// characters :\/?*[] are forbidden and names cap at 31 runes.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, title)
	name = strings.TrimSpace(name)

	runes := []rune(name)
	if len(runes) > 31 {
		name = string(runes[:31])
	}
	if name == "" {
		name = "Responses"
	}
	return name
}
