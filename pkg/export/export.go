// Package export renders tabular data to XLSX workbooks. Column layouts are
// declared in YAML so deployments can reorder or drop columns without a code
// change.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"
)

// Column maps one field of a row onto a spreadsheet column.
type Column struct {
	Header string  `yaml:"header"`
	Field  string  `yaml:"field"`
	Width  float64 `yaml:"width"`
}

// Layout describes one exported sheet.
type Layout struct {
	Sheet   string   `yaml:"sheet"`
	Columns []Column `yaml:"columns"`
}

// Row is one record keyed by field name. Missing fields render as empty
// cells.
type Row map[string]interface{}

// ParseLayout reads a YAML layout document.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse export layout: %w", err)
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Layout) validate() error {
	if l.Sheet == "" {
		return fmt.Errorf("export layout: sheet name is required")
	}
	if len(l.Columns) == 0 {
		return fmt.Errorf("export layout: at least one column is required")
	}
	for i, c := range l.Columns {
		if c.Header == "" || c.Field == "" {
			return fmt.Errorf("export layout: column %d needs both header and field", i)
		}
	}
	return nil
}

// Write renders rows under the layout into an XLSX workbook on w.
func (l *Layout) Write(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, l.Sheet); err != nil {
		return fmt.Errorf("rename export sheet: %w", err)
	}
	sheet = l.Sheet

	for i, col := range l.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			return err
		}
		if col.Width > 0 {
			name, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
				return err
			}
		}
	}

	for r, row := range rows {
		for c, col := range l.Columns {
			value, ok := row[col.Field]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write export workbook: %w", err)
	}
	return nil
}
