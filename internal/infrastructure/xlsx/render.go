// Package xlsx собирает выгрузку раздела дашборда в книгу Excel.
package xlsx

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"macroDash/internal/domain"
)

// ContentType — MIME-тип книги .xlsx.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	maxSheetName = 31
	columnWidth  = 18
)

// Render раскладывает отчёт по листам книги: заголовок жирным, строки как есть.
// Пустой отчёт даёт книгу с одним пустым листом с названием раздела.
func Render(rep domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx style: %w", err)
	}

	first := f.GetSheetName(0)
	if len(rep.Sheets) == 0 {
		if err := f.SetSheetName(first, sheetName(rep.Title, nil)); err != nil {
			return nil, fmt.Errorf("xlsx rename sheet: %w", err)
		}
	}

	used := make(map[string]bool, len(rep.Sheets))
	for i, s := range rep.Sheets {
		name := sheetName(s.Name, used)
		used[strings.ToLower(name)] = true
		if i == 0 {
			err = f.SetSheetName(first, name)
		} else {
			_, err = f.NewSheet(name)
		}
		if err != nil {
			return nil, fmt.Errorf("xlsx sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, s, headerStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func writeSheet(f *excelize.File, name string, s domain.ReportSheet, headerStyle int) error {
	if len(s.Header) > 0 {
		header := make([]any, len(s.Header))
		for i, h := range s.Header {
			header[i] = h
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return fmt.Errorf("xlsx header %q: %w", name, err)
		}
		last, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
		if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("xlsx header style %q: %w", name, err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(s.Header))
		if err := f.SetColWidth(name, "A", lastCol, columnWidth); err != nil {
			return fmt.Errorf("xlsx width %q: %w", name, err)
		}
	}
	start := 1
	if len(s.Header) > 0 {
		start = 2
	}
	for i, row := range s.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, start+i)
		r := row
		if err := f.SetSheetRow(name, cell, &r); err != nil {
			return fmt.Errorf("xlsx row %d of %q: %w", i+1, name, err)
		}
	}
	return nil
}

// sheetName приводит имя к ограничениям Excel: без []:*?/\, не длиннее 31 символа, уникально в книге.
func sheetName(name string, used map[string]bool) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "Planilha"
	}
	base := truncate(name, maxSheetName)
	name = base
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncate(base, maxSheetName-len([]rune(suffix))) + suffix
	}
	return name
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
