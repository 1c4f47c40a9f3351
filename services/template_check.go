package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// wideHeaderRows is the height of the header block on wide-form sheets: the
// two marker rows plus the term-name row. Data starts on the next row.
const wideHeaderRows = 3

// CheckFinding is a single problem found in an uploaded filled template.
type CheckFinding struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

// CheckReport summarizes the validation of one uploaded sampleMetadata sheet.
type CheckReport struct {
	Sheet     string         `json:"sheet"`
	TotalRows int            `json:"total_rows"`
	ValidRows int            `json:"valid_rows"`
	ErrorRows int            `json:"error_rows"`
	Findings  []CheckFinding `json:"findings"`
}

// CheckSampleSheet validates a filled template workbook against the checklist
// and a run configuration. It checks the sampleMetadata sheet: the header
// block must be intact, every mandatory column must be present and filled on
// each data row, and controlled-vocabulary cells must hold listed values.
// Structural problems (missing sheet, missing markers) are returned as
// errors; per-cell problems are collected as findings.
func CheckSampleSheet(cl *Checklist, cfg RunConfig, file io.Reader) (*CheckReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetSample)
	if err != nil {
		return nil, fmt.Errorf("workbook has no %s sheet", SheetSample)
	}
	if len(rows) < wideHeaderRows {
		return nil, fmt.Errorf("%s sheet is missing its header block", SheetSample)
	}
	if cellAt(rows[0], 0) != markerSection || cellAt(rows[1], 0) != markerLevel {
		return nil, fmt.Errorf("%s sheet is missing the %q and %q marker rows", SheetSample, markerSection, markerLevel)
	}

	// Map the uploaded columns onto the fields this configuration selects.
	expected := make(map[string]SheetField)
	for _, fld := range cl.FilterSheet(SheetSample, cfg) {
		expected[fld.Term] = fld
	}

	report := &CheckReport{Sheet: SheetSample}
	termRow := rows[wideHeaderRows-1]
	columns := make([]string, len(termRow))
	present := make(map[string]bool, len(termRow))
	for i, cell := range termRow {
		term := strings.TrimSpace(cell)
		if term == "" {
			continue
		}
		if _, ok := expected[term]; !ok {
			report.Findings = append(report.Findings, CheckFinding{
				Row:     wideHeaderRows,
				Column:  term,
				Message: fmt.Sprintf("%s is not part of this template", term),
			})
			continue
		}
		columns[i] = term
		present[term] = true
	}
	for term, fld := range expected {
		if fld.LevelCode == "M" && !present[term] {
			report.Findings = append(report.Findings, CheckFinding{
				Row:     wideHeaderRows,
				Column:  term,
				Message: fmt.Sprintf("mandatory column %s is missing", term),
			})
		}
	}

	// Validate each data row.
	for rowIdx, row := range rows[wideHeaderRows:] {
		if blankRow(row) {
			continue
		}
		rowNum := rowIdx + wideHeaderRows + 1
		report.TotalRows++

		values := make(map[string]string, len(columns))
		for colIdx, term := range columns {
			if term == "" {
				continue
			}
			values[term] = cellAt(row, colIdx)
		}

		for term, value := range values {
			fld := expected[term]
			if value == "" {
				if fld.LevelCode == "M" {
					report.Findings = append(report.Findings, CheckFinding{
						Row:     rowNum,
						Column:  term,
						Message: fmt.Sprintf("%s is required", term),
					})
				}
				continue
			}
			options, ok := cl.Options(term)
			if ok && !containsFold(options, value) {
				report.Findings = append(report.Findings, CheckFinding{
					Row:     rowNum,
					Column:  term,
					Message: fmt.Sprintf("%q is not an allowed value", value),
				})
			}
		}
	}

	// Header-block findings do not count against data rows.
	errorRows := make(map[int]bool)
	for _, finding := range report.Findings {
		if finding.Row > wideHeaderRows {
			errorRows[finding.Row] = true
		}
	}
	report.ErrorRows = len(errorRows)
	report.ValidRows = report.TotalRows - report.ErrorRows

	return report, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func containsFold(options []string, value string) bool {
	for _, opt := range options {
		if strings.EqualFold(opt, value) {
			return true
		}
	}
	return false
}
