package services

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// validationRowSpan is how many data rows below the header block receive a
// dropdown validation on wide-form sheets.
const validationRowSpan = 100

// requirementColors maps requirement level codes to their fill colors.
var requirementColors = map[string]string{
	"M":  "#E26B0A",
	"HR": "#FFCC00",
	"R":  "#FFFF99",
	"O":  "#CCFF99",
}

// requirementDisplay maps codes to the display text used in comments and the
// README legend.
var requirementDisplay = map[string]string{
	"M":  "M = Mandatory",
	"HR": "HR = Highly recommended",
	"R":  "R = Recommended",
	"O":  "O = Optional",
}

type sheetStyles struct {
	bold   int
	levels map[string]int
}

func newSheetStyles(f *excelize.File) sheetStyles {
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	levels := make(map[string]int, len(requirementColors))
	for code, color := range requirementColors {
		style, _ := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		levels[code] = style
	}
	return sheetStyles{bold: bold, levels: levels}
}

// levelStyle returns the fill style for a requirement level code, or 0 when
// the code has no color.
func (s sheetStyles) levelStyle(code string) int {
	return s.levels[code]
}

// commentRuns renders a checklist entry as the rich-text body of a cell
// note. The requirement condition is emphasized for mandatory fields, and
// vocabulary/format detail is set in red.
func commentRuns(entry *ChecklistField) []excelize.RichTextRun {
	level := entry.RequirementLevel
	if level == "" {
		level = requirementDisplay[entry.RequirementLevelCode]
	}

	runs := []excelize.RichTextRun{
		{Text: "Requirement level: " + level},
	}
	if entry.RequirementCondition != "" {
		run := excelize.RichTextRun{Text: " (" + entry.RequirementCondition + ")"}
		if entry.RequirementLevelCode == "M" {
			run.Font = &excelize.Font{Bold: true, Color: "#FF0000"}
		}
		runs = append(runs, run)
	}
	runs = append(runs,
		excelize.RichTextRun{Text: "\nDescription: " + entry.Description},
		excelize.RichTextRun{Text: "\nExample: " + entry.Example},
		excelize.RichTextRun{Text: "\nField type: " + entry.TermType},
	)

	switch {
	case strings.EqualFold(entry.TermType, "controlled vocabulary") && entry.VocabOptions != "":
		runs = append(runs, excelize.RichTextRun{
			Text: " (" + entry.VocabOptions + ")",
			Font: &excelize.Font{Color: "#FF0000"},
		})
	case strings.EqualFold(entry.TermType, "fixed format") && entry.FixedFormat != "":
		runs = append(runs, excelize.RichTextRun{
			Text: " (" + entry.FixedFormat + ")",
			Font: &excelize.Font{Color: "#FF0000"},
		})
	}
	return runs
}

// addTermComment attaches the explanatory note for a field to one cell.
func addTermComment(f *excelize.File, sheet, cell string, entry *ChecklistField) error {
	return f.AddComment(sheet, excelize.Comment{
		Author:    "ednatemplates",
		Cell:      cell,
		Paragraph: commentRuns(entry),
	})
}

// addRangeValidation attaches a warning-style list validation that sources
// its values from a range on the Drop-down values sheet.
func addRangeValidation(f *excelize.File, sheet, sqref, sourceRange string) error {
	dv := excelize.NewDataValidation(true)
	dv.Sqref = sqref
	dv.SetSqrefDropList(sourceRange)
	dv.SetError(excelize.DataValidationErrorStyleWarning, "Value not in list", "The value is not one of the suggested vocabulary options.")
	if err := f.AddDataValidation(sheet, dv); err != nil {
		return fmt.Errorf("add validation %s!%s: %w", sheet, sqref, err)
	}
	return nil
}

// columnLetters returns the spreadsheet column names for columns 1..n.
func columnLetters(n int) []string {
	letters := make([]string, n)
	for i := range letters {
		letters[i], _ = excelize.ColumnNumberToName(i + 1)
	}
	return letters
}

// columnWidth sizes a column to its header label.
func columnWidth(label string) float64 {
	width := float64(len(label)) * 1.3
	if width < 15 {
		width = 15
	}
	return width
}
