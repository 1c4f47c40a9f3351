package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// writeDropdownSheet fills the Drop-down values sheet with the vocabulary of
// every controlled-vocabulary term retained anywhere in the workbook, and
// returns the options range for each written term. Validations on the other
// sheets reference these ranges.
func writeDropdownSheet(f *excelize.File, cl *Checklist, cfg RunConfig, retained map[string]bool, styles sheetStyles) map[string]string {
	// 1. Replicate the per-assay vocabulary rows, then keep only terms the
	// workbook actually uses.
	entries := cl.Vocab
	if cfg.ExpandsPerAssay() {
		entries = expandPerAssay(entries, cfg.AssayNames,
			func(v VocabEntry) bool { return v.TermName == detectedTerm },
			func(v VocabEntry, assay string) VocabEntry {
				v.TermName = detectedTerm + "_" + assay
				return v
			})
	}

	kept := make([]VocabEntry, 0, len(entries))
	maxOptions := 0
	for _, v := range entries {
		if !retained[v.TermName] || len(v.Options) == 0 {
			continue
		}
		kept = append(kept, v)
		if len(v.Options) > maxOptions {
			maxOptions = len(v.Options)
		}
	}

	// 2. Header row: term_name, n_options, vocab1..vocabN
	columns := columnLetters(2 + maxOptions)
	f.SetCellValue(SheetDropdown, "A1", "term_name")
	f.SetCellValue(SheetDropdown, "B1", "n_options")
	for i := 0; i < maxOptions; i++ {
		f.SetCellValue(SheetDropdown, columns[2+i]+"1", fmt.Sprintf("vocab%d", i+1))
	}
	f.SetCellStyle(SheetDropdown, "A1", columns[len(columns)-1]+"1", styles.bold)

	// 3. One row per term
	ranges := make(map[string]string, len(kept))
	for i, v := range kept {
		row := i + 2
		f.SetCellValue(SheetDropdown, fmt.Sprintf("A%d", row), v.TermName)
		f.SetCellValue(SheetDropdown, fmt.Sprintf("B%d", row), len(v.Options))
		for j, opt := range v.Options {
			f.SetCellValue(SheetDropdown, fmt.Sprintf("%s%d", columns[2+j], row), opt)
		}
		ranges[v.TermName] = fmt.Sprintf("'%s'!$C$%d:$%s$%d", SheetDropdown, row, columns[1+len(v.Options)], row)
	}

	f.SetColWidth(SheetDropdown, "A", "A", columnWidth("controlled vocabulary term"))
	return ranges
}
