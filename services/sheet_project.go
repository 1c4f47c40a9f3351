package services

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"
)

// writeProjectMetadataSheet fills the long-form projectMetadata sheet: one
// row per retained field, descriptor columns from the checklist, and a
// project_level value column. With multiple assays an assay1..assayN value
// column is added per assay name.
func writeProjectMetadataSheet(f *excelize.File, cl *Checklist, cfg RunConfig, fields []SheetField, vocabRanges map[string]string, styles sheetStyles) {
	// 1. Column layout
	cols := append([]string(nil), cl.ProjectMeta.Columns...)
	firstAssayCol := len(cols)
	if len(cfg.AssayNames) > 1 {
		for i := range cfg.AssayNames {
			cols = append(cols, fmt.Sprintf("assay%d", i+1))
		}
	}
	letters := columnLetters(len(cols))

	colIndex := make(map[string]int, len(cols))
	for i, c := range cols {
		colIndex[c] = i
	}
	termCol := letters[colIndex["term_name"]]
	levelCol := letters[colIndex["requirement_level_code"]]
	valueCol := letters[colIndex["project_level"]]

	// 2. Header row
	for i, c := range cols {
		f.SetCellValue(SheetProject, letters[i]+"1", c)
		f.SetColWidth(SheetProject, letters[i], letters[i], columnWidth(c))
	}
	f.SetCellStyle(SheetProject, "A1", letters[len(cols)-1]+"1", styles.bold)

	// 3. Field rows
	for i, fld := range fields {
		row := i + 2
		for j, c := range cols[:firstAssayCol] {
			if v := projectCellValue(cl, cfg, fld, c); v != "" {
				f.SetCellValue(SheetProject, fmt.Sprintf("%s%d", letters[j], row), v)
			}
		}
		if fld.Term == "assay_name" && len(cfg.AssayNames) > 1 {
			for j, name := range cfg.AssayNames {
				f.SetCellValue(SheetProject, fmt.Sprintf("%s%d", letters[firstAssayCol+j], row), name)
			}
		}

		termCell := fmt.Sprintf("%s%d", termCol, row)
		f.SetCellStyle(SheetProject, termCell, termCell, styles.bold)
		if style := styles.levelStyle(fld.LevelCode); style != 0 {
			cell := fmt.Sprintf("%s%d", levelCol, row)
			f.SetCellStyle(SheetProject, cell, cell, style)
		}

		// 4. Explanatory note on the term cell
		if fld.Entry != nil {
			if err := addTermComment(f, SheetProject, termCell, fld.Entry); err != nil {
				log.Printf("projectMetadata: comment for %s: %v", fld.Term, err)
			}
		}

		// 5. Vocabulary dropdowns on the value cells
		srcRange, ok := vocabRanges[fld.Term]
		if !ok {
			continue
		}
		sqref := fmt.Sprintf("%s%d", valueCol, row)
		if err := addRangeValidation(f, SheetProject, sqref, srcRange); err != nil {
			log.Printf("projectMetadata: %v", err)
		}
		for j := firstAssayCol; j < len(cols); j++ {
			sqref := fmt.Sprintf("%s%d", letters[j], row)
			if err := addRangeValidation(f, SheetProject, sqref, srcRange); err != nil {
				log.Printf("projectMetadata: %v", err)
			}
		}
	}

	// 6. Freeze header row
	f.SetPanes(SheetProject, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// projectCellValue resolves the value of one descriptor or value cell.
// project_level carries the configured identity values for the fixed terms.
func projectCellValue(cl *Checklist, cfg RunConfig, fld SheetField, col string) string {
	switch col {
	case "term_name":
		return fld.Term
	case "section":
		return fld.Section
	case "requirement_level_code":
		return fld.LevelCode
	case "project_level":
		return projectPrefill(cl, cfg, fld.Term)
	}
	if fld.Entry == nil {
		return ""
	}
	switch col {
	case "requirement_level":
		return fld.Entry.RequirementLevel
	case "requirement_level_condition":
		return fld.Entry.RequirementCondition
	case "description":
		return fld.Entry.Description
	case "example":
		return fld.Entry.Example
	case "term_type":
		return fld.Entry.TermType
	case "controlled_vocabulary_options":
		return fld.Entry.VocabOptions
	case "fixed_format":
		return fld.Entry.FixedFormat
	case "sample_type_specificity":
		return fld.Entry.SampleTypeSpecificity
	}
	return ""
}

// projectPrefill returns the pre-filled project_level value for the fixed
// identity terms. assay_name stays blank with multiple assays; the per-assay
// columns carry the names instead.
func projectPrefill(cl *Checklist, cfg RunConfig, term string) string {
	switch term {
	case "project_id":
		return cfg.ProjectID
	case "assay_type":
		return cfg.AssayType
	case "checkls_ver":
		return cl.FileName
	case "assay_name":
		if len(cfg.AssayNames) == 1 {
			return cfg.AssayNames[0]
		}
	}
	return ""
}
