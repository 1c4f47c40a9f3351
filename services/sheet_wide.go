package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Structural marker labels on wide-form sheets. Consumers locate the header
// block through them, so they are part of the output contract.
const (
	markerSection = "# section"
	markerLevel   = "# requirement_level_code"
)

// writeWideSheet fills a wide-form sheet: the "# section" and
// "# requirement_level_code" marker rows, the term-name row, and one data
// row pre-filled with the configured identity values. The marker labels
// occupy the first column of their rows, covering the first term's cells.
func writeWideSheet(f *excelize.File, sheet string, cfg RunConfig, fields []SheetField, vocabRanges map[string]string, styles sheetStyles) {
	letters := columnLetters(len(fields))

	// 1. Marker rows, term row, data row
	f.SetCellValue(sheet, "A1", markerSection)
	f.SetCellValue(sheet, "A2", markerLevel)
	for i, fld := range fields {
		col := letters[i]
		if i > 0 {
			if fld.Section != "" {
				f.SetCellValue(sheet, col+"1", fld.Section)
			}
			if fld.LevelCode != "" {
				f.SetCellValue(sheet, col+"2", fld.LevelCode)
			}
		}
		f.SetCellValue(sheet, col+"3", fld.Term)
		if v := wideDataPrefill(fld.Term, cfg); v != "" {
			f.SetCellValue(sheet, col+"4", v)
		}
		f.SetColWidth(sheet, col, col, columnWidth(fld.Term))
	}

	// 2. Styles: bold term row, colored requirement-level cells
	f.SetCellStyle(sheet, "A3", letters[len(fields)-1]+"3", styles.bold)
	for i, fld := range fields {
		if i == 0 {
			continue
		}
		if style := styles.levelStyle(fld.LevelCode); style != 0 {
			cell := letters[i] + "2"
			f.SetCellStyle(sheet, cell, cell, style)
		}
	}

	// 3. Term notes and vocabulary dropdowns
	for i, fld := range fields {
		if fld.Entry != nil {
			if err := addTermComment(f, sheet, letters[i]+"3", fld.Entry); err != nil {
				log.Printf("%s: comment for %s: %v", sheet, fld.Term, err)
			}
		}
		srcRange, ok := vocabRanges[fld.Term]
		if !ok {
			continue
		}
		sqref := fmt.Sprintf("%s4:%s%d", letters[i], letters[i], 3+validationRowSpan)
		if err := addRangeValidation(f, sheet, sqref, srcRange); err != nil {
			log.Printf("%s: %v", sheet, err)
		}
	}

	// 4. Freeze the header block
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      3,
		TopLeftCell: "A4",
		ActivePane:  "bottomLeft",
	})
}

// wideDataPrefill returns the data-row value for the identity terms. The
// checklist names them assay_name/project_id on sampleMetadata and
// assayName/projectID on the targeted sheets.
func wideDataPrefill(term string, cfg RunConfig) string {
	switch term {
	case "assay_name":
		return strings.Join(cfg.AssayNames, " | ")
	case "assayName":
		if len(cfg.AssayNames) > 0 {
			return cfg.AssayNames[0]
		}
	case "project_id", "projectID":
		return cfg.ProjectID
	}
	return ""
}
