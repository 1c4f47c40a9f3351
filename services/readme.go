package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// writeReadmeSheet fills the README sheet: checklist version, generation
// time, a modification-timestamp table for data-entry tracking, the run
// parameters, the requirement-level legend and the expected output naming
// conventions for the assay type.
func writeReadmeSheet(f *excelize.File, cl *Checklist, cfg RunConfig, generatedAt time.Time, styles sheetStyles) {
	var rows [][]string
	var boldRanges [][2]string
	levelRows := map[string]int{}

	addRow := func(cells ...string) int {
		rows = append(rows, cells)
		return len(rows)
	}
	addBold := func(row int, lastCol string) {
		ref := fmt.Sprintf("A%d", row)
		boldRanges = append(boldRanges, [2]string{ref, fmt.Sprintf("%s%d", lastCol, row)})
	}

	// 1. Checklist version and generation time
	addBold(addRow("FAIRe Checklist Version:"), "A")
	addRow(cl.FileName)
	addRow()
	addBold(addRow("Date/Time generated:"), "A")
	addRow(generatedAt.Format("2006-01-02T15:04:05-07:00"))
	addRow()

	// 2. Modification timestamp table, one row per content sheet
	addBold(addRow("Modification Timestamp:"), "A")
	addBold(addRow("Sheet Name", "Timestamp", "Email"), "C")
	contentSheets := append([]string{SheetProject, SheetSample}, AuxiliarySheets(cfg.AssayType)...)
	for _, name := range contentSheets {
		addRow(name, "", "")
	}
	addRow()

	// 3. Template parameters
	addBold(addRow("Template parameters:"), "A")
	addRow("project_id = " + cfg.ProjectID)
	addRow("assay_name = " + strings.Join(cfg.AssayNames, " | "))
	addRow("assay_type = " + cfg.AssayType)
	addRow("req_lev = " + strings.Join(cfg.RequirementLevels, " | "))
	sampleNote := "(Note: this option provides sample-type-specific fields for the selected sample type(s))"
	if cfg.HasOtherSampleType() {
		sampleNote = "(Note: this option provides sample-type-specific fields for ALL sample types)"
	}
	addRow("sample_type = " + strings.Join(cfg.SampleTypes, " | ") + " " + sampleNote)
	if len(cfg.ProjectUserFields) > 0 {
		addRow("projectMetadata_user = " + strings.Join(cfg.ProjectUserFields, " | "))
	}
	if len(cfg.SampleUserFields) > 0 {
		addRow("sampleMetadata_user = " + strings.Join(cfg.SampleUserFields, " | "))
	}
	if len(cfg.ExperimentUserFields) > 0 {
		addRow("experimentRunMetadata_user = " + strings.Join(cfg.ExperimentUserFields, " | "))
	}
	addRow()

	// 4. Requirement-level legend
	addBold(addRow("Requirement levels:"), "A")
	for _, code := range RequirementLevelCodes {
		levelRows[code] = addRow(requirementDisplay[code])
	}
	addRow()

	// 5. Expected sheet and file naming for this assay type
	addBold(addRow("Sheets in this workbook:"), "A")
	addRow("projectMetadata_" + cfg.ProjectID)
	addRow("sampleMetadata_" + cfg.ProjectID)
	assayPart := "<assay_name>"
	if len(cfg.AssayNames) == 1 {
		assayPart = cfg.AssayNames[0]
	}
	switch cfg.AssayType {
	case AssayMetabarcoding:
		addRow("experimentRunMetadata_" + cfg.ProjectID)
		for _, prefix := range []string{"otuRaw", "otuFinal", "taxaRaw", "taxaFinal"} {
			addRow(fmt.Sprintf("%s_%s_%s_<seq_run_id>", prefix, cfg.ProjectID, assayPart))
		}
		addRow("Note: otuRaw, otuFinal, taxaRaw and taxaFinal should be produced for each assay_name and seq_run_id")
		addRow("Note: <seq_run_id> in the file names should match with seq_run_id in your experimentRunMetadata")
	case AssayTargeted:
		addRow("stdData_" + cfg.ProjectID)
		addRow("eLowQuantData_" + cfg.ProjectID + " (if applicable)")
		addRow(fmt.Sprintf("ampData_%s_%s", cfg.ProjectID, assayPart))
		addRow("Note: ampData should be produced for each assay_name")
	}

	// 6. Write rows and apply formats
	columns := columnLetters(3)
	for i, row := range rows {
		for j, val := range row {
			f.SetCellValue(SheetReadme, fmt.Sprintf("%s%d", columns[j], i+1), val)
		}
	}
	for _, r := range boldRanges {
		f.SetCellStyle(SheetReadme, r[0], r[1], styles.bold)
	}
	for code, row := range levelRows {
		cell := fmt.Sprintf("A%d", row)
		f.SetCellStyle(SheetReadme, cell, cell, styles.levelStyle(code))
	}

	f.SetColWidth(SheetReadme, "A", "A", 60)
	f.SetColWidth(SheetReadme, "B", "C", 18)
}
