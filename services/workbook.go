package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// WorkbookResult is a generated template workbook plus the counts recorded
// in the generations log.
type WorkbookResult struct {
	FileName   string
	Data       []byte
	SheetCount int
	FieldCount int
}

// GenerateWorkbook builds the template workbook for one run configuration.
// The configuration is validated before any sheet is assembled; a validation
// error therefore never produces partial output.
func GenerateWorkbook(cl *Checklist, cfg RunConfig) (*WorkbookResult, error) {
	// 1. Validate and canonicalize the configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 2. Filter every content sheet up front; the union of retained terms
	// decides which vocabulary rows the workbook carries.
	contentSheets := append([]string{SheetProject, SheetSample}, AuxiliarySheets(cfg.AssayType)...)
	filtered := make(map[string][]SheetField, len(contentSheets))
	retained := map[string]bool{}
	fieldCount := 0
	for _, name := range contentSheets {
		fields := cl.FilterSheet(name, cfg)
		filtered[name] = fields
		fieldCount += len(fields)
		for _, fld := range fields {
			retained[fld.Term] = true
		}
	}

	// 3. Create the sheets in workbook order
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), SheetReadme)
	order := append([]string{SheetProject, SheetSample, SheetDropdown}, AuxiliarySheets(cfg.AssayType)...)
	for _, name := range order {
		f.NewSheet(name)
	}

	// 4. Fill Drop-down values first; validations on the other sheets
	// reference its ranges.
	styles := newSheetStyles(f)
	vocabRanges := writeDropdownSheet(f, cl, cfg, retained, styles)

	writeReadmeSheet(f, cl, cfg, time.Now(), styles)
	writeProjectMetadataSheet(f, cl, cfg, filtered[SheetProject], vocabRanges, styles)
	writeWideSheet(f, SheetSample, cfg, filtered[SheetSample], vocabRanges, styles)
	for _, name := range AuxiliarySheets(cfg.AssayType) {
		writeWideSheet(f, name, cfg, filtered[name], vocabRanges, styles)
	}

	// 5. Serialize
	if idx, err := f.GetSheetIndex(SheetReadme); err == nil {
		f.SetActiveSheet(idx)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return &WorkbookResult{
		FileName:   fmt.Sprintf("FAIRe_%s.xlsx", cfg.ProjectID),
		Data:       buf.Bytes(),
		SheetCount: len(order) + 1,
		FieldCount: fieldCount,
	}, nil
}
