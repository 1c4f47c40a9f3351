package services

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ChecklistVersion is the FAIRe checklist release this service generates
// templates from. The input file names derive from it.
const ChecklistVersion = "v1.0.2"

// Output sheet names. These are a compatibility contract with downstream
// data-entry reviewers and ingestion pipelines.
const (
	SheetReadme   = "README"
	SheetProject  = "projectMetadata"
	SheetSample   = "sampleMetadata"
	SheetDropdown = "Drop-down values"
)

// Assay types recognized in run configurations.
const (
	AssayMetabarcoding = "metabarcoding"
	AssayTargeted      = "targeted"
)

// detectedTerm is expanded into one field per assay name for targeted
// configurations with multiple assays.
const detectedTerm = "detected_notDetected"

// RequirementLevelCodes lists the four requirement levels in checklist order.
var RequirementLevelCodes = []string{"M", "HR", "R", "O"}

// SampleTypes lists the sample types recognized in run configurations.
// "other" is a sentinel that disables sample-type filtering.
var SampleTypes = []string{
	"Water",
	"Soil",
	"Sediment",
	"Air",
	"HostAssociated",
	"MicrobialMatBiofilm",
	"SymbiontAssociated",
	"other",
}

// ChecklistField is one term definition from the FAIRe checklist.
type ChecklistField struct {
	TermName              string
	Section               string
	RequirementLevel      string // display text, e.g. "M = Mandatory"
	RequirementLevelCode  string
	RequirementCondition  string
	SampleTypeSpecificity string // "", "ALL", or a joined list of sample types
	Description           string
	Example               string
	TermType              string // free text | controlled vocabulary | fixed format
	VocabOptions          string
	FixedFormat           string
}

// VocabEntry is one row of the Drop-down values table.
type VocabEntry struct {
	TermName string
	Options  []string
}

// LongTemplate describes the projectMetadata layout: one row per term, with
// the descriptor columns ending in the project_level value column.
type LongTemplate struct {
	Columns []string
	Terms   []string
}

// WideTemplate describes a wide-form sheet layout: one column per term.
type WideTemplate struct {
	Name  string
	Terms []string
}

// Checklist holds the reference data for one FAIRe checklist release. It is
// loaded once per process and shared read-only between generations.
type Checklist struct {
	Version     string
	FileName    string
	Fields      []ChecklistField
	ProjectMeta LongTemplate
	WideSheets  map[string]WideTemplate
	Vocab       []VocabEntry

	byTerm      map[string]int
	vocabByTerm map[string]int
}

// NewChecklist assembles a Checklist from already-parsed reference data and
// builds the term indexes.
func NewChecklist(version string, fields []ChecklistField, projectMeta LongTemplate, wide []WideTemplate, vocab []VocabEntry) *Checklist {
	cl := &Checklist{
		Version:     version,
		FileName:    checklistFileName(version),
		Fields:      fields,
		ProjectMeta: projectMeta,
		WideSheets:  make(map[string]WideTemplate, len(wide)),
		Vocab:       vocab,
		byTerm:      make(map[string]int, len(fields)),
		vocabByTerm: make(map[string]int, len(vocab)),
	}
	for i, f := range fields {
		cl.byTerm[f.TermName] = i
	}
	for _, w := range wide {
		cl.WideSheets[w.Name] = w
	}
	for i, v := range vocab {
		cl.vocabByTerm[v.TermName] = i
	}
	return cl
}

// Field returns the checklist entry for a term. Expanded per-assay terms
// (detected_notDetected_<assay>) resolve to their base entry.
func (cl *Checklist) Field(term string) (ChecklistField, bool) {
	idx, ok := cl.byTerm[baseTerm(term)]
	if !ok {
		return ChecklistField{}, false
	}
	return cl.Fields[idx], true
}

// Options returns the controlled-vocabulary values for a term, resolving
// expanded per-assay terms to their base entry.
func (cl *Checklist) Options(term string) ([]string, bool) {
	idx, ok := cl.vocabByTerm[baseTerm(term)]
	if !ok {
		return nil, false
	}
	return cl.Vocab[idx].Options, true
}

func baseTerm(term string) string {
	if strings.HasPrefix(term, detectedTerm+"_") {
		return detectedTerm
	}
	return term
}

func checklistFileName(version string) string {
	return fmt.Sprintf("FAIRe_checklist_%s.xlsx", version)
}

func templateFileName(version string) string {
	return fmt.Sprintf("FAIRe_checklist_%s_FULLtemplate.xlsx", version)
}

// LoadChecklist reads the checklist workbook and the full-template workbook
// for the pinned release from dir.
func LoadChecklist(dir string) (*Checklist, error) {
	fields, err := loadChecklistFields(filepath.Join(dir, checklistFileName(ChecklistVersion)))
	if err != nil {
		return nil, err
	}

	projectMeta, wide, vocab, err := loadFullTemplate(filepath.Join(dir, templateFileName(ChecklistVersion)))
	if err != nil {
		return nil, err
	}

	return NewChecklist(ChecklistVersion, fields, projectMeta, wide, vocab), nil
}

// loadChecklistFields reads the "checklist" sheet: one row per term.
func loadChecklistFields(path string) ([]ChecklistField, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open checklist workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("checklist")
	if err != nil {
		return nil, fmt.Errorf("read checklist sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("checklist sheet in %s has no data rows", filepath.Base(path))
	}

	idx := headerIndex(rows[0])
	for _, required := range []string{"term_name", "section", "requirement_level_code"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("checklist sheet is missing the %q column", required)
		}
	}

	var fields []ChecklistField
	for _, row := range rows[1:] {
		term := cellAt(row, idx["term_name"])
		if term == "" {
			continue
		}
		fields = append(fields, ChecklistField{
			TermName:              term,
			Section:               cellAt(row, idx["section"]),
			RequirementLevel:      cellAt(row, idx["requirement_level"]),
			RequirementLevelCode:  cellAt(row, idx["requirement_level_code"]),
			RequirementCondition:  cellAt(row, idx["requirement_level_condition"]),
			SampleTypeSpecificity: cellAt(row, idx["sample_type_specificity"]),
			Description:           cellAt(row, idx["description"]),
			Example:               cellAt(row, idx["example"]),
			TermType:              cellAt(row, idx["term_type"]),
			VocabOptions:          cellAt(row, idx["controlled_vocabulary_options"]),
			FixedFormat:           cellAt(row, idx["fixed_format"]),
		})
	}
	return fields, nil
}

// loadFullTemplate reads the full-template workbook: the long projectMetadata
// tab, the wide sheet tabs, and the Drop-down values tab.
func loadFullTemplate(path string) (LongTemplate, []WideTemplate, []VocabEntry, error) {
	var projectMeta LongTemplate

	f, err := excelize.OpenFile(path)
	if err != nil {
		return projectMeta, nil, nil, fmt.Errorf("open template workbook: %w", err)
	}
	defer f.Close()

	projectMeta, err = parseLongTab(f)
	if err != nil {
		return projectMeta, nil, nil, err
	}

	var wide []WideTemplate
	for _, name := range f.GetSheetList() {
		if name == SheetProject || name == SheetDropdown {
			continue
		}
		tmpl, err := parseWideTab(f, name)
		if err != nil {
			return projectMeta, nil, nil, err
		}
		wide = append(wide, tmpl)
	}

	vocab, err := parseVocabTab(f)
	if err != nil {
		return projectMeta, nil, nil, err
	}

	return projectMeta, wide, vocab, nil
}

func parseLongTab(f *excelize.File) (LongTemplate, error) {
	var tmpl LongTemplate

	rows, err := f.GetRows(SheetProject)
	if err != nil {
		return tmpl, fmt.Errorf("read %s tab: %w", SheetProject, err)
	}
	if len(rows) == 0 {
		return tmpl, fmt.Errorf("%s tab is empty", SheetProject)
	}

	idx := headerIndex(rows[0])
	for _, required := range []string{"term_name", "section", "requirement_level_code", "project_level"} {
		if _, ok := idx[required]; !ok {
			return tmpl, fmt.Errorf("%s tab is missing the %q column", SheetProject, required)
		}
	}

	for _, col := range rows[0] {
		tmpl.Columns = append(tmpl.Columns, strings.TrimSpace(col))
	}
	for _, row := range rows[1:] {
		if term := cellAt(row, idx["term_name"]); term != "" {
			tmpl.Terms = append(tmpl.Terms, term)
		}
	}
	return tmpl, nil
}

// parseWideTab extracts the ordered term list from a wide-form tab. Two tab
// layouts occur in the template workbook: the sampleMetadata style, where
// "# section" and "# requirement_level_code" marker rows precede a term row
// whose first cell is the first term, and the labeled style, where a
// "term_name" label in the first column introduces the terms.
func parseWideTab(f *excelize.File, name string) (WideTemplate, error) {
	tmpl := WideTemplate{Name: name}

	rows, err := f.GetRows(name)
	if err != nil {
		return tmpl, fmt.Errorf("read %s tab: %w", name, err)
	}

	for _, row := range rows {
		if cellAt(row, 0) == "term_name" {
			tmpl.Terms = termCells(row[1:])
			break
		}
	}
	if len(tmpl.Terms) == 0 {
		for _, row := range rows {
			first := cellAt(row, 0)
			if first == "" || strings.HasPrefix(first, "# ") || descriptorLabels[first] {
				continue
			}
			tmpl.Terms = termCells(row)
			break
		}
	}
	if len(tmpl.Terms) == 0 {
		return tmpl, fmt.Errorf("%s tab has no term-name row", name)
	}
	return tmpl, nil
}

var descriptorLabels = map[string]bool{
	"requirement_level_code": true,
	"section":                true,
	"description":            true,
}

func termCells(row []string) []string {
	var terms []string
	for _, cell := range row {
		if term := strings.TrimSpace(cell); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func parseVocabTab(f *excelize.File) ([]VocabEntry, error) {
	rows, err := f.GetRows(SheetDropdown)
	if err != nil {
		return nil, fmt.Errorf("read %s tab: %w", SheetDropdown, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s tab is empty", SheetDropdown)
	}

	idx := headerIndex(rows[0])
	termCol, ok := idx["term_name"]
	if !ok {
		return nil, fmt.Errorf("%s tab is missing the %q column", SheetDropdown, "term_name")
	}

	// vocab1..vocabN columns, in numeric order
	var vocabCols []int
	for i := 1; ; i++ {
		col, ok := idx[fmt.Sprintf("vocab%d", i)]
		if !ok {
			break
		}
		vocabCols = append(vocabCols, col)
	}

	var entries []VocabEntry
	for _, row := range rows[1:] {
		term := cellAt(row, termCol)
		if term == "" {
			continue
		}
		entry := VocabEntry{TermName: term}
		for _, col := range vocabCols {
			if v := cellAt(row, col); v != "" {
				entry.Options = append(entry.Options, v)
			}
		}
		if col, ok := idx["n_options"]; ok {
			if n, err := strconv.Atoi(cellAt(row, col)); err == nil && n >= 0 && n < len(entry.Options) {
				entry.Options = entry.Options[:n]
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// headerIndex maps trimmed header names to their column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name != "" {
			idx[name] = i
		}
	}
	return idx
}

// cellAt guards against the short rows excelize returns when trailing cells
// are empty.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
