package services

import "strings"

// userSection marks fields injected from the run configuration rather than
// the checklist.
const userSection = "User defined"

// SheetField is one retained field of an output sheet, in final order. Entry
// is nil for user-defined fields and for template terms with no checklist
// entry; annotation steps skip those.
type SheetField struct {
	Term        string
	Section     string
	LevelCode   string
	Entry       *ChecklistField
	UserDefined bool
}

// AuxiliarySheets returns the assay-specific sheet names for an assay type,
// in workbook order.
func AuxiliarySheets(assayType string) []string {
	switch assayType {
	case AssayMetabarcoding:
		return []string{"experimentRunMetadata", "taxaRaw", "taxaFinal"}
	case AssayTargeted:
		return []string{"stdData", "eLowQuantData", "ampData"}
	}
	return nil
}

// removedSections lists the checklist sections that do not apply to an assay
// type. They are dropped from projectMetadata and sampleMetadata wholesale.
func removedSections(assayType string) map[string]bool {
	switch assayType {
	case AssayMetabarcoding:
		return map[string]bool{"Targeted assay detection": true}
	case AssayTargeted:
		return map[string]bool{
			"Library preparation sequencing": true,
			"Bioinformatics":                 true,
			"OTU/ASV":                        true,
		}
	}
	return nil
}

type filterOptions struct {
	sampleFilter bool // apply the sample-type filter
	dropSections bool // apply the assay-type section removal
	keepFirst    bool // the first field is the row key, kept unconditionally
}

// FilterSheet produces the ordered field list for one output sheet under a
// run configuration. The pipeline is: sample-type filter, section removal,
// per-assay expansion, requirement-level filter, then user-defined fields.
func (cl *Checklist) FilterSheet(sheet string, cfg RunConfig) []SheetField {
	var terms []string
	opts := filterOptions{}

	switch sheet {
	case SheetProject:
		terms = cl.ProjectMeta.Terms
		opts.dropSections = true
	case SheetSample:
		terms = cl.WideSheets[sheet].Terms
		opts = filterOptions{sampleFilter: true, dropSections: true, keepFirst: true}
	default:
		terms = cl.WideSheets[sheet].Terms
		opts.keepFirst = true
	}

	fields := cl.resolveTerms(terms)
	fields = filterFields(fields, cfg, opts)
	return append(fields, userFields(userFieldNames(cfg, sheet))...)
}

// resolveTerms pairs template terms with their checklist entries.
func (cl *Checklist) resolveTerms(terms []string) []SheetField {
	out := make([]SheetField, 0, len(terms))
	for _, term := range terms {
		sf := SheetField{Term: term}
		if idx, ok := cl.byTerm[baseTerm(term)]; ok {
			entry := &cl.Fields[idx]
			sf.Entry = entry
			sf.Section = entry.Section
			sf.LevelCode = entry.RequirementLevelCode
		}
		out = append(out, sf)
	}
	return out
}

func filterFields(fields []SheetField, cfg RunConfig, opts filterOptions) []SheetField {
	out := make([]SheetField, 0, len(fields))

	// 1. Sample-type and section filters
	skipSampleFilter := !opts.sampleFilter || cfg.HasOtherSampleType()
	removed := map[string]bool{}
	if opts.dropSections {
		removed = removedSections(cfg.AssayType)
	}
	for i, f := range fields {
		if opts.keepFirst && i == 0 {
			out = append(out, f)
			continue
		}
		if removed[f.Section] {
			continue
		}
		if !skipSampleFilter && f.Entry != nil && !matchesSampleTypes(f.Entry.SampleTypeSpecificity, cfg.SampleTypes) {
			continue
		}
		out = append(out, f)
	}

	// 2. Per-assay expansion
	if cfg.ExpandsPerAssay() {
		out = expandPerAssay(out, cfg.AssayNames,
			func(f SheetField) bool { return f.Term == detectedTerm },
			func(f SheetField, assay string) SheetField {
				f.Term = detectedTerm + "_" + assay
				return f
			})
	}

	// 3. Requirement-level filter
	kept := out[:0]
	for i, f := range out {
		if (opts.keepFirst && i == 0) || keepLevel(cfg, f.LevelCode) {
			kept = append(kept, f)
		}
	}
	return kept
}

// matchesSampleTypes reports whether a specificity string names at least one
// of the requested sample types. Blank and "ALL" apply everywhere; otherwise
// the test is a case-insensitive substring match against the joined
// specificity list, mirroring the checklist's free-form formatting.
func matchesSampleTypes(specificity string, sampleTypes []string) bool {
	spec := strings.TrimSpace(specificity)
	if spec == "" || strings.EqualFold(spec, "ALL") {
		return true
	}
	lower := strings.ToLower(spec)
	for _, st := range sampleTypes {
		if strings.Contains(lower, strings.ToLower(st)) {
			return true
		}
	}
	return false
}

// keepLevel keeps blank and unrecognized codes; only a known code outside the
// requested set drops a field.
func keepLevel(cfg RunConfig, code string) bool {
	if code == "" {
		return true
	}
	known := false
	for _, c := range RequirementLevelCodes {
		if c == code {
			known = true
			break
		}
	}
	return !known || cfg.HasLevel(code)
}

// expandPerAssay replaces each matching item with one copy per assay name,
// preserving its position. Non-matching items pass through unchanged.
func expandPerAssay[T any](items []T, assays []string, matches func(T) bool, replicate func(T, string) T) []T {
	out := make([]T, 0, len(items)+len(assays))
	for _, item := range items {
		if !matches(item) {
			out = append(out, item)
			continue
		}
		for _, assay := range assays {
			out = append(out, replicate(item, assay))
		}
	}
	return out
}

func userFieldNames(cfg RunConfig, sheet string) []string {
	switch sheet {
	case SheetProject:
		return cfg.ProjectUserFields
	case SheetSample:
		return cfg.SampleUserFields
	case "experimentRunMetadata":
		return cfg.ExperimentUserFields
	}
	return nil
}

// userFields builds the trailing user-defined entries. They carry no
// checklist metadata and are always optional.
func userFields(names []string) []SheetField {
	var out []SheetField
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, SheetField{
			Term:        name,
			Section:     userSection,
			LevelCode:   "O",
			UserDefined: true,
		})
	}
	return out
}
