package services

import "bytes"

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// newTestChecklist builds a compact checklist that covers every output sheet,
// every requirement level and all three term types.
func newTestChecklist() *Checklist {
	fields := []ChecklistField{
		{TermName: "project_id", Section: "Project", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "A brief project identifier with no spaces", Example: "gomecc4", TermType: "free text"},
		{TermName: "project_name", Section: "Project", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "A concise project title", TermType: "free text"},
		{TermName: "checkls_ver", Section: "Project", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "The version of the checklist used", TermType: "free text"},
		{TermName: "assay_type", Section: "Assay", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "The type of assay", TermType: "controlled vocabulary", VocabOptions: "metabarcoding | targeted"},
		{TermName: "assay_name", Section: "Assay", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "A brief assay identifier", TermType: "free text"},
		{TermName: "neg_cont_type", Section: "Negative and positive controls", RequirementLevel: "R = Recommended", RequirementLevelCode: "R",
			Description: "The type of negative controls used", TermType: "controlled vocabulary",
			VocabOptions: "site negative | field negative | PCR negative"},
		{TermName: "lib_layout", Section: "Library preparation sequencing", RequirementLevel: "HR = Highly recommended", RequirementLevelCode: "HR",
			Description: "Paired-end or single-end sequencing", TermType: "controlled vocabulary", VocabOptions: "paired end | single end"},
		{TermName: "otu_clust_tool", Section: "OTU/ASV", RequirementLevel: "O = Optional", RequirementLevelCode: "O",
			Description: "Tool used to cluster OTUs", TermType: "free text"},

		{TermName: "samp_name", Section: "Sample collection", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "A unique sample identifier", Example: "GOM2021_St42_3", TermType: "fixed format", FixedFormat: "no spaces"},
		{TermName: "samp_category", Section: "Sample collection", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "The category of the sample", TermType: "controlled vocabulary",
			VocabOptions: "sample | negative control | positive control"},
		{TermName: "geo_loc_name", Section: "Sample collection", RequirementLevel: "HR = Highly recommended", RequirementLevelCode: "HR",
			Description: "Geographic origin of the sample", Example: "USA: Gulf of Mexico", TermType: "free text"},
		{TermName: "env_local_scale", Section: "Sample collection", RequirementLevel: "HR = Highly recommended", RequirementLevelCode: "HR",
			SampleTypeSpecificity: "ALL", Description: "Local environment of the sample", TermType: "free text"},
		{TermName: "tot_depth_water_col", Section: "Sample collection", RequirementLevel: "R = Recommended", RequirementLevelCode: "R",
			SampleTypeSpecificity: "Water", Description: "Total depth of the water column", TermType: "free text"},
		{TermName: "soil_type", Section: "Sample collection", RequirementLevel: "R = Recommended", RequirementLevelCode: "R",
			SampleTypeSpecificity: "Soil", Description: "Soil series name", TermType: "controlled vocabulary",
			VocabOptions: "clay | loam | sand"},
		{TermName: "samp_store_temp", Section: "Sample storage", RequirementLevel: "O = Optional", RequirementLevelCode: "O",
			Description: "Storage temperature before processing", Example: "-20 C", TermType: "free text"},
		{TermName: "detected_notDetected", Section: "Targeted assay detection", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			RequirementCondition: "For targeted assays", Description: "Whether the target was detected",
			TermType: "controlled vocabulary", VocabOptions: "detected | notDetected"},

		{TermName: "seq_run_id", Section: "Sequencing", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "A unique identifier for the sequencing run", TermType: "free text"},
		{TermName: "mid_forward", Section: "Library preparation sequencing", RequirementLevel: "O = Optional", RequirementLevelCode: "O",
			Description: "Forward multiplex identifier", TermType: "free text"},

		{TermName: "seq_id", Section: "OTU/ASV", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "A unique identifier for the sequence variant", TermType: "free text"},
		{TermName: "dna_sequence", Section: "OTU/ASV", RequirementLevel: "HR = Highly recommended", RequirementLevelCode: "HR",
			Description: "The denoised DNA sequence", TermType: "free text"},
		{TermName: "verbatimIdentification", Section: "Taxonomy", RequirementLevel: "HR = Highly recommended", RequirementLevelCode: "HR",
			Description: "The taxonomic identification as written", TermType: "free text"},

		{TermName: "quantificationCycle", Section: "Targeted assay detection", RequirementLevel: "HR = Highly recommended", RequirementLevelCode: "HR",
			Description: "The qPCR quantification cycle", TermType: "free text"},
		{TermName: "std_conc", Section: "Targeted assay detection", RequirementLevel: "R = Recommended", RequirementLevelCode: "R",
			Description: "Concentration of the quantification standard", TermType: "free text"},
		{TermName: "assayName", Section: "Targeted assay detection", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "The assay the result belongs to", TermType: "free text"},
	}

	projectMeta := LongTemplate{
		Columns: []string{"term_name", "section", "requirement_level_code", "description", "example", "project_level"},
		Terms: []string{
			"project_id", "project_name", "checkls_ver", "assay_type", "assay_name",
			"neg_cont_type", "lib_layout", "otu_clust_tool",
		},
	}

	// plate_well has no checklist entry on purpose; unknown terms pass every
	// filter.
	wide := []WideTemplate{
		{Name: "sampleMetadata", Terms: []string{
			"samp_name", "samp_category", "geo_loc_name", "env_local_scale",
			"tot_depth_water_col", "soil_type", "samp_store_temp", "detected_notDetected",
		}},
		{Name: "experimentRunMetadata", Terms: []string{"assay_name", "seq_run_id", "lib_layout", "mid_forward", "plate_well"}},
		{Name: "taxaRaw", Terms: []string{"samp_name", "seq_id", "dna_sequence"}},
		{Name: "taxaFinal", Terms: []string{"samp_name", "seq_id", "verbatimIdentification"}},
		{Name: "stdData", Terms: []string{"samp_name", "quantificationCycle", "std_conc"}},
		{Name: "eLowQuantData", Terms: []string{"samp_name", "quantificationCycle"}},
		{Name: "ampData", Terms: []string{"samp_name", "assayName", "detected_notDetected"}},
	}

	vocab := []VocabEntry{
		{TermName: "assay_type", Options: []string{"metabarcoding", "targeted"}},
		{TermName: "neg_cont_type", Options: []string{"site negative", "field negative", "PCR negative"}},
		{TermName: "lib_layout", Options: []string{"paired end", "single end"}},
		{TermName: "samp_category", Options: []string{"sample", "negative control", "positive control"}},
		{TermName: "soil_type", Options: []string{"clay", "loam", "sand"}},
		{TermName: "detected_notDetected", Options: []string{"detected", "notDetected"}},
	}

	return NewChecklist(ChecklistVersion, fields, projectMeta, wide, vocab)
}

func newMetabarcodingConfig() RunConfig {
	return RunConfig{
		ProjectID:         "proj1",
		AssayType:         AssayMetabarcoding,
		AssayNames:        []string{"fishE", "crabF"},
		RequirementLevels: []string{"M", "HR", "R", "O"},
		SampleTypes:       []string{"Water"},
	}
}

func newTargetedConfig() RunConfig {
	return RunConfig{
		ProjectID:         "eelgrass",
		AssayType:         AssayTargeted,
		AssayNames:        []string{"q1", "q2"},
		RequirementLevels: []string{"M", "HR", "R", "O"},
		SampleTypes:       []string{"Water"},
	}
}
