// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ednatemplates/collections"
	"ednatemplates/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a metabarcoding project record with two assays,
// all requirement levels and Water samples, and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, projectID string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project_id", projectID)
	record.Set("assay_type", "metabarcoding")
	record.Set("assay_names", []string{"ssu16sv4v5", "ssu18sv9"})
	record.Set("req_levels", []string{"M", "HR", "R", "O"})
	record.Set("sample_types", []string{"Water"})

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestTargetedProject creates a targeted project record with two assays,
// which makes detection fields expand per assay.
func CreateTestTargetedProject(t *testing.T, app *pocketbase.PocketBase, projectID string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project_id", projectID)
	record.Set("assay_type", "targeted")
	record.Set("assay_names", []string{"q1", "q2"})
	record.Set("req_levels", []string{"M", "HR", "R", "O"})
	record.Set("sample_types", []string{"Water"})

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestGeneration creates a generations record linked to a project.
func CreateTestGeneration(t *testing.T, app *pocketbase.PocketBase, projectRecordID, fileName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("generations")
	if err != nil {
		t.Fatalf("failed to find generations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectRecordID)
	record.Set("file_name", fileName)
	record.Set("sheet_count", 7)
	record.Set("field_count", 25)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test generation: %v", err)
	}

	return record
}

// AssertBodyContains checks that a response body contains all specified fragments.
func AssertBodyContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected body to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// NewTestChecklist builds a small in-memory checklist covering every sheet and
// requirement level, so generation can be tested without the xlsx inputs.
func NewTestChecklist() *services.Checklist {
	fields := []services.ChecklistField{
		{TermName: "project_id", Section: "Project", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "A brief project identifier with no spaces", Example: "gomecc4", TermType: "free text"},
		{TermName: "project_name", Section: "Project", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "A concise project title", Example: "Gulf of Mexico eDNA survey", TermType: "free text"},
		{TermName: "checkls_ver", Section: "Project", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "The version of the checklist used", TermType: "free text"},
		{TermName: "assay_type", Section: "Assay", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "The type of assay", TermType: "controlled vocabulary", VocabOptions: "metabarcoding | targeted"},
		{TermName: "assay_name", Section: "Assay", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "A brief assay identifier", Example: "ssu16sv4v5_emp", TermType: "free text"},
		{TermName: "neg_cont_type", Section: "Negative and positive controls", RequirementLevel: "R = Recommended", RequirementLevelCode: "R",
			Description: "The type of negative controls used", TermType: "controlled vocabulary",
			VocabOptions: "site negative | field negative | process negative | extraction negative | PCR negative"},
		{TermName: "lib_layout", Section: "Library preparation sequencing", RequirementLevel: "HR = Highly recommended", RequirementLevelCode: "HR",
			Description: "Paired-end or single-end sequencing", TermType: "controlled vocabulary", VocabOptions: "paired end | single end"},
		{TermName: "otu_clust_tool", Section: "OTU/ASV", RequirementLevel: "O = Optional", RequirementLevelCode: "O",
			Description: "Tool used to cluster OTUs", TermType: "free text"},

		{TermName: "samp_name", Section: "Sample collection", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "A unique sample identifier", Example: "GOM2021_St42_3", TermType: "fixed format", FixedFormat: "no spaces"},
		{TermName: "samp_category", Section: "Sample collection", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "The category of the sample", TermType: "controlled vocabulary",
			VocabOptions: "sample | negative control | positive control | PCR standard"},
		{TermName: "geo_loc_name", Section: "Sample collection", RequirementLevel: "HR = Highly recommended", RequirementLevelCode: "HR",
			Description: "Geographic origin of the sample", Example: "USA: Gulf of Mexico", TermType: "free text"},
		{TermName: "env_local_scale", Section: "Sample collection", RequirementLevel: "HR = Highly recommended", RequirementLevelCode: "HR",
			SampleTypeSpecificity: "ALL", Description: "Local environment of the sample", TermType: "free text"},
		{TermName: "tot_depth_water_col", Section: "Sample collection", RequirementLevel: "R = Recommended", RequirementLevelCode: "R",
			SampleTypeSpecificity: "Water", Description: "Total depth of the water column", Example: "150 m", TermType: "free text"},
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
			Description: "The qPCR quantification cycle", Example: "33.2", TermType: "free text"},
		{TermName: "std_conc", Section: "Targeted assay detection", RequirementLevel: "R = Recommended", RequirementLevelCode: "R",
			Description: "Concentration of the quantification standard", TermType: "free text"},
		{TermName: "assayName", Section: "Targeted assay detection", RequirementLevel: "M = Mandatory", RequirementLevelCode: "M",
			Description: "The assay the result belongs to", TermType: "free text"},
	}

	projectMeta := services.LongTemplate{
		Columns: []string{"term_name", "section", "requirement_level_code", "description", "example", "project_level"},
		Terms: []string{
			"project_id", "project_name", "checkls_ver", "assay_type", "assay_name",
			"neg_cont_type", "lib_layout", "otu_clust_tool",
		},
	}

	wide := []services.WideTemplate{
		{Name: "sampleMetadata", Terms: []string{
			"samp_name", "samp_category", "geo_loc_name", "env_local_scale",
			"tot_depth_water_col", "soil_type", "samp_store_temp", "detected_notDetected",
		}},
		{Name: "experimentRunMetadata", Terms: []string{"assay_name", "seq_run_id", "lib_layout", "mid_forward"}},
		{Name: "taxaRaw", Terms: []string{"samp_name", "seq_id", "dna_sequence"}},
		{Name: "taxaFinal", Terms: []string{"samp_name", "seq_id", "verbatimIdentification"}},
		{Name: "stdData", Terms: []string{"samp_name", "quantificationCycle", "std_conc"}},
		{Name: "eLowQuantData", Terms: []string{"samp_name", "quantificationCycle"}},
		{Name: "ampData", Terms: []string{"samp_name", "assayName", "detected_notDetected"}},
	}

	vocab := []services.VocabEntry{
		{TermName: "assay_type", Options: []string{"metabarcoding", "targeted"}},
		{TermName: "neg_cont_type", Options: []string{"site negative", "field negative", "process negative", "extraction negative", "PCR negative"}},
		{TermName: "lib_layout", Options: []string{"paired end", "single end"}},
		{TermName: "samp_category", Options: []string{"sample", "negative control", "positive control", "PCR standard"}},
		{TermName: "soil_type", Options: []string{"clay", "loam", "sand"}},
		{TermName: "detected_notDetected", Options: []string{"detected", "notDetected"}},
	}

	return services.NewChecklist(services.ChecklistVersion, fields, projectMeta, wide, vocab)
}
