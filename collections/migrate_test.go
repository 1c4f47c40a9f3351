package collections_test

import (
	"testing"

	"ednatemplates/collections"
	"ednatemplates/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

func TestMigrateProjectDefaults_BackfillsEmptyFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Create a project without req_levels or sample_types
	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	bare := core.NewRecord(projectsCol)
	bare.Set("project_id", "legacy_project")
	bare.Set("assay_type", "metabarcoding")
	bare.Set("assay_names", []string{"ssu16sv4v5"})
	if err := app.Save(bare); err != nil {
		t.Fatalf("failed to create bare project: %v", err)
	}

	if err := collections.MigrateProjectDefaults(app); err != nil {
		t.Fatalf("MigrateProjectDefaults() error: %v", err)
	}

	updated, err := app.FindRecordById("projects", bare.Id)
	if err != nil {
		t.Fatalf("failed to re-fetch project: %v", err)
	}

	levels := updated.GetStringSlice("req_levels")
	if len(levels) != 4 {
		t.Errorf("req_levels = %v, want all four codes", levels)
	}
	types := updated.GetStringSlice("sample_types")
	if len(types) != 1 || types[0] != "other" {
		t.Errorf("sample_types = %v, want [other]", types)
	}
}

func TestMigrateProjectDefaults_LeavesPopulatedFieldsAlone(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	proj := testhelpers.CreateTestProject(t, app, "populated")

	if err := collections.MigrateProjectDefaults(app); err != nil {
		t.Fatalf("MigrateProjectDefaults() error: %v", err)
	}

	updated, _ := app.FindRecordById("projects", proj.Id)
	types := updated.GetStringSlice("sample_types")
	if len(types) != 1 || types[0] != "Water" {
		t.Errorf("sample_types = %v, want [Water] untouched", types)
	}
}

func TestMigrateProjectDefaults_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	bare := core.NewRecord(projectsCol)
	bare.Set("project_id", "legacy_twice")
	bare.Set("assay_type", "targeted")
	bare.Set("assay_names", []string{"crab1"})
	if err := app.Save(bare); err != nil {
		t.Fatalf("failed to create bare project: %v", err)
	}

	// Run twice
	if err := collections.MigrateProjectDefaults(app); err != nil {
		t.Fatalf("first run error: %v", err)
	}
	if err := collections.MigrateProjectDefaults(app); err != nil {
		t.Fatalf("second run error: %v", err)
	}

	updated, _ := app.FindRecordById("projects", bare.Id)
	if len(updated.GetStringSlice("req_levels")) != 4 {
		t.Errorf("req_levels changed unexpectedly: %v", updated.GetStringSlice("req_levels"))
	}
}

func TestMigrateProjectDefaults_NoProjects(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.MigrateProjectDefaults(app); err != nil {
		t.Fatalf("MigrateProjectDefaults() error: %v", err)
	}
}
