package collections_test

import (
	"testing"

	"ednatemplates/collections"
	"ednatemplates/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, err := app.FindAllRecords(projectsCol)
	if err != nil {
		t.Fatalf("query projects error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 demo projects, got %d", len(projects))
	}

	byID := make(map[string]int)
	for i, p := range projects {
		byID[p.GetString("project_id")] = i
	}

	idx, ok := byID["gomecc4"]
	if !ok {
		t.Fatal("demo project gomecc4 not found")
	}
	gomecc := projects[idx]
	if gomecc.GetString("assay_type") != "metabarcoding" {
		t.Errorf("gomecc4 assay_type = %q, want metabarcoding", gomecc.GetString("assay_type"))
	}
	if assays := gomecc.GetStringSlice("assay_names"); len(assays) != 2 {
		t.Errorf("gomecc4 assay_names = %v, want 2 assays", assays)
	}
	if user := gomecc.GetStringSlice("sample_user_fields"); len(user) != 1 || user[0] != "niskin_bottle_no" {
		t.Errorf("gomecc4 sample_user_fields = %v, want [niskin_bottle_no]", user)
	}

	idx, ok = byID["eelgrass_qpcr"]
	if !ok {
		t.Fatal("demo project eelgrass_qpcr not found")
	}
	eelgrass := projects[idx]
	if eelgrass.GetString("assay_type") != "targeted" {
		t.Errorf("eelgrass_qpcr assay_type = %q, want targeted", eelgrass.GetString("assay_type"))
	}
	if levels := eelgrass.GetStringSlice("req_levels"); len(levels) != 2 {
		t.Errorf("eelgrass_qpcr req_levels = %v, want [M HR]", levels)
	}
	if types := eelgrass.GetStringSlice("sample_types"); len(types) != 2 {
		t.Errorf("eelgrass_qpcr sample_types = %v, want [Sediment Water]", types)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, _ := app.FindAllRecords(projectsCol)
	if len(projects) != 2 {
		t.Errorf("expected 2 projects after idempotent seed, got %d", len(projects))
	}
}

func TestSeed_SkipsWhenDataExists(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Create a project first (not via Seed)
	testhelpers.CreateTestProject(t, app, "preexisting")

	// Seed should skip because project data already exists
	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	projectsCol, _ := app.FindCollectionByNameOrId("projects")
	projects, _ := app.FindAllRecords(projectsCol)
	if len(projects) != 1 {
		t.Errorf("expected 1 project (pre-existing only), got %d", len(projects))
	}
	if projects[0].GetString("project_id") != "preexisting" {
		t.Errorf("expected pre-existing project, got %q", projects[0].GetString("project_id"))
	}
}
