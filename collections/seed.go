package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type projectDef struct {
	projectID            string
	assayType            string
	assayNames           []string
	reqLevels            []string
	sampleTypes          []string
	projectUserFields    []string
	sampleUserFields     []string
	experimentUserFields []string
}

// Seed populates the projects collection with two demo template
// configurations, one per assay type. It is safe to call on every startup
// because it returns early if any project records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if projects already exist ──────────────────
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting demo projects …")

	demos := []projectDef{
		{
			projectID:         "gomecc4",
			assayType:         "metabarcoding",
			assayNames:        []string{"ssu16sv4v5", "ssu18sv9"},
			reqLevels:         []string{"M", "HR", "R", "O"},
			sampleTypes:       []string{"Water"},
			projectUserFields: []string{"cruise_leg"},
			sampleUserFields:  []string{"niskin_bottle_no"},
		},
		{
			projectID:   "eelgrass_qpcr",
			assayType:   "targeted",
			assayNames:  []string{"ZosteraCOI", "ZosteraITS"},
			reqLevels:   []string{"M", "HR"},
			sampleTypes: []string{"Sediment", "Water"},
		},
	}

	for _, d := range demos {
		r := core.NewRecord(projectsCol)
		r.Set("project_id", d.projectID)
		r.Set("assay_type", d.assayType)
		r.Set("assay_names", d.assayNames)
		r.Set("req_levels", d.reqLevels)
		r.Set("sample_types", d.sampleTypes)
		if len(d.projectUserFields) > 0 {
			r.Set("project_user_fields", d.projectUserFields)
		}
		if len(d.sampleUserFields) > 0 {
			r.Set("sample_user_fields", d.sampleUserFields)
		}
		if len(d.experimentUserFields) > 0 {
			r.Set("experiment_user_fields", d.experimentUserFields)
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save project %q: %w", d.projectID, err)
		}
	}

	log.Printf("seed: inserted %d demo project(s)\n", len(demos))
	return nil
}
