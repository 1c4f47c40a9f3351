package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateProjectDefaults backfills req_levels and sample_types on project
// records created before the generator required them. Safe to call on every
// startup -- records that already carry values are left untouched.
func MigrateProjectDefaults(app *pocketbase.PocketBase) error {
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("migrate: could not find projects collection: %w", err)
	}

	records, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("migrate: could not query projects: %w", err)
	}

	migrated := 0
	for _, r := range records {
		changed := false
		if len(r.GetStringSlice("req_levels")) == 0 {
			r.Set("req_levels", []string{"M", "HR", "R", "O"})
			changed = true
		}
		if len(r.GetStringSlice("sample_types")) == 0 {
			r.Set("sample_types", []string{"other"})
			changed = true
		}
		if !changed {
			continue
		}
		if err := app.Save(r); err != nil {
			log.Printf("migrate: failed to backfill project %q (%s): %v\n", r.GetString("project_id"), r.Id, err)
			continue
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate: backfilled defaults on %d project(s)\n", migrated)
	}
	return nil
}
