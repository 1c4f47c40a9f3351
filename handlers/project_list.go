package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// projectJSON shapes a projects record for API responses. The config keys use
// the same names as ProjectRequest so a response round-trips as a request.
func projectJSON(record *core.Record) map[string]any {
	return map[string]any{
		"id":                         record.Id,
		"project_id":                 record.GetString("project_id"),
		"assay_type":                 record.GetString("assay_type"),
		"assay_name":                 record.GetStringSlice("assay_names"),
		"req_lev":                    record.GetStringSlice("req_levels"),
		"sample_type":                record.GetStringSlice("sample_types"),
		"projectMetadata_user":       record.GetStringSlice("project_user_fields"),
		"sampleMetadata_user":        record.GetStringSlice("sample_user_fields"),
		"experimentRunMetadata_user": record.GetStringSlice("experiment_user_fields"),
		"created":                    record.GetDateTime("created").String(),
		"updated":                    record.GetDateTime("updated").String(),
	}
}

// HandleProjectList handles GET /projects.
func HandleProjectList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_list: could not find projects collection: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		records, err := app.FindRecordsByFilter(projectsCol, "id != ''", "-created", 0, 0)
		if err != nil {
			log.Printf("project_list: could not query projects: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, projectJSON(rec))
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items": items,
			"total": len(items),
		})
	}
}
