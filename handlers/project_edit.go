package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectUpdate handles PATCH /projects/{projectId}. The body replaces
// the whole template configuration, so callers send the full ProjectRequest.
func HandleProjectUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_edit: could not find project %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		var req ProjectRequest
		if err := e.BindBody(&req); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		cfg := req.toConfig()
		if err := cfg.Validate(); err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}

		if cfg.ProjectID != record.GetString("project_id") {
			existing, _ := app.FindRecordsByFilter(
				"projects",
				"project_id = {:projectId} && id != {:id}",
				"", 1, 0,
				map[string]any{"projectId": cfg.ProjectID, "id": record.Id},
			)
			if len(existing) > 0 {
				return e.String(http.StatusConflict, "A project with this project_id already exists")
			}
		}

		applyConfig(record, cfg)

		if err := app.Save(record); err != nil {
			log.Printf("project_edit: could not save project %s: %v", projectID, err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusOK, projectJSON(record))
	}
}
