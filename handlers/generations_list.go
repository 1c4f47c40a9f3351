package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleGenerationsList lists the download history for a project, newest
// first. Route: GET /projects/{projectId}/generations
func HandleGenerationsList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		records, err := app.FindRecordsByFilter(
			"generations",
			"project = {:projectId}",
			"-created", 0, 0,
			map[string]any{"projectId": projectID},
		)
		if err != nil {
			log.Printf("generations_list: could not query generations: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		items := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			items = append(items, map[string]any{
				"id":          rec.Id,
				"file_name":   rec.GetString("file_name"),
				"sheet_count": rec.GetInt("sheet_count"),
				"field_count": rec.GetInt("field_count"),
				"created":     rec.GetDateTime("created").String(),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items": items,
			"total": len(items),
		})
	}
}
