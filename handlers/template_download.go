package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ednatemplates/services"
)

// HandleTemplateDownload generates and downloads the Excel template workbook
// for a project. Route: GET /projects/{projectId}/template
func HandleTemplateDownload(app *pocketbase.PocketBase, cl *services.Checklist) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("template_download: project not found %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		cfg := services.ConfigFromRecord(record)
		result, err := services.GenerateWorkbook(cl, cfg)
		if err != nil {
			log.Printf("template_download: failed to generate for %s: %v", projectID, err)
			return e.String(http.StatusInternalServerError, "Failed to generate template")
		}

		recordGeneration(app, record.Id, result)

		e.Response.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, result.FileName))
		e.Response.Write(result.Data)
		return nil
	}
}

// recordGeneration appends a generations record for the download. A failure
// here must not block the download itself, so errors are only logged.
func recordGeneration(app *pocketbase.PocketBase, projectRecordID string, result *services.WorkbookResult) {
	generationsCol, err := app.FindCollectionByNameOrId("generations")
	if err != nil {
		log.Printf("template_download: could not find generations collection: %v", err)
		return
	}

	generation := core.NewRecord(generationsCol)
	generation.Set("project", projectRecordID)
	generation.Set("file_name", result.FileName)
	generation.Set("sheet_count", result.SheetCount)
	generation.Set("field_count", result.FieldCount)

	if err := app.Save(generation); err != nil {
		log.Printf("template_download: could not record generation: %v", err)
	}
}
