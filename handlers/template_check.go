package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ednatemplates/services"
)

// HandleTemplateCheck receives a filled template workbook and validates it
// against the project's configuration, returning the findings as JSON.
// Route: POST /projects/{projectId}/check
func HandleTemplateCheck(app *pocketbase.PocketBase, cl *services.Checklist) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("template_check: project not found %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		// Parse multipart form (max 10MB)
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return e.String(http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.String(http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
			return e.String(http.StatusBadRequest, "Unsupported file format: must be .xlsx")
		}

		cfg := services.ConfigFromRecord(record)
		report, err := services.CheckSampleSheet(cl, cfg, file)
		if err != nil {
			log.Printf("template_check: %s: %v", projectID, err)
			return e.String(http.StatusBadRequest, err.Error())
		}

		return e.JSON(http.StatusOK, report)
	}
}
