package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ednatemplates/services"
)

// HandleGuideDownload generates and downloads the PDF field guide for a
// project. Route: GET /projects/{projectId}/guide
func HandleGuideDownload(app *pocketbase.PocketBase, cl *services.Checklist) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("guide_download: project not found %s: %v", projectID, err)
			return e.String(http.StatusNotFound, "Project not found")
		}

		cfg := services.ConfigFromRecord(record)
		pdfBytes, err := services.GenerateFieldGuide(cl, cfg)
		if err != nil {
			log.Printf("guide_download: failed to generate for %s: %v", projectID, err)
			return e.String(http.StatusInternalServerError, "Failed to generate field guide")
		}

		filename := fmt.Sprintf("FAIRe_%s_guide.pdf", cfg.ProjectID)

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
