package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ednatemplates/services"
)

// ProjectRequest is the expected JSON body for creating or updating a project.
// The keys match the YAML run config used by the generate command.
type ProjectRequest struct {
	ProjectID            string   `json:"project_id"`
	AssayType            string   `json:"assay_type"`
	AssayNames           []string `json:"assay_name"`
	RequirementLevels    []string `json:"req_lev"`
	SampleTypes          []string `json:"sample_type"`
	ProjectUserFields    []string `json:"projectMetadata_user"`
	SampleUserFields     []string `json:"sampleMetadata_user"`
	ExperimentUserFields []string `json:"experimentRunMetadata_user"`
}

// toConfig converts the request into a RunConfig. An omitted req_lev keeps
// every requirement level, mirroring the YAML loader.
func (r ProjectRequest) toConfig() services.RunConfig {
	cfg := services.RunConfig{
		ProjectID:            strings.TrimSpace(r.ProjectID),
		AssayType:            strings.TrimSpace(r.AssayType),
		AssayNames:           r.AssayNames,
		RequirementLevels:    r.RequirementLevels,
		SampleTypes:          r.SampleTypes,
		ProjectUserFields:    r.ProjectUserFields,
		SampleUserFields:     r.SampleUserFields,
		ExperimentUserFields: r.ExperimentUserFields,
	}
	if len(cfg.RequirementLevels) == 0 {
		cfg.RequirementLevels = append([]string(nil), services.RequirementLevelCodes...)
	}
	return cfg
}

// applyConfig writes a validated RunConfig onto a projects record.
func applyConfig(record *core.Record, cfg services.RunConfig) {
	record.Set("project_id", cfg.ProjectID)
	record.Set("assay_type", cfg.AssayType)
	record.Set("assay_names", cfg.AssayNames)
	record.Set("req_levels", cfg.RequirementLevels)
	record.Set("sample_types", cfg.SampleTypes)
	record.Set("project_user_fields", cfg.ProjectUserFields)
	record.Set("sample_user_fields", cfg.SampleUserFields)
	record.Set("experiment_user_fields", cfg.ExperimentUserFields)
}

// HandleProjectCreate handles POST /projects.
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req ProjectRequest
		if err := e.BindBody(&req); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		cfg := req.toConfig()
		if err := cfg.Validate(); err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}

		existing, _ := app.FindRecordsByFilter(
			"projects",
			"project_id = {:projectId}",
			"", 1, 0,
			map[string]any{"projectId": cfg.ProjectID},
		)
		if len(existing) > 0 {
			return e.String(http.StatusConflict, "A project with this project_id already exists")
		}

		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(projectsCol)
		applyConfig(record, cfg)

		if err := app.Save(record); err != nil {
			log.Printf("project_create: could not save project: %v", err)
			return e.String(http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return e.JSON(http.StatusCreated, projectJSON(record))
	}
}
