package main

import (
	"fmt"
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ednatemplates/collections"
	"ednatemplates/handlers"
	"ednatemplates/services"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateProjectDefaults(app); err != nil {
			log.Printf("Warning: project defaults migration failed: %v", err)
		}
		return se.Next()
	})

	// The checklist workbooks are read once at startup. A server that cannot
	// load them cannot generate anything, so this aborts instead of limping.
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		inputDir := defaultInputDir()
		checklist, err := services.LoadChecklist(inputDir)
		if err != nil {
			return fmt.Errorf("load checklist from %s: %w", inputDir, err)
		}
		log.Printf("Loaded FAIRe checklist %s (%d fields)", checklist.Version, len(checklist.Fields))

		// ── Checklist info ───────────────────────────────────────
		se.Router.GET("/api/checklist", handlers.HandleChecklistInfo(checklist))

		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app))
		se.Router.POST("/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/projects/{projectId}", handlers.HandleProjectView(app))
		se.Router.PATCH("/projects/{projectId}", handlers.HandleProjectUpdate(app))
		se.Router.DELETE("/projects/{projectId}", handlers.HandleProjectDelete(app))

		// ── Template generation ──────────────────────────────────
		se.Router.GET("/projects/{projectId}/template", handlers.HandleTemplateDownload(app, checklist))
		se.Router.GET("/projects/{projectId}/guide", handlers.HandleGuideDownload(app, checklist))
		se.Router.POST("/projects/{projectId}/check", handlers.HandleTemplateCheck(app, checklist))
		se.Router.GET("/projects/{projectId}/generations", handlers.HandleGenerationsList(app))

		return se.Next()
	})

	app.RootCmd.AddCommand(generateCmd())

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// defaultInputDir resolves the directory holding the FAIRe checklist and
// FULLtemplate workbooks.
func defaultInputDir() string {
	if dir := os.Getenv("EDNATEMPLATES_INPUT_DIR"); dir != "" {
		return dir
	}
	return "input"
}
