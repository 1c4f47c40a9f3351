package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"ednatemplates/services"
)

// HandleChecklistInfo reports which checklist the server generates templates
// from. Route: GET /api/checklist
func HandleChecklistInfo(cl *services.Checklist) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		wideSheets := make([]string, 0, len(cl.WideSheets))
		for _, ws := range cl.WideSheets {
			wideSheets = append(wideSheets, ws.Name)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"version":     cl.Version,
			"file_name":   cl.FileName,
			"field_count": len(cl.Fields),
			"vocab_count": len(cl.Vocab),
			"wide_sheets": wideSheets,
		})
	}
}
