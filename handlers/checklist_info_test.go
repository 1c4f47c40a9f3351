package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ednatemplates/testhelpers"
)

func TestHandleChecklistInfo(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleChecklistInfo(testhelpers.NewTestChecklist())

	req := httptest.NewRequest(http.MethodGet, "/api/checklist", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertBodyContains(t, rec.Body.String(),
		`"version":"v1.0.2"`,
		`"file_name":"FAIRe_checklist_v1.0.2.xlsx"`,
		`"field_count":24`,
		`"vocab_count":6`,
		"sampleMetadata",
		"ampData")
}
