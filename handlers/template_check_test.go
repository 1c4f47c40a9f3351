package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"

	"ednatemplates/services"
	"ednatemplates/testhelpers"
)

// filledSampleWorkbook generates the project's template and fills
// sampleMetadata cells the way a submitter would.
func filledSampleWorkbook(t *testing.T, record *core.Record, fill map[string]string) []byte {
	t.Helper()

	cfg := services.ConfigFromRecord(record)
	result, err := services.GenerateWorkbook(testhelpers.NewTestChecklist(), cfg)
	if err != nil {
		t.Fatalf("GenerateWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result.Data))
	if err != nil {
		t.Fatalf("reopen template: %v", err)
	}
	defer f.Close()
	for cell, value := range fill {
		f.SetCellValue("sampleMetadata", cell, value)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write filled template: %v", err)
	}
	return buf.Bytes()
}

// uploadRequest builds a multipart POST carrying one file field.
func uploadRequest(t *testing.T, url, filename string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestHandleTemplateCheck_CleanUpload(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "gomecc4")
	handler := HandleTemplateCheck(app, testhelpers.NewTestChecklist())

	content := filledSampleWorkbook(t, proj, map[string]string{
		"A4": "GOM2021_St42_3",
		"B4": "sample",
	})
	req, rec := uploadRequest(t, "/projects/"+proj.Id+"/check", "filled.xlsx", content)
	req.SetPathValue("projectId", proj.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertBodyContains(t, rec.Body.String(),
		`"sheet":"sampleMetadata"`,
		`"total_rows":1`,
		`"valid_rows":1`,
		`"error_rows":0`)
}

func TestHandleTemplateCheck_ReportsFindings(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "gomecc4")
	handler := HandleTemplateCheck(app, testhelpers.NewTestChecklist())

	content := filledSampleWorkbook(t, proj, map[string]string{
		"A4": "S1",
		"B4": "mystery sample",
	})
	req, rec := uploadRequest(t, "/projects/"+proj.Id+"/check", "filled.xlsx", content)
	req.SetPathValue("projectId", proj.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	testhelpers.AssertBodyContains(t, rec.Body.String(),
		`"error_rows":1`,
		"not an allowed value",
		`"column":"samp_category"`)
}

func TestHandleTemplateCheck_WrongExtension(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "gomecc4")
	handler := HandleTemplateCheck(app, testhelpers.NewTestChecklist())

	req, rec := uploadRequest(t, "/projects/"+proj.Id+"/check", "filled.csv", []byte("samp_name\nS1"))
	req.SetPathValue("projectId", proj.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	testhelpers.AssertBodyContains(t, rec.Body.String(), "must be .xlsx")
}

func TestHandleTemplateCheck_MissingFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "gomecc4")
	handler := HandleTemplateCheck(app, testhelpers.NewTestChecklist())

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	w.WriteField("note", "no file attached")
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/projects/"+proj.Id+"/check", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.SetPathValue("projectId", proj.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleTemplateCheck_CorruptWorkbook(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "gomecc4")
	handler := HandleTemplateCheck(app, testhelpers.NewTestChecklist())

	req, rec := uploadRequest(t, "/projects/"+proj.Id+"/check", "broken.xlsx", []byte("not a zip archive"))
	req.SetPathValue("projectId", proj.Id)
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleTemplateCheck_ProjectNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleTemplateCheck(app, testhelpers.NewTestChecklist())

	req, rec := uploadRequest(t, "/projects/nonexistent/check", "filled.xlsx", []byte("irrelevant"))
	req.SetPathValue("projectId", "nonexistent")
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
