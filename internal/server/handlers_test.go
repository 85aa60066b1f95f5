package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/identware/identity-secure/internal/allowlist"
	"github.com/identware/identity-secure/internal/config"
	"github.com/identware/identity-secure/internal/logger"
	"github.com/identware/identity-secure/internal/pii"
	"github.com/identware/identity-secure/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.GetDefaults()
	cfg.RateLimit.Enabled = false

	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}

	al, err := allowlist.New(filepath.Join(t.TempDir(), "allowlist.txt"))
	if err != nil {
		t.Fatal(err)
	}

	log := logger.Nop()
	pipeline := pii.NewPipeline(pii.DefaultCatalog(), nil, al, log)

	return New(cfg, log, pipeline, store, al)
}

func doJSON(t *testing.T, s *Server, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func uploadDocument(t *testing.T, s *Server, filename, content, userID string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("document", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/api/v1/scan", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestHandleScanText(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/v1/scan/text",
		map[string]string{"text": "Reach me at test@example.com"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /scan/text = %d, body %s", rec.Code, rec.Body)
	}

	var result pii.ScanResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if !result.Success || !result.DetectedAny {
		t.Errorf("result = %+v, want a successful detection", result)
	}
	if !strings.Contains(result.Report, "Email Address") {
		t.Errorf("report missing email section:\n%s", result.Report)
	}
}

func TestHandleScanText_BadBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/v1/scan/text", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST /scan/text with garbage = %d, want 400", rec.Code)
	}
}

func TestHandleQuickScan(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/v1/quickscan",
		map[string]string{"text": "mail test@example.com or call 9876543210"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /quickscan = %d", rec.Code)
	}

	var result pii.QuickScanResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if !result.HasPII {
		t.Error("quickscan missed obvious PII")
	}
	if result.Counts[pii.TypeEmail] != 1 || result.Counts[pii.TypePhone] != 1 {
		t.Errorf("counts = %v, want one email and one phone", result.Counts)
	}
}

func TestHandleScanUpload(t *testing.T) {
	s := newTestServer(t)

	rec := uploadDocument(t, s, "notes.txt", "Contact: test@example.com", "user-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /scan = %d, body %s", rec.Code, rec.Body)
	}

	var resp scanUploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || !resp.DetectedAny {
		t.Errorf("response = %+v, want a successful detection", resp)
	}
	if resp.ID == 0 {
		t.Error("upload scan was not persisted")
	}

	// The persisted report is visible to its owner.
	list := doJSON(t, s, "GET", "/api/v1/reports", nil, map[string]string{"X-User-ID": "user-1"})
	if list.Code != http.StatusOK {
		t.Fatalf("GET /reports = %d", list.Code)
	}
	var reports []storage.ReportModel
	if err := json.Unmarshal(list.Body.Bytes(), &reports); err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 || reports[0].FileName != "notes.txt" {
		t.Errorf("reports = %+v, want the uploaded scan", reports)
	}
}

func TestHandleScanUpload_MissingFile(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/v1/scan", strings.NewReader(""))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST /scan without file = %d, want 400", rec.Code)
	}
}

func TestHandleScanUpload_UnsupportedType(t *testing.T) {
	s := newTestServer(t)

	rec := uploadDocument(t, s, "photo.jpg", "binary-ish", "")
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("POST /scan with .jpg = %d, want 415", rec.Code)
	}
}

func TestReportLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := uploadDocument(t, s, "notes.txt", "PAN ABCDE1234F on file", "user-1")
	var resp scanUploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	get := doJSON(t, s, "GET", fmt.Sprintf("/api/v1/reports/%d", resp.ID), nil, nil)
	if get.Code != http.StatusOK {
		t.Fatalf("GET /reports/%d = %d", resp.ID, get.Code)
	}
	var report storage.ReportModel
	if err := json.Unmarshal(get.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(report.ReportText, "PAN Card") {
		t.Errorf("stored report missing PAN section:\n%s", report.ReportText)
	}

	del := doJSON(t, s, "DELETE", fmt.Sprintf("/api/v1/reports/%d", resp.ID), nil, nil)
	if del.Code != http.StatusNoContent {
		t.Errorf("DELETE /reports/%d = %d, want 204", resp.ID, del.Code)
	}

	gone := doJSON(t, s, "GET", fmt.Sprintf("/api/v1/reports/%d", resp.ID), nil, nil)
	if gone.Code != http.StatusNotFound {
		t.Errorf("GET deleted report = %d, want 404", gone.Code)
	}
}

func TestHandleGetReport_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "GET", "/api/v1/reports/999", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET missing report = %d, want 404", rec.Code)
	}
}

func TestReports_NoStoreConfigured(t *testing.T) {
	cfg := config.GetDefaults()
	cfg.RateLimit.Enabled = false
	log := logger.Nop()
	pipeline := pii.NewPipeline(pii.DefaultCatalog(), nil, nil, log)
	s := New(cfg, log, pipeline, nil, nil)

	for _, tc := range []struct{ method, path string }{
		{"GET", "/api/v1/reports"},
		{"GET", "/api/v1/reports/1"},
		{"DELETE", "/api/v1/reports/1"},
		{"POST", "/api/v1/allowlist"},
	} {
		rec := doJSON(t, s, tc.method, tc.path, map[string]string{"value": "x"}, nil)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s %s = %d, want 503", tc.method, tc.path, rec.Code)
		}
	}
}

func TestHandleAllowlistAdd_SuppressesFutureScans(t *testing.T) {
	s := newTestServer(t)

	add := doJSON(t, s, "POST", "/api/v1/allowlist",
		map[string]string{"value": "test@example.com"}, nil)
	if add.Code != http.StatusOK {
		t.Fatalf("POST /allowlist = %d", add.Code)
	}

	rec := doJSON(t, s, "POST", "/api/v1/scan/text",
		map[string]string{"text": "Reach me at test@example.com"}, nil)
	var result pii.ScanResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.DetectedAny {
		t.Errorf("allowlisted value still detected:\n%s", result.Report)
	}
}

func TestHandleAllowlistAdd_RequiresValue(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, "POST", "/api/v1/allowlist", map[string]string{}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST /allowlist without value = %d, want 400", rec.Code)
	}
}

func TestRateLimit_Exceeded(t *testing.T) {
	cfg := config.GetDefaults()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerMin = 2
	log := logger.Nop()
	pipeline := pii.NewPipeline(pii.DefaultCatalog(), nil, nil, log)
	s := New(cfg, log, pipeline, nil, nil)

	body := map[string]string{"text": "hello"}
	for i := 0; i < 2; i++ {
		if rec := doJSON(t, s, "POST", "/api/v1/quickscan", body, nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i+1, rec.Code)
		}
	}
	if rec := doJSON(t, s, "POST", "/api/v1/quickscan", body, nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", rec.Code)
	}

	// Reports are outside the rate-limited subrouter.
	if rec := doJSON(t, s, "GET", "/api/v1/reports", nil, nil); rec.Code == http.StatusTooManyRequests {
		t.Error("report listing should not be rate limited")
	}
}
