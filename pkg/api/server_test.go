package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/orgchart/pkg/chart"
	"github.com/matzehuels/orgchart/pkg/dataset"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, nil)
	srv := NewServer(runner, nil, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, body
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("parse error envelope: %v (%s)", err, body)
	}
	return envelope.Error.Code
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), `"ok"`) {
		t.Errorf("body = %s", body)
	}
}

func TestListDataSets(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/datasets")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Datasets []struct {
			Name    string `json:"name"`
			Nodes   int    `json:"nodes"`
			Default bool   `json:"default"`
		} `json:"datasets"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(out.Datasets) != 3 {
		t.Fatalf("datasets = %d, want 3", len(out.Datasets))
	}
	byName := map[string]int{}
	defaults := 0
	for _, ds := range out.Datasets {
		byName[ds.Name] = ds.Nodes
		if ds.Default {
			defaults++
			if ds.Name != dataset.Default {
				t.Errorf("default = %s, want %s", ds.Name, dataset.Default)
			}
		}
	}
	if defaults != 1 {
		t.Errorf("default count = %d, want 1", defaults)
	}
	if byName[dataset.TestData1] == 0 || byName[dataset.TestData2] == 0 {
		t.Errorf("built-in sets missing nodes: %v", byName)
	}
	if byName[dataset.Custom] != 0 {
		t.Errorf("Custom should start empty, has %d nodes", byName[dataset.Custom])
	}
}

func TestDataSetLayout(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/datasets/Test-data-1/layout")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", resp.StatusCode, body)
	}

	l, err := chart.UnmarshalLayout(body)
	if err != nil {
		t.Fatalf("parse layout: %v", err)
	}
	if len(l.Positions) != 7 {
		t.Errorf("positions = %d, want 7", len(l.Positions))
	}
	if l.Width <= 0 || l.Height <= 0 {
		t.Errorf("dimensions = %gx%g", l.Width, l.Height)
	}
}

func TestDataSetLayoutUnknown(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/datasets/Nope/layout")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if code := errorCode(t, body); code != "DATASET_NOT_FOUND" {
		t.Errorf("code = %s, want DATASET_NOT_FOUND", code)
	}
}

func TestDataSetLayoutCustomEmpty(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/datasets/Custom/layout")
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
	if code := errorCode(t, body); code != "CUSTOM_EMPTY" {
		t.Errorf("code = %s, want CUSTOM_EMPTY", code)
	}
}

func TestDataSetRenderSVG(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/datasets/Test-data-1/render?format=svg")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %s", ct)
	}
	if !strings.HasPrefix(string(body), "<svg") {
		t.Errorf("body is not SVG: %.60s", body)
	}
}

func TestDataSetRenderBadFormat(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/datasets/Test-data-1/render?format=gif")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if code := errorCode(t, body); code != "INVALID_FORMAT" {
		t.Errorf("code = %s, want INVALID_FORMAT", code)
	}
}

func TestSaveChartFlow(t *testing.T) {
	ts := newTestServer(t)

	payload := `{
		"name": "Acme",
		"nodes": [
			{"id": "ceo", "name": "Alice", "role": "CEO"},
			{"id": "cto", "name": "Bob", "role": "CTO", "prev": "ceo"}
		]
	}`
	resp, err := http.Post(ts.URL+"/api/charts", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", resp.StatusCode, body)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.ID == "" {
		t.Fatalf("missing id in response: %s", body)
	}

	// Saved chart layout by id.
	resp, body = get(t, ts, "/api/charts/"+created.ID+"/layout")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chart layout status = %d (%s)", resp.StatusCode, body)
	}
	l, err := chart.UnmarshalLayout(body)
	if err != nil {
		t.Fatalf("parse layout: %v", err)
	}
	if len(l.Positions) != 2 {
		t.Errorf("positions = %d, want 2", len(l.Positions))
	}

	// Saving filled the Custom slot.
	resp, body = get(t, ts, "/api/datasets/Custom/layout")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Custom layout status = %d (%s)", resp.StatusCode, body)
	}

	// Listing includes the saved chart.
	resp, body = get(t, ts, "/api/charts")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), created.ID) {
		t.Errorf("list missing saved chart: %s", body)
	}

	// Delete removes it.
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/charts/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	resp, body = get(t, ts, "/api/charts/"+created.ID+"/layout")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status after delete = %d, want 404 (%s)", resp.StatusCode, body)
	}
	if code := errorCode(t, body); code != "CHART_NOT_FOUND" {
		t.Errorf("code = %s, want CHART_NOT_FOUND", code)
	}
}

func TestSaveChartInvalid(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name    string
		payload string
	}{
		{"malformed json", `{"nodes": [`},
		{"duplicate ids", `{"nodes": [{"id": "a", "name": "A"}, {"id": "a", "name": "B"}]}`},
		{"empty chart", `{"nodes": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/charts", "application/json", strings.NewReader(tt.payload))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400 (%s)", resp.StatusCode, body)
			}
		})
	}
}
