package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vijaymanbajracharya/stratcol/pkg/cache"
	"github.com/vijaymanbajracharya/stratcol/pkg/chrono"
	"github.com/vijaymanbajracharya/stratcol/pkg/errors"
	stratio "github.com/vijaymanbajracharya/stratcol/pkg/io"
	"github.com/vijaymanbajracharya/stratcol/pkg/pipeline"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
	"github.com/vijaymanbajracharya/stratcol/pkg/store"
)

func testLayers() []strat.Layer {
	a := strat.NewLayer("Mancos", 30, strat.ShaleMudstone, 80, 95)
	b := strat.NewLayer("Morrison", 60, strat.Siltstone, 145, 155)
	return []strat.Layer{a, b}
}

func newTestServer(t *testing.T) (*httptest.Server, *store.MemoryStore) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, chrono.NewMapper(chrono.Default()), logger)
	st := store.NewMemoryStore()
	srv := httptest.NewServer(New(runner, st, logger).Handler())
	t.Cleanup(srv.Close)
	return srv, st
}

func columnBody(t *testing.T, name string, opts *pipeline.Options) io.Reader {
	t.Helper()
	data, err := json.Marshal(columnRequest{
		Name:    name,
		Column:  stratio.NewDocument(testLayers(), "test"),
		Options: opts,
	})
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(data)
}

func do(t *testing.T, method, url string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body errorBody
	decodeBody(t, resp, &body)
	return string(body.Error.Code)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestChrono(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/chrono?min=70&max=90", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var res chrono.Result
	decodeBody(t, resp, &res)
	if len(res.Eras) != 1 || res.Eras[0].Name != "Mesozoic" {
		t.Errorf("eras = %+v", res.Eras)
	}

	full := do(t, http.MethodGet, srv.URL+"/chrono", nil)
	var table chrono.Result
	decodeBody(t, full, &table)
	if table.Len() <= res.Len() {
		t.Errorf("full table has %d units, query %d", table.Len(), res.Len())
	}

	bad := do(t, http.MethodGet, srv.URL+"/chrono?min=90&max=70", nil)
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("inverted range status = %d, want 400", bad.StatusCode)
	}
	if code := errorCode(t, bad); code != "INVALID_RANGE" {
		t.Errorf("code = %q", code)
	}

	nan := do(t, http.MethodGet, srv.URL+"/chrono?min=abc&max=1", nil)
	if nan.StatusCode != http.StatusBadRequest {
		t.Errorf("non-numeric status = %d, want 400", nan.StatusCode)
	}
}

func TestRocks(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/rocks", nil)
	var groups []rockGroup
	decodeBody(t, resp, &groups)
	if len(groups) != len(strat.Categories) {
		t.Fatalf("groups = %d, want %d", len(groups), len(strat.Categories))
	}
	if groups[0].Category != strat.CategorySedimentary || len(groups[0].Rocks) == 0 {
		t.Errorf("first group = %+v", groups[0])
	}
}

func TestLayout(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/layout", columnBody(t, "", &pipeline.Options{Title: "Well 7"}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var model struct {
		Title  string `json:"title"`
		Mode   string `json:"mode"`
		Blocks []struct {
			Category string `json:"category"`
		} `json:"blocks"`
	}
	decodeBody(t, resp, &model)
	if model.Title != "Well 7" || model.Mode != "thickness" || len(model.Blocks) != 2 {
		t.Errorf("model = %+v", model)
	}
}

func TestLayoutErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"not json", "{", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"colum": {}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad mode", `{"column": {"layers": []}, "options": {"mode": "sideways"}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{
			"malformed layer",
			`{"column": {"layers": [{"name": "A", "thickness": 1}]}}`,
			http.StatusUnprocessableEntity, "MALFORMED_RECORD",
		},
		{
			"missing formation top",
			`{"column": {"layers": [{"name":"A","thickness":1,"rock_type":"sandstone","formation_top":null,"young_age":1,"old_age":2,"dep_env":null,"visible":true,"min_thickness":null,"max_thickness":null}]},
			  "options": {"mode": "formation-top"}}`,
			http.StatusUnprocessableEntity, "MISSING_FORMATION_TOP",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPost, srv.URL+"/layout", strings.NewReader(tt.body))
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if code := errorCode(t, resp); code != tt.code {
				t.Errorf("code = %q, want %q", code, tt.code)
			}
		})
	}
}

func TestRender(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/render", columnBody(t, "", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("body does not start with <svg: %.40s", data)
	}

	multi := do(t, http.MethodPost, srv.URL+"/render",
		columnBody(t, "", &pipeline.Options{Formats: []string{"svg", "json"}}))
	if multi.StatusCode != http.StatusBadRequest {
		t.Errorf("multi-format status = %d, want 400", multi.StatusCode)
	}

	gif := do(t, http.MethodPost, srv.URL+"/render",
		columnBody(t, "", &pipeline.Options{Formats: []string{"gif"}}))
	if code := errorCode(t, gif); code != "INVALID_FORMAT" {
		t.Errorf("gif code = %q", code)
	}
}

func TestColumnLifecycle(t *testing.T) {
	srv, st := newTestServer(t)

	created := do(t, http.MethodPost, srv.URL+"/columns", columnBody(t, "Well 7", nil))
	if created.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", created.StatusCode)
	}
	var col columnResponse
	decodeBody(t, created, &col)
	if col.ID == "" || col.Name != "Well 7" || len(col.Column.Layers) != 2 {
		t.Fatalf("created = %+v", col)
	}
	if loc := created.Header.Get("Location"); loc != "/columns/"+col.ID {
		t.Errorf("Location = %q", loc)
	}

	list := do(t, http.MethodGet, srv.URL+"/columns", nil)
	var summaries []store.Summary
	decodeBody(t, list, &summaries)
	if len(summaries) != 1 || summaries[0].ID != col.ID || summaries[0].Layers != 2 {
		t.Errorf("list = %+v", summaries)
	}

	got := do(t, http.MethodGet, srv.URL+"/columns/"+col.ID, nil)
	var fetched columnResponse
	decodeBody(t, got, &fetched)
	if fetched.Name != "Well 7" {
		t.Errorf("fetched = %+v", fetched)
	}

	put := do(t, http.MethodPut, srv.URL+"/columns/"+col.ID, columnBody(t, "Well 7b", nil))
	if put.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d", put.StatusCode)
	}
	var replaced columnResponse
	decodeBody(t, put, &replaced)
	if !replaced.CreatedAt.Equal(col.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", replaced.CreatedAt, col.CreatedAt)
	}
	if stored, err := st.Get(t.Context(), col.ID); err != nil || stored.Name != "Well 7b" {
		t.Errorf("stored = %+v, %v", stored, err)
	}

	svg := do(t, http.MethodGet, srv.URL+"/columns/"+col.ID+"/svg?mode=chronology", nil)
	if svg.StatusCode != http.StatusOK {
		t.Fatalf("svg status = %d", svg.StatusCode)
	}
	data, _ := io.ReadAll(svg.Body)
	if !strings.Contains(string(data), "Well 7b") {
		t.Error("svg should default its title to the column name")
	}
	if !strings.Contains(string(data), `class="unconformity"`) {
		t.Error("chronology svg should mark the gap")
	}

	lay := do(t, http.MethodGet, srv.URL+"/columns/"+col.ID+"/layout?levels=era,period&env=false", nil)
	var model struct {
		Columns []string `json:"columns"`
	}
	decodeBody(t, lay, &model)
	want := []string{"era", "period", "lithology"}
	if strings.Join(model.Columns, ",") != strings.Join(want, ",") {
		t.Errorf("columns = %v, want %v", model.Columns, want)
	}

	del := do(t, http.MethodDelete, srv.URL+"/columns/"+col.ID, nil)
	if del.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", del.StatusCode)
	}
	gone := do(t, http.MethodGet, srv.URL+"/columns/"+col.ID, nil)
	if gone.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d", gone.StatusCode)
	}
	if code := errorCode(t, gone); code != "NOT_FOUND" {
		t.Errorf("code = %q", code)
	}
}

func TestPutCreatesColumn(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodPut, srv.URL+"/columns/well-9", columnBody(t, "Well 9", nil))
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want 201", resp.StatusCode)
	}
}

func TestColumnQueryErrors(t *testing.T) {
	srv, st := newTestServer(t)
	if err := st.Put(t.Context(), &store.Column{ID: "w1", Layers: testLayers()}); err != nil {
		t.Fatal(err)
	}

	for _, q := range []string{"mode=up", "height=tall", "gaps=maybe", "levels=eon", "from=5&to=1"} {
		resp := do(t, http.MethodGet, srv.URL+"/columns/w1/svg?"+q, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestMaxBody(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, nil, logger)
	srv := httptest.NewServer(New(runner, store.NewMemoryStore(), logger, WithMaxBodyBytes(16)).Handler())
	defer srv.Close()

	resp := do(t, http.MethodPost, srv.URL+"/layout", columnBody(t, "", nil))
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"FILE_NOT_FOUND", http.StatusNotFound},
		{"INVALID_MODE", http.StatusBadRequest},
		{"OVERLAP", http.StatusUnprocessableEntity},
		{"UNSUPPORTED", http.StatusNotImplemented},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(errors.Code(tt.code)); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
