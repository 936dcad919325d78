package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shawnasapp/careerserve/pkg/cache"
	"github.com/shawnasapp/careerserve/pkg/career"
	"github.com/shawnasapp/careerserve/pkg/college"
	"github.com/shawnasapp/careerserve/pkg/config"
)

func wage(v float64) *float64 { return &v }

func newTestServer(records []career.Record, colleges []college.Record) *Server {
	cfg := config.DefaultConfig()
	cfg.Server.RequestLog = false

	srv := New(cfg,
		career.NewStore(records, career.Options{}),
		college.NewStore(colleges),
		career.DefaultClusters(),
		cache.New(time.Hour),
	)
	srv.RegisterRoutes()
	return srv
}

func defaultTestServer() *Server {
	return newTestServer(
		[]career.Record{
			{Key: "29-1141.00", Title: "Registered Nurse", Keyword: "Registered Nurse", OnetCode: "29-1141.00", Description: "Provides patient care.", MedianWage: wage(75000)},
			{Key: "25-2021.00", Title: "Elementary School Teacher", Keyword: "Elementary School Teacher", OnetCode: "25-2021.00"},
			{Key: "15-1252.00", Title: "Software Developer", Keyword: "Software Developer", OnetCode: "15-1252.00"},
		},
		[]college.Record{
			{"id": "100654", "name": "Alabama A&M University"},
		},
	)
}

func doRequest(t *testing.T, srv *Server, method, target string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	return resp, body
}

func TestSearchRoute(t *testing.T) {
	srv := defaultTestServer()
	resp, body := doRequest(t, srv, "GET", "/api/careers/careeronestop/search/nurse")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var results []career.Summary
	if err := json.Unmarshal(body, &results); err != nil {
		t.Fatalf("bad body %s: %v", body, err)
	}
	if len(results) != 1 || results[0].Title != "Registered Nurse" {
		t.Errorf("results = %+v", results)
	}
	if results[0].DetailsURL == "" || results[0].SalaryURL == "" {
		t.Error("summaries must carry detail and salary links")
	}
}

func TestSearchRouteLimitClamp(t *testing.T) {
	srv := newTestServer([]career.Record{
		{Key: "a", Title: "Nurse A", Keyword: "Nurse A"},
		{Key: "b", Title: "Nurse B", Keyword: "Nurse B"},
		{Key: "c", Title: "Nurse C", Keyword: "Nurse C"},
	}, nil)

	var results []career.Summary
	_, body := doRequest(t, srv, "GET", "/api/careers/careeronestop/search/nurse?limit=2")
	if err := json.Unmarshal(body, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("limit=2 returned %d results", len(results))
	}

	// limit=0 clamps to 1, limit=1000 clamps to 100
	_, body = doRequest(t, srv, "GET", "/api/careers/careeronestop/search/nurse?limit=0")
	if err := json.Unmarshal(body, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("limit=0 returned %d results, want 1", len(results))
	}

	_, body = doRequest(t, srv, "GET", "/api/careers/careeronestop/search/nurse?limit=1000")
	if err := json.Unmarshal(body, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Errorf("limit=1000 returned %d results, want all 3", len(results))
	}
}

func TestSearchRouteNoMatches(t *testing.T) {
	srv := defaultTestServer()
	resp, body := doRequest(t, srv, "GET", "/api/careers/careeronestop/search/xyz123")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 with empty array", resp.StatusCode)
	}
	var results []career.Summary
	if err := json.Unmarshal(body, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("results = %+v, want empty", results)
	}
}

func TestDetailsRoutes(t *testing.T) {
	srv := defaultTestServer()

	_, body := doRequest(t, srv, "GET", "/api/careers/careeronestop/details/nurse")
	var detail career.Detail
	if err := json.Unmarshal(body, &detail); err != nil {
		t.Fatal(err)
	}
	if detail.OnetTitle != "Registered Nurse" {
		t.Errorf("details/nurse = %+v", detail)
	}
	if detail.Wages.National == nil || detail.Wages.National.Median != 75000 {
		t.Errorf("details wages = %+v", detail.Wages)
	}

	_, body = doRequest(t, srv, "GET", "/api/careers/careeronestop/details/onet/29-1141.00")
	if err := json.Unmarshal(body, &detail); err != nil {
		t.Fatal(err)
	}
	if detail.OnetCode != "29-1141.00" {
		t.Errorf("details/onet = %+v", detail)
	}

	resp, _ := doRequest(t, srv, "GET", "/api/careers/careeronestop/details/zzz-none")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("details miss status = %d, want 404", resp.StatusCode)
	}
	resp, _ = doRequest(t, srv, "GET", "/api/careers/careeronestop/details/onet/99-0000.00")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("details/onet miss status = %d, want 404", resp.StatusCode)
	}
}

func TestSalaryRoute(t *testing.T) {
	srv := defaultTestServer()
	_, body := doRequest(t, srv, "GET", "/api/careers/careeronestop/salary/nurse")

	var info struct {
		Median *float64        `json:"median"`
		Raw    json.RawMessage `json:"raw"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		t.Fatal(err)
	}
	if info.Median == nil || *info.Median != 75000 {
		t.Errorf("median = %v, want 75000", info.Median)
	}
	if len(info.Raw) == 0 {
		t.Error("salary response must carry the raw record")
	}

	// unknown wage stays null, the endpoint still resolves
	_, body = doRequest(t, srv, "GET", "/api/careers/careeronestop/salary/teacher")
	if err := json.Unmarshal(body, &info); err != nil {
		t.Fatal(err)
	}
	if info.Median != nil {
		t.Errorf("median = %v, want null for unknown wage", info.Median)
	}
}

func TestLocalRoutes(t *testing.T) {
	srv := defaultTestServer()

	_, body := doRequest(t, srv, "GET", "/api/careers/careeronestop/local")
	var records []career.Record
	if err := json.Unmarshal(body, &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Errorf("local list has %d records, want 3", len(records))
	}

	resp, _ := doRequest(t, srv, "GET", "/api/careers/careeronestop/local/29-1141.00")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("local/:key status = %d", resp.StatusCode)
	}

	// the audit endpoint always reports an empty list
	_, body = doRequest(t, srv, "GET", "/api/careers/careeronestop/local/missing")
	var missing []string
	if err := json.Unmarshal(body, &missing); err != nil {
		t.Fatal(err)
	}
	if len(missing) != 0 {
		t.Errorf("local/missing = %v, want empty", missing)
	}
}

func TestResolveRoute(t *testing.T) {
	srv := defaultTestServer()
	_, body := doRequest(t, srv, "GET", "/api/careers/careeronestop/resolve/nurse")

	var res career.Resolution
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatal(err)
	}
	if res.Source != "heuristic" || len(res.Suggestions) != 1 {
		t.Errorf("resolve/nurse = %+v", res)
	}
}

func TestHealthRoute(t *testing.T) {
	srv := defaultTestServer()
	_, body := doRequest(t, srv, "GET", "/api/careers/careeronestop/health")

	var health struct {
		Status string `json:"status"`
		User   bool   `json:"user"`
	}
	if err := json.Unmarshal(body, &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "ok" {
		t.Errorf("health = %+v", health)
	}
	if health.User {
		t.Error("no upstream credentials configured, user must be false")
	}
}

func TestClustersRoute(t *testing.T) {
	srv := defaultTestServer()
	_, body := doRequest(t, srv, "GET", "/api/careers/careeronestop/clusters")

	var clusters []career.Cluster
	if err := json.Unmarshal(body, &clusters); err != nil {
		t.Fatal(err)
	}
	if len(clusters) != 4 || clusters[0].Name != "Healthcare" {
		t.Errorf("clusters = %+v", clusters)
	}
}

func TestAdminEnrichDisabled(t *testing.T) {
	srv := defaultTestServer()
	resp, body := doRequest(t, srv, "POST", "/api/careers/careeronestop/admin/enrich")
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("admin/enrich status = %d, want 403", resp.StatusCode)
	}
	var msg struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Status != "disabled" {
		t.Errorf("admin/enrich = %+v", msg)
	}
}

func TestLegacyMisspelledMount(t *testing.T) {
	srv := defaultTestServer()
	resp, body := doRequest(t, srv, "GET", "/api/careers/careeronestoap/search/nurse")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("legacy mount status = %d, want 200", resp.StatusCode)
	}
	var results []career.Summary
	if err := json.Unmarshal(body, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("legacy mount results = %+v", results)
	}
}

func TestCollegeRoutes(t *testing.T) {
	srv := defaultTestServer()

	_, body := doRequest(t, srv, "GET", "/api/colleges/local")
	var colleges []college.Record
	if err := json.Unmarshal(body, &colleges); err != nil {
		t.Fatal(err)
	}
	if len(colleges) != 1 {
		t.Errorf("colleges = %+v", colleges)
	}

	resp, body := doRequest(t, srv, "GET", "/api/colleges/local/100654")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("college by id status = %d", resp.StatusCode)
	}
	var rec college.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		t.Fatal(err)
	}
	if rec["name"] != "Alabama A&M University" {
		t.Errorf("college = %+v", rec)
	}

	resp, _ = doRequest(t, srv, "GET", "/api/colleges/local/999999")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown college status = %d, want 404", resp.StatusCode)
	}
}

func TestDegradedModeRoutes(t *testing.T) {
	srv := newTestServer(nil, nil)

	// search degrades to an empty array, not an error
	resp, body := doRequest(t, srv, "GET", "/api/careers/careeronestop/search/nurse")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("degraded search status = %d, want 200", resp.StatusCode)
	}
	var results []career.Summary
	if err := json.Unmarshal(body, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("degraded search = %+v, want empty", results)
	}

	// key lookups surface the data-unavailable body
	resp, body = doRequest(t, srv, "GET", "/api/careers/careeronestop/details/nurse")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("degraded details status = %d, want 404", resp.StatusCode)
	}
	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errBody); err != nil {
		t.Fatal(err)
	}
	if errBody.Error != "no prepop available" {
		t.Errorf("degraded details error = %q, want data-unavailable body", errBody.Error)
	}

	// college list degrades to an empty array
	_, body = doRequest(t, srv, "GET", "/api/colleges/local")
	var colleges []college.Record
	if err := json.Unmarshal(body, &colleges); err != nil {
		t.Fatal(err)
	}
	if len(colleges) != 0 {
		t.Errorf("degraded colleges = %+v, want empty", colleges)
	}
}
