package checkup_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/checkup"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/config"

	"github.com/stretchr/testify/assert"
)

func baseConfig(t *testing.T) *config.Config {
	return &config.Config{
		GoogleCloudProject: "demo-project",
		JWTSecret:          "a-real-secret",
		GeminiAPIKey:       "key",
		StorageRoot:        filepath.Join(t.TempDir(), "storage"),
		APIBaseURL:         "http://127.0.0.1:1", // nothing listens here
		DBHost:             "localhost",
		DBPort:             "5432",
		DBName:             "aac_db",
	}
}

func TestRunAll_FailureDoesNotAbortRemainingProbes(t *testing.T) {
	cfg := baseConfig(t)
	cfg.GoogleCloudProject = "" // first required probe fails
	cfg.FirebaseProjectID = ""

	checker := checkup.New(cfg, nil)
	records := checker.RunAll(context.Background())

	// Every probe in the checklist produced a record.
	assert.Len(t, records, len(checker.Probes()))
	assert.False(t, records[0].Passed)
}

func TestAggregate_IsANDOverRequiredProbes(t *testing.T) {
	records := []checkup.Record{
		{Name: "a", Required: true, Passed: true},
		{Name: "b", Required: true, Passed: true},
		{Name: "c", Required: false, Passed: false}, // optional failure
	}
	assert.True(t, checkup.Aggregate(records))

	records[1].Passed = false
	assert.False(t, checkup.Aggregate(records), "a required failure must never be dropped")
}

func TestRunAll_RecordsCarryDetail(t *testing.T) {
	cfg := baseConfig(t)
	checker := checkup.New(cfg, nil)

	records := checker.RunAll(context.Background())

	byName := map[string]checkup.Record{}
	for _, r := range records {
		byName[r.Name] = r
	}

	assert.True(t, byName["project configured"].Passed)
	assert.Contains(t, byName["project configured"].Detail, "demo-project")
	assert.True(t, byName["storage root writable"].Passed)

	// DB is nil here, so that required probe fails and the aggregate is false.
	assert.False(t, byName["database reachable"].Passed)
	assert.False(t, checkup.Aggregate(records))
}

func TestProbeAPIHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := baseConfig(t)
	cfg.APIBaseURL = srv.URL

	records := checkup.New(cfg, nil).RunAll(context.Background())
	for _, r := range records {
		if r.Name == "API health endpoint" {
			assert.True(t, r.Passed)
			assert.Contains(t, r.Detail, "/health")
		}
	}
}
