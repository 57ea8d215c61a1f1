package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/zapply/internal/models"
)

func sampleJob(id string) models.Job {
	return models.Job{
		ID:          id,
		Title:       "Engineering Intern",
		Description: "Build things",
		Company:     "Acme",
		Slug:        "acme",
		Ats:         models.AtsGreenhouse,
		URL:         "https://example.com/jobs/1",
		Location:    "Austin, TX",
		City:        "Austin",
		Region:      "Texas",
		Country:     "United States",
		CountryCode: "US",
		Posted:      "2026-08-01T00:00:00Z",
		Tags:        []string{"Python", "Remote"},
		Departments: []string{"Engineering"},
	}
}

func TestBuildInsertQueriesEmpty(t *testing.T) {
	assert.Nil(t, BuildInsertQueries(nil))
}

func TestBuildInsertQueriesStructure(t *testing.T) {
	jobs := []models.Job{sampleJob("greenhouse-1"), sampleJob("greenhouse-2")}
	queries := BuildInsertQueries(jobs)

	// Five join-table deletes lead the batch, each covering both ids.
	require.Greater(t, len(queries), 5)
	for i := range 5 {
		assert.True(t, strings.HasPrefix(queries[i].SQL, "DELETE FROM job_"), "query %d: %s", i, queries[i].SQL)
		assert.Contains(t, queries[i].SQL, "IN (?1, ?2)")
		assert.Equal(t, []any{"greenhouse-1", "greenhouse-2"}, queries[i].Params)
	}

	// One upsert per job follows, then the label inserts.
	upserts, labelInserts := 0, 0
	for _, q := range queries[5:] {
		switch {
		case strings.HasPrefix(q.SQL, "INSERT INTO jobs"):
			upserts++
			assert.Contains(t, q.SQL, "ON CONFLICT(id) DO UPDATE SET")
			assert.Len(t, q.Params, 14)
		case strings.HasPrefix(q.SQL, "INSERT OR IGNORE INTO job_"):
			labelInserts++
			assert.Len(t, q.Params, 2)
		default:
			t.Fatalf("unexpected statement: %s", q.SQL)
		}
	}
	assert.Equal(t, 2, upserts)
	// Two tags plus one department per job.
	assert.Equal(t, 6, labelInserts)
}

func TestBuildInsertQueriesChangeDetection(t *testing.T) {
	queries := BuildInsertQueries([]models.Job{sampleJob("greenhouse-1")})

	var upsert string
	for _, q := range queries {
		if strings.HasPrefix(q.SQL, "INSERT INTO jobs") {
			upsert = q.SQL
		}
	}
	require.NotEmpty(t, upsert)

	// The update only fires when one of the tracked columns changed.
	for _, column := range []string{"title", "description", "location", "city", "region", "country", "country_code"} {
		assert.Contains(t, upsert, "jobs."+column+" != excluded."+column)
	}
}

func TestBuildGeoQueries(t *testing.T) {
	queries := BuildGeoQueries(
		map[string]string{"US": "United States"},
		map[string]string{"US.CA": "California"},
	)
	require.Len(t, queries, 2)

	var regionQuery *Query
	for i := range queries {
		if strings.Contains(queries[i].SQL, "INTO regions") {
			regionQuery = &queries[i]
		}
	}
	require.NotNil(t, regionQuery)
	assert.Equal(t, []any{"US.CA", "US", "California"}, regionQuery.Params)
}
