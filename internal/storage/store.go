// -----------------------------------------------------------------------
// Storage - Adapter contract and adapter-independent query building
// -----------------------------------------------------------------------

package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/zapply/internal/models"
)

// Query is one parameterized SQL statement. Parameters are referenced in
// the SQL as ?1, ?2, ... and carried separately so the local adapter can
// bind them natively while the remote adapter renders them into the text.
type Query struct {
	SQL    string `json:"sql"`
	Params []any  `json:"params"`
}

// Store is the persistence contract. Two adapters implement it: a local
// SQLite database for development and the Cloudflare D1 HTTP API for
// production.
type Store interface {
	// ExecuteBatch runs the statements in order, chunked per adapter.
	ExecuteBatch(ctx context.Context, queries []Query) error

	// ExistingIDs returns every job id already persisted.
	ExistingIDs(ctx context.Context) (map[string]struct{}, error)

	// InitializeGeoTables populates the countries and regions reference
	// tables. Idempotent: skips work when countries is already populated.
	InitializeGeoTables(ctx context.Context, countries map[string]string, regions map[string]string) error

	Close() error
}

// labelTables maps each job label set to its join table.
var labelTables = []struct {
	table  string
	labels func(models.Job) []string
}{
	{"job_degree_levels", func(j models.Job) []string { return j.DegreeLevels }},
	{"job_subject_areas", func(j models.Job) []string { return j.SubjectAreas }},
	{"job_departments", func(j models.Job) []string { return j.Departments }},
	{"job_offices", func(j models.Job) []string { return j.Offices }},
	{"job_tags", func(j models.Job) []string { return j.Tags }},
}

const upsertJobSQL = `INSERT INTO jobs (id, title, description, company, slug, ats, url, company_url, location, city, region, country, country_code, posted)
VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8, ?9, ?10, ?11, ?12, ?13, ?14)
ON CONFLICT(id) DO UPDATE SET
title = excluded.title, description = excluded.description, company = excluded.company, slug = excluded.slug, ats = excluded.ats, url = excluded.url, company_url = excluded.company_url, location = excluded.location, city = excluded.city, region = excluded.region, country = excluded.country, country_code = excluded.country_code, posted = excluded.posted
WHERE jobs.title != excluded.title OR jobs.description != excluded.description OR jobs.location != excluded.location OR jobs.city != excluded.city OR jobs.region != excluded.region OR jobs.country != excluded.country OR jobs.country_code != excluded.country_code`

// BuildInsertQueries turns a batch of jobs into the statement sequence
// shared by both adapters:
//  1. one DELETE per join table covering every job id in the batch,
//  2. one UPSERT per job, updating only when a tracked column changed,
//  3. one INSERT OR IGNORE per label per job.
func BuildInsertQueries(jobs []models.Job) []Query {
	if len(jobs) == 0 {
		return nil
	}

	ids := make([]any, len(jobs))
	placeholders := make([]string, len(jobs))
	for i, job := range jobs {
		ids[i] = job.ID
		placeholders[i] = fmt.Sprintf("?%d", i+1)
	}
	inClause := strings.Join(placeholders, ", ")

	queries := make([]Query, 0, len(jobs)*3+len(labelTables))

	for _, lt := range labelTables {
		queries = append(queries, Query{
			SQL:    fmt.Sprintf("DELETE FROM %s WHERE job_id IN (%s)", lt.table, inClause),
			Params: ids,
		})
	}

	for _, job := range jobs {
		queries = append(queries, Query{
			SQL: upsertJobSQL,
			Params: []any{
				job.ID, job.Title, job.Description, job.Company, job.Slug,
				job.Ats.String(), job.URL, job.CompanyURL, job.Location,
				job.City, job.Region, job.Country, job.CountryCode, job.Posted,
			},
		})

		for _, lt := range labelTables {
			for _, label := range lt.labels(job) {
				queries = append(queries, Query{
					SQL:    fmt.Sprintf("INSERT OR IGNORE INTO %s (job_id, name) VALUES (?1, ?2)", lt.table),
					Params: []any{job.ID, label},
				})
			}
		}
	}

	return queries
}

// BuildGeoQueries produces the reference-table population statements.
// regions is keyed by the composite id ("US.CA").
func BuildGeoQueries(countries map[string]string, regions map[string]string) []Query {
	queries := make([]Query, 0, len(countries)+len(regions))
	for code, name := range countries {
		queries = append(queries, Query{
			SQL:    "INSERT OR IGNORE INTO countries (code, name) VALUES (?1, ?2)",
			Params: []any{code, name},
		})
	}
	for id, name := range regions {
		countryCode, _, _ := strings.Cut(id, ".")
		queries = append(queries, Query{
			SQL:    "INSERT OR IGNORE INTO regions (id, country_code, name) VALUES (?1, ?2, ?3)",
			Params: []any{id, countryCode, name},
		})
	}
	return queries
}
