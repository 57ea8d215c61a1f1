// -----------------------------------------------------------------------
// Pipeline Orchestrator - Concurrent fetch/parse/filter/enrich/dedupe/
// batch-write engine over the company list
// -----------------------------------------------------------------------

package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/zapply/internal/ats"
	"github.com/ternarybob/zapply/internal/geo"
	"github.com/ternarybob/zapply/internal/httpclient"
	"github.com/ternarybob/zapply/internal/models"
	"github.com/ternarybob/zapply/internal/storage"
	"github.com/ternarybob/zapply/internal/tagging"
)

// Summary is the outcome of one pipeline run.
type Summary struct {
	RunID              string
	CompaniesSucceeded int
	CompaniesFailed    int
	JobsDiscovered     int
	JobsInserted       int
	Duration           time.Duration
}

// Options wires the orchestrator's collaborators and limits.
type Options struct {
	Client       *httpclient.Client
	Enricher     *ats.Enricher
	Filter       *Filter
	TagEngine    *tagging.Engine
	GeoEngine    *geo.Engine
	Store        storage.Store
	Logger       arbor.ILogger
	OutcomeLog   arbor.ILogger // per-company [SUCCESS]/[ERROR] lines; may be nil
	Concurrency  int
	BatchSize    int
	ShowProgress bool
}

// Orchestrator streams companies through a bounded worker pool and
// batch-writes surviving jobs. The write buffer and the dedup set share
// one mutex; writes happen outside it.
type Orchestrator struct {
	opts Options

	mu     sync.Mutex
	buffer []models.Job
	seen   map[string]struct{}

	companiesSucceeded atomic.Int64
	companiesFailed    atomic.Int64
	jobsDiscovered     atomic.Int64
	jobsInserted       atomic.Int64
}

// NewOrchestrator creates an orchestrator seeded with the dedup set
// (persisted cache merged with the store's existing ids).
func NewOrchestrator(opts Options, seen map[string]struct{}) *Orchestrator {
	if seen == nil {
		seen = make(map[string]struct{})
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 1
	}
	return &Orchestrator{opts: opts, seen: seen}
}

// Seen returns the dedup set for persisting back to the cache file.
// Call only after Run has returned.
func (o *Orchestrator) Seen() map[string]struct{} {
	return o.seen
}

// Run processes every company and flushes the remaining buffer.
// Per-company failures are logged and counted, never propagated.
func (o *Orchestrator) Run(ctx context.Context, companies []models.Company) Summary {
	start := time.Now()
	runID := uuid.NewString()

	o.opts.Logger.Info().
		Str("run_id", runID).
		Int("companies", len(companies)).
		Int("concurrency", o.opts.Concurrency).
		Msg("Starting pipeline run")

	var bar *progressbar.ProgressBar
	if o.opts.ShowProgress {
		bar = progressbar.NewOptions(len(companies),
			progressbar.OptionSetDescription("Scraping"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
		)
	}

	sem := make(chan struct{}, o.opts.Concurrency)
	var wg sync.WaitGroup

	for _, company := range companies {
		wg.Add(1)
		sem <- struct{}{}
		go func(company models.Company) {
			defer wg.Done()
			defer func() { <-sem }()

			o.runCompany(ctx, company)
			if bar != nil {
				bar.Add(1)
			}
		}(company)
	}
	wg.Wait()

	if bar != nil {
		bar.Finish()
	}

	o.flush(ctx)

	summary := Summary{
		RunID:              runID,
		CompaniesSucceeded: int(o.companiesSucceeded.Load()),
		CompaniesFailed:    int(o.companiesFailed.Load()),
		JobsDiscovered:     int(o.jobsDiscovered.Load()),
		JobsInserted:       int(o.jobsInserted.Load()),
		Duration:           time.Since(start),
	}

	o.opts.Logger.Info().
		Str("run_id", runID).
		Int("succeeded", summary.CompaniesSucceeded).
		Int("failed", summary.CompaniesFailed).
		Int("discovered", summary.JobsDiscovered).
		Int("inserted", summary.JobsInserted).
		Str("duration", summary.Duration.Round(time.Millisecond).String()).
		Msg("Pipeline run complete")

	return summary
}

func (o *Orchestrator) runCompany(ctx context.Context, company models.Company) {
	jobs, err := o.processCompany(ctx, company)
	if err != nil {
		o.companiesFailed.Add(1)
		o.opts.Logger.Warn().
			Str("company", company.Name).
			Str("ats", company.Type.String()).
			Err(err).
			Msg("Company failed")
		if o.opts.OutcomeLog != nil {
			o.opts.OutcomeLog.Error().Msgf("[ERROR] %s: %v", company.Name, err)
		}
		return
	}

	o.companiesSucceeded.Add(1)
	o.jobsDiscovered.Add(int64(len(jobs)))
	if o.opts.OutcomeLog != nil {
		o.opts.OutcomeLog.Info().Msgf("[SUCCESS] %s: Found %d roles", company.Name, len(jobs))
	}

	o.admit(ctx, jobs)
}

// processCompany is the per-company unit of work: fetch, parse, health
// check, filter, enrich, then analyze (location, tags, education).
func (o *Orchestrator) processCompany(ctx context.Context, company models.Company) ([]models.Job, error) {
	body, err := o.opts.Client.GetBody(ctx, ats.FetchURL(company))
	if err != nil {
		return nil, err
	}

	jobs, err := ats.Parse(company, body)
	if err != nil {
		var parseErr *ats.ParseError
		if errors.As(err, &parseErr) {
			o.opts.Logger.Debug().
				Str("company", company.Name).
				Str("sample", parseErr.Sample).
				Msg("Payload sample")
		}
		return nil, err
	}

	// Raw items present but nothing parsed means the vendor schema
	// drifted under us.
	if len(jobs) == 0 {
		if estimate := ats.EstimateRawItemCount(company.Type, body); estimate > 0 {
			o.opts.Logger.Warn().
				Str("company", company.Name).
				Str("ats", company.Type.String()).
				Int("raw_items", estimate).
				Msg("PARSING HEALTH ALERT: raw items present but none parsed")
		}
		return nil, nil
	}

	kept := jobs[:0]
	for _, job := range jobs {
		if o.opts.Filter.Keep(job.Title, job.Posted) {
			kept = append(kept, job)
		}
	}

	if o.opts.Enricher != nil {
		o.opts.Enricher.EnrichJobs(ctx, company, kept)
	}

	for i := range kept {
		o.analyze(&kept[i])
	}
	return kept, nil
}

// analyze fills in the resolved location and the label sets.
func (o *Orchestrator) analyze(job *models.Job) {
	if o.opts.GeoEngine != nil {
		loc := o.opts.GeoEngine.Resolve(job.Location)
		job.City = loc.City
		job.Region = loc.Region
		job.Country = loc.Country
		job.CountryCode = loc.CountryCode
	}

	if o.opts.TagEngine != nil {
		job.Tags = mergeUnique(job.Tags,
			o.opts.TagEngine.DetectTags(job.Title),
			o.opts.TagEngine.DetectTags(job.Description))
	}

	text := job.Title + " " + job.Description
	degrees, subjects := tagging.DetectEducation(text)
	job.DegreeLevels = mergeUnique(job.DegreeLevels, degrees)
	job.SubjectAreas = mergeUnique(job.SubjectAreas, subjects)
}

// admit pushes new jobs into the shared buffer under the mutex, draining
// a full buffer and writing it after release.
func (o *Orchestrator) admit(ctx context.Context, jobs []models.Job) {
	var batch []models.Job

	o.mu.Lock()
	for _, job := range jobs {
		if _, dup := o.seen[job.ID]; dup {
			continue
		}
		o.seen[job.ID] = struct{}{}
		o.buffer = append(o.buffer, job)
	}
	if len(o.buffer) >= o.opts.BatchSize {
		batch = o.buffer
		o.buffer = nil
	}
	o.mu.Unlock()

	if len(batch) > 0 {
		o.write(ctx, batch)
	}
}

// flush writes whatever remains in the buffer.
func (o *Orchestrator) flush(ctx context.Context) {
	o.mu.Lock()
	batch := o.buffer
	o.buffer = nil
	o.mu.Unlock()

	if len(batch) > 0 {
		o.write(ctx, batch)
	}
}

// write persists one batch. On failure the batch's ids are removed from
// the dedup set so the jobs are reattempted on the next run.
func (o *Orchestrator) write(ctx context.Context, batch []models.Job) {
	err := o.opts.Store.ExecuteBatch(ctx, storage.BuildInsertQueries(batch))
	if err != nil {
		o.opts.Logger.Error().
			Int("jobs", len(batch)).
			Err(err).
			Msg("Batch write failed, jobs will be reattempted next run")

		o.mu.Lock()
		for _, job := range batch {
			delete(o.seen, job.ID)
		}
		o.mu.Unlock()
		return
	}

	o.jobsInserted.Add(int64(len(batch)))
	o.opts.Logger.Debug().Int("jobs", len(batch)).Msg("Batch written")
}

func mergeUnique(sets ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, set := range sets {
		for _, v := range set {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
