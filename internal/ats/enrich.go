// -----------------------------------------------------------------------
// Enrichment - Second-pass description fetch for summary-only vendors
// -----------------------------------------------------------------------

package ats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/zapply/internal/httpclient"
	"github.com/ternarybob/zapply/internal/models"
)

// DefaultEnrichConcurrency bounds the per-company detail-fetch fan-out.
const DefaultEnrichConcurrency = 10

// Enricher fills in descriptions for vendors whose list endpoints return
// summaries only. Failures are non-fatal: the job passes through with an
// empty description.
type Enricher struct {
	client      *httpclient.Client
	logger      arbor.ILogger
	concurrency int
}

// NewEnricher creates an enricher with the given fan-out bound. A bound
// below 1 falls back to the default.
func NewEnricher(client *httpclient.Client, logger arbor.ILogger, concurrency int) *Enricher {
	if concurrency < 1 {
		concurrency = DefaultEnrichConcurrency
	}
	return &Enricher{
		client:      client,
		logger:      logger,
		concurrency: concurrency,
	}
}

// NeedsEnrichment reports whether a vendor's list endpoint is known to
// omit full descriptions.
func NeedsEnrichment(ats models.AtsType) bool {
	switch ats {
	case models.AtsWorkable, models.AtsSmartRecruiters, models.AtsRecruitee, models.AtsBreezy:
		return true
	default:
		return false
	}
}

// EnrichJobs fetches detail pages for every job with an empty description,
// with a bounded concurrent fan-out. Jobs are mutated in place; each job
// is touched by exactly one goroutine.
func (e *Enricher) EnrichJobs(ctx context.Context, company models.Company, jobs []models.Job) {
	if !NeedsEnrichment(company.Type) {
		return
	}

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i := range jobs {
		if jobs[i].Description != "" {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(job *models.Job) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := e.enrichJob(ctx, company, job); err != nil {
				if e.logger != nil {
					e.logger.Debug().
						Str("company", company.Name).
						Str("job_id", job.ID).
						Err(err).
						Msg("Enrichment failed, keeping empty description")
				}
			}
		}(&jobs[i])
	}

	wg.Wait()
}

func (e *Enricher) enrichJob(ctx context.Context, company models.Company, job *models.Job) error {
	switch company.Type {
	case models.AtsWorkable:
		return e.enrichWorkable(ctx, company, job)
	case models.AtsSmartRecruiters:
		return e.enrichSmartRecruiters(ctx, company, job)
	case models.AtsRecruitee:
		return e.enrichRecruitee(ctx, company, job)
	case models.AtsBreezy:
		return e.enrichBreezy(ctx, job)
	default:
		return nil
	}
}

// detailURL appends the vendor job id to the company's list endpoint,
// which is the detail-endpoint convention for Workable, SmartRecruiters
// and Recruitee.
func detailURL(company models.Company, job *models.Job) string {
	base := company.APIURL
	if idx := strings.IndexByte(base, '?'); idx >= 0 {
		base = base[:idx]
	}
	vendorID := strings.TrimPrefix(job.ID, string(company.Type)+"-")
	return strings.TrimRight(base, "/") + "/" + vendorID
}

func (e *Enricher) enrichWorkable(ctx context.Context, company models.Company, job *models.Job) error {
	var detail struct {
		Description  string `json:"description"`
		Requirements string `json:"requirements"`
		Benefits     string `json:"benefits"`
	}
	if err := e.client.GetJSON(ctx, detailURL(company, job), &detail); err != nil {
		return err
	}
	job.Description = CleanHTML(buildSections(detail.Description, detail.Requirements, detail.Benefits))
	return nil
}

func (e *Enricher) enrichSmartRecruiters(ctx context.Context, company models.Company, job *models.Job) error {
	type section struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	}
	var detail struct {
		JobAd struct {
			Sections struct {
				CompanyDescription    section `json:"companyDescription"`
				JobDescription        section `json:"jobDescription"`
				Qualifications        section `json:"qualifications"`
				AdditionalInformation section `json:"additionalInformation"`
			} `json:"sections"`
		} `json:"jobAd"`
	}
	if err := e.client.GetJSON(ctx, detailURL(company, job), &detail); err != nil {
		return err
	}

	var b strings.Builder
	sections := detail.JobAd.Sections
	for _, s := range []section{sections.CompanyDescription, sections.JobDescription, sections.Qualifications, sections.AdditionalInformation} {
		if s.Text == "" {
			continue
		}
		if s.Title != "" {
			fmt.Fprintf(&b, "<h3>%s</h3>", s.Title)
		}
		b.WriteString(s.Text)
	}
	job.Description = CleanHTML(b.String())
	return nil
}

func (e *Enricher) enrichRecruitee(ctx context.Context, company models.Company, job *models.Job) error {
	var detail struct {
		Offer struct {
			Description  string `json:"description"`
			Requirements string `json:"requirements"`
			Benefits     string `json:"benefits"`
		} `json:"offer"`
	}
	if err := e.client.GetJSON(ctx, detailURL(company, job), &detail); err != nil {
		return err
	}
	job.Description = CleanHTML(buildSections(detail.Offer.Description, detail.Offer.Requirements, detail.Offer.Benefits))
	return nil
}

// enrichBreezy scrapes the public posting page: Breezy has no JSON detail
// endpoint, but the page embeds an application/ld+json JobPosting block
// carrying the full description.
func (e *Enricher) enrichBreezy(ctx context.Context, job *models.Job) error {
	body, err := e.client.GetBody(ctx, job.URL)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to parse posting page: %w", err)
	}

	var description string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var posting struct {
			Description string `json:"description"`
		}
		if err := json.Unmarshal([]byte(s.Text()), &posting); err != nil {
			return true
		}
		if posting.Description != "" {
			description = posting.Description
			return false
		}
		return true
	})

	if description == "" {
		return fmt.Errorf("no ld+json description on %s", job.URL)
	}
	job.Description = CleanHTML(description)
	return nil
}
