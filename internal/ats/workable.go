package ats

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/zapply/internal/models"
)

type workableJob struct {
	Shortcode    string `json:"shortcode"`
	Title        string `json:"title"`
	City         string `json:"city"`
	Country      string `json:"country"`
	CreatedAt    string `json:"created_at"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Benefits     string `json:"benefits"`
}

func parseWorkable(company models.Company, data []byte) ([]models.Job, error) {
	var resp struct {
		Jobs []workableJob `json:"jobs"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, newParseError(company, data, err)
	}

	jobs := make([]models.Job, 0, len(resp.Jobs))
	for _, item := range resp.Jobs {
		url := fmt.Sprintf("https://apply.workable.com/%s/j/%s/", company.Slug, item.Shortcode)
		job := newJob(company, item.Shortcode, item.Title, url)

		parts := make([]string, 0, 2)
		for _, p := range []string{item.City, item.Country} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		job.Location = strings.Join(parts, ", ")
		job.Posted = NormalizeDate(item.CreatedAt)
		job.Description = CleanHTML(buildSections(item.Description, item.Requirements, item.Benefits))

		jobs = append(jobs, job)
	}
	return jobs, nil
}

// buildSections assembles a description from its parts with synthetic
// headings, omitting absent sections.
func buildSections(description, requirements, benefits string) string {
	var b strings.Builder
	b.WriteString(description)
	if requirements != "" {
		b.WriteString("<h3>Requirements</h3>")
		b.WriteString(requirements)
	}
	if benefits != "" {
		b.WriteString("<h3>Benefits</h3>")
		b.WriteString(benefits)
	}
	return b.String()
}
