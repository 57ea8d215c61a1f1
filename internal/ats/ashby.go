package ats

import (
	"encoding/json"

	"github.com/ternarybob/zapply/internal/models"
)

type ashbyJob struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	JobURL          string           `json:"jobUrl"`
	Location        FlexibleLocation `json:"location"`
	PublishedAt     string           `json:"publishedAt"`
	Department      string           `json:"department"`
	DescriptionHTML FlexibleText     `json:"descriptionHtml"`
}

func parseAshby(company models.Company, data []byte) ([]models.Job, error) {
	var resp struct {
		Jobs []ashbyJob `json:"jobs"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, newParseError(company, data, err)
	}

	jobs := make([]models.Job, 0, len(resp.Jobs))
	for _, item := range resp.Jobs {
		job := newJob(company, item.ID, item.Title, item.JobURL)
		job.Location = item.Location.String()
		job.Posted = NormalizeDate(item.PublishedAt)
		job.Description = CleanHTML(item.DescriptionHTML.String())
		if item.Department != "" {
			job.Departments = append(job.Departments, item.Department)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
