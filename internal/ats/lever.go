package ats

import (
	"encoding/json"
	"strconv"

	"github.com/ternarybob/zapply/internal/models"
)

type leverJob struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	HostedURL   string `json:"hosted_url"`
	Description string `json:"description"`
	CreatedAt   int64  `json:"createdAt"` // milliseconds epoch
	Categories  struct {
		Location   string `json:"location"`
		Team       string `json:"team"`
		Department string `json:"department"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
}

func parseLever(company models.Company, data []byte) ([]models.Job, error) {
	var items []leverJob
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, newParseError(company, data, err)
	}

	jobs := make([]models.Job, 0, len(items))
	for _, item := range items {
		job := newJob(company, item.ID, item.Text, item.HostedURL)
		job.Description = CleanHTML(item.Description)
		job.Location = item.Categories.Location
		if item.CreatedAt > 0 {
			job.Posted = NormalizeDate(strconv.FormatInt(item.CreatedAt, 10))
		}

		dept := item.Categories.Team
		if dept == "" {
			dept = item.Categories.Department
		}
		if dept != "" {
			job.Departments = append(job.Departments, dept)
		}

		if item.Categories.Commitment != "" {
			job.Tags = append(job.Tags, item.Categories.Commitment)
		}

		jobs = append(jobs, job)
	}
	return jobs, nil
}
