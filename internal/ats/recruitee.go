package ats

import (
	"encoding/json"

	"github.com/ternarybob/zapply/internal/models"
)

type recruiteeJob struct {
	ID          FlexibleID `json:"id"`
	Title       string     `json:"title"`
	CareersURL  string     `json:"careers_url"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	CreatedAt   string     `json:"created_at"`
	Department  string     `json:"department"`
}

func parseRecruitee(company models.Company, data []byte) ([]models.Job, error) {
	var resp struct {
		Offers []recruiteeJob `json:"offers"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, newParseError(company, data, err)
	}

	jobs := make([]models.Job, 0, len(resp.Offers))
	for _, item := range resp.Offers {
		job := newJob(company, item.ID.String(), item.Title, item.CareersURL)
		job.Description = CleanHTML(item.Description)
		job.Location = item.Location
		job.Posted = NormalizeDate(item.CreatedAt)
		if item.Department != "" {
			job.Departments = append(job.Departments, item.Department)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
