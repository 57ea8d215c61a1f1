package ats

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/zapply/internal/models"
)

type smartRecruitersJob struct {
	ID           string `json:"id"`
	UUID         string `json:"uuid"`
	Name         string `json:"name"`
	ReleasedDate string `json:"releasedDate"`
	PostingURL   string `json:"postingUrl"`
	Location     struct {
		City         string `json:"city"`
		Region       string `json:"region"`
		Country      string `json:"country"`
		FullLocation string `json:"fullLocation"`
		Remote       bool   `json:"remote"`
	} `json:"location"`
	Department struct {
		Label string `json:"label"`
	} `json:"department"`
	TypeOfEmployment struct {
		Label string `json:"label"`
	} `json:"typeOfEmployment"`
	CustomField []struct {
		FieldLabel string `json:"fieldLabel"`
		ValueLabel string `json:"valueLabel"`
	} `json:"customField"`
}

func parseSmartRecruiters(company models.Company, data []byte) ([]models.Job, error) {
	var resp struct {
		Content []smartRecruitersJob `json:"content"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, newParseError(company, data, err)
	}

	jobs := make([]models.Job, 0, len(resp.Content))
	for _, item := range resp.Content {
		url := item.PostingURL
		if url == "" {
			url = fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", company.Slug, item.ID)
		}

		job := newJob(company, item.UUID, item.Name, url)
		job.Location = assembleLocation(item.Location.City, item.Location.Region, item.Location.Country, item.Location.FullLocation)
		job.Posted = NormalizeDate(item.ReleasedDate)

		if item.Department.Label != "" {
			job.Departments = append(job.Departments, item.Department.Label)
		}
		if item.TypeOfEmployment.Label != "" {
			job.Tags = append(job.Tags, item.TypeOfEmployment.Label)
		}
		if item.Location.Remote {
			job.Tags = append(job.Tags, "Remote")
		}
		for _, cf := range item.CustomField {
			if cf.ValueLabel == "" {
				continue
			}
			label := strings.ToLower(cf.FieldLabel)
			if strings.Contains(label, "work space") || strings.Contains(label, "remote") {
				job.Tags = append(job.Tags, cf.ValueLabel)
			}
		}

		jobs = append(jobs, job)
	}
	return jobs, nil
}

// assembleLocation joins city/region/country, falling back to the vendor's
// single full-location string when the parts are all empty.
func assembleLocation(city, region, country, full string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{city, region, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return full
	}
	return strings.Join(parts, ", ")
}
