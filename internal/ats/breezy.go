package ats

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/zapply/internal/models"
)

type breezyJob struct {
	ID            string `json:"id"`
	FriendlyID    string `json:"friendly_id"`
	Name          string `json:"name"`
	URL           string `json:"url"`
	PublishedDate string `json:"published_date"`
	Department    string `json:"department"`
	Salary        string `json:"salary"`
	Location      struct {
		Name    string `json:"name"`
		Country struct {
			Name string `json:"name"`
		} `json:"country"`
		IsRemote      bool `json:"is_remote"`
		RemoteDetails struct {
			Name  string `json:"name"`
			Label string `json:"label"`
		} `json:"remote_details"`
	} `json:"location"`
}

func parseBreezy(company models.Company, data []byte) ([]models.Job, error) {
	var items []breezyJob
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, newParseError(company, data, err)
	}

	jobs := make([]models.Job, 0, len(items))
	for _, item := range items {
		url := item.URL
		if url == "" {
			url = fmt.Sprintf("https://%s.breezy.hr/p/%s", company.Slug, item.ID)
		}

		job := newJob(company, item.ID, item.Name, url)
		job.Posted = NormalizeDate(item.PublishedDate)

		parts := make([]string, 0, 3)
		if item.Location.Name != "" {
			parts = append(parts, item.Location.Name)
		}
		if item.Location.Country.Name != "" && item.Location.Country.Name != item.Location.Name {
			parts = append(parts, item.Location.Country.Name)
		}
		if details := breezyRemoteDetails(item); details != "" {
			parts = append(parts, details)
		}
		job.Location = strings.Join(parts, ", ")

		if item.Location.IsRemote {
			job.Tags = append(job.Tags, "Remote")
		}
		if item.Salary != "" {
			job.Tags = append(job.Tags, "Salary: "+item.Salary)
		}
		if item.Department != "" {
			job.Departments = append(job.Departments, item.Department)
		}

		jobs = append(jobs, job)
	}
	return jobs, nil
}

func breezyRemoteDetails(item breezyJob) string {
	if item.Location.RemoteDetails.Name != "" {
		return item.Location.RemoteDetails.Name
	}
	return item.Location.RemoteDetails.Label
}
