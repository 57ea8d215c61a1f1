package ats

import (
	"encoding/json"
	"fmt"

	"github.com/ternarybob/zapply/internal/models"
)

type greenhouseJob struct {
	ID          FlexibleID       `json:"id"`
	Title       string           `json:"title"`
	AbsoluteURL string           `json:"absolute_url"`
	URL         string           `json:"url"`
	Content     FlexibleText     `json:"content"`
	Description FlexibleText     `json:"description"`
	Location    FlexibleLocation `json:"location"`
	UpdatedAt   string           `json:"updated_at"`
	Posted      string           `json:"posted"`
	Education   FlexibleText     `json:"education"`
	Metadata    []struct {
		Name  string       `json:"name"`
		Label string       `json:"label"`
		Value FlexibleText `json:"value"`
	} `json:"metadata"`
	Departments []struct {
		Name string `json:"name"`
	} `json:"departments"`
	Offices []struct {
		Name string `json:"name"`
	} `json:"offices"`
}

// parseGreenhouse accepts the three shapes Greenhouse boards have been
// seen to return: {"jobs": [...]}, a bare array, and a bare single object.
func parseGreenhouse(company models.Company, data []byte) ([]models.Job, error) {
	raw, err := rawGreenhouseJobs(data)
	if err != nil {
		return nil, newParseError(company, data, err)
	}

	jobs := make([]models.Job, 0, len(raw))
	for _, rj := range raw {
		url := rj.AbsoluteURL
		if url == "" {
			url = rj.URL
		}
		job := newJob(company, rj.ID.String(), rj.Title, url)

		description := rj.Content.String()
		if description == "" {
			description = rj.Description.String()
		}
		job.Description = CleanHTML(description)

		posted := rj.UpdatedAt
		if posted == "" {
			posted = rj.Posted
		}
		job.Posted = NormalizeDate(posted)

		job.Location = rj.Location.String()

		if greenhouseEducationOptional(rj) {
			job.Tags = append(job.Tags, "Education Optional")
		}

		for _, d := range rj.Departments {
			if d.Name != "" {
				job.Departments = append(job.Departments, d.Name)
			}
		}
		for _, o := range rj.Offices {
			if o.Name != "" {
				job.Offices = append(job.Offices, o.Name)
			}
		}

		jobs = append(jobs, job)
	}
	return jobs, nil
}

func rawGreenhouseJobs(data []byte) ([]greenhouseJob, error) {
	var wrapped struct {
		Jobs []greenhouseJob `json:"jobs"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Jobs != nil {
		return wrapped.Jobs, nil
	}

	var bare []greenhouseJob
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	// Any JSON object decodes into greenhouseJob, including board error
	// responses like {"error": "..."} or {"jobs": null}. A posting carries
	// at least one of id, title or url; anything without them is drift.
	var single greenhouseJob
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, err
	}
	if single.ID.String() == "" && single.Title == "" && single.AbsoluteURL == "" && single.URL == "" {
		return nil, fmt.Errorf("object carries no job fields")
	}
	return []greenhouseJob{single}, nil
}

// greenhouseEducationOptional reports whether the posting waives a degree
// requirement, via the top-level education field or a metadata entry named
// "Education" valued "education_optional".
func greenhouseEducationOptional(rj greenhouseJob) bool {
	if rj.Education.String() == "education_optional" {
		return true
	}
	for _, item := range rj.Metadata {
		name := item.Name
		if name == "" {
			name = item.Label
		}
		if name == "Education" && item.Value.String() == "education_optional" {
			return true
		}
	}
	return false
}
