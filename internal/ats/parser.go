// -----------------------------------------------------------------------
// ATS Parser Family - Converts vendor JSON payloads into canonical jobs
// -----------------------------------------------------------------------

package ats

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/zapply/internal/models"
)

// ParseError wraps a vendor payload decode failure with company context.
// Sample carries the first 500 bytes of the payload for debug logging.
type ParseError struct {
	Company string
	Vendor  models.AtsType
	Sample  string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s payload for %s: %v", e.Vendor, e.Company, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

const sampleSize = 500

func newParseError(company models.Company, data []byte, err error) *ParseError {
	sample := string(data)
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}
	return &ParseError{Company: company.Name, Vendor: company.Type, Sample: sample, Err: err}
}

// Parse converts a vendor payload into canonical jobs. Unknown vendors
// yield an empty result without error.
func Parse(company models.Company, data []byte) ([]models.Job, error) {
	switch company.Type {
	case models.AtsGreenhouse:
		return parseGreenhouse(company, data)
	case models.AtsLever:
		return parseLever(company, data)
	case models.AtsSmartRecruiters:
		return parseSmartRecruiters(company, data)
	case models.AtsAshby:
		return parseAshby(company, data)
	case models.AtsWorkable:
		return parseWorkable(company, data)
	case models.AtsRecruitee:
		return parseRecruitee(company, data)
	case models.AtsBreezy:
		return parseBreezy(company, data)
	default:
		return nil, nil
	}
}

// FetchURL returns the list endpoint for a company. Greenhouse boards
// only include descriptions when content=true is requested.
func FetchURL(company models.Company) string {
	url := company.APIURL
	if company.Type == models.AtsGreenhouse && !strings.Contains(url, "content=true") {
		if strings.Contains(url, "?") {
			url += "&content=true"
		} else {
			url += "?content=true"
		}
	}
	return url
}

// EstimateRawItemCount reports how many raw items the payload appears to
// contain, without fully decoding it. A positive estimate combined with an
// empty parse result is the primary signal of vendor schema drift.
func EstimateRawItemCount(ats models.AtsType, data []byte) int {
	var bare []json.RawMessage
	if err := json.Unmarshal(data, &bare); err == nil {
		return len(bare)
	}

	var wrapped struct {
		Jobs    []json.RawMessage `json:"jobs"`
		Content []json.RawMessage `json:"content"`
		Offers  []json.RawMessage `json:"offers"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return 0
	}
	if n := len(wrapped.Jobs) + len(wrapped.Content) + len(wrapped.Offers); n > 0 {
		return n
	}

	// A bare object is a single job for Greenhouse.
	if ats == models.AtsGreenhouse && len(data) > 0 && data[0] == '{' {
		return 1
	}
	return 0
}

// newJob seeds a canonical job with the company's identity. The stable id
// is "<ats>-<vendor id>", globally unique per run.
func newJob(company models.Company, id, title, url string) models.Job {
	return models.Job{
		ID:         fmt.Sprintf("%s-%s", company.Type, id),
		Title:      title,
		Company:    company.Name,
		Slug:       company.Slug,
		Ats:        company.Type,
		URL:        url,
		CompanyURL: company.Domain,
	}
}
