package models

// Job is the canonical record produced by the ATS parser family and
// persisted to the jobs table. A job is mutated only inside the worker
// that created it; once handed to the write buffer it is read-only.
type Job struct {
	// ID is globally unique per run, formed as "<ats>-<vendor job id>".
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Company     string  `json:"company"`
	Slug        string  `json:"slug"`
	Ats         AtsType `json:"ats"`
	URL         string  `json:"url"`
	CompanyURL  string  `json:"companyUrl,omitempty"`

	// Location is the raw vendor string; the resolved fields below are
	// filled in by the location engine.
	Location    string `json:"location"`
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	Country     string `json:"country,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`

	// Posted is either empty or an RFC-3339 UTC timestamp.
	Posted string `json:"posted"`

	Departments  []string `json:"departments"`
	Offices      []string `json:"offices"`
	Tags         []string `json:"tags"`
	DegreeLevels []string `json:"degreeLevels"`
	SubjectAreas []string `json:"subjectAreas"`
}
