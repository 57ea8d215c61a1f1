package models

import "strings"

// WorkMode is derived from keywords in the raw location string.
type WorkMode string

const (
	WorkModeRemote   WorkMode = "remote"
	WorkModeHybrid   WorkMode = "hybrid"
	WorkModeInOffice WorkMode = "inoffice"
)

// LocationInfo is the structured result of resolving a raw location string
// against the gazetteer. Empty strings mean the component was not resolved.
type LocationInfo struct {
	City        string   `json:"city,omitempty"`
	Region      string   `json:"region,omitempty"`
	Country     string   `json:"country,omitempty"`
	CountryCode string   `json:"countryCode,omitempty"`
	WorkMode    WorkMode `json:"workMode"`
}

// DisplayFormat joins city, region and country, suppressing any component
// already present earlier in the join. This collapses results like
// "Singapore, Singapore, Singapore" to "Singapore" and
// "New York, New York, United States" to "New York, United States".
func (l LocationInfo) DisplayFormat() string {
	parts := make([]string, 0, 3)
	for _, component := range []string{l.City, l.Region, l.Country} {
		if component == "" {
			continue
		}
		seen := false
		for _, p := range parts {
			if p == component {
				seen = true
				break
			}
		}
		if !seen {
			parts = append(parts, component)
		}
	}
	return strings.Join(parts, ", ")
}
