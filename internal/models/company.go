package models

import (
	"encoding/json"
	"strings"
)

// AtsType identifies the applicant tracking system hosting a company's
// job board. Unrecognized values map to AtsUnknown, which parses to an
// empty job list rather than failing the company.
type AtsType string

const (
	AtsGreenhouse      AtsType = "greenhouse"
	AtsLever           AtsType = "lever"
	AtsSmartRecruiters AtsType = "smartrecruiters"
	AtsAshby           AtsType = "ashby"
	AtsWorkable        AtsType = "workable"
	AtsRecruitee       AtsType = "recruitee"
	AtsBreezy          AtsType = "breezy"
	AtsUnknown         AtsType = "unknown"
)

// ParseAtsType maps a slugs-file "type" value to an AtsType.
// Matching is case-insensitive so both "Greenhouse" and "greenhouse" work.
func ParseAtsType(s string) AtsType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "greenhouse":
		return AtsGreenhouse
	case "lever":
		return AtsLever
	case "smartrecruiters":
		return AtsSmartRecruiters
	case "ashby":
		return AtsAshby
	case "workable":
		return AtsWorkable
	case "recruitee":
		return AtsRecruitee
	case "breezy":
		return AtsBreezy
	default:
		return AtsUnknown
	}
}

func (a AtsType) String() string {
	return string(a)
}

// UnmarshalJSON accepts any casing and folds unknown vendors to AtsUnknown.
func (a *AtsType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = ParseAtsType(s)
	return nil
}

// Company is one entry of the curated slugs file. The list is loaded once
// per run and treated as immutable input.
type Company struct {
	Name   string  `json:"name" validate:"required"`
	Type   AtsType `json:"type" validate:"required"`
	Slug   string  `json:"slug" validate:"required"`
	APIURL string  `json:"api_url" validate:"required,url"`
	Domain string  `json:"domain,omitempty"`
}
