package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/zapply/internal/models"
)

// newMockEngine populates a small gazetteer by hand so resolution can be
// tested without the Geonames files.
func newMockEngine() *Engine {
	e := NewEngine(arbor.NewLogger())

	e.countries["US"] = "United States"
	e.countryLookup["us"] = countryRef{code: "US", name: "United States"}
	e.countryLookup["usa"] = countryRef{code: "US", name: "United States"}
	e.countryLookup["united states"] = countryRef{code: "US", name: "United States"}

	e.regions["US.CA"] = "California"
	e.regionLookup["us.ca"] = regionRef{id: "US.CA", name: "California"}
	e.regionLookup["us.california"] = regionRef{id: "US.CA", name: "California"}
	e.admin1Lookup["ca"] = "US"
	e.admin1Lookup["california"] = "US"

	e.regions["US.TX"] = "Texas"
	e.regionLookup["us.tx"] = regionRef{id: "US.TX", name: "Texas"}
	e.regionLookup["us.texas"] = regionRef{id: "US.TX", name: "Texas"}
	e.admin1Lookup["tx"] = "US"
	e.admin1Lookup["texas"] = "US"

	e.cities["san jose"] = []cityEntry{{
		name:        "San Jose",
		countryCode: "US",
		population:  1000000,
		admin1:      "CA",
	}}

	return e
}

func TestResolveCityRegionCountry(t *testing.T) {
	engine := newMockEngine()

	loc := engine.Resolve("San Jose, California, US")
	assert.Equal(t, "San Jose", loc.City)
	assert.Equal(t, "California", loc.Region)
	assert.Equal(t, "US", loc.CountryCode)
	assert.Equal(t, "San Jose, California, United States", loc.DisplayFormat())
}

func TestResolveRegionCodeInference(t *testing.T) {
	engine := newMockEngine()

	// No country part; "CA" infers United States.
	loc := engine.Resolve("San Jose, CA")
	assert.Equal(t, "San Jose", loc.City)
	assert.Equal(t, "California", loc.Region)
	assert.Equal(t, "US", loc.CountryCode)
}

func TestResolveStableUnderCaseAndWhitespace(t *testing.T) {
	engine := newMockEngine()

	base := engine.Resolve("San Jose, California, US").DisplayFormat()
	require.NotEmpty(t, base)

	// Case-only and trailing/extra-whitespace variants of the same input
	// must format identically.
	for _, raw := range []string{
		"SAN JOSE, CALIFORNIA, US ",
		"  san jose,california,us",
		"San Jose ,  California , US",
	} {
		assert.Equal(t, base, engine.Resolve(raw).DisplayFormat(), raw)
	}
}

func TestResolveAlternateDelimiters(t *testing.T) {
	engine := newMockEngine()

	loc := engine.Resolve("San Jose / CA / US")
	assert.Equal(t, "San Jose", loc.City)
	assert.Equal(t, "US", loc.CountryCode)
}

func TestResolveWorkModeKeywords(t *testing.T) {
	engine := newMockEngine()

	loc := engine.Resolve("Remote - San Jose")
	assert.Equal(t, models.WorkModeRemote, loc.WorkMode)
	assert.Equal(t, "San Jose", loc.City)

	loc = engine.Resolve("Hybrid")
	assert.Equal(t, models.WorkModeHybrid, loc.WorkMode)
	assert.Empty(t, loc.City)

	loc = engine.Resolve("Remote, San Jose, CA")
	assert.Equal(t, models.WorkModeRemote, loc.WorkMode)
	assert.Equal(t, "San Jose", loc.City)
	assert.Equal(t, "California", loc.Region)
}

func TestResolveRegionNameInference(t *testing.T) {
	engine := newMockEngine()

	// "Paris" is not in the mock gazetteer but "Texas" resolves and
	// implies the country.
	loc := engine.Resolve("Paris, Texas")
	assert.Empty(t, loc.City)
	assert.Equal(t, "Texas", loc.Region)
	assert.Equal(t, "US", loc.CountryCode)
	assert.Equal(t, "United States", loc.Country)
}

func TestResolveEmptyString(t *testing.T) {
	engine := newMockEngine()

	loc := engine.Resolve("")
	assert.Empty(t, loc.City)
	assert.Empty(t, loc.Region)
	assert.Empty(t, loc.Country)
	assert.Empty(t, loc.CountryCode)
	assert.Equal(t, models.WorkModeInOffice, loc.WorkMode)
}

func TestResolveUnknownString(t *testing.T) {
	engine := newMockEngine()

	loc := engine.Resolve("Somewhere Nice")
	assert.Empty(t, loc.City)
	assert.Equal(t, models.WorkModeInOffice, loc.WorkMode)
}

func TestResolveTokenFallback(t *testing.T) {
	engine := newMockEngine()
	engine.cities["berlin"] = []cityEntry{{
		name:        "Berlin",
		countryCode: "DE",
		population:  3500000,
		admin1:      "16",
	}}
	engine.countries["DE"] = "Germany"

	// No comma structure; the token scan still finds the city.
	loc := engine.Resolve("Office: Berlin")
	assert.Equal(t, "Berlin", loc.City)
	assert.Equal(t, "DE", loc.CountryCode)
}

func TestResolvePrefersPopulationThenScope(t *testing.T) {
	engine := newMockEngine()
	engine.countries["GB"] = "United Kingdom"
	engine.countryLookup["uk"] = countryRef{code: "GB", name: "United Kingdom"}
	engine.cities["springfield"] = []cityEntry{
		{name: "Springfield", countryCode: "US", population: 170000, admin1: "MO"},
		{name: "Springfield", countryCode: "GB", population: 5000, admin1: "ENG"},
	}
	engine.regions["US.MO"] = "Missouri"
	engine.regions["GB.ENG"] = "England"

	// Ambiguous name alone: most populous candidate wins.
	loc := engine.Resolve("Springfield")
	assert.Equal(t, "US", loc.CountryCode)

	// Country context overrides population order.
	loc = engine.Resolve("Springfield, UK")
	assert.Equal(t, "GB", loc.CountryCode)
	assert.Equal(t, "England", loc.Region)
}

func TestResolveFoldsDiacritics(t *testing.T) {
	engine := newMockEngine()
	engine.cities["zurich"] = []cityEntry{{
		name:        "Zürich",
		countryCode: "CH",
		population:  400000,
		admin1:      "ZH",
	}}
	engine.countries["CH"] = "Switzerland"

	loc := engine.Resolve("Zürich")
	assert.Equal(t, "Zürich", loc.City)
	assert.Equal(t, "CH", loc.CountryCode)
}

func TestLoadGeonames(t *testing.T) {
	dir := t.TempDir()

	countryFile := filepath.Join(dir, "countryInfo.txt")
	require.NoError(t, os.WriteFile(countryFile, []byte(
		"# comment line\n"+
			"US\tUSA\t840\tUS\tUnited States\tWashington\n"+
			"SG\tSGP\t702\tSN\tSingapore\tSingapore\n"), 0o644))

	admin1File := filepath.Join(dir, "admin1CodesASCII.txt")
	require.NoError(t, os.WriteFile(admin1File, []byte(
		"US.CA\tCalifornia\tCalifornia\t5332921\n"+
			"US.WA\tWashington\tWashington\t5815135\n"), 0o644))

	// Geonames city rows have 19 tab-separated columns; only name (1),
	// asciiname (2), country code (8), admin1 (10) and population (14)
	// are read.
	cityRow := func(name, ascii, cc, admin1, pop string) string {
		cols := make([]string, 19)
		cols[1], cols[2], cols[8], cols[10], cols[14] = name, ascii, cc, admin1, pop
		out := cols[0]
		for _, c := range cols[1:] {
			out += "\t" + c
		}
		return out + "\n"
	}
	citiesFile := filepath.Join(dir, "cities15000.txt")
	require.NoError(t, os.WriteFile(citiesFile, []byte(
		cityRow("San Jose", "San Jose", "US", "CA", "1030119")+
			cityRow("Seattle", "Seattle", "US", "WA", "737015")), 0o644))

	engine := NewEngine(arbor.NewLogger())
	require.NoError(t, engine.LoadGeonames(citiesFile, admin1File, countryFile))

	loc := engine.Resolve("Seattle, WA, United States")
	assert.Equal(t, "Seattle", loc.City)
	assert.Equal(t, "Washington", loc.Region)
	assert.Equal(t, "US", loc.CountryCode)
}
