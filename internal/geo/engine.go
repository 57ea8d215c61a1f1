// -----------------------------------------------------------------------
// Location Engine - Resolves free-text location strings against a
// three-tier Geonames gazetteer (countries, admin1 regions, cities)
// -----------------------------------------------------------------------

package geo

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ternarybob/arbor"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ternarybob/zapply/internal/models"
)

var (
	remoteKeywords = []string{"remote", "anywhere", "wfh"}
	hybridKeywords = []string{"hybrid"}
)

// cityEntry is one gazetteer city record. A name maps to several entries
// when the same city name exists in multiple countries or regions.
type cityEntry struct {
	name        string
	countryCode string
	population  uint32
	admin1      string
}

type countryRef struct {
	code string
	name string
}

type regionRef struct {
	id   string // "US.CA"
	name string // "California"
}

// Engine resolves raw location strings to structured city/region/country
// plus a work mode. Loaded once at startup; read-only afterwards and safe
// for concurrent use.
type Engine struct {
	cities    map[string][]cityEntry // lowercase name -> entries, population desc
	regions   map[string]string      // "US.CA" -> "California"
	countries map[string]string      // "US" -> "United States"

	countryLookup map[string]countryRef // lowercase code or name -> country
	regionLookup  map[string]regionRef  // "us.ca" and "us.california" -> region
	admin1Lookup  map[string]string     // bare region code or name -> country code

	keywordRe *regexp.Regexp
	folder    transform.Transformer
	logger    arbor.ILogger
}

// NewEngine creates an empty engine. Call LoadGeonames before resolving,
// or populate the maps through the test helpers.
func NewEngine(logger arbor.ILogger) *Engine {
	pattern := fmt.Sprintf(`\b(%s|%s)\b`,
		strings.Join(remoteKeywords, "|"),
		strings.Join(hybridKeywords, "|"))

	return &Engine{
		cities:        make(map[string][]cityEntry),
		regions:       make(map[string]string),
		countries:     make(map[string]string),
		countryLookup: make(map[string]countryRef),
		regionLookup:  make(map[string]regionRef),
		admin1Lookup:  make(map[string]string),
		keywordRe:     regexp.MustCompile(pattern),
		folder:        transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		logger:        logger,
	}
}

// LoadGeonames loads the three tab-separated Geonames files: cities15000,
// admin1CodesASCII and countryInfo. Lines starting with '#' are comments.
func (e *Engine) LoadGeonames(citiesPath, admin1Path, countryPath string) error {
	e.logger.Info().Msg("Loading location data...")

	if err := e.loadCountries(countryPath); err != nil {
		return fmt.Errorf("failed to load countries from %s: %w", countryPath, err)
	}
	if err := e.loadRegions(admin1Path); err != nil {
		return fmt.Errorf("failed to load regions from %s: %w", admin1Path, err)
	}

	count, err := e.loadCities(citiesPath)
	if err != nil {
		return fmt.Errorf("failed to load cities from %s: %w", citiesPath, err)
	}

	for name := range e.cities {
		entries := e.cities[name]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].population > entries[j].population
		})
		e.cities[name] = entries
	}

	e.logger.Info().
		Int("cities", count).
		Int("regions", len(e.regions)).
		Int("countries", len(e.countries)).
		Msg("Location engine ready")
	return nil
}

func (e *Engine) loadCountries(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 5 {
			continue
		}

		code := parts[0]
		name := parts[4]
		ref := countryRef{code: code, name: name}

		e.countryLookup[strings.ToLower(code)] = ref
		e.countryLookup[strings.ToLower(name)] = ref
		e.countries[code] = name
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// Common shorthands absent from the Geonames dump.
	e.countryLookup["usa"] = countryRef{code: "US", name: "United States"}
	e.countryLookup["uk"] = countryRef{code: "GB", name: "United Kingdom"}
	return nil
}

func (e *Engine) loadRegions(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}

		id := parts[0] // "US.CA"
		name := parts[1]
		e.regions[id] = name

		idParts := strings.SplitN(id, ".", 2)
		if len(idParts) != 2 {
			continue
		}
		countryCode := strings.ToLower(idParts[0])
		regionCode := strings.ToLower(idParts[1])
		ref := regionRef{id: id, name: name}

		e.regionLookup[countryCode+"."+regionCode] = ref
		e.regionLookup[countryCode+"."+strings.ToLower(name)] = ref

		// Bare region codes collide across countries; prefer the US
		// mapping, else first seen.
		if _, exists := e.admin1Lookup[regionCode]; countryCode == "us" || !exists {
			e.admin1Lookup[regionCode] = idParts[0]
			e.admin1Lookup[strings.ToLower(name)] = idParts[0]
		}
	}
	return scanner.Err()
}

func (e *Engine) loadCities(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	count := 0
	for scanner.Scan() {
		parts := strings.Split(scanner.Text(), "\t")
		if len(parts) < 15 {
			continue
		}

		name := parts[1]
		nameLower := strings.ToLower(name)
		asciiLower := strings.ToLower(parts[2])
		population, _ := strconv.ParseUint(parts[14], 10, 32)

		entry := cityEntry{
			name:        name,
			countryCode: parts[8],
			population:  uint32(population),
			admin1:      parts[10],
		}

		e.cities[nameLower] = append(e.cities[nameLower], entry)
		if asciiLower != nameLower {
			e.cities[asciiLower] = append(e.cities[asciiLower], entry)
		}
		count++
	}
	return count, scanner.Err()
}

// Countries exposes the code -> name map for reference-table population.
func (e *Engine) Countries() map[string]string {
	return e.countries
}

// Regions exposes the composite-id -> name map ("US.CA" -> "California").
func (e *Engine) Regions() map[string]string {
	return e.regions
}

// Resolve parses a raw location string into structured components.
// Resolution never fails: unresolvable strings yield an empty LocationInfo
// carrying only the detected work mode.
func (e *Engine) Resolve(raw string) models.LocationInfo {
	cleaned, workMode := e.extractWorkMode(raw)
	if cleaned == "" {
		return models.LocationInfo{WorkMode: workMode}
	}

	parts := splitLocation(cleaned)

	country, countryOK := e.identifyCountry(parts)
	region, regionOK := e.identifyRegion(parts, country, countryOK)

	if loc, ok := e.identifyCity(parts, country, countryOK, region, regionOK, workMode); ok {
		return loc
	}

	return e.fallbackLocation(parts, country, countryOK, region, regionOK, workMode)
}

// extractWorkMode lowercases and ASCII-folds the raw string, strips
// remote/hybrid keywords and leading/trailing separators, and reports the
// detected work mode. Remote wins when both keyword families appear.
func (e *Engine) extractWorkMode(raw string) (string, models.WorkMode) {
	lowered := strings.ToLower(raw)
	if folded, _, err := transform.String(e.folder, lowered); err == nil {
		lowered = folded
	}

	workMode := models.WorkModeInOffice
	detectedRemote, detectedHybrid := false, false

	cleaned := e.keywordRe.ReplaceAllStringFunc(lowered, func(match string) string {
		for _, kw := range remoteKeywords {
			if match == kw {
				detectedRemote = true
				return ""
			}
		}
		for _, kw := range hybridKeywords {
			if match == kw {
				detectedHybrid = true
				return ""
			}
		}
		return ""
	})

	if detectedRemote {
		workMode = models.WorkModeRemote
	} else if detectedHybrid {
		workMode = models.WorkModeHybrid
	}

	cleaned = strings.TrimFunc(cleaned, func(r rune) bool {
		return (!unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ') || unicode.IsSpace(r)
	})

	if rest, found := strings.CutPrefix(cleaned, "or "); found {
		cleaned = strings.TrimSpace(rest)
	} else if rest, found := strings.CutPrefix(cleaned, "and "); found {
		cleaned = strings.TrimSpace(rest)
	}

	return cleaned, workMode
}

func splitLocation(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|' || r == '/'
	})
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if trimmed := strings.TrimSpace(f); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// identifyCountry matches the last part against country codes and names.
func (e *Engine) identifyCountry(parts []string) (countryRef, bool) {
	if len(parts) == 0 {
		return countryRef{}, false
	}
	ref, ok := e.countryLookup[parts[len(parts)-1]]
	return ref, ok
}

// identifyRegion matches the part before the country (or the last part
// when no country matched) against region codes and names. Without a
// country context the owning country is inferred from the bare code.
func (e *Engine) identifyRegion(parts []string, country countryRef, countryOK bool) (regionRef, bool) {
	var idx int
	if countryOK {
		if len(parts) < 2 {
			return regionRef{}, false
		}
		idx = len(parts) - 2
	} else {
		if len(parts) < 1 {
			return regionRef{}, false
		}
		idx = len(parts) - 1
	}

	part := parts[idx]
	if countryOK {
		ref, ok := e.regionLookup[strings.ToLower(country.code)+"."+part]
		return ref, ok
	}

	if inferredCC, ok := e.admin1Lookup[part]; ok {
		ref, ok := e.regionLookup[strings.ToLower(inferredCC)+"."+part]
		return ref, ok
	}
	return regionRef{}, false
}

// identifyCity matches the city part against the gazetteer, preferring a
// candidate consistent with the identified country and region, else the
// most populous. The city part is leftmost except in the "Paris, TX" case
// where a region matched without a country and the city precedes it.
func (e *Engine) identifyCity(parts []string, country countryRef, countryOK bool, region regionRef, regionOK bool, workMode models.WorkMode) (models.LocationInfo, bool) {
	var idx int
	if regionOK && !countryOK {
		if len(parts) < 2 {
			return models.LocationInfo{}, false
		}
		idx = len(parts) - 2
	} else {
		if len(parts) == 0 {
			return models.LocationInfo{}, false
		}
		idx = 0
	}

	matches, ok := e.cities[parts[idx]]
	if !ok || len(matches) == 0 {
		return models.LocationInfo{}, false
	}

	best := matches[0]
	for _, m := range matches {
		if countryOK && m.countryCode != country.code {
			continue
		}
		if regionOK && m.countryCode+"."+m.admin1 != region.id {
			continue
		}
		best = m
		break
	}

	return e.locationFromCity(best, workMode), true
}

func (e *Engine) locationFromCity(city cityEntry, workMode models.WorkMode) models.LocationInfo {
	return models.LocationInfo{
		City:        city.name,
		Region:      e.regions[city.countryCode+"."+city.admin1],
		Country:     e.countries[city.countryCode],
		CountryCode: city.countryCode,
		WorkMode:    workMode,
	}
}

// fallbackLocation builds a region/country-only result, inferring the
// country from the region id when needed, and as a last resort scans
// individual whitespace tokens for a city name.
func (e *Engine) fallbackLocation(parts []string, country countryRef, countryOK bool, region regionRef, regionOK bool, workMode models.WorkMode) models.LocationInfo {
	if regionOK || countryOK {
		if !countryOK && regionOK {
			code, _, _ := strings.Cut(region.id, ".")
			if name, ok := e.countries[code]; ok {
				country = countryRef{code: code, name: name}
			}
		}

		loc := models.LocationInfo{WorkMode: workMode}
		if regionOK {
			loc.Region = region.name
		}
		loc.Country = country.name
		loc.CountryCode = country.code
		return loc
	}

	for _, part := range parts {
		for _, token := range strings.Fields(part) {
			if matches, ok := e.cities[token]; ok && len(matches) > 0 {
				return e.locationFromCity(matches[0], workMode)
			}
		}
	}

	return models.LocationInfo{WorkMode: workMode}
}
