package tagging

import "regexp"

// educationGate lists words whose presence signals the posting talks about
// the candidate's education. Degree and subject rules fire only behind it,
// so a lone "BS" or "Law" elsewhere in the text does not label the job.
var educationGate = regexp.MustCompile(`(?i)\b(studying|enrolled|pursuing|degree|student|graduate|undergraduate|candidate|major|majoring|studies|coursework|university|college|bachelor|master|phd|diploma)\b`)

type educationRule struct {
	re    *regexp.Regexp
	label string
}

func mustEducationRules(pairs [][2]string) []educationRule {
	rules := make([]educationRule, 0, len(pairs))
	for _, p := range pairs {
		rules = append(rules, educationRule{
			re:    regexp.MustCompile("(?i)(?:" + p[0] + ")"),
			label: p[1],
		})
	}
	return rules
}

var degreeLevelRules = mustEducationRules([][2]string{
	{`\bbachelor'?s?\b|\bb\.?sc?\b|\bb\.?a\b|\bb\.?eng\b|\bundergraduate degree\b`, "Bachelor's"},
	{`\bmaster'?s?\b|\bm\.?sc?\b|\bm\.?a\b|\bm\.?eng\b|\bmba\b|\bgraduate degree\b`, "Master's"},
	{`\bph\.?d\b|\bdoctora(l|te)\b`, "PhD"},
	{`\bassociate'?s?\s+degree\b|\ba\.?a\.?s?\b\s+degree`, "Associate's"},
	{`\bj\.?d\b|\bm\.?d\b|\bprofessional degree\b|\bllm\b`, "Professional Degree"},
})

var subjectAreaRules = mustEducationRules([][2]string{
	{`\bcomputer science\b|\bcs\b|\bsoftware engineering\b`, "Computer Science"},
	{`\binformatics\b|\binformation systems\b|\binformation technology\b`, "Informatics"},
	{`\bbusiness administration\b|\bmba\b|\bcommerce\b`, "Business Administration"},
	{`\beconomics\b|\beconometrics\b`, "Economics"},
	{`\bfinance\b|\baccounting\b`, "Finance"},
	{`\bmarketing\b|\bcommunications?\b`, "Marketing"},
	{`\blaw\b|\blegal studies\b|\bjurisprudence\b`, "Law"},
	{`\bmedicine\b|\bmedical\b|\bpharmacy\b`, "Medicine"},
	{`\bnursing\b`, "Nursing"},
	{`\bpsychology\b`, "Psychology"},
	{`\bmathematics\b|\bmath\b|\bstatistics\b`, "Mathematics"},
	{`\bphysics\b`, "Physics"},
	{`\bchemistry\b`, "Chemistry"},
	{`\bbiology\b|\blife sciences?\b`, "Biology"},
	{`\bdata science\b|\banalytics\b`, "Data Science"},
	{`\bengineering\b`, "Engineering"},
	{`\bdesign\b|\bfine arts?\b`, "Design"},
	{`\bhuman resources\b`, "Human Resources"},
	{`\bsupply chain\b|\boperations management\b`, "Supply Chain"},
})

// DetectEducation scans text for degree-level and subject-area mentions.
// Both result sets are empty unless the text carries an education gate word.
// Within a set labels are unique and in rule order.
func DetectEducation(text string) (degreeLevels, subjectAreas []string) {
	if text == "" || !educationGate.MatchString(text) {
		return nil, nil
	}
	degreeLevels = matchEducation(degreeLevelRules, text)
	subjectAreas = matchEducation(subjectAreaRules, text)
	return degreeLevels, subjectAreas
}

func matchEducation(rules []educationRule, text string) []string {
	var labels []string
	seen := make(map[string]struct{})
	for _, r := range rules {
		if !r.re.MatchString(text) {
			continue
		}
		if _, dup := seen[r.label]; dup {
			continue
		}
		seen[r.label] = struct{}{}
		labels = append(labels, r.label)
	}
	return labels
}
