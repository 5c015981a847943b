package parsing

import (
	"regexp"
	"strings"

	"github.com/jmartel/cv-anonymizer/internal/types"
)

// Keyword extraction used when no model is available or the model
// response cannot be repaired. It never fails: whatever it recognizes
// goes into the record and everything else stays empty.

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

var diplomaKeywords = []string{"master", "licence", "diplôme", "école", "université"}

// techCategories map a skill group name to the technologies recognized
// for it. Order matters for stable output.
var techCategories = []struct {
	category string
	pattern  *regexp.Regexp
}{
	{"Langages", regexp.MustCompile(`(?i)\b(Java|Python|JavaScript|TypeScript|C\+\+|C#|PHP|Ruby|Go|Rust|Kotlin|Swift|Scala)\b`)},
	{"Frameworks", regexp.MustCompile(`(?i)\b(Angular|React|Vue|Spring|Django|Flask|Express|Hibernate|JPA)\b`)},
	{"SGBDR", regexp.MustCompile(`(?i)\b(Oracle|MySQL|PostgreSQL|MongoDB|Redis|Cassandra|SQL Server)\b`)},
	{"Cloud", regexp.MustCompile(`(?i)\b(AWS|Azure|GCP|Kubernetes|Docker)\b`)},
	{"Intégration continue", regexp.MustCompile(`(?i)\b(Jenkins|Maven|Nexus|SonarQube)\b`)},
	{"Gestion de versions", regexp.MustCompile(`(?i)\b(Git|GitLab|Bitbucket|SVN)\b`)},
	{"Tests", regexp.MustCompile(`(?i)\b(JUnit|Mockito|Selenium|Cypress)\b`)},
	{"Méthodes & Outils", regexp.MustCompile(`(?i)\b(Agile|Scrum|Kanban|Jira|Confluence)\b`)},
}

var languageNames = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"Anglais", regexp.MustCompile(`(?i)\b(anglais|english)\b`)},
	{"Français", regexp.MustCompile(`(?i)\b(français|french)\b`)},
	{"Arabe", regexp.MustCompile(`(?i)\b(arabe|arabic)\b`)},
	{"Espagnol", regexp.MustCompile(`(?i)\b(espagnol|spanish)\b`)},
	{"Allemand", regexp.MustCompile(`(?i)\b(allemand|german)\b`)},
}

var languageLevels = []struct {
	level   string
	pattern *regexp.Regexp
}{
	{"Professionnel", regexp.MustCompile(`(?i)\b(professionnel|professional|fluent|courant)\b`)},
	{"Bilingue", regexp.MustCompile(`(?i)\b(bilingue|bilingual|natif|native)\b`)},
	{"Intermédiaire", regexp.MustCompile(`(?i)\b(intermédiaire|intermediate)\b`)},
	{"Basique", regexp.MustCompile(`(?i)\b(basique|basic|débutant)\b`)},
}

var experienceHeadingRe = regexp.MustCompile(`(?i)exp[ée]rience`)
var experienceBlockStartRe = regexp.MustCompile(`^(\d{4}|[\p{L}]+\s+\d{4})`)

// FallbackExtract builds a record from raw text using keyword matching
// alone. Every sequence field is present in the result, possibly empty.
func FallbackExtract(text string) *types.Record {
	rec := &types.Record{
		Diplomas:    extractDiplomas(text),
		SkillGroups: extractSkillGroups(text),
		Languages:   extractLanguages(text),
		Experiences: extractExperiences(text),
	}
	rec.EnsureDefaults()
	return rec
}

func extractDiplomas(text string) []types.Diploma {
	var diplomas []types.Diploma
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		year := yearRe.FindString(line)
		if year == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range diplomaKeywords {
			if strings.Contains(lower, kw) {
				institution := ""
				if i+1 < len(lines) {
					institution = strings.TrimSpace(lines[i+1])
				}
				diplomas = append(diplomas, types.Diploma{
					Year:        year,
					Title:       strings.TrimSpace(line),
					Institution: institution,
				})
				break
			}
		}
	}
	return diplomas
}

func extractSkillGroups(text string) []types.SkillGroup {
	var groups []types.SkillGroup
	for _, tc := range techCategories {
		seen := make(map[string]bool)
		var skills []string
		for _, match := range tc.pattern.FindAllString(text, -1) {
			key := strings.ToLower(match)
			if seen[key] {
				continue
			}
			seen[key] = true
			skills = append(skills, match)
		}
		if len(skills) > 0 {
			groups = append(groups, types.SkillGroup{Category: tc.category, Skills: skills})
		}
	}
	return groups
}

func extractLanguages(text string) []types.Language {
	level := "Professionnel"
	for _, ll := range languageLevels {
		if ll.pattern.MatchString(text) {
			level = ll.level
			break
		}
	}

	var langs []types.Language
	for _, ln := range languageNames {
		if ln.pattern.MatchString(text) {
			langs = append(langs, types.Language{Name: ln.name, Level: level})
		}
	}
	return langs
}

// extractExperiences keeps everything after the first "expérience"
// heading, split into blocks wherever a line starts with a year or a
// month-year. Blocks under 20 characters are noise and dropped. The
// company is unknown at this level of extraction, so a placeholder is
// used and each block is kept whole as a project plus its lines as
// achievements.
func extractExperiences(text string) []types.Experience {
	headings := experienceHeadingRe.FindAllStringIndex(text, -1)
	if len(headings) == 0 {
		return nil
	}
	// The heading of the dedicated section, not a passing mention, is
	// almost always the last occurrence.
	expText := text[headings[len(headings)-1][1]:]

	var blocks []string
	var current []string
	for _, line := range strings.Split(expText, "\n") {
		if experienceBlockStartRe.MatchString(strings.TrimSpace(line)) && len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	var exps []types.Experience
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if len(block) <= 20 {
			continue
		}
		exps = append(exps, types.Experience{
			Company:      "ENTREPRISE",
			Projects:     []string{block},
			Achievements: strings.Split(block, "\n"),
			Environment:  []string{},
		})
	}
	return exps
}
