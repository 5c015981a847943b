package render

import (
	"strings"

	"github.com/jmartel/cv-anonymizer/internal/types"
)

// Section kinds. Education rows, skill rows and language rows share the
// Row shape; experiences keep their own richer block.
const (
	SectionEducation   = "education"
	SectionSkills      = "skills"
	SectionLanguages   = "languages"
	SectionExperiences = "experiences"
)

// Section titles as printed on the document.
const (
	titleEducation   = "FORMATIONS & CERTIFICATIONS"
	titleSkills      = "COMPÉTENCES FONCTIONNELLES & TECHNIQUES"
	titleLanguages   = "LANGUES"
	titleExperiences = "EXPÉRIENCES PROFESSIONNELLES"
)

// Document is the layout-neutral form of a rendered CV. Both backends
// consume it, so everything that can be decided without drawing (section
// numbering, row text, year cleanup, skill joining) is decided here.
type Document struct {
	Title    string
	Subtitle string
	Footer   string
	Sections []Section
}

// Section is a numbered block of the document.
type Section struct {
	Number int
	Title  string
	Kind   string

	Rows        []Row
	Experiences []ExperienceBlock
}

// Row is a lead/main/sub line used by education, skills and languages.
type Row struct {
	Lead string
	Main string
	Sub  string

	// Accent marks rows colored with the style's accent instead of the
	// primary color (certification years).
	Accent bool
}

// ExperienceBlock is one engagement with its banner line and bullets.
type ExperienceBlock struct {
	Company     string
	Period      string
	Role        string
	Location    string
	Projects    []string
	Bullets     []string
	Environment string
}

// BuildDocument projects a record onto the document model. Sections
// appear only when they have content and are numbered in order of
// appearance.
func BuildDocument(rec *types.Record, style Style) Document {
	doc := Document{
		Title:    rec.Name,
		Subtitle: rec.ProfessionalTitle,
		Footer:   style.FooterText,
	}
	if doc.Title == "" {
		doc.Title = "Nom & Prénom"
	}
	if doc.Subtitle == "" {
		doc.Subtitle = "Consultant IT"
	}

	number := 0
	addSection := func(kind, title string, rows []Row, exps []ExperienceBlock) {
		number++
		doc.Sections = append(doc.Sections, Section{
			Number:      number,
			Title:       title,
			Kind:        kind,
			Rows:        rows,
			Experiences: exps,
		})
	}

	if rows := educationRows(rec); len(rows) > 0 {
		addSection(SectionEducation, titleEducation, rows, nil)
	}
	if rows := skillRows(rec.SkillGroups, style.SkillSeparator); len(rows) > 0 {
		addSection(SectionSkills, titleSkills, rows, nil)
	}
	if rows := languageRows(rec.Languages); len(rows) > 0 {
		addSection(SectionLanguages, titleLanguages, rows, nil)
	}
	if exps := experienceBlocks(rec.Experiences, style.SkillSeparator); len(exps) > 0 {
		addSection(SectionExperiences, titleExperiences, nil, exps)
	}

	return doc
}

// CleanYear drops placeholder year values models sometimes emit.
func CleanYear(year string) string {
	return cleanPlaceholder(year)
}

func cleanPlaceholder(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none", "null", "non spécifié":
		return ""
	}
	return s
}

func educationRows(rec *types.Record) []Row {
	var rows []Row
	for _, dip := range rec.Diplomas {
		rows = append(rows, Row{
			Lead: CleanYear(dip.Year),
			Main: dip.Title,
			Sub:  dip.Institution,
		})
	}
	for _, cert := range rec.Certifications {
		rows = append(rows, Row{
			Lead:   CleanYear(cert.Year),
			Main:   cert.Name,
			Sub:    cleanPlaceholder(cert.Issuer),
			Accent: true,
		})
	}
	return rows
}

func skillRows(groups []types.SkillGroup, separator string) []Row {
	var rows []Row
	for _, group := range groups {
		if len(group.Skills) == 0 {
			continue
		}
		rows = append(rows, Row{
			Lead: group.Category,
			Main: strings.Join(group.Skills, separator),
		})
	}
	return rows
}

func languageRows(langs []types.Language) []Row {
	var rows []Row
	for _, lang := range langs {
		rows = append(rows, Row{
			Lead: lang.Name,
			Main: lang.Level,
		})
	}
	return rows
}

func experienceBlocks(exps []types.Experience, separator string) []ExperienceBlock {
	var blocks []ExperienceBlock
	for _, exp := range exps {
		block := ExperienceBlock{
			Company:     exp.Company,
			Period:      exp.Period,
			Role:        exp.Role,
			Location:    exp.Location,
			Environment: strings.Join(exp.Environment, separator),
		}
		for _, p := range exp.Projects {
			if strings.TrimSpace(p) != "" {
				block.Projects = append(block.Projects, p)
			}
		}
		for _, b := range exp.Achievements {
			if strings.TrimSpace(b) != "" {
				block.Bullets = append(block.Bullets, b)
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}
