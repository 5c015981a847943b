// Package types defines the structured CV record shared by every pipeline stage.
package types

// Record is the structured CV produced by extraction and consumed by
// anonymization and rendering. JSON field names follow the extraction
// model's contract so a model response unmarshals directly.
type Record struct {
	ProfessionalTitle string `json:"titre_professionnel,omitempty"`

	Diplomas       []Diploma       `json:"diplomes"`
	Certifications []Certification `json:"certifications"`
	SkillGroups    []SkillGroup    `json:"competences_groups"`
	Languages      []Language      `json:"langues"`
	Experiences    []Experience    `json:"experiences"`

	// Identifying fields. Populated by extraction, cleared by
	// anonymization before any rendering happens.
	Name    string `json:"nom,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"telephone,omitempty"`
	Address string `json:"adresse,omitempty"`
	Photo   string `json:"photo,omitempty"`
}

// Diploma is a degree or training entry.
type Diploma struct {
	Year        string `json:"annee"`
	Title       string `json:"diplome"`
	Institution string `json:"etablissement"`
}

// Certification is a professional certification entry.
type Certification struct {
	Year   string `json:"annee"`
	Name   string `json:"nom"`
	Issuer string `json:"organisme"`
}

// SkillGroup is a named category of skills.
type SkillGroup struct {
	Category string   `json:"categorie"`
	Skills   []string `json:"competences"`
}

// Language is a spoken language with its proficiency level.
type Language struct {
	Name  string `json:"langue"`
	Level string `json:"niveau"`
}

// Experience is a single professional engagement.
type Experience struct {
	Company      string   `json:"entreprise"`
	Period       string   `json:"periode"`
	Role         string   `json:"poste"`
	Location     string   `json:"lieu,omitempty"`
	Projects     []string `json:"projets"`
	Achievements []string `json:"realisations"`
	Environment  []string `json:"environnement"`
}

// EnsureDefaults replaces nil sequence fields with empty slices so
// downstream consumers and JSON output never see absent keys.
func (r *Record) EnsureDefaults() {
	if r.Diplomas == nil {
		r.Diplomas = []Diploma{}
	}
	if r.Certifications == nil {
		r.Certifications = []Certification{}
	}
	if r.SkillGroups == nil {
		r.SkillGroups = []SkillGroup{}
	}
	if r.Languages == nil {
		r.Languages = []Language{}
	}
	if r.Experiences == nil {
		r.Experiences = []Experience{}
	}
	for i := range r.Experiences {
		exp := &r.Experiences[i]
		if exp.Projects == nil {
			exp.Projects = []string{}
		}
		if exp.Achievements == nil {
			exp.Achievements = []string{}
		}
		if exp.Environment == nil {
			exp.Environment = []string{}
		}
	}
	for i := range r.SkillGroups {
		if r.SkillGroups[i].Skills == nil {
			r.SkillGroups[i].Skills = []string{}
		}
	}
}

// IsEmpty reports whether the record carries no content sections at all.
func (r *Record) IsEmpty() bool {
	return len(r.Diplomas) == 0 &&
		len(r.Certifications) == 0 &&
		len(r.SkillGroups) == 0 &&
		len(r.Languages) == 0 &&
		len(r.Experiences) == 0
}
